package config

import "errors"

var (
	ErrReadFile   = errors.New("config: failed to read override file")
	ErrParseFile  = errors.New("config: failed to parse override file")
	ErrDecode     = errors.New("config: failed to decode merged tree")
	ErrEnvOverlay = errors.New("config: failed to apply environment")
)
