package orm

import "errors"

var (
	ErrNoPrimaryKey        = errors.New("orm: primary key not found")
	ErrDuplicatePrimaryKey = errors.New("orm: duplicate primary key")
	ErrDuplicateField      = errors.New("orm: duplicate field")
	ErrInvalidIdentifier   = errors.New("orm: invalid identifier")
	ErrInvalidArgument     = errors.New("orm: invalid argument")
	ErrMissingValue        = errors.New("orm: missing value")
	ErrUnknownField        = errors.New("orm: unknown field")
	ErrType                = errors.New("orm: unexpected value type")
)
