// Package config loads the layered application configuration.
//
// Layers, lowest to highest precedence:
//
//  1. built-in defaults ([Defaults]),
//  2. an override tree, usually read from a YAML file, deep-merged with
//     [Merge] (keys unknown to the defaults are dropped),
//  3. environment variables, applied with go-envconfig.
//
// The merged tree stays available for dotted lookups:
//
//	cfg, err := config.Load(ctx, config.FromFile("awesome.yaml"))
//	host, _ := cfg.Get("db.host")
//	name := cfg.Session.CookieName
package config
