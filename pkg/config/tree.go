package config

import "strings"

// Map is a configuration tree: nested maps with scalar leaves.
type Map map[string]any

// Defaults returns a fresh copy of the built-in configuration tree.
func Defaults() Map {
	return Map{
		"debug": true,
		"addr":  ":9000",
		"db": Map{
			"driver":             "mysql",
			"host":               "127.0.0.1",
			"port":               3306,
			"user":               "www-data",
			"password":           "www-data",
			"db":                 "awesome",
			"path":               "",
			"migrations_table":   "schema_migrations",
			"max_open_conns":     10,
			"min_conns":          1,
			"max_conn_idle_time": "10m",
			"max_conn_lifetime":  "30m",
			"retry_attempts":     3,
			"retry_interval":     "2s",
		},
		"session": Map{
			"secret":     "Awesome",
			"cookieName": "awesession",
			"max_age":    86400,
		},
		"redis": Map{
			"url":    "",
			"prefix": "awesome",
		},
		"sentry": Map{
			"dsn":         "",
			"environment": "development",
			"errors_only": false,
		},
	}
}

// Merge overlays override onto defaults and returns a new tree.
//
// Only keys present in defaults survive. Nested maps merge recursively;
// any other override value replaces the default. An override that is not a
// map where the default is one is ignored.
func Merge(defaults, override Map) Map {
	out := make(Map, len(defaults))
	for k, dv := range defaults {
		ov, ok := override[k]
		if !ok {
			out[k] = clone(dv)
			continue
		}
		if dm, isMap := asMap(dv); isMap {
			if om, ok := asMap(ov); ok {
				out[k] = Merge(dm, om)
			} else {
				out[k] = clone(dv)
			}
			continue
		}
		out[k] = ov
	}
	return out
}

// Get looks up a dotted path such as "db.host".
func (m Map) Get(path string) (any, bool) {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		node, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = node[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v any) (Map, bool) {
	switch t := v.(type) {
	case Map:
		return t, true
	case map[string]any:
		return Map(t), true
	default:
		return nil, false
	}
}

func clone(v any) any {
	m, ok := asMap(v)
	if !ok {
		return v
	}
	out := make(Map, len(m))
	for k, vv := range m {
		out[k] = clone(vv)
	}
	return out
}
