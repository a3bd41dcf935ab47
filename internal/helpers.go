package internal

import "strconv"

// ContextValue returns the request-context value under key as T, or T's
// zero value.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// QueryDefault returns the typed query parameter, or def when it is empty
// or does not parse.
func QueryDefault[T ~string | ~int | ~bool](c Context, name string, def T) T {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	var out any
	switch any(def).(type) {
	case string:
		out = raw
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return def
		}
		out = n
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return def
		}
		out = b
	}
	if v, ok := out.(T); ok {
		return v
	}
	return def
}
