package orm

import (
	"fmt"
	"strconv"
)

// Record is implemented by pointer-to-struct record types. Field names are
// the schema's column names.
type Record interface {
	// Value returns the current value of a field. A nil value means the
	// field is absent and Save resolves its declared default; any other
	// value, zero values included, is written as is. See [OrNil].
	Value(field string) any
	// SetValue assigns a normalized value (see Kind) to a field.
	SetValue(field string, v any) error
}

// OrNil returns nil for the zero value of T and v otherwise. Record types
// use it in Value for fields whose zero value means "not assigned yet",
// typically generated keys and timestamps.
func OrNil[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

// missingKey reports whether a primary key value is absent or zero.
func missingKey(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case int:
		return t == 0
	case int64:
		return t == 0
	case float64:
		return t == 0
	default:
		return false
	}
}

// normalize converts a driver value into the Go type of kind. MySQL hands
// back []byte for most columns and sqlite stores booleans as integers.
func normalize(kind Kind, v any) (any, error) {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}

	switch kind {
	case KindString, KindText:
		switch t := v.(type) {
		case nil:
			return "", nil
		case string:
			return t, nil
		}
	case KindBool:
		switch t := v.(type) {
		case nil:
			return false, nil
		case bool:
			return t, nil
		case int64:
			return t != 0, nil
		case string:
			b, err := strconv.ParseBool(t)
			if err != nil {
				return nil, fmt.Errorf("%w: bool from %q", ErrType, t)
			}
			return b, nil
		}
	case KindInt:
		switch t := v.(type) {
		case nil:
			return int64(0), nil
		case int64:
			return t, nil
		case int32:
			return int64(t), nil
		case int:
			return int64(t), nil
		case float64:
			return int64(t), nil
		case string:
			n, err := strconv.ParseInt(t, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: int from %q", ErrType, t)
			}
			return n, nil
		}
	case KindFloat:
		switch t := v.(type) {
		case nil:
			return 0.0, nil
		case float64:
			return t, nil
		case float32:
			return float64(t), nil
		case int64:
			return float64(t), nil
		case string:
			f, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: float from %q", ErrType, t)
			}
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s from %T", ErrType, kind, v)
}
