package orm

import "time"

// Kind is the Go-side type of a column. Values read from any driver are
// normalized to it: string, bool, int64 or float64.
type Kind int

const (
	KindString Kind = iota
	KindText
	KindBool
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Field describes one column.
type Field struct {
	// def is a constant or a func() any evaluated at save time.
	def        any
	Name       string
	DDL        string
	Kind       Kind
	PrimaryKey bool
}

// String declares a varchar-like column, e.g. String("email", "varchar(50)").
func String(name, ddl string) Field {
	return Field{Name: name, Kind: KindString, DDL: ddl}
}

// Text declares a text column.
func Text(name string) Field {
	return Field{Name: name, Kind: KindText, DDL: "text"}
}

// Bool declares a boolean column.
func Bool(name string) Field {
	return Field{Name: name, Kind: KindBool, DDL: "boolean", def: false}
}

// Int declares a bigint column.
func Int(name string) Field {
	return Field{Name: name, Kind: KindInt, DDL: "bigint", def: int64(0)}
}

// Float declares a double precision column.
func Float(name string) Field {
	return Field{Name: name, Kind: KindFloat, DDL: "double precision", def: 0.0}
}

// Key marks the field as the primary key.
func (f Field) Key() Field {
	f.PrimaryKey = true
	return f
}

// Default sets the value used by Save when the record reports the field as
// absent (a nil Value). A func() any is called once per save.
func (f Field) Default(v any) Field {
	f.def = v
	return f
}

// HasDefault reports whether a default is declared.
func (f Field) HasDefault() bool {
	return f.def != nil
}

// DefaultValue resolves the declared default.
func (f Field) DefaultValue() any {
	if fn, ok := f.def.(func() any); ok {
		return fn()
	}
	return f.def
}

// Now is the timestamp default for created_at style columns: Unix seconds
// with sub-second precision.
func Now() float64 {
	return float64(time.Now().UnixMicro()) / 1e6
}
