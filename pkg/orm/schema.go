package orm

import (
	"fmt"
	"regexp"
	"strings"
)

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Schema is the immutable description of one table and its statements.
type Schema struct {
	table  string
	fields []Field
	pk     Field
	others []Field

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

// NewSchema validates the field list and prebuilds the statements.
// Identifiers are restricted to lower-case letters, digits and underscores
// so statements need no driver-specific quoting.
func NewSchema(table string, fields ...Field) (*Schema, error) {
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}

	s := &Schema{table: table, fields: append([]Field(nil), fields...)}
	seen := make(map[string]struct{}, len(fields))
	var hasPK bool

	for _, f := range fields {
		if !identifier.MatchString(f.Name) {
			return nil, fmt.Errorf("%w: field %q of %s", ErrInvalidIdentifier, f.Name, table)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateField, table, f.Name)
		}
		seen[f.Name] = struct{}{}

		if f.PrimaryKey {
			if hasPK {
				return nil, fmt.Errorf("%w: %s.%s", ErrDuplicatePrimaryKey, table, f.Name)
			}
			hasPK = true
			s.pk = f
			continue
		}
		s.others = append(s.others, f)
	}
	if !hasPK {
		return nil, fmt.Errorf("%w: %s", ErrNoPrimaryKey, table)
	}

	names := s.otherNames()
	assign := make([]string, len(names))
	for i, n := range names {
		assign[i] = n + "=?"
	}

	s.selectSQL = fmt.Sprintf("select %s from %s", strings.Join(append([]string{s.pk.Name}, names...), ", "), table)
	s.insertSQL = fmt.Sprintf("insert into %s (%s) values (%s)",
		table,
		strings.Join(append(names, s.pk.Name), ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(names)+1), ", "),
	)
	s.updateSQL = fmt.Sprintf("update %s set %s where %s=?", table, strings.Join(assign, ", "), s.pk.Name)
	s.deleteSQL = fmt.Sprintf("delete from %s where %s=?", table, s.pk.Name)
	return s, nil
}

// MustSchema is NewSchema for package-level declarations; it panics on a
// definition error.
func MustSchema(table string, fields ...Field) *Schema {
	s, err := NewSchema(table, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Table() string         { return s.table }
func (s *Schema) PrimaryKey() Field     { return s.pk }
func (s *Schema) SelectSQL() string     { return s.selectSQL }
func (s *Schema) InsertSQL() string     { return s.insertSQL }
func (s *Schema) UpdateSQL() string     { return s.updateSQL }
func (s *Schema) DeleteSQL() string     { return s.deleteSQL }
func (s *Schema) Fields() []Field       { return append([]Field(nil), s.fields...) }
func (s *Schema) NonKeyFields() []Field { return append([]Field(nil), s.others...) }

// Field returns the named field.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// CreateTableSQL renders a portable create table statement from the
// declared column types.
func (s *Schema) CreateTableSQL() string {
	cols := make([]string, 0, len(s.fields)+1)
	for _, f := range s.fields {
		cols = append(cols, fmt.Sprintf("%s %s not null", f.Name, f.DDL))
	}
	cols = append(cols, fmt.Sprintf("primary key (%s)", s.pk.Name))
	return fmt.Sprintf("create table %s (\n  %s\n)", s.table, strings.Join(cols, ",\n  "))
}

func (s *Schema) otherNames() []string {
	names := make([]string, len(s.others))
	for i, f := range s.others {
		names[i] = f.Name
	}
	return names
}
