package db

import (
	"regexp"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavour of the underlying driver.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", ErrUnknownDialect
	}
}

// Rebind translates a statement written with "?" placeholders into the
// dialect's placeholder syntax. Placeholders inside quoted literals are left
// alone.
//
// MySQL and SQLite accept "?" and "limit ?, ?" natively. For PostgreSQL the
// placeholders become $1..$n and a trailing "limit ?, ?" (offset, count) is
// rewritten to "limit $n+1 offset $n" so the argument order stays the same.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	return rebindDollar(query)
}

func (d Dialect) gooseDialect() string {
	if d == SQLite {
		return "sqlite3"
	}
	return string(d)
}

var limitPair = regexp.MustCompile(`^\?\s*,\s*\?`)

func rebindDollar(query string) string {
	var (
		b     strings.Builder
		n     int
		quote byte
	)
	b.Grow(len(query) + 8)

	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
			b.WriteByte(ch)
		case ch == '\'' || ch == '"':
			quote = ch
			b.WriteByte(ch)
		case ch == '?':
			if loc := limitPair.FindStringIndex(query[i:]); loc != nil && endsWithKeyword(b.String(), "limit") {
				b.WriteString("$" + strconv.Itoa(n+2) + " offset $" + strconv.Itoa(n+1))
				n += 2
				i += loc[1] - 1
				continue
			}
			n++
			b.WriteString("$" + strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func endsWithKeyword(s, kw string) bool {
	s = strings.TrimRight(s, " \t\r\n")
	if len(s) < len(kw) || !strings.EqualFold(s[len(s)-len(kw):], kw) {
		return false
	}
	if len(s) == len(kw) {
		return true
	}
	prev := s[len(s)-len(kw)-1]
	return !(prev == '_' || prev >= 'a' && prev <= 'z' || prev >= 'A' && prev <= 'Z' || prev >= '0' && prev <= '9')
}
