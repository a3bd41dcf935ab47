// Package id generates record identifiers.
//
// An identifier is the creation time in milliseconds, zero-padded to 15
// digits, followed by the 32 hex digits of a random UUID and a "000" suffix.
// Identifiers therefore sort by creation time and are always 50 characters
// long, which fits the varchar(50) primary key columns.
package id

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Length is the length of every identifier produced by New.
const Length = 15 + 32 + 3

const suffix = "000"

// ErrMalformed is returned by Time for strings that are not identifiers.
var ErrMalformed = errors.New("id: malformed identifier")

// New returns a fresh identifier stamped with the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a fresh identifier stamped with t.
func NewAt(t time.Time) string {
	u := uuid.New()
	return fmt.Sprintf("%015d%s%s", t.UnixMilli(), strings.ReplaceAll(u.String(), "-", ""), suffix)
}

// Time extracts the creation time encoded in an identifier.
func Time(s string) (time.Time, error) {
	if len(s) != Length || !strings.HasSuffix(s, suffix) {
		return time.Time{}, ErrMalformed
	}
	ms, err := strconv.ParseInt(s[:15], 10, 64)
	if err != nil {
		return time.Time{}, errors.Join(ErrMalformed, err)
	}
	return time.UnixMilli(ms), nil
}
