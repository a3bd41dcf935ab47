// Package pagination computes page windows for list endpoints.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultSize is the page size used when none is given.
const DefaultSize = 10

// Page describes one page of a result set.
type Page struct {
	ItemCount   int  `json:"item_count"`
	PageIndex   int  `json:"page_index"`
	PageSize    int  `json:"page_size"`
	PageCount   int  `json:"page_count"`
	Offset      int  `json:"offset"`
	Limit       int  `json:"limit"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// New builds the page with the 1-based index out of itemCount items.
// A size <= 0 means DefaultSize. When there are no items or the index is
// past the last page, the page is empty with index 1.
func New(itemCount, index, size int) Page {
	if size <= 0 {
		size = DefaultSize
	}
	if itemCount < 0 {
		itemCount = 0
	}
	p := Page{
		ItemCount: itemCount,
		PageIndex: index,
		PageSize:  size,
		PageCount: (itemCount + size - 1) / size,
	}
	if itemCount == 0 || index > p.PageCount || index < 1 {
		p.PageIndex = 1
		p.Offset = 0
		p.Limit = 0
	} else {
		p.Offset = size * (index - 1)
		p.Limit = size
	}
	p.HasNext = p.PageIndex < p.PageCount
	p.HasPrevious = p.PageIndex > 1
	return p
}

// Empty reports whether the page selects no rows.
func (p Page) Empty() bool { return p.Limit == 0 }

// Window returns the (offset, count) pair for an orm limit clause.
func (p Page) Window() [2]int { return [2]int{p.Offset, p.Limit} }

// Index parses a page index, falling back to 1 for anything that is not a
// positive integer.
func Index(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
