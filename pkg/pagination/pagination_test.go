package pagination_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aileon/awesome/pkg/pagination"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                     string
		count, index, size       int
		wantCount, wantIndex     int
		wantOffset, wantLimit    int
		wantNext, wantPrevious   bool
	}{
		{"last partial page", 25, 3, 10, 3, 3, 20, 10, false, true},
		{"first page", 25, 1, 10, 3, 1, 0, 10, true, false},
		{"middle page", 25, 2, 10, 3, 2, 10, 10, true, true},
		{"no items", 0, 1, 10, 0, 1, 0, 0, false, false},
		{"no items any index", 0, 5, 10, 0, 1, 0, 0, false, false},
		{"index past end", 25, 4, 10, 3, 1, 0, 0, true, false},
		{"default size", 11, 2, 0, 2, 2, 10, 10, false, true},
		{"exact multiple", 20, 2, 10, 2, 2, 10, 10, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := pagination.New(tt.count, tt.index, tt.size)
			assert.Equal(t, tt.wantCount, p.PageCount, "page count")
			assert.Equal(t, tt.wantIndex, p.PageIndex, "page index")
			assert.Equal(t, tt.wantOffset, p.Offset, "offset")
			assert.Equal(t, tt.wantLimit, p.Limit, "limit")
			assert.Equal(t, tt.wantNext, p.HasNext, "has next")
			assert.Equal(t, tt.wantPrevious, p.HasPrevious, "has previous")
		})
	}
}

func TestPage_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(pagination.New(25, 3, 10))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, float64(3), m["page_count"])
	assert.Equal(t, true, m["has_previous"])
	assert.Equal(t, false, m["has_next"])
	assert.Equal(t, [2]int{20, 10}, pagination.New(25, 3, 10).Window())
}

func TestIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, pagination.Index(""))
	assert.Equal(t, 1, pagination.Index("abc"))
	assert.Equal(t, 1, pagination.Index("0"))
	assert.Equal(t, 1, pagination.Index("-3"))
	assert.Equal(t, 7, pagination.Index("7"))
	assert.Equal(t, 2, pagination.Index(" 2 "))
}
