package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_Values(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		query ListQuery
	}{
		{name: "zero query", query: ListQuery{}, want: ""},
		{
			name:  "page only",
			query: ListQuery{Page: 2, PerPage: 25},
			want:  "page=2&per_page=25",
		},
		{
			name: "all fields",
			query: ListQuery{
				Search:    "ilm va amal",
				Sort:      "title",
				Direction: SortAsc,
				Status:    StatusPublished,
				Page:      1,
				PerPage:   10,
			},
			want: "direction=asc&page=1&per_page=10&search=ilm+va+amal&sort=title&status=published",
		},
		{
			name:  "negative page is omitted",
			query: ListQuery{Page: -1, Search: "a&b"},
			want:  "search=a%26b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Values().Encode())
		})
	}
}

func TestPointerHelpers(t *testing.T) {
	assert.Equal(t, "x", *String("x"))
	assert.Equal(t, int64(7), *Int64(7))
	assert.Equal(t, 3, *Int(3))
}
