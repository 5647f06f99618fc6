package api

import (
	"net/url"
	"strconv"
)

// Sort directions
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery describes list filters and pagination. Zero values are omitted from the query string.
type ListQuery struct {
	Search    string
	Sort      string
	Direction string
	Status    string
	Page      int
	PerPage   int
}

// Values encodes the query as URL parameters (page, per_page, search, sort, direction, status).
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Direction != "" {
		v.Set("direction", q.Direction)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

// String returns a pointer to s. Handy for building *Input values.
func String(s string) *string { return &s }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
