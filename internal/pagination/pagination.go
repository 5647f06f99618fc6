// Package pagination reads page/per_page query parameters.
package pagination

import (
	"net/http"
	"strconv"
)

// Defaults and limits
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns pagination defaults.
func DefaultParams() Params {
	return Params{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		Offset:  0,
	}
}

// FromRequest extracts pagination parameters from an HTTP request.
// per_page may also be sent as limit; values above MaxPerPage are clamped.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()
	q := r.URL.Query()

	if page := q.Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	perPage := q.Get("per_page")
	if perPage == "" {
		perPage = q.Get("limit")
	}
	if perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 {
			p.PerPage = min(v, MaxPerPage)
		}
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}
