package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client preferences between runs
type MetadataStorage interface {
	// SavePagination remembers the last page and page size used for a resource list
	SavePagination(ctx context.Context, resource string, p Pagination) error

	// GetPagination returns the remembered pagination for a resource
	// Returns zero Pagination if nothing was saved yet
	GetPagination(ctx context.Context, resource string) (Pagination, error)
}

// Pagination is the remembered list position of a resource.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}
