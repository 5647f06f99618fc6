package storage

import (
	"context"
	"io"
)

// FileStorage defines interface for uploaded file persistence
type FileStorage interface {
	// Save writes data under name and returns the number of bytes written
	Save(ctx context.Context, name string, data io.Reader) (int64, error)

	// Open returns file content for reading
	// Returns ErrFileNotFound if file doesn't exist
	Open(ctx context.Context, name string) (io.ReadSeekCloser, error)

	// Delete removes file; missing file is not an error
	Delete(ctx context.Context, name string) error
}
