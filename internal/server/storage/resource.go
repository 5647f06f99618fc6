package storage

import (
	"context"
	"time"

	"github.com/salafuz/admin-panel/internal/models"
)

// ResourceStorage defines interface for resource persistence.
// Every method is scoped by kind (posts, categories, tags, scholars, images).
type ResourceStorage interface {
	// CreateRecord inserts a new record and assigns rec.ID and timestamps
	CreateRecord(ctx context.Context, rec *models.Record) error

	// GetRecord retrieves record by kind and id, deleted records included
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecord(ctx context.Context, kind string, id int64) (*models.Record, error)

	// FindRecordByName retrieves live record by exact name
	// Returns ErrRecordNotFound if nothing matches
	FindRecordByName(ctx context.Context, kind, name string) (*models.Record, error)

	// ListRecords returns one page of records and the total count matching filter
	ListRecords(ctx context.Context, filter models.ListFilter) ([]*models.Record, int, error)

	// UpdateRecord stores name, status and attributes of a live record, bumps updated_at
	// Returns ErrRecordNotFound if record doesn't exist or is deleted
	UpdateRecord(ctx context.Context, rec *models.Record) error

	// SoftDeleteRecord sets deleted_at of a live record
	// Returns ErrRecordNotFound if record doesn't exist or is already deleted
	SoftDeleteRecord(ctx context.Context, kind string, id int64, at time.Time) error

	// RestoreRecord clears deleted_at of a deleted record
	// Returns ErrRecordNotFound if record doesn't exist or is not deleted
	RestoreRecord(ctx context.Context, kind string, id int64) error

	// ForceDeleteRecord removes record permanently
	// Returns ErrRecordNotFound if record doesn't exist
	ForceDeleteRecord(ctx context.Context, kind string, id int64) error
}
