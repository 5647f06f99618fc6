package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/salafuz/admin-panel/internal/client/storage"
)

func paginationKey(resource string) []byte {
	return []byte("pagination:" + resource)
}

// SavePagination remembers list position for a resource
func (s *Storage) SavePagination(ctx context.Context, resource string, p storage.Pagination) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal pagination: %w", err)
		}

		if err := bucket.Put(paginationKey(resource), data); err != nil {
			return fmt.Errorf("failed to save pagination: %w", err)
		}

		return nil
	})
}

// GetPagination returns remembered list position for a resource
// Returns zero value if nothing was saved yet
func (s *Storage) GetPagination(ctx context.Context, resource string) (storage.Pagination, error) {
	var p storage.Pagination

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get(paginationKey(resource))
		if data == nil {
			// Список еще ни разу не открывали
			return nil
		}

		return json.Unmarshal(data, &p)
	})

	if err != nil {
		return storage.Pagination{}, fmt.Errorf("failed to get pagination: %w", err)
	}

	return p, nil
}
