package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/salafuz/admin-panel/internal/client/storage"
)

// SaveToken stores a token record under its name
func (s *Storage) SaveToken(ctx context.Context, token *storage.TokenRecord) error {
	if token == nil || token.Name == "" {
		return fmt.Errorf("token record must have a name")
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		// Сериализуем запись в JSON
		data, err := json.Marshal(token)
		if err != nil {
			return fmt.Errorf("failed to marshal token: %w", err)
		}

		if err := bucket.Put([]byte(token.Name), data); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		return nil
	})
}

// GetToken retrieves a token record by name
func (s *Storage) GetToken(ctx context.Context, name string) (*storage.TokenRecord, error) {
	var token *storage.TokenRecord

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		data := bucket.Get([]byte(name))
		if data == nil {
			return storage.ErrTokenNotFound
		}

		token = &storage.TokenRecord{}
		if err := json.Unmarshal(data, token); err != nil {
			return fmt.Errorf("failed to unmarshal token: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return token, nil
}

// DeleteToken removes a token record (logout)
func (s *Storage) DeleteToken(ctx context.Context, name string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		// Delete на отсутствующем ключе в bbolt не возвращает ошибку
		if err := bucket.Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}

		return nil
	})
}
