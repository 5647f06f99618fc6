package storage

import (
	"context"
	"net/http"
	"time"
)

//go:generate moq -out token_mock.go . TokenStorage

// Names of the persisted session tokens
const (
	AccessTokenName  = "access_token"
	RefreshTokenName = "refresh_token"
)

// TokenStorage defines interface for durable client-side token persistence.
// It keeps plain string values together with the attributes they were stored with.
type TokenStorage interface {
	// SaveToken stores or replaces a token record by its name
	SaveToken(ctx context.Context, token *TokenRecord) error

	// GetToken retrieves a token record by name
	// Returns ErrTokenNotFound if nothing is stored under that name
	GetToken(ctx context.Context, name string) (*TokenRecord, error)

	// DeleteToken removes a token record. Deleting a missing token is not an error.
	DeleteToken(ctx context.Context, name string) error
}

// TokenRecord is a persisted token with cookie-like attributes.
type TokenRecord struct {
	UpdatedAt time.Time     `json:"updated_at"`
	Name      string        `json:"name"`
	Value     string        `json:"value"`
	SameSite  http.SameSite `json:"same_site"`
	Secure    bool          `json:"secure"`
}

// NewSessionToken builds a record with the attributes used for session tokens:
// SameSite=Strict and Secure.
func NewSessionToken(name, value string) *TokenRecord {
	return &TokenRecord{
		Name:      name,
		Value:     value,
		SameSite:  http.SameSiteStrictMode,
		Secure:    true,
		UpdatedAt: time.Now().UTC(),
	}
}
