package storage

import (
	"context"

	"github.com/salafuz/admin-panel/internal/models"
)

// TokenStorage defines interface for refresh token persistence
type TokenStorage interface {
	// SaveRefreshToken stores a new refresh token
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error

	// ConsumeRefreshToken atomically reads and deletes refresh token.
	// A token can be consumed only once.
	// Returns ErrTokenNotFound if token doesn't exist
	ConsumeRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// DeleteUserTokens deletes all refresh tokens for a user
	// Returns number of deleted tokens
	DeleteUserTokens(ctx context.Context, userID int64) (int, error)

	// DeleteExpiredTokens removes all expired tokens
	DeleteExpiredTokens(ctx context.Context) (int, error)
}
