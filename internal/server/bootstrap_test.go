package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salafuz/admin-panel/internal/crypto"
	"github.com/salafuz/admin-panel/internal/server/storage"
	"github.com/salafuz/admin-panel/internal/server/storage/sqlite"
	"github.com/salafuz/admin-panel/pkg/api"
)

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	s, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()

	t.Run("Skipped without password", func(t *testing.T) {
		require.NoError(t, EnsureAdmin(ctx, s, "root", "", logger))

		_, err := s.GetUserByLogin(ctx, "root")
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("Creates admin once", func(t *testing.T) {
		require.NoError(t, EnsureAdmin(ctx, s, "root", "first-password", logger))

		user, err := s.GetUserByLogin(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, api.RoleAdmin, user.Role)
		assert.NoError(t, crypto.VerifyPassword("first-password", user.PasswordHash))

		// Повторный запуск с другим паролем не меняет существующего пользователя
		require.NoError(t, EnsureAdmin(ctx, s, "root", "second-password", logger))

		again, err := s.GetUserByLogin(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, user.ID, again.ID)
		assert.NoError(t, crypto.VerifyPassword("first-password", again.PasswordHash))
	})
}
