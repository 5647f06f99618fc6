package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/salafuz/admin-panel/internal/crypto"
	"github.com/salafuz/admin-panel/internal/models"
	"github.com/salafuz/admin-panel/internal/server/storage"
	"github.com/salafuz/admin-panel/pkg/api"
)

// EnsureAdmin создает администратора при первом запуске.
// Существующий пользователь не меняется; без пароля seed пропускается.
func EnsureAdmin(ctx context.Context, users storage.UserStorage, login, password string, logger *slog.Logger) error {
	if login == "" || password == "" {
		logger.InfoContext(ctx, "admin seed skipped: credentials not configured")
		return nil
	}

	_, err := users.GetUserByLogin(ctx, login)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.User{
		Login:        login,
		Name:         "Administrator",
		Role:         api.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := users.CreateUser(ctx, user); err != nil {
		// Другой экземпляр успел создать его раньше
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	logger.InfoContext(ctx, "admin user created", slog.String("login", login), slog.Int64("user_id", user.ID))
	return nil
}
