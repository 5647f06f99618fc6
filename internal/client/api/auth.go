package api

import (
	"context"
	"fmt"
	"net/http"

	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

// Login выполняет аутентификацию по логину и паролю.
// Запрос не проходит через политику повтора: 401 здесь означает неверные данные.
func (c *Client) Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error) {
	var resp pkgapi.TokenResponse
	if err := c.call(ctx, http.MethodPost, "/auth/login", nil, req, &resp, retried); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обменивает refresh token на новую пару токенов
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error) {
	var resp pkgapi.TokenResponse
	req := pkgapi.RefreshRequest{RefreshToken: refreshToken}
	if err := c.call(ctx, http.MethodPost, "/auth/refresh", nil, req, &resp, retried); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout уведомляет сервер о выходе (отзыв refresh токенов пользователя)
func (c *Client) Logout(ctx context.Context) error {
	if err := c.call(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, retried); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*pkgapi.UserProfile, error) {
	var resp pkgapi.UserProfile
	if err := c.call(ctx, http.MethodGet, "/auth/me", nil, nil, &resp, firstAttempt); err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &resp, nil
}
