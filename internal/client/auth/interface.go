package auth

import (
	"context"

	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

//go:generate moq -out api_mock.go . API BearerHolder

// API is the part of the remote API the session manager talks to.
// Implemented by *api.Client.
type API interface {
	// Login обменивает учетные данные на пару токенов
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)

	// Refresh обменивает refresh token на новую пару
	Refresh(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error)

	// Logout отзывает refresh токены на сервере
	Logout(ctx context.Context) error
}

// BearerHolder owns the default Authorization header of the HTTP client
type BearerHolder interface {
	SetBearer(token string)
	ClearBearer()
}
