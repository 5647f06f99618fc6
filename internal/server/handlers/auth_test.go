package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salafuz/admin-panel/internal/crypto"
	"github.com/salafuz/admin-panel/internal/models"
	"github.com/salafuz/admin-panel/internal/server/jwt"
	"github.com/salafuz/admin-panel/internal/server/storage"
	"github.com/salafuz/admin-panel/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users           map[string]*models.User // login -> User
	getUserError    error
	updateLastLogin func(ctx context.Context, userID int64, loginTime time.Time) error
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if _, exists := m.users[user.Login]; exists {
		return storage.ErrUserAlreadyExists
	}
	user.ID = int64(len(m.users) + 1)
	m.users[user.Login] = user
	return nil
}

func (m *mockUserStorage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[login]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID int64, loginTime time.Time) error {
	if m.updateLastLogin != nil {
		return m.updateLastLogin(ctx, userID, loginTime)
	}
	return nil
}

// mockTokenStorage is a mock implementation of TokenStorage for testing
type mockTokenStorage struct {
	tokens    map[string]*models.RefreshToken
	saveError error
}

func (m *mockTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.tokens[token.Token] = token
	return nil
}

func (m *mockTokenStorage) ConsumeRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	stored, ok := m.tokens[token]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	delete(m.tokens, token)
	return stored, nil
}

func (m *mockTokenStorage) DeleteUserTokens(ctx context.Context, userID int64) (int, error) {
	count := 0
	for key, token := range m.tokens {
		if token.UserID == userID {
			delete(m.tokens, key)
			count++
		}
	}
	return count, nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	return 0, nil
}

type authFixture struct {
	handler *AuthHandler
	users   *mockUserStorage
	tokens  *mockTokenStorage
	jwt     *jwt.Service
}

func setupAuthHandler(t *testing.T) *authFixture {
	t.Helper()

	hash, err := crypto.HashPassword("secret-pass")
	require.NoError(t, err)

	users := &mockUserStorage{users: map[string]*models.User{
		"admin": {ID: 1, Login: "admin", Name: "Admin", Role: api.RoleAdmin, PasswordHash: hash},
	}}
	tokens := &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
	service := jwt.NewService("test-secret-key-for-handlers", 15*time.Minute, time.Hour)

	return &authFixture{
		handler: NewAuthHandler(setupTestLogger(), users, tokens, service),
		users:   users,
		tokens:  tokens,
		jwt:     service,
	}
}

func postJSON(t *testing.T, target string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestAuthHandler_Login_Success(t *testing.T) {
	f := setupAuthHandler(t)

	var lastLoginCalled bool
	f.users.updateLastLogin = func(ctx context.Context, userID int64, loginTime time.Time) error {
		lastLoginCalled = true
		assert.Equal(t, int64(1), userID)
		return nil
	}

	w := httptest.NewRecorder()
	f.handler.Login(w, postJSON(t, "/api/v1/auth/login", api.LoginRequest{Login: "admin", Password: "secret-pass"}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(15*60), resp.ExpiresIn)
	require.NotNil(t, resp.User)
	assert.Equal(t, api.UserProfile{ID: 1, Login: "admin", Name: "Admin", Role: api.RoleAdmin}, *resp.User)

	claims, err := f.jwt.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, api.RoleAdmin, claims.Role)

	assert.Contains(t, f.tokens.tokens, resp.RefreshToken, "refresh token should be stored")
	assert.True(t, lastLoginCalled)
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		body       any
		wantFields []string
		name       string
		wantCode   int
	}{
		{
			name:     "invalid JSON",
			body:     "{not json",
			wantCode: http.StatusBadRequest,
		},
		{
			name:       "empty fields",
			body:       api.LoginRequest{},
			wantCode:   http.StatusUnprocessableEntity,
			wantFields: []string{"login", "password"},
		},
		{
			name:     "user not found",
			body:     api.LoginRequest{Login: "ghost", Password: "secret-pass"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "wrong password",
			body:     api.LoginRequest{Login: "admin", Password: "wrong-pass"},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupAuthHandler(t)

			var req *http.Request
			if s, ok := tt.body.(string); ok {
				req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(s))
			} else {
				req = postJSON(t, "/api/v1/auth/login", tt.body)
			}
			w := httptest.NewRecorder()

			f.handler.Login(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			resp := decodeError(t, w)
			for _, field := range tt.wantFields {
				assert.Contains(t, resp.Errors, field)
			}
			if tt.wantCode == http.StatusUnauthorized {
				// Одинаковый ответ для неизвестного логина и неверного пароля
				assert.Equal(t, "Invalid login or password.", resp.Message)
			}
			assert.Empty(t, f.tokens.tokens)
		})
	}
}

func TestAuthHandler_Login_UpdateLastLoginError(t *testing.T) {
	f := setupAuthHandler(t)
	f.users.updateLastLogin = func(ctx context.Context, userID int64, loginTime time.Time) error {
		return errors.New("database is locked")
	}

	w := httptest.NewRecorder()
	f.handler.Login(w, postJSON(t, "/api/v1/auth/login", api.LoginRequest{Login: "admin", Password: "secret-pass"}))

	// Ошибка last_login не мешает входу
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Login_SaveTokenError(t *testing.T) {
	f := setupAuthHandler(t)
	f.tokens.saveError = errors.New("disk full")

	w := httptest.NewRecorder()
	f.handler.Login(w, postJSON(t, "/api/v1/auth/login", api.LoginRequest{Login: "admin", Password: "secret-pass"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandler_Login_StorageError(t *testing.T) {
	f := setupAuthHandler(t)
	f.users.getUserError = errors.New("connection reset")

	w := httptest.NewRecorder()
	f.handler.Login(w, postJSON(t, "/api/v1/auth/login", api.LoginRequest{Login: "admin", Password: "secret-pass"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("Success rotates token", func(t *testing.T) {
		f := setupAuthHandler(t)
		f.tokens.tokens["old-token"] = &models.RefreshToken{
			Token:     "old-token",
			UserID:    1,
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}

		w := httptest.NewRecorder()
		f.handler.Refresh(w, postJSON(t, "/api/v1/auth/refresh", api.RefreshRequest{RefreshToken: "old-token"}))

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.TokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEqual(t, "old-token", resp.RefreshToken)
		assert.NotContains(t, f.tokens.tokens, "old-token", "old token must be consumed")
		assert.Contains(t, f.tokens.tokens, resp.RefreshToken)
		require.NotNil(t, resp.User)
		assert.Equal(t, "admin", resp.User.Login)

		// Повторное использование старого токена
		w = httptest.NewRecorder()
		f.handler.Refresh(w, postJSON(t, "/api/v1/auth/refresh", api.RefreshRequest{RefreshToken: "old-token"}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Empty token", func(t *testing.T) {
		f := setupAuthHandler(t)
		w := httptest.NewRecorder()
		f.handler.Refresh(w, postJSON(t, "/api/v1/auth/refresh", api.RefreshRequest{}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired token", func(t *testing.T) {
		f := setupAuthHandler(t)
		f.tokens.tokens["stale"] = &models.RefreshToken{
			Token:     "stale",
			UserID:    1,
			ExpiresAt: time.Now().Add(-time.Minute),
		}

		w := httptest.NewRecorder()
		f.handler.Refresh(w, postJSON(t, "/api/v1/auth/refresh", api.RefreshRequest{RefreshToken: "stale"}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "refresh token expired", decodeError(t, w).Message)
		assert.Empty(t, f.tokens.tokens)
	})

	t.Run("User removed", func(t *testing.T) {
		f := setupAuthHandler(t)
		f.tokens.tokens["orphan"] = &models.RefreshToken{
			Token:     "orphan",
			UserID:    99,
			ExpiresAt: time.Now().Add(time.Hour),
		}

		w := httptest.NewRecorder()
		f.handler.Refresh(w, postJSON(t, "/api/v1/auth/refresh", api.RefreshRequest{RefreshToken: "orphan"}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("Deletes user tokens", func(t *testing.T) {
		f := setupAuthHandler(t)
		f.tokens.tokens["a"] = &models.RefreshToken{Token: "a", UserID: 1}
		f.tokens.tokens["b"] = &models.RefreshToken{Token: "b", UserID: 1}
		f.tokens.tokens["c"] = &models.RefreshToken{Token: "c", UserID: 2}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req = req.WithContext(WithClaims(req.Context(), &jwt.Claims{UserID: 1, Login: "admin"}))
		w := httptest.NewRecorder()

		f.handler.Logout(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Len(t, f.tokens.tokens, 1)
		assert.Contains(t, f.tokens.tokens, "c")
	})

	t.Run("Without claims", func(t *testing.T) {
		f := setupAuthHandler(t)
		w := httptest.NewRecorder()
		f.handler.Logout(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	f := setupAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(WithClaims(req.Context(), &jwt.Claims{UserID: 1, Login: "admin"}))
	w := httptest.NewRecorder()

	f.handler.Me(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var profile api.UserProfile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
	assert.Equal(t, "admin", profile.Login)
	assert.Equal(t, api.RoleAdmin, profile.Role)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(WithClaims(req.Context(), &jwt.Claims{UserID: 42}))
	w = httptest.NewRecorder()
	f.handler.Me(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
