package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apiclient "github.com/salafuz/admin-panel/internal/client/api"
	"github.com/salafuz/admin-panel/internal/client/storage"
	"github.com/salafuz/admin-panel/internal/validation"
	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

// Сообщения по умолчанию, если сервер не прислал свое
const (
	defaultLoginMessage   = "Login failed."
	defaultRefreshMessage = "Session refresh failed."
)

// ErrNoAccessToken возвращается, когда сессия не аутентифицирована
var ErrNoAccessToken = errors.New("no access token")

// Session is a snapshot of the current session.
// AccessToken is empty if and only if the session is unauthenticated.
type Session struct {
	User         *pkgapi.UserProfile
	AccessToken  string
	RefreshToken string
}

// Manager владеет текущей сессией: парой токенов и профилем пользователя.
// Токены сохраняются в TokenStorage, заголовок Authorization выставляется через BearerHolder.
type Manager struct {
	api     API
	bearer  BearerHolder
	tokens  tokenStore
	logger  *slog.Logger
	err     error
	errMsg  string
	session Session
	mu      sync.RWMutex
}

// Compile-time check: Manager is the session handler of the retry policy
var _ apiclient.SessionHandler = (*Manager)(nil)

// NewManager создает менеджер с пустой сессией
func NewManager(api API, tokens storage.TokenStorage, bearer BearerHolder, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		api:    api,
		bearer: bearer,
		tokens: tokenStore{storage: tokens},
		logger: logger,
	}
}

// Login отправляет учетные данные и при успехе устанавливает сессию.
// Ошибка не выходит за пределы метода: она записывается и доступна через Err.
func (m *Manager) Login(ctx context.Context, creds pkgapi.LoginRequest) bool {
	if err := validation.ValidateCredentials(creds); err != nil {
		m.setErr(err, defaultLoginMessage)
		return false
	}

	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		m.logger.WarnContext(ctx, "login failed", "login", creds.Login, "error", err)
		m.setErr(err, defaultLoginMessage)
		return false
	}

	if err := m.SetSession(ctx, resp.AccessToken, resp.RefreshToken, resp.User); err != nil {
		// Сессия в памяти уже установлена, запрос выше прошел успешно
		m.logger.WarnContext(ctx, "failed to persist session", "error", err)
	}
	m.setErr(nil, "")

	m.logger.InfoContext(ctx, "logged in", "login", creds.Login)
	return true
}

// SetSession заменяет все три поля сессии, сохраняет токены и обновляет заголовок Authorization.
// Ошибка означает только сбой сохранения: сессия в памяти уже заменена.
func (m *Manager) SetSession(ctx context.Context, access, refresh string, user *pkgapi.UserProfile) error {
	m.mu.Lock()
	m.session = Session{AccessToken: access, RefreshToken: refresh, User: user}
	m.mu.Unlock()

	m.bearer.SetBearer(access)

	return m.tokens.save(ctx, access, refresh)
}

// Logout очищает сессию, удаляет сохраненные токены и заголовок Authorization. Never fails.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.session = Session{}
	m.mu.Unlock()

	m.bearer.ClearBearer()

	if err := m.tokens.delete(ctx); err != nil {
		m.logger.WarnContext(ctx, "failed to delete persisted tokens", "error", err)
	}
}

// SignOut уведомляет сервер о выходе (best effort) и затем выполняет Logout
func (m *Manager) SignOut(ctx context.Context) {
	if m.IsAuthenticated() {
		if err := m.api.Logout(ctx); err != nil {
			// Не прерываем выход, если сервер недоступен
			m.logger.WarnContext(ctx, "failed to logout on server", "error", err)
		}
	}
	m.Logout(ctx)
}

// Refresh обновляет пару токенов. Без refresh токена сразу возвращает false без сетевого вызова.
// При любой ошибке выполняет Logout. Одновременные вызовы не объединяются.
func (m *Manager) Refresh(ctx context.Context) bool {
	m.mu.RLock()
	refreshToken := m.session.RefreshToken
	user := m.session.User
	m.mu.RUnlock()

	if refreshToken == "" {
		return false
	}

	resp, err := m.api.Refresh(ctx, refreshToken)
	if err != nil {
		m.logger.WarnContext(ctx, "session refresh failed", "error", err)
		m.setErr(err, defaultRefreshMessage)
		m.Logout(ctx)
		return false
	}

	if resp.User != nil {
		user = resp.User
	}
	if err := m.SetSession(ctx, resp.AccessToken, resp.RefreshToken, user); err != nil {
		m.logger.WarnContext(ctx, "failed to persist session", "error", err)
	}

	m.setErr(nil, "")
	m.logger.DebugContext(ctx, "session refreshed")
	return true
}

// Restore загружает сохраненные токены в сессию при старте процесса.
// Профиль пользователя не сохраняется и остается nil.
func (m *Manager) Restore(ctx context.Context) error {
	access, refresh, err := m.tokens.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if access == "" {
		return nil
	}

	m.mu.Lock()
	m.session = Session{AccessToken: access, RefreshToken: refresh}
	m.mu.Unlock()

	m.bearer.SetBearer(access)
	return nil
}

// IsAuthenticated reports whether an access token is present
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.AccessToken != ""
}

// AccessToken returns the current access token, empty if unauthenticated
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.AccessToken
}

// Current returns a copy of the session
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Err returns the error recorded by the last failed Login or Refresh
func (m *Manager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// ErrMessage returns a human readable form of Err: the server message when present,
// validation details for local failures, a default otherwise. Empty if there is no error.
func (m *Manager) ErrMessage() string {
	err := m.Err()
	if err == nil {
		return ""
	}

	if msg := apiclient.Message(err); msg != "" {
		return msg
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Error()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errMsg
}

// TokenExpiry returns the exp claim of the access token. The signature is not verified:
// only the server can do that, the client reads the claim for display.
func (m *Manager) TokenExpiry() (time.Time, error) {
	token := m.AccessToken()
	if token == "" {
		return time.Time{}, ErrNoAccessToken
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("access token has no exp claim")
	}

	return exp.Time, nil
}

func (m *Manager) setErr(err error, defaultMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	m.errMsg = defaultMsg
}
