package api

import (
	"context"
	"errors"
)

//go:generate moq -out session_mock.go . SessionHandler

// SessionHandler is the part of the session manager the retry policy needs
type SessionHandler interface {
	// IsAuthenticated reports whether an access token is present
	IsAuthenticated() bool

	// Refresh renews the token pair; false means the session could not be renewed
	Refresh(ctx context.Context) bool

	// Logout clears the session. Never fails.
	Logout(ctx context.Context)
}

// attempt is the retry state of one outgoing request
type attempt int

const (
	// firstAttempt: a 401 may trigger one refresh and one replay
	firstAttempt attempt = iota
	// retried: any further 401 is surfaced to the caller as is
	retried
)

// UseSession installs the session handler consulted on 401 responses
func (c *Client) UseSession(s SessionHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// OnLoginRequired sets the callback invoked when the session could not be refreshed
// and the user has to go back to the login boundary
func (c *Client) OnLoginRequired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onLoginRequired = fn
}

func (c *Client) sessionHandler() (SessionHandler, func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session, c.onLoginRequired
}

// do sends r and applies the authenticated retry policy
func (c *Client) do(ctx context.Context, r request, state attempt, result any) error {
	err := c.send(ctx, r, result)
	if err == nil {
		return nil
	}

	if state != firstAttempt || !IsUnauthorized(err) {
		return err
	}

	session, loginRequired := c.sessionHandler()
	if session == nil || !session.IsAuthenticated() {
		return err
	}

	c.logger.DebugContext(ctx, "access token rejected, refreshing session", "method", r.method, "path", r.path)

	if session.Refresh(ctx) {
		// Тот же метод, путь и тело; токен подставится свежий
		return c.do(ctx, r, retried, result)
	}

	session.Logout(ctx)
	if loginRequired != nil {
		loginRequired()
	}

	return errors.Join(ErrSessionExpired, err)
}
