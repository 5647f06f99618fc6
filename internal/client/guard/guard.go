// Package guard decides whether a navigation target may be opened
// with the current session.
package guard

import "strings"

// LoginRoute is the login boundary. Every other route requires a session token.
const LoginRoute = "login"

// TokenPresence reports whether a session token is present. *auth.Manager satisfies it.
type TokenPresence interface {
	IsAuthenticated() bool
}

// Decision is the outcome of Check. Redirect is set only when Allow is false.
type Decision struct {
	Redirect string
	Allow    bool
}

// IsLoginRoute reports whether target is the login boundary ("login" or "/login")
func IsLoginRoute(target string) bool {
	return strings.Trim(strings.TrimSpace(target), "/") == LoginRoute
}

// Check allows navigation when a token is present or the target is the login boundary,
// otherwise redirects to the login boundary. No side effects.
func Check(target string, tokens TokenPresence) Decision {
	if IsLoginRoute(target) {
		return Decision{Allow: true}
	}
	if tokens != nil && tokens.IsAuthenticated() {
		return Decision{Allow: true}
	}
	return Decision{Redirect: LoginRoute}
}
