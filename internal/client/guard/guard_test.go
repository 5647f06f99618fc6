package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type presence bool

func (p presence) IsAuthenticated() bool { return bool(p) }

func TestCheck(t *testing.T) {
	tests := []struct {
		tokens TokenPresence
		name   string
		target string
		want   Decision
	}{
		{name: "authenticated", target: "posts", tokens: presence(true), want: Decision{Allow: true}},
		{name: "unauthenticated redirects", target: "posts", tokens: presence(false), want: Decision{Redirect: LoginRoute}},
		{name: "nil presence redirects", target: "/scholars", tokens: nil, want: Decision{Redirect: LoginRoute}},
		{name: "login without token", target: "login", tokens: presence(false), want: Decision{Allow: true}},
		{name: "login path without token", target: "/login", tokens: presence(false), want: Decision{Allow: true}},
		{name: "login with token", target: "login", tokens: presence(true), want: Decision{Allow: true}},
		{name: "similar name is not login", target: "login-history", tokens: presence(false), want: Decision{Redirect: LoginRoute}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.target, tt.tokens))
		})
	}
}
