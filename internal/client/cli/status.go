package cli

import (
	"context"
	"errors"
	"time"

	"github.com/salafuz/admin-panel/internal/client/api"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()
	c.io.Println("Status: Authenticated")
	c.io.Printf("Server: %s\n", c.client.BaseURL())

	if exp, err := c.session.TokenExpiry(); err == nil {
		c.io.Printf("Token expires: %s\n", exp.Format(time.RFC3339))
		if remaining := time.Until(exp); remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			c.io.Println("⚠️  Access token has expired; it will be refreshed on the next request.")
		}
	}

	// Профиль запрашивается с сервера: заодно проверяется, что сессия жива
	profile, err := c.client.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return err
		}
		c.io.Printf("\nWarning: failed to load profile: %v\n", err)
		return nil
	}

	c.io.Println()
	c.io.Printf("User:  %s\n", profile.Login)
	if profile.Name != "" {
		c.io.Printf("Name:  %s\n", profile.Name)
	}
	c.io.Printf("Role:  %s\n", profile.Role)
	return nil
}
