package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(c.io)
	login := fs.String("login", "", "login name (prompted if empty)")
	passwordFile := fs.String("password-file", "", "path to a file containing the password")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	c.io.Println("=== Login ===")
	c.io.Println()

	if *login == "" {
		value, err := c.io.ReadInput("Login: ")
		if err != nil {
			return fmt.Errorf("failed to read login: %w", err)
		}
		*login = value
	}

	password, err := c.readPassword(*passwordFile)
	if err != nil {
		return err
	}

	c.io.Println("Authenticating...")

	if !c.session.Login(ctx, pkgapi.LoginRequest{Login: *login, Password: password}) {
		c.printFieldErrors(c.session.Err())
		return fmt.Errorf("login failed: %s", c.session.ErrMessage())
	}

	session := c.session.Current()
	c.io.Println()
	c.io.Println("✓ Login successful!")
	if session.User != nil {
		c.io.Printf("User: %s (%s)\n", session.User.Login, session.User.Role)
	}
	if exp, err := c.session.TokenExpiry(); err == nil {
		c.io.Printf("Access token expires: %s\n", formatTime(exp))
	}
	return nil
}

// readPassword получает пароль в порядке приоритета:
// 1. Переменная окружения ADMIN_PASSWORD
// 2. Файл из --password-file
// 3. Интерактивный ввод без эха
func (c *Cli) readPassword(file string) (string, error) {
	if env := os.Getenv(PasswordEnv); env != "" {
		return env, nil
	}

	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}
