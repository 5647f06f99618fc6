package models

import (
	"time"

	"github.com/salafuz/admin-panel/pkg/api"
)

// User представляет пользователя админ-панели
type User struct {
	CreatedAt    time.Time  `json:"created_at"`           // время создания
	LastLogin    *time.Time `json:"last_login,omitempty"` // время последнего входа
	Login        string     `json:"login"`                // уникальный логин
	Name         string     `json:"name"`                 // отображаемое имя
	Role         string     `json:"role"`                 // admin или editor
	PasswordHash string     `json:"-"`                    // argon2id хеш пароля
	ID           int64      `json:"id"`
}

// Profile возвращает профиль пользователя в формате API
func (u *User) Profile() *api.UserProfile {
	return &api.UserProfile{
		ID:    u.ID,
		Login: u.Login,
		Name:  u.Name,
		Role:  u.Role,
	}
}

// IsAdmin сообщает, есть ли у пользователя роль admin
func (u *User) IsAdmin() bool {
	return u.Role == api.RoleAdmin
}

// RefreshToken представляет одноразовый refresh token пользователя
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
	Token     string    `json:"token"`      // случайное значение токена
	UserID    int64     `json:"user_id"`    // ID пользователя
}

// Expired сообщает, истек ли токен к моменту now
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
