package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/salafuz/admin-panel/internal/client/storage"
)

// tokenStore сохраняет пару токенов как две отдельные записи
// (access_token, refresh_token) с атрибутами SameSite=Strict и Secure.
type tokenStore struct {
	storage storage.TokenStorage
}

func (s tokenStore) save(ctx context.Context, access, refresh string) error {
	if err := s.storage.SaveToken(ctx, storage.NewSessionToken(storage.AccessTokenName, access)); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}
	if err := s.storage.SaveToken(ctx, storage.NewSessionToken(storage.RefreshTokenName, refresh)); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// load возвращает сохраненные токены. Отсутствующий токен дает пустую строку.
func (s tokenStore) load(ctx context.Context) (access, refresh string, err error) {
	access, err = s.get(ctx, storage.AccessTokenName)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.get(ctx, storage.RefreshTokenName)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s tokenStore) get(ctx context.Context, name string) (string, error) {
	rec, err := s.storage.GetToken(ctx, name)
	if errors.Is(err, storage.ErrTokenNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", name, err)
	}
	return rec.Value, nil
}

// delete удаляет обе записи; ошибки собираются, а не прерывают удаление
func (s tokenStore) delete(ctx context.Context) error {
	return errors.Join(
		s.storage.DeleteToken(ctx, storage.AccessTokenName),
		s.storage.DeleteToken(ctx, storage.RefreshTokenName),
	)
}
