package boltdb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/salafuz/admin-panel/internal/client/storage"
)

func TestStorage_SaveGetDeleteToken(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// До сохранения токена нет
	_, err := store.GetToken(ctx, storage.AccessTokenName)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	record := storage.NewSessionToken(storage.AccessTokenName, "A1")
	require.NoError(t, store.SaveToken(ctx, record))

	got, err := store.GetToken(ctx, storage.AccessTokenName)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.Value)
	assert.Equal(t, http.SameSiteStrictMode, got.SameSite)
	assert.True(t, got.Secure)
	assert.False(t, got.UpdatedAt.IsZero())

	// Перезапись по тому же имени
	require.NoError(t, store.SaveToken(ctx, storage.NewSessionToken(storage.AccessTokenName, "A2")))
	got, err = store.GetToken(ctx, storage.AccessTokenName)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Value)

	// Удаляем
	require.NoError(t, store.DeleteToken(ctx, storage.AccessTokenName))
	_, err = store.GetToken(ctx, storage.AccessTokenName)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	// Повторное удаление не ошибка
	assert.NoError(t, store.DeleteToken(ctx, storage.AccessTokenName))
}

func TestStorage_TokensAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveToken(ctx, storage.NewSessionToken(storage.AccessTokenName, "A1")))
	require.NoError(t, store.SaveToken(ctx, storage.NewSessionToken(storage.RefreshTokenName, "R1")))

	require.NoError(t, store.DeleteToken(ctx, storage.AccessTokenName))

	refresh, err := store.GetToken(ctx, storage.RefreshTokenName)
	require.NoError(t, err)
	assert.Equal(t, "R1", refresh.Value)
}

func TestStorage_SaveToken_Invalid(t *testing.T) {
	store := createTestStorage(t)

	assert.Error(t, store.SaveToken(context.Background(), nil))
	assert.Error(t, store.SaveToken(context.Background(), &storage.TokenRecord{Value: "no-name"}))
}

func TestStorage_Token_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketTokens)
	})
	require.NoError(t, err)

	err = store.SaveToken(ctx, storage.NewSessionToken(storage.AccessTokenName, "A1"))
	assert.ErrorContains(t, err, "tokens bucket not found")

	_, err = store.GetToken(ctx, storage.AccessTokenName)
	assert.ErrorContains(t, err, "tokens bucket not found")

	err = store.DeleteToken(ctx, storage.AccessTokenName)
	assert.ErrorContains(t, err, "tokens bucket not found")
}
