package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADMIN_API_BASE_URL", "ADMIN_DB_PATH", "ADMIN_LOG_LEVEL", "ADMIN_LOG_FORMAT", "ADMIN_API_TIMEOUT"} {
		// t.Setenv восстановит исходное значение после теста
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:7000/api/v1", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "admin-client.db", cfg.DBPath)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ADMIN_API_BASE_URL", "https://api.salaf.uz/api/v1")
	t.Setenv("ADMIN_API_TIMEOUT", "3s")
	t.Setenv("ADMIN_DB_PATH", "/tmp/admin.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.salaf.uz/api/v1", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/admin.db", cfg.DBPath)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("ADMIN_API_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
