package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_CONN", "postgres://localhost/reviews")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, 5*time.Minute, cfg.ReviewCacheTTL)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("POSTGRES_CONN", "postgres://db/reviews")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ENV", "production")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REVIEW_CACHE_TTL", "90s")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 90*time.Second, cfg.ReviewCacheTTL)
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("POSTGRES_CONN=postgres://file/reviews\nJWT_SECRET=from-file\n"), 0o600))
	// godotenv does not override variables that are already set
	t.Setenv("POSTGRES_CONN", "")
	os.Unsetenv("POSTGRES_CONN")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/reviews", cfg.PostgresConn)
	assert.Equal(t, "from-file", cfg.JWTSecret)
}

func TestLoadRequiresPostgresConn(t *testing.T) {
	t.Setenv("POSTGRES_CONN", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load(noEnvFile(t))
	assert.ErrorIs(t, err, ErrNoPostgresConn)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("POSTGRES_CONN", "postgres://localhost/reviews")
	t.Setenv("JWT_SECRET", "")

	_, err := Load(noEnvFile(t))
	assert.ErrorIs(t, err, ErrNoJWTSecret)
}
