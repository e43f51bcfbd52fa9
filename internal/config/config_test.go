package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "s3cret")
	t.Setenv("ADMIN_EMAIL", "admin@estate.io")
	t.Setenv("ADMIN_PASSWORD", "adminpass")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.SearchTTL)
	assert.Equal(t, FanoutRedis, cfg.Relay.Fanout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.io, https://b.io")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, []string{"https://a.io", "https://b.io"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("ADMIN_EMAIL", "admin@estate.io")
	t.Setenv("ADMIN_PASSWORD", "adminpass")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_DRIVER", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestLoadRequiresDSNForPostgres(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "")

	cfg, err := Load()
	require.NoError(t, err, "empty env falls back to the default DSN")
	assert.NotEmpty(t, cfg.Database.DSN)

	cfg.Database.DSN = ""
	assert.ErrorContains(t, cfg.validate(), "DSN")
}

func TestLoadRejectsUnknownFanout(t *testing.T) {
	setRequired(t)
	t.Setenv("RELAY_FANOUT", "carrier-pigeon")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown relay fanout")
}
