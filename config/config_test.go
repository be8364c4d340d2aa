package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "v1", cfg.App.APIVersion)
	assert.Equal(t, DefaultHashCost, cfg.Hash.Cost)
	assert.NotEqual(t, cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow())
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
	t.Setenv("HASH_COST", "12")
	t.Setenv("DB_DSN", "postgres://u:p@db:5432/auth")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.UsesDefaultSecrets())
	assert.Equal(t, 12, cfg.Hash.Cost)
	assert.Equal(t, "postgres://u:p@db:5432/auth", cfg.DatabaseConnectionString())
	assert.True(t, cfg.Redis.Enabled)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigExplicitLogLevel(t *testing.T) {
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "hash cost too low", env: map[string]string{"HASH_COST": "2"}},
		{name: "hash cost too high", env: map[string]string{"HASH_COST": "40"}},
		{name: "shared secret", env: map[string]string{"JWT_SECRET": "same", "REFRESH_TOKEN_SECRET": "same"}},
		{name: "unknown environment", env: map[string]string{"APP_ENV": "prod"}},
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "zero rate limit", env: map[string]string{"RATE_LIMIT_MAX_REQUEST": "0"}},
		{name: "seed without password", env: map[string]string{"SEED_ENABLED": "true"}},
		{name: "seed in production", env: map[string]string{"SEED_ENABLED": "true", "SEED_PASSWORD": "x", "APP_ENV": "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConnectionStringFromParts(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "auth", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=auth sslmode=disable", cfg.DatabaseConnectionString())
}
