package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_PORT", "APP_ENV", "MONGO_URI", "MONGO_DB", "JWT_SECRET",
		"ACCESS_TTL_DAYS", "BCRYPT_COST", "REDIS_ADDR", "RATE_LIMIT_PER_MIN", "RABBIT_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "trips_db", cfg.MongoDB)
	assert.Equal(t, 7, cfg.AccessTTLDays)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 10, cfg.RateLimitPerMin)
	assert.Empty(t, cfg.RabbitURL)

	assert.True(t, cfg.UsingDefaultSecret())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("ACCESS_TTL_DAYS", "1")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")

	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 1, cfg.AccessTTLDays)
	require.Equal(t, 10, cfg.BcryptCost)
	require.Equal(t, 30, cfg.RateLimitPerMin)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.UsingDefaultSecret())
}

func TestLoad_GarbageNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TTL_DAYS", "seven")

	cfg := Load()
	assert.Zero(t, cfg.AccessTTLDays)
}
