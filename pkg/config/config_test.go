package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "TOKEN_TTL", "FANOUT_LIMIT", "RATE_LIMIT", "REDIS_ADDR", "JWT_SECRET", "ENV"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0, cfg.FanoutLimit)
	assert.Equal(t, float64(20), cfg.RateLimit)
	assert.Empty(t, cfg.RedisAddr)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NoError(t, cfg.Validate())
}

func TestValidateRequiresJWTSecretInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Empty(t, cfg.JWTSecret)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	cfg.JWTSecret = devJWTSecret
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	t.Setenv("JWT_SECRET", "a-real-secret")
	assert.NoError(t, Load().Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("FANOUT_LIMIT", "8")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("TOP_USERS_CACHE_TTL", "not-a-duration")
	t.Setenv("ENV", "production")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 8, cfg.FanoutLimit)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.TopUsersCacheTTL)
	assert.True(t, cfg.IsProduction())
}

func TestInitDBRequiresPostgres(t *testing.T) {
	_, err := InitDB(&Config{})
	assert.Error(t, err)
}
