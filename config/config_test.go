package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigFillsDevDefaults(t *testing.T) {
	cfg := &Config{Env: Development}
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, devJWTSecret, cfg.JWTAccessSecret)
	assert.Equal(t, devJWTSecret+"-refresh", cfg.JWTRefreshSecret)
}

func TestValidateConfigProductionFailsHard(t *testing.T) {
	cfg := &Config{Env: Production}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET")

	cfg = &Config{
		Env:              Production,
		DatabaseURL:      "postgres://localhost/peptitrace",
		JWTAccessSecret:  "access",
		JWTRefreshSecret: "refresh",
	}
	assert.NoError(t, ValidateConfig(cfg))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	// CI detection wins over ENV.
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/peptitrace_test")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("S3_BUCKET_NAME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, "peptitrace-exports", cfg.S3Bucket)
	assert.False(t, cfg.RedisEnabled())
	assert.NotEmpty(t, cfg.JWTAccessSecret)

	t.Setenv("REDIS_HOST", "localhost")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.RedisEnabled())
}
