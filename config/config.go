package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	Port string
	Env  Environment

	// Database configuration
	DatabaseURL string

	// JWT configuration. Access and refresh tokens use distinct secrets.
	JWTAccessSecret  string
	JWTRefreshSecret string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Object storage configuration
	S3Bucket  string
	AWSRegion string

	// Initial moderator account, created at startup when set
	InitialModeratorEmail    string
	InitialModeratorPassword string
}

// LoadConfig reads configuration from the environment. Outside production
// a .env file is loaded first when present.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env != Production {
		// Missing .env is fine; the environment may already be set up.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Port:                     getEnv("PORT", "3000"),
		Env:                      env,
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		JWTAccessSecret:          os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret:         os.Getenv("JWT_REFRESH_SECRET"),
		RedisURL:                 os.Getenv("REDIS_URL"),
		RedisHost:                os.Getenv("REDIS_HOST"),
		RedisPort:                getEnv("REDIS_PORT", "6379"),
		RedisPassword:            os.Getenv("REDIS_PASSWORD"),
		S3Bucket:                 getEnv("S3_BUCKET_NAME", "peptitrace-exports"),
		AWSRegion:                os.Getenv("AWS_REGION"),
		InitialModeratorEmail:    os.Getenv("INITIAL_MODERATOR_EMAIL"),
		InitialModeratorPassword: os.Getenv("INITIAL_MODERATOR_PASSWORD"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RedisEnabled reports whether any Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
