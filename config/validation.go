package config

import (
	"fmt"
	"log"
	"strings"
)

// devJWTSecret pads out missing JWT secrets in development so a fresh
// checkout runs without setup. Never used in production.
const devJWTSecret = "dev-secret-change-me"

// ValidateConfig checks the configuration against the requirements of the
// current environment. Production fails hard on anything missing; other
// environments fill in development defaults and log a warning.
func ValidateConfig(cfg *Config) error {
	var missing []string

	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTAccessSecret == "" {
		missing = append(missing, "JWT_ACCESS_SECRET")
	}
	if cfg.JWTRefreshSecret == "" {
		missing = append(missing, "JWT_REFRESH_SECRET")
	}

	if cfg.Env == Production {
		if len(missing) > 0 {
			return fmt.Errorf("required in production: %s", strings.Join(missing, ", "))
		}
		return nil
	}

	if cfg.JWTAccessSecret == "" {
		cfg.JWTAccessSecret = devJWTSecret
	}
	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = devJWTSecret + "-refresh"
	}
	if len(missing) > 0 {
		log.Printf("config: missing %s, using development defaults where possible", strings.Join(missing, ", "))
	}
	return nil
}
