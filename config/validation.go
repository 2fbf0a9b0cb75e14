package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that everything the process cannot run without is
// actually set.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "is required"}.Error())
	} else if GetEnvironment() == Production && len(cfg.JWTSecret) < 32 {
		errs = append(errs, ValidationError{"JWT_SECRET", "must be at least 32 characters in production"}.Error())
	}

	if cfg.DBHost == "" {
		errs = append(errs, ValidationError{"DB_HOST", "is required"}.Error())
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{"DB_NAME", "is required"}.Error())
	}
	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"}.Error())
	}
	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{"TOKEN_TTL_SECONDS", "must be positive"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
