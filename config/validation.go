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

// ValidateConfig checks that cfg is usable for the selected nutrition provider
func ValidateConfig(cfg *Config) error {
	if problems := cfg.validate(); len(problems) > 0 {
		return joinValidationErrors(problems)
	}
	return nil
}

func (c *Config) validate() []ValidationError {
	var errors []ValidationError

	switch c.NutritionProvider {
	case ProviderNutritionix:
		if c.NutritionixAppID == "" {
			errors = append(errors, ValidationError{Field: "NUTRITIONIX_APP_ID", Message: "required environment variable is not set"})
		}
		if c.NutritionixAppKey == "" {
			errors = append(errors, ValidationError{Field: "NUTRITIONIX_APP_KEY", Message: "required environment variable is not set"})
		}
	case ProviderCatalog:
		if c.CatalogDSN == "" {
			errors = append(errors, ValidationError{Field: "CATALOG_DSN", Message: "required when NUTRITION_PROVIDER is catalog"})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "NUTRITION_PROVIDER",
			Message: fmt.Sprintf("unknown provider %q (expected %s or %s)", c.NutritionProvider, ProviderNutritionix, ProviderCatalog),
		})
	}

	if c.NutritionTimeout <= 0 {
		errors = append(errors, ValidationError{Field: "NUTRITION_TIMEOUT", Message: "must be greater than zero"})
	}
	if c.NutritionCacheTTL < 0 {
		errors = append(errors, ValidationError{Field: "NUTRITION_CACHE_TTL", Message: "must not be negative"})
	}
	if c.RateLimitPerMinute < 0 {
		errors = append(errors, ValidationError{Field: "RATE_LIMIT_PER_MINUTE", Message: "must not be negative"})
	}
	if c.ServerPort == "" {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: "must not be empty"})
	}

	return errors
}

func joinValidationErrors(problems []ValidationError) error {
	lines := make([]string, 0, len(problems))
	for _, p := range problems {
		lines = append(lines, p.Error())
	}
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
}
