package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Nutrition providers
const (
	ProviderNutritionix = "nutritionix"
	ProviderCatalog     = "catalog"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Nutrition lookup configuration
	NutritionProvider  string
	NutritionixAppID   string
	NutritionixAppKey  string
	NutritionixURL     string
	NutritionTimeout   time.Duration
	NutritionCacheTTL  time.Duration
	CatalogDSN         string
	RateLimitPerMinute int

	// Redis configuration
	RedisURL string

	// Observability
	LogLevel        string
	OTelEndpoint    string
	OTelServiceName string

	Env Environment
}

// LoadConfig reads the configuration from the environment and validates it.
// In development and test a .env file in the working directory is loaded first.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env == Development || env == Test {
		// A missing .env is fine; real variables always win.
		_ = godotenv.Load()
	}

	var problems []ValidationError
	cfg := &Config{
		ServerHost:         getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		NutritionProvider:  strings.ToLower(getEnv("NUTRITION_PROVIDER", ProviderNutritionix)),
		NutritionixAppID:   os.Getenv("NUTRITIONIX_APP_ID"),
		NutritionixAppKey:  os.Getenv("NUTRITIONIX_APP_KEY"),
		NutritionixURL:     getEnv("NUTRITIONIX_URL", "https://trackapi.nutritionix.com/v2/natural/nutrients"),
		NutritionTimeout:   getEnvDuration("NUTRITION_TIMEOUT", 10*time.Second, &problems),
		NutritionCacheTTL:  getEnvDuration("NUTRITION_CACHE_TTL", 0, &problems),
		CatalogDSN:         os.Getenv("CATALOG_DSN"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60, &problems),
		RedisURL:           os.Getenv("REDIS_URL"),
		LogLevel:           getEnv("LOG_LEVEL", defaultLogLevel(env)),
		OTelEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTelServiceName:    getEnv("OTEL_SERVICE_NAME", "healthcoach-api"),
		Env:                env,
	}

	problems = append(problems, cfg.validate()...)
	if len(problems) > 0 {
		return nil, joinValidationErrors(problems)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// IsProduction returns true if the config was loaded for production
func (c *Config) IsProduction() bool {
	return c.Env == Production
}

// CacheEnabled reports whether lookup results should be cached in Redis
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.NutritionCacheTTL > 0
}

// RateLimitEnabled reports whether requests should be rate limited
func (c *Config) RateLimitEnabled() bool {
	return c.RedisURL != "" && c.RateLimitPerMinute > 0
}

// TracingEnabled reports whether spans should be exported
func (c *Config) TracingEnabled() bool {
	return c.OTelEndpoint != ""
}

func defaultLogLevel(env Environment) string {
	if env == Development {
		return "debug"
	}
	return "info"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int, problems *[]ValidationError) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		*problems = append(*problems, ValidationError{Field: key, Message: fmt.Sprintf("must be an integer, got %q", value)})
		return fallback
	}
	return i
}

func getEnvDuration(key string, fallback time.Duration, problems *[]ValidationError) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*problems = append(*problems, ValidationError{Field: key, Message: fmt.Sprintf("must be a duration such as 10s, got %q", value)})
		return fallback
	}
	return d
}
