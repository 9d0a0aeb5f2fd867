package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvProduction is the APP_ENV value that makes JWT_SECRET mandatory.
	EnvProduction = "production"

	devJWTSecret = "dev-secret"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is unset in production.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when APP_ENV=production")

// Config holds the application configuration.
type Config struct {
	Env            string
	ServerPort     int
	StoreURL       string // mongodb://... or sqlite://<path>
	JWTSecret      string
	DevSecret      bool // JWTSecret is the development fallback
	TokenTTL       time.Duration
	BcryptCost     int
	LogLevel       string
	LogDir         string
	AllowedOrigins []string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first if present; it never
// overrides variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL: must be positive")
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		ServerPort:     port,
		StoreURL:       getEnv("STORE_URL", "mongodb://localhost:27017/mestodb"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       ttl,
		BcryptCost:     cost,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogDir:         os.Getenv("LOG_DIR"),
		AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingJWTSecret
		}
		cfg.JWTSecret = devJWTSecret
		cfg.DevSecret = true
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
