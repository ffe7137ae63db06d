package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	AppPort        string
	StorePath      string
	JWTSecret      string
	TokenExpires   time.Duration
	CatalogFeedURL string
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		StorePath:      getEnv("STORE_PATH", "bazaar.db"),
		JWTSecret:      getEnv("JWT_SECRET", "2c9d1f4af6e8b35c70d12ea94bb58f6d31a07c5e8f4db2961ce03a7d85f41b26"),
		TokenExpires:   getEnvDuration("JWT_TTL_HOURS", 24) * time.Hour,
		CatalogFeedURL: getEnv("CATALOG_FEED_URL", "https://fakestoreapi.com/products"),
	}

	if cfg.AppPort == "" {
		log.Fatal("APP_PORT must be set")
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed)
		}
	}
	return time.Duration(fallback)
}
