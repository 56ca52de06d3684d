package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server      ServerConfig
	Socrata     SocrataConfig
	Cache       CacheConfig
	Logging     LoggingConfig
	Environment string
}

type ServerConfig struct {
	Host string
	Port int
}

type SocrataConfig struct {
	BaseURL  string
	AppToken string
	Timeout  time.Duration
}

type CacheConfig struct {
	TTL      time.Duration
	MaxItems int
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables. Every setting has a
// default; the dataset is public, so nothing is required.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnvInt("PORT", 8080),
		},
		Socrata: SocrataConfig{
			BaseURL:  getEnv("SOCRATA_BASE_URL", ""),
			AppToken: getEnv("SOCRATA_APP_TOKEN", ""),
			Timeout:  getEnvDuration("SOCRATA_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			TTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),
			MaxItems: getEnvInt("CACHE_MAX_ITEMS", 100),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
