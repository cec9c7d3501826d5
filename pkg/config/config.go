package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	TimeZone  string

	// Storage
	StoreURL   string
	SQLitePath string
	Namespace  string

	// RabbitMQ
	RabbitMQURL      string
	RabbitMQExchange string

	// Notifications
	NotifyBreakerFailures uint32
	NotifyBreakerTimeout  time.Duration
	NotifyRetryMax        int

	// HTTP API
	APIAddr  string
	APIToken string

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		TimeZone:  getEnv("PYTRON_TZ", ""),

		StoreURL:   getEnv("PYTRON_STORE_URL", getEnv("DATABASE_URL", getEnv("REDIS_URL", ""))),
		SQLitePath: getEnv("PYTRON_SQLITE_PATH", defaultSQLitePath()),
		Namespace:  getEnv("PYTRON_NAMESPACE", "pytron"),

		RabbitMQURL:      getEnv("RABBITMQ_URL", ""),
		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", "pytron.events"),

		NotifyBreakerFailures: uint32(getIntEnv("NOTIFY_BREAKER_FAILURES", 5)),
		NotifyBreakerTimeout:  getDurationEnv("NOTIFY_BREAKER_TIMEOUT", 30*time.Second),
		NotifyRetryMax:        getIntEnv("NOTIFY_RETRY_MAX", 3),

		APIAddr:  getEnv("API_ADDR", "127.0.0.1:8080"),
		APIToken: getEnv("API_TOKEN", ""),

		MCPAddr:      getEnv("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location resolves the configured time zone. Date keys are computed in
// this location; an empty value means the host's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid PYTRON_TZ %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".pytron", "pytron.db")
	}
	return filepath.Join(home, ".pytron", "pytron.db")
}
