package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env       string
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Patrimony PatrimonyConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
	// OwnerEncryptionKey is a base64 fernet key. When set, possession owners are
	// encrypted at rest.
	OwnerEncryptionKey string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PatrimonyConfig holds reporting and snapshot settings
type PatrimonyConfig struct {
	// Currency is the ISO 4217 code used to format amounts.
	Currency string
	// SnapshotSchedule is a cron spec for the daily snapshot job. Empty disables it.
	SnapshotSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path:               getEnv("DB_PATH", "./data/patrimoine.db"),
			OwnerEncryptionKey: os.Getenv("OWNER_ENCRYPTION_KEY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Patrimony: PatrimonyConfig{
			Currency:         strings.ToUpper(getEnv("PATRIMONY_CURRENCY", "MGA")),
			SnapshotSchedule: getEnvAllowEmpty("SNAPSHOT_SCHEDULE", "@daily"),
		},
	}

	if len(config.Patrimony.Currency) != 3 {
		return nil, fmt.Errorf("PATRIMONY_CURRENCY must be an ISO 4217 code, got %q", config.Patrimony.Currency)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAllowEmpty is like getEnv but an explicitly empty variable wins over the default.
func getEnvAllowEmpty(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
