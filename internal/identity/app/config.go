package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string // Optional: issuer claim for session tokens (default: identityd)
	SealPassphrase string // Required: passphrase sealing private seeds at rest
	SessionKeyFile string // Optional: path to a 32-byte Ed25519 seed for session tokens (default: ephemeral)
	TOTPIssuer     string // Optional: issuer shown in authenticator apps (default: identityd)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./identity.db)
	ActionRetention      time.Duration // Optional: how long signed action records are kept (default: 90 days)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:               getEnvOrDefault("IDENTITY_ISSUER", "identityd"),
		SealPassphrase:       os.Getenv("IDENTITY_SEAL_PASSPHRASE"),
		SessionKeyFile:       os.Getenv("IDENTITY_SESSION_KEY_FILE"),
		TOTPIssuer:           getEnvOrDefault("IDENTITY_TOTP_ISSUER", "identityd"),
		DatabaseFile:         getEnvOrDefault("IDENTITY_DATABASE_FILE", "identity.db"),
		ActionRetention:      getEnvDurationOrDefault("IDENTITY_ACTION_RETENTION", 90*24*time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
