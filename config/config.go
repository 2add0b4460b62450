// Package config holds service configuration loaded from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds service configuration
type Config struct {
	// Listen is the address the HTTP server binds to
	Listen          string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// RequestTimeout bounds one analysis request end to end; it must stay
	// above the grading polling budget or requests get cut short mid-poll
	RequestTimeout time.Duration
	MaxBodySize    int64

	// Grading vendor settings
	GradingBaseURL      string
	GradingPollInterval time.Duration
	GradingMaxAttempts  int

	// DNS collection settings
	DNSServer  string
	DNSTimeout time.Duration

	// Persistence settings
	DBDriver string
	DBDSN    string
}

// Defaults mirroring the analysis pipeline's operational constants
const (
	defaultPollInterval = 10 * time.Second
	defaultMaxAttempts  = 30
	defaultMaxBodySize  = 100 * 1024
)

// New creates a configuration from environment variables
func New() *Config {
	return &Config{
		Listen:          getEnv("ETERNYX_LISTEN", ":8080"),
		ReadTimeout:     getDurationEnv("ETERNYX_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    getDurationEnv("ETERNYX_WRITE_TIMEOUT", 7*time.Minute),
		ShutdownTimeout: getDurationEnv("ETERNYX_SHUTDOWN_TIMEOUT", 30*time.Second),
		RequestTimeout:  getDurationEnv("ETERNYX_REQUEST_TIMEOUT", 6*time.Minute),
		MaxBodySize:     getInt64Env("ETERNYX_MAX_BODY_SIZE", defaultMaxBodySize),

		GradingBaseURL:      getEnv("ETERNYX_GRADING_BASE_URL", "https://api.ssllabs.com/api/v3"),
		GradingPollInterval: getDurationEnv("ETERNYX_GRADING_POLL_INTERVAL", defaultPollInterval),
		GradingMaxAttempts:  getIntEnv("ETERNYX_GRADING_MAX_ATTEMPTS", defaultMaxAttempts),

		DNSServer:  getEnv("ETERNYX_DNS_SERVER", "8.8.8.8:53"),
		DNSTimeout: getDurationEnv("ETERNYX_DNS_TIMEOUT", 5*time.Second),

		DBDriver: getEnv("ETERNYX_DB_DRIVER", "sqlite"),
		DBDSN:    getEnv("ETERNYX_DB_DSN", "analyses.db"),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationEnv gets a duration environment variable with a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}

	return defaultValue
}

// getIntEnv gets an int environment variable with a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}

	return defaultValue
}

// getInt64Env gets an int64 environment variable with a default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}

	return defaultValue
}
