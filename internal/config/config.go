// Package config centralises configuration parsing for the exercise tracker.
package config

import (
	"os"
	"strings"
	"time"
)

// Config captures runtime configuration values for the service.
type Config struct {
	HTTPAddress         string
	PostgresURL         string        // Empty selects the in-memory store.
	KafkaBrokers        []string      // Empty disables event publishing.
	EventPublishTimeout time.Duration // Per-message write deadline for Kafka.
}

// Load reads environment variables into Config, applying sensible defaults
// for local dev.
func Load() Config {
	cfg := Config{
		HTTPAddress:         getEnv("HTTP_ADDRESS", ":3000"),
		PostgresURL:         getEnv("POSTGRES_URL", ""),
		EventPublishTimeout: getDurationEnv("EVENT_PUBLISH_TIMEOUT", 5*time.Second),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
