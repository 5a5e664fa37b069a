// Package config centralises configuration parsing for the streak engine.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver   string // "pgx" or "postgres" (lib/pq)
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// Config captures runtime configuration values for the streak engine.
type Config struct {
	Port string

	// StoreBackend selects where streaks and players live: memory, redis or postgres.
	StoreBackend string
	Database     DatabaseConfig
	Redis        RedisConfig
	// RedisEnabled turns on the rate limiter and player cache even when
	// StoreBackend is not redis.
	RedisEnabled bool

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	RateLimit       int
	RateLimitWindow time.Duration

	// Timezone is the calendar used when a request carries no X-Timezone header.
	Timezone *time.Location

	KafkaBrokers []string
	KafkaTopic   string

	// EventQueueSize bounds the events waiting for the broker.
	EventQueueSize int
}

// Load reads environment variables into Config, applying defaults for local dev.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "pgx"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "streak_user"),
			Password: getEnv("DB_PASSWORD", "secret"),
			Name:     getEnv("DB_NAME", "streak_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		RedisEnabled:    getBoolEnv("REDIS_ENABLED", false),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTIssuer:       getEnv("JWT_ISSUER", "streak-engine"),
		TokenTTL:        getDurationEnv("TOKEN_TTL", 72*time.Hour),
		RateLimit:       getIntEnv("RATE_LIMIT", 100),
		RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		KafkaBrokers:    splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "streak.events"),
		EventQueueSize:  getIntEnv("EVENT_QUEUE_SIZE", 100),
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendPostgres:
	case BackendRedis:
		cfg.RedisEnabled = true
	default:
		return Config{}, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	switch cfg.Database.Driver {
	case "pgx", "postgres":
	default:
		return Config{}, fmt.Errorf("config: unknown DB_DRIVER %q (pgx or postgres)", cfg.Database.Driver)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET is required")
	}

	loc, err := time.LoadLocation(getEnv("STREAK_TIMEZONE", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid STREAK_TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	return cfg, nil
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

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
