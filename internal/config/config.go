// Package config loads application configuration from environment
// variables. The configuration is an explicit object handed to
// component constructors; nothing in the codebase reads the environment
// after startup.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Required variables are
// enforced by must(); the rest fall back to the documented defaults.
type Config struct {
	Env  string // application environment (dev/test/prod)
	Port string // HTTP port to listen on

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	BcryptCost     int // bcrypt cost for password hashing
	AccessTTLHours int // access token time-to-live in hours
	RefreshTTLDays int // refresh token time-to-live in days

	AMQPURL string // RabbitMQ URL for invite events (optional)

	RateLimit       int           // auth requests allowed per window, 0 disables
	RateLimitWindow time.Duration // rate limit window
	CacheTTL        time.Duration // reduced-representation cache TTL

	LogLevel  string // slog level: debug/info/warn/error
	LogFormat string // "json" or "text"
}

// Load reads configuration from the environment. Missing required
// variables abort startup with a fatal log message.
func Load() Config {
	return Config{
		Env:  must("APP_ENV"),
		Port: must("APP_PORT"),

		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),

		BcryptCost:     envInt("BCRYPT_COST", 10),
		AccessTTLHours: envInt("ACCESS_TOKEN_TTL_HOURS", 36),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 28),

		AMQPURL: os.Getenv("AMQP_URL"),

		RateLimit:       envInt("AUTH_RATE_LIMIT", 30),
		RateLimitWindow: envDur("AUTH_RATE_LIMIT_WINDOW", time.Minute),
		CacheTTL:        envDur("CONFERENCE_CACHE_TTL", 5*time.Minute),

		LogLevel:  envStr("LOG_LEVEL", "info"),
		LogFormat: envStr("LOG_FORMAT", "text"),
	}
}

// AccessTTL returns the access token lifetime as a duration.
func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLHours) * time.Hour
}

// RefreshTTL returns the refresh token lifetime as a duration.
func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLDays) * 24 * time.Hour
}

// must retrieves a required environment variable. If the variable is
// unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}
