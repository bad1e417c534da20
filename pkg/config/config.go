// ABOUTME: Configuration management for the engine with environment variable support
// ABOUTME: Defines configuration structures for server, store, and viewport timing settings

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Store contains scroll position store configuration
	Store StoreConfig

	// Viewport contains viewport coordination timing and thresholds
	Viewport ViewportConfig

	// LogLevel controls logging verbosity (debug/info/warn/error)
	LogLevel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimitRPS is the per-client request rate limit in requests per second
	RateLimitRPS float64

	// RateLimitBurst is the per-client burst allowance
	RateLimitBurst int
}

// StoreConfig holds scroll position store backend configuration
type StoreConfig struct {
	// Type specifies the store backend (memory/sqlite/redis)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file path
	Path string
}

// ViewportConfig holds viewport coordination timing and thresholds
type ViewportConfig struct {
	// DebounceMs is the quiet period after the last scroll event, in milliseconds
	DebounceMs int

	// GraceMs is the programmatic-scroll flag auto-clear window, in milliseconds
	GraceMs int

	// HighlightMs is the transient marker lifetime, in milliseconds
	HighlightMs int

	// CacheTTLMs is the element cache entry lifetime, in milliseconds
	CacheTTLMs int

	// MinDwellMs is the minimum dwell on the current document before
	// auto-switching; zero disables the policy
	MinDwellMs int

	// VisibilityThreshold is the minimum visibility ratio for a page to count
	VisibilityThreshold float64

	// TopMarginPercent is the viewport-height fraction left above a page
	// when aligning to top
	TopMarginPercent float64
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8000"),
			RateLimitRPS:   getEnvAsFloatOrDefault("RATE_LIMIT_RPS", 50),
			RateLimitBurst: getEnvAsIntOrDefault("RATE_LIMIT_BURST", 100),
		},
		Store: StoreConfig{
			Type: getEnvOrDefault("STORE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "positions.db"),
			},
		},
		Viewport: ViewportConfig{
			DebounceMs:          getEnvAsIntOrDefault("VIEW_DEBOUNCE_MS", 300),
			GraceMs:             getEnvAsIntOrDefault("VIEW_GRACE_MS", 1000),
			HighlightMs:         getEnvAsIntOrDefault("VIEW_HIGHLIGHT_MS", 1500),
			CacheTTLMs:          getEnvAsIntOrDefault("VIEW_CACHE_TTL_MS", 2000),
			MinDwellMs:          getEnvAsIntOrDefault("VIEW_MIN_DWELL_MS", 0),
			VisibilityThreshold: getEnvAsFloatOrDefault("VIEW_VISIBILITY_THRESHOLD", 0.5),
			TopMarginPercent:    getEnvAsFloatOrDefault("VIEW_TOP_MARGIN_PERCENT", 5),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Store.Type != "memory" && c.Store.Type != "sqlite" && c.Store.Type != "redis" {
		return errors.New("store type must be 'memory', 'sqlite' or 'redis'")
	}

	if c.Store.Type == "redis" && c.Store.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis store")
	}

	if c.Store.Type == "sqlite" && c.Store.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite store")
	}

	if c.Viewport.DebounceMs < 1 {
		return errors.New("debounce window must be at least 1 millisecond")
	}

	if c.Viewport.GraceMs < 1 {
		return errors.New("grace window must be at least 1 millisecond")
	}

	if c.Viewport.VisibilityThreshold <= 0 || c.Viewport.VisibilityThreshold > 1 {
		return errors.New("visibility threshold must be in (0, 1]")
	}

	if c.Viewport.MinDwellMs < 0 {
		return errors.New("minimum dwell cannot be negative")
	}

	return nil
}
