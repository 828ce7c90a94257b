package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16
	// CORSOrigins are the browser origins allowed to call the API with
	// the session cookie. Empty means same-origin only.
	CORSOrigins []string
	// StaticDir is the storefront bundle directory. Empty disables
	// static serving (the bundle is hosted elsewhere).
	StaticDir string
	Inventory InventoryConfig
	Catalog   CatalogConfig
	Session   SessionConfig
	NATS      NATSConfig
}

// InventoryConfig points at the upstream inventory service, the single
// source of truth for products and stock.
type InventoryConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CatalogConfig tunes the in-process catalog read cache.
type CatalogConfig struct {
	// TTL bounds staleness between purchases; invalidation handles the
	// rest.
	TTL time.Duration
}

// SessionConfig tunes the in-memory cart session registry.
type SessionConfig struct {
	// TTL is how long an idle session keeps its cart.
	TTL time.Duration

	// CleanupInterval is how often idle sessions are pruned.
	CleanupInterval time.Duration
}

// NATSConfig configures the cross-replica invalidation broadcast.
// An empty URL runs the gateway standalone: purchases still invalidate
// the local cache, other replicas rely on their TTL.
type NATSConfig struct {
	URL string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		// Walk up directories to find .env (max 2 parent directories)
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:         getEnv("ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Port:        getEnvInt("PORT", 3000),
		CORSOrigins: getEnvList("CORS_ORIGINS", "http://localhost:5173"),
		StaticDir:   getEnv("STATIC_DIR", ""),
		Inventory: InventoryConfig{
			BaseURL: getEnv("INVENTORY_API_URL", "http://localhost:4000"),
			Timeout: getEnvDuration("INVENTORY_API_TIMEOUT", 30*time.Second),
		},
		Catalog: CatalogConfig{
			TTL: getEnvDuration("CATALOG_CACHE_TTL", 30*time.Second),
		},
		Session: SessionConfig{
			TTL:             getEnvDuration("SESSION_TTL", 30*24*time.Hour),
			CleanupInterval: getEnvDuration("SESSION_CLEANUP_INTERVAL", 10*time.Minute),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Inventory.BaseURL == "" {
		return nil, fmt.Errorf("INVENTORY_API_URL must be set")
	}

	if cfg.Catalog.TTL <= 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_TTL must be positive")
	}

	return cfg, nil
}

// SecureCookies reports whether session cookies should carry the Secure
// flag. Local development runs over plain HTTP.
func (c *Config) SecureCookies() bool {
	return c.Env == "prod"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Default().Warn("Invalid duration. Using default", slog.String("key", key), slog.String("value", value))
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
