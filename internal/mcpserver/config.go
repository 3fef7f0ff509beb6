package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/schemamap/internal/naming"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Output defaults.
	Package string
	Pretty  bool

	// Input limits.
	MaxInlineSize   int64
	MaxSchemas      int
	MaxLimit        int
	TypeLimit       int
	AllowPrivateIPs bool

	// Compile cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SCHEMAMAP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Package:            envPackage("SCHEMAMAP_PACKAGE", "models"),
		Pretty:             envBool("SCHEMAMAP_PRETTY", true),
		MaxInlineSize:      int64(envInt("SCHEMAMAP_MAX_INLINE_SIZE", 10*1024*1024)),
		MaxSchemas:         envInt("SCHEMAMAP_MAX_SCHEMAS", 50),
		MaxLimit:           envInt("SCHEMAMAP_MAX_LIMIT", 1000),
		TypeLimit:          envInt("SCHEMAMAP_TYPE_LIMIT", 100),
		AllowPrivateIPs:    envBool("SCHEMAMAP_ALLOW_PRIVATE_IPS", false),
		CacheEnabled:       envBool("SCHEMAMAP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("SCHEMAMAP_CACHE_MAX_SIZE", 10),
		CacheTTL:           envDuration("SCHEMAMAP_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("SCHEMAMAP_CACHE_SWEEP_INTERVAL", 60*time.Second),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envPackage(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if naming.ToPackageName(v) != v {
		slog.Warn("invalid package name env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
