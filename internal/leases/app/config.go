package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
	"github.com/aussiebroadwan/botofarm/pkg/httpx"
)

var ErrInvalidLeaseTTL = errors.New("invalid lease ttl")

type Config struct {
	APIPrefix           string             // Route prefix for the account API (default: /api)
	Host                string             // Bind address (default: all interfaces)
	Port                int                // HTTP server port (default: 8000)
	DatabaseURL         string             // postgres:// selects Postgres, anything else is a SQLite DSN (default: file:botofarm.db)
	LeasePolicy         domain.LeasePolicy // Lease expiry (default: unbounded)
	PepperFile          string             // Pepper for password hashing (default: ./pepper)
	Env                 string             // Environment (dev, staging, prod) (default: dev)
	LogLevel            string             // Log level (debug, info, warn, error) (default: info)
	LogFormat           string             // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration      // Graceful shutdown timeout (default: 10s)
	CORSAllowedOrigins  []string           // Browser origins allowed to call the API (default: *)
}

// LoadConfig reads the environment. Only a malformed lease TTL is an error;
// other malformed values fall back to their defaults.
func LoadConfig() (Config, error) {
	cfg := Config{
		APIPrefix:           getEnvOrDefault("API_PREFIX", "/api"),
		Host:                getEnvOrDefault("HOST", os.Getenv("API_HOST")),
		Port:                getEnvIntOrDefault("PORT", getEnvIntOrDefault("API_PORT", 8000)),
		DatabaseURL:         getEnvOrDefault("DATABASE_URL", "file:botofarm.db"),
		PepperFile:          getEnvOrDefault("PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		CORSAllowedOrigins:  httpx.ParseOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
	}

	// LOCK_TTL_SECONDS is the older name, LEASE_TTL wins when both are set
	raw := strings.TrimSpace(os.Getenv("LEASE_TTL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("LOCK_TTL_SECONDS"))
	}

	policy, err := parseLeasePolicy(raw)
	if err != nil {
		return Config{}, err
	}
	cfg.LeasePolicy = policy

	return cfg, nil
}

// parseLeasePolicy accepts a Go duration ("90s") or whole seconds ("90").
// Empty means leases never expire.
func parseLeasePolicy(raw string) (domain.LeasePolicy, error) {
	if raw == "" {
		return domain.UnboundedLeases(), nil
	}

	var ttl time.Duration
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		ttl = time.Duration(secs) * time.Second
	} else if d, err := time.ParseDuration(raw); err == nil {
		ttl = d
	} else {
		return domain.LeasePolicy{}, fmt.Errorf("%w: %q", ErrInvalidLeaseTTL, raw)
	}

	if ttl < 0 {
		return domain.LeasePolicy{}, fmt.Errorf("%w: %q is negative", ErrInvalidLeaseTTL, raw)
	}
	return domain.LeasesExpireAfter(ttl), nil
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
