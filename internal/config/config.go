// Package config reads server settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// DevJWTSecret is only accepted with DEV_MODE=1.
	DevJWTSecret = "dev-secret-change-me"
)

// ErrInsecureSecret is returned by Validate when the JWT secret is unset
// or still the development default outside dev mode.
var ErrInsecureSecret = errors.New("JWT_SECRET must be set to a non-default value (or DEV_MODE=1)")

// Config holds everything the server needs at startup.
type Config struct {
	APIPort        int
	DBDriver       string
	DBPath         string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	LogLevel       string
	MetricsEnabled bool
	DevMode        bool
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function. Unset keys take defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	port, err := strconv.Atoi(get("API_PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid API_PORT %q", getenv("API_PORT"))
	}

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", getenv("TOKEN_TTL"))
	}

	metricsEnabled, err := strconv.ParseBool(get("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED %q: %w", getenv("METRICS_ENABLED"), err)
	}

	devMode, _ := strconv.ParseBool(get("DEV_MODE", "false"))

	cfg := &Config{
		APIPort:        port,
		DBPath:         get("DB_PATH", "./data/ledger.db"),
		DatabaseURL:    get("DATABASE_URL", ""),
		JWTSecret:      get("JWT_SECRET", DevJWTSecret),
		TokenTTL:       ttl,
		LogLevel:       get("LOG_LEVEL", "info"),
		MetricsEnabled: metricsEnabled,
		DevMode:        devMode,
	}

	driver := strings.ToLower(get("DB_DRIVER", ""))
	switch driver {
	case "":
		if isPostgresURL(cfg.DatabaseURL) {
			driver = DriverPostgres
		} else {
			driver = DriverSQLite
		}
	case "sqlite3":
		driver = DriverSQLite
	case "postgresql", "pq":
		driver = DriverPostgres
	}
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	if driver == DriverPostgres && cfg.DatabaseURL == "" {
		return nil, errors.New("DB_DRIVER=postgres requires DATABASE_URL")
	}
	cfg.DBDriver = driver

	return cfg, nil
}

// Validate checks settings that only matter when serving requests.
func (c *Config) Validate() error {
	if c.JWTSecret == "" || (c.JWTSecret == DevJWTSecret && !c.DevMode) {
		return ErrInsecureSecret
	}
	return nil
}

// Addr is the listen address for the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.APIPort)
}

func isPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}
