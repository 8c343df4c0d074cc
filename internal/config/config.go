// Package config loads service settings from environment variables,
// falling back to local-development defaults.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds every setting the service reads at startup.
type Config struct {
	Port            string
	LogLevel        string
	LogFormat       string
	Store           string
	SeedFile        string
	EnforceCapacity bool
	DB              DBConfig
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds a libpq-compatible connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL builds a connection URL with the given scheme, e.g. "postgres" or "pgx5".
func (c DBConfig) URL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	enforce, err := strconv.ParseBool(getEnv("ENFORCE_CAPACITY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("ENFORCE_CAPACITY: %w", err)
	}

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		Store:           getEnv("STORE", StoreMemory),
		SeedFile:        os.Getenv("SEED_FILE"),
		EnforceCapacity: enforce,
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "activities"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	switch cfg.Store {
	case StoreMemory, StorePostgres:
	default:
		return Config{}, fmt.Errorf("STORE must be %q or %q, got %q", StoreMemory, StorePostgres, cfg.Store)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
