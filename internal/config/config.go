package config

import (
	"log/slog"
	"net"
	"net/url"
	"os"
	"time"

	"austender/internal/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// Database
	DatabaseURL  string
	QueryTimeout time.Duration // 0 disables the per-query deadline

	// Logging
	LogLevel slog.Level

	// Site Branding
	SiteTitle string // env: SITE_TITLE, default: "Australian Government Contract Spending"

	// Treemap report
	TreemapAgency string // env: TREEMAP_AGENCY, default: "Department of Defence"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:           getEnv("ENV", "development"),
		ServerAddr:    getEnv("SERVER_ADDR", ":5000"),
		TLSEnabled:    getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:   getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:    getEnv("TLS_KEY_FILE", ""),
		DatabaseURL:   databaseURL(),
		QueryTimeout:  getDuration("QUERY_TIMEOUT", 0),
		LogLevel:      getLogLevel("LOG_LEVEL", slog.LevelInfo),
		SiteTitle:     getEnv("SITE_TITLE", "Australian Government Contract Spending"),
		TreemapAgency: getEnv("TREEMAP_AGENCY", models.DefaultTreemapAgency),
	}
}

// databaseURL prefers DATABASE_URL and otherwise assembles a postgres URL
// from the discrete DB_* variables.
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "5432")),
		Path:     "/" + getEnv("DB_NAME", "austender"),
		RawQuery: "sslmode=" + getEnv("DB_SSLMODE", "disable"),
	}
	user := getEnv("DB_USER", "postgres")
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		slog.Warn("ignoring invalid duration", "key", key, "value", value)
		return fallback
	}
	return d
}

func getLogLevel(key string, fallback slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		slog.Warn("ignoring invalid log level", "key", key, "value", value)
		return fallback
	}
	return level
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
