// Package dbconfig centralizes the DB_* environment variables so every
// binary (API server, relay, migrator, seeder) connects the same way.
package dbconfig

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Config holds Postgres connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

var envDefaults = map[string]string{
	"DB_HOST":     "localhost",
	"DB_PORT":     "5432",
	"DB_USER":     "postgres",
	"DB_PASSWORD": "postgres",
	"DB_NAME":     "draftroom",
	"DB_SSLMODE":  "disable",
}

func envOrDefault(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return envDefaults[key]
}

// NewConfigFromEnv reads the DB_* environment variables, falling back to
// local-development defaults for anything unset.
func NewConfigFromEnv() Config {
	port, err := strconv.Atoi(envOrDefault("DB_PORT"))
	if err != nil {
		port, _ = strconv.Atoi(envDefaults["DB_PORT"])
	}

	return Config{
		Host:     envOrDefault("DB_HOST"),
		Port:     port,
		User:     envOrDefault("DB_USER"),
		Password: envOrDefault("DB_PASSWORD"),
		Database: envOrDefault("DB_NAME"),
		SSLMode:  envOrDefault("DB_SSLMODE"),
	}
}

// DSN returns the Postgres connection URL with credentials escaped.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Database,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}
