package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the application settings, sourced from the environment.
type Config struct {
	// Backend selection: "json" (the canonical single-document store) or
	// "sqlite".
	DataBackend string

	// JSON backend
	DataFile string

	// SQLite backend
	SQLitePath string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		DataBackend: getEnv("BUDGETBOOK_BACKEND", "json"),
		DataFile:    getEnv("BUDGETBOOK_DATA_FILE", "data/budget_state.json"),
		SQLitePath:  getEnv("BUDGETBOOK_SQLITE_PATH", "data/budgetbook.db"),
		LogLevel:    getEnv("BUDGETBOOK_LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var errs []string

	switch c.DataBackend {
	case "json":
		if c.DataFile == "" {
			errs = append(errs, "data file path cannot be empty when using the json backend")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using the sqlite backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [json sqlite]", c.DataBackend))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
