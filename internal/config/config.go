package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"fintrack/internal/log"
)

const (
	BackendMemory = "memory"
	BackendBlob   = "blob"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendMemory, BackendBlob, BackendSQLite}

type Config struct {
	// Storage
	DataBackend  string
	LedgerDir    string
	SQLiteDBPath string

	// Logging
	LogLevel string

	// Derived views
	ForecastPeriods int
	RecentLimit     int
}

func Load() *Config {
	return &Config{
		DataBackend:  getEnv("DATA_BACKEND", BackendBlob),
		LedgerDir:    getEnv("LEDGER_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		ForecastPeriods: getEnvInt("FORECAST_PERIODS", 3),
		RecentLimit:     getEnvInt("RECENT_LIMIT", 10),
	}
}

// Validate validates the configuration and returns an error listing every problem
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case BackendBlob:
		if c.LedgerDir == "" {
			errors = append(errors, "ledger directory cannot be empty when using blob backend")
		} else if err := ensureDir(c.LedgerDir); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create ledger directory '%s': %v", c.LedgerDir, err))
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if err := ensureDir(dir); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
			}
		}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if c.ForecastPeriods < 1 || c.ForecastPeriods > 24 {
		errors = append(errors, fmt.Sprintf("invalid forecast periods %d: must be between 1 and 24", c.ForecastPeriods))
	}
	if c.RecentLimit < 1 || c.RecentLimit > 100 {
		errors = append(errors, fmt.Sprintf("invalid recent limit %d: must be between 1 and 100", c.RecentLimit))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func ensureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
