package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		DataBackend:     BackendBlob,
		LedgerDir:       filepath.Join(dir, "ledger"),
		SQLiteDBPath:    filepath.Join(dir, "db", "fintrack.db"),
		LogLevel:        "info",
		ForecastPeriods: 3,
		RecentLimit:     10,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid blob backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid memory backend ignores paths",
			mutate:  func(c *Config) { c.DataBackend = BackendMemory; c.LedgerDir = ""; c.SQLiteDBPath = "" },
			wantErr: false,
		},
		{
			name:    "valid sqlite backend config",
			mutate:  func(c *Config) { c.DataBackend = BackendSQLite },
			wantErr: false,
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets'",
		},
		{
			name:        "blob backend without directory",
			mutate:      func(c *Config) { c.LedgerDir = "" },
			wantErr:     true,
			errorString: "ledger directory cannot be empty",
		},
		{
			name:        "sqlite backend without path",
			mutate:      func(c *Config) { c.DataBackend = BackendSQLite; c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "forecast periods too low",
			mutate:      func(c *Config) { c.ForecastPeriods = 0 },
			wantErr:     true,
			errorString: "invalid forecast periods 0: must be between 1 and 24",
		},
		{
			name:        "forecast periods too high",
			mutate:      func(c *Config) { c.ForecastPeriods = 25 },
			wantErr:     true,
			errorString: "invalid forecast periods 25",
		},
		{
			name:        "recent limit out of range",
			mutate:      func(c *Config) { c.RecentLimit = 101 },
			wantErr:     true,
			errorString: "invalid recent limit 101: must be between 1 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Config.Validate() error = %v, want it to contain %q", err, tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateCreatesDirectories(t *testing.T) {
	cfg := validConfig(t)
	cfg.DataBackend = BackendSQLite
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(cfg.SQLiteDBPath)); err != nil {
		t.Fatalf("database directory not created: %v", err)
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.DataBackend = "nope"
	cfg.RecentLimit = 0
	cfg.LogLevel = "chatty"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("expected 3 problems, got %d: %v", got, err)
	}
}

func TestLoad(t *testing.T) {
	keys := []string{"DATA_BACKEND", "LEDGER_DIR", "SQLITE_DB_PATH", "LOG_LEVEL", "FORECAST_PERIODS", "RECENT_LIMIT"}
	for _, k := range keys {
		t.Setenv(k, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.DataBackend != BackendBlob {
			t.Errorf("Load() DataBackend = %v, want blob", cfg.DataBackend)
		}
		if cfg.LedgerDir != "./data" {
			t.Errorf("Load() LedgerDir = %v, want ./data", cfg.LedgerDir)
		}
		if cfg.SQLiteDBPath != "./data/fintrack.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/fintrack.db", cfg.SQLiteDBPath)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Load() LogLevel = %v, want info", cfg.LogLevel)
		}
		if cfg.ForecastPeriods != 3 || cfg.RecentLimit != 10 {
			t.Errorf("Load() ForecastPeriods/RecentLimit = %d/%d, want 3/10", cfg.ForecastPeriods, cfg.RecentLimit)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("DATA_BACKEND", "sqlite")
		t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		t.Setenv("LEDGER_DIR", "/tmp/ledger")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("FORECAST_PERIODS", "6")
		t.Setenv("RECENT_LIMIT", "25")

		cfg := Load()

		if cfg.DataBackend != "sqlite" || cfg.SQLiteDBPath != "/tmp/test.db" || cfg.LedgerDir != "/tmp/ledger" {
			t.Errorf("Load() storage = %+v", cfg)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
		if cfg.ForecastPeriods != 6 || cfg.RecentLimit != 25 {
			t.Errorf("Load() ForecastPeriods/RecentLimit = %d/%d, want 6/25", cfg.ForecastPeriods, cfg.RecentLimit)
		}
	})

	t.Run("invalid numbers use defaults", func(t *testing.T) {
		t.Setenv("FORECAST_PERIODS", "many")
		t.Setenv("RECENT_LIMIT", "ten")

		cfg := Load()

		if cfg.ForecastPeriods != 3 {
			t.Errorf("Load() ForecastPeriods = %v, want 3 (default for invalid input)", cfg.ForecastPeriods)
		}
		if cfg.RecentLimit != 10 {
			t.Errorf("Load() RecentLimit = %v, want 10 (default for invalid input)", cfg.RecentLimit)
		}
	})
}
