// Package cli provides the bootstrap shared by fintrack commands: env file,
// logger, validated config, ledger store and the services built on it.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/backend"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/report"
	"fintrack/internal/services"
)

// SetupLogger builds the application logger at the given level, writing to
// out, and installs it as the slog default. Unknown levels fall back to info.
func SetupLogger(level string, out io.Writer) *log.Logger {
	lvl, err := log.ParseLevel(level)
	logger := log.New(log.Config{Level: lvl, Component: log.ComponentCLI, Output: out})
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", level)
	}
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env files for local use. Missing files are not an error.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig(logger *log.Logger) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithComponent(log.ComponentConfig).Error("Configuration validation failed",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeConfiguration)
		return nil, err
	}
	return cfg, nil
}

// InitBackend opens the ledger store selected by cfg.
func InitBackend(ctx context.Context, logger *log.Logger, cfg *config.Config) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize backend", log.FieldBackend, bcfg.Type.String(), log.FieldError, err)
		return nil, err
	}
	return res, nil
}

// App bundles what a command needs to serve one invocation.
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Accounts *services.AccountService
	Ledger   *services.LedgerService

	backend *backend.BackendResult
}

// Bootstrap wires the env file, logger, config, store and services.
// logOut receives log records; commands keep stdout for their own output.
func Bootstrap(ctx context.Context, logOut io.Writer) (*App, error) {
	if err := LoadEnvFile(); err != nil {
		return nil, err
	}

	logger := SetupLogger(os.Getenv("LOG_LEVEL"), logOut)

	cfg, err := LoadAndValidateConfig(logger)
	if err != nil {
		return nil, err
	}

	ctx = log.NewContext(ctx, logger)
	res, err := InitBackend(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "fintrack ready",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.DataBackend,
		log.FieldPeriods, cfg.ForecastPeriods)

	opts := services.LedgerOptions{
		ForecastPeriods: cfg.ForecastPeriods,
		RecentLimit:     cfg.RecentLimit,
	}
	return &App{
		Config:   cfg,
		Logger:   logger,
		Accounts: services.NewAccountService(res.Store, logger),
		Ledger:   services.NewLedgerService(res.Store, report.NewBuilder(), opts, logger),
		backend:  res,
	}, nil
}

// Context returns a copy of parent carrying the application logger, so the
// stores log under it.
func (a *App) Context(parent context.Context) context.Context {
	return log.NewContext(parent, a.Logger)
}

// Close releases the ledger store.
func (a *App) Close() error {
	if err := a.backend.Close(); err != nil {
		a.Logger.Error("Failed to close backend", log.FieldOperation, log.OpShutdown, log.FieldError, err)
		return err
	}
	return nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
