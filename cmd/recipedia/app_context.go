package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/recipedia/internal/config"
	"github.com/alexisbeaulieu97/recipedia/internal/logger"
	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/ports"
	"github.com/alexisbeaulieu97/recipedia/internal/query"
	"github.com/alexisbeaulieu97/recipedia/internal/recipes"
	"github.com/alexisbeaulieu97/recipedia/internal/storage"
	"github.com/alexisbeaulieu97/recipedia/internal/telemetry"
	"github.com/alexisbeaulieu97/recipedia/internal/theme"
)

// AppContext bundles long-lived services created at startup. Fields left set
// before Setup runs are kept, which is how tests substitute collaborators.
type AppContext struct {
	Config    *config.Config
	Logger    ports.Logger
	Store     *storage.Accessor
	API       mealdb.API
	Recipes   *recipes.Service
	Themes    *theme.Store
	Telemetry telemetry.Providers

	// HTTPClient replaces the default client used to reach the API.
	HTTPClient mealdb.HTTPClient
	// LogWriter receives logs instead of stderr or the log file.
	LogWriter io.Writer
	// Detect resolves the system theme; the terminal background by default.
	Detect theme.Detector
	Now    func() time.Time

	closers []func(context.Context) error
}

// Setup loads configuration and wires the services. interactive routes logs
// to a file so they never draw over the TUI.
func (a *AppContext) Setup(ctx context.Context, flags *rootFlags, interactive bool) error {
	if a.Config == nil {
		cfg, err := loadConfig(flags)
		if err != nil {
			return newCommandError("start", "loading configuration", err, "Fix the configuration file or the RECIPEDIA_* environment variables.")
		}
		a.Config = cfg
	}
	cfg := a.Config

	if a.Logger == nil {
		log, err := a.newLogger(cfg, flags, interactive)
		if err != nil {
			return newCommandError("start", "configuring logging", err, "Use one of: debug, info, warn, error.")
		}
		a.Logger = log
	}

	if a.Telemetry.Tracer == nil {
		providers, err := telemetry.Init(ctx, cfg.Telemetry.Enabled)
		if err != nil {
			a.Logger.Warn(ctx, "telemetry disabled", "error", err)
			providers = telemetry.Noop()
		}
		a.Telemetry = providers
		if providers.Shutdown != nil {
			a.closers = append(a.closers, func(ctx context.Context) error { return providers.Shutdown(ctx) })
		}
	}

	if a.Store == nil {
		a.Store = a.openStore(ctx, cfg)
	}

	if a.API == nil {
		client := mealdb.NewClient(mealdb.ClientOpts{
			BaseURL:    cfg.API.BaseURL,
			HTTPClient: a.HTTPClient,
			Timeout:    cfg.API.Timeout,
			Logger:     a.Logger,
		})
		a.API = mealdb.NewInstrumented(client, a.Telemetry.Tracer, a.Telemetry.Meter)
	}

	if a.Recipes == nil {
		a.Recipes = recipes.NewService(recipes.Deps{
			API:       a.API,
			Cache:     query.New(query.Options{Logger: a.Logger}),
			Store:     a.Store,
			Namespace: cfg.Storage.Namespace,
			Now:       a.Now,
			Logger:    a.Logger,
		})
	}

	if a.Themes == nil {
		mode, _ := theme.ParseMode(cfg.Theme.Default)
		a.Themes = theme.NewStore(a.Store, cfg.Theme.StorageKey).WithDefault(mode)
	}

	if a.Detect == nil {
		a.Detect = theme.TerminalDetector()
	}

	return nil
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	if flags.configPath != "" {
		return config.ParseConfig(flags.configPath)
	}
	path, err := defaultConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path, true)
}

func (a *AppContext) newLogger(cfg *config.Config, flags *rootFlags, interactive bool) (ports.Logger, error) {
	level := cfg.Log.Level
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	if flags.verbose {
		level = "debug"
	}

	writer := a.LogWriter
	if writer == nil {
		writer = os.Stderr
		if interactive || cfg.Log.File != "" {
			file, err := openLogFile(cfg.Log.File)
			if err != nil {
				return nil, err
			}
			a.closers = append(a.closers, func(context.Context) error { return file.Close() })
			writer = file
		}
	}

	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: cfg.Log.HumanReadable,
		Writer:        writer,
		Component:     "cli",
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		var err error
		path, err = defaultLogPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// openStore opens the configured backend. Failures leave the accessor on its
// in-memory fallback.
func (a *AppContext) openStore(ctx context.Context, cfg *config.Config) *storage.Accessor {
	driver := storage.Driver(strings.ToLower(cfg.Storage.Driver))
	path := cfg.Storage.Path
	if path == "" && driver != storage.DriverMemory {
		dir, err := appDir()
		if err == nil {
			path = storage.DefaultPath(driver, dir)
		}
	}

	backend, err := storage.OpenBackend(driver, path)
	if err != nil {
		a.Logger.Warn(ctx, "storage backend unavailable", "driver", string(driver), "path", path, "error", err)
		return storage.Open(nil, a.Logger)
	}
	if c, ok := backend.(io.Closer); ok {
		a.closers = append(a.closers, func(context.Context) error { return c.Close() })
	}

	a.Logger.Debug(ctx, "storage opened", "driver", string(driver), "path", path)
	return storage.Open(backend, a.Logger)
}

// CommandContext returns a context carrying a fresh correlation ID and a
// logger scoped to operation.
func (a *AppContext) CommandContext(cmd *cobra.Command, operation string) (context.Context, ports.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if ports.GetCorrelationID(ctx) == "" {
		ctx = ports.WithCorrelationID(ctx, uuid.NewString())
	}
	return ctx, logger.OrNoOp(a.Logger).With("operation", operation)
}

// Close releases resources opened by Setup. It is safe to call more than once.
func (a *AppContext) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && a.Logger != nil {
			a.Logger.Warn(ctx, "shutdown step failed", "error", err)
		}
	}
	a.closers = nil
}
