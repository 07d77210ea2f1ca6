package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/regatta-backend/internal/adapter/memstore"
	"github.com/heartmarshall/regatta-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regatta-backend/internal/adapter/postgres/regatta"
	"github.com/heartmarshall/regatta-backend/internal/app"
	"github.com/heartmarshall/regatta-backend/internal/config"
)

type rootOptions struct {
	csvPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "regattactl",
		Short:        "Manage and query regatta results",
		Version:      app.BuildVersion(),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.csvPath, "csv", "", "answer from this CSV file in memory instead of the database")

	root.AddCommand(
		newMigrateCmd(),
		newImportCmd(),
		newClearCmd(),
		newAskCmd(opts),
		newReportCmd(opts),
		newHashTokenCmd(),
	)
	return root
}

// backend is an opened service layer plus its cleanup.
type backend struct {
	svcs  *app.Services
	log   *slog.Logger
	close func()
}

// openBackend wires the services over the database, or over an in-memory
// store loaded from opts.csvPath when set.
func openBackend(ctx context.Context, opts *rootOptions) (*backend, error) {
	if opts.csvPath != "" {
		return openOffline(ctx, opts.csvPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	completer, err := app.NewCompleter(ctx, cfg.LLM, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("text classifier: %w", err)
	}

	svcs := app.NewServices(logger, regatta.New(pool), postgres.NewTxManager(pool), completer, cfg.Search, nil)
	return &backend{svcs: svcs, log: logger, close: pool.Close}, nil
}

// offlineConfig is the subset of configuration used without a database.
type offlineConfig struct {
	Log    config.LogConfig
	LLM    config.LLMConfig
	Search config.SearchConfig
}

func openOffline(ctx context.Context, path string) (*backend, error) {
	var cfg offlineConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	logger := app.NewLogger(cfg.Log)

	completer, err := app.NewCompleter(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("text classifier: %w", err)
	}

	store := memstore.New()
	svcs := app.NewServices(logger, store, store, completer, cfg.Search, nil)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := svcs.Ingest.Upload(ctx, f); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return &backend{svcs: svcs, log: logger, close: func() {}}, nil
}

// openPool connects to the configured database for commands that only need SQL.
func openPool(ctx context.Context) (*pgxpool.Pool, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, logger, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
