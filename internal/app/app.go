package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/regatta-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regatta-backend/internal/adapter/postgres/regatta"
	"github.com/heartmarshall/regatta-backend/internal/config"
	"github.com/heartmarshall/regatta-backend/internal/transport/middleware"
	"github.com/heartmarshall/regatta-backend/internal/transport/rest"
	"github.com/heartmarshall/regatta-backend/pkg/metrics"
)

const readHeaderTimeout = 5 * time.Second

// Run is the server entry point. It loads configuration, connects to the
// database, applies migrations when enabled, wires the services and serves
// HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	completer, err := NewCompleter(ctx, cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("text classifier: %w", err)
	}

	m := metrics.NewManager()
	svcs := NewServices(logger, regatta.New(pool), postgres.NewTxManager(pool), completer, cfg.Search, m)

	rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer rl.Stop()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           NewHandler(cfg, svcs, pool, rl, m, logger),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return Serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// dbPinger is satisfied by *pgxpool.Pool.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// NewHandler builds the routed, middleware-wrapped HTTP handler.
func NewHandler(
	cfg *config.Config,
	svcs *Services,
	db dbPinger,
	rl *middleware.RateLimiter,
	m *metrics.Manager,
	logger *slog.Logger,
) http.Handler {
	routes := rest.Routes{
		ChatLimit:   rl.Limit("chat", cfg.RateLimit.ChatPerMinute),
		UploadLimit: rl.Limit("upload", cfg.RateLimit.UploadPerMinute),
		Admin:       middleware.AdminToken(cfg.Admin.TokenHash),
	}
	if cfg.Metrics.Enabled {
		routes.MetricsPath = cfg.Metrics.Path
		routes.Metrics = m.Handler()
	}

	mux := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(db, BuildVersion(), cfg.LLM.Provider),
		Data:   rest.NewDataHandler(svcs.Store, svcs.Search, svcs.Reports, logger),
		Chat:   rest.NewChatHandler(svcs.Chat, logger),
		Upload: rest.NewUploadHandler(svcs.Ingest, cfg.Upload, logger),
	}, routes)

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORS),
	)(mux)
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("http server stopped")
	return nil
}
