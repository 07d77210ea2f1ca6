package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/regatta-backend/internal/adapter/llm"
	"github.com/heartmarshall/regatta-backend/internal/config"
	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/internal/service/chat"
	"github.com/heartmarshall/regatta-backend/internal/service/ingest"
	"github.com/heartmarshall/regatta-backend/internal/service/intent"
	"github.com/heartmarshall/regatta-backend/internal/service/report"
	"github.com/heartmarshall/regatta-backend/internal/service/resolver"
	"github.com/heartmarshall/regatta-backend/internal/service/search"
	"github.com/heartmarshall/regatta-backend/pkg/metrics"
)

// Store is the full record store surface. *regatta.Repo and *memstore.Store
// both satisfy it.
type Store interface {
	SearchCandidates(ctx context.Context, term string) ([]domain.ResultRecord, error)
	FindByField(ctx context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error)
	Filter(ctx context.Context, f domain.RecordFilter) ([]domain.ResultRecord, error)
	Recent(ctx context.Context, limit int) ([]domain.ResultRecord, error)
	SuspectBoatNames(ctx context.Context) ([]domain.ResultRecord, error)
	SailorStats(ctx context.Context, clubs []string) ([]domain.SailorStats, error)
	RegattaStats(ctx context.Context, f domain.RegattaFilter) ([]domain.RegattaStats, error)
	ClubStats(ctx context.Context) ([]domain.ClubStats, error)
	Categories(ctx context.Context, clubs []string) ([]string, error)
	Summary(ctx context.Context) (domain.DatabaseSummary, error)
	InsertBatch(ctx context.Context, records []domain.ResultRecord) ([]domain.ResultRecord, error)
	Clear(ctx context.Context) (int64, error)
}

// TxRunner runs fn atomically.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Services is the wired service layer shared by the server and the CLI.
type Services struct {
	Store      Store
	Search     *search.Engine
	Reports    *report.Service
	Resolver   *resolver.Resolver
	Classifier *intent.Classifier
	Chat       *chat.Service
	Ingest     *ingest.Service
}

// NewServices wires every service over store. completer may be nil, which
// leaves the classifier with its local rules only.
func NewServices(
	log *slog.Logger,
	store Store,
	tx TxRunner,
	completer llm.Completer,
	cfg config.SearchConfig,
	m *metrics.Manager,
) *Services {
	s := &Services{
		Store:   store,
		Search:  search.NewEngine(log, store, cfg, m),
		Reports: report.NewService(log, store, cfg),
		Ingest:  ingest.NewService(log, store, tx, m),
	}
	s.Classifier = intent.NewClassifier(log, completer, m)
	s.Resolver = resolver.NewResolver(log, store, s.Reports, m)
	s.Chat = chat.NewService(log, s.Classifier, s.Search, s.Resolver, s.Reports, cfg)
	return s
}

// NewCompleter builds the configured language-model backend. A disabled
// provider yields nil without error.
func NewCompleter(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (llm.Completer, error) {
	c, err := llm.New(ctx, cfg)
	if errors.Is(err, llm.ErrDisabled) {
		log.InfoContext(ctx, "text classifier disabled, using local rules only")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "text classifier enabled", slog.String("provider", cfg.Provider))
	return c, nil
}
