package chat

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/regatta-backend/internal/config"
	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/internal/service/resolver"
)

type classifier interface {
	Classify(ctx context.Context, text string) domain.Intent
}

type searcher interface {
	Search(ctx context.Context, c domain.SearchCriteria) ([]domain.ResultRecord, error)
}

type disambiguator interface {
	Resolve(ctx context.Context, in domain.Intent) (resolver.Resolution, error)
}

type reporter interface {
	TopSailors(ctx context.Context, club string, limit int) ([]domain.SailorStats, error)
	ClubSkippers(ctx context.Context, club string) ([]domain.SailorStats, error)
	RegattaResults(ctx context.Context, regatta string) ([]domain.ResultRecord, error)
	RegattaCount(ctx context.Context, year int) ([]domain.RegattaStats, error)
	RegattaStats(ctx context.Context, metric string) (domain.RegattaStatsReport, error)
	SearchRegattas(ctx context.Context, year int, dateRange domain.DateRange, limit int) ([]domain.RegattaStats, error)
	TopClubs(ctx context.Context, limit int) ([]domain.ClubStats, error)
	MostActiveSailor(ctx context.Context) (*domain.SailorStats, error)
	DatabaseStatus(ctx context.Context) (domain.DatabaseSummary, error)
}

// Service answers free-text questions: classify, resolve, then run the query.
type Service struct {
	classifier   classifier
	search       searcher
	resolver     disambiguator
	reports      reporter
	defaultLimit int
	log          *slog.Logger
}

// NewService creates a chat Service.
func NewService(
	log *slog.Logger,
	cls classifier,
	search searcher,
	res disambiguator,
	reports reporter,
	cfg config.SearchConfig,
) *Service {
	return &Service{
		classifier:   cls,
		search:       search,
		resolver:     res,
		reports:      reports,
		defaultLimit: cfg.DefaultAggregateLim,
		log:          log.With("service", "chat"),
	}
}
