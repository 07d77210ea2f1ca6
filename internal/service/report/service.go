package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/regatta-backend/internal/config"
	"github.com/heartmarshall/regatta-backend/internal/domain"
)

const (
	// TopSailorsByAvgLimit bounds the club summary's best-average list.
	TopSailorsByAvgLimit = 5
	// QualityTopSailorsLimit bounds the data-quality report's activity list.
	QualityTopSailorsLimit = 20
	// RegattaListLimit bounds the recent and upcoming regatta_stats metrics.
	RegattaListLimit = 5
	// DefaultStatsLimit bounds regatta_stats for unrecognised metrics.
	DefaultStatsLimit = 10
	// MaxLimit caps caller-supplied limits.
	MaxLimit = 1000
)

type recordStore interface {
	FindByField(ctx context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error)
	Recent(ctx context.Context, limit int) ([]domain.ResultRecord, error)
	SuspectBoatNames(ctx context.Context) ([]domain.ResultRecord, error)
	SailorStats(ctx context.Context, clubs []string) ([]domain.SailorStats, error)
	RegattaStats(ctx context.Context, f domain.RegattaFilter) ([]domain.RegattaStats, error)
	ClubStats(ctx context.Context) ([]domain.ClubStats, error)
	Categories(ctx context.Context, clubs []string) ([]string, error)
	Summary(ctx context.Context) (domain.DatabaseSummary, error)
}

// Service computes aggregates over the record store. Every operation is a
// pure read.
type Service struct {
	store        recordStore
	defaultLimit int
	qualityLimit int
	now          func() time.Time
	log          *slog.Logger
}

// NewService creates a report Service.
func NewService(
	log *slog.Logger,
	store recordStore,
	cfg config.SearchConfig,
) *Service {
	return &Service{
		store:        store,
		defaultLimit: cfg.DefaultAggregateLim,
		qualityLimit: cfg.QualityReportLimit,
		now:          time.Now,
		log:          log.With("service", "report"),
	}
}

// today is the current UTC date at midnight.
func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) limitOr(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return min(limit, MaxLimit)
}

func head[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
