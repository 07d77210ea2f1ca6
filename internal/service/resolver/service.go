package resolver

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/pkg/metrics"
)

type recordStore interface {
	FindByField(ctx context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error)
}

type clubSummarizer interface {
	ClubSummary(ctx context.Context, club string) (domain.ClubSummary, error)
}

// Resolver re-interprets a sailor search that found nothing.
type Resolver struct {
	store   recordStore
	clubs   clubSummarizer
	metrics *metrics.Manager
	log     *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(
	log *slog.Logger,
	store recordStore,
	clubs clubSummarizer,
	m *metrics.Manager,
) *Resolver {
	return &Resolver{
		store:   store,
		clubs:   clubs,
		metrics: m,
		log:     log.With("service", "resolver"),
	}
}
