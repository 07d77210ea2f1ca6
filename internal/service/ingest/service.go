package ingest

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/pkg/metrics"
)

type recordStore interface {
	InsertBatch(ctx context.Context, records []domain.ResultRecord) ([]domain.ResultRecord, error)
	Clear(ctx context.Context) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service loads result files into the store and empties it.
type Service struct {
	store   recordStore
	tx      txManager
	metrics *metrics.Manager
	log     *slog.Logger
}

// NewService creates a new Ingest service.
func NewService(
	log *slog.Logger,
	store recordStore,
	tx txManager,
	m *metrics.Manager,
) *Service {
	return &Service{
		store:   store,
		tx:      tx,
		metrics: m,
		log:     log.With("service", "ingest"),
	}
}
