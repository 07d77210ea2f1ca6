package search

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/regatta-backend/internal/config"
	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/pkg/metrics"
)

const (
	modeName   = "name"
	modeFilter = "filter"
)

type recordStore interface {
	SearchCandidates(ctx context.Context, term string) ([]domain.ResultRecord, error)
	Filter(ctx context.Context, f domain.RecordFilter) ([]domain.ResultRecord, error)
}

// Engine answers record searches in name-ranked or field-filter mode.
type Engine struct {
	store     recordStore
	filterCap int
	metrics   *metrics.Manager
	log       *slog.Logger
}

// NewEngine creates a search Engine.
func NewEngine(
	log *slog.Logger,
	store recordStore,
	cfg config.SearchConfig,
	m *metrics.Manager,
) *Engine {
	return &Engine{
		store:     store,
		filterCap: cfg.FilterRowCap,
		metrics:   m,
		log:       log.With("service", "search"),
	}
}
