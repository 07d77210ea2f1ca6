package intent

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/regatta-backend/pkg/metrics"
)

type textClassifier interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Classifier turns free text into a domain.Intent.
type Classifier struct {
	llm     textClassifier
	metrics *metrics.Manager
	log     *slog.Logger
}

// NewClassifier creates a Classifier. llm may be nil, in which case text that
// no local rule recognises classifies as unknown.
func NewClassifier(
	log *slog.Logger,
	llm textClassifier,
	m *metrics.Manager,
) *Classifier {
	return &Classifier{
		llm:     llm,
		metrics: m,
		log:     log.With("service", "intent"),
	}
}
