package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// Search returns records for the criteria. A non-blank Skipper selects the
// name-ranked mode; otherwise the remaining criteria are AND-ed together and
// the result is capped. Blank criteria return an empty result without touching
// the store.
func (e *Engine) Search(ctx context.Context, c domain.SearchCriteria) ([]domain.ResultRecord, error) {
	if name := strings.TrimSpace(c.Skipper); name != "" {
		return e.searchByName(ctx, name)
	}
	if c.IsEmpty() {
		return []domain.ResultRecord{}, nil
	}
	return e.searchByFields(ctx, c)
}

func (e *Engine) searchByName(ctx context.Context, name string) ([]domain.ResultRecord, error) {
	candidates, err := e.store.SearchCandidates(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}

	out := RankRecords(candidates, name)
	e.metrics.SearchResults(modeName, len(out))

	e.log.DebugContext(ctx, "name search",
		slog.String("name", name),
		slog.Int("candidates", len(candidates)),
		slog.Int("results", len(out)),
	)
	return out, nil
}

func (e *Engine) searchByFields(ctx context.Context, c domain.SearchCriteria) ([]domain.ResultRecord, error) {
	out, err := e.store.Filter(ctx, domain.RecordFilter{
		BoatName:    strings.TrimSpace(c.BoatName),
		YachtClub:   strings.TrimSpace(c.YachtClub),
		RegattaName: strings.TrimSpace(c.RegattaName),
		Year:        c.Year,
		Location:    strings.TrimSpace(c.Location),
		Limit:       e.filterCap,
	})
	if err != nil {
		return nil, fmt.Errorf("filter records: %w", err)
	}
	if out == nil {
		out = []domain.ResultRecord{}
	}
	e.metrics.SearchResults(modeFilter, len(out))
	return out, nil
}
