package report

import (
	"context"
	"fmt"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// Aggregate runs the aggregate named by kind. A club summary for an unknown
// club returns domain.ErrNotFound.
func (s *Service) Aggregate(ctx context.Context, kind domain.AggregateKind, p Params) (any, error) {
	if err := p.Validate(kind); err != nil {
		return nil, err
	}

	switch kind {
	case domain.AggregateTopSailors:
		return s.TopSailors(ctx, p.Club, p.Limit)
	case domain.AggregateClubSkippers:
		return s.ClubSkippers(ctx, p.Club)
	case domain.AggregateClubSummary:
		sum, err := s.ClubSummary(ctx, p.Club)
		if err != nil {
			return nil, err
		}
		if !sum.Found {
			return nil, fmt.Errorf("club %q: %w", p.Club, domain.ErrNotFound)
		}
		return sum, nil
	case domain.AggregateRegattaResults:
		return s.RegattaResults(ctx, p.Regatta)
	case domain.AggregateRegattaCount:
		return s.RegattaCount(ctx, p.Year)
	case domain.AggregateRegattaStats:
		return s.RegattaStats(ctx, p.Metric)
	case domain.AggregateRegattaSearch:
		return s.SearchRegattas(ctx, p.Year, p.DateRange, p.Limit)
	case domain.AggregateTopClubs:
		return s.TopClubs(ctx, p.Limit)
	case domain.AggregateMostActiveSailor:
		return s.MostActiveSailor(ctx)
	case domain.AggregateDatabaseStatus:
		return s.DatabaseStatus(ctx)
	case domain.AggregateDataQuality:
		return s.DataQuality(ctx, p.Limit)
	}
	return nil, domain.NewValidationError("kind", "unsupported aggregate")
}
