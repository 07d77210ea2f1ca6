package report

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// ClubSummary derives the club overview from its skippers. The skipper and
// category reads run concurrently. When no skipper matches any spelling the
// result has Found set to false and carries only the requested name.
func (s *Service) ClubSummary(ctx context.Context, club string) (domain.ClubSummary, error) {
	variants := domain.ClubVariants(club)
	if variants == nil {
		return domain.ClubSummary{}, domain.NewValidationError("club", "required")
	}

	var (
		skippers   []domain.SailorStats
		categories []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skippers, err = s.store.SailorStats(gctx, variants)
		if err != nil {
			return fmt.Errorf("club skippers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.store.Categories(gctx, variants)
		if err != nil {
			return fmt.Errorf("club categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ClubSummary{}, fmt.Errorf("club summary: %w", err)
	}

	if len(skippers) == 0 {
		return domain.ClubSummary{ClubName: variants[0]}, nil
	}

	ranked := make([]domain.SailorStats, 0, len(skippers))
	for _, st := range skippers {
		if st.AvgPosition != nil {
			ranked = append(ranked, st)
		}
	}
	slices.SortStableFunc(ranked, byAvgPosition)

	if categories == nil {
		categories = []string{}
	}

	return domain.ClubSummary{
		Found:            true,
		ClubName:         skippers[0].YachtClub,
		TotalSailors:     len(skippers),
		TopSailorsByAvg:  head(ranked, TopSailorsByAvgLimit),
		MostActiveSailor: mostActive(skippers),
		Categories:       categories,
	}, nil
}

// TopClubs returns clubs other than Unknown by sailor count, then race count.
func (s *Service) TopClubs(ctx context.Context, limit int) ([]domain.ClubStats, error) {
	clubs, err := s.store.ClubStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("top clubs: %w", err)
	}
	if clubs == nil {
		clubs = []domain.ClubStats{}
	}
	return head(clubs, s.limitOr(limit, s.defaultLimit)), nil
}
