package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// TopSailors returns the skippers of clubs containing club, best average
// position first. Skippers without a numeric finish go last.
func (s *Service) TopSailors(ctx context.Context, club string, limit int) ([]domain.SailorStats, error) {
	club = strings.TrimSpace(club)
	if club == "" {
		return nil, domain.NewValidationError("club", "required")
	}

	stats, err := s.store.SailorStats(ctx, []string{club})
	if err != nil {
		return nil, fmt.Errorf("top sailors: %w", err)
	}

	slices.SortStableFunc(stats, byAvgPosition)
	return head(stats, s.limitOr(limit, s.defaultLimit)), nil
}

// ClubSkippers returns per-skipper statistics for the club, probing the four
// spellings of the name. Ordered by race count, then average position.
func (s *Service) ClubSkippers(ctx context.Context, club string) ([]domain.SailorStats, error) {
	variants := domain.ClubVariants(club)
	if variants == nil {
		return nil, domain.NewValidationError("club", "required")
	}

	stats, err := s.store.SailorStats(ctx, variants)
	if err != nil {
		return nil, fmt.Errorf("club skippers: %w", err)
	}
	if stats == nil {
		stats = []domain.SailorStats{}
	}
	return stats, nil
}

// MostActiveSailor returns the skipper with the most results, or nil when the
// store is empty. Ties keep the store's ordering.
func (s *Service) MostActiveSailor(ctx context.Context) (*domain.SailorStats, error) {
	stats, err := s.store.SailorStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("most active sailor: %w", err)
	}
	return mostActive(stats), nil
}

func mostActive(stats []domain.SailorStats) *domain.SailorStats {
	var best *domain.SailorStats
	for i := range stats {
		if best == nil || stats[i].TotalRaces > best.TotalRaces {
			best = &stats[i]
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

func byAvgPosition(a, b domain.SailorStats) int {
	switch {
	case a.AvgPosition == nil && b.AvgPosition == nil:
		return 0
	case a.AvgPosition == nil:
		return 1
	case b.AvgPosition == nil:
		return -1
	}
	return cmp.Compare(*a.AvgPosition, *b.AvgPosition)
}
