package report

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// RegattaResults returns the records of the regatta whose name matches exactly
// (ignoring case); when there is none it falls back to a substring match.
// Records are ordered by position, numeric first.
func (s *Service) RegattaResults(ctx context.Context, regatta string) ([]domain.ResultRecord, error) {
	regatta = strings.TrimSpace(regatta)
	if regatta == "" {
		return nil, domain.NewValidationError("regatta", "required")
	}

	records, err := s.store.FindByField(ctx, domain.FieldRegattaName, regatta, true)
	if err != nil {
		return nil, fmt.Errorf("regatta results exact: %w", err)
	}
	if len(records) > 0 {
		return records, nil
	}

	records, err = s.store.FindByField(ctx, domain.FieldRegattaName, regatta, false)
	if err != nil {
		return nil, fmt.Errorf("regatta results fuzzy: %w", err)
	}
	if records == nil {
		records = []domain.ResultRecord{}
	}
	return records, nil
}

// RegattaCount lists the regattas held in year with participant counts, oldest first.
func (s *Service) RegattaCount(ctx context.Context, year int) ([]domain.RegattaStats, error) {
	if year <= 0 {
		return nil, domain.NewValidationError("year", "required")
	}
	regattas, err := s.store.RegattaStats(ctx, domain.RegattaFilter{Year: year})
	if err != nil {
		return nil, fmt.Errorf("regatta count: %w", err)
	}
	if regattas == nil {
		regattas = []domain.RegattaStats{}
	}
	return regattas, nil
}

// RegattaStats picks regattas by metric:
//   - largest / smallest: the single regatta with the most / fewest
//     participants, first encountered on ties;
//   - recent: the five latest;
//   - upcoming: the five next future regattas, or the five latest when none
//     are scheduled;
//   - anything else: the first ten in date order.
//
// An empty metric means largest.
func (s *Service) RegattaStats(ctx context.Context, metric string) (domain.RegattaStatsReport, error) {
	metric = strings.TrimSpace(metric)
	if metric == "" {
		metric = domain.StatsMetricLargest.String()
	}

	all, err := s.store.RegattaStats(ctx, domain.RegattaFilter{})
	if err != nil {
		return domain.RegattaStatsReport{}, fmt.Errorf("regatta stats: %w", err)
	}

	report := domain.RegattaStatsReport{
		Metric:        metric,
		Regattas:      []domain.RegattaStats{},
		TotalRegattas: len(all),
	}
	if len(all) == 0 {
		return report, nil
	}

	switch domain.ParseStatsMetric(metric) {
	case domain.StatsMetricLargest:
		report.Regattas = []domain.RegattaStats{pick(all, func(c, best domain.RegattaStats) bool {
			return c.ParticipantCount > best.ParticipantCount
		})}
	case domain.StatsMetricSmallest:
		report.Regattas = []domain.RegattaStats{pick(all, func(c, best domain.RegattaStats) bool {
			return c.ParticipantCount < best.ParticipantCount
		})}
	case domain.StatsMetricRecent:
		report.Regattas = latest(all, RegattaListLimit)
	case domain.StatsMetricUpcoming:
		today := s.today()
		var upcoming []domain.RegattaStats
		for _, r := range all {
			if r.RegattaDate != nil && r.RegattaDate.After(today) {
				upcoming = append(upcoming, r)
			}
		}
		if len(upcoming) > 0 {
			// all is already in ascending date order.
			report.Regattas = head(upcoming, RegattaListLimit)
		} else {
			report.Regattas = latest(all, RegattaListLimit)
		}
	default:
		report.Regattas = head(all, DefaultStatsLimit)
	}
	return report, nil
}

// SearchRegattas lists regattas filtered by year and date range.
// recent covers today and earlier, newest first; upcoming covers dates after
// today, soonest first; without a range all regattas are listed newest first.
func (s *Service) SearchRegattas(ctx context.Context, year int, dateRange domain.DateRange, limit int) ([]domain.RegattaStats, error) {
	f := domain.RegattaFilter{Year: year}
	today := s.today()
	switch dateRange {
	case domain.DateRangeRecent:
		f.Until = &today
	case domain.DateRangeUpcoming:
		f.After = &today
	case "":
	default:
		return nil, domain.NewValidationError("dateRange", "must be recent or upcoming")
	}

	regattas, err := s.store.RegattaStats(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search regattas: %w", err)
	}

	if dateRange != domain.DateRangeUpcoming {
		regattas = latest(regattas, -1)
	}
	if regattas == nil {
		regattas = []domain.RegattaStats{}
	}
	if limit > 0 {
		regattas = head(regattas, min(limit, MaxLimit))
	}
	return regattas, nil
}

func pick(all []domain.RegattaStats, better func(c, best domain.RegattaStats) bool) domain.RegattaStats {
	best := all[0]
	for _, r := range all[1:] {
		if better(r, best) {
			best = r
		}
	}
	return best
}

// latest returns a copy sorted newest first with undated regattas last,
// truncated to n when n >= 0.
func latest(all []domain.RegattaStats, n int) []domain.RegattaStats {
	out := slices.Clone(all)
	slices.SortStableFunc(out, func(a, b domain.RegattaStats) int {
		return domain.CompareDatesDesc(a.RegattaDate, b.RegattaDate)
	})
	return head(out, n)
}
