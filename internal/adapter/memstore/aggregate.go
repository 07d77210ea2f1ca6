package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

func matchesAnyClub(club string, variants []string) bool {
	for _, v := range variants {
		if domain.ContainsFold(club, v) {
			return true
		}
	}
	return false
}

func laterDate(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.After(*a):
		return b
	}
	return a
}

func earlierDate(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Before(*a):
		return b
	}
	return a
}

type sailorAcc struct {
	stats    domain.SailorStats
	sum      int
	numeric  int
	regattas map[string]struct{}
}

// SailorStats groups by (skipper, club), optionally restricted to clubs containing any spelling.
func (s *Store) SailorStats(_ context.Context, clubs []string) ([]domain.SailorStats, error) {
	var variants []string
	for _, c := range clubs {
		if c != "" {
			variants = append(variants, c)
		}
	}

	records := s.selectWhere(func(r *domain.ResultRecord) bool {
		return len(variants) == 0 || matchesAnyClub(r.YachtClub, variants)
	})

	type key struct{ skipper, club string }
	index := make(map[key]*sailorAcc)
	var order []*sailorAcc

	for _, r := range records {
		k := key{r.Skipper, r.YachtClub}
		acc, ok := index[k]
		if !ok {
			acc = &sailorAcc{
				stats:    domain.SailorStats{Skipper: r.Skipper, YachtClub: r.YachtClub},
				regattas: make(map[string]struct{}),
			}
			index[k] = acc
			order = append(order, acc)
		}
		acc.stats.TotalRaces++
		acc.regattas[r.RegattaName] = struct{}{}
		acc.stats.LastRaceDate = laterDate(acc.stats.LastRaceDate, r.RegattaDate)
		if n, ok := domain.NumericPosition(r.Position); ok {
			acc.sum += n
			acc.numeric++
			if acc.stats.BestPosition == nil || n < *acc.stats.BestPosition {
				best := n
				acc.stats.BestPosition = &best
			}
			if n <= 3 {
				acc.stats.PodiumFinishes++
			}
		}
	}

	out := make([]domain.SailorStats, len(order))
	for i, acc := range order {
		acc.stats.RegattasAttended = len(acc.regattas)
		if acc.numeric > 0 {
			avg := float64(acc.sum) / float64(acc.numeric)
			acc.stats.AvgPosition = &avg
		}
		out[i] = acc.stats
	}

	slices.SortStableFunc(out, func(a, b domain.SailorStats) int {
		if c := cmp.Compare(b.TotalRaces, a.TotalRaces); c != 0 {
			return c
		}
		if c := compareAvgNullsLast(a.AvgPosition, b.AvgPosition); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Skipper, b.Skipper); c != 0 {
			return c
		}
		return cmp.Compare(a.YachtClub, b.YachtClub)
	})
	return out, nil
}

func compareAvgNullsLast(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}

// RegattaStats groups by (regatta name, date), oldest first; undated regattas go last.
func (s *Store) RegattaStats(_ context.Context, f domain.RegattaFilter) ([]domain.RegattaStats, error) {
	records := s.selectWhere(func(r *domain.ResultRecord) bool {
		if f.Year > 0 && r.Year() != f.Year {
			return false
		}
		if f.After != nil && (r.RegattaDate == nil || !r.RegattaDate.After(*f.After)) {
			return false
		}
		if f.Until != nil && (r.RegattaDate == nil || r.RegattaDate.After(*f.Until)) {
			return false
		}
		return true
	})

	type key struct {
		name string
		date time.Time
		none bool
	}
	type acc struct {
		stats    domain.RegattaStats
		skippers map[string]struct{}
		clubs    map[string]struct{}
	}
	index := make(map[key]*acc)
	var order []*acc

	for _, r := range records {
		k := key{name: r.RegattaName, none: r.RegattaDate == nil}
		if r.RegattaDate != nil {
			k.date = *r.RegattaDate
		}
		a, ok := index[k]
		if !ok {
			a = &acc{
				stats:    domain.RegattaStats{RegattaName: r.RegattaName, RegattaDate: r.RegattaDate},
				skippers: make(map[string]struct{}),
				clubs:    make(map[string]struct{}),
			}
			index[k] = a
			order = append(order, a)
		}
		a.stats.TotalRecords++
		a.skippers[r.Skipper] = struct{}{}
		a.clubs[r.YachtClub] = struct{}{}
	}

	out := make([]domain.RegattaStats, len(order))
	for i, a := range order {
		a.stats.ParticipantCount = len(a.skippers)
		a.stats.ClubsRepresented = len(a.clubs)
		out[i] = a.stats
	}

	slices.SortStableFunc(out, func(a, b domain.RegattaStats) int {
		if c := compareDatesAscNullsLast(a.RegattaDate, b.RegattaDate); c != 0 {
			return c
		}
		return cmp.Compare(a.RegattaName, b.RegattaName)
	})
	return out, nil
}

func compareDatesAscNullsLast(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}

// ClubStats groups by club, excluding Unknown, by sailor count then race count.
func (s *Store) ClubStats(_ context.Context) ([]domain.ClubStats, error) {
	records := s.selectWhere(func(r *domain.ResultRecord) bool {
		return r.YachtClub != domain.UnknownClub
	})

	type acc struct {
		stats    domain.ClubStats
		skippers map[string]struct{}
		regattas map[string]struct{}
	}
	index := make(map[string]*acc)
	var order []*acc

	for _, r := range records {
		a, ok := index[r.YachtClub]
		if !ok {
			a = &acc{
				stats:    domain.ClubStats{YachtClub: r.YachtClub},
				skippers: make(map[string]struct{}),
				regattas: make(map[string]struct{}),
			}
			index[r.YachtClub] = a
			order = append(order, a)
		}
		a.stats.TotalRaces++
		a.skippers[r.Skipper] = struct{}{}
		a.regattas[r.RegattaName] = struct{}{}
	}

	out := make([]domain.ClubStats, len(order))
	for i, a := range order {
		a.stats.SailorCount = len(a.skippers)
		a.stats.RegattasAttended = len(a.regattas)
		out[i] = a.stats
	}

	slices.SortStableFunc(out, func(a, b domain.ClubStats) int {
		if c := cmp.Compare(b.SailorCount, a.SailorCount); c != 0 {
			return c
		}
		if c := cmp.Compare(b.TotalRaces, a.TotalRaces); c != 0 {
			return c
		}
		return cmp.Compare(a.YachtClub, b.YachtClub)
	})
	return out, nil
}

// Categories returns the sorted distinct non-empty categories of clubs containing any spelling.
func (s *Store) Categories(_ context.Context, clubs []string) ([]string, error) {
	var variants []string
	for _, c := range clubs {
		if c != "" {
			variants = append(variants, c)
		}
	}
	if len(variants) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var out []string
	for _, r := range s.selectWhere(func(r *domain.ResultRecord) bool {
		return r.Category != "" && matchesAnyClub(r.YachtClub, variants)
	}) {
		if _, ok := seen[r.Category]; !ok {
			seen[r.Category] = struct{}{}
			out = append(out, r.Category)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Summary describes the whole store.
func (s *Store) Summary(_ context.Context) (domain.DatabaseSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum domain.DatabaseSummary
	skippers := make(map[string]struct{})
	regattas := make(map[string]struct{})
	clubs := make(map[string]struct{})

	for i := range s.records {
		r := &s.records[i]
		sum.TotalRecords++
		skippers[r.Skipper] = struct{}{}
		regattas[r.RegattaName] = struct{}{}
		clubs[r.YachtClub] = struct{}{}
		sum.EarliestDate = earlierDate(sum.EarliestDate, r.RegattaDate)
		sum.LatestDate = laterDate(sum.LatestDate, r.RegattaDate)
		if r.Skipper == "" {
			sum.MissingSkippers++
		}
		if r.BoatName == "" {
			sum.MissingBoatNames++
		}
	}
	sum.TotalSailors = len(skippers)
	sum.TotalRegattas = len(regattas)
	sum.TotalClubs = len(clubs)
	return sum, nil
}
