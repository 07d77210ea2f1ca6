package report

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

var (
	personLikeName   = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)
	boatVocabulary   = []string{"boat", "ship", "yacht", "sail"}
	boatPlaceholders = map[string]struct{}{"unknown": {}, "n/a": {}, "tbd": {}, "none": {}}
)

// DatabaseStatus returns store-wide totals.
func (s *Service) DatabaseStatus(ctx context.Context) (domain.DatabaseSummary, error) {
	sum, err := s.store.Summary(ctx)
	if err != nil {
		return domain.DatabaseSummary{}, fmt.Errorf("database status: %w", err)
	}
	return sum, nil
}

// DataQuality reports store totals, the most active skippers, the newest
// records and boat names that look like a person's name.
func (s *Service) DataQuality(ctx context.Context, limit int) (domain.DataQualityReport, error) {
	sum, err := s.store.Summary(ctx)
	if err != nil {
		return domain.DataQualityReport{}, fmt.Errorf("data quality summary: %w", err)
	}

	sailors, err := s.store.SailorStats(ctx, nil)
	if err != nil {
		return domain.DataQualityReport{}, fmt.Errorf("data quality sailors: %w", err)
	}

	recent, err := s.store.Recent(ctx, s.limitOr(limit, s.qualityLimit))
	if err != nil {
		return domain.DataQualityReport{}, fmt.Errorf("data quality recent: %w", err)
	}

	suspects, err := s.store.SuspectBoatNames(ctx)
	if err != nil {
		return domain.DataQualityReport{}, fmt.Errorf("data quality boat names: %w", err)
	}

	if sailors == nil {
		sailors = []domain.SailorStats{}
	}
	if recent == nil {
		recent = []domain.ResultRecord{}
	}

	return domain.DataQualityReport{
		Summary:          sum,
		TopSailors:       head(sailors, QualityTopSailorsLimit),
		RecentRecords:    recent,
		SuspectBoatNames: groupSuspectBoatNames(suspects),
	}, nil
}

// IsSuspectBoatName reports whether boat looks like a person's name entered in
// the boat column: two capitalized words, different from the skipper, without
// boat vocabulary, and not a placeholder.
func IsSuspectBoatName(boat, skipper string) bool {
	if !personLikeName.MatchString(boat) || boat == skipper {
		return false
	}
	lower := strings.ToLower(boat)
	if _, ok := boatPlaceholders[lower]; ok {
		return false
	}
	for _, w := range boatVocabulary {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

func groupSuspectBoatNames(records []domain.ResultRecord) []domain.SuspectBoatName {
	index := make(map[string]int)
	out := []domain.SuspectBoatName{}
	seen := make(map[string]map[string]struct{})

	for _, r := range records {
		if !IsSuspectBoatName(r.BoatName, r.Skipper) {
			continue
		}
		i, ok := index[r.BoatName]
		if !ok {
			i = len(out)
			index[r.BoatName] = i
			out = append(out, domain.SuspectBoatName{BoatName: r.BoatName, Skippers: []string{}})
			seen[r.BoatName] = make(map[string]struct{})
		}
		out[i].Occurrences++
		if _, dup := seen[r.BoatName][r.Skipper]; !dup {
			seen[r.BoatName][r.Skipper] = struct{}{}
			out[i].Skippers = append(out[i].Skippers, r.Skipper)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.SuspectBoatName) int {
		if c := cmp.Compare(b.Occurrences, a.Occurrences); c != 0 {
			return c
		}
		return cmp.Compare(a.BoatName, b.BoatName)
	})
	return out
}
