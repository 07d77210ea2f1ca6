package search

import (
	"slices"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// Match ranks, best first.
const (
	RankExactSkipper = iota
	RankExactSkipperFold
	RankExactBoat
	RankExactBoatFold
	RankSkipperPrefix
	RankSkipperContains
	RankBoatContains

	// NoMatch is returned by Rank for records that match no condition.
	NoMatch = -1
)

// Rank returns the best rank of record for name, or NoMatch.
// name must already be trimmed.
func Rank(record domain.ResultRecord, name string) int {
	if name == "" {
		return NoMatch
	}
	switch {
	case record.Skipper == name:
		return RankExactSkipper
	case strings.EqualFold(record.Skipper, name):
		return RankExactSkipperFold
	case record.BoatName == name:
		return RankExactBoat
	case strings.EqualFold(record.BoatName, name):
		return RankExactBoatFold
	case domain.HasPrefixFold(record.Skipper, name):
		return RankSkipperPrefix
	case domain.ContainsFold(record.Skipper, name):
		return RankSkipperContains
	case domain.ContainsFold(record.BoatName, name):
		return RankBoatContains
	}
	return NoMatch
}

type ranked struct {
	rank   int
	record domain.ResultRecord
}

// RankRecords keeps the records matching name and orders them by rank, then
// regatta date descending with undated records last. Ties keep input order.
func RankRecords(records []domain.ResultRecord, name string) []domain.ResultRecord {
	name = strings.TrimSpace(name)

	matches := make([]ranked, 0, len(records))
	for _, r := range records {
		if rank := Rank(r, name); rank != NoMatch {
			matches = append(matches, ranked{rank: rank, record: r})
		}
	}

	slices.SortStableFunc(matches, func(a, b ranked) int {
		if a.rank != b.rank {
			return a.rank - b.rank
		}
		return domain.CompareDatesDesc(a.record.RegattaDate, b.record.RegattaDate)
	})

	out := make([]domain.ResultRecord, len(matches))
	for i, m := range matches {
		out[i] = m.record
	}
	return out
}
