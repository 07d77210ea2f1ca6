package domain

import "strings"

// IntentType is the tag of a classified query.
type IntentType string

const (
	IntentSailorSearch     IntentType = "sailor_search"
	IntentBoatSearch       IntentType = "boat_search"
	IntentClubSkippers     IntentType = "club_skippers"
	IntentTopSailors       IntentType = "top_sailors"
	IntentRegattaResults   IntentType = "regatta_results"
	IntentRegattaCount     IntentType = "regatta_count"
	IntentRegattaStats     IntentType = "regatta_stats"
	IntentRegattaSearch    IntentType = "regatta_search"
	IntentTopClubs         IntentType = "top_clubs"
	IntentMostActiveSailor IntentType = "most_active_sailor"
	IntentLocationQuery    IntentType = "location_query"
	IntentDatabaseStatus   IntentType = "database_status"
	IntentUnknown          IntentType = "unknown"
)

func (t IntentType) String() string { return string(t) }

func (t IntentType) IsValid() bool {
	switch t {
	case IntentSailorSearch, IntentBoatSearch, IntentClubSkippers, IntentTopSailors,
		IntentRegattaResults, IntentRegattaCount, IntentRegattaStats, IntentRegattaSearch,
		IntentTopClubs, IntentMostActiveSailor, IntentLocationQuery, IntentDatabaseStatus,
		IntentUnknown:
		return true
	}
	return false
}

// StatsMetric selects which regattas a regatta_stats query reports.
type StatsMetric string

const (
	StatsMetricLargest  StatsMetric = "largest"
	StatsMetricSmallest StatsMetric = "smallest"
	StatsMetricRecent   StatsMetric = "recent"
	StatsMetricUpcoming StatsMetric = "upcoming"
)

func (m StatsMetric) String() string { return string(m) }

func (m StatsMetric) IsValid() bool {
	switch m {
	case StatsMetricLargest, StatsMetricSmallest, StatsMetricRecent, StatsMetricUpcoming:
		return true
	}
	return false
}

// ParseStatsMetric folds the accepted synonyms into a StatsMetric.
// Unrecognised values yield an empty metric, which reports the first regattas by size.
func ParseStatsMetric(s string) StatsMetric {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "largest", "biggest", "most":
		return StatsMetricLargest
	case "smallest", "least":
		return StatsMetricSmallest
	case "recent":
		return StatsMetricRecent
	case "upcoming":
		return StatsMetricUpcoming
	}
	return ""
}

// DateRange restricts a regatta search relative to the current date.
type DateRange string

const (
	DateRangeRecent   DateRange = "recent"
	DateRangeUpcoming DateRange = "upcoming"
)

func (r DateRange) String() string { return string(r) }

func (r DateRange) IsValid() bool {
	switch r {
	case DateRangeRecent, DateRangeUpcoming:
		return true
	}
	return false
}

// AggregateKind names a reporting function.
type AggregateKind string

const (
	AggregateTopSailors       AggregateKind = "top_sailors"
	AggregateClubSkippers     AggregateKind = "club_skippers"
	AggregateClubSummary      AggregateKind = "club_summary"
	AggregateRegattaResults   AggregateKind = "regatta_results"
	AggregateRegattaCount     AggregateKind = "regatta_count"
	AggregateRegattaStats     AggregateKind = "regatta_stats"
	AggregateRegattaSearch    AggregateKind = "regatta_search"
	AggregateTopClubs         AggregateKind = "top_clubs"
	AggregateMostActiveSailor AggregateKind = "most_active_sailor"
	AggregateDatabaseStatus   AggregateKind = "database_status"
	AggregateDataQuality      AggregateKind = "data_quality"
)

func (k AggregateKind) String() string { return string(k) }

func (k AggregateKind) IsValid() bool {
	switch k {
	case AggregateTopSailors, AggregateClubSkippers, AggregateClubSummary, AggregateRegattaResults,
		AggregateRegattaCount, AggregateRegattaStats, AggregateRegattaSearch, AggregateTopClubs,
		AggregateMostActiveSailor, AggregateDatabaseStatus, AggregateDataQuality:
		return true
	}
	return false
}
