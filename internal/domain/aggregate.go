package domain

import "time"

// SailorStats aggregates one (skipper, club) pair.
// AvgPosition and BestPosition only consider numeric positions and are nil when there are none.
type SailorStats struct {
	Skipper          string     `json:"skipper"`
	YachtClub        string     `json:"yacht_club"`
	TotalRaces       int        `json:"total_races"`
	RegattasAttended int        `json:"regattas_attended"`
	AvgPosition      *float64   `json:"avg_position"`
	BestPosition     *int       `json:"best_position"`
	PodiumFinishes   int        `json:"podium_finishes"`
	LastRaceDate     *time.Time `json:"last_race_date"`
}

// RegattaStats aggregates one (regatta name, date) pair.
type RegattaStats struct {
	RegattaName      string     `json:"regatta_name"`
	RegattaDate      *time.Time `json:"regatta_date"`
	ParticipantCount int        `json:"participant_count"`
	TotalRecords     int        `json:"total_records"`
	ClubsRepresented int        `json:"clubs_represented"`
}

// RegattaStatsReport is the answer to a regatta_stats query.
type RegattaStatsReport struct {
	Metric        string         `json:"metric"`
	Regattas      []RegattaStats `json:"regattas"`
	TotalRegattas int            `json:"totalRegattas"`
}

// ClubStats aggregates one yacht club.
type ClubStats struct {
	YachtClub        string `json:"yacht_club"`
	SailorCount      int    `json:"sailor_count"`
	TotalRaces       int    `json:"total_races"`
	RegattasAttended int    `json:"regattas_attended"`
}

// ClubSummary is derived on every request from the club's skippers.
// Found is false when no skipper matched any club-name variant.
type ClubSummary struct {
	Found            bool          `json:"-"`
	ClubName         string        `json:"clubName"`
	TotalSailors     int           `json:"totalSailors"`
	TopSailorsByAvg  []SailorStats `json:"topSailorsByAvg"`
	MostActiveSailor *SailorStats  `json:"mostActiveSailor"`
	Categories       []string      `json:"categories"`
}

// DatabaseSummary describes the whole store.
type DatabaseSummary struct {
	TotalRecords     int        `json:"total_records"`
	TotalSailors     int        `json:"total_sailors"`
	TotalRegattas    int        `json:"total_regattas"`
	TotalClubs       int        `json:"total_clubs"`
	EarliestDate     *time.Time `json:"earliest_date"`
	LatestDate       *time.Time `json:"latest_date"`
	MissingSkippers  int        `json:"missing_skippers"`
	MissingBoatNames int        `json:"missing_boat_names"`
}

// SuspectBoatName groups records whose boat name looks like a person's name.
type SuspectBoatName struct {
	BoatName    string   `json:"boat_name"`
	Occurrences int      `json:"occurrences"`
	Skippers    []string `json:"skippers"`
}

// DataQualityReport surfaces likely data-entry problems alongside store totals.
type DataQualityReport struct {
	Summary          DatabaseSummary   `json:"summary"`
	TopSailors       []SailorStats     `json:"top_sailors"`
	RecentRecords    []ResultRecord    `json:"recent_records"`
	SuspectBoatNames []SuspectBoatName `json:"suspect_boat_names"`
}
