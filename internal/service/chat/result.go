package chat

import "github.com/heartmarshall/regatta-backend/internal/domain"

// Answer is the reply to one question.
type Answer struct {
	Success   bool              `json:"success"`
	QueryType domain.IntentType `json:"queryType"`
	Intent    domain.Intent     `json:"intent"`
	Data      any               `json:"data"`
}

// SailorData answers sailor_search.
type SailorData struct {
	Skipper string                `json:"skipper"`
	Results []domain.ResultRecord `json:"results"`
}

// BoatData answers boat_search.
type BoatData struct {
	BoatName string                `json:"boatName"`
	Results  []domain.ResultRecord `json:"results"`
}

// ClubData answers club_skippers. Summary is attached when the club was
// reached by re-resolving an empty sailor search.
type ClubData struct {
	ClubName string               `json:"clubName"`
	Results  []domain.SailorStats `json:"results"`
	Summary  *domain.ClubSummary  `json:"summary,omitempty"`
}

// TopSailorsData answers top_sailors.
type TopSailorsData struct {
	YachtClub string               `json:"yachtClub"`
	Limit     int                  `json:"limit"`
	Results   []domain.SailorStats `json:"results"`
}

// RegattaData answers regatta_results.
type RegattaData struct {
	RegattaName string                `json:"regattaName"`
	Results     []domain.ResultRecord `json:"results"`
}

// RegattaCountData answers regatta_count.
type RegattaCountData struct {
	Year    int                   `json:"year"`
	Count   int                   `json:"count"`
	Results []domain.RegattaStats `json:"results"`
}

// RegattaSearchData answers regatta_search.
type RegattaSearchData struct {
	Year      int                   `json:"year,omitempty"`
	DateRange domain.DateRange      `json:"dateRange,omitempty"`
	Results   []domain.RegattaStats `json:"results"`
}

// TopClubsData answers top_clubs.
type TopClubsData struct {
	Limit   int                `json:"limit"`
	Results []domain.ClubStats `json:"results"`
}

// MostActiveData answers most_active_sailor.
type MostActiveData struct {
	Sailor *domain.SailorStats `json:"sailor"`
}

// LocationData answers location_query. Message asks for a place when none was given.
type LocationData struct {
	Location      string                `json:"location,omitempty"`
	NeedsLocation bool                  `json:"needsLocation,omitempty"`
	Message       string                `json:"message,omitempty"`
	Results       []domain.ResultRecord `json:"results"`
}
