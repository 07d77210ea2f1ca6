package domain

import "strings"

// Intent is a classified query: a tag plus the parameters that tag uses.
// Parameters that do not belong to the tag stay at their zero value.
type Intent struct {
	Type          IntentType `json:"queryType"`
	Name          string     `json:"name,omitempty"`
	ClubName      string     `json:"clubName,omitempty"`
	YachtClub     string     `json:"yachtClub,omitempty"`
	RegattaName   string     `json:"regattaName,omitempty"`
	Year          int        `json:"year,omitempty"`
	Metric        string     `json:"metric,omitempty"`
	DateRange     DateRange  `json:"dateRange,omitempty"`
	Limit         int        `json:"limit,omitempty"`
	Location      string     `json:"location,omitempty"`
	NeedsLocation bool       `json:"needsLocation,omitempty"`
	OriginalText  string     `json:"originalText,omitempty"`
}

func SailorSearch(name string) Intent {
	return Intent{Type: IntentSailorSearch, Name: name}
}

func BoatSearch(name string) Intent {
	return Intent{Type: IntentBoatSearch, Name: name}
}

func ClubSkippers(club string) Intent {
	return Intent{Type: IntentClubSkippers, ClubName: club}
}

func RegattaResults(regatta string) Intent {
	return Intent{Type: IntentRegattaResults, RegattaName: regatta}
}

func Unknown(text string) Intent {
	return Intent{Type: IntentUnknown, OriginalText: text}
}

// HasRequiredParams reports whether the parameters the tag cannot do without are present.
func (i Intent) HasRequiredParams() bool {
	switch i.Type {
	case IntentBoatSearch:
		return strings.TrimSpace(i.Name) != ""
	case IntentClubSkippers:
		return strings.TrimSpace(i.ClubName) != ""
	case IntentTopSailors:
		return strings.TrimSpace(i.YachtClub) != ""
	case IntentRegattaResults:
		return strings.TrimSpace(i.RegattaName) != ""
	case IntentRegattaCount:
		return i.Year > 0
	case IntentLocationQuery:
		return i.NeedsLocation || strings.TrimSpace(i.Location) != ""
	case "":
		return false
	}
	return i.Type.IsValid()
}
