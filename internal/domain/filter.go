package domain

import (
	"strings"
	"time"
)

// SearchCriteria selects records for the ranked search engine.
// A non-blank Skipper switches to name-ranked mode; the other fields are then ignored.
type SearchCriteria struct {
	Skipper     string
	BoatName    string
	YachtClub   string
	RegattaName string
	Year        int
	Location    string
}

// IsEmpty reports whether no criterion carries a usable value.
func (c SearchCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.Skipper) == "" &&
		strings.TrimSpace(c.BoatName) == "" &&
		strings.TrimSpace(c.YachtClub) == "" &&
		strings.TrimSpace(c.RegattaName) == "" &&
		strings.TrimSpace(c.Location) == "" &&
		c.Year <= 0
}

// RecordFilter is the store-level conjunction of optional substring filters.
// Location matches either the regatta name or the yacht club.
type RecordFilter struct {
	BoatName    string
	YachtClub   string
	RegattaName string
	Year        int
	Location    string
	Limit       int
}

// RecordField names a column matched by an exact or fuzzy field lookup.
type RecordField string

const (
	FieldSkipper     RecordField = "skipper"
	FieldBoatName    RecordField = "boat_name"
	FieldYachtClub   RecordField = "yacht_club"
	FieldRegattaName RecordField = "regatta_name"
)

func (f RecordField) String() string { return string(f) }

func (f RecordField) IsValid() bool {
	switch f {
	case FieldSkipper, FieldBoatName, FieldYachtClub, FieldRegattaName:
		return true
	}
	return false
}

// RegattaFilter restricts regatta-level listings.
type RegattaFilter struct {
	Year  int
	After *time.Time // exclusive
	Until *time.Time // inclusive
}
