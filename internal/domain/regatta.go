package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnknownClub is stored in place of an empty yacht club.
const UnknownClub = "Unknown"

// ResultRecord is one sailor's result in one regatta.
type ResultRecord struct {
	ID          uuid.UUID  `json:"id"`
	ImportID    uuid.UUID  `json:"import_id"`
	RegattaName string     `json:"regatta_name"`
	RegattaDate *time.Time `json:"regatta_date,omitempty"`
	Category    string     `json:"category,omitempty"`
	Position    string     `json:"position,omitempty"`
	SailNumber  string     `json:"sail_number,omitempty"`
	// BoatName sometimes holds the skipper's name because of upstream entry errors.
	BoatName    string    `json:"boat_name,omitempty"`
	Skipper     string    `json:"skipper"`
	YachtClub   string    `json:"yacht_club"`
	Results     string    `json:"results,omitempty"`
	TotalPoints *float64  `json:"total_points,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the storage invariants of a record.
func (r *ResultRecord) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(r.RegattaName) == "" {
		errs = append(errs, FieldError{Field: "regatta_name", Message: "required"})
	}
	if strings.TrimSpace(r.Skipper) == "" {
		errs = append(errs, FieldError{Field: "skipper", Message: "required"})
	}
	if strings.TrimSpace(r.YachtClub) == "" {
		errs = append(errs, FieldError{Field: "yacht_club", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Year returns the regatta year, or 0 when the record is undated.
func (r *ResultRecord) Year() int {
	if r.RegattaDate == nil {
		return 0
	}
	return r.RegattaDate.Year()
}

// NormalizeClub trims a club name and substitutes UnknownClub for empty values.
func NormalizeClub(club string) string {
	club = strings.TrimSpace(club)
	if club == "" {
		return UnknownClub
	}
	return club
}

// ClubVariants returns the four spellings probed when matching a club name:
// verbatim, upper case, lower case and with all whitespace removed.
// Abbreviations are not expanded.
func ClubVariants(club string) []string {
	club = strings.TrimSpace(club)
	if club == "" {
		return nil
	}
	return []string{
		club,
		strings.ToUpper(club),
		strings.ToLower(club),
		strings.Join(strings.Fields(club), ""),
	}
}
