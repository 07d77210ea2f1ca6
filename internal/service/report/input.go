package report

import (
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// Params carries the arguments of an aggregate. Each kind reads only the
// fields it needs.
type Params struct {
	Club      string
	Regatta   string
	Year      int
	Metric    string
	DateRange domain.DateRange
	Limit     int
}

// Validate checks the fields kind requires and collects all errors.
func (p Params) Validate(kind domain.AggregateKind) error {
	var errs []domain.FieldError

	if !kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "unsupported aggregate"})
	}

	switch kind {
	case domain.AggregateTopSailors, domain.AggregateClubSkippers, domain.AggregateClubSummary:
		if strings.TrimSpace(p.Club) == "" {
			errs = append(errs, domain.FieldError{Field: "club", Message: "required"})
		}
	case domain.AggregateRegattaResults:
		if strings.TrimSpace(p.Regatta) == "" {
			errs = append(errs, domain.FieldError{Field: "regatta", Message: "required"})
		}
	case domain.AggregateRegattaCount:
		if p.Year <= 0 {
			errs = append(errs, domain.FieldError{Field: "year", Message: "required"})
		}
	case domain.AggregateRegattaSearch:
		if p.DateRange != "" && !p.DateRange.IsValid() {
			errs = append(errs, domain.FieldError{Field: "dateRange", Message: "must be recent or upcoming"})
		}
	}

	if p.Year < 0 && kind != domain.AggregateRegattaCount {
		errs = append(errs, domain.FieldError{Field: "year", Message: "must be non-negative"})
	}
	if p.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
