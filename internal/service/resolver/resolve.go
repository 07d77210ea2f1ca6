package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// Resolution is the outcome of Resolve. Records are the matches that decided
// the new intent; ClubSummary is set only for a club match.
type Resolution struct {
	Intent      domain.Intent
	Records     []domain.ResultRecord
	ClubSummary *domain.ClubSummary
}

// Resolved reports whether the intent was re-tagged.
func (r Resolution) Resolved() bool {
	return r.Intent.Type != domain.IntentSailorSearch
}

type candidate struct {
	field domain.RecordField
	retag func(name string) domain.Intent
}

// Checked in order; the first field with matches wins.
var cascade = []candidate{
	{field: domain.FieldYachtClub, retag: domain.ClubSkippers},
	{field: domain.FieldBoatName, retag: domain.BoatSearch},
	{field: domain.FieldRegattaName, retag: domain.RegattaResults},
}

// Resolve re-tags a sailor search whose name matched no skipper. The name is
// tried as a club, then a boat, then a regatta. Other intents and names that
// match nothing come back unchanged.
func (r *Resolver) Resolve(ctx context.Context, in domain.Intent) (Resolution, error) {
	name := strings.TrimSpace(in.Name)
	if in.Type != domain.IntentSailorSearch || name == "" {
		return Resolution{Intent: in, Records: []domain.ResultRecord{}}, nil
	}

	for _, c := range cascade {
		records, err := r.store.FindByField(ctx, c.field, name, false)
		if err != nil {
			return Resolution{}, fmt.Errorf("resolve %s: %w", c.field, err)
		}
		if len(records) == 0 {
			continue
		}

		res := Resolution{Intent: c.retag(name), Records: records}
		if c.field == domain.FieldYachtClub {
			sum, err := r.clubs.ClubSummary(ctx, name)
			if err != nil {
				return Resolution{}, fmt.Errorf("resolve club summary: %w", err)
			}
			res.ClubSummary = &sum
		}

		r.metrics.Disambiguated(res.Intent.Type.String())
		r.log.InfoContext(ctx, "sailor search re-resolved",
			slog.String("name", name),
			slog.String("resolved_as", res.Intent.Type.String()),
			slog.Int("matches", len(records)),
		)
		return res, nil
	}

	r.metrics.Disambiguated(domain.IntentSailorSearch.String())
	return Resolution{Intent: in, Records: []domain.ResultRecord{}}, nil
}
