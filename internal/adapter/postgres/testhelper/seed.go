package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// UniqueSuffix returns a short unique string for non-conflicting test data.
// The shared container is reused across tests, so seeded names should carry it.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// Date returns a pointer to midnight UTC of the given day.
func Date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// SeedRecords inserts records directly, filling IDs and club defaults.
func SeedRecords(t *testing.T, pool *pgxpool.Pool, records ...domain.ResultRecord) []domain.ResultRecord {
	t.Helper()
	ctx := context.Background()

	out := make([]domain.ResultRecord, 0, len(records))
	for _, r := range records {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		r.YachtClub = domain.NormalizeClub(r.YachtClub)
		_, err := pool.Exec(ctx,
			`INSERT INTO regatta_results
			    (id, regatta_name, regatta_date, category, position, sail_number, boat_name, skipper, yacht_club)
			 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9)`,
			r.ID, r.RegattaName, r.RegattaDate, r.Category, r.Position, r.SailNumber, r.BoatName, r.Skipper, r.YachtClub,
		)
		if err != nil {
			t.Fatalf("testhelper: seed record: %v", err)
		}
		out = append(out, r)
	}
	return out
}
