package regatta

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/regatta-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regatta-backend/internal/domain"
)

const insertSQL = `
INSERT INTO regatta_results (
    id, import_id, regatta_name, regatta_date, category, position,
    sail_number, boat_name, skipper, yacht_club, results, total_points, created_at
) VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10, NULLIF($11, ''), $12, $13)`

const clearSQL = `DELETE FROM regatta_results`

// InsertBatch stores records with one pgx.Batch round trip and returns the
// records as stored. Run it inside TxManager.RunInTx for all-or-nothing semantics.
// Missing IDs and creation times are filled in; empty clubs become Unknown.
func (r *Repo) InsertBatch(ctx context.Context, records []domain.ResultRecord) ([]domain.ResultRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	stored := make([]domain.ResultRecord, len(records))
	batch := &pgx.Batch{}

	for i, rec := range records {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.YachtClub = domain.NormalizeClub(rec.YachtClub)
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		var importID *uuid.UUID
		if rec.ImportID != uuid.Nil {
			id := rec.ImportID
			importID = &id
		}

		batch.Queue(insertSQL,
			rec.ID, importID, rec.RegattaName, rec.RegattaDate, rec.Category, rec.Position,
			rec.SailNumber, rec.BoatName, rec.Skipper, rec.YachtClub, rec.Results, rec.TotalPoints, rec.CreatedAt,
		)
		stored[i] = rec
	}

	br := r.q(ctx).SendBatch(ctx, batch)
	defer br.Close()

	for i := range records {
		if _, err := br.Exec(); err != nil {
			return nil, postgres.MapError(err, fmt.Sprintf("insert record %d", i))
		}
	}

	if err := br.Close(); err != nil {
		return nil, postgres.MapError(err, "close insert batch")
	}

	return stored, nil
}

// Clear deletes every record and returns how many were removed.
func (r *Repo) Clear(ctx context.Context) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, clearSQL)
	if err != nil {
		return 0, postgres.MapError(err, "clear records")
	}
	return tag.RowsAffected(), nil
}
