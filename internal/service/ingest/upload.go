package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/internal/importer/regattacsv"
)

// UploadResult summarises one stored file.
type UploadResult struct {
	ImportID uuid.UUID               `json:"importId"`
	Stored   int                     `json:"recordsStored"`
	Rows     int                     `json:"rowsRead"`
	Skipped  []regattacsv.SkippedRow `json:"skipped"`
}

// Upload parses a CSV and stores all of its valid records in one transaction.
// Either every valid record is stored or none is. A file without valid records
// is a validation error.
func (s *Service) Upload(ctx context.Context, r io.Reader) (UploadResult, error) {
	parsed, err := regattacsv.Parse(r)
	if err != nil {
		if errors.Is(err, regattacsv.ErrNoHeader) {
			return UploadResult{}, domain.NewValidationError("csvFile", "file is empty")
		}
		return UploadResult{}, domain.NewValidationError("csvFile", err.Error())
	}
	if len(parsed.Records) == 0 {
		return UploadResult{}, domain.NewValidationError("csvFile", "no valid records found")
	}

	importID := uuid.New()
	for i := range parsed.Records {
		parsed.Records[i].ImportID = importID
	}

	var stored []domain.ResultRecord
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		stored, err = s.store.InsertBatch(ctx, parsed.Records)
		return err
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("store records: %w", err)
	}

	s.metrics.RecordsImported(len(stored), len(parsed.Skipped))
	s.log.InfoContext(ctx, "records imported",
		slog.String("import_id", importID.String()),
		slog.Int("stored", len(stored)),
		slog.Int("skipped", len(parsed.Skipped)),
	)

	skipped := parsed.Skipped
	if skipped == nil {
		skipped = []regattacsv.SkippedRow{}
	}
	return UploadResult{
		ImportID: importID,
		Stored:   len(stored),
		Rows:     parsed.Rows,
		Skipped:  skipped,
	}, nil
}

// Clear deletes every record and returns the number removed.
func (s *Service) Clear(ctx context.Context) (int64, error) {
	n, err := s.store.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}

	s.metrics.RecordsCleared(n)
	s.log.WarnContext(ctx, "records cleared", slog.Int64("deleted", n))
	return n, nil
}
