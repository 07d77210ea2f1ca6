package ingest

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/regatta-backend/internal/adapter/memstore"
	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/pkg/metrics"
)

func sampleFile(t *testing.T) *os.File {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	path := filepath.Join(filepath.Dir(file), "..", "..", "importer", "regattacsv", "testdata", "results_sample.csv")
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

// failingStore stores nothing past the first insert.
type failingStore struct {
	*memstore.Store
	err error
}

func (s *failingStore) InsertBatch(ctx context.Context, records []domain.ResultRecord) ([]domain.ResultRecord, error) {
	if _, err := s.Store.InsertBatch(ctx, records[:1]); err != nil {
		return nil, err
	}
	return nil, s.err
}

func (s *failingStore) Clear(context.Context) (int64, error) {
	return 0, s.err
}

func TestUpload_StoresValidRecords(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	m := metrics.NewManager()
	svc := NewService(slog.Default(), store, store, m)

	res, err := svc.Upload(context.Background(), sampleFile(t))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.ImportID)
	assert.Equal(t, 4, res.Stored)
	assert.Equal(t, 6, res.Rows)
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, 5, res.Skipped[0].Line)
	assert.Equal(t, 7, res.Skipped[1].Line)

	assert.Equal(t, 4, store.Len())
	recent, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	for _, r := range recent {
		assert.Equal(t, res.ImportID, r.ImportID)
		assert.NotEmpty(t, r.YachtClub)
	}

	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP regatta_ingest_records_imported_total Records stored from uploaded CSV files
# TYPE regatta_ingest_records_imported_total counter
regatta_ingest_records_imported_total 4
# HELP regatta_ingest_rows_skipped_total CSV rows rejected for missing regatta name or skipper
# TYPE regatta_ingest_rows_skipped_total counter
regatta_ingest_rows_skipped_total 2
`), "regatta_ingest_records_imported_total", "regatta_ingest_rows_skipped_total"))
}

func TestUpload_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		csv  string
	}{
		{"empty file", ""},
		{"header only", "Regatta Name,Skipper\n"},
		{"no valid rows", "Regatta Name,Skipper\nSpring Series,\n,Alice Moore\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := memstore.New()
			svc := NewService(slog.Default(), store, store, nil)

			_, err := svc.Upload(context.Background(), strings.NewReader(tt.csv))
			require.ErrorIs(t, err, domain.ErrValidation)

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "csvFile", vErr.Errors[0].Field)
			assert.Zero(t, store.Len())
		})
	}
}

func TestUpload_AllOrNothing(t *testing.T) {
	t.Parallel()

	mem := memstore.New()
	store := &failingStore{Store: mem, err: domain.ErrStoreUnavailable}
	svc := NewService(slog.Default(), store, mem, nil)

	_, err := svc.Upload(context.Background(), sampleFile(t))
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Zero(t, mem.Len())
}

func TestClear(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	m := metrics.NewManager()
	svc := NewService(slog.Default(), store, store, m)

	_, err := svc.Upload(context.Background(), sampleFile(t))
	require.NoError(t, err)

	n, err := svc.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Zero(t, store.Len())

	n, err = svc.Clear(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClear_StoreFailure(t *testing.T) {
	t.Parallel()

	mem := memstore.New()
	svc := NewService(slog.Default(), &failingStore{Store: mem, err: domain.ErrStoreUnavailable}, mem, nil)

	_, err := svc.Clear(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
