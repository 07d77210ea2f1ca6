package resolver

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/regatta-backend/internal/adapter/memstore"
	"github.com/heartmarshall/regatta-backend/internal/config"
	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/internal/service/report"
)

//go:generate moq -out record_store_mock_test.go -pkg resolver . recordStore
//go:generate moq -out club_summarizer_mock_test.go -pkg resolver . clubSummarizer

func newTestResolver(store recordStore, clubs clubSummarizer) *Resolver {
	return &Resolver{store: store, clubs: clubs, log: slog.Default()}
}

func rec(regatta, boat, skipper, club string) domain.ResultRecord {
	return domain.ResultRecord{RegattaName: regatta, BoatName: boat, Skipper: skipper, YachtClub: club, Position: "1"}
}

func fixture() *memstore.Store {
	return memstore.New(
		rec("Spring Series", "Gull", "Alice Moore", "SYS Sarasota"),
		rec("Spring Series", "Osprey", "Ben Ortiz", "Sarasota Youth Sailing"),
		rec("Harbor Cup", "Seahawk", "Cara Diaz", "MBYC"),
	)
}

func newIntegrated(store *memstore.Store) *Resolver {
	return newTestResolver(store, report.NewService(slog.Default(), store, config.SearchConfig{DefaultAggregateLim: 10, QualityReportLimit: 100}))
}

func TestResolve_ClubMatch(t *testing.T) {
	t.Parallel()

	res, err := newIntegrated(fixture()).Resolve(context.Background(), domain.SailorSearch("SYS"))
	require.NoError(t, err)

	assert.Equal(t, domain.ClubSkippers("SYS"), res.Intent)
	assert.True(t, res.Resolved())
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Alice Moore", res.Records[0].Skipper)

	require.NotNil(t, res.ClubSummary)
	assert.True(t, res.ClubSummary.Found)
	assert.Equal(t, "SYS Sarasota", res.ClubSummary.ClubName)

	b, err := json.Marshal(res.Intent)
	require.NoError(t, err)
	assert.JSONEq(t, `{"queryType":"club_skippers","clubName":"SYS"}`, string(b))
}

func TestResolve_BoatMatch(t *testing.T) {
	t.Parallel()

	res, err := newIntegrated(fixture()).Resolve(context.Background(), domain.SailorSearch("osprey"))
	require.NoError(t, err)
	assert.Equal(t, domain.BoatSearch("osprey"), res.Intent)
	assert.Nil(t, res.ClubSummary)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Ben Ortiz", res.Records[0].Skipper)
}

func TestResolve_RegattaMatch(t *testing.T) {
	t.Parallel()

	res, err := newIntegrated(fixture()).Resolve(context.Background(), domain.SailorSearch("Harbor"))
	require.NoError(t, err)
	assert.Equal(t, domain.RegattaResults("Harbor"), res.Intent)
	assert.Len(t, res.Records, 1)
}

func TestResolve_NoMatch(t *testing.T) {
	t.Parallel()

	in := domain.SailorSearch("Nobody")
	res, err := newIntegrated(fixture()).Resolve(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, res.Intent)
	assert.False(t, res.Resolved())
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)
}

func TestResolve_CascadeOrder(t *testing.T) {
	t.Parallel()

	store := &recordStoreMock{
		FindByFieldFunc: func(ctx context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error) {
			if field == domain.FieldRegattaName {
				return []domain.ResultRecord{rec("Gull Cup", "", "x", "y")}, nil
			}
			return nil, nil
		},
	}

	res, err := newTestResolver(store, &clubSummarizerMock{}).Resolve(context.Background(), domain.SailorSearch(" Gull "))
	require.NoError(t, err)
	assert.Equal(t, domain.RegattaResults("Gull"), res.Intent)

	calls := store.FindByFieldCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, domain.FieldYachtClub, calls[0].Field)
	assert.Equal(t, domain.FieldBoatName, calls[1].Field)
	assert.Equal(t, domain.FieldRegattaName, calls[2].Field)
	for _, c := range calls {
		assert.Equal(t, "Gull", c.Value)
		assert.False(t, c.Exact)
	}
}

func TestResolve_ClubWinsOverBoat(t *testing.T) {
	t.Parallel()

	store := &recordStoreMock{
		FindByFieldFunc: func(ctx context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error) {
			return []domain.ResultRecord{rec("R", "Eagle", "x", "Eagle YC")}, nil
		},
	}
	clubs := &clubSummarizerMock{
		ClubSummaryFunc: func(ctx context.Context, club string) (domain.ClubSummary, error) {
			return domain.ClubSummary{Found: true, ClubName: "Eagle YC"}, nil
		},
	}

	res, err := newTestResolver(store, clubs).Resolve(context.Background(), domain.SailorSearch("Eagle"))
	require.NoError(t, err)
	assert.Equal(t, domain.IntentClubSkippers, res.Intent.Type)
	assert.Len(t, store.FindByFieldCalls(), 1)
	require.Len(t, clubs.ClubSummaryCalls(), 1)
	assert.Equal(t, "Eagle", clubs.ClubSummaryCalls()[0].Club)
}

func TestResolve_OtherIntentsUntouched(t *testing.T) {
	t.Parallel()

	store := &recordStoreMock{}
	for _, in := range []domain.Intent{
		domain.BoatSearch("Gull"),
		domain.Unknown("???"),
		domain.SailorSearch("   "),
	} {
		res, err := newTestResolver(store, &clubSummarizerMock{}).Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, in, res.Intent)
	}
	assert.Empty(t, store.FindByFieldCalls())
}

func TestResolve_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	store := &recordStoreMock{
		FindByFieldFunc: func(ctx context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error) {
			return nil, domain.ErrStoreUnavailable
		},
	}

	_, err := newTestResolver(store, &clubSummarizerMock{}).Resolve(context.Background(), domain.SailorSearch("Gull"))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestResolve_ClubSummaryFailurePropagates(t *testing.T) {
	t.Parallel()

	store := &recordStoreMock{
		FindByFieldFunc: func(ctx context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error) {
			return []domain.ResultRecord{rec("R", "", "x", "Gull YC")}, nil
		},
	}
	clubs := &clubSummarizerMock{
		ClubSummaryFunc: func(ctx context.Context, club string) (domain.ClubSummary, error) {
			return domain.ClubSummary{}, domain.ErrStoreUnavailable
		},
	}

	_, err := newTestResolver(store, clubs).Resolve(context.Background(), domain.SailorSearch("Gull"))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
