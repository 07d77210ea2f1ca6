package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/regatta-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regatta-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/regatta-backend/internal/domain"
)

func TestRunInTx_CommitsOnSuccess(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM regatta_results").WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectCommit()

	tm := postgres.NewTxManager(mock)
	err = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := postgres.QuerierFromCtx(ctx, mock).Exec(ctx, "DELETE FROM regatta_results")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("insert failed")
	tm := postgres.NewTxManager(mock)
	err = tm.RunInTx(context.Background(), func(context.Context) error { return sentinel })

	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollsBackOnPanic(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tm := postgres.NewTxManager(mock)
	assert.PanicsWithValue(t, "boom", func() {
		_ = tm.RunInTx(context.Background(), func(context.Context) error { panic("boom") })
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_BeginFailureIsStoreUnavailable(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(&net503{})

	tm := postgres.NewTxManager(mock)
	err = tm.RunInTx(context.Background(), func(context.Context) error { return nil })

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestQuerierFromCtx_FallbackOutsideTx(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Equal(t, postgres.Querier(mock), postgres.QuerierFromCtx(context.Background(), mock))
}

// net503 is a net.Error that reports a dial failure.
type net503 struct{}

func (*net503) Error() string   { return "dial tcp: connection refused" }
func (*net503) Timeout() bool   { return false }
func (*net503) Temporary() bool { return false }

func recordExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM regatta_results WHERE id = $1)`, id,
	).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestRunInTx_Integration_RollbackHidesRows(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()
	sentinel := errors.New("abort upload")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx,
			`INSERT INTO regatta_results (id, regatta_name, skipper) VALUES ($1, $2, $3)`,
			id, "Rollback Regatta "+testhelper.UniqueSuffix(), "Jane Doe",
		); err != nil {
			return err
		}
		var visible bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM regatta_results WHERE id = $1)`, id).Scan(&visible); err != nil {
			return err
		}
		assert.True(t, visible, "row should be visible inside the transaction")
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.False(t, recordExists(t, pool, id))
}

func TestRunInTx_Integration_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx,
			`INSERT INTO regatta_results (id, regatta_name, skipper) VALUES ($1, $2, $3)`,
			id, "Commit Regatta "+testhelper.UniqueSuffix(), "John Smith",
		)
		return err
	})

	require.NoError(t, err)
	assert.True(t, recordExists(t, pool, id))
}
