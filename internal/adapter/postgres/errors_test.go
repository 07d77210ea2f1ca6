package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, MapError(nil, "search"))
}

func TestMapError_Mapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrAlreadyExists},
		{"check violation", &pgconn.PgError{Code: "23514", ConstraintName: "regatta_results_skipper_check"}, domain.ErrValidation},
		{"not null violation", &pgconn.PgError{Code: "23502"}, domain.ErrValidation},
		{"connection failure", &pgconn.PgError{Code: "08006"}, domain.ErrStoreUnavailable},
		{"too many connections", &pgconn.PgError{Code: "53300"}, domain.ErrStoreUnavailable},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, domain.ErrStoreUnavailable},
		{"network error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, domain.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err, "op")
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_ContextPassThrough(t *testing.T) {
	t.Parallel()

	got := MapError(context.Canceled, "search")
	assert.ErrorIs(t, got, context.Canceled)
	assert.NotErrorIs(t, got, domain.ErrStoreUnavailable)
	assert.Equal(t, "search: context canceled", got.Error())
}

func TestMapError_UnknownPgErrorWrapped(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
	got := MapError(pgErr, "filter")

	var target *pgconn.PgError
	assert.True(t, errors.As(got, &target))
	assert.NotErrorIs(t, got, domain.ErrStoreUnavailable)
}
