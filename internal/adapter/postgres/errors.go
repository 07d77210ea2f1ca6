package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// MapError converts pgx/pgconn errors into domain errors, prefixed with op.
// Context errors pass through. Connection-level failures are marked with
// domain.ErrStoreUnavailable so callers can tell an outage from an empty result.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%s: %w", op, domain.ErrAlreadyExists)
		case pgErr.Code == "23502", pgErr.Code == "23514": // not_null_violation, check_violation
			return fmt.Errorf("%s: %w: %s", op, domain.ErrValidation, pgErr.ConstraintName)
		case strings.HasPrefix(pgErr.Code, "08"), // connection_exception
			strings.HasPrefix(pgErr.Code, "53"),          // insufficient_resources
			pgErr.Code == "57P01", pgErr.Code == "57P03": // admin_shutdown, cannot_connect_now
			return fmt.Errorf("%s: %w: %s", op, domain.ErrStoreUnavailable, pgErr.Message)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	if strings.Contains(err.Error(), "closed pool") {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
