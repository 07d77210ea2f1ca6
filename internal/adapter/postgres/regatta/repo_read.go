package regatta

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/regatta-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regatta-backend/internal/domain"
)

func (r *Repo) selectRecords(ctx context.Context, op string, qb squirrel.SelectBuilder) ([]domain.ResultRecord, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	var rows []recordRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, op)
	}
	return toDomain(rows), nil
}

// SearchCandidates returns every record whose skipper or boat name contains term,
// ignoring case. The result is a superset of all seven name-ranking conditions.
func (r *Repo) SearchCandidates(ctx context.Context, term string) ([]domain.ResultRecord, error) {
	pattern := containsPattern(term)
	qb := psql.Select(recordColumns...).
		From(table).
		Where(squirrel.Or{
			squirrel.ILike{"skipper": pattern},
			squirrel.ILike{"boat_name": pattern},
		}).
		OrderBy("regatta_date DESC NULLS LAST", "id")

	return r.selectRecords(ctx, "search candidates", qb)
}

// FindByField returns records whose field equals value (exact, case-insensitive)
// or contains it, ordered by position.
func (r *Repo) FindByField(ctx context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error) {
	if !field.IsValid() {
		return nil, domain.NewValidationError("field", fmt.Sprintf("unsupported field %q", field))
	}

	qb := psql.Select(recordColumns...).From(table)
	if exact {
		qb = qb.Where(squirrel.Expr("LOWER("+field.String()+") = LOWER(?)", value))
	} else {
		qb = qb.Where(squirrel.ILike{field.String(): containsPattern(value)})
	}
	qb = qb.OrderBy(positionOrderSQL, "regatta_date DESC NULLS LAST", "id")

	return r.selectRecords(ctx, "find by "+field.String(), qb)
}

// Filter applies the conjunction of the non-empty filters, newest first,
// then by position. Limit <= 0 means unbounded.
func (r *Repo) Filter(ctx context.Context, f domain.RecordFilter) ([]domain.ResultRecord, error) {
	qb := psql.Select(recordColumns...).From(table)

	if f.BoatName != "" {
		qb = qb.Where(squirrel.ILike{"boat_name": containsPattern(f.BoatName)})
	}
	if f.YachtClub != "" {
		qb = qb.Where(squirrel.ILike{"yacht_club": containsPattern(f.YachtClub)})
	}
	if f.RegattaName != "" {
		qb = qb.Where(squirrel.ILike{"regatta_name": containsPattern(f.RegattaName)})
	}
	if f.Year > 0 {
		qb = qb.Where(squirrel.Expr("EXTRACT(YEAR FROM regatta_date) = ?", f.Year))
	}
	if f.Location != "" {
		pattern := containsPattern(f.Location)
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"regatta_name": pattern},
			squirrel.ILike{"yacht_club": pattern},
		})
	}

	qb = qb.OrderBy("regatta_date DESC NULLS LAST", positionOrderSQL, "id")
	if f.Limit > 0 {
		qb = qb.Limit(uint64(f.Limit))
	}

	return r.selectRecords(ctx, "filter records", qb)
}

// Recent returns the newest records by regatta date, then insertion time.
// Limit <= 0 returns all records.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
	qb := psql.Select(recordColumns...).
		From(table).
		OrderBy("regatta_date DESC NULLS LAST", "created_at DESC", "id")
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	return r.selectRecords(ctx, "recent records", qb)
}

// SuspectBoatNames returns records whose boat name is two capitalized words
// different from the skipper. Callers apply the vocabulary exclusions.
func (r *Repo) SuspectBoatNames(ctx context.Context) ([]domain.ResultRecord, error) {
	qb := psql.Select(recordColumns...).
		From(table).
		Where(squirrel.Expr("boat_name ~ '^[A-Z][a-z]+ [A-Z][a-z]+$'")).
		Where(squirrel.Expr("boat_name <> skipper")).
		OrderBy("boat_name", "regatta_date DESC NULLS LAST", "id")

	return r.selectRecords(ctx, "suspect boat names", qb)
}
