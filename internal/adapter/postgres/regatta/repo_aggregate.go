package regatta

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/regatta-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regatta-backend/internal/domain"
)

var sailorStatsColumns = []string{
	"skipper",
	"yacht_club",
	"COUNT(*) AS total_races",
	"COUNT(DISTINCT regatta_name) AS regattas_attended",
	"AVG(" + numericPositionSQL + ")::float8 AS avg_position",
	"MIN(" + numericPositionSQL + ") AS best_position",
	"COUNT(*) FILTER (WHERE (" + numericPositionSQL + ") <= 3) AS podium_finishes",
	"MAX(regatta_date) AS last_race_date",
}

type sailorStatsRow struct {
	Skipper          string     `db:"skipper"`
	YachtClub        string     `db:"yacht_club"`
	TotalRaces       int        `db:"total_races"`
	RegattasAttended int        `db:"regattas_attended"`
	AvgPosition      *float64   `db:"avg_position"`
	BestPosition     *int       `db:"best_position"`
	PodiumFinishes   int        `db:"podium_finishes"`
	LastRaceDate     *time.Time `db:"last_race_date"`
}

// SailorStats groups records by (skipper, club). When clubs is non-empty only
// clubs containing any of the given spellings are included.
// Rows are ordered by race count descending, then average position ascending.
func (r *Repo) SailorStats(ctx context.Context, clubs []string) ([]domain.SailorStats, error) {
	qb := psql.Select(sailorStatsColumns...).From(table)
	if patterns := containsPatterns(clubs); len(patterns) > 0 {
		qb = qb.Where(squirrel.Expr("yacht_club ILIKE ANY(?)", patterns))
	}
	qb = qb.GroupBy("skipper", "yacht_club").
		OrderBy("total_races DESC", "avg_position ASC NULLS LAST", "skipper", "yacht_club")

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("sailor stats: build query: %w", err)
	}

	var rows []sailorStatsRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "sailor stats")
	}

	out := make([]domain.SailorStats, len(rows))
	for i, row := range rows {
		out[i] = domain.SailorStats(row)
	}
	return out, nil
}

type regattaStatsRow struct {
	RegattaName      string     `db:"regatta_name"`
	RegattaDate      *time.Time `db:"regatta_date"`
	ParticipantCount int        `db:"participant_count"`
	TotalRecords     int        `db:"total_records"`
	ClubsRepresented int        `db:"clubs_represented"`
}

// RegattaStats groups records by (regatta name, date), oldest first.
func (r *Repo) RegattaStats(ctx context.Context, f domain.RegattaFilter) ([]domain.RegattaStats, error) {
	qb := psql.Select(
		"regatta_name",
		"regatta_date",
		"COUNT(DISTINCT skipper) AS participant_count",
		"COUNT(*) AS total_records",
		"COUNT(DISTINCT yacht_club) AS clubs_represented",
	).From(table)

	if f.Year > 0 {
		qb = qb.Where(squirrel.Expr("EXTRACT(YEAR FROM regatta_date) = ?", f.Year))
	}
	if f.After != nil {
		qb = qb.Where(squirrel.Gt{"regatta_date": *f.After})
	}
	if f.Until != nil {
		qb = qb.Where(squirrel.LtOrEq{"regatta_date": *f.Until})
	}

	qb = qb.GroupBy("regatta_name", "regatta_date").
		OrderBy("regatta_date ASC NULLS LAST", "regatta_name")

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("regatta stats: build query: %w", err)
	}

	var rows []regattaStatsRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "regatta stats")
	}

	out := make([]domain.RegattaStats, len(rows))
	for i, row := range rows {
		out[i] = domain.RegattaStats(row)
	}
	return out, nil
}

const clubStatsSQL = `
SELECT
    yacht_club,
    COUNT(DISTINCT skipper) AS sailor_count,
    COUNT(*) AS total_races,
    COUNT(DISTINCT regatta_name) AS regattas_attended
FROM regatta_results
WHERE yacht_club <> 'Unknown'
GROUP BY yacht_club
ORDER BY sailor_count DESC, total_races DESC, yacht_club`

type clubStatsRow struct {
	YachtClub        string `db:"yacht_club"`
	SailorCount      int    `db:"sailor_count"`
	TotalRaces       int    `db:"total_races"`
	RegattasAttended int    `db:"regattas_attended"`
}

// ClubStats groups records by club, excluding the Unknown placeholder,
// ordered by sailor count then race count.
func (r *Repo) ClubStats(ctx context.Context) ([]domain.ClubStats, error) {
	var rows []clubStatsRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, clubStatsSQL); err != nil {
		return nil, postgres.MapError(err, "club stats")
	}

	out := make([]domain.ClubStats, len(rows))
	for i, row := range rows {
		out[i] = domain.ClubStats(row)
	}
	return out, nil
}

// Categories returns the distinct non-empty categories raced by clubs containing any spelling.
func (r *Repo) Categories(ctx context.Context, clubs []string) ([]string, error) {
	patterns := containsPatterns(clubs)
	if len(patterns) == 0 {
		return nil, nil
	}

	query, args, err := psql.Select("DISTINCT category").
		From(table).
		Where(squirrel.Expr("yacht_club ILIKE ANY(?)", patterns)).
		Where(squirrel.Expr("category IS NOT NULL AND category <> ''")).
		OrderBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("categories: build query: %w", err)
	}

	var categories []string
	if err := pgxscan.Select(ctx, r.q(ctx), &categories, query, args...); err != nil {
		return nil, postgres.MapError(err, "categories")
	}
	return categories, nil
}

const summarySQL = `
SELECT
    COUNT(*) AS total_records,
    COUNT(DISTINCT skipper) AS total_sailors,
    COUNT(DISTINCT regatta_name) AS total_regattas,
    COUNT(DISTINCT yacht_club) AS total_clubs,
    MIN(regatta_date) AS earliest_date,
    MAX(regatta_date) AS latest_date,
    COUNT(*) FILTER (WHERE skipper IS NULL OR skipper = '') AS missing_skippers,
    COUNT(*) FILTER (WHERE boat_name IS NULL OR boat_name = '') AS missing_boat_names
FROM regatta_results`

type summaryRow struct {
	TotalRecords     int        `db:"total_records"`
	TotalSailors     int        `db:"total_sailors"`
	TotalRegattas    int        `db:"total_regattas"`
	TotalClubs       int        `db:"total_clubs"`
	EarliestDate     *time.Time `db:"earliest_date"`
	LatestDate       *time.Time `db:"latest_date"`
	MissingSkippers  int        `db:"missing_skippers"`
	MissingBoatNames int        `db:"missing_boat_names"`
}

// Summary describes the whole table.
func (r *Repo) Summary(ctx context.Context) (domain.DatabaseSummary, error) {
	var row summaryRow
	if err := pgxscan.Get(ctx, r.q(ctx), &row, summarySQL); err != nil {
		return domain.DatabaseSummary{}, postgres.MapError(err, "summary")
	}
	return domain.DatabaseSummary(row), nil
}
