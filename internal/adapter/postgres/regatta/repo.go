// Package regatta implements the regatta result store using PostgreSQL.
// Filters and aggregates are built with squirrel; fixed queries are raw SQL.
package regatta

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/regatta-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regatta-backend/internal/domain"
)

const table = "regatta_results"

// numericPositionSQL yields the integer position, or NULL for finish codes and blanks.
const numericPositionSQL = `CASE WHEN position ~ '^[0-9]{1,6}$' THEN CAST(position AS INTEGER) END`

// positionOrderSQL orders numeric positions first, then codes bytewise, then blanks.
const positionOrderSQL = `COALESCE(` + numericPositionSQL + `, 999999) ASC, NULLIF(position, '') COLLATE "C" ASC NULLS LAST`

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var recordColumns = []string{
	"id",
	"import_id",
	"regatta_name",
	"regatta_date",
	"COALESCE(category, '') AS category",
	"COALESCE(position, '') AS position",
	"COALESCE(sail_number, '') AS sail_number",
	"COALESCE(boat_name, '') AS boat_name",
	"skipper",
	"yacht_club",
	"COALESCE(results, '') AS results",
	"total_points::float8 AS total_points",
	"created_at",
}

// Repo provides regatta result persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a repository over a pool, a transaction or a mock.
// Inside TxManager.RunInTx the transaction from the context takes precedence.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

type recordRow struct {
	ID          uuid.UUID  `db:"id"`
	ImportID    *uuid.UUID `db:"import_id"`
	RegattaName string     `db:"regatta_name"`
	RegattaDate *time.Time `db:"regatta_date"`
	Category    string     `db:"category"`
	Position    string     `db:"position"`
	SailNumber  string     `db:"sail_number"`
	BoatName    string     `db:"boat_name"`
	Skipper     string     `db:"skipper"`
	YachtClub   string     `db:"yacht_club"`
	Results     string     `db:"results"`
	TotalPoints *float64   `db:"total_points"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (row recordRow) toDomain() domain.ResultRecord {
	rec := domain.ResultRecord{
		ID:          row.ID,
		RegattaName: row.RegattaName,
		RegattaDate: row.RegattaDate,
		Category:    row.Category,
		Position:    row.Position,
		SailNumber:  row.SailNumber,
		BoatName:    row.BoatName,
		Skipper:     row.Skipper,
		YachtClub:   row.YachtClub,
		Results:     row.Results,
		TotalPoints: row.TotalPoints,
		CreatedAt:   row.CreatedAt,
	}
	if row.ImportID != nil {
		rec.ImportID = *row.ImportID
	}
	return rec
}

func toDomain(rows []recordRow) []domain.ResultRecord {
	out := make([]domain.ResultRecord, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching value as a literal substring.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

func containsPatterns(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, containsPattern(v))
		}
	}
	return out
}
