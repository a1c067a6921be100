package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type BoardStats struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	MineCount  int      `json:"mine_count"`
	Games      int64    `json:"games"`
	Wins       int64    `json:"wins"`
	AvgMoves   *float64 `json:"avg_moves"`
	AvgGuesses *float64 `json:"avg_guesses"`
}

type StatsFilter struct {
	Username *string
}

func (f StatsFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetBoardStats(
	ctx context.Context, filter StatsFilter,
) ([]BoardStats, error) {
	query := `
	SELECT
		width,
		height,
		mine_count,
		count(*) games,
		count(*) FILTER (WHERE won) wins,
		avg(moves) FILTER (WHERE ended_at IS NOT NULL) avg_moves,
		avg(guesses) FILTER (WHERE ended_at IS NOT NULL) avg_guesses
	FROM game_run
		LEFT OUTER JOIN player USING (player_id)
	WHERE ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += `
	GROUP BY width, height, mine_count
	ORDER BY width, height, mine_count;`

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[BoardStats])
}
