package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type GameRun struct {
	GameRunId int64
	PlayerId  *int64
	Width     int
	Height    int
	MineCount int
	Dead      bool
	Won       bool
	Moves     int
	Guesses   int
	State     []byte
	StartedAt pgtype.Timestamptz
	EndedAt   pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type CreateGameRunParams struct {
	PlayerId  *int64
	Width     int
	Height    int
	MineCount int
	State     []byte
}

func (q Queries) CreateGameRun(
	ctx context.Context, params CreateGameRunParams,
) (*GameRun, error) {
	// a nil player id inserts NULL, attributing the run to nobody
	args := pgx.NamedArgs{
		"player_id":  params.PlayerId,
		"width":      params.Width,
		"height":     params.Height,
		"mine_count": params.MineCount,
		"state":      params.State,
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_run (
			player_id, width, height, mine_count, state
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameRun])
}

func (q Queries) FetchGameRun(ctx context.Context, gameRunId int64) (*GameRun, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM game_run WHERE game_run_id = $1", gameRunId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameRun])
}

type UpdateGameRunParams struct {
	Dead    *bool
	Won     *bool
	Moves   *int
	Guesses *int
	EndedAt *time.Time
	State   *[]byte
}

func (p UpdateGameRunParams) SetClause() (string, map[string]any) {
	parts := make([]string, 0)
	args := make(map[string]any)

	if p.Dead != nil {
		parts = append(parts, "dead = @dead")
		args["dead"] = *p.Dead
	}
	if p.Won != nil {
		parts = append(parts, "won = @won")
		args["won"] = *p.Won
	}
	if p.Moves != nil {
		parts = append(parts, "moves = @moves")
		args["moves"] = *p.Moves
	}
	if p.Guesses != nil {
		parts = append(parts, "guesses = @guesses")
		args["guesses"] = *p.Guesses
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q Queries) UpdateGameRun(
	ctx context.Context, gameRunId int64, params UpdateGameRunParams,
) (*GameRun, error) {
	setClause, args := params.SetClause()
	args["game_run_id"] = gameRunId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_run SET "+setClause+
			" WHERE game_run_id = @game_run_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameRun])
}
