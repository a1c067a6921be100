package handlers

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/repository"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type NewGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseNewGameDTO(query url.Values) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, query)
	return dto, err
}

func (dto NewGameDTO) GameParams() mines.GameParams {
	return mines.GameParams{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}
}

// PositionDTO is an optional opening square; both coordinates must be
// given or both omitted.
type PositionDTO struct {
	X *int `schema:"x"`
	Y *int `schema:"y"`
}

func ParsePositionDTO(query url.Values) (PositionDTO, error) {
	var dto PositionDTO
	if err := decoder.Decode(&dto, query); err != nil {
		return dto, err
	}
	if (dto.X == nil) != (dto.Y == nil) {
		return dto, fmt.Errorf("x and y must be given together")
	}
	return dto, nil
}

type StatsDTO struct {
	Username *string `schema:"username"`
}

func ParseStatsDTO(query url.Values) (StatsDTO, error) {
	var dto StatsDTO
	err := decoder.Decode(&dto, query)
	return dto, err
}

type GameRunDTO struct {
	GameRunId int64              `json:"game_run_id"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	MineCount int                `json:"mine_count"`
	Dead      bool               `json:"dead"`
	Won       bool               `json:"won"`
	Moves     []agent.Move       `json:"moves"`
	Grid      string             `json:"grid"`
	StartedAt pgtype.Timestamptz `json:"started_at"`
	EndedAt   *time.Time         `json:"ended_at,omitempty"`
}

func NewGameRunDTO(run *repository.GameRun, a *agent.Agent) GameRunDTO {
	dto := GameRunDTO{
		GameRunId: run.GameRunId,
		Width:     run.Width,
		Height:    run.Height,
		MineCount: run.MineCount,
		Dead:      a.Dead(),
		Won:       a.Won(),
		Moves:     a.Moves(),
		Grid:      a.View().ToString(run.Width),
		StartedAt: run.StartedAt,
	}
	if run.EndedAt.Valid {
		endedAt := run.EndedAt.Time
		dto.EndedAt = &endedAt
	}
	return dto
}
