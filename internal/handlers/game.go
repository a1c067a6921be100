package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/config"
	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/middleware"
	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/repository"
)

type GameHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
	}
}

// NewGame generates a board, seeds the agent with the requested
// opening square and persists the run.
func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dto, err := ParseNewGameDTO(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	pos, err := ParsePositionDTO(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	params := dto.GameParams()
	if err := params.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	startX, startY := g.rnd.IntN(params.Width), g.rnd.IntN(params.Height)
	if pos.X != nil {
		startX, startY = *pos.X, *pos.Y
	}

	board, err := mines.NewBoard(params, startX, startY, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	a, err := agent.New(g.logger, board, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create an agent", "error", err)
		return
	}
	if err := a.Open(knowledge.Cell{X: startX, Y: startY}); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to make the opening move", "error", err)
		return
	}

	state, err := a.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to encode agent state", "error", err)
		return
	}

	var playerId *int64
	if claims, loggedIn := middleware.PlayerClaims(r); loggedIn {
		playerId = &claims.PlayerId
	}

	run, err := g.repo.CreateGameRun(r.Context(), repository.CreateGameRunParams{
		PlayerId:  playerId,
		Width:     board.Width,
		Height:    board.Height,
		MineCount: board.MineCount,
		State:     state,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game run", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameRunDTO(run, a))
}

func (g GameHandler) fetchRun(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameRun, *agent.Agent, bool) {
	gameRunId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	run, err := g.repo.FetchGameRun(r.Context(), gameRunId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch game run from db", "error", err)
		return nil, nil, false
	}

	a, err := agent.Restore(g.logger, run.State, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_run.state", "error", err)
		return nil, nil, false
	}

	return run, a, true
}

func (g GameHandler) saveRun(
	r *http.Request, run *repository.GameRun, a *agent.Agent,
) (*repository.GameRun, error) {
	state, err := a.Bytes()
	if err != nil {
		return nil, err
	}

	result := a.Result()
	params := repository.UpdateGameRunParams{
		Dead:    &result.Dead,
		Won:     &result.Won,
		Moves:   &result.Moves,
		Guesses: &result.Guesses,
		State:   &state,
	}
	if a.Done() && !run.EndedAt.Valid {
		endedAt := time.Now().UTC()
		params.EndedAt = &endedAt
	}

	return g.repo.UpdateGameRun(r.Context(), run.GameRunId, params)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	run, a, ok := g.fetchRun(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameRunDTO(run, a))
}

// Step advances the agent by a single move.
func (g GameHandler) Step(w http.ResponseWriter, r *http.Request) {
	run, a, ok := g.fetchRun(w, r)
	if !ok {
		return
	}

	if _, err := a.Step(); err != nil {
		if errors.Is(err, agent.ErrGameOver) {
			w.WriteHeader(http.StatusConflict)
			sendJSONOrLog(w, g.logger, wrapError(err))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("agent failed to make a move", "error", err)
		return
	}

	run, err := g.saveRun(r, run, a)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update game run in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameRunDTO(run, a))
}

// Run plays the agent until the game ends.
func (g GameHandler) Run(w http.ResponseWriter, r *http.Request) {
	run, a, ok := g.fetchRun(w, r)
	if !ok {
		return
	}

	if a.Done() {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(agent.ErrGameOver))
		return
	}

	if _, err := a.Play(a.Board().CellCount()); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("agent failed to finish the game", "error", err)
		return
	}

	run, err := g.saveRun(r, run, a)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update game run in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameRunDTO(run, a))
}
