package agent

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

type Strategy string

const (
	// the move was proven safe
	StrategyLogic Strategy = "logic"
	// no safe move was known; picked uniformly at random
	StrategyGuess Strategy = "guess"
)

type Move struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Strategy Strategy `json:"strategy"`
	Mine     bool     `json:"mine"`
	Nearby   int      `json:"nearby"`
}

func (m Move) String() string {
	if m.Mine {
		return fmt.Sprintf("%d:%d (%s) *bang*", m.X, m.Y, m.Strategy)
	}
	return fmt.Sprintf("%d:%d (%s) = %d", m.X, m.Y, m.Strategy, m.Nearby)
}

var ErrGameOver = fmt.Errorf("game is over")

/*
Agent plays a single board to completion. It owns one knowledge engine
and one board; each move it opens a proven-safe square when the engine
knows one and falls back to a uniform guess otherwise, then feeds the
revealed mine count back into the engine.
*/
type Agent struct {
	logger *slog.Logger
	board  *mines.Board
	engine *knowledge.Engine
	rnd    *rand.Rand

	view   mines.Grid
	moves  []Move
	opened int
	dead   bool
	won    bool
}

func New(logger *slog.Logger, board *mines.Board, rnd *rand.Rand) (*Agent, error) {
	engine, err := knowledge.NewEngine(logger, board.Width, board.Height)
	if err != nil {
		return nil, err
	}
	return &Agent{
		logger: logger,
		board:  board,
		engine: engine,
		rnd:    rnd,
		view:   mines.NewGrid(board.GameParams),
	}, nil
}

func (a *Agent) Won() bool           { return a.won }
func (a *Agent) Dead() bool          { return a.dead }
func (a *Agent) Done() bool          { return a.won || a.dead }
func (a *Agent) Board() *mines.Board { return a.board }

func (a *Agent) Moves() []Move {
	moves := make([]Move, len(a.moves))
	copy(moves, a.moves)
	return moves
}

// View returns a copy of the agent's current picture of the board.
func (a *Agent) View() mines.Grid {
	view := make(mines.Grid, len(a.view))
	copy(view, a.view)
	return view
}

// Open reveals a caller-chosen square, counted as a guess. Used to
// seed a run with its opening move; everything after should come from
// Step.
func (a *Agent) Open(c knowledge.Cell) error {
	if a.Done() {
		return ErrGameOver
	}
	if !a.board.InBounds(c.X, c.Y) {
		return fmt.Errorf("square %s is out of bounds", c)
	}
	_, err := a.open(c, StrategyGuess)
	return err
}

// Step makes one move. Returns [ErrGameOver] once the game has been
// won or lost.
func (a *Agent) Step() (*Move, error) {
	if a.Done() {
		return nil, ErrGameOver
	}

	cell, ok := a.engine.SafeMove()
	strategy := StrategyLogic
	if !ok {
		cell, ok = a.engine.RandomMove(a.rnd)
		strategy = StrategyGuess
	}
	if !ok {
		// every unplayed square is a known mine yet the game is not
		// won; the board contradicts itself
		return nil, fmt.Errorf("no move left on an unfinished board")
	}

	move, err := a.open(cell, strategy)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("made a move",
		slog.String("move", move.String()),
		slog.Bool("won", a.won),
		slog.Bool("dead", a.dead),
	)
	return move, nil
}

// open reveals a square and records the outcome. Shared between Step
// and snapshot replay.
func (a *Agent) open(cell knowledge.Cell, strategy Strategy) (*Move, error) {
	i := cell.Y*a.board.Width + cell.X
	move := Move{X: cell.X, Y: cell.Y, Strategy: strategy}

	if a.board.MineAt(cell.X, cell.Y) {
		a.dead = true
		a.view[i] = mines.ExplodedMine
		move.Mine = true
		a.moves = append(a.moves, move)
		return &move, nil
	}

	nearby := a.board.NearbyMines(cell.X, cell.Y)
	if err := a.engine.AddInformation(cell, nearby); err != nil {
		return nil, err
	}
	a.view[i] = mines.CellState(nearby)
	a.opened++
	move.Nearby = nearby
	a.moves = append(a.moves, move)

	// flag every square the engine has pinned as a mine
	for _, c := range a.engine.KnownMines() {
		j := c.Y*a.board.Width + c.X
		if a.view[j] == mines.Unknown {
			a.view[j] = mines.Flagged
		}
	}

	if a.opened == a.board.SafeCellCount() {
		a.won = true
	}
	return &move, nil
}

type Result struct {
	Won     bool `json:"won"`
	Dead    bool `json:"dead"`
	Moves   int  `json:"moves"`
	Guesses int  `json:"guesses"`
}

// Play steps the agent until the game ends. maxMoves guards against a
// board larger than the caller intended; pass the cell count for no
// practical limit.
func (a *Agent) Play(maxMoves int) (Result, error) {
	for !a.Done() && len(a.moves) < maxMoves {
		if _, err := a.Step(); err != nil {
			return Result{}, err
		}
	}
	return a.Result(), nil
}

func (a *Agent) Result() Result {
	guesses := 0
	for _, m := range a.moves {
		if m.Strategy == StrategyGuess {
			guesses++
		}
	}
	return Result{
		Won:     a.won,
		Dead:    a.dead,
		Moves:   len(a.moves),
		Guesses: guesses,
	}
}
