package agent

import (
	"bytes"
	"encoding/gob"
	"log/slog"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

// Snapshot is the persisted form of an agent game: the board and the
// move log. Engine state is not stored; Restore rebuilds it by
// replaying the moves.
type Snapshot struct {
	Board *mines.Board
	Moves []Move
}

func (a *Agent) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(Snapshot{
		Board: a.board,
		Moves: a.moves,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Restore(
	logger *slog.Logger, state []byte, rnd *rand.Rand,
) (*Agent, error) {
	var snap Snapshot
	err := gob.NewDecoder(bytes.NewBuffer(state)).Decode(&snap)
	if err != nil {
		return nil, err
	}

	a, err := New(logger, snap.Board, rnd)
	if err != nil {
		return nil, err
	}
	for _, m := range snap.Moves {
		if _, err := a.replay(m); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) replay(m Move) (*Move, error) {
	if a.Done() {
		return nil, ErrGameOver
	}
	return a.open(knowledge.Cell{X: m.X, Y: m.Y}, m.Strategy)
}
