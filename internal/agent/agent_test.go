package agent

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cell(x, y int) knowledge.Cell {
	return knowledge.Cell{X: x, Y: y}
}

func TestAgentWinsMinelessBoard(t *testing.T) {
	t.Parallel()

	board := &mines.Board{
		GameParams: mines.GameParams{Width: 3, Height: 3, MineCount: 0},
		Mines:      make([]bool, 9),
	}
	a, err := New(discard(), board, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	result, err := a.Play(board.CellCount())
	require.NoError(t, err)

	assert.True(t, result.Won)
	assert.False(t, result.Dead)
	// the opening guess with count 0 clears everything around it; at
	// most a few moves are ever guesses
	assert.Equal(t, 1, result.Guesses)
}

func TestAgentSolvesWithoutGuessingAfterOpening(t *testing.T) {
	t.Parallel()

	/*
	 * - - - -
	 * - - - -
	 * - - - -
	 * * - - *
	 *
	 * Any opening in the clear upper area cascades into enough
	 * information to pin both mines by pure deduction.
	 */
	board := &mines.Board{
		GameParams: mines.GameParams{Width: 4, Height: 4, MineCount: 2},
		Mines: []bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, false,
			true, false, false, true,
		},
	}
	a, err := New(discard(), board, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	// seed the run with a known-clear square instead of a guess
	_, err = a.open(cell(1, 1), StrategyGuess)
	require.NoError(t, err)

	for !a.Done() {
		move, err := a.Step()
		require.NoError(t, err)
		require.Equal(t, StrategyLogic, move.Strategy,
			"deducible board must not need guesses")
	}
	assert.True(t, a.Won())
}

func TestAgentDiesOnMine(t *testing.T) {
	t.Parallel()

	board := &mines.Board{
		GameParams: mines.GameParams{Width: 2, Height: 1, MineCount: 1},
		Mines:      []bool{true, false},
	}
	a, err := New(discard(), board, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	move, err := a.open(cell(0, 0), StrategyGuess)
	require.NoError(t, err)

	assert.True(t, move.Mine)
	assert.True(t, a.Dead())
	assert.Equal(t, mines.ExplodedMine, a.View()[0])

	_, err = a.Step()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestAgentFlagsKnownMines(t *testing.T) {
	t.Parallel()

	board := &mines.Board{
		GameParams: mines.GameParams{Width: 3, Height: 1, MineCount: 1},
		Mines:      []bool{false, false, true},
	}
	a, err := New(discard(), board, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	_, err = a.open(cell(0, 0), StrategyGuess)
	require.NoError(t, err)
	_, err = a.open(cell(1, 0), StrategyLogic)
	require.NoError(t, err)

	assert.True(t, a.Won())
	assert.Equal(t, mines.Flagged, a.View()[2])
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	board := &mines.Board{
		GameParams: mines.GameParams{Width: 4, Height: 4, MineCount: 2},
		Mines: []bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, false,
			true, false, false, true,
		},
	}
	a, err := New(discard(), board, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	_, err = a.open(cell(1, 1), StrategyGuess)
	require.NoError(t, err)
	_, err = a.Step()
	require.NoError(t, err)

	state, err := a.Bytes()
	require.NoError(t, err)

	restored, err := Restore(discard(), state, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)

	assert.Equal(t, a.Moves(), restored.Moves())
	assert.Equal(t, a.View(), restored.View())
	assert.Equal(t, a.Result(), restored.Result())
}

func TestRestoreRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Restore(discard(), []byte("not a snapshot"), rand.New(rand.NewPCG(1, 2)))
	assert.Error(t, err)
}
