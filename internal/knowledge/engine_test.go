package knowledge

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, width, height int) *Engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e, err := NewEngine(logger, width, height)
	require.NoError(t, err)
	return e
}

func requireInvariants(t *testing.T, e *Engine) {
	t.Helper()
	for _, s := range e.knowledge {
		require.GreaterOrEqual(t, s.Count(), 0, "statement %s", s)
		require.LessOrEqual(t, s.Count(), s.Len(), "statement %s", s)
		require.Positive(t, s.Len(), "vacuous statement %s survived cleanup", s)
	}
	for c := range e.safes {
		require.False(t, e.mines.Has(c), "cell %s both safe and mine", c)
	}
}

func TestNewEngineRejectsBadDimensions(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewEngine(logger, 0, 5)
	assert.Error(t, err)
	_, err = NewEngine(logger, 5, -1)
	assert.Error(t, err)
}

func TestAddInformationRejectsBadInput(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, 4, 4)

	assert.Error(t, e.AddInformation(Cell{4, 0}, 1), "out of bounds")
	assert.Error(t, e.AddInformation(Cell{-1, 2}, 1), "out of bounds")
	assert.Error(t, e.AddInformation(Cell{0, 0}, 4), "corner has 3 neighbours")
	assert.Error(t, e.AddInformation(Cell{1, 1}, -1), "negative count")
}

func TestMarkingIsIdempotent(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, 3, 3)

	require.NoError(t, e.MarkMine(Cell{0, 0}))
	require.NoError(t, e.MarkMine(Cell{0, 0}))
	assert.Equal(t, []Cell{{0, 0}}, e.KnownMines())

	require.NoError(t, e.MarkSafe(Cell{1, 1}))
	require.NoError(t, e.MarkSafe(Cell{1, 1}))
	assert.Equal(t, []Cell{{1, 1}}, e.KnownSafes())
	requireInvariants(t, e)
}

func TestContradictionIsFatal(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, 3, 3)

	require.NoError(t, e.MarkMine(Cell{0, 0}))
	err := e.MarkSafe(Cell{0, 0})
	var contradiction ContradictionError
	require.ErrorAs(t, err, &contradiction)
	assert.Equal(t, Cell{0, 0}, contradiction.Cell)
}

func TestSubsetResolution(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, 4, 4)

	// {a,b} = 1 and {a,b,c} = 2 must resolve c as a mine
	a, b, c := Cell{0, 0}, Cell{1, 0}, Cell{2, 0}
	e.knowledge = append(e.knowledge,
		NewStatement(NewCellSet(a, b), 1),
		NewStatement(NewCellSet(a, b, c), 2),
	)

	require.True(t, e.derive())
	require.NoError(t, e.propagate())

	assert.Equal(t, []Cell{c}, e.KnownMines())
	requireInvariants(t, e)
}

func TestDerivedDuplicatesAreDropped(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, 4, 4)

	a, b, c := Cell{0, 0}, Cell{1, 0}, Cell{2, 0}
	e.knowledge = append(e.knowledge,
		NewStatement(NewCellSet(a, b), 1),
		NewStatement(NewCellSet(a, b, c), 1),
		NewStatement(NewCellSet(c), 0),
	)

	// {a,b,c}=1 minus {a,b}=1 yields {c}=0, which is already known
	assert.False(t, e.derive())
	assert.Len(t, e.knowledge, 3)
}

func TestVacuousStatementsAreDiscarded(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, 3, 3)

	x := Cell{2, 2}
	e.knowledge = append(e.knowledge, NewStatement(NewCellSet(x), 0))

	require.NoError(t, e.propagate())

	assert.Empty(t, e.knowledge)
	assert.Equal(t, []Cell{x}, e.KnownSafes())
}

func TestZeroCountOpensAllNeighbours(t *testing.T) {
	t.Parallel()

	// 3x3 grid with no mines: revealing the centre with count 0 proves
	// every other cell safe in a single call
	e := newTestEngine(t, 3, 3)
	require.NoError(t, e.AddInformation(Cell{1, 1}, 0))

	assert.Len(t, e.KnownSafes(), 9)
	assert.Empty(t, e.KnownMines())
	assert.Empty(t, e.knowledge)
	requireInvariants(t, e)
}

func TestSingleRevealDoesNotOverreach(t *testing.T) {
	t.Parallel()

	// 2x2 grid, mine at 0:0, reveal 1:1 with count 1: the statement
	// {0:0 1:0 0:1} = 1 alone resolves nothing
	e := newTestEngine(t, 2, 2)
	require.NoError(t, e.AddInformation(Cell{1, 1}, 1))

	require.Len(t, e.knowledge, 1)
	s := e.knowledge[0]
	assert.True(t, s.cells.Equal(NewCellSet(Cell{0, 0}, Cell{1, 0}, Cell{0, 1})))
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, []Cell{{1, 1}}, e.KnownSafes())
	assert.Empty(t, e.KnownMines())
	requireInvariants(t, e)
}

func TestChainedDeduction(t *testing.T) {
	t.Parallel()

	/*
	 * 3x1 strip with a mine at 2:0. Revealing 0:0 with count 0 proves
	 * 1:0 safe; revealing 1:0 with count 1 then pins the mine at 2:0
	 * because 0:0 and 1:0 are already resolved.
	 */
	e := newTestEngine(t, 3, 1)
	require.NoError(t, e.AddInformation(Cell{0, 0}, 0))
	assert.Equal(t, []Cell{{0, 0}, {1, 0}}, e.KnownSafes())

	require.NoError(t, e.AddInformation(Cell{1, 0}, 1))
	assert.Equal(t, []Cell{{2, 0}}, e.KnownMines())
	requireInvariants(t, e)
}

func TestKnownMineDiscountsNewInformation(t *testing.T) {
	t.Parallel()

	// once 2:0 is a known mine, revealing 1:0 with count 1 carries no
	// new information and must not add a statement
	e := newTestEngine(t, 3, 1)
	require.NoError(t, e.MarkMine(Cell{2, 0}))
	require.NoError(t, e.AddInformation(Cell{1, 0}, 1))

	assert.Empty(t, e.knowledge)
	assert.Equal(t, []Cell{{0, 0}, {1, 0}}, e.KnownSafes())
	requireInvariants(t, e)
}

func TestEnvironmentLiesAreRejected(t *testing.T) {
	t.Parallel()

	// with both neighbours of 1:0 already proven safe, a non-zero
	// count cannot be satisfied
	e := newTestEngine(t, 3, 1)
	require.NoError(t, e.MarkSafe(Cell{0, 0}))
	require.NoError(t, e.MarkSafe(Cell{2, 0}))

	err := e.AddInformation(Cell{1, 0}, 1)
	var contradiction ContradictionError
	require.ErrorAs(t, err, &contradiction)
}

func TestSafeMove(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, 3, 3)

	_, ok := e.SafeMove()
	assert.False(t, ok, "fresh engine has no safe moves")

	require.NoError(t, e.AddInformation(Cell{1, 1}, 0))
	move, ok := e.SafeMove()
	require.True(t, ok)
	assert.NotEqual(t, Cell{1, 1}, move, "must not repeat a move")
	assert.Contains(t, e.KnownSafes(), move)
}

func TestRandomMove(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, 2, 1)
	r := rand.New(rand.NewPCG(1, 2))

	require.NoError(t, e.MarkMine(Cell{0, 0}))
	require.NoError(t, e.AddInformation(Cell{1, 0}, 1))

	// the only cell left unplayed is the known mine
	_, ok := e.RandomMove(r)
	assert.False(t, ok)
}

func TestRandomMoveAvoidsKnownMines(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, 2, 2)
	r := rand.New(rand.NewPCG(1, 2))

	require.NoError(t, e.MarkMine(Cell{0, 0}))
	for range 20 {
		move, ok := e.RandomMove(r)
		require.True(t, ok)
		assert.NotEqual(t, Cell{0, 0}, move)
	}
}
