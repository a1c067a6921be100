package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatementKnownMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cells []Cell
		count int
		mines bool
		safes bool
	}{
		{
			name:  "unresolved",
			cells: []Cell{{0, 0}, {1, 0}, {2, 0}},
			count: 1,
		},
		{
			name:  "all mines",
			cells: []Cell{{0, 0}, {1, 0}},
			count: 2,
			mines: true,
		},
		{
			name:  "all safe",
			cells: []Cell{{0, 0}, {1, 0}},
			count: 0,
			safes: true,
		},
		{
			name:  "empty",
			cells: nil,
			count: 0,
			safes: true, // an empty set of safes, not nil knowledge
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			s := NewStatement(NewCellSet(test.cells...), test.count)
			if test.mines {
				assert.Len(t, s.KnownMines(), len(test.cells))
			} else {
				assert.Nil(t, s.KnownMines())
			}
			if test.safes {
				assert.NotNil(t, s.KnownSafes())
				assert.Len(t, s.KnownSafes(), len(test.cells))
			} else {
				assert.Nil(t, s.KnownSafes())
			}
		})
	}
}

func TestStatementMarkMine(t *testing.T) {
	t.Parallel()

	s := NewStatement(NewCellSet(Cell{0, 0}, Cell{1, 0}, Cell{2, 0}), 2)

	s.MarkMine(Cell{0, 0})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Count())

	// unknown cell is a no-op
	s.MarkMine(Cell{5, 5})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Count())
}

func TestStatementMarkSafe(t *testing.T) {
	t.Parallel()

	s := NewStatement(NewCellSet(Cell{0, 0}, Cell{1, 0}, Cell{2, 0}), 1)

	s.MarkSafe(Cell{1, 0})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Count())

	s.MarkSafe(Cell{5, 5})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Count())
}

func TestStatementEqual(t *testing.T) {
	t.Parallel()

	a := NewStatement(NewCellSet(Cell{0, 0}, Cell{1, 0}), 1)
	b := NewStatement(NewCellSet(Cell{1, 0}, Cell{0, 0}), 1)
	c := NewStatement(NewCellSet(Cell{1, 0}, Cell{0, 0}), 2)
	d := NewStatement(NewCellSet(Cell{1, 0}), 1)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestStatementString(t *testing.T) {
	t.Parallel()

	s := NewStatement(NewCellSet(Cell{1, 0}, Cell{0, 1}), 1)
	assert.Equal(t, "{1:0 0:1} = 1", s.String())
}
