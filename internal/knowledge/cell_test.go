package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellSetOps(t *testing.T) {
	t.Parallel()

	a := NewCellSet(Cell{0, 0}, Cell{1, 0}, Cell{0, 1})
	b := NewCellSet(Cell{0, 0}, Cell{1, 0})

	assert.True(t, b.SubsetOf(a))
	assert.False(t, a.SubsetOf(b))
	assert.True(t, a.SubsetOf(a))

	diff := a.Difference(b)
	assert.True(t, diff.Equal(NewCellSet(Cell{0, 1})))
	assert.True(t, a.Difference(a).Equal(NewCellSet()))

	assert.True(t, a.Equal(NewCellSet(Cell{0, 1}, Cell{1, 0}, Cell{0, 0})))
	assert.False(t, a.Equal(b))
}

func TestCellSetMembership(t *testing.T) {
	t.Parallel()

	s := NewCellSet()
	c := Cell{X: 3, Y: 5}

	assert.False(t, s.Has(c))
	s.Add(c)
	assert.True(t, s.Has(c))
	s.Add(c)
	assert.Len(t, s, 1)
	s.Remove(c)
	assert.False(t, s.Has(c))
	assert.Empty(t, s)
}

func TestCellSetOrdering(t *testing.T) {
	t.Parallel()

	s := NewCellSet(Cell{2, 1}, Cell{0, 0}, Cell{1, 1}, Cell{1, 0})
	assert.Equal(t,
		[]Cell{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		s.Cells(),
	)
	assert.Equal(t, "{0:0 1:0 1:1 2:1}", s.String())
}
