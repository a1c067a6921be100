package knowledge

import (
	"fmt"
	"slices"
	"strings"
)

// Cell identifies a single board square by its coordinates.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.X, c.Y)
}

func cellcmp(a, b Cell) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}

// CellSet is a mutable set of cells. A set is owned by exactly one
// statement or engine; it is never shared.
type CellSet map[Cell]struct{}

func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

func (s CellSet) Add(c Cell)      { s[c] = struct{}{} }
func (s CellSet) Remove(c Cell)   { delete(s, c) }
func (s CellSet) Has(c Cell) bool { _, ok := s[c]; return ok }

func (s CellSet) SubsetOf(other CellSet) bool {
	if len(s) > len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

func (s CellSet) Difference(other CellSet) CellSet {
	diff := make(CellSet)
	for c := range s {
		if !other.Has(c) {
			diff.Add(c)
		}
	}
	return diff
}

func (s CellSet) Equal(other CellSet) bool {
	return len(s) == len(other) && s.SubsetOf(other)
}

// Cells returns the members ordered by row then column, so that log
// output and statement rendering are stable.
func (s CellSet) Cells() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, cellcmp)
	return cells
}

func (s CellSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range s.Cells() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	b.WriteByte('}')
	return b.String()
}
