package knowledge

import "fmt"

/*
A Statement is a single logical fact about the board: exactly `count` of
the cells in its set are mines. Statements shrink as individual cells
are resolved; a statement whose set has been emptied carries no
information and is dropped by the engine.
*/
type Statement struct {
	cells CellSet
	count int
}

// NewStatement takes ownership of cells.
func NewStatement(cells CellSet, count int) *Statement {
	return &Statement{cells: cells, count: count}
}

func (s *Statement) Len() int   { return len(s.cells) }
func (s *Statement) Count() int { return s.count }

// KnownMines returns the full cell set if every member must be a mine,
// otherwise nil. The returned set is still owned by the statement.
func (s *Statement) KnownMines() CellSet {
	if len(s.cells) > 0 && s.count == len(s.cells) {
		return s.cells
	}
	return nil
}

// KnownSafes returns the full cell set if no member can be a mine,
// otherwise nil.
func (s *Statement) KnownSafes() CellSet {
	if s.count == 0 {
		return s.cells
	}
	return nil
}

// MarkMine removes a cell known to be a mine, discounting it from the
// mine count. No-op if the cell is not a member.
func (s *Statement) MarkMine(c Cell) {
	if s.cells.Has(c) {
		s.cells.Remove(c)
		s.count--
	}
}

// MarkSafe removes a cell known to be safe. The mine count is
// unaffected. No-op if the cell is not a member.
func (s *Statement) MarkSafe(c Cell) {
	if s.cells.Has(c) {
		s.cells.Remove(c)
	}
}

func (s *Statement) Equal(other *Statement) bool {
	return s.count == other.count && s.cells.Equal(other.cells)
}

func (s *Statement) String() string {
	return fmt.Sprintf("%s = %d", s.cells, s.count)
}
