package knowledge

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

/* ----------------------------------------------------------------------
 * Knowledge engine: accumulates statements about a single board and
 * derives which cells are provably mines and which are provably safe.
 * Purely deductive; it never guesses on its own.
 */

// fact is a single resolved cell waiting to be pushed into every live
// statement.
type fact struct {
	cell Cell
	mine bool
}

type Engine struct {
	logger        *slog.Logger
	width, height int

	movesMade CellSet
	safes     CellSet
	mines     CellSet

	knowledge []*Statement

	// cells proven safe or mine but not yet propagated into the
	// statement list
	pending []fact
}

func NewEngine(logger *slog.Logger, width, height int) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", width, height)
	}
	return &Engine{
		logger:    logger,
		width:     width,
		height:    height,
		movesMade: NewCellSet(),
		safes:     NewCellSet(),
		mines:     NewCellSet(),
	}, nil
}

func (e *Engine) inBounds(c Cell) bool {
	return 0 <= c.X && c.X < e.width && 0 <= c.Y && c.Y < e.height
}

func (e *Engine) neighbors(c Cell) (nbs []Cell) {
	for dy := -1; dy <= +1; dy++ {
		for dx := -1; dx <= +1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nb := Cell{X: c.X + dx, Y: c.Y + dy}
			if e.inBounds(nb) {
				nbs = append(nbs, nb)
			}
		}
	}
	return
}

// push records a resolved cell and queues it for propagation. Facts
// already recorded are dropped, which makes marking idempotent.
func (e *Engine) push(f fact) error {
	if f.mine {
		if e.safes.Has(f.cell) {
			return ContradictionError{f.cell}
		}
		if e.mines.Has(f.cell) {
			return nil
		}
		e.mines.Add(f.cell)
	} else {
		if e.mines.Has(f.cell) {
			return ContradictionError{f.cell}
		}
		if e.safes.Has(f.cell) {
			return nil
		}
		e.safes.Add(f.cell)
	}
	e.pending = append(e.pending, f)
	return nil
}

// MarkMine records that a cell is certainly a mine and simplifies all
// current knowledge accordingly.
func (e *Engine) MarkMine(c Cell) error {
	if err := e.push(fact{c, true}); err != nil {
		return err
	}
	return e.propagate()
}

// MarkSafe records that a cell is certainly not a mine and simplifies
// all current knowledge accordingly.
func (e *Engine) MarkSafe(c Cell) error {
	if err := e.push(fact{c, false}); err != nil {
		return err
	}
	return e.propagate()
}

/*
propagate runs the cleanup fixed point: sweep the statement list for
anything already resolved, then drain the pending fact queue into every
live statement. Applying a fact can fully resolve further statements,
whose cells are then appended to the same queue; the loop runs until
the queue is empty. Every application strictly shrinks some statement
or is a no-op, so this terminates on any finite grid.
*/
func (e *Engine) propagate() error {
	if err := e.extract(); err != nil {
		return err
	}
	for len(e.pending) > 0 {
		f := e.pending[0]
		e.pending = e.pending[1:]
		for _, s := range e.knowledge {
			if f.mine {
				s.MarkMine(f.cell)
			} else {
				s.MarkSafe(f.cell)
			}
		}
		if err := e.extract(); err != nil {
			return err
		}
	}
	return nil
}

// extract pulls newly resolved facts out of any statement whose mine
// count has hit zero or its own cardinality, and discards statements
// whittled down to nothing.
func (e *Engine) extract() error {
	kept := e.knowledge[:0]
	for _, s := range e.knowledge {
		if s.Len() == 0 {
			continue /* vacuous */
		}
		for c := range s.KnownMines() {
			if err := e.push(fact{c, true}); err != nil {
				return err
			}
		}
		for c := range s.KnownSafes() {
			if err := e.push(fact{c, false}); err != nil {
				return err
			}
		}
		kept = append(kept, s)
	}
	e.knowledge = kept
	return nil
}

/*
derive runs one full pass of the subset resolution rule over every
unordered pair of statements: whenever A's cells are contained in B's,
the cells of B outside A must hold exactly B.count - A.count mines.
Candidates are collected and appended together at the end of the pass
so the result does not depend on pair visitation order. Reports
whether anything new was learned.
*/
func (e *Engine) derive() bool {
	var derived []*Statement
	for i := 0; i < len(e.knowledge)-1; i++ {
		for j := i + 1; j < len(e.knowledge); j++ {
			a, b := e.knowledge[i], e.knowledge[j]

			var candidate *Statement
			if a.cells.SubsetOf(b.cells) {
				candidate = NewStatement(
					b.cells.Difference(a.cells), b.count-a.count,
				)
			} else if b.cells.SubsetOf(a.cells) {
				candidate = NewStatement(
					a.cells.Difference(b.cells), a.count-b.count,
				)
			}
			if candidate == nil || candidate.Len() == 0 {
				continue
			}

			known := false
			for _, s := range e.knowledge {
				if s.Equal(candidate) {
					known = true
					break
				}
			}
			for _, s := range derived {
				if s.Equal(candidate) {
					known = true
					break
				}
			}
			if !known {
				e.logger.Debug("derived statement",
					slog.String("statement", candidate.String()))
				derived = append(derived, candidate)
			}
		}
	}
	e.knowledge = append(e.knowledge, derived...)
	return len(derived) > 0
}

/*
AddInformation is the single state-advancing entry point. The
environment reports that an opened cell carries a given count of
adjacent mines; the engine records the move, builds a statement over
the cell's still-unresolved neighbours and runs deduction to a fixed
point.
*/
func (e *Engine) AddInformation(cell Cell, count int) error {
	if !e.inBounds(cell) {
		return fmt.Errorf("cell %s is out of bounds for a %dx%d grid",
			cell, e.width, e.height)
	}

	nbs := e.neighbors(cell)
	if count < 0 || count > len(nbs) {
		return fmt.Errorf("impossible mine count %d for cell %s", count, cell)
	}

	e.movesMade.Add(cell)
	if err := e.push(fact{cell, false}); err != nil {
		return err
	}

	/*
	 * Build the statement over neighbours whose status is still open.
	 * Neighbours already known to be mines are accounted for by
	 * discounting the reported count; known safes are simply skipped.
	 */
	cells := NewCellSet()
	for _, nb := range nbs {
		switch {
		case e.mines.Has(nb):
			count--
		case e.safes.Has(nb):
		default:
			cells.Add(nb)
		}
	}
	if count < 0 || count > len(cells) {
		return ContradictionError{cell}
	}
	if len(cells) > 0 {
		e.knowledge = append(e.knowledge, NewStatement(cells, count))
	}

	/*
	 * Deduce. Each successful derivation pass can resolve more cells,
	 * and each resolved cell can enable further derivations, so the
	 * two steps alternate until a derivation pass comes up empty.
	 */
	if err := e.propagate(); err != nil {
		return err
	}
	for e.derive() {
		if err := e.propagate(); err != nil {
			return err
		}
	}
	return nil
}

// SafeMove returns any cell proven safe that has not been played yet.
func (e *Engine) SafeMove() (Cell, bool) {
	for c := range e.safes {
		if !e.movesMade.Has(c) {
			return c, true
		}
	}
	return Cell{}, false
}

// RandomMove returns a uniformly random cell that has neither been
// played nor proven to be a mine.
func (e *Engine) RandomMove(r *rand.Rand) (Cell, bool) {
	candidates := make([]Cell, 0, e.width*e.height)
	for y := range e.height {
		for x := range e.width {
			c := Cell{X: x, Y: y}
			if !e.movesMade.Has(c) && !e.mines.Has(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return Cell{}, false
	}
	return candidates[r.IntN(len(candidates))], true
}

// KnownMines returns every cell proven to be a mine, ordered by row
// then column.
func (e *Engine) KnownMines() []Cell { return e.mines.Cells() }

// KnownSafes returns every cell proven safe, ordered by row then
// column.
func (e *Engine) KnownSafes() []Cell { return e.safes.Cells() }
