package knowledge

import "fmt"

// ContradictionError reports that upstream information has proven the
// same cell to be both safe and a mine. This is always a bug in the
// environment feeding the engine, never a recoverable condition.
type ContradictionError struct {
	Cell Cell
}

// [ContradictionError] implements [error]
func (e ContradictionError) Error() string {
	return fmt.Sprintf("cell %s is marked both safe and a mine", e.Cell)
}
