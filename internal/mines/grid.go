package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown      CellState = -2
	Flagged      CellState = -1
	ExplodedMine CellState = 65
	/*
	 * Each item in a `Grid' is one of the following values:
	 *
	 * 	- 0 to 8 mean the square is open and has a surrounding mine
	 * 	  count.
	 *
	 *  - -1 means the square is flagged as a known mine.
	 *
	 *  - -2 means the square is unknown.
	 *
	 * 	- 65 means the square had a mine revealed and this is the
	 * 	  one the agent hit.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flagged:
		return "*"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is the agent's view of the board, used for logging and DTOs.
type Grid []CellState

func NewGrid(p GameParams) Grid {
	g := make(Grid, p.CellCount())
	for i := range g {
		g[i] = Unknown
	}
	return g
}

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
