package mines

import (
	"fmt"
	"strings"
)

/*
Board holds the real mine locations. It is a passive data source: it
answers where mines are and how many surround a square, and nothing
else. Fields are exported for gob serialization of agent snapshots.
*/
type Board struct {
	GameParams
	Mines []bool
}

func (b *Board) MineAt(x, y int) bool {
	return b.Mines[y*b.Width+x]
}

// NearbyMines counts the mines within one row and column of a square,
// the square itself excluded.
func (b *Board) NearbyMines(x, y int) (count int) {
	for dy := -1; dy <= +1; dy++ {
		for dx := -1; dx <= +1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.InBounds(x+dx, y+dy) && b.MineAt(x+dx, y+dy) {
				count++
			}
		}
	}
	return
}

func (b *Board) SafeCellCount() int {
	return b.CellCount() - b.MineCount
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.Height {
		for x := range b.Width {
			var ch string
			if b.MineAt(x, y) {
				ch = "* "
			} else {
				ch = "- "
			}
			fmt.Fprint(&sb, ch)
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
