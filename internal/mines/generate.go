package mines

import (
	"fmt"
	"math/rand/v2"
)

/*
NewBoard places mines at random, none of which is at the starting
square or within one square of it, so the agent's first move is always
survivable.
*/
func NewBoard(p GameParams, startX, startY int, r *rand.Rand) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !p.InBounds(startX, startY) {
		return nil, fmt.Errorf(
			"starting square %d:%d is out of bounds", startX, startY,
		)
	}

	grid := make([]bool, p.CellCount())

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, 0, p.CellCount())
	for y := range p.Height {
		for x := range p.Width {
			if absDiff(startY, y) > 1 || absDiff(startX, x) > 1 {
				candidates = append(candidates, y*p.Width+x)
			}
		}
	}
	if p.MineCount > len(candidates) {
		return nil, fmt.Errorf(
			"%d mines do not fit a %dx%d board with a clear start at %d:%d",
			p.MineCount, p.Width, p.Height, startX, startY,
		)
	}

	/*
	 * Now pick n off the list at random.
	 */
	k := len(candidates)
	for range p.MineCount {
		i := r.IntN(k)
		grid[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	return &Board{GameParams: p, Mines: grid}, nil
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
