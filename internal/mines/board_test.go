package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{name: "9x9(10)", params: GameParams{Width: 9, Height: 9, MineCount: 10}},
		{name: "9x9(35)", params: GameParams{Width: 9, Height: 9, MineCount: 35}},
		{name: "16x16(40)", params: GameParams{Width: 16, Height: 16, MineCount: 40}},
		{name: "30x16(99)", params: GameParams{Width: 30, Height: 16, MineCount: 99}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for sx := range test.params.Width {
				for sy := range test.params.Height {
					board, err := NewBoard(test.params, sx, sy, r)
					require.NoError(t, err)

					placed := 0
					for _, mine := range board.Mines {
						if mine {
							placed++
						}
					}
					assert.Equal(t, test.params.MineCount, placed)

					// starting square and its neighbours stay clear
					for dy := -1; dy <= +1; dy++ {
						for dx := -1; dx <= +1; dx++ {
							if board.InBounds(sx+dx, sy+dy) {
								assert.False(t, board.MineAt(sx+dx, sy+dy))
							}
						}
					}
				}
			}
		})
	}
}

func TestNewBoardRejectsBadInput(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(1, 2))

	_, err := NewBoard(GameParams{Width: 0, Height: 9, MineCount: 1}, 0, 0, r)
	assert.Error(t, err)

	_, err = NewBoard(GameParams{Width: 9, Height: 9, MineCount: 81}, 0, 0, r)
	assert.Error(t, err)

	_, err = NewBoard(GameParams{Width: 9, Height: 9, MineCount: 10}, 9, 0, r)
	assert.Error(t, err)

	// legal params but no room left outside the cleared start area
	_, err = NewBoard(GameParams{Width: 3, Height: 3, MineCount: 8}, 1, 1, r)
	assert.Error(t, err)
}

func TestNearbyMines(t *testing.T) {
	t.Parallel()

	/*
	 * * - -
	 * - - -
	 * - * -
	 */
	board := &Board{
		GameParams: GameParams{Width: 3, Height: 3, MineCount: 2},
		Mines: []bool{
			true, false, false,
			false, false, false,
			false, true, false,
		},
	}

	tests := []struct {
		x, y, want int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 0, 0},
		{0, 1, 2},
		{1, 1, 2},
		{2, 1, 1},
		{0, 2, 1},
		{2, 2, 1},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, board.NearbyMines(test.x, test.y),
			"square %d:%d", test.x, test.y)
	}
}

func TestParamsSeedRoundTrip(t *testing.T) {
	t.Parallel()

	params := GameParams{Width: 30, Height: 16, MineCount: 99}
	parsed, err := ParseSeed(params.Seed())
	require.NoError(t, err)
	assert.Equal(t, params, *parsed)

	_, err = ParseSeed("30:16")
	assert.Error(t, err)
	_, err = ParseSeed("0:16:10")
	assert.Error(t, err)
}

func TestGridToString(t *testing.T) {
	t.Parallel()

	g := Grid{
		1, Unknown,
		Flagged, 0,
	}
	assert.Equal(t, "1   \n* 0 \n", g.ToString(2))
}
