package systems

import (
	"math/rand"

	"github.com/pthm-cable/snakes/components"
)

// DefaultMaxAttempts is how many random cells PlaceFood tries before
// falling back to a scan.
const DefaultMaxAttempts = 64

// Feed lets a live snake eat food under its head. Returns true if it ate.
func Feed(s *components.Snake, food components.Point) bool {
	if !s.Alive || s.Head() != food {
		return false
	}
	s.Eat()
	return true
}

// FoodPlacer picks food cells that avoid a snake's body.
type FoodPlacer struct {
	BoardSize   int
	MaxAttempts int
}

// NewFoodPlacer creates a placer for a boardSize x boardSize board.
func NewFoodPlacer(boardSize, maxAttempts int) *FoodPlacer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &FoodPlacer{BoardSize: boardSize, MaxAttempts: maxAttempts}
}

// RandomCell returns a uniformly random board cell.
func (fp *FoodPlacer) RandomCell(rng *rand.Rand) components.Point {
	return components.Point{X: rng.Intn(fp.BoardSize), Y: rng.Intn(fp.BoardSize)}
}

// Place returns a free cell for s's food. It samples up to MaxAttempts
// random cells, then scans the board row by row for the first free one.
// ok is false only when the body covers the whole board, in which case
// the returned cell is random.
func (fp *FoodPlacer) Place(rng *rand.Rand, s *components.Snake) (pos components.Point, ok bool) {
	for i := 0; i < fp.MaxAttempts; i++ {
		p := fp.RandomCell(rng)
		if !s.Occupies(p) {
			return p, true
		}
	}

	for y := 0; y < fp.BoardSize; y++ {
		for x := 0; x < fp.BoardSize; x++ {
			p := components.Point{X: x, Y: y}
			if !s.Occupies(p) {
				return p, true
			}
		}
	}

	return fp.RandomCell(rng), false
}
