package game

import (
	"math/rand"

	"github.com/pthm-cable/snakes/components"
	"github.com/pthm-cable/snakes/neural"
)

// snakeFactory builds controllers and snakes for the evolver.
type snakeFactory struct {
	rng       *rand.Rand
	sizes     []int
	sample    neural.Sampler
	boardSize int
	maxMoves  int
}

// NewBrain creates a controller with every parameter drawn from the
// configured sampler.
func (f *snakeFactory) NewBrain() *neural.Network {
	return neural.MustNewNetwork(f.rng, f.sample, f.sizes...)
}

// NewSnake spawns a one-segment snake on a random cell.
func (f *snakeFactory) NewSnake(brain *neural.Network) *components.Snake {
	start := components.Point{X: f.rng.Intn(f.boardSize), Y: f.rng.Intn(f.boardSize)}
	return components.NewSnake(start, f.maxMoves, brain)
}

// layerSizes returns the full controller layout for the given hidden layers.
func layerSizes(hidden []int) []int {
	sizes := make([]int, 0, len(hidden)+2)
	sizes = append(sizes, neural.NumInputs)
	sizes = append(sizes, hidden...)
	return append(sizes, neural.NumOutputs)
}
