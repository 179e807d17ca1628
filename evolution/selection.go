// Package evolution implements the generational genetic algorithm that
// replaces a snake population with mutated offspring of its best members.
package evolution

import (
	"math/rand"
	"sort"

	"github.com/pthm-cable/snakes/components"
	"github.com/pthm-cable/snakes/neural"
)

// Selector picks the parents of the next generation.
// Select returns n deep-copied parent brains and the total selection weight.
// A nil slice means the pool had no usable weight.
type Selector interface {
	Name() string
	Select(rng *rand.Rand, pop []*components.Snake, n int) ([]*neural.Network, float64)
}

// WeightFunc maps a snake to its roulette weight.
type WeightFunc func(s *components.Snake) float64

// ScoreWeight uses the food count as weight.
func ScoreWeight(s *components.Snake) float64 { return float64(s.Score) }

// FitnessWeight uses the shaped lifetime/score fitness as weight.
func FitnessWeight(s *components.Snake) float64 { return s.Fitness() }

// Roulette is fitness-proportionate selection with replacement.
type Roulette struct {
	name   string
	weight WeightFunc
}

// ScoreRoulette selects proportionally to score. This is the default.
func ScoreRoulette() *Roulette {
	return &Roulette{name: SelectionScore, weight: ScoreWeight}
}

// FitnessRoulette selects proportionally to shaped fitness.
func FitnessRoulette() *Roulette {
	return &Roulette{name: SelectionFitness, weight: FitnessWeight}
}

func (r *Roulette) Name() string {
	return r.name
}

func (r *Roulette) Select(rng *rand.Rand, pop []*components.Snake, n int) ([]*neural.Network, float64) {
	weights := make([]float64, len(pop))
	var total float64
	for i, s := range pop {
		w := r.weight(s)
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return nil, 0
	}

	parents := make([]*neural.Network, n)
	for i := range parents {
		pick := neural.UniformFloat(rng, 0, total)
		parents[i] = pop[RouletteIndex(weights, pick)].Brain.Clone()
	}
	return parents, total
}

// RouletteIndex returns the first index whose cumulative weight strictly
// exceeds pick. Picks at or past the total land on the last positive weight.
func RouletteIndex(weights []float64, pick float64) int {
	var current float64
	last := -1
	for i, w := range weights {
		if w > 0 {
			last = i
		}
		current += w
		if current > pick {
			return i
		}
	}
	return last
}

// Tournament keeps the best snake unchanged and fills the remaining slots
// with the best-scoring member of random samples.
type Tournament struct {
	Size int
}

func (Tournament) Name() string {
	return SelectionTournament
}

func (t Tournament) Select(rng *rand.Rand, pop []*components.Snake, n int) ([]*neural.Network, float64) {
	var total float64
	for _, s := range pop {
		total += float64(s.Score)
	}
	if total <= 0 || n == 0 {
		return nil, total
	}

	size := t.Size
	if size <= 0 || size > len(pop) {
		size = len(pop)
	}

	ranked := append([]*components.Snake(nil), pop...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	parents := make([]*neural.Network, 0, n)
	parents = append(parents, ranked[0].Brain.Clone())

	for len(parents) < n {
		perm := rng.Perm(len(pop))[:size]
		best := pop[perm[0]]
		for _, idx := range perm[1:] {
			if pop[idx].Score > best.Score {
				best = pop[idx]
			}
		}
		parents = append(parents, best.Brain.Clone())
	}
	return parents, total
}
