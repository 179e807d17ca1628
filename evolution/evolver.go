package evolution

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/snakes/components"
	"github.com/pthm-cable/snakes/neural"
)

// ErrInvalidOptions is wrapped by every Options validation failure.
var ErrInvalidOptions = errors.New("evolution: invalid options")

// Factory creates brains and snakes for the evolver.
type Factory interface {
	// NewBrain returns a freshly initialised controller.
	NewBrain() *neural.Network
	// NewSnake places a new snake that takes ownership of brain.
	NewSnake(brain *neural.Network) *components.Snake
}

// Options configures an Evolver.
type Options struct {
	PopulationSize int
	CrossoverRate  float64
	Mutation       neural.MutationParams // Mutation.Rate is the mutation rate
	Selector       Selector              // nil = ScoreRoulette
	Crossover      Crossover             // nil = PairedCrossover
	Factory        Factory
	Rng            *rand.Rand
}

// Outcome describes one AdvanceGeneration call.
type Outcome struct {
	Generation    int     // generation number after advancing
	TotalWeight   float64 // summed selection weight of the old population
	Reinitialized bool    // true if the pool had no weight and was rebuilt
	Mutations     int     // scalars changed by mutation
}

// Evolver owns the population and produces each next generation.
type Evolver struct {
	population []*components.Snake
	size       int
	generation int

	crossoverRate float64
	mutation      neural.MutationParams
	selector      Selector
	crossover     Crossover
	factory       Factory
	rng           *rand.Rand
}

// New creates an evolver with an empty population. Call Initialize before use.
func New(opts Options) (*Evolver, error) {
	if opts.PopulationSize <= 0 {
		return nil, fmt.Errorf("%w: population size must be positive, got %d", ErrInvalidOptions, opts.PopulationSize)
	}
	if opts.CrossoverRate < 0 || opts.CrossoverRate > 1 {
		return nil, fmt.Errorf("%w: crossover rate %v outside [0,1]", ErrInvalidOptions, opts.CrossoverRate)
	}
	if opts.Mutation.Rate < 0 || opts.Mutation.Rate > 1 {
		return nil, fmt.Errorf("%w: mutation rate %v outside [0,1]", ErrInvalidOptions, opts.Mutation.Rate)
	}
	if opts.Factory == nil {
		return nil, fmt.Errorf("%w: factory is required", ErrInvalidOptions)
	}
	if opts.Rng == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidOptions)
	}
	if opts.Selector == nil {
		opts.Selector = ScoreRoulette()
	}
	if opts.Crossover == nil {
		opts.Crossover = PairedCrossover{}
	}

	return &Evolver{
		size:          opts.PopulationSize,
		generation:    1,
		crossoverRate: opts.CrossoverRate,
		mutation:      opts.Mutation,
		selector:      opts.Selector,
		crossover:     opts.Crossover,
		factory:       opts.Factory,
		rng:           opts.Rng,
	}, nil
}

// Initialize replaces the population with fresh random snakes.
func (e *Evolver) Initialize() {
	e.population = make([]*components.Snake, e.size)
	for i := range e.population {
		e.population[i] = e.factory.NewSnake(e.factory.NewBrain())
	}
}

// Population returns the current population, ordered by slot.
func (e *Evolver) Population() []*components.Snake {
	return e.population
}

// Size returns the configured population size.
func (e *Evolver) Size() int {
	return e.size
}

// Generation returns the current generation number, starting at 1.
func (e *Evolver) Generation() int {
	return e.generation
}

// Selector returns the active selection strategy.
func (e *Evolver) Selector() Selector {
	return e.selector
}

// Crossover returns the active crossover strategy.
func (e *Evolver) Crossover() Crossover {
	return e.crossover
}

// Replace swaps in a caller-built population and adopts its size.
func (e *Evolver) Replace(pop []*components.Snake) {
	e.population = pop
	e.size = len(pop)
}

// AdvanceGeneration runs selection, crossover and mutation, then
// increments the generation. A pool with zero total weight is rebuilt
// from scratch instead.
func (e *Evolver) AdvanceGeneration() Outcome {
	parents, total := e.selector.Select(e.rng, e.population, e.size)
	if parents == nil {
		e.Initialize()
		e.generation++
		slog.Debug("selection pool empty, population reinitialized",
			"generation", e.generation,
			"selector", e.selector.Name(),
		)
		return Outcome{Generation: e.generation, Reinitialized: true}
	}

	offspring := e.crossover.Apply(e.rng, parents, e.crossoverRate)

	mutations := 0
	next := make([]*components.Snake, len(offspring))
	for i, brain := range offspring {
		mutations += brain.Mutate(e.rng, e.mutation)
		next[i] = e.factory.NewSnake(brain)
	}

	e.population = next
	e.generation++

	return Outcome{
		Generation:  e.generation,
		TotalWeight: total,
		Mutations:   mutations,
	}
}
