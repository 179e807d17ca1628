package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/snakes/components"
	"github.com/pthm-cable/snakes/config"
	"github.com/pthm-cable/snakes/evolution"
	"github.com/pthm-cable/snakes/neural"
	"github.com/pthm-cable/snakes/systems"
	"github.com/pthm-cable/snakes/telemetry"
)

var (
	// ErrInvalidConfig is wrapped by every WorldOptions validation failure.
	ErrInvalidConfig = errors.New("game: invalid configuration")
	// ErrNoBest is returned by PrepareReplay before any snake was evaluated.
	ErrNoBest = errors.New("game: no best snake recorded")
)

// WorldOptions configures a World.
type WorldOptions struct {
	BoardSize      int
	MaxMoves       int
	PopulationSize int

	CrossoverRate float64
	Mutation      neural.MutationParams
	Selector      evolution.Selector  // nil = score roulette
	Crossover     evolution.Crossover // nil = paired crossover

	Sizes        []int          // controller layout, input first; nil = neural.DefaultSizes
	InitSampler  neural.Sampler // nil = neural.Gaussian
	FoodAttempts int            // 0 = systems.DefaultMaxAttempts

	Rng          *rand.Rand // nil = time seeded
	OnGeneration func(telemetry.GenerationStats)
	Perf         *telemetry.PerfCollector
}

// WorldOptionsFromConfig translates a configuration into world options.
func WorldOptionsFromConfig(cfg *config.Config, rng *rand.Rand) (WorldOptions, error) {
	sampler, err := neural.SamplerByName(cfg.Neural.InitSampler)
	if err != nil {
		return WorldOptions{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	selector, err := evolution.SelectorByName(cfg.Genetic.Selection, cfg.Genetic.TournamentSize)
	if err != nil {
		return WorldOptions{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	crossover, err := evolution.CrossoverByName(cfg.Genetic.Crossover)
	if err != nil {
		return WorldOptions{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return WorldOptions{
		BoardSize:      cfg.World.BoardSize,
		MaxMoves:       cfg.World.MaxMoves,
		PopulationSize: cfg.Population.Size,
		CrossoverRate:  cfg.Genetic.CrossoverRate,
		Mutation: neural.MutationParams{
			Rate:    cfg.Genetic.MutationRate,
			Scale:   cfg.Genetic.MutationScale,
			Clamp:   cfg.Genetic.ClampMutation,
			Limit:   cfg.Genetic.ClampLimit,
			Sampler: sampler,
		},
		Selector:     selector,
		Crossover:    crossover,
		Sizes:        layerSizes(cfg.Neural.HiddenLayers),
		InitSampler:  sampler,
		FoodAttempts: cfg.Food.MaxAttempts,
		Rng:          rng,
	}, nil
}

func (o *WorldOptions) validate() error {
	if o.BoardSize < 1 {
		return fmt.Errorf("%w: board size must be positive, got %d", ErrInvalidConfig, o.BoardSize)
	}
	if o.PopulationSize < 1 {
		return fmt.Errorf("%w: population size must be positive, got %d", ErrInvalidConfig, o.PopulationSize)
	}
	if o.MaxMoves < 1 {
		return fmt.Errorf("%w: max moves must be positive, got %d", ErrInvalidConfig, o.MaxMoves)
	}
	if o.CrossoverRate < 0 || o.CrossoverRate > 1 {
		return fmt.Errorf("%w: crossover rate %v outside [0,1]", ErrInvalidConfig, o.CrossoverRate)
	}
	if o.Mutation.Rate < 0 || o.Mutation.Rate > 1 {
		return fmt.Errorf("%w: mutation rate %v outside [0,1]", ErrInvalidConfig, o.Mutation.Rate)
	}
	if o.Sizes != nil {
		n := len(o.Sizes)
		if n < 2 || o.Sizes[0] != neural.NumInputs || o.Sizes[n-1] != neural.NumOutputs {
			return fmt.Errorf("%w: controller layout %v must start at %d inputs and end at %d outputs",
				ErrInvalidConfig, o.Sizes, neural.NumInputs, neural.NumOutputs)
		}
		for _, s := range o.Sizes {
			if s <= 0 {
				return fmt.Errorf("%w: controller layout %v has a non-positive layer", ErrInvalidConfig, o.Sizes)
			}
		}
	}
	return nil
}

// Best is the highest-scoring snake seen so far.
type Best struct {
	Score      int
	Generation int // generation the snake was evaluated in
	Brain      *neural.Network
}

// World runs one population of snakes, each on its own board with its own
// food, and evolves it whenever every snake has died.
type World struct {
	boardSize int

	evolver *evolution.Evolver
	factory *snakeFactory
	foods   []components.Food
	placer  *systems.FoodPlacer
	rng     *rand.Rand

	generation int // completed generations
	ticks      int // ticks since the current generation started
	best       *Best
	replaying  bool
	outcome    evolution.Outcome

	onGeneration func(telemetry.GenerationStats)
	perf         *telemetry.PerfCollector
}

// NewWorld validates opts, builds the initial population and places one
// food per snake.
func NewWorld(opts WorldOptions) (*World, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sizes := opts.Sizes
	if sizes == nil {
		sizes = neural.DefaultSizes
	}
	sample := opts.InitSampler
	if sample == nil {
		sample = neural.Gaussian
	}

	factory := &snakeFactory{
		rng:       rng,
		sizes:     append([]int(nil), sizes...),
		sample:    sample,
		boardSize: opts.BoardSize,
		maxMoves:  opts.MaxMoves,
	}

	evolver, err := evolution.New(evolution.Options{
		PopulationSize: opts.PopulationSize,
		CrossoverRate:  opts.CrossoverRate,
		Mutation:       opts.Mutation,
		Selector:       opts.Selector,
		Crossover:      opts.Crossover,
		Factory:        factory,
		Rng:            rng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	w := &World{
		boardSize:    opts.BoardSize,
		evolver:      evolver,
		factory:      factory,
		placer:       systems.NewFoodPlacer(opts.BoardSize, opts.FoodAttempts),
		rng:          rng,
		onGeneration: opts.OnGeneration,
		perf:         opts.Perf,
	}

	evolver.Initialize()
	w.reseedFoods()

	return w, nil
}

// Tick advances the world by one step. With shouldEvolve set, it first
// records the best snake and, if every snake is dead, ends the generation
// instead of simulating. Replay mode never evolves.
func (w *World) Tick(shouldEvolve bool) {
	w.perf.StartTick()
	defer w.perf.EndTick()

	if shouldEvolve && !w.replaying {
		w.perf.StartPhase(telemetry.PhaseBest)
		w.updateBest()

		if !w.AnyAlive() {
			w.endGeneration()
			return
		}
	}

	pop := w.evolver.Population()
	w.checkAligned(pop)

	for i, s := range pop {
		if !s.Alive {
			continue
		}

		w.perf.StartPhase(telemetry.PhaseThink)
		obs := systems.Observe(s, w.foods[i].Position, w.boardSize)
		dir := s.Decide(obs)

		w.perf.StartPhase(telemetry.PhaseMove)
		s.Move(dir)
		s.CheckCollisions(w.boardSize)

		w.perf.StartPhase(telemetry.PhaseFeeding)
		if systems.Feed(s, w.foods[i].Position) {
			w.foods[i].Position = w.placeFood(s)
		}
	}

	w.ticks++
}

// Step advances the world the way the drivers do: evolving normally,
// never while replaying.
func (w *World) Step() {
	w.Tick(!w.replaying)
}

// endGeneration reports the finished generation and replaces it.
func (w *World) endGeneration() {
	w.perf.StartPhase(telemetry.PhaseTelemetry)
	w.generation++

	stats := telemetry.CollectGeneration(w.evolver.Population())
	stats.Generation = w.evolver.Generation()
	stats.Ticks = w.ticks
	if w.best != nil {
		stats.BestEverScore = w.best.Score
		stats.BestEverGeneration = w.best.Generation
	}
	if w.onGeneration != nil {
		w.onGeneration(stats)
	}

	w.perf.StartPhase(telemetry.PhaseEvolve)
	w.outcome = w.evolver.AdvanceGeneration()
	w.reseedFoods()
	w.ticks = 0
}

// updateBest keeps a private copy of the top scorer if it beats the
// retained best. The first evaluation always records one.
func (w *World) updateBest() {
	pop := w.evolver.Population()
	if len(pop) == 0 {
		return
	}

	top := pop[0]
	for _, s := range pop[1:] {
		if s.Score > top.Score {
			top = s
		}
	}

	if w.best != nil && top.Score <= w.best.Score {
		return
	}
	w.best = &Best{
		Score:      top.Score,
		Generation: w.evolver.Generation(),
		Brain:      top.Brain.Clone(),
	}
}

// PrepareReplay shrinks the population to a single snake driven by a copy
// of the best brain and switches evolution off.
func (w *World) PrepareReplay() error {
	if w.best == nil {
		return ErrNoBest
	}

	s := w.factory.NewSnake(w.best.Brain.Clone())
	w.evolver.Replace([]*components.Snake{s})
	w.reseedFoods()
	w.replaying = true
	w.ticks = 0

	slog.Debug("replaying best snake",
		"score", w.best.Score,
		"generation", w.best.Generation,
	)
	return nil
}

// reseedFoods places one fresh food per population slot.
func (w *World) reseedFoods() {
	pop := w.evolver.Population()
	w.foods = make([]components.Food, len(pop))
	for i, s := range pop {
		w.foods[i] = components.Food{Position: w.placeFood(s)}
	}
}

func (w *World) placeFood(s *components.Snake) components.Point {
	pos, ok := w.placer.Place(w.rng, s)
	if !ok {
		slog.Debug("no free cell for food", "board_size", w.boardSize, "length", s.Len())
	}
	return pos
}

func (w *World) checkAligned(pop []*components.Snake) {
	if len(pop) != len(w.foods) {
		panic(fmt.Sprintf("game: %d snakes but %d foods", len(pop), len(w.foods)))
	}
}

// BestScore returns the highest score in the current population.
func (w *World) BestScore() int {
	best := 0
	for i, s := range w.evolver.Population() {
		if i == 0 || s.Score > best {
			best = s.Score
		}
	}
	return best
}

// AvgScore returns the mean score of the current population.
func (w *World) AvgScore() float64 {
	pop := w.evolver.Population()
	if len(pop) == 0 {
		return 0
	}
	sum := 0
	for _, s := range pop {
		sum += s.Score
	}
	return float64(sum) / float64(len(pop))
}

// Best returns a copy of the best snake recorded so far.
func (w *World) Best() (Best, bool) {
	if w.best == nil {
		return Best{}, false
	}
	b := *w.best
	b.Brain = b.Brain.Clone()
	return b, true
}

// AnyAlive reports whether at least one snake is still alive.
func (w *World) AnyAlive() bool {
	for _, s := range w.evolver.Population() {
		if s.Alive {
			return true
		}
	}
	return false
}

// Population returns the snakes in slot order. Callers must not modify it.
func (w *World) Population() []*components.Snake {
	return w.evolver.Population()
}

// Foods returns the foods, index-aligned with Population.
func (w *World) Foods() []components.Food {
	return w.foods
}

// Food returns the food of slot i.
func (w *World) Food(i int) components.Food {
	return w.foods[i]
}

// BoardSize returns the side length of every board.
func (w *World) BoardSize() int {
	return w.boardSize
}

// PopulationSize returns the number of snakes.
func (w *World) PopulationSize() int {
	return len(w.evolver.Population())
}

// Generation returns the number of completed generations.
func (w *World) Generation() int {
	return w.generation
}

// CurrentGeneration returns the 1-based number of the generation being
// evaluated.
func (w *World) CurrentGeneration() int {
	return w.evolver.Generation()
}

// Ticks returns the ticks elapsed in the current generation.
func (w *World) Ticks() int {
	return w.ticks
}

// LastOutcome returns the result of the most recent generation change.
func (w *World) LastOutcome() evolution.Outcome {
	return w.outcome
}

// Replaying reports whether the world is in replay mode.
func (w *World) Replaying() bool {
	return w.replaying
}

// SetFood moves the food of slot i. Used to script scenarios.
func (w *World) SetFood(i int, pos components.Point) {
	w.foods[i].Position = pos
}
