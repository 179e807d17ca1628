package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/snakes/config"
	"github.com/pthm-cable/snakes/game"
	"github.com/pthm-cable/snakes/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestHistory []telemetry.GenerationStats
	lastBest    int // best-ever score from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHistory returns the per-generation stats of the best seed run.
func (fe *FitnessEvaluator) BestHistory() []telemetry.GenerationStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHistory
}

// LastBest returns the best-ever score from the most recent evaluation.
func (fe *FitnessEvaluator) LastBest() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastBest
}

// runResult holds the results from a single simulation run.
type runResult struct {
	history []telemetry.GenerationStats
	fitness float64
	best    int
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Every seed runs in its own goroutine.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	best := results[0]
	for _, r := range results {
		total += r.fitness
		if r.fitness < best.fitness {
			best = r
		}
	}
	avgFitness := total / float64(len(results))

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHistory = best.history
	}
	fe.lastBest = best.best
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run for fe.generations
// generations or maxTicks ticks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	var result runResult
	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.GenerationStats) {
			result.history = append(result.history, stats)
		},
	})
	if err != nil {
		result.fitness = math.Inf(1)
		return result
	}
	defer g.Unload()

	for g.Generation() < fe.generations && g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	if b, ok := g.World().Best(); ok {
		result.best = b.Score
	}
	result.fitness = computeFitness(result.best, result.history)
	return result
}

// tailFraction is the share of final generations whose average score
// contributes to fitness.
const tailFraction = 0.25

// computeFitness calculates the scalar fitness (lower = better):
// -(bestEver + mean average score over the final generations).
// The best-ever score dominates; the tail average separates runs that
// found the same best snake.
func computeFitness(bestEver int, history []telemetry.GenerationStats) float64 {
	return -(float64(bestEver) + tailAverage(history))
}

func tailAverage(history []telemetry.GenerationStats) float64 {
	if len(history) == 0 {
		return 0
	}
	n := int(math.Ceil(float64(len(history)) * tailFraction))
	var sum float64
	for _, s := range history[len(history)-n:] {
		sum += s.AvgScore
	}
	return sum / float64(n)
}
