// Package telemetry aggregates per-generation statistics, performance
// timings and CSV output for a snake evolution run.
package telemetry

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/snakes/components"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarises one finished generation.
type GenerationStats struct {
	Generation int `csv:"generation"`
	Ticks      int `csv:"ticks"` // ticks the generation ran for

	// Score distribution
	BestScore   int     `csv:"best_score"`
	AvgScore    float64 `csv:"avg_score"`
	ScoreStd    float64 `csv:"score_std"`
	MedianScore float64 `csv:"median_score"`
	Scorers     int     `csv:"scorers"` // snakes that ate at least once

	// Fitness distribution
	MaxFitness  float64 `csv:"max_fitness"`
	MeanFitness float64 `csv:"mean_fitness"`

	// Body length
	MaxLength int `csv:"max_length"`

	// Best snake ever recorded, up to and including this generation
	BestEverScore      int `csv:"best_ever_score"`
	BestEverGeneration int `csv:"best_ever_generation"`
}

// ComputeScoreStats returns the population mean, standard deviation, median
// and maximum of values. Empty input yields zeros.
func ComputeScoreStats(values []float64) (mean, std, median, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	median = Percentile(sorted, 0.5)
	max = floats.Max(values)

	return mean, std, median, max
}

// Percentile calculates the p-th percentile of a sorted slice using linear
// interpolation. p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// CollectGeneration fills the distribution fields of a GenerationStats from
// a finished population. Generation, Ticks and best-ever fields are left to
// the caller.
func CollectGeneration(pop []*components.Snake) GenerationStats {
	var s GenerationStats
	if len(pop) == 0 {
		return s
	}

	scores := make([]float64, len(pop))
	fitness := make([]float64, len(pop))
	for i, snake := range pop {
		scores[i] = float64(snake.Score)
		fitness[i] = snake.Fitness()
		if snake.Score > 0 {
			s.Scorers++
		}
		if snake.Len() > s.MaxLength {
			s.MaxLength = snake.Len()
		}
	}

	var best float64
	s.AvgScore, s.ScoreStd, s.MedianScore, best = ComputeScoreStats(scores)
	s.BestScore = int(best)
	s.MaxFitness = floats.Max(fitness)
	s.MeanFitness = stat.Mean(fitness, nil)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Int("best_score", s.BestScore),
		slog.Float64("avg_score", s.AvgScore),
		slog.Float64("score_std", s.ScoreStd),
		slog.Float64("median_score", s.MedianScore),
		slog.Int("scorers", s.Scorers),
		slog.Float64("max_fitness", s.MaxFitness),
		slog.Float64("mean_fitness", s.MeanFitness),
		slog.Int("max_length", s.MaxLength),
		slog.Int("best_ever_score", s.BestEverScore),
		slog.Int("best_ever_generation", s.BestEverGeneration),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"ticks", s.Ticks,
		"best_score", s.BestScore,
		"avg_score", s.AvgScore,
		"score_std", s.ScoreStd,
		"scorers", s.Scorers,
		"max_fitness", s.MaxFitness,
		"max_length", s.MaxLength,
		"best_ever_score", s.BestEverScore,
		"best_ever_generation", s.BestEverGeneration,
	)
}
