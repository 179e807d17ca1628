package main

import (
	"github.com/pthm-cable/snakes/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "crossover_rate", Path: "genetic.crossover_rate", Min: 0.0, Max: 1.0, Default: 0.8},
			{Name: "mutation_rate", Path: "genetic.mutation_rate", Min: 0.001, Max: 0.3, Default: 0.05},
			{Name: "mutation_scale", Path: "genetic.mutation_scale", Min: 0.01, Max: 1.0, Default: 0.125},
			{Name: "clamp_limit", Path: "genetic.clamp_limit", Min: 0.25, Max: 4.0, Default: 1.0},
			{Name: "max_moves", Path: "world.max_moves", Min: 30, Max: 300, Default: 100},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Genetic.CrossoverRate = clamped[0]
	cfg.Genetic.MutationRate = clamped[1]
	cfg.Genetic.MutationScale = clamped[2]
	cfg.Genetic.ClampLimit = clamped[3]
	cfg.World.MaxMoves = int(clamped[4])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Genetic.CrossoverRate,
		cfg.Genetic.MutationRate,
		cfg.Genetic.MutationScale,
		cfg.Genetic.ClampLimit,
		float64(cfg.World.MaxMoves),
	}
}
