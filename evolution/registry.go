package evolution

import (
	"errors"
	"fmt"
)

// Strategy names as used in configuration.
const (
	SelectionScore      = "score"
	SelectionFitness    = "fitness"
	SelectionTournament = "tournament"

	CrossoverPaired  = "paired"
	CrossoverUniform = "uniform"
)

// ErrUnknownStrategy is returned for unrecognised strategy names.
var ErrUnknownStrategy = errors.New("evolution: unknown strategy")

// SelectorByName resolves a selection strategy. tournamentSize is only
// used by the tournament selector.
func SelectorByName(name string, tournamentSize int) (Selector, error) {
	switch name {
	case "", SelectionScore:
		return ScoreRoulette(), nil
	case SelectionFitness:
		return FitnessRoulette(), nil
	case SelectionTournament:
		return Tournament{Size: tournamentSize}, nil
	}
	return nil, fmt.Errorf("%w: selection %q", ErrUnknownStrategy, name)
}

// CrossoverByName resolves a crossover strategy.
func CrossoverByName(name string) (Crossover, error) {
	switch name {
	case "", CrossoverPaired:
		return PairedCrossover{}, nil
	case CrossoverUniform:
		return UniformPairing{}, nil
	}
	return nil, fmt.Errorf("%w: crossover %q", ErrUnknownStrategy, name)
}
