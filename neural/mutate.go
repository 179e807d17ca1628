package neural

import "math/rand"

// MutationParams controls per-scalar mutation.
type MutationParams struct {
	Rate    float64 // probability each weight or bias mutates
	Scale   float64 // multiplier applied to each Sampler draw
	Clamp   bool    // clamp mutated values to [-Limit, Limit]
	Limit   float64
	Sampler Sampler // nil = Gaussian
}

// DefaultMutation returns the default mutation parameters for rate.
func DefaultMutation(rate float64) MutationParams {
	return MutationParams{
		Rate:    rate,
		Scale:   0.125,
		Clamp:   true,
		Limit:   1,
		Sampler: Gaussian,
	}
}

// Mutate perturbs weights and biases in place and returns how many scalars changed.
// Each scalar is visited in layer, row, column order, then biases.
func (nn *Network) Mutate(rng *rand.Rand, p MutationParams) int {
	sample := p.Sampler
	if sample == nil {
		sample = Gaussian
	}

	mutate := func(v float64) float64 {
		v += sample(rng) * p.Scale
		if p.Clamp {
			v = clamp(v, -p.Limit, p.Limit)
		}
		return v
	}

	count := 0
	for _, l := range nn.Layers {
		rows, cols := l.W.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if rng.Float64() < p.Rate {
					l.W.Set(i, j, mutate(l.W.At(i, j)))
					count++
				}
			}
		}
		for j := 0; j < l.B.Len(); j++ {
			if rng.Float64() < p.Rate {
				l.B.SetVec(j, mutate(l.B.AtVec(j)))
				count++
			}
		}
	}
	return count
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
