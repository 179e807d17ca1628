package neural

import (
	"fmt"
	"math/rand"
)

// Sampler draws one zero-mean deviate from rng.
type Sampler func(rng *rand.Rand) float64

// Irwin-Hall parameters: the sum of gaussianTerms uniforms in
// [-gaussianSpread, gaussianSpread], divided by gaussianDivisor.
const (
	gaussianTerms   = 20
	gaussianSpread  = 3.0
	gaussianDivisor = 10.0
)

// Gaussian is a cheap CLT approximation of a normal deviate
// (mean 0, variance 0.6). It is the default for initialization and mutation.
func Gaussian(rng *rand.Rand) float64 {
	var sum float64
	for i := 0; i < gaussianTerms; i++ {
		sum += rng.Float64()*2*gaussianSpread - gaussianSpread
	}
	return sum / gaussianDivisor
}

// StdNormal draws from a standard normal distribution.
func StdNormal(rng *rand.Rand) float64 {
	return rng.NormFloat64()
}

// Sampler names accepted by SamplerByName.
const (
	SamplerIrwinHall = "irwin_hall"
	SamplerNormal    = "normal"
)

// SamplerByName resolves a configured sampler name.
func SamplerByName(name string) (Sampler, error) {
	switch name {
	case "", SamplerIrwinHall:
		return Gaussian, nil
	case SamplerNormal:
		return StdNormal, nil
	default:
		return nil, fmt.Errorf("neural: unknown sampler %q", name)
	}
}

// UniformInt returns an integer in [lo, hi).
func UniformInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// UniformFloat returns a float in [lo, hi).
func UniformFloat(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
