package evolution

import (
	"math/rand"

	"github.com/pthm-cable/snakes/neural"
)

// Crossover turns selected parents into the same number of offspring.
// Offspring never alias a parent or each other.
type Crossover interface {
	Name() string
	Apply(rng *rand.Rand, parents []*neural.Network, rate float64) []*neural.Network
}

// randomCut draws cut points uniformly from [0, n).
func randomCut(rng *rand.Rand) neural.CutFunc {
	return func(n int) int { return neural.UniformInt(rng, 0, n) }
}

// PairedCrossover walks parents in pairs (i, i+1 mod N), stepping by two.
// With probability rate a pair is replaced by two complementary children;
// otherwise both parents pass through unchanged. For odd N the final pair
// wraps to parent 0 and contributes only its first child.
type PairedCrossover struct{}

func (PairedCrossover) Name() string {
	return CrossoverPaired
}

func (PairedCrossover) Apply(rng *rand.Rand, parents []*neural.Network, rate float64) []*neural.Network {
	n := len(parents)
	offspring := make([]*neural.Network, n)

	for i := 0; i < n; i += 2 {
		j := (i + 1) % n
		a, b := parents[i], parents[j]

		var x, y *neural.Network
		if rng.Float64() < rate {
			var err error
			x, y, err = neural.Crossover(a, b, randomCut(rng))
			if err != nil {
				panic(err)
			}
		} else {
			x, y = a.Clone(), b.Clone()
		}

		offspring[i] = x
		if j > i {
			offspring[j] = y
		}
	}
	return offspring
}

// UniformPairing gives every slot its own child: parent i crosses with a
// uniformly chosen partner with probability rate, or is copied otherwise.
type UniformPairing struct{}

func (UniformPairing) Name() string {
	return CrossoverUniform
}

func (UniformPairing) Apply(rng *rand.Rand, parents []*neural.Network, rate float64) []*neural.Network {
	offspring := make([]*neural.Network, len(parents))
	for i, a := range parents {
		b := parents[rng.Intn(len(parents))]
		if rng.Float64() < rate {
			x, _, err := neural.Crossover(a, b, randomCut(rng))
			if err != nil {
				panic(err)
			}
			offspring[i] = x
			continue
		}
		offspring[i] = a.Clone()
	}
	return offspring
}
