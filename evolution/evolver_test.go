package evolution

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/snakes/components"
	"github.com/pthm-cable/snakes/neural"
)

type testFactory struct {
	rng    *rand.Rand
	brains int
}

func (f *testFactory) NewBrain() *neural.Network {
	f.brains++
	return neural.MustNewNetwork(f.rng, neural.Gaussian, neural.DefaultSizes...)
}

func (f *testFactory) NewSnake(brain *neural.Network) *components.Snake {
	return components.NewSnake(components.Point{X: 1, Y: 1}, 50, brain)
}

func newTestEvolver(t *testing.T, size int, crossoverRate, mutationRate float64) (*Evolver, *testFactory) {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	f := &testFactory{rng: rng}
	e, err := New(Options{
		PopulationSize: size,
		CrossoverRate:  crossoverRate,
		Mutation:       neural.DefaultMutation(mutationRate),
		Factory:        f,
		Rng:            rng,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Initialize()
	return e, f
}

func setScores(pop []*components.Snake, scores ...int) {
	for i, s := range scores {
		pop[i].Score = s
	}
}

func TestNewValidates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f := &testFactory{rng: rng}
	tests := []struct {
		name string
		opts Options
	}{
		{"zero size", Options{PopulationSize: 0, Factory: f, Rng: rng}},
		{"crossover rate", Options{PopulationSize: 2, CrossoverRate: 2, Factory: f, Rng: rng}},
		{"mutation rate", Options{PopulationSize: 2, Mutation: neural.MutationParams{Rate: -1}, Factory: f, Rng: rng}},
		{"no factory", Options{PopulationSize: 2, Rng: rng}},
		{"no rng", Options{PopulationSize: 2, Factory: f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("New() = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestInitialize(t *testing.T) {
	e, _ := newTestEvolver(t, 6, 0.8, 0.05)
	if len(e.Population()) != 6 {
		t.Fatalf("population = %d, want 6", len(e.Population()))
	}
	if e.Generation() != 1 {
		t.Errorf("generation = %d, want 1", e.Generation())
	}
	for i, s := range e.Population() {
		for j := i + 1; j < len(e.Population()); j++ {
			if s.Brain == e.Population()[j].Brain {
				t.Fatalf("snakes %d and %d share a brain", i, j)
			}
		}
	}
}

func TestRouletteIndex(t *testing.T) {
	weights := []float64{0, 10, 0}
	for _, pick := range []float64{0, 0.5, 3, 9.999} {
		if got := RouletteIndex(weights, pick); got != 1 {
			t.Errorf("RouletteIndex(%v, %v) = %d, want 1", weights, pick, got)
		}
	}

	tests := []struct {
		name    string
		weights []float64
		pick    float64
		want    int
	}{
		{"first bucket", []float64{2, 3, 5}, 1.9, 0},
		{"boundary goes right", []float64{2, 3, 5}, 2, 1},
		{"last bucket", []float64{2, 3, 5}, 9.5, 2},
		{"pick past total", []float64{2, 3, 0}, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RouletteIndex(tt.weights, tt.pick); got != tt.want {
				t.Errorf("RouletteIndex(%v, %v) = %d, want %d", tt.weights, tt.pick, got, tt.want)
			}
		})
	}
}

func TestScoreRouletteOnlyPicksWeighted(t *testing.T) {
	e, _ := newTestEvolver(t, 3, 0, 0)
	pop := e.Population()
	setScores(pop, 0, 10, 0)

	rng := rand.New(rand.NewSource(7))
	parents, total := ScoreRoulette().Select(rng, pop, 50)
	if total != 10 {
		t.Errorf("total = %v, want 10", total)
	}
	if len(parents) != 50 {
		t.Fatalf("parents = %d, want 50", len(parents))
	}
	for i, p := range parents {
		if !p.Equal(pop[1].Brain) {
			t.Fatalf("parent %d is not a copy of snake 1", i)
		}
		if p == pop[1].Brain {
			t.Fatalf("parent %d aliases snake 1's brain", i)
		}
	}
}

func TestFitnessRouletteUsesFitness(t *testing.T) {
	e, _ := newTestEvolver(t, 3, 0, 0)
	pop := e.Population()
	// Snake 2 has a score but starved (lifetime 0), so only snake 0 counts.
	pop[0].Lifetime = 40
	pop[2].Score = 3

	parents, total := FitnessRoulette().Select(rand.New(rand.NewSource(3)), pop, 10)
	if total != 40 {
		t.Errorf("total = %v, want 40", total)
	}
	for _, p := range parents {
		if !p.Equal(pop[0].Brain) {
			t.Fatal("fitness roulette picked a zero-fitness snake")
		}
	}
}

func TestAllZeroWeightsReinitializes(t *testing.T) {
	e, f := newTestEvolver(t, 5, 0.8, 0.05)
	old := e.Population()
	brainsBefore := f.brains

	out := e.AdvanceGeneration()
	if !out.Reinitialized {
		t.Fatal("expected reinitialization")
	}
	if e.Generation() != 2 || out.Generation != 2 {
		t.Errorf("generation = %d/%d, want 2", e.Generation(), out.Generation)
	}
	if got := f.brains - brainsBefore; got != 5 {
		t.Errorf("fresh brains created = %d, want 5", got)
	}

	next := e.Population()
	if len(next) != 5 {
		t.Fatalf("population = %d, want 5", len(next))
	}
	for i, s := range next {
		for _, o := range old {
			if s.Brain == o.Brain || s.Brain.Equal(o.Brain) {
				t.Fatalf("snake %d reuses an old controller", i)
			}
		}
	}
}

func TestAdvanceGenerationCopiesWinner(t *testing.T) {
	// No crossover and no mutation: every child is a copy of the only scorer.
	e, _ := newTestEvolver(t, 4, 0, 0)
	pop := e.Population()
	setScores(pop, 0, 0, 7, 0)
	winner := pop[2].Brain

	out := e.AdvanceGeneration()
	if out.Reinitialized {
		t.Fatal("unexpected reinitialization")
	}
	if out.TotalWeight != 7 {
		t.Errorf("TotalWeight = %v, want 7", out.TotalWeight)
	}
	if out.Mutations != 0 {
		t.Errorf("Mutations = %d, want 0", out.Mutations)
	}

	for i, s := range e.Population() {
		if !s.Brain.Equal(winner) {
			t.Errorf("child %d differs from winner", i)
		}
		if s.Brain == winner {
			t.Errorf("child %d aliases winner", i)
		}
		if !s.Alive || s.Score != 0 || s.Len() != 1 {
			t.Errorf("child %d is not a fresh snake", i)
		}
	}

	// Mutating one child must not touch its siblings.
	e.Population()[0].Brain.Layers[0].W.Set(0, 0, 42)
	if e.Population()[1].Brain.Layers[0].W.At(0, 0) == 42 {
		t.Error("children share controller storage")
	}
}

func TestAdvanceGenerationMutates(t *testing.T) {
	e, _ := newTestEvolver(t, 4, 0, 1)
	setScores(e.Population(), 1, 1, 1, 1)

	out := e.AdvanceGeneration()
	want := 4 * e.Population()[0].Brain.NumParams()
	if out.Mutations != want {
		t.Errorf("Mutations = %d, want %d", out.Mutations, want)
	}
}

func TestPairedCrossoverPassThrough(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parents := make([]*neural.Network, 4)
	for i := range parents {
		parents[i] = neural.MustNewNetwork(rng, neural.Gaussian, neural.DefaultSizes...)
	}

	children := PairedCrossover{}.Apply(rng, parents, 0)
	for i := range parents {
		if !children[i].Equal(parents[i]) || children[i] == parents[i] {
			t.Errorf("child %d should be an unaliased copy of parent %d", i, i)
		}
	}
}

func TestPairedCrossoverProducesComplementaryChildren(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parents := []*neural.Network{
		neural.MustNewNetwork(rng, neural.Gaussian, neural.DefaultSizes...),
		neural.MustNewNetwork(rng, neural.Gaussian, neural.DefaultSizes...),
	}

	children := PairedCrossover{}.Apply(rng, parents, 1)
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2", len(children))
	}
	if children[0].Equal(children[1]) {
		t.Error("children are identical")
	}

	// Every gene comes from one parent and the siblings swap sources.
	for li := range parents[0].Layers {
		rows, cols := parents[0].Layers[li].W.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				a, b := parents[0].Layers[li].W.At(i, j), parents[1].Layers[li].W.At(i, j)
				x, y := children[0].Layers[li].W.At(i, j), children[1].Layers[li].W.At(i, j)
				if !((x == a && y == b) || (x == b && y == a)) {
					t.Fatalf("layer %d [%d][%d]: children %v/%v not drawn from %v/%v", li, i, j, x, y, a, b)
				}
			}
		}
	}
}

func TestPairedCrossoverOddPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parents := make([]*neural.Network, 5)
	for i := range parents {
		parents[i] = neural.MustNewNetwork(rng, neural.Gaussian, neural.DefaultSizes...)
	}

	for _, rate := range []float64{0, 1} {
		children := PairedCrossover{}.Apply(rng, parents, rate)
		if len(children) != 5 {
			t.Fatalf("rate %v: children = %d, want 5", rate, len(children))
		}
		for i, c := range children {
			if c == nil {
				t.Fatalf("rate %v: child %d is nil", rate, i)
			}
		}
		if rate == 0 && !children[0].Equal(parents[0]) {
			t.Error("wrapped final pair overwrote child 0")
		}
	}
}

func TestUniformPairingSize(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parents := make([]*neural.Network, 7)
	for i := range parents {
		parents[i] = neural.MustNewNetwork(rng, neural.Gaussian, neural.DefaultSizes...)
	}

	children := UniformPairing{}.Apply(rng, parents, 0.5)
	if len(children) != 7 {
		t.Fatalf("children = %d, want 7", len(children))
	}
	for i, c := range children {
		for _, p := range parents {
			if c == p {
				t.Fatalf("child %d aliases a parent", i)
			}
		}
	}
}

func TestTournamentKeepsElite(t *testing.T) {
	e, _ := newTestEvolver(t, 6, 0, 0)
	pop := e.Population()
	setScores(pop, 1, 0, 9, 3, 0, 2)

	parents, total := Tournament{Size: 2}.Select(rand.New(rand.NewSource(5)), pop, 6)
	if total != 15 {
		t.Errorf("total = %v, want 15", total)
	}
	if len(parents) != 6 {
		t.Fatalf("parents = %d, want 6", len(parents))
	}
	if !parents[0].Equal(pop[2].Brain) {
		t.Error("first parent is not the elite")
	}

	if got, _ := (Tournament{Size: 2}).Select(rand.New(rand.NewSource(5)), []*components.Snake{pop[1], pop[4]}, 2); got != nil {
		t.Error("tournament over a zero-score pool should report no parents")
	}
}

func TestStrategyRegistry(t *testing.T) {
	for _, name := range []string{"", SelectionScore, SelectionFitness, SelectionTournament} {
		s, err := SelectorByName(name, 10)
		if err != nil {
			t.Errorf("SelectorByName(%q): %v", name, err)
			continue
		}
		if name != "" && s.Name() != name {
			t.Errorf("SelectorByName(%q).Name() = %q", name, s.Name())
		}
	}
	for _, name := range []string{"", CrossoverPaired, CrossoverUniform} {
		if _, err := CrossoverByName(name); err != nil {
			t.Errorf("CrossoverByName(%q): %v", name, err)
		}
	}

	if _, err := SelectorByName("rank", 0); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("unknown selector error = %v", err)
	}
	if _, err := CrossoverByName("two-point"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("unknown crossover error = %v", err)
	}
}
