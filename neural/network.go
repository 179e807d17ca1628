// Package neural provides the feedforward controller networks that drive snakes.
package neural

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Network dimensions for the default snake controller.
const (
	NumInputs  = 8 // food up/right/down/left + obstacle up/right/down/left
	NumHidden  = 8
	NumOutputs = 4 // up, right, down, left
)

// DefaultSizes is the 8 -> 8 -> 4 layer layout used by snakes.
var DefaultSizes = []int{NumInputs, NumHidden, NumOutputs}

// ErrShape is returned when layer sizes do not describe a valid network.
var ErrShape = errors.New("neural: invalid network shape")

// Layer is a dense layer. W is [inputs x outputs], B has length outputs.
type Layer struct {
	W *mat.Dense
	B *mat.VecDense
}

// Inputs returns the layer fan-in.
func (l Layer) Inputs() int {
	r, _ := l.W.Dims()
	return r
}

// Outputs returns the layer fan-out.
func (l Layer) Outputs() int {
	_, c := l.W.Dims()
	return c
}

// Network is a fixed-topology feedforward network.
// Hidden layers use ReLU; the output layer uses sigmoid.
type Network struct {
	Layers []Layer
}

// NewNetwork creates a network with the given layer sizes (input first),
// drawing every weight and bias from sample.
func NewNetwork(rng *rand.Rand, sample Sampler, sizes ...int) (*Network, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 sizes, got %d", ErrShape, len(sizes))
	}
	for _, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("%w: non-positive layer size %d", ErrShape, s)
		}
	}
	if sample == nil {
		sample = Gaussian
	}

	nn := &Network{Layers: make([]Layer, 0, len(sizes)-1)}
	for i := 1; i < len(sizes); i++ {
		in, out := sizes[i-1], sizes[i]
		w := make([]float64, in*out)
		for k := range w {
			w[k] = sample(rng)
		}
		b := make([]float64, out)
		for k := range b {
			b[k] = sample(rng)
		}
		nn.Layers = append(nn.Layers, Layer{
			W: mat.NewDense(in, out, w),
			B: mat.NewVecDense(out, b),
		})
	}
	return nn, nil
}

// MustNewNetwork is like NewNetwork but panics on a bad shape.
func MustNewNetwork(rng *rand.Rand, sample Sampler, sizes ...int) *Network {
	nn, err := NewNetwork(rng, sample, sizes...)
	if err != nil {
		panic(err)
	}
	return nn
}

// Sizes returns the layer sizes, input first.
func (nn *Network) Sizes() []int {
	if len(nn.Layers) == 0 {
		return nil
	}
	sizes := []int{nn.Layers[0].Inputs()}
	for _, l := range nn.Layers {
		sizes = append(sizes, l.Outputs())
	}
	return sizes
}

// Forward computes the activated outputs of the last layer.
func (nn *Network) Forward(inputs []float64) []float64 {
	x := mat.NewVecDense(len(inputs), append([]float64(nil), inputs...))
	last := len(nn.Layers) - 1

	for i, l := range nn.Layers {
		out := mat.NewVecDense(l.Outputs(), nil)
		// out[j] = b[j] + sum_i in[i]*w[i][j]
		out.MulVec(l.W.T(), x)
		out.AddVec(out, l.B)

		for j := 0; j < out.Len(); j++ {
			if i == last {
				out.SetVec(j, sigmoid(out.AtVec(j)))
			} else {
				out.SetVec(j, relu(out.AtVec(j)))
			}
		}
		x = out
	}

	return append([]float64(nil), x.RawVector().Data...)
}

// Decide runs a forward pass and returns the index of the strongest output.
// Ties resolve to the lowest index.
func (nn *Network) Decide(observation []float64) int {
	return Argmax(nn.Forward(observation))
}

// Argmax returns the index of the first maximum in values, or -1 if empty.
func Argmax(values []float64) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}

// Clone creates a deep copy of the network.
func (nn *Network) Clone() *Network {
	clone := &Network{Layers: make([]Layer, len(nn.Layers))}
	for i, l := range nn.Layers {
		b := mat.NewVecDense(l.B.Len(), nil)
		b.CopyVec(l.B)
		clone.Layers[i] = Layer{
			W: mat.DenseCopyOf(l.W),
			B: b,
		}
	}
	return clone
}

// Equal reports whether both networks have identical shapes and parameters.
func (nn *Network) Equal(other *Network) bool {
	if nn == nil || other == nil {
		return nn == other
	}
	if len(nn.Layers) != len(other.Layers) {
		return false
	}
	for i := range nn.Layers {
		if !mat.Equal(nn.Layers[i].W, other.Layers[i].W) {
			return false
		}
		if !mat.Equal(nn.Layers[i].B, other.Layers[i].B) {
			return false
		}
	}
	return true
}

// NumParams returns the total number of weights and biases.
func (nn *Network) NumParams() int {
	n := 0
	for _, l := range nn.Layers {
		n += l.Inputs()*l.Outputs() + l.Outputs()
	}
	return n
}

func relu(x float64) float64 {
	return math.Max(0, x)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
