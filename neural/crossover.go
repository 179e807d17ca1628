package neural

import "fmt"

// CutFunc picks a cut index in [0, n) for a gene segment of length n.
type CutFunc func(n int) int

// SplitAt performs single-point crossover on two equal-length segments.
// x takes [0, cut) from a and [cut, n) from b; y is the complement.
func SplitAt(a, b []float64, cut int) (x, y []float64) {
	n := len(a)
	x = make([]float64, n)
	y = make([]float64, n)
	for k := 0; k < n; k++ {
		if k < cut {
			x[k], y[k] = a[k], b[k]
		} else {
			x[k], y[k] = b[k], a[k]
		}
	}
	return x, y
}

// Crossover builds two complementary children from parents a and b.
// Each weight row gets its own cut over the output columns and each bias
// vector gets one cut per layer. The parents are not modified.
func Crossover(a, b *Network, cut CutFunc) (*Network, *Network, error) {
	if len(a.Layers) != len(b.Layers) {
		return nil, nil, fmt.Errorf("%w: parents have %d and %d layers", ErrShape, len(a.Layers), len(b.Layers))
	}

	x := a.Clone()
	y := a.Clone()

	for li := range a.Layers {
		la, lb := a.Layers[li], b.Layers[li]
		ra, ca := la.W.Dims()
		rb, cb := lb.W.Dims()
		if ra != rb || ca != cb {
			return nil, nil, fmt.Errorf("%w: layer %d is %dx%d vs %dx%d", ErrShape, li, ra, ca, rb, cb)
		}

		for i := 0; i < ra; i++ {
			wx, wy := SplitAt(la.W.RawRowView(i), lb.W.RawRowView(i), cut(ca))
			x.Layers[li].W.SetRow(i, wx)
			y.Layers[li].W.SetRow(i, wy)
		}

		bx, by := SplitAt(la.B.RawVector().Data, lb.B.RawVector().Data, cut(ca))
		for j := 0; j < ca; j++ {
			x.Layers[li].B.SetVec(j, bx[j])
			y.Layers[li].B.SetVec(j, by[j])
		}
	}

	return x, y, nil
}
