// SPDX-License-Identifier: MIT
// Package model implements the reference complex readout.

package model

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cellsweep/cellcomplex"
)

// ReadoutSpec fixes the input layout of a Readout.
type ReadoutSpec struct {
	// FeatureDims[d] is the feature width of dimension d.
	FeatureDims []int
	// Hidden is the width of the ReLU layer; 0 means a linear model.
	Hidden int
}

// SpecFor derives FeatureDims from the first non-nil complex.
func SpecFor(complexes []*cellcomplex.Complex, hidden int) (ReadoutSpec, error) {
	for _, cx := range complexes {
		if cx == nil {
			continue
		}
		dims := make([]int, cx.MaxDim+1)
		for d := range dims {
			dims[d] = cx.FeatureDim(d)
		}
		// Empty arenas in the probe record hide the width; take it from any record.
		for d := range dims {
			if dims[d] != 0 {
				continue
			}
			for _, other := range complexes {
				if other != nil && other.FeatureDim(d) > 0 {
					dims[d] = other.FeatureDim(d)
					break
				}
			}
		}

		return ReadoutSpec{FeatureDims: dims, Hidden: hidden}, nil
	}

	return ReadoutSpec{}, fmt.Errorf("model: SpecFor: no complexes: %w", ErrShape)
}

// InputWidth is the length of the pooled input vector.
func (s ReadoutSpec) InputWidth() int {
	n := 0
	for _, f := range s.FeatureDims {
		n += 1 + f
	}

	return n
}

// Readout is the reference Model.
type Readout struct {
	spec   ReadoutSpec
	params []*Parameter

	// Forward cache consumed by Backward.
	x, h *mat.Dense
}

// NewReadout initialises weights with He-normal draws from rng.
func NewReadout(spec ReadoutSpec, rng *rand.Rand) (*Readout, error) {
	in := spec.InputWidth()
	if in == 0 || spec.Hidden < 0 {
		return nil, fmt.Errorf("model: NewReadout: input %d hidden %d: %w", in, spec.Hidden, ErrShape)
	}
	r := &Readout{spec: spec}
	if spec.Hidden == 0 {
		w := newParameter("w", in)
		fill(w.Value, rng, math.Sqrt(1/float64(in)))
		r.params = []*Parameter{w, newParameter("b", 1)}

		return r, nil
	}
	w1 := newParameter("w1", in*spec.Hidden)
	fill(w1.Value, rng, math.Sqrt(2/float64(in)))
	w2 := newParameter("w2", spec.Hidden)
	fill(w2.Value, rng, math.Sqrt(1/float64(spec.Hidden)))
	r.params = []*Parameter{w1, newParameter("b1", spec.Hidden), w2, newParameter("b2", 1)}

	return r, nil
}

// ReadoutFactory adapts NewReadout to Factory.
func ReadoutFactory(spec ReadoutSpec) Factory {
	return func(rng *rand.Rand) (Model, error) {
		return NewReadout(spec, rng)
	}
}

func fill(dst []float64, rng *rand.Rand, std float64) {
	for i := range dst {
		dst[i] = rng.NormFloat64() * std
	}
}

// Parameters implements Model.
func (r *Readout) Parameters() []*Parameter { return r.params }

// Pool returns the pooled input row of one complex.
func (r *Readout) Pool(cx *cellcomplex.Complex) ([]float64, error) {
	out := make([]float64, 0, r.spec.InputWidth())
	for d, fd := range r.spec.FeatureDims {
		var cells []cellcomplex.Cell
		if d < len(cx.Cells) {
			cells = cx.Cells[d]
		}
		row := make([]float64, 1+fd)
		row[0] = float64(len(cells))
		for _, c := range cells {
			if len(c.Features) != fd {
				return nil, fmt.Errorf("model: cell (%d,%d) has %d features, want %d: %w", d, c.Index, len(c.Features), fd, ErrShape)
			}
			for k, v := range c.Features {
				row[1+k] += v
			}
		}
		out = append(out, row...)
	}

	return out, nil
}

// Forward implements Model.
func (r *Readout) Forward(b Batch) ([]float64, error) {
	n := b.Len()
	if n == 0 {
		return nil, fmt.Errorf("model: Forward: empty batch: %w", ErrShape)
	}
	in := r.spec.InputWidth()
	r.x = mat.NewDense(n, in, nil)
	for i, cx := range b.Complexes {
		row, err := r.Pool(cx)
		if err != nil {
			return nil, err
		}
		r.x.SetRow(i, row)
	}

	pred := make([]float64, n)
	if r.spec.Hidden == 0 {
		w := mat.NewVecDense(in, r.params[0].Value)
		var y mat.VecDense
		y.MulVec(r.x, w)
		for i := range pred {
			pred[i] = y.AtVec(i) + r.params[1].Value[0]
		}

		return pred, nil
	}

	hid := r.spec.Hidden
	w1 := mat.NewDense(in, hid, r.params[0].Value)
	b1 := r.params[1].Value
	r.h = mat.NewDense(n, hid, nil)
	r.h.Mul(r.x, w1)
	r.h.Apply(func(_, j int, v float64) float64 { return math.Max(0, v+b1[j]) }, r.h)

	w2 := mat.NewVecDense(hid, r.params[2].Value)
	var y mat.VecDense
	y.MulVec(r.h, w2)
	for i := range pred {
		pred[i] = y.AtVec(i) + r.params[3].Value[0]
	}

	return pred, nil
}

// Backward implements Model. Gradients accumulate into Parameter.Grad.
func (r *Readout) Backward(b Batch, dPred []float64) error {
	if r.x == nil {
		return fmt.Errorf("model: Backward before Forward: %w", ErrShape)
	}
	n, in := r.x.Dims()
	if b.Len() != n || len(dPred) != n {
		return fmt.Errorf("model: Backward: batch %d, grad %d, cached %d: %w", b.Len(), len(dPred), n, ErrShape)
	}
	dy := mat.NewVecDense(n, dPred)
	sum := 0.0
	for _, g := range dPred {
		sum += g
	}

	if r.spec.Hidden == 0 {
		gw := mat.NewVecDense(in, r.params[0].Grad)
		var tmp mat.VecDense
		tmp.MulVec(r.x.T(), dy)
		gw.AddVec(gw, &tmp)
		r.params[1].Grad[0] += sum

		return nil
	}

	hid := r.spec.Hidden
	w2 := r.params[2].Value

	// dw2 = hᵀ·dy, db2 = Σdy.
	gw2 := mat.NewVecDense(hid, r.params[2].Grad)
	var tmp mat.VecDense
	tmp.MulVec(r.h.T(), dy)
	gw2.AddVec(gw2, &tmp)
	r.params[3].Grad[0] += sum

	// dh = dy·w2ᵀ masked by relu'.
	dh := mat.NewDense(n, hid, nil)
	dh.Apply(func(i, j int, _ float64) float64 {
		if r.h.At(i, j) <= 0 {
			return 0
		}
		return dPred[i] * w2[j]
	}, dh)

	// dW1 = xᵀ·dh, db1 = Σ_i dh.
	gw1 := mat.NewDense(in, hid, r.params[0].Grad)
	var dw1 mat.Dense
	dw1.Mul(r.x.T(), dh)
	gw1.Add(gw1, &dw1)
	gb1 := r.params[1].Grad
	for j := 0; j < hid; j++ {
		gb1[j] += mat.Sum(dh.ColView(j))
	}

	return nil
}
