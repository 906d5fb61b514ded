// SPDX-License-Identifier: MIT
package model_test

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cellsweep/cellcomplex"
	"github.com/katalvlaran/cellsweep/dataset"
	"github.com/katalvlaran/cellsweep/model"
	"github.com/katalvlaran/cellsweep/preprocess"
)

func batch(t *testing.T, n int) model.Batch {
	t.Helper()
	recs, err := dataset.SyntheticMolecules{Count: n, MaxRings: 3, AtomTypes: 3, Seed: 9}.Load(context.Background())
	require.NoError(t, err)
	ds, err := preprocess.New().Run(context.Background(), "model-test", recs)
	require.NoError(t, err)

	return model.Batch{Complexes: ds.Complexes, Targets: ds.Targets}
}

func TestLosses(t *testing.T) {
	pred := []float64{1, 2, 4}
	target := []float64{1, 3, 2}
	assert.InDelta(t, 5.0/3, model.MSE{}.Value(pred, target), 1e-12)
	assert.InDelta(t, 1.0, model.MAE{}.Value(pred, target), 1e-12)
	assert.Equal(t, []float64{0, -1.0 / 3, 1.0 / 3}, model.MAE{}.Grad(pred, target))
	assert.InDeltaSlice(t, []float64{0, -2.0 / 3, 4.0 / 3}, model.MSE{}.Grad(pred, target), 1e-12)

	rmse, err := model.MetricByName("rmse")
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(5.0/3), rmse(pred, target), 1e-12)

	_, err = model.MetricByName("auc")
	assert.ErrorIs(t, err, model.ErrUnknown)
	_, err = model.LossByName("bce")
	assert.ErrorIs(t, err, model.ErrUnknown)
	_, err = model.OptimizerByName("rmsprop", 0.1)
	assert.ErrorIs(t, err, model.ErrUnknown)
}

func TestReadout_GradientMatchesFiniteDifference(t *testing.T) {
	b := batch(t, 6)
	for _, hidden := range []int{0, 4} {
		spec, err := model.SpecFor(b.Complexes, hidden)
		require.NoError(t, err)
		m, err := model.NewReadout(spec, rand.New(rand.NewPCG(1, 2)))
		require.NoError(t, err)

		loss := model.MSE{}
		pred, err := m.Forward(b)
		require.NoError(t, err)
		model.ZeroGrad(m.Parameters())
		require.NoError(t, m.Backward(b, loss.Grad(pred, b.Targets)))

		const h = 1e-6
		for _, p := range m.Parameters() {
			for i := range p.Value {
				orig := p.Value[i]
				p.Value[i] = orig + h
				up, err := m.Forward(b)
				require.NoError(t, err)
				p.Value[i] = orig - h
				down, err := m.Forward(b)
				require.NoError(t, err)
				p.Value[i] = orig
				num := (loss.Value(up, b.Targets) - loss.Value(down, b.Targets)) / (2 * h)
				assert.InDelta(t, num, p.Grad[i], 1e-3*math.Max(1, math.Abs(num)), "hidden=%d %s[%d]", hidden, p.Name, i)
			}
		}
	}
}

func TestReadout_AdamFitsSyntheticTarget(t *testing.T) {
	b := batch(t, 32)
	spec, err := model.SpecFor(b.Complexes, 0)
	require.NoError(t, err)
	m, err := model.ReadoutFactory(spec)(rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	opt := model.NewAdam(0.05)
	loss := model.MSE{}

	pred, err := m.Forward(b)
	require.NoError(t, err)
	initial := loss.Value(pred, b.Targets)
	for step := 0; step < 400; step++ {
		pred, err = m.Forward(b)
		require.NoError(t, err)
		opt.ZeroGrad(m.Parameters())
		require.NoError(t, m.Backward(b, loss.Grad(pred, b.Targets)))
		opt.Step(m.Parameters())
	}
	pred, err = m.Forward(b)
	require.NoError(t, err)
	assert.Less(t, loss.Value(pred, b.Targets), initial/5)
}

func TestSGD_Step(t *testing.T) {
	p := &model.Parameter{Name: "p", Value: []float64{1, 1}, Grad: []float64{0.5, -1}}
	plain := model.NewSGD(0.1, 0)
	plain.Step([]*model.Parameter{p})
	assert.InDeltaSlice(t, []float64{0.95, 1.1}, p.Value, 1e-12)

	mom := model.NewSGD(0.1, 0.5)
	mom.Step([]*model.Parameter{p})
	mom.Step([]*model.Parameter{p})
	// v1 = g, v2 = 1.5g.
	assert.InDeltaSlice(t, []float64{0.95 - 0.25*0.5, 1.1 + 0.25}, p.Value, 1e-12)

	mom.ZeroGrad([]*model.Parameter{p})
	assert.Equal(t, []float64{0, 0}, p.Grad)
	mom.SetLR(0.01)
	assert.Equal(t, 0.01, mom.LR())
}

func TestParameters_RoundTrip(t *testing.T) {
	spec := model.ReadoutSpec{FeatureDims: []int{2, 2, 2}, Hidden: 3}
	a, err := model.NewReadout(spec, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	b, err := model.NewReadout(spec, rand.New(rand.NewPCG(2, 2)))
	require.NoError(t, err)

	raw, err := model.MarshalParameters(a.Parameters())
	require.NoError(t, err)
	require.NoError(t, model.UnmarshalParameters(b.Parameters(), raw))
	for i, p := range a.Parameters() {
		assert.Equal(t, p.Value, b.Parameters()[i].Value)
	}

	other, err := model.NewReadout(model.ReadoutSpec{FeatureDims: []int{1}}, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	assert.ErrorIs(t, model.UnmarshalParameters(other.Parameters(), raw), model.ErrShape)
}

func TestReadout_ShapeErrors(t *testing.T) {
	_, err := model.NewReadout(model.ReadoutSpec{}, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, model.ErrShape)
	_, err = model.SpecFor([]*cellcomplex.Complex{nil}, 0)
	assert.ErrorIs(t, err, model.ErrShape)

	m, err := model.NewReadout(model.ReadoutSpec{FeatureDims: []int{1}}, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	assert.ErrorIs(t, m.Backward(model.Batch{}, nil), model.ErrShape)
	_, err = m.Forward(model.Batch{})
	assert.ErrorIs(t, err, model.ErrShape)
}
