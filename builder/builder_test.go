// SPDX-License-Identifier: MIT
// Package builder_test verifies topology constructors and option resolution.

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cellsweep/builder"
	"github.com/katalvlaran/cellsweep/core"
)

// TestBuilders_Functional checks vertex/edge counts for each topology.
func TestBuilders_Functional(t *testing.T) {
	cases := []struct {
		name         string
		con          builder.Constructor
		wantV, wantE int
	}{
		{"Path5", builder.Path(5), 5, 4},
		{"Cycle6", builder.Cycle(6), 6, 6},
		{"Star4", builder.Star(4), 4, 3},
		{"Wheel5", builder.Wheel(5), 5, 8},
		{"Complete4", builder.Complete(4), 4, 6},
		{"Grid2x3", builder.Grid(2, 3), 6, 7},
		{"Naphthalene", builder.FusedRings(6, 6), 10, 11},
		{"Anthracene", builder.FusedRings(6, 6, 6), 14, 16},
		{"RandomSparseFull", builder.RandomSparse(4, 1), 4, 6},
		{"RandomSparseEmpty", builder.RandomSparse(4, 0), 4, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := builder.BuildGraph(nil, nil, tc.con)
			require.NoError(t, err)
			assert.Equal(t, tc.wantV, g.VertexCount())
			assert.Equal(t, tc.wantE, g.EdgeCount())
		})
	}
}

// TestBuilders_Validation asserts sentinel errors for invalid parameters.
func TestBuilders_Validation(t *testing.T) {
	cases := []struct {
		name string
		con  builder.Constructor
		want error
	}{
		{"Path1", builder.Path(1), builder.ErrTooFewVertices},
		{"Cycle2", builder.Cycle(2), builder.ErrTooFewVertices},
		{"Star1", builder.Star(1), builder.ErrTooFewVertices},
		{"Wheel3", builder.Wheel(3), builder.ErrTooFewVertices},
		{"Complete0", builder.Complete(0), builder.ErrTooFewVertices},
		{"Grid0", builder.Grid(0, 3), builder.ErrTooFewVertices},
		{"FusedEmpty", builder.FusedRings(), builder.ErrTooFewVertices},
		{"FusedTiny", builder.FusedRings(6, 2), builder.ErrTooFewVertices},
		{"SparseProb", builder.RandomSparse(3, 1.5), builder.ErrInvalidProbability},
		{"SparseRNG", builder.RandomSparse(3, 0.5), builder.ErrNeedRandSource},
		{"Nil", nil, builder.ErrConstructFailed},
		{"LinkMissing", builder.Link(0, 1), builder.ErrConstructFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.BuildGraph(nil, nil, tc.con)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestBuilders_Composition verifies disjoint-union offsets and Link bridging.
func TestBuilders_Composition(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil,
		builder.Cycle(3),   // 0,1,2
		builder.Path(2),    // 3,4
		builder.Link(2, 3), // bridge
	)
	require.NoError(t, err)
	assert.Equal(t, 5, g.VertexCount())
	assert.True(t, g.HasEdge(3, 4))
	assert.True(t, g.HasEdge(2, 3))
	assert.True(t, g.HasEdge(0, 2))
}

// TestBuilders_FeaturePolicies checks vertex/edge policies and determinism by seed.
func TestBuilders_FeaturePolicies(t *testing.T) {
	build := func(seed uint64) *core.Graph {
		g, err := builder.BuildGraph(
			[]core.GraphOption{core.WithVertexFeatureDim(3), core.WithEdgeFeatureDim(2)},
			[]builder.BuilderOption{
				builder.WithSeed(seed),
				builder.WithVertexFeatures(builder.RandomAtomTypes(3)),
				builder.WithEdgeFeatures(builder.OneHotFeatures(2)),
			},
			builder.RandomSparse(8, 0.4),
		)
		require.NoError(t, err)

		return g
	}

	a, b := build(7), build(7)
	assert.Equal(t, a.Vertices(), b.Vertices())
	assert.Equal(t, a.Edges(), b.Edges())

	for _, v := range a.Vertices() {
		sum := 0.0
		for _, x := range v.Features {
			sum += x
		}
		assert.Equal(t, 1.0, sum, "one-hot vertex %d", v.Index)
	}
	for _, e := range a.Edges() {
		assert.Len(t, e.Features, 2)
	}

	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.OneHotFeatures(0) })
}

// TestBuilders_DefaultFeatures anchors the constant default vertex policy.
func TestBuilders_DefaultFeatures(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Path(2))
	require.NoError(t, err)
	v, err := g.Vertex(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, v.Features)
	e, err := g.Edge(0)
	require.NoError(t, err)
	assert.Nil(t, e.Features)
}
