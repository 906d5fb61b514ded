package rings_test

import (
	"context"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cellsweep/builder"
	"github.com/katalvlaran/cellsweep/core"
	"github.com/katalvlaran/cellsweep/rings"
)

func build(t *testing.T, cons ...builder.Constructor) *core.Graph {
	t.Helper()
	g, err := builder.BuildGraph(nil, nil, cons...)
	require.NoError(t, err)

	return g
}

// TestExtract_NilGraph verifies the sentinel for nil input.
func TestExtract_NilGraph(t *testing.T) {
	_, err := rings.Extract(nil, 6)
	assert.ErrorIs(t, err, rings.ErrGraphNil)
}

// TestExtract_RingFree covers acyclic inputs and a bound below the minimum.
func TestExtract_RingFree(t *testing.T) {
	rs, err := rings.Extract(build(t, builder.Path(5)), 8)
	require.NoError(t, err)
	assert.Empty(t, rs)

	rs, err = rings.Extract(build(t, builder.Star(6)), 8)
	require.NoError(t, err)
	assert.Empty(t, rs)

	rs, err = rings.Extract(build(t, builder.Cycle(3)), 2)
	require.NoError(t, err)
	assert.NotNil(t, rs)
	assert.Empty(t, rs)
}

// TestExtract_SixCycleBound checks the bound is inclusive and strict.
func TestExtract_SixCycleBound(t *testing.T) {
	g := build(t, builder.Cycle(6))

	rs, err := rings.Extract(g, 6)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, rings.Ring{0, 1, 2, 3, 4, 5}, rs[0])

	rs, err = rings.Extract(g, 5)
	require.NoError(t, err)
	assert.Empty(t, rs)
}

// TestExtract_FusedAndGrid counts rings of fused systems under different bounds.
func TestExtract_FusedAndGrid(t *testing.T) {
	cases := []struct {
		name string
		con  builder.Constructor
		max  int
		want int
	}{
		{"Naphthalene6", builder.FusedRings(6, 6), 6, 2},
		{"Naphthalene10", builder.FusedRings(6, 6), 10, 3},
		{"Grid2x3_4", builder.Grid(2, 3), 4, 2},
		{"Grid2x3_6", builder.Grid(2, 3), 6, 3},
		{"Wheel5_3", builder.Wheel(5), 3, 4},
		{"Wheel5_4", builder.Wheel(5), 4, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rs, err := rings.Extract(build(t, tc.con), tc.max)
			require.NoError(t, err)
			assert.Len(t, rs, tc.want)
		})
	}
}

// TestExtract_Dedupe contrasts vertex-set and traversal identity on K4.
func TestExtract_Dedupe(t *testing.T) {
	g := build(t, builder.Complete(4))

	bySet, err := rings.Extract(g, 4)
	require.NoError(t, err)
	assert.Len(t, bySet, 5) // four triangles + one 4-vertex set

	byTrav, err := rings.Extract(g, 4, rings.WithDedupe(rings.ByTraversal))
	require.NoError(t, err)
	assert.Len(t, byTrav, 7) // four triangles + three Hamiltonian 4-cycles

	// Sorted by vertex tuple, the 4-set follows its prefix 0,1,2 and keeps
	// the smallest canonical traversal.
	assert.Equal(t, rings.Ring{0, 1, 2, 3}, bySet[1])
}

// TestExtract_Sorted anchors the output order by sorted vertex tuple.
func TestExtract_Sorted(t *testing.T) {
	rs, err := rings.Extract(build(t, builder.Complete(4)), 3)
	require.NoError(t, err)
	got := make([]string, len(rs))
	for i, r := range rs {
		got[i] = r.Key()
	}
	assert.Equal(t, []string{"0,1,2", "0,1,3", "0,2,3", "1,2,3"}, got)
}

// TestExtract_BoundProperty checks no ring exceeds the bound on random graphs.
func TestExtract_BoundProperty(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(seed)},
			builder.RandomSparse(10, 0.35))
		require.NoError(t, err)
		for _, max := range []int{3, 4, 5, 6} {
			rs, err := rings.Extract(g, max)
			require.NoError(t, err)
			for _, r := range rs {
				assert.LessOrEqual(t, r.Len(), max)
				assert.GreaterOrEqual(t, r.Len(), rings.MinRingSize)
				_, err := r.EdgeIndices(g)
				assert.NoError(t, err)
			}
		}
	}
}

// TestExtract_RelabelInvariance verifies the ring vertex sets commute with isomorphism.
func TestExtract_RelabelInvariance(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(seed)},
			builder.RandomSparse(9, 0.4))
		require.NoError(t, err)

		rng := rand.New(rand.NewPCG(seed, 99))
		perm := rng.Perm(g.VertexCount())
		h, err := core.Relabel(g, perm)
		require.NoError(t, err)

		orig, err := rings.Extract(g, 6)
		require.NoError(t, err)
		moved, err := rings.Extract(h, 6)
		require.NoError(t, err)

		inverse := make([]int, len(perm))
		for src, dst := range perm {
			inverse[dst] = src
		}
		assert.Equal(t, keys(orig, nil), keys(moved, inverse), "seed %d", seed)
	}
}

// keys maps each ring's vertex set through remap (identity when nil) and sorts the signatures.
func keys(rs []rings.Ring, remap []int) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		mapped := make(rings.Ring, len(r))
		for i, v := range r {
			if remap != nil {
				v = remap[v]
			}
			mapped[i] = v
		}
		out = append(out, mapped.Key())
	}
	sort.Strings(out)

	return out
}

// TestExtract_Cancelled verifies context cancellation between roots.
func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := rings.Extract(build(t, builder.Cycle(5)), 5, rings.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestRing_EdgeIndices resolves ring steps and reports foreign rings.
func TestRing_EdgeIndices(t *testing.T) {
	g := build(t, builder.Cycle(6))
	eids, err := rings.Ring{0, 1, 2, 3, 4, 5}.EdgeIndices(g)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, eids)

	_, err = rings.Ring{0, 2, 4}.EdgeIndices(g)
	assert.ErrorIs(t, err, rings.ErrUnknownEdge)
	_, err = rings.Ring{0, 1, 9}.EdgeIndices(g)
	assert.ErrorIs(t, err, rings.ErrUnknownEdge)
	_, err = rings.Ring{9, 0, 1}.EdgeIndices(g)
	assert.ErrorIs(t, err, rings.ErrUnknownVertex)

	assert.Equal(t, "0-1-2", rings.Ring{0, 1, 2}.String())
}
