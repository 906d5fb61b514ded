// File: view.go
// Role: Non-mutating graph views (copying topology under a vertex relabeling).
// Determinism:
//   - Relabel inserts vertices by new index and edges by source edge index.

package core

import (
	"errors"
	"fmt"
)

// ErrBadPermutation indicates that a relabeling is not a permutation of 0..V-1.
var ErrBadPermutation = errors.New("core: relabeling is not a permutation")

// Relabel returns a new graph isomorphic to g in which source vertex i becomes
// vertex perm[i]. Features travel with their vertices and edges; edge indices
// are preserved. The input graph is not mutated.
//
// Complexity: O(V + E). Concurrency: read locks only on source.
func Relabel(g *Graph, perm []int) (*Graph, error) {
	verts := g.Vertices()
	if len(perm) != len(verts) {
		return nil, fmt.Errorf("core: Relabel: len(perm)=%d, |V|=%d: %w", len(perm), len(verts), ErrBadPermutation)
	}
	// Invert the permutation, rejecting duplicates and out-of-range targets.
	inverse := make([]int, len(perm))
	for i := range inverse {
		inverse[i] = -1
	}
	for src, dst := range perm {
		if dst < 0 || dst >= len(perm) || inverse[dst] != -1 {
			return nil, fmt.Errorf("core: Relabel: perm[%d]=%d: %w", src, dst, ErrBadPermutation)
		}
		inverse[dst] = src
	}

	out := NewGraph(WithVertexFeatureDim(g.VertexFeatureDim()), WithEdgeFeatureDim(g.EdgeFeatureDim()))
	for dst := range inverse {
		if _, err := out.AddVertex(verts[inverse[dst]].Features...); err != nil {
			return nil, fmt.Errorf("core: Relabel: %w", err)
		}
	}
	for _, e := range g.Edges() {
		if _, err := out.AddEdge(perm[e.From], perm[e.To], e.Features...); err != nil {
			return nil, fmt.Errorf("core: Relabel: %w", err)
		}
	}

	return out, nil
}
