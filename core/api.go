// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Thin, deterministic public facade: lifecycle flags and read-only getters.
// Policy:
//   - No algorithms or hidden state here.
//   - Every exported function documents complexity and locking strategy.

package core

// Freeze marks the graph immutable. Subsequent AddVertex/AddEdge return ErrFrozen.
// Freezing is idempotent and cannot be undone; use Clone for a mutable copy.
//
// Complexity: O(1). Takes the write lock once.
func (g *Graph) Freeze() {
	g.mu.Lock()
	g.frozen = true
	g.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
//
// Complexity: O(1) under read lock.
func (g *Graph) Frozen() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.frozen
}

// VertexFeatureDim reports the enforced vertex feature length (0 = unchecked).
func (g *Graph) VertexFeatureDim() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.vertexDim
}

// EdgeFeatureDim reports the enforced edge feature length (0 = unchecked).
func (g *Graph) EdgeFeatureDim() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeDim
}

// Stats returns a compact snapshot of the graph's size and policy.
//
// Determinism:
//   - Deterministic for a fixed graph state.
//
// Complexity:
//   - Time O(V), Space O(1) plus the returned struct.
func (g *Graph) Stats() *GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	stats := GraphStats{
		VertexCount:      len(g.vertices),
		EdgeCount:        len(g.edges),
		VertexFeatureDim: g.vertexDim,
		EdgeFeatureDim:   g.edgeDim,
		Frozen:           g.frozen,
	}
	// Single pass for the maximum degree.
	for _, nbrs := range g.adjacency {
		if len(nbrs) > stats.MaxDegree {
			stats.MaxDegree = len(nbrs)
		}
	}

	return &stats
}
