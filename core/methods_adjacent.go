// File: methods_adjacent.go
// Role: Neighborhood queries.
//
// Determinism:
//   - Neighbors() and AdjacencyList() return neighbor indices sorted ascending,
//     so traversal order never depends on map iteration.

package core

import (
	"fmt"
	"sort"
)

// Neighbors returns the sorted neighbor indices of u.
//
// Errors:
//   - ErrVertexNotFound if u is out of range.
//
// Complexity: O(deg(u)·log deg(u)).
func (g *Graph) Neighbors(u int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if u < 0 || u >= len(g.adjacency) {
		return nil, fmt.Errorf("core: Neighbors(%d): %w", u, ErrVertexNotFound)
	}

	return sortedKeys(g.adjacency[u]), nil
}

// AdjacencyList returns a consistent snapshot of all neighbor lists, indexed by vertex.
// Algorithms that walk the graph many times (ring search) take this once and
// then run lock-free.
//
// Complexity: O(V + E·log Δ).
func (g *Graph) AdjacencyList() [][]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([][]int, len(g.adjacency))
	for u, nbrs := range g.adjacency {
		out[u] = sortedKeys(nbrs)
	}

	return out
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}
