// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/HasEdge/EdgeBetween/Edge/Edges/EdgeCount.
// Determinism:
//   - Edge indices are dense and assigned in insertion order.
//   - Edges() returns edges ordered by index.
// Concurrency:
//   - Mutations under mu write lock, queries under mu read lock.

package core

import "fmt"

// AddEdge creates a new undirected edge between u and v and returns its index.
//
// Steps:
//  1. Reject a frozen graph (ErrFrozen).
//  2. Validate endpoints (ErrVertexNotFound) and u != v (ErrLoopNotAllowed).
//  3. Reject a second edge for the same pair (ErrMultiEdgeNotAllowed).
//  4. Validate the feature length against edgeDim (ErrFeatureDim).
//  5. Store the edge with From < To and mirror it in both adjacency buckets.
//
// Complexity: O(1) amortized (slice append + two map writes).
func (g *Graph) AddEdge(u, v int, features ...float64) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// 1) Lifecycle guard
	if g.frozen {
		return -1, ErrFrozen
	}
	// 2) Endpoint validation
	if u < 0 || u >= len(g.vertices) {
		return -1, fmt.Errorf("core: AddEdge(%d,%d): endpoint %d: %w", u, v, u, ErrVertexNotFound)
	}
	if v < 0 || v >= len(g.vertices) {
		return -1, fmt.Errorf("core: AddEdge(%d,%d): endpoint %d: %w", u, v, v, ErrVertexNotFound)
	}
	if u == v {
		return -1, fmt.Errorf("core: AddEdge(%d,%d): %w", u, v, ErrLoopNotAllowed)
	}
	// 3) Simple-graph guard
	if _, exists := g.adjacency[u][v]; exists {
		return -1, fmt.Errorf("core: AddEdge(%d,%d): %w", u, v, ErrMultiEdgeNotAllowed)
	}
	// 4) Dimension policy
	if g.edgeDim > 0 && len(features) != g.edgeDim {
		return -1, fmt.Errorf("core: AddEdge(%d,%d): got %d features, want %d: %w", u, v, len(features), g.edgeDim, ErrFeatureDim)
	}

	// 5) Normalise endpoints and link adjacency in both directions.
	from, to := u, v
	if from > to {
		from, to = to, from
	}
	idx := len(g.edges)
	g.edges = append(g.edges, &Edge{Index: idx, From: from, To: to, Features: cloneFeatures(features)})
	g.adjacency[from][to] = idx
	g.adjacency[to][from] = idx

	return idx, nil
}

// HasEdge reports whether u and v are adjacent. Out-of-range indices yield false.
//
// Complexity: O(1).
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.EdgeBetween(u, v)

	return ok
}

// EdgeBetween returns the index of the edge joining u and v, if any.
//
// Complexity: O(1).
func (g *Graph) EdgeBetween(u, v int) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if u < 0 || u >= len(g.adjacency) {
		return -1, false
	}
	idx, ok := g.adjacency[u][v]
	if !ok {
		return -1, false
	}

	return idx, true
}

// Edge returns a copy of the edge at idx.
//
// Errors:
//   - ErrEdgeNotFound if idx is out of range.
func (g *Graph) Edge(idx int) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if idx < 0 || idx >= len(g.edges) {
		return Edge{}, fmt.Errorf("core: Edge(%d): %w", idx, ErrEdgeNotFound)
	}
	e := g.edges[idx]

	return Edge{Index: e.Index, From: e.From, To: e.To, Features: cloneFeatures(e.Features)}, nil
}

// Edges returns copies of all edges ordered by index.
//
// Complexity: O(E + total feature length).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = Edge{Index: e.Index, From: e.From, To: e.To, Features: cloneFeatures(e.Features)}
	}

	return out
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}
