// File: methods_vertices.go
// Role: Vertex lifecycle & queries.
//
// Determinism:
//   - Vertex indices are assigned densely in insertion order.
//   - Vertices() returns vertices ordered by index.
//
// Concurrency:
//   - Vertex arena and adjacency bootstrap under mu (write lock).

package core

import "fmt"

// AddVertex appends a new vertex carrying a copy of features and returns its index.
//
// Implementation:
//   - Stage 1: Reject mutation on a frozen graph (ErrFrozen).
//   - Stage 2: Validate the feature length against vertexDim (ErrFeatureDim).
//   - Stage 3: Register the vertex and bootstrap its adjacency bucket.
//
// Complexity:
//   - Time O(len(features)) amortized, Space O(len(features)).
func (g *Graph) AddVertex(features ...float64) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Stage 1: frozen graphs are read-only.
	if g.frozen {
		return -1, ErrFrozen
	}
	// Stage 2: dimension policy.
	if g.vertexDim > 0 && len(features) != g.vertexDim {
		return -1, fmt.Errorf("core: AddVertex: got %d features, want %d: %w", len(features), g.vertexDim, ErrFeatureDim)
	}

	// Stage 3: allocate the record; features are copied so callers can reuse buffers.
	idx := len(g.vertices)
	g.vertices = append(g.vertices, &Vertex{Index: idx, Features: cloneFeatures(features)})
	g.adjacency = append(g.adjacency, make(map[int]int))

	return idx, nil
}

// HasVertex reports whether idx addresses an existing vertex.
//
// Complexity: O(1).
func (g *Graph) HasVertex(idx int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return idx >= 0 && idx < len(g.vertices)
}

// Vertex returns a copy of the vertex at idx.
//
// Errors:
//   - ErrVertexNotFound if idx is out of range.
func (g *Graph) Vertex(idx int) (Vertex, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if idx < 0 || idx >= len(g.vertices) {
		return Vertex{}, fmt.Errorf("core: Vertex(%d): %w", idx, ErrVertexNotFound)
	}
	v := g.vertices[idx]

	return Vertex{Index: v.Index, Features: cloneFeatures(v.Features)}, nil
}

// Vertices returns copies of all vertices ordered by index.
//
// Complexity: O(V + total feature length).
func (g *Graph) Vertices() []Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Vertex, len(g.vertices))
	for i, v := range g.vertices {
		out[i] = Vertex{Index: v.Index, Features: cloneFeatures(v.Features)}
	}

	return out
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertices)
}

// Degree returns the number of edges incident to idx.
//
// Errors:
//   - ErrVertexNotFound if idx is out of range.
func (g *Graph) Degree(idx int) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if idx < 0 || idx >= len(g.vertices) {
		return 0, fmt.Errorf("core: Degree(%d): %w", idx, ErrVertexNotFound)
	}

	return len(g.adjacency[idx]), nil
}

// cloneFeatures copies a feature vector; nil and empty inputs both yield nil.
func cloneFeatures(f []float64) []float64 {
	if len(f) == 0 {
		return nil
	}
	out := make([]float64, len(f))
	copy(out, f)

	return out
}
