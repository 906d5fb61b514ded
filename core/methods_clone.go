// File: methods_clone.go
// Role: Cloning graph instances.
// Determinism:
//   - Clone preserves vertex and edge indices exactly.
// Concurrency:
//   - Read lock on the source only; the clone is a fresh, unfrozen graph.

package core

// Clone returns a deep, mutable copy of the Graph: options, vertices, edges, adjacency.
// The clone is never frozen, even when the source is.
//
// Complexity: O(V + E + total feature length).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := NewGraph(WithVertexFeatureDim(g.vertexDim), WithEdgeFeatureDim(g.edgeDim))
	clone.vertices = make([]*Vertex, len(g.vertices))
	clone.adjacency = make([]map[int]int, len(g.adjacency))
	for i, v := range g.vertices {
		clone.vertices[i] = &Vertex{Index: v.Index, Features: cloneFeatures(v.Features)}
		clone.adjacency[i] = make(map[int]int, len(g.adjacency[i]))
		for nbr, eid := range g.adjacency[i] {
			clone.adjacency[i][nbr] = eid
		}
	}
	clone.edges = make([]*Edge, len(g.edges))
	for i, e := range g.edges {
		clone.edges[i] = &Edge{Index: e.Index, From: e.From, To: e.To, Features: cloneFeatures(e.Features)}
	}

	return clone
}
