// Package core provides the thread-safe in-memory molecular Graph that every
// other cellsweep package consumes.
//
// The Graph G = (V,E) is an undirected simple graph whose vertices and edges
// are addressed by dense integer indices (arena + index):
//
//   - Vertices are numbered 0..V-1 in insertion order.
//   - Edges are numbered 0..E-1 in insertion order; endpoints are stored
//     normalised so that From < To.
//   - Every vertex and edge carries a feature vector ([]float64), typically
//     a one-hot or integer label encoding of atom and bond types.
//   - Self-loops and parallel edges are always rejected (molecules never have them).
//
// Graphs are mutable while loading and immutable afterwards: Freeze() turns
// every mutation into ErrFrozen so that frozen graphs can be shared across
// preprocessing workers and training runs without copying.
//
// Configuration Options (GraphOption):
//
//	– WithVertexFeatureDim(d)
//	    Enforces len(features)==d on AddVertex (0 disables the check).
//
//	– WithEdgeFeatureDim(d)
//	    Enforces len(features)==d on AddEdge (0 disables the check).
//
// Core Methods:
//
//	AddVertex(features ...float64) (int, error)       // O(1) amortized
//	AddEdge(u, v int, features ...float64) (int, error) // O(1) amortized
//	EdgeBetween(u, v int) (int, bool)                  // O(1)
//	Neighbors(u int) ([]int, error)                    // O(deg·log deg), sorted
//	AdjacencyList() [][]int                            // O(V+E), sorted snapshot
//	Freeze(), Frozen(), Clone(), Stats()
//
// Views (view.go):
//
//	Relabel(g, perm) returns an isomorphic copy with vertex i mapped to perm[i].
//
// Concurrency:
//
//	A single sync.RWMutex (mu) guards the vertex arena, the edge arena and the
//	adjacency maps. Every accessor returns copies, never internal slices.
package core
