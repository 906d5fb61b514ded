// SPDX-License-Identifier: MIT
// Package core defines the central Graph, Vertex, and Edge types,
// and provides thread-safe primitives for building, querying, and cloning graphs.
//
// This file declares Vertex, Edge, Graph, GraphOption, sentinel errors,
// and the NewGraph constructor.
//
// Errors:
//
//	ErrVertexNotFound      - referenced vertex index does not exist.
//	ErrEdgeNotFound        - referenced edge does not exist.
//	ErrLoopNotAllowed      - self-loop requested.
//	ErrMultiEdgeNotAllowed - parallel edge requested.
//	ErrFeatureDim          - feature vector length violates the configured dimension.
//	ErrFrozen              - mutation attempted on a frozen graph.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrFeatureDim indicates a feature vector of the wrong length.
	ErrFeatureDim = errors.New("core: feature dimension mismatch")

	// ErrFrozen indicates a mutation on a graph after Freeze().
	ErrFrozen = errors.New("core: graph is frozen")
)

// Vertex represents an atom of the molecular graph.
//
// Index is the dense position of the vertex in its Graph (0..V-1).
// Features is the label/feature vector copied in on insertion.
type Vertex struct {
	// Index is the stable identifier for this Vertex.
	Index int

	// Features is the vertex label encoding.
	Features []float64
}

// Edge represents an undirected bond between two vertices.
//
// From < To always holds; Index is the dense insertion position (0..E-1).
type Edge struct {
	// Index uniquely identifies this edge in the Graph.
	Index int

	// From is the smaller endpoint index.
	From int

	// To is the larger endpoint index.
	To int

	// Features is the bond label encoding (may be empty).
	Features []float64
}

// Other returns the endpoint of e opposite to v, or -1 if v is not an endpoint.
func (e Edge) Other(v int) int {
	switch v {
	case e.From:
		return e.To
	case e.To:
		return e.From
	default:
		return -1
	}
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithVertexFeatureDim enforces a fixed vertex feature length (0 = unchecked).
func WithVertexFeatureDim(d int) GraphOption {
	if d < 0 {
		panic("core: WithVertexFeatureDim(d<0)")
	}
	return func(g *Graph) { g.vertexDim = d }
}

// WithEdgeFeatureDim enforces a fixed edge feature length (0 = unchecked).
func WithEdgeFeatureDim(d int) GraphOption {
	if d < 0 {
		panic("core: WithEdgeFeatureDim(d<0)")
	}
	return func(g *Graph) { g.edgeDim = d }
}

// Graph is the core in-memory molecular graph.
//
// mu protects every field below it; frozen is flipped once by Freeze.
type Graph struct {
	mu sync.RWMutex // guards arenas and adjacency

	// Configuration
	vertexDim int // required vertex feature length, 0 = any
	edgeDim   int // required edge feature length, 0 = any

	frozen bool // set by Freeze; all mutations fail afterwards

	// Storage
	vertices []*Vertex // arena by vertex index
	edges    []*Edge   // arena by edge index

	// adjacency[u][v] = edge index, mirrored for both endpoints.
	adjacency []map[int]int
}

// NewGraph creates an empty Graph with the given options.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	// Apply options
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GraphStats is a read-only snapshot returned by Graph.Stats.
type GraphStats struct {
	VertexCount      int
	EdgeCount        int
	VertexFeatureDim int
	EdgeFeatureDim   int
	MaxDegree        int
	Frozen           bool
}
