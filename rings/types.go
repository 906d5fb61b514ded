// SPDX-License-Identifier: MIT
// Package rings defines Ring, extraction options and sentinel errors.

package rings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/cellsweep/core"
)

// MinRingSize is the smallest simple cycle in a simple graph.
const MinRingSize = 3

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to Extract.
	ErrGraphNil = errors.New("rings: graph is nil")

	// ErrUnknownEdge indicates a ring step with no matching graph edge.
	ErrUnknownEdge = errors.New("rings: ring step has no graph edge")

	// ErrUnknownVertex indicates a ring vertex outside the graph.
	ErrUnknownVertex = errors.New("rings: ring vertex not in graph")
)

// Ring is a simple cycle stored as an open vertex sequence in canonical form:
// the lexicographically minimal rotation of either traversal direction.
// The closing step Ring[len-1]→Ring[0] is implicit.
type Ring []int

// Len returns the number of vertices (= number of edges) of the ring.
func (r Ring) Len() int { return len(r) }

// VertexSet returns the ring's vertices sorted ascending (a fresh slice).
func (r Ring) VertexSet() []int {
	out := append([]int(nil), r...)
	sort.Ints(out)

	return out
}

// Key returns the vertex-set signature used for ByVertexSet deduplication.
func (r Ring) Key() string {
	return joinSig(r.VertexSet())
}

// String renders the canonical traversal, e.g. "0-1-2".
func (r Ring) String() string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, "-")
}

// Steps returns the consecutive vertex pairs of the ring, closing pair last.
func (r Ring) Steps() [][2]int {
	out := make([][2]int, len(r))
	for i := range r {
		out[i] = [2]int{r[i], r[(i+1)%len(r)]}
	}

	return out
}

// EdgeIndices resolves every ring step to its edge index in g, in step order.
// A ring vertex outside g yields ErrUnknownVertex; a missing adjacency yields
// ErrUnknownEdge. Both indicate that the ring was not extracted from g.
func (r Ring) EdgeIndices(g *core.Graph) ([]int, error) {
	out := make([]int, 0, len(r))
	for _, st := range r.Steps() {
		if !g.HasVertex(st[0]) {
			return nil, fmt.Errorf("rings: ring %s: vertex %d: %w", r, st[0], ErrUnknownVertex)
		}
		eid, ok := g.EdgeBetween(st[0], st[1])
		if !ok {
			return nil, fmt.Errorf("rings: ring %s: step %d—%d: %w", r, st[0], st[1], ErrUnknownEdge)
		}
		out = append(out, eid)
	}

	return out, nil
}

// Dedupe selects the ring identity used to drop duplicates.
type Dedupe int

const (
	// ByVertexSet treats rings with identical vertex sets as one ring.
	ByVertexSet Dedupe = iota
	// ByTraversal keeps every distinct cycle up to rotation and reflection.
	ByTraversal
)

// Option configures optional behavior of Extract.
type Option func(*Options)

// Options holds configurable parameters for ring extraction.
type Options struct {
	// Ctx allows cancellation; it is checked once per root vertex.
	Ctx context.Context

	// Dedupe selects the ring identity; defaults to ByVertexSet.
	Dedupe Dedupe
}

// DefaultOptions returns Options with a background context and ByVertexSet.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Dedupe: ByVertexSet,
	}
}

// WithContext sets the cancellation context. A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithDedupe selects the deduplication identity.
func WithDedupe(d Dedupe) Option {
	return func(o *Options) {
		o.Dedupe = d
	}
}
