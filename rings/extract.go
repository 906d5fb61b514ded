// SPDX-License-Identifier: MIT
// Package rings implements bounded simple-cycle enumeration.

package rings

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cellsweep/core"
)

// Extract returns the distinct simple cycles of g with 3..maxSize vertices,
// canonicalised and sorted (see package doc).
//
// Behavior:
//   - maxSize < MinRingSize or a ring-free graph ⇒ (empty, nil), not an error.
//   - nil graph ⇒ ErrGraphNil.
//   - A cancelled Options.Ctx aborts between root vertices with ctx.Err().
//
// Determinism:
//   - Roots are visited in ascending order and neighbors come sorted from
//     core.Graph.AdjacencyList, so the output is identical across calls.
func Extract(g *core.Graph, maxSize int, opts ...Option) ([]Ring, error) {
	// 1) Nil graph is a caller error; everything else degrades to "no rings".
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if maxSize < MinRingSize {
		return []Ring{}, nil
	}

	// 2) Snapshot adjacency once; the search then runs without locking.
	adj := g.AdjacencyList()
	s := &search{
		adj:     adj,
		maxSize: maxSize,
		onPath:  make([]bool, len(adj)),
		path:    make([]int, 0, maxSize),
		dedupe:  o.Dedupe,
		kept:    make(map[string]Ring),
	}

	// 3) Root the search at every vertex; cycles are reported only from their minimum.
	for root := range adj {
		if err := o.Ctx.Err(); err != nil {
			return nil, fmt.Errorf("rings: Extract: root %d: %w", root, err)
		}
		s.root = root
		s.path = append(s.path[:0], root)
		s.onPath[root] = true
		s.grow(root)
		s.onPath[root] = false
	}

	// 4) Deterministic output order.
	out := make([]Ring, 0, len(s.kept))
	for _, r := range s.kept {
		out = append(out, r)
	}
	sortRings(out)

	return out, nil
}

// search carries the mutable state of one Extract call.
type search struct {
	adj     [][]int
	maxSize int
	root    int
	onPath  []bool
	path    []int
	dedupe  Dedupe
	kept    map[string]Ring
}

// grow extends the current path from u. Only vertices larger than the root
// are entered, and the path never exceeds maxSize vertices.
func (s *search) grow(u int) {
	for _, nbr := range s.adj[u] {
		// Closing step back to the root: a cycle when the path has ≥3 vertices.
		if nbr == s.root {
			if len(s.path) >= MinRingSize {
				s.record()
			}
			continue
		}
		// Prune: smaller vertices belong to other roots; on-path vertices break simplicity.
		if nbr < s.root || s.onPath[nbr] {
			continue
		}
		// Prune: adding nbr would already exceed the bound.
		if len(s.path) >= s.maxSize {
			continue
		}
		s.path = append(s.path, nbr)
		s.onPath[nbr] = true
		s.grow(nbr)
		s.onPath[nbr] = false
		s.path = s.path[:len(s.path)-1]
	}
}

// record canonicalises the current path and keeps it if its identity is new,
// or if it beats the kept representative of the same vertex set.
func (s *search) record() {
	ring := canonical(s.path)

	var key string
	if s.dedupe == ByTraversal {
		key = joinSig(ring)
	} else {
		key = ring.Key()
	}
	if prev, ok := s.kept[key]; ok && compare(prev, ring) <= 0 {
		return
	}
	s.kept[key] = ring
}

// sortRings orders rings by sorted vertex tuple, then canonical traversal.
func sortRings(rs []Ring) {
	sort.Slice(rs, func(i, j int) bool {
		if c := compare(rs[i].VertexSet(), rs[j].VertexSet()); c != 0 {
			return c < 0
		}

		return compare(rs[i], rs[j]) < 0
	})
}
