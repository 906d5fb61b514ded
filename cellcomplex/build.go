// SPDX-License-Identifier: MIT
// Package cellcomplex implements graph → complex lifting.

package cellcomplex

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/cellsweep/core"
	"github.com/katalvlaran/cellsweep/rings"
)

// Build lifts g and the given rings into a Complex.
//
// Steps:
//  1. 0-cells from vertices, 1-cells from edges (Boundary = endpoints).
//  2. 2-cells from rings when MaxDim ≥ 2; rings longer than MaxRingSize
//     are discarded and rings repeating a vertex set are kept once.
//  3. Features: vertices copied, edges copied or pooled, rings pooled.
//  4. Reindex derives coboundaries and adjacency.
//
// Errors:
//   - nil graph ⇒ ErrDataIntegrity.
//   - invalid options ⇒ ErrInvalidOption.
//   - ring with a foreign vertex/edge, a repeated vertex, or shorter than 3
//     ⇒ ErrDataIntegrity wrapping the rings package cause.
//   - features of unequal length within one pooled support ⇒ ErrDataIntegrity.
//
// Complexity: O(V + E + Σ|ring|·log|ring|) plus adjacency derivation.
func Build(g *core.Graph, rs []rings.Ring, opts ...Option) (*Complex, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("cellcomplex: Build: nil graph: %w", ErrDataIntegrity)
	}

	cx := &Complex{
		MaxDim:          o.MaxDim,
		Cells:           make([][]Cell, o.MaxDim+1),
		UseCoboundaries: o.UseCoboundaries,
	}

	// 1) Vertices.
	verts := g.Vertices()
	cx.Cells[DimVertex] = make([]Cell, len(verts))
	for i, v := range verts {
		cx.Cells[DimVertex][i] = Cell{
			Dim:      DimVertex,
			Index:    i,
			Vertices: []int{i},
			Features: v.Features,
		}
	}

	// 2) Edges.
	if o.MaxDim >= DimEdge {
		edges := g.Edges()
		cx.Cells[DimEdge] = make([]Cell, len(edges))
		for i, e := range edges {
			feat := e.Features
			if !o.UseEdgeFeatures || len(feat) == 0 {
				var err error
				feat, err = pool(o.Init, verts[e.From].Features, verts[e.To].Features)
				if err != nil {
					return nil, fmt.Errorf("cellcomplex: Build: edge %d: %w", i, err)
				}
			}
			cx.Cells[DimEdge][i] = Cell{
				Dim:      DimEdge,
				Index:    i,
				Vertices: []int{e.From, e.To},
				Boundary: []int{e.From, e.To},
				Features: feat,
			}
		}
	}

	// 3) Rings.
	if o.MaxDim >= DimRing {
		if err := cx.addRings(g, verts, rs, o); err != nil {
			return nil, err
		}
	}

	// 4) Derived structure.
	cx.reindex(o.IncludeDownAdj)

	return cx, nil
}

// addRings appends one 2-cell per accepted ring.
func (cx *Complex) addRings(g *core.Graph, verts []core.Vertex, rs []rings.Ring, o Options) error {
	seen := make(map[string]struct{}, len(rs))
	out := make([]Cell, 0, len(rs))
	for ri, r := range rs {
		if o.MaxRingSize > 0 && r.Len() > o.MaxRingSize {
			continue
		}
		if r.Len() < rings.MinRingSize {
			return fmt.Errorf("cellcomplex: Build: ring %d (%s): length %d: %w", ri, r, r.Len(), ErrDataIntegrity)
		}
		if v, ok := repeated(r.VertexSet()); ok {
			return fmt.Errorf("cellcomplex: Build: ring %d (%s): vertex %d repeats: %w", ri, r, v, ErrDataIntegrity)
		}
		eids, err := r.EdgeIndices(g)
		if err != nil {
			return fmt.Errorf("cellcomplex: Build: ring %d: %w", ri, errors.Join(ErrDataIntegrity, err))
		}
		key := r.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		support := r.VertexSet()
		members := make([][]float64, len(support))
		for i, v := range support {
			members[i] = verts[v].Features
		}
		feat, err := pool(o.Init, members...)
		if err != nil {
			return fmt.Errorf("cellcomplex: Build: ring %d (%s): %w", ri, r, err)
		}

		sort.Ints(eids)
		cell := Cell{
			Dim:      DimRing,
			Index:    len(out),
			Vertices: support,
			Boundary: eids,
			Features: feat,
		}
		if o.UseEdgeFeatures && o.UseCoboundaries {
			bf := make([][]float64, len(eids))
			for i, eid := range eids {
				bf[i] = cx.Cells[DimEdge][eid].Features
			}
			if cell.CoboundaryFeatures, err = pool(o.Init, bf...); err != nil {
				return fmt.Errorf("cellcomplex: Build: ring %d (%s): boundary features: %w", ri, r, err)
			}
		}
		out = append(out, cell)
	}
	cx.Cells[DimRing] = out

	return nil
}

// pool aggregates equally long feature vectors by m. All-empty input yields nil.
func pool(m InitMethod, members ...[]float64) ([]float64, error) {
	if len(members) == 0 || len(members[0]) == 0 {
		for _, f := range members {
			if len(f) != 0 {
				return nil, fmt.Errorf("cellcomplex: feature length mismatch: %w", ErrDataIntegrity)
			}
		}

		return nil, nil
	}
	dim := len(members[0])
	out := make([]float64, dim)
	for _, f := range members {
		if len(f) != dim {
			return nil, fmt.Errorf("cellcomplex: feature length %d, want %d: %w", len(f), dim, ErrDataIntegrity)
		}
		for k, x := range f {
			out[k] += x
		}
	}
	if m == InitMean {
		n := float64(len(members))
		for k := range out {
			out[k] /= n
		}
	}

	return out, nil
}

// repeated reports the first value occurring twice in the sorted xs.
func repeated(sorted []int) (int, bool) {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return sorted[i], true
		}
	}

	return 0, false
}
