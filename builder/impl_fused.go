// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// impl_fused.go — implementation of FusedRings(sizes...) constructor.
//
// Contract:
//   • len(sizes) ≥ 1 and every size ≥ 3 (else ErrTooFewVertices).
//   • Ring 0 is a plain cycle. Ring k>0 shares the last rim edge of ring k-1
//     and adds sizes[k]-2 new vertices, producing ortho-fused systems such as
//     naphthalene (6,6) or anthracene (6,6,6).
//   • The fused system also contains the perimeter cycles (e.g. a 10-ring for
//     naphthalene); the extractor's bound decides whether they survive.
//
// Complexity:
//   • Time: O(Σ sizes).

package builder

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

const methodFusedRings = "FusedRings"

// FusedRings returns a Constructor building a chain of edge-fused rings.
func FusedRings(sizes ...int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if len(sizes) == 0 {
			return fmt.Errorf("%s: no ring sizes: %w", methodFusedRings, ErrTooFewVertices)
		}
		for i, s := range sizes {
			if s < minCycleNodes {
				return fmt.Errorf("%s: sizes[%d]=%d < min=%d: %w", methodFusedRings, i, s, minCycleNodes, ErrTooFewVertices)
			}
		}

		// Ring 0: a plain cycle; remember its closing edge (a,b) as the fusion site.
		base, err := addVertices(g, cfg, methodFusedRings, sizes[0])
		if err != nil {
			return err
		}
		k := 0
		for i := 0; i < sizes[0]; i++ {
			if err = addEdge(g, cfg, methodFusedRings, k, base+i, base+(i+1)%sizes[0]); err != nil {
				return err
			}
			k++
		}
		a, b := base+sizes[0]-2, base+sizes[0]-1

		// Ring r: path a → new_0 → ... → new_{m-1} → b closes over the shared edge a—b.
		for r := 1; r < len(sizes); r++ {
			m := sizes[r] - 2
			first, err := addVertices(g, cfg, methodFusedRings, m)
			if err != nil {
				return err
			}
			prev := a
			for i := 0; i < m; i++ {
				if err = addEdge(g, cfg, methodFusedRings, k, prev, first+i); err != nil {
					return err
				}
				k++
				prev = first + i
			}
			if err = addEdge(g, cfg, methodFusedRings, k, prev, b); err != nil {
				return err
			}
			k++
			// The rim edge opposite to the previous fusion becomes the next site.
			a = first + m - 1
		}

		return nil
	}
}
