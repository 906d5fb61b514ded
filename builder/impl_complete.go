// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// impl_complete.go — implementation of Complete(n) constructor.
//
// Contract:
//   • n ≥ 1 (else ErrTooFewVertices).
//   • Stable edge order: for i asc, j>i asc.
//
// Complexity:
//   • Time: O(n) vertices + O(n²) edges. Complete graphs are the worst case for
//     ring enumeration; keep n small in tests.

package builder

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete returns a Constructor that builds the complete simple graph K_n.
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}

		base, err := addVertices(g, cfg, methodComplete, n)
		if err != nil {
			return err
		}
		k := 0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err = addEdge(g, cfg, methodComplete, k, base+i, base+j); err != nil {
					return err
				}
				k++
			}
		}

		return nil
	}
}
