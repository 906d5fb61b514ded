// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// impl_path.go - implementation of Path(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Adds n vertices after the existing ones, in ascending order.
//   - Emits edges (i-1)—i for i=1..n-1 in stable increasing order.
//
// Complexity:
//   - Time: O(n) vertices + O(n-1) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

// File-local constants for method tagging and parameter minima.
const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that builds a simple path P_n.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		// Validate parameter domain early.
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}

		base, err := addVertices(g, cfg, methodPath, n)
		if err != nil {
			return err
		}
		// Emit path edges base→base+1→...→base+n-1 in stable order.
		for i := 1; i < n; i++ {
			if err = addEdge(g, cfg, methodPath, i-1, base+i-1, base+i); err != nil {
				return err
			}
		}

		return nil
	}
}
