// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// impl_cycle.go — implementation of Cycle(n) constructor.
//
// Contract:
//   • n ≥ 3 (else ErrTooFewVertices).
//   • Emits edges in stable order i—(i+1)%n for i=0..n-1.
//
// Complexity:
//   • Time: O(n) vertices + O(n) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds an n-vertex simple cycle C_n.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		// Validate parameter domain early (fail fast, no work on invalid input).
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}

		base, err := addVertices(g, cfg, methodCycle, n)
		if err != nil {
			return err
		}
		// For i==n-1, connect back to base to close the ring.
		for i := 0; i < n; i++ {
			if err = addEdge(g, cfg, methodCycle, i, base+i, base+(i+1)%n); err != nil {
				return err
			}
		}

		return nil
	}
}
