// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// impl_star.go — implementation of Star(n) constructor.
//
// Contract:
//   • n ≥ 2 (else ErrTooFewVertices).
//   • The first emitted vertex is the center; leaves follow in ascending order.
//   • Edges center—leaf_i in leaf order. Stars are always ring-free.

package builder

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor that builds a star with one center and n-1 leaves.
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}

		center, err := addVertices(g, cfg, methodStar, n)
		if err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err = addEdge(g, cfg, methodStar, i-1, center, center+i); err != nil {
				return err
			}
		}

		return nil
	}
}
