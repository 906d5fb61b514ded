// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// impl_grid.go — implementation of Grid(rows, cols) constructor.
//
// Contract:
//   • rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//   • Vertex r,c is base + r*cols + c (row-major).
//   • Stable edge order: for each (r,c) emit Right then Bottom if present.
//   • Every unit square is a 4-ring; larger rings exist but are bounded by
//     the extractor's max ring size.

package builder

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that builds a rows×cols orthogonal grid.
func Grid(rows, cols int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		// 1) Validate parameters early (fail fast; no partial work).
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}

		// 2) Add all vertices in deterministic row-major order.
		base, err := addVertices(g, cfg, methodGrid, rows*cols)
		if err != nil {
			return err
		}
		at := func(r, c int) int { return base + r*cols + c }

		// 3) Emit edges: for each (r,c), connect to Right and Bottom neighbors if they exist.
		k := 0
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err = addEdge(g, cfg, methodGrid, k, at(r, c), at(r, c+1)); err != nil {
						return err
					}
					k++
				}
				if r+1 < rows {
					if err = addEdge(g, cfg, methodGrid, k, at(r, c), at(r+1, c)); err != nil {
						return err
					}
					k++
				}
			}
		}

		return nil
	}
}
