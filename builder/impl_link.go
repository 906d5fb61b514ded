// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// impl_link.go — Link(u, v) joins two already-built vertices.
//
// Contract:
//   • Both endpoints must exist; the edge must be new (core sentinels apply).
//   • Used to bridge the disjoint components produced by composed constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

const methodLink = "Link"

// Link returns a Constructor adding the single edge u—v.
func Link(u, v int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if !g.HasVertex(u) || !g.HasVertex(v) {
			return fmt.Errorf("%s: %d—%d: %w: %w", methodLink, u, v, core.ErrVertexNotFound, ErrConstructFailed)
		}

		return addEdge(g, cfg, methodLink, 0, u, v)
	}
}
