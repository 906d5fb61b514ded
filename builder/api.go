// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Constructors append vertices after the existing ones (base offset = g.VertexCount()).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Constructors MUST validate parameters early, return
// sentinel errors (no panics) and preserve determinism.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped with the context "BuildGraph: %w" and
// returned immediately; no partial cleanup is attempted.
//
// Complexity:
//   - Resolving options: O(len(bopts)).
//   - Applying K constructors: Σ cost of each constructor.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		// Reject a nil constructor to avoid a panic later (programmer error).
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// addVertices inserts n vertices with features from cfg and returns the index
// of the first one. Shared by every topology constructor.
func addVertices(g *core.Graph, cfg builderConfig, method string, n int) (int, error) {
	base := g.VertexCount()
	for i := 0; i < n; i++ {
		if _, err := g.AddVertex(cfg.vertexFeatures(i)...); err != nil {
			return 0, fmt.Errorf("%s: AddVertex(#%d): %w", method, i, err)
		}
	}

	return base, nil
}

// addEdge inserts u—v with the k-th edge features from cfg.
func addEdge(g *core.Graph, cfg builderConfig, method string, k, u, v int) error {
	if _, err := g.AddEdge(u, v, cfg.edgeFeatures(k)...); err != nil {
		return fmt.Errorf("%s: AddEdge(%d—%d): %w", method, u, v, err)
	}

	return nil
}
