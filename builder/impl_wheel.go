// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// impl_wheel.go — implementation of Wheel(n) constructor.
//
// Contract:
//   • n ≥ 4 (else ErrTooFewVertices): a hub plus a rim cycle C_{n-1}.
//   • Emission order: rim edges first (as Cycle), then spokes hub—rim_i.
//   • The hub is the last emitted vertex.

package builder

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

const (
	methodWheel   = "Wheel"
	minWheelNodes = 4
)

// Wheel returns a Constructor that builds the wheel graph W_n.
func Wheel(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minWheelNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodWheel, n, minWheelNodes, ErrTooFewVertices)
		}

		rim := n - 1
		base, err := addVertices(g, cfg, methodWheel, n)
		if err != nil {
			return err
		}
		hub := base + rim

		k := 0 // running edge counter for feature policies
		for i := 0; i < rim; i++ {
			if err = addEdge(g, cfg, methodWheel, k, base+i, base+(i+1)%rim); err != nil {
				return err
			}
			k++
		}
		for i := 0; i < rim; i++ {
			if err = addEdge(g, cfg, methodWheel, k, hub, base+i); err != nil {
				return err
			}
			k++
		}

		return nil
	}
}
