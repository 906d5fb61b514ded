// SPDX-License-Identifier: MIT
// Package dataset implements the synthetic molecule generator.

package dataset

import (
	"context"
	"fmt"

	"github.com/katalvlaran/cellsweep/builder"
	"github.com/katalvlaran/cellsweep/core"
)

// Ring weights of the SyntheticMolecules target.
const (
	pentagonWeight = 1.0
	hexagonWeight  = 1.5
	atomWeight     = 0.05
)

// SyntheticMolecules generates Count molecules made of 1..MaxRings fused
// rings (each a pentagon or hexagon) plus an optional 2..3 atom side chain.
// Vertex features are one-hot atom types of width AtomTypes; edges carry a
// single constant bond feature.
//
// Target = 1.0·pentagons + 1.5·hexagons + 0.05·atoms, so a model that sees
// rings can fit it exactly.
type SyntheticMolecules struct {
	Count     int
	MaxRings  int
	AtomTypes int
	Seed      uint64
}

// Name implements Source.
func (s SyntheticMolecules) Name() string {
	return fmt.Sprintf("synthetic-molecules-%d-r%d-a%d-s%d", s.Count, s.MaxRings, s.AtomTypes, s.Seed)
}

// Load implements Source.
func (s SyntheticMolecules) Load(ctx context.Context) ([]Record, error) {
	if s.Count < 1 || s.MaxRings < 1 || s.AtomTypes < 1 {
		return nil, fmt.Errorf("dataset: %s: count=%d max_rings=%d atom_types=%d: %w",
			s.Name(), s.Count, s.MaxRings, s.AtomTypes, ErrBadParam)
	}
	out := make([]Record, s.Count)
	for i := range out {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, target, err := s.molecule(i)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s: molecule %d: %w", s.Name(), i, err)
		}
		out[i] = Record{ID: fmt.Sprintf("mol-%05d", i), Graph: g, Target: target}
	}

	return out, nil
}

func (s SyntheticMolecules) molecule(i int) (*core.Graph, float64, error) {
	rng := recordRand(s.Seed, i)

	nRings := 1 + rng.IntN(s.MaxRings)
	sizes := make([]int, nRings)
	target := 0.0
	atoms := 0
	for k := range sizes {
		if rng.IntN(2) == 0 {
			sizes[k] = 5
			target += pentagonWeight
		} else {
			sizes[k] = 6
			target += hexagonWeight
		}
		if k == 0 {
			atoms += sizes[k]
		} else {
			atoms += sizes[k] - 2
		}
	}

	cons := []builder.Constructor{builder.FusedRings(sizes...)}
	if chain := rng.IntN(4); chain >= 2 {
		cons = append(cons, builder.Path(chain), builder.Link(0, atoms))
		atoms += chain
	}
	target += atomWeight * float64(atoms)

	g, err := builder.BuildGraph(
		nil,
		[]builder.BuilderOption{
			builder.WithRand(rng),
			builder.WithVertexFeatures(builder.RandomAtomTypes(s.AtomTypes)),
			builder.WithEdgeFeatures(builder.ConstantFeatures(1)),
		},
		cons...,
	)
	if err != nil {
		return nil, 0, err
	}
	g.Freeze()

	return g, target, nil
}
