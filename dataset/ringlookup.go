// SPDX-License-Identifier: MIT
// Package dataset implements the ring-lookup synthetic task.

package dataset

import (
	"context"
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

// RingLookup generates rings of Nodes vertices. Vertices 1..Nodes-1 carry a
// one-hot key (their position) and a one-hot value (a random permutation);
// vertex 0 carries only the key of one of them, and the target is that
// vertex's value. Solving the task needs information from across the ring.
//
// The first TrainSamples records form Train, the next ValidSamples Valid.
type RingLookup struct {
	Nodes        int
	TrainSamples int
	ValidSamples int
	Seed         uint64
}

// Name implements Source.
func (r RingLookup) Name() string {
	return fmt.Sprintf("ring-lookup-n%d-t%d-v%d-s%d", r.Nodes, r.TrainSamples, r.ValidSamples, r.Seed)
}

// Load implements Source.
func (r RingLookup) Load(ctx context.Context) ([]Record, error) {
	if r.Nodes < 3 {
		return nil, fmt.Errorf("dataset: %s: nodes=%d < 3: %w", r.Name(), r.Nodes, ErrBadParam)
	}
	total := r.TrainSamples + r.ValidSamples
	if r.TrainSamples < 1 || r.ValidSamples < 1 {
		return nil, fmt.Errorf("dataset: %s: samples %d/%d: %w", r.Name(), r.TrainSamples, r.ValidSamples, ErrBadParam)
	}

	out := make([]Record, total)
	for i := range out {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		g, target, err := r.sample(i)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s: sample %d: %w", r.Name(), i, err)
		}
		out[i] = Record{ID: fmt.Sprintf("%s/%d", r.Name(), i), Graph: g, Target: target}
	}

	return out, nil
}

// Split implements Splitter.
func (r RingLookup) Split(n int) (Split, error) {
	if n != r.TrainSamples+r.ValidSamples {
		return Split{}, fmt.Errorf("dataset: %s: %d records, want %d: %w", r.Name(), n, r.TrainSamples+r.ValidSamples, ErrBadSplit)
	}

	return Split{Train: seq(0, r.TrainSamples), Valid: seq(r.TrainSamples, n)}, nil
}

func (r RingLookup) sample(i int) (*core.Graph, float64, error) {
	n := r.Nodes
	rng := recordRand(r.Seed, i)
	vals := rng.Perm(n - 1)
	keyIdx := rng.IntN(n - 1)

	g := core.NewGraph(core.WithVertexFeatureDim(2 * n))
	// Source vertex: key only.
	src := make([]float64, 2*n)
	src[keyIdx+1] = 1
	if _, err := g.AddVertex(src...); err != nil {
		return nil, 0, err
	}
	for k := 1; k < n; k++ {
		x := make([]float64, 2*n)
		x[k] = 1
		x[n+vals[k-1]] = 1
		if _, err := g.AddVertex(x...); err != nil {
			return nil, 0, err
		}
	}
	for k := 0; k < n; k++ {
		if _, err := g.AddEdge(k, (k+1)%n); err != nil {
			return nil, 0, err
		}
	}
	g.Freeze()

	return g, float64(vals[keyIdx]), nil
}
