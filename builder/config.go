// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults (no surprises):
//   • rng        = nil                  (pure/deterministic unless seeded)
//   • vertexFeat = ConstantFeatures(1)  (one feature equal to 1.0)
//   • edgeFeat   = nil                  (edges carry no features)

package builder

import "math/rand/v2"

// FeatureFn produces the feature vector of the i-th element emitted by a constructor.
// i is the index local to the constructor call; rng may be nil.
type FeatureFn func(i int, rng *rand.Rand) []float64

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// RNG for stochastic choices; nil means “no randomness”.
	rng *rand.Rand
	// Vertex feature generator; never nil after resolution.
	vertexFeat FeatureFn
	// Edge feature generator; nil means featureless edges.
	edgeFeat FeatureFn
}

// defaultVertexFeature is the constant used by the default vertex policy.
const defaultVertexFeature = 1.0

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (last wins).
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		rng:        nil,
		vertexFeat: ConstantFeatures(defaultVertexFeature),
		edgeFeat:   nil,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// vertexFeatures evaluates the vertex policy for local index i.
func (c builderConfig) vertexFeatures(i int) []float64 {
	return c.vertexFeat(i, c.rng)
}

// edgeFeatures evaluates the edge policy for local index i (nil when unset).
func (c builderConfig) edgeFeatures(i int) []float64 {
	if c.edgeFeat == nil {
		return nil
	}

	return c.edgeFeat(i, c.rng)
}
