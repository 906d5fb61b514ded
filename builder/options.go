// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// options.go — functional options for the builder package.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves MUST NOT panic.
//   • Seeding is explicit via WithSeed or WithRand; no hidden globals.

package builder

import "math/rand/v2"

// BuilderOption customizes the behavior of constructors by mutating a
// builderConfig instance before graph construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic builders.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new PCG-backed *rand.Rand with the given seed.
// Use this in tests and examples to lock outcomes.
func WithSeed(seed uint64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewPCG(seed, seed^pcgStream))
	}
}

// pcgStream decorrelates the two PCG state words derived from one seed.
const pcgStream = 0x9e3779b97f4a7c15

// WithVertexFeatures overrides the vertex feature policy. Panics on nil.
func WithVertexFeatures(fn FeatureFn) BuilderOption {
	if fn == nil {
		panic("builder: WithVertexFeatures(nil)")
	}
	return func(c *builderConfig) {
		c.vertexFeat = fn
	}
}

// WithEdgeFeatures installs an edge feature policy. Panics on nil.
func WithEdgeFeatures(fn FeatureFn) BuilderOption {
	if fn == nil {
		panic("builder: WithEdgeFeatures(nil)")
	}
	return func(c *builderConfig) {
		c.edgeFeat = fn
	}
}
