// Package builder provides deterministic, functional-options style graph
// constructors used as fixtures in tests, examples and the synthetic dataset
// sources.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – BuildGraph(gopts, bopts, cons...): creates a core.Graph and applies
//     constructors in order. Each constructor appends its vertices after the
//     ones already present, so composing constructors yields a disjoint union
//     that Link can join.
//   - Topologies (impl_*.go):
//     – Path, Cycle, Star, Wheel, Complete, Grid, FusedRings, RandomSparse, Link.
//   - Feature policies (features.go):
//     – ConstantFeatures, OneHotFeatures, RandomAtomTypes.
//   - Configuration:
//     – WithSeed / WithRand for stochastic constructors.
//     – WithVertexFeatures / WithEdgeFeatures for label generation.
//
// Guarantees:
//
//   - Determinism: same inputs, options, seed and constructor order ⇒ identical graphs.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Sentinel errors (ErrTooFewVertices, ErrInvalidProbability, ...) wrapped with
//     method context for invalid build parameters; constructors never panic.
package builder
