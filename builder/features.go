// SPDX-License-Identifier: MIT
// Package: cellsweep/builder
//
// features.go — reusable FeatureFn policies.

package builder

import "math/rand/v2"

// ConstantFeatures returns a policy emitting the same vector for every element.
func ConstantFeatures(values ...float64) FeatureFn {
	frozen := append([]float64(nil), values...)
	return func(int, *rand.Rand) []float64 {
		return append([]float64(nil), frozen...)
	}
}

// OneHotFeatures returns a policy emitting a one-hot vector of width k with the
// hot position at i mod k. Panics if k < 1.
func OneHotFeatures(k int) FeatureFn {
	if k < 1 {
		panic("builder: OneHotFeatures(k<1)")
	}
	return func(i int, _ *rand.Rand) []float64 {
		out := make([]float64, k)
		out[i%k] = 1

		return out
	}
}

// RandomAtomTypes returns a policy drawing a one-hot atom type out of k using
// the configured RNG; without an RNG it degrades to OneHotFeatures(k).
// Panics if k < 1.
func RandomAtomTypes(k int) FeatureFn {
	if k < 1 {
		panic("builder: RandomAtomTypes(k<1)")
	}
	return func(i int, rng *rand.Rand) []float64 {
		out := make([]float64, k)
		if rng == nil {
			out[i%k] = 1
		} else {
			out[rng.IntN(k)] = 1
		}

		return out
	}
}
