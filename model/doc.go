// Package model defines the trainable-unit contract consumed by train
// (Model, Loss, Optimizer, Factory) together with a reference readout model
// over cell complexes and the SGD and Adam optimizers.
//
// The reference Readout pools every dimension of a complex into
// [cell count, Σ features] and feeds the concatenation through an optional
// ReLU hidden layer of width Hidden into a scalar prediction:
//
//	x = ⊕_d [ |C_d|, Σ_{c∈C_d} f(c) ]
//	ŷ = w₂·relu(W₁ᵀx + b₁) + b₂        (Hidden > 0)
//	ŷ = w·x + b                        (Hidden = 0)
//
// Parameter tensors are flat []float64 slices viewed as gonum matrices, so
// optimizers and checkpointing work on a single representation.
package model
