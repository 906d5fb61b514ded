// SPDX-License-Identifier: MIT
// Package model declares Model, Batch, Parameter and parameter snapshots.

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/cellsweep/cellcomplex"
)

var (
	// ErrShape indicates mismatched batch, gradient or parameter sizes.
	ErrShape = errors.New("model: shape mismatch")

	// ErrUnknown indicates an unknown loss, metric or optimizer name.
	ErrUnknown = errors.New("model: unknown name")
)

// Batch is a minibatch of complexes with aligned targets.
type Batch struct {
	Complexes []*cellcomplex.Complex
	Targets   []float64
}

// Len returns the batch size.
func (b Batch) Len() int { return len(b.Complexes) }

// Parameter is one trainable tensor with its accumulated gradient.
type Parameter struct {
	Name  string
	Value []float64
	Grad  []float64
}

func newParameter(name string, n int) *Parameter {
	return &Parameter{Name: name, Value: make([]float64, n), Grad: make([]float64, n)}
}

// Model is a trainable unit. Backward must follow the Forward of the same batch.
type Model interface {
	Forward(b Batch) ([]float64, error)
	Backward(b Batch, dPred []float64) error
	Parameters() []*Parameter
}

// Factory builds a freshly initialised model from a run's RNG.
type Factory func(rng *rand.Rand) (Model, error)

// MarshalParameters serialises parameter values by name.
func MarshalParameters(params []*Parameter) ([]byte, error) {
	m := make(map[string][]float64, len(params))
	for _, p := range params {
		m[p.Name] = p.Value
	}

	return json.Marshal(m)
}

// UnmarshalParameters restores values written by MarshalParameters into params.
func UnmarshalParameters(params []*Parameter, data []byte) error {
	var m map[string][]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("model: UnmarshalParameters: %w", err)
	}
	for _, p := range params {
		v, ok := m[p.Name]
		if !ok || len(v) != len(p.Value) {
			return fmt.Errorf("model: UnmarshalParameters: %s: %w", p.Name, ErrShape)
		}
		copy(p.Value, v)
	}

	return nil
}

// ZeroGrad clears all gradients.
func ZeroGrad(params []*Parameter) {
	for _, p := range params {
		clear(p.Grad)
	}
}
