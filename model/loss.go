// SPDX-License-Identifier: MIT
// Package model implements losses and evaluation metrics.

package model

import (
	"fmt"
	"math"
)

// Loss scores predictions and yields dLoss/dPred.
type Loss interface {
	Name() string
	Value(pred, target []float64) float64
	Grad(pred, target []float64) []float64
}

// MSE is the mean squared error.
type MSE struct{}

func (MSE) Name() string { return "mse" }

func (MSE) Value(pred, target []float64) float64 {
	s := 0.0
	for i := range pred {
		d := pred[i] - target[i]
		s += d * d
	}

	return s / float64(len(pred))
}

func (MSE) Grad(pred, target []float64) []float64 {
	out := make([]float64, len(pred))
	n := float64(len(pred))
	for i := range pred {
		out[i] = 2 * (pred[i] - target[i]) / n
	}

	return out
}

// MAE is the mean absolute error; its gradient at zero residual is zero.
type MAE struct{}

func (MAE) Name() string { return "mae" }

func (MAE) Value(pred, target []float64) float64 {
	s := 0.0
	for i := range pred {
		s += math.Abs(pred[i] - target[i])
	}

	return s / float64(len(pred))
}

func (MAE) Grad(pred, target []float64) []float64 {
	out := make([]float64, len(pred))
	n := float64(len(pred))
	for i := range pred {
		switch d := pred[i] - target[i]; {
		case d > 0:
			out[i] = 1 / n
		case d < 0:
			out[i] = -1 / n
		}
	}

	return out
}

// LossByName resolves "mse" or "mae".
func LossByName(name string) (Loss, error) {
	switch name {
	case "mse":
		return MSE{}, nil
	case "mae":
		return MAE{}, nil
	default:
		return nil, fmt.Errorf("model: loss %q: %w", name, ErrUnknown)
	}
}

// Metric scores a full evaluation pass.
type Metric func(pred, target []float64) float64

// MetricByName resolves "mae", "mse" or "rmse".
func MetricByName(name string) (Metric, error) {
	switch name {
	case "mae":
		return MAE{}.Value, nil
	case "mse":
		return MSE{}.Value, nil
	case "rmse":
		return func(pred, target []float64) float64 { return math.Sqrt(MSE{}.Value(pred, target)) }, nil
	default:
		return nil, fmt.Errorf("model: metric %q: %w", name, ErrUnknown)
	}
}
