// SPDX-License-Identifier: MIT
// Package train declares Direction and run state/status enums.

package train

import (
	"errors"
	"fmt"
)

var (
	// ErrDivergence marks a run whose loss or metric became non-finite.
	ErrDivergence = errors.New("train: divergence")

	// ErrConfig indicates an unusable run configuration.
	ErrConfig = errors.New("train: invalid config")
)

// Direction says whether a lower or a higher metric is better.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// ParseDirection accepts "min"/"minimize" and "max"/"maximize".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "min", "minimize":
		return Minimize, nil
	case "max", "maximize":
		return Maximize, nil
	default:
		return 0, fmt.Errorf("train: direction %q: %w", s, ErrConfig)
	}
}

func (d Direction) String() string {
	if d == Maximize {
		return "max"
	}

	return "min"
}

// Better reports whether a is strictly better than b.
func (d Direction) Better(a, b float64) bool {
	if d == Maximize {
		return a > b
	}

	return a < b
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v

	return nil
}

// State is a Runner lifecycle state.
type State string

const (
	StateInitialized          State = "initialized"
	StateTraining             State = "training"
	StateEvaluating           State = "evaluating"
	StateEarlyStopped         State = "early_stopped"
	StateEpochBudgetExhausted State = "epoch_budget_exhausted"
	StateCancelled            State = "cancelled"
	StateFailed               State = "failed"
	StateFinalized            State = "finalized"
)

// Status is the terminal classification of a run.
type Status string

const (
	StatusCompleted    Status = "completed"
	StatusEarlyStopped Status = "early_stopped"
	StatusCancelled    Status = "cancelled"
	StatusFailed       Status = "failed"
)

// Succeeded reports whether the run produced a usable best metric.
func (s Status) Succeeded() bool { return s != StatusFailed }
