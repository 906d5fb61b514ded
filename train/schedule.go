// SPDX-License-Identifier: MIT
// Package train implements learning-rate schedulers and early stopping.

package train

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cellsweep/model"
)

// Scheduler adapts an optimizer's learning rate.
// AfterEpoch runs after every epoch; AfterEval after every evaluation.
type Scheduler interface {
	AfterEpoch(epoch int, opt model.Optimizer)
	AfterEval(log *MetricLog, opt model.Optimizer)
}

// Scheduler kinds accepted by NewScheduler.
const (
	SchedulerNone    = "none"
	SchedulerPlateau = "plateau"
	SchedulerStep    = "step"
)

// SchedulerConfig selects and parameterises a Scheduler.
type SchedulerConfig struct {
	Kind string

	// Plateau.
	Patience int
	Factor   float64
	MinLR    float64

	// Step.
	DecaySteps int
	Gamma      float64
}

// NewScheduler builds the scheduler described by c.
func NewScheduler(c SchedulerConfig, dir Direction) (Scheduler, error) {
	switch c.Kind {
	case "", SchedulerNone:
		return noSchedule{}, nil
	case SchedulerPlateau:
		if c.Patience < 0 || c.Factor <= 0 || c.Factor >= 1 || c.MinLR < 0 {
			return nil, fmt.Errorf("train: plateau patience=%d factor=%g min_lr=%g: %w", c.Patience, c.Factor, c.MinLR, ErrConfig)
		}
		return &PlateauScheduler{Patience: c.Patience, Factor: c.Factor, MinLR: c.MinLR, t: tracker{dir: dir}}, nil
	case SchedulerStep:
		if c.DecaySteps < 1 || c.Gamma <= 0 {
			return nil, fmt.Errorf("train: step decay_steps=%d gamma=%g: %w", c.DecaySteps, c.Gamma, ErrConfig)
		}
		return &StepScheduler{DecaySteps: c.DecaySteps, Gamma: c.Gamma}, nil
	default:
		return nil, fmt.Errorf("train: scheduler %q: %w", c.Kind, ErrConfig)
	}
}

type noSchedule struct{}

func (noSchedule) AfterEpoch(int, model.Optimizer)       {}
func (noSchedule) AfterEval(*MetricLog, model.Optimizer) {}

// PlateauScheduler multiplies the LR by Factor once more than Patience
// evaluations pass without strict improvement, never going below MinLR.
//
// The cut lands on the (Patience+1)-th consecutive non-improving
// evaluation, not the Patience-th: with Patience 2 the LR holds through two
// stalled evaluations and drops on the third. The stall count then resets.
// EarlyStopper, by contrast, stops on the Patience-th.
type PlateauScheduler struct {
	Patience int
	Factor   float64
	MinLR    float64

	t tracker
}

func (s *PlateauScheduler) AfterEpoch(int, model.Optimizer) {}

func (s *PlateauScheduler) AfterEval(log *MetricLog, opt model.Optimizer) {
	e, ok := log.Last()
	if !ok || s.t.observe(e.Eval) {
		return
	}
	if s.t.bad > s.Patience {
		opt.SetLR(math.Max(opt.LR()*s.Factor, s.MinLR))
		s.t.bad = 0
	}
}

// StepScheduler multiplies the LR by Gamma every DecaySteps epochs.
type StepScheduler struct {
	DecaySteps int
	Gamma      float64
}

func (s *StepScheduler) AfterEpoch(epoch int, opt model.Optimizer) {
	if epoch%s.DecaySteps == 0 {
		opt.SetLR(opt.LR() * s.Gamma)
	}
}

func (s *StepScheduler) AfterEval(*MetricLog, model.Optimizer) {}

// EarlyStopper signals a stop after Patience evaluations without strict improvement.
type EarlyStopper struct {
	Patience int

	t tracker
}

// NewEarlyStopper returns a stopper for dir.
func NewEarlyStopper(patience int, dir Direction) *EarlyStopper {
	return &EarlyStopper{Patience: patience, t: tracker{dir: dir}}
}

// Observe consumes the latest evaluation and reports whether to stop.
func (s *EarlyStopper) Observe(log *MetricLog) bool {
	e, ok := log.Last()
	if !ok {
		return false
	}
	s.t.observe(e.Eval)

	return s.t.bad >= s.Patience
}
