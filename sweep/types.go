// SPDX-License-Identifier: MIT
// Package sweep declares Result, Aggregate, options and sentinel errors.

package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/katalvlaran/cellsweep/train"
)

var (
	// ErrAggregation indicates that no run succeeded.
	ErrAggregation = errors.New("sweep: no successful runs to aggregate")

	// ErrResourceExhausted indicates that a run never obtained a device slot.
	ErrResourceExhausted = errors.New("sweep: device slot not acquired")

	// ErrConfig indicates an unusable sweep configuration.
	ErrConfig = errors.New("sweep: invalid config")
)

// Status classifies a finished sweep.
type Status string

const (
	StatusComplete        Status = "complete"
	StatusPartiallyFailed Status = "partially_failed"
	StatusFailed          Status = "failed"
)

// RunInfo identifies one run to a RunnerFactory.
type RunInfo struct {
	SweepID string
	Seed    uint64
}

// Runner is one seeded run; *train.Runner implements it.
type Runner interface {
	Run(ctx context.Context) (train.RunRecord, error)
}

// RunnerFactory builds a fresh Runner whose randomness derives from info.Seed.
type RunnerFactory func(info RunInfo) (Runner, error)

// Sink persists a finished Result. store.Store implements it.
type Sink interface {
	SaveSweep(ctx context.Context, res *Result) error
}

// RunError ties a failure to its seed.
type RunError struct {
	Seed uint64
	Err  error
}

func (e *RunError) Error() string { return fmt.Sprintf("seed %d: %v", e.Seed, e.Err) }

func (e *RunError) Unwrap() error { return e.Err }

// Aggregate summarises the best metric of every successful run.
type Aggregate struct {
	Mean       float64 `json:"mean" yaml:"mean"`
	Std        float64 `json:"std" yaml:"std"`
	BestSeed   uint64  `json:"best_seed" yaml:"best_seed"`
	BestMetric float64 `json:"best_metric" yaml:"best_metric"`
	Successful int     `json:"successful" yaml:"successful"`
	Failed     int     `json:"failed" yaml:"failed"`
}

// SeedCurveStats describes one seed's evaluation curve.
type SeedCurveStats struct {
	Seed   uint64  `json:"seed" yaml:"seed"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Max    float64 `json:"max" yaml:"max"`
	Min    float64 `json:"min" yaml:"min"`
	Median float64 `json:"median" yaml:"median"`
}

// CurveSummary aggregates evaluation curves across successful runs.
type CurveSummary struct {
	MeanCurve []float64        `json:"mean_curve" yaml:"mean_curve"`
	StdCurve  []float64        `json:"std_curve" yaml:"std_curve"`
	BestIndex int              `json:"best_index" yaml:"best_index"`
	BestEpoch int              `json:"best_epoch" yaml:"best_epoch"`
	Mean      float64          `json:"mean" yaml:"mean"`
	Std       float64          `json:"std" yaml:"std"`
	PerSeed   []SeedCurveStats `json:"per_seed" yaml:"per_seed"`
}

// Result is the outcome of a sweep. Runs are ordered by seed.
type Result struct {
	ID         string            `json:"id" yaml:"id"`
	Name       string            `json:"name" yaml:"name"`
	Metric     string            `json:"metric" yaml:"metric"`
	Direction  train.Direction   `json:"direction" yaml:"direction"`
	StartSeed  uint64            `json:"start_seed" yaml:"start_seed"`
	StopSeed   uint64            `json:"stop_seed" yaml:"stop_seed"`
	StartedAt  time.Time         `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time         `json:"finished_at" yaml:"finished_at"`
	Status     Status            `json:"status" yaml:"status"`
	Aggregate  Aggregate         `json:"aggregate" yaml:"aggregate"`
	Curves     *CurveSummary     `json:"curves,omitempty" yaml:"curves,omitempty"`
	Runs       []train.RunRecord `json:"runs" yaml:"runs"`
	Errors     []RunError        `json:"-" yaml:"-"`
}

// Config parameterises a sweep.
type Config struct {
	Name        string
	StartSeed   uint64
	StopSeed    uint64
	Parallelism int
	Metric      string
	Direction   train.Direction
	DumpCurves  bool
}

// MaxSeeds bounds the number of seeds in one sweep.
const MaxSeeds = 1 << 16

// Validate checks the seed range and parallelism.
func (c Config) Validate() error {
	if c.StopSeed < c.StartSeed {
		return fmt.Errorf("sweep: seeds %d..%d: %w", c.StartSeed, c.StopSeed, ErrConfig)
	}
	if c.StopSeed-c.StartSeed >= MaxSeeds {
		return fmt.Errorf("sweep: seeds %d..%d exceed %d runs: %w", c.StartSeed, c.StopSeed, MaxSeeds, ErrConfig)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("sweep: parallelism=%d: %w", c.Parallelism, ErrConfig)
	}

	return nil
}

// Seeds returns the inclusive seed range, or nil when the range is reversed
// or longer than MaxSeeds.
func (c Config) Seeds() []uint64 {
	if c.StopSeed < c.StartSeed || c.StopSeed-c.StartSeed >= MaxSeeds {
		return nil
	}
	out := make([]uint64, 0, c.StopSeed-c.StartSeed+1)
	for s := c.StartSeed; ; s++ {
		out = append(out, s)
		if s == c.StopSeed {
			break
		}
	}

	return out
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithTracer sets the tracer. A nil tracer has no effect.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithSink persists every finished Result.
func WithSink(s Sink) Option {
	return func(c *Controller) { c.sink = s }
}

// WithID fixes the sweep ID instead of generating a UUID.
func WithID(id string) Option {
	return func(c *Controller) { c.id = id }
}

func defaultTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("cellsweep/sweep")
}
