// SPDX-License-Identifier: MIT
// Package train declares run configuration, data and options.

package train

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/cellsweep/cellcomplex"
	"github.com/katalvlaran/cellsweep/dataset"
	"github.com/katalvlaran/cellsweep/model"
	"github.com/katalvlaran/cellsweep/preprocess"
)

// Config parameterises one run.
type Config struct {
	Name       string
	Seed       uint64
	Epochs     int
	BatchSize  int
	EvalPeriod int

	Loss      string
	Metric    string
	Direction Direction
	Optimizer string
	LR        float64
	Scheduler SchedulerConfig

	EarlyStop bool
	Patience  int

	DumpCurves bool
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	switch {
	case c.Epochs < 1:
		return fmt.Errorf("train: epochs=%d: %w", c.Epochs, ErrConfig)
	case c.BatchSize < 1:
		return fmt.Errorf("train: batch_size=%d: %w", c.BatchSize, ErrConfig)
	case c.EvalPeriod < 1:
		return fmt.Errorf("train: eval_period=%d: %w", c.EvalPeriod, ErrConfig)
	case c.LR <= 0:
		return fmt.Errorf("train: lr=%g: %w", c.LR, ErrConfig)
	case c.EarlyStop && c.Patience < 1:
		return fmt.Errorf("train: early-stop patience=%d: %w", c.Patience, ErrConfig)
	}

	return nil
}

// Data is the read-only view a run trains on.
type Data struct {
	Complexes []*cellcomplex.Complex
	Targets   []float64
	Train     []int
	Valid     []int
}

// NewData restricts split to records that preprocessed successfully.
func NewData(ds *preprocess.Dataset, split dataset.Split) (Data, error) {
	if err := split.Validate(ds.Len()); err != nil {
		return Data{}, err
	}
	d := Data{
		Complexes: ds.Complexes,
		Targets:   ds.Targets,
		Train:     ds.Usable(split.Train),
		Valid:     ds.Usable(split.Valid),
	}
	if len(d.Train) == 0 || len(d.Valid) == 0 {
		return Data{}, fmt.Errorf("train: NewData: %d train / %d valid usable records: %w", len(d.Train), len(d.Valid), ErrConfig)
	}

	return d, nil
}

func (d Data) batch(idx []int) model.Batch {
	b := model.Batch{
		Complexes: make([]*cellcomplex.Complex, len(idx)),
		Targets:   make([]float64, len(idx)),
	}
	for k, i := range idx {
		b.Complexes[k] = d.Complexes[i]
		b.Targets[k] = d.Targets[i]
	}

	return b
}

// Checkpointer persists named artifacts. store.Store implements it.
type Checkpointer interface {
	SaveArtifact(ctx context.Context, name string, data []byte) error
}

// EvalFunc scores m on the validation split at the given epoch.
type EvalFunc func(ctx context.Context, m model.Model, epoch int) (float64, error)

// Option configures a Runner.
type Option func(*Runner)

// WithCheckpointer persists the parameters on every new best as "<name>/best".
func WithCheckpointer(c Checkpointer) Option {
	return func(r *Runner) { r.ckpt = c }
}

// WithLogger sets the run logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithEvalFunc replaces the default validation pass.
func WithEvalFunc(fn EvalFunc) Option {
	return func(r *Runner) { r.eval = fn }
}
