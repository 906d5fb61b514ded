// SPDX-License-Identifier: MIT
// Package train implements the Runner epoch loop.

package train

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/cellsweep/metrics"
	"github.com/katalvlaran/cellsweep/model"
)

// Runner executes one run. It is single-use and not safe for concurrent use.
type Runner struct {
	cfg  Config
	data Data
	rng  *rand.Rand

	model   model.Model
	opt     model.Optimizer
	loss    model.Loss
	metric  model.Metric
	sched   Scheduler
	stopper *EarlyStopper

	log  zerolog.Logger
	ckpt Checkpointer
	eval EvalFunc

	state   State
	metrics MetricLog
}

// NewRunner seeds the run RNG, builds the model through factory and resolves
// loss, metric, optimizer and scheduler by name.
func NewRunner(cfg Config, factory model.Factory, data Data, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:   cfg,
		data:  data,
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5851f42d4c957f2d)),
		log:   zerolog.Nop(),
		state: StateInitialized,
	}
	for _, opt := range opts {
		opt(r)
	}

	var err error
	if r.loss, err = model.LossByName(cfg.Loss); err != nil {
		return nil, fmt.Errorf("train: %w: %w", ErrConfig, err)
	}
	if r.metric, err = model.MetricByName(cfg.Metric); err != nil {
		return nil, fmt.Errorf("train: %w: %w", ErrConfig, err)
	}
	if r.opt, err = model.OptimizerByName(cfg.Optimizer, cfg.LR); err != nil {
		return nil, fmt.Errorf("train: %w: %w", ErrConfig, err)
	}
	if r.sched, err = NewScheduler(cfg.Scheduler, cfg.Direction); err != nil {
		return nil, err
	}
	if cfg.EarlyStop {
		r.stopper = NewEarlyStopper(cfg.Patience, cfg.Direction)
	}
	if r.model, err = factory(r.rng); err != nil {
		return nil, fmt.Errorf("train: model factory: %w", err)
	}
	if len(data.Train) == 0 {
		return nil, fmt.Errorf("train: empty train split: %w", ErrConfig)
	}
	if r.eval == nil {
		if len(data.Valid) == 0 {
			return nil, fmt.Errorf("train: empty valid split: %w", ErrConfig)
		}
		r.eval = r.validate
	}

	return r, nil
}

// State returns the current lifecycle state.
func (r *Runner) State() State { return r.state }

// Log returns the metric log.
func (r *Runner) Log() *MetricLog { return &r.metrics }

// Run trains until the epoch budget, an early stop, a cancellation observed
// at an evaluation boundary, or a divergence. The record is returned in every
// case; the error is non-nil only for a failed run and wraps ErrDivergence or
// the evaluation error.
func (r *Runner) Run(ctx context.Context) (RunRecord, error) {
	if r.state != StateInitialized {
		return RunRecord{}, fmt.Errorf("train: Run called in state %s: %w", r.state, ErrConfig)
	}
	rec := RunRecord{Seed: r.cfg.Seed}
	log := r.log.With().Uint64("seed", r.cfg.Seed).Logger()

	var (
		best    Evaluation
		hasBest bool
		runErr  error
	)
	r.state = StateTraining
	order := append([]int(nil), r.data.Train...)

loop:
	for epoch := 1; epoch <= r.cfg.Epochs; epoch++ {
		// 1) One pass over the shuffled train split.
		trainLoss, err := r.epoch(order)
		rec.EpochsRun = epoch
		metrics.EpochsTotal.Inc()
		if err != nil {
			r.state, runErr = StateFailed, fmt.Errorf("train: seed %d epoch %d: %w", r.cfg.Seed, epoch, err)
			break
		}
		r.sched.AfterEpoch(epoch, r.opt)

		if epoch%r.cfg.EvalPeriod != 0 && epoch != r.cfg.Epochs {
			continue
		}

		// 2) Evaluate and append to the shared log.
		r.state = StateEvaluating
		score, err := r.eval(ctx, r.model, epoch)
		if err == nil && !finite(score) {
			err = fmt.Errorf("metric %s=%v: %w", r.cfg.Metric, score, ErrDivergence)
		}
		if err != nil {
			r.state, runErr = StateFailed, fmt.Errorf("train: seed %d epoch %d: %w", r.cfg.Seed, epoch, err)
			break
		}
		ev := Evaluation{Epoch: epoch, Train: trainLoss, Eval: score, LR: r.opt.LR()}
		r.metrics.Append(ev)
		log.Debug().Int("epoch", epoch).Float64("train", trainLoss).Float64("eval", score).Float64("lr", ev.LR).Msg("Evaluation")

		if !hasBest || r.cfg.Direction.Better(score, best.Eval) {
			best, hasBest = ev, true
			r.checkpoint(ctx, log)
		}

		// 3) Observers.
		r.sched.AfterEval(&r.metrics, r.opt)
		if r.stopper != nil && r.stopper.Observe(&r.metrics) {
			r.state = StateEarlyStopped
			rec.EarlyStopEpoch = epoch
			break loop
		}
		if ctx.Err() != nil {
			r.state = StateCancelled
			break loop
		}
		r.state = StateTraining
	}
	if r.state == StateTraining || r.state == StateEvaluating {
		r.state = StateEpochBudgetExhausted
	}

	// 4) Finalize.
	switch r.state {
	case StateEarlyStopped:
		rec.Status = StatusEarlyStopped
	case StateCancelled:
		rec.Status = StatusCancelled
	case StateFailed:
		rec.Status = StatusFailed
		rec.Error = runErr.Error()
	default:
		rec.Status = StatusCompleted
	}
	if hasBest {
		rec.BestMetric, rec.BestEpoch = best.Eval, best.Epoch
	}
	if last, ok := r.metrics.Last(); ok {
		rec.FinalMetric = last.Eval
	}
	rec.FinalLR = r.opt.LR()
	if r.cfg.DumpCurves {
		for _, e := range r.metrics.Entries() {
			rec.Curve = append(rec.Curve, CurvePoint(e))
		}
	}
	r.state = StateFinalized

	ev := log.Info()
	if runErr != nil {
		ev = log.Warn().Err(runErr)
	}
	ev.Str("status", string(rec.Status)).
		Int("epochs", rec.EpochsRun).
		Float64("best", rec.BestMetric).
		Int("best_epoch", rec.BestEpoch).
		Msg("Run finalized")

	return rec, runErr
}

// epoch runs one shuffled pass and returns the sample-weighted mean loss.
func (r *Runner) epoch(order []int) (float64, error) {
	r.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	total := 0.0
	for lo := 0; lo < len(order); lo += r.cfg.BatchSize {
		hi := min(lo+r.cfg.BatchSize, len(order))
		b := r.data.batch(order[lo:hi])

		pred, err := r.model.Forward(b)
		if err != nil {
			return 0, err
		}
		l := r.loss.Value(pred, b.Targets)
		if !finite(l) {
			return 0, fmt.Errorf("loss %s=%v: %w", r.loss.Name(), l, ErrDivergence)
		}
		r.opt.ZeroGrad(r.model.Parameters())
		if err := r.model.Backward(b, r.loss.Grad(pred, b.Targets)); err != nil {
			return 0, err
		}
		r.opt.Step(r.model.Parameters())
		total += l * float64(hi-lo)
	}

	return total / float64(len(order)), nil
}

// validate is the default EvalFunc: the configured metric over Valid.
func (r *Runner) validate(_ context.Context, m model.Model, _ int) (float64, error) {
	b := r.data.batch(r.data.Valid)
	pred, err := m.Forward(b)
	if err != nil {
		return 0, err
	}

	return r.metric(pred, b.Targets), nil
}

// checkpoint persists parameters as "<name>/best"; failures are logged only.
func (r *Runner) checkpoint(ctx context.Context, log zerolog.Logger) {
	if r.ckpt == nil {
		return
	}
	raw, err := model.MarshalParameters(r.model.Parameters())
	if err == nil {
		err = r.ckpt.SaveArtifact(ctx, r.artifact(), raw)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Str("artifact", r.artifact()).Msg("Checkpoint failed")
	}
}

func (r *Runner) artifact() string {
	name := r.cfg.Name
	if name == "" {
		name = fmt.Sprintf("seed-%d", r.cfg.Seed)
	}

	return name + "/best"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
