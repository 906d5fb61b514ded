// SPDX-License-Identifier: MIT
// Package sweep implements the seed-sweep controller.

package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/katalvlaran/cellsweep/metrics"
	"github.com/katalvlaran/cellsweep/train"
)

// Controller drives one sweep. Construct with New; Run once per sweep.
type Controller struct {
	cfg     Config
	factory RunnerFactory

	id     string
	log    zerolog.Logger
	tracer trace.Tracer
	sink   Sink
}

// New validates cfg and returns a Controller.
func New(cfg Config, factory RunnerFactory, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, fmt.Errorf("sweep: nil runner factory: %w", ErrConfig)
	}
	c := &Controller{
		cfg:     cfg,
		factory: factory,
		log:     zerolog.Nop(),
		tracer:  defaultTracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}

	return c, nil
}

// ID returns the sweep identifier.
func (c *Controller) ID() string { return c.id }

// Run executes every seed and aggregates.
//
// The Result is returned even on error:
//   - all runs failed ⇒ ErrAggregation, Status failed.
//   - a seed could not acquire a device slot before ctx ended ⇒ that run is
//     recorded as failed and the returned error wraps ErrResourceExhausted.
//   - a Sink failure is returned after the Result is complete.
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	seeds := c.cfg.Seeds()
	res := &Result{
		ID:        c.id,
		Name:      c.cfg.Name,
		Metric:    c.cfg.Metric,
		Direction: c.cfg.Direction,
		StartSeed: c.cfg.StartSeed,
		StopSeed:  c.cfg.StopSeed,
		StartedAt: time.Now().UTC(),
		Runs:      make([]train.RunRecord, len(seeds)),
	}
	ctx, span := c.tracer.Start(ctx, "sweep.Run", trace.WithAttributes(
		attribute.String("sweep.id", c.id),
		attribute.Int64("sweep.start_seed", int64(c.cfg.StartSeed)),
		attribute.Int64("sweep.stop_seed", int64(c.cfg.StopSeed)),
		attribute.Int("sweep.parallelism", c.cfg.Parallelism),
	))
	defer span.End()
	log := c.log.With().Str("sweep", c.id).Logger()
	log.Info().Uint64("start_seed", c.cfg.StartSeed).Uint64("stop_seed", c.cfg.StopSeed).
		Int("parallelism", c.cfg.Parallelism).Msg("Sweep started")

	// 1) Schedule seeds onto device slots; slot i belongs to seed i.
	errs := make([]error, len(seeds))
	sem := semaphore.NewWeighted(int64(c.cfg.Parallelism))
	var wg sync.WaitGroup
	var exhausted error
	for i, seed := range seeds {
		if err := sem.Acquire(ctx, 1); err != nil {
			exhausted = fmt.Errorf("sweep: seed %d: %w: %w", seed, ErrResourceExhausted, err)
			for j := i; j < len(seeds); j++ {
				errs[j] = fmt.Errorf("%w: %w", ErrResourceExhausted, err)
				res.Runs[j] = train.RunRecord{Seed: seeds[j], Status: train.StatusFailed, Error: errs[j].Error()}
			}
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			res.Runs[i], errs[i] = c.runSeed(ctx, log, seed)
		}()
	}
	wg.Wait()

	// 2) Aggregate in seed order.
	for i, err := range errs {
		if err != nil {
			res.Errors = append(res.Errors, RunError{Seed: seeds[i], Err: err})
		}
	}
	res.FinishedAt = time.Now().UTC()
	agg, aggErr := Summarise(res.Runs, c.cfg.Direction)
	res.Aggregate = agg
	switch {
	case aggErr != nil:
		res.Status = StatusFailed
	case agg.Failed > 0:
		res.Status = StatusPartiallyFailed
	default:
		res.Status = StatusComplete
	}
	if c.cfg.DumpCurves && aggErr == nil {
		res.Curves = SummariseCurves(res.Runs, c.cfg.Direction)
	}
	span.SetAttributes(attribute.String("sweep.status", string(res.Status)))

	var err error
	if aggErr != nil {
		err = fmt.Errorf("sweep %s: %w", c.id, aggErr)
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregation failed")
		log.Error().Err(err).Int("failed", agg.Failed).Msg("Sweep failed")
	} else {
		log.Info().
			Str("status", string(res.Status)).
			Float64("mean", agg.Mean).
			Float64("std", agg.Std).
			Uint64("best_seed", agg.BestSeed).
			Int("successful", agg.Successful).
			Int("failed", agg.Failed).
			Msg("Sweep finished")
	}
	err = errors.Join(err, exhausted)

	// 3) Persist even when the caller has given up on ctx.
	if c.sink != nil {
		if serr := c.sink.SaveSweep(context.WithoutCancel(ctx), res); serr != nil {
			log.Warn().Err(serr).Msg("Persisting sweep failed")
			err = errors.Join(err, fmt.Errorf("sweep %s: persist: %w", c.id, serr))
		}
	}

	return res, err
}

// runSeed builds and executes one run inside its own span.
func (c *Controller) runSeed(ctx context.Context, log zerolog.Logger, seed uint64) (train.RunRecord, error) {
	ctx, span := c.tracer.Start(ctx, "sweep.run", trace.WithAttributes(
		attribute.String("sweep.id", c.id),
		attribute.Int64("run.seed", int64(seed)),
	))
	defer span.End()
	metrics.ActiveRuns.Inc()
	defer metrics.ActiveRuns.Dec()

	rec, err := c.execute(ctx, seed)
	rec.Seed = seed
	if err != nil {
		rec.Status = train.StatusFailed
		if rec.Error == "" {
			rec.Error = err.Error()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "run failed")
		log.Warn().Uint64("seed", seed).Err(err).Msg("Run failed")
	}
	span.SetAttributes(
		attribute.String("run.status", string(rec.Status)),
		attribute.Float64("run.best_metric", rec.BestMetric),
		attribute.Int("run.best_epoch", rec.BestEpoch),
	)
	metrics.RunsTotal.WithLabelValues(string(rec.Status)).Inc()

	return rec, err
}

func (c *Controller) execute(ctx context.Context, seed uint64) (train.RunRecord, error) {
	r, err := c.factory(RunInfo{SweepID: c.id, Seed: seed})
	if err != nil {
		return train.RunRecord{}, fmt.Errorf("runner factory: %w", err)
	}

	return r.Run(ctx)
}
