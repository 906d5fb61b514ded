// SPDX-License-Identifier: MIT
// Package preprocess implements the bounded preprocessing pool.

package preprocess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/katalvlaran/cellsweep/cellcomplex"
	"github.com/katalvlaran/cellsweep/dataset"
	"github.com/katalvlaran/cellsweep/metrics"
	"github.com/katalvlaran/cellsweep/rings"
)

// Pool lifts datasets into complexes. A Pool is safe for concurrent Runs.
type Pool struct {
	opts Options
}

// New returns a Pool configured by opts.
func New(opts ...Option) *Pool {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Pool{opts: o}
}

// Options returns a copy of the resolved options.
func (p *Pool) Options() Options { return p.opts }

// Run preprocesses records and returns them in input order.
//
// Errors:
//   - Jobs < 1, or ctx done while waiting for a worker ⇒ ErrResourceExhausted.
//   - more than MaxFailures failed records ⇒ ErrFailureThreshold wrapping the
//     first failure by record order.
//   - invalid complex options ⇒ cellcomplex.ErrInvalidOption.
//
// Up to MaxFailures failures are returned in Dataset.Failures with a nil error.
func (p *Pool) Run(ctx context.Context, name string, records []dataset.Record) (*Dataset, error) {
	o := p.opts
	if o.Jobs < 1 {
		return nil, fmt.Errorf("preprocess: Run: jobs=%d: %w", o.Jobs, ErrResourceExhausted)
	}
	if err := o.Complex.Validate(); err != nil {
		return nil, fmt.Errorf("preprocess: Run: %w", err)
	}

	ctx, span := o.tracer.Start(ctx, "preprocess.Run", trace.WithAttributes(
		attribute.String("dataset", name),
		attribute.Int("records", len(records)),
		attribute.Int("jobs", o.Jobs),
	))
	defer span.End()

	// 1) Memoised results.
	fp := Fingerprint(name, records, o)
	if ds, ok := p.lookup(ctx, fp); ok {
		metrics.PreprocessRecords.WithLabelValues(metrics.OutcomeCached).Add(float64(len(records)))
		span.SetAttributes(attribute.Bool("cached", true))
		o.logger.Info().Str("dataset", name).Str("fingerprint", fp).Msg("Preprocessed dataset served from cache")

		return ds, nil
	}

	// 2) Fan out; each worker owns slot i of complexes and errs.
	start := time.Now()
	complexes := make([]*cellcomplex.Complex, len(records))
	errs := make([]error, len(records))
	var failed atomic.Int64

	sem := semaphore.NewWeighted(int64(o.Jobs))
	g, gctx := errgroup.WithContext(ctx)
	var acquireErr error
	for i := range records {
		if err := sem.Acquire(gctx, 1); err != nil {
			acquireErr = err
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			cx, err := p.lift(gctx, records[i])
			if err != nil {
				if gctx.Err() != nil && errors.Is(err, context.Canceled) {
					return nil
				}
				errs[i] = err
				if failed.Add(1) > int64(o.MaxFailures) {
					return ErrFailureThreshold
				}

				return nil
			}
			complexes[i] = cx

			return nil
		})
	}
	waitErr := g.Wait()

	// 3) Collect failures in record order.
	var failures []RecordError
	for i, err := range errs {
		if err == nil {
			continue
		}
		failures = append(failures, RecordError{ID: records[i].ID, Index: i, Err: err})
		o.logger.Warn().Str("dataset", name).Str("record", records[i].ID).Int("index", i).Err(err).Msg("Record preprocessing failed")
	}
	metrics.PreprocessRecords.WithLabelValues(metrics.OutcomeFailed).Add(float64(len(failures)))

	switch {
	case errors.Is(waitErr, ErrFailureThreshold) || len(failures) > o.MaxFailures:
		err := fmt.Errorf("preprocess: %s: %d failed records (max %d): %w: %w",
			name, len(failures), o.MaxFailures, ErrFailureThreshold, &failures[0])
		span.RecordError(err)
		span.SetStatus(codes.Error, "failure threshold")

		return nil, err
	case acquireErr != nil || ctx.Err() != nil:
		cause := acquireErr
		if cause == nil {
			cause = ctx.Err()
		}
		err := fmt.Errorf("preprocess: %s: acquiring worker: %w: %w", name, ErrResourceExhausted, cause)
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancelled")

		return nil, err
	}

	ds := &Dataset{
		Name:        name,
		Fingerprint: fp,
		Complexes:   complexes,
		IDs:         make([]string, len(records)),
		Targets:     dataset.Targets(records),
		Failures:    failures,
	}
	for i, r := range records {
		ds.IDs[i] = r.ID
	}
	ok := len(records) - len(failures)
	metrics.PreprocessRecords.WithLabelValues(metrics.OutcomeOK).Add(float64(ok))
	metrics.PreprocessSeconds.WithLabelValues(name).Observe(time.Since(start).Seconds())
	o.logger.Info().
		Str("dataset", name).
		Int("records", len(records)).
		Int("failed", len(failures)).
		Dur("elapsed", time.Since(start)).
		Msg("Preprocessing complete")

	p.remember(ctx, ds)

	return ds, nil
}

// lift runs extraction and construction for one record.
func (p *Pool) lift(ctx context.Context, rec dataset.Record) (*cellcomplex.Complex, error) {
	var rs []rings.Ring
	if p.opts.Complex.MaxDim >= cellcomplex.DimRing {
		var err error
		rs, err = rings.Extract(rec.Graph, p.opts.Complex.MaxRingSize,
			rings.WithContext(ctx), rings.WithDedupe(p.opts.Dedupe))
		if err != nil {
			return nil, err
		}
	}

	return cellcomplex.Build(rec.Graph, rs, cellcomplex.WithOptions(p.opts.Complex))
}

// lookup consults the LRU first and the artifact store second.
func (p *Pool) lookup(ctx context.Context, fp string) (*Dataset, bool) {
	if c := p.opts.cache; c != nil {
		if ds, ok := c.Get(fp); ok {
			return ds, true
		}
	}
	if p.opts.store == nil {
		return nil, false
	}
	raw, err := p.opts.store.LoadArtifact(ctx, artifactName(fp))
	if err != nil {
		return nil, false
	}
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		p.opts.logger.Warn().Str("fingerprint", fp).Err(err).Msg("Discarding unreadable preprocessed artifact")

		return nil, false
	}
	if p.opts.cache != nil {
		p.opts.cache.Add(fp, &ds)
	}

	return &ds, true
}

// remember stores ds in the LRU and, when failure-free, in the artifact store.
func (p *Pool) remember(ctx context.Context, ds *Dataset) {
	if p.opts.cache != nil {
		p.opts.cache.Add(ds.Fingerprint, ds)
	}
	if p.opts.store == nil || len(ds.Failures) > 0 {
		return
	}
	raw, err := json.Marshal(ds)
	if err == nil {
		err = p.opts.store.SaveArtifact(ctx, artifactName(ds.Fingerprint), raw)
	}
	if err != nil {
		p.opts.logger.Warn().Str("fingerprint", ds.Fingerprint).Err(err).Msg("Persisting preprocessed dataset failed")
	}
}
