// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/katalvlaran/cellsweep/config"
	"github.com/katalvlaran/cellsweep/dataset"
	"github.com/katalvlaran/cellsweep/metrics"
	"github.com/katalvlaran/cellsweep/model"
	"github.com/katalvlaran/cellsweep/preprocess"
	"github.com/katalvlaran/cellsweep/report"
	"github.com/katalvlaran/cellsweep/store"
	"github.com/katalvlaran/cellsweep/sweep"
	"github.com/katalvlaran/cellsweep/train"
)

const tracerName = "github.com/katalvlaran/cellsweep"

// pipeline holds what one command invocation shares between stages.
type pipeline struct {
	cfg   config.Config
	log   zerolog.Logger
	store *store.Store
	cache *preprocess.Cache
}

func openPipeline(mgr *config.Manager) (*pipeline, error) {
	cfg, err := mgr.Config()
	if err != nil {
		return nil, err
	}
	st, err := store.NewStore(cfg.Output.DBPath)
	if err != nil {
		return nil, err
	}

	return &pipeline{
		cfg:   cfg,
		log:   cfg.Logger(),
		store: st,
		cache: preprocess.NewCache(cfg.Preprocess.CacheSize),
	}, nil
}

func (p *pipeline) Close() error { return p.store.Close() }

// prepare loads the source, lifts it and resolves the split.
func (p *pipeline) prepare(ctx context.Context) (*preprocess.Dataset, dataset.Split, error) {
	src, err := p.cfg.Source()
	if err != nil {
		return nil, dataset.Split{}, err
	}
	recs, err := src.Load(ctx)
	if err != nil {
		return nil, dataset.Split{}, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	opts, err := p.cfg.PreprocessOptions()
	if err != nil {
		return nil, dataset.Split{}, err
	}
	opts = append(opts,
		preprocess.WithCache(p.cache),
		preprocess.WithStore(p.store),
		preprocess.WithLogger(p.log),
		preprocess.WithTracer(otel.Tracer(tracerName)),
	)
	ds, err := preprocess.New(opts...).Run(ctx, src.Name(), recs)
	if err != nil {
		return nil, dataset.Split{}, err
	}

	split, err := dataset.SplitFor(src, ds.Len(), p.cfg.Dataset.Seed)
	if err != nil {
		return nil, dataset.Split{}, err
	}

	return ds, split, nil
}

func (p *pipeline) preprocessOnly(ctx context.Context, out io.Writer) error {
	ds, split, err := p.prepare(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d records, %d failed, fingerprint %s\n", ds.Name, ds.Len(), len(ds.Failures), ds.Fingerprint)
	fmt.Fprintf(out, "split: %d train / %d valid / %d test\n", len(split.Train), len(split.Valid), len(split.Test))

	return p.writeMetrics()
}

// runSweep prints and persists whatever result the controller produced,
// then returns its error.
func (p *pipeline) runSweep(ctx context.Context, out io.Writer) error {
	ds, split, err := p.prepare(ctx)
	if err != nil {
		return err
	}
	data, err := train.NewData(ds, split)
	if err != nil {
		return err
	}
	spec, err := model.SpecFor(ds.Complexes, p.cfg.Train.EmbDim)
	if err != nil {
		return err
	}
	factory := model.ReadoutFactory(spec)

	runners := func(info sweep.RunInfo) (sweep.Runner, error) {
		name := fmt.Sprintf("%s/seed-%d", info.SweepID, info.Seed)
		r, err := train.NewRunner(p.cfg.RunConfig(info.Seed, name), factory, data,
			train.WithCheckpointer(p.store),
			train.WithLogger(p.log.With().Str("sweep", info.SweepID).Uint64("seed", info.Seed).Logger()),
		)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	sc := p.cfg.SweepConfig()
	if sc.Name == "" {
		sc.Name = ds.Name
	}
	ctrl, err := sweep.New(sc, runners,
		sweep.WithID(uuid.NewString()),
		sweep.WithLogger(p.log),
		sweep.WithTracer(otel.Tracer(tracerName)),
		sweep.WithSink(p.store),
	)
	if err != nil {
		return err
	}

	res, runErr := ctrl.Run(ctx)
	if res == nil {
		return runErr
	}
	var errs []error
	errs = append(errs, runErr)
	if err := report.Summary(out, res); err != nil {
		errs = append(errs, err)
	}
	if path := p.cfg.Output.ReportPath; path != "" {
		errs = append(errs, report.WriteFile(path, res))
	}
	errs = append(errs, p.writeMetrics())

	return errors.Join(errs...)
}

func (p *pipeline) writeMetrics() error {
	if p.cfg.Output.MetricsPath == "" {
		return nil
	}

	return metrics.WriteTextfile(p.cfg.Output.MetricsPath)
}

func (p *pipeline) list(ctx context.Context, out io.Writer) error {
	sweeps, err := p.store.ListSweeps(ctx)
	if err != nil {
		return err
	}
	for _, s := range sweeps {
		fmt.Fprintf(out, "%s  %-24s %-16s %.6f ± %.6f  best seed %d  %s\n",
			s.ID, s.Name, s.Status, s.Mean, s.Std, s.BestSeed, s.FinishedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
