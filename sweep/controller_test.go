// SPDX-License-Identifier: MIT
package sweep_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/cellsweep/sweep"
	"github.com/katalvlaran/cellsweep/train"
)

// fakeRunner returns a scripted record after an optional delay.
type fakeRunner struct {
	seed   uint64
	metric float64
	curve  []float64
	fail   bool
	delay  time.Duration
	onRun  func()
}

func (f fakeRunner) Run(ctx context.Context) (train.RunRecord, error) {
	if f.onRun != nil {
		f.onRun()
	}
	time.Sleep(f.delay)
	rec := train.RunRecord{Seed: f.seed, BestMetric: f.metric, BestEpoch: 1, EpochsRun: 1, Status: train.StatusCompleted}
	for i, v := range f.curve {
		rec.Curve = append(rec.Curve, train.CurvePoint{Epoch: i + 1, Eval: v})
	}
	if f.fail {
		rec.Status = train.StatusFailed
		rec.BestEpoch = 0
		return rec, fmt.Errorf("train: seed %d: %w", f.seed, train.ErrDivergence)
	}

	return rec, nil
}

func script(metrics map[uint64]float64, failing ...uint64) sweep.RunnerFactory {
	fail := map[uint64]bool{}
	for _, s := range failing {
		fail[s] = true
	}
	return func(info sweep.RunInfo) (sweep.Runner, error) {
		return fakeRunner{
			seed:   info.Seed,
			metric: metrics[info.Seed],
			fail:   fail[info.Seed],
			delay:  time.Duration(5-info.Seed%5) * time.Millisecond,
		}, nil
	}
}

func cfg(start, stop uint64, par int) sweep.Config {
	return sweep.Config{Name: "test", StartSeed: start, StopSeed: stop, Parallelism: par, Metric: "mae", Direction: train.Minimize}
}

func TestSweep_PartialFailureAggregate(t *testing.T) {
	c, err := sweep.New(cfg(0, 2, 2), script(map[uint64]float64{0: 0.5, 2: 0.7}, 1))
	require.NoError(t, err)

	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sweep.StatusPartiallyFailed, res.Status)
	assert.Equal(t, 2, res.Aggregate.Successful)
	assert.Equal(t, 1, res.Aggregate.Failed)
	assert.InDelta(t, 0.6, res.Aggregate.Mean, 1e-12)
	assert.InDelta(t, 0.1, res.Aggregate.Std, 1e-12)
	assert.Equal(t, uint64(0), res.Aggregate.BestSeed)

	require.Len(t, res.Runs, 3)
	for i, r := range res.Runs {
		assert.Equal(t, uint64(i), r.Seed)
	}
	assert.Equal(t, train.StatusFailed, res.Runs[1].Status)
	assert.Contains(t, res.Runs[1].Error, "divergence")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, uint64(1), res.Errors[0].Seed)
	assert.ErrorIs(t, &res.Errors[0], train.ErrDivergence)
	assert.NotEmpty(t, res.ID)
}

func TestSweep_AllFailed(t *testing.T) {
	c, err := sweep.New(cfg(3, 5, 3), script(nil, 3, 4, 5))
	require.NoError(t, err)
	res, err := c.Run(context.Background())
	require.ErrorIs(t, err, sweep.ErrAggregation)
	require.NotNil(t, res)
	assert.Equal(t, sweep.StatusFailed, res.Status)
	assert.Equal(t, 3, res.Aggregate.Failed)
}

func TestSweep_ScheduleIndependence(t *testing.T) {
	metrics := map[uint64]float64{10: 0.31, 11: 0.27, 12: 0.44, 13: 0.27, 14: 0.39}
	var results []*sweep.Result
	for _, par := range []int{1, 2, 5} {
		c, err := sweep.New(cfg(10, 14, par), script(metrics, 12), sweep.WithID("fixed"))
		require.NoError(t, err)
		res, err := c.Run(context.Background())
		require.NoError(t, err)
		results = append(results, res)
	}
	for _, r := range results[1:] {
		assert.Equal(t, results[0].Aggregate, r.Aggregate)
		assert.Equal(t, results[0].Runs, r.Runs)
	}
	// Tie between 11 and 13 goes to the lower seed.
	assert.Equal(t, uint64(11), results[0].Aggregate.BestSeed)
}

func TestSweep_MaximizeBestSeed(t *testing.T) {
	c := mustController(t, sweep.Config{StartSeed: 0, StopSeed: 2, Parallelism: 1, Direction: train.Maximize},
		script(map[uint64]float64{0: 0.5, 1: 0.9, 2: 0.7}))
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Aggregate.BestSeed)
	assert.Equal(t, 0.9, res.Aggregate.BestMetric)
	assert.Equal(t, sweep.StatusComplete, res.Status)
}

func TestSweep_ParallelismBound(t *testing.T) {
	var active, peak atomic.Int32
	factory := func(info sweep.RunInfo) (sweep.Runner, error) {
		return fakeRunner{seed: info.Seed, metric: 1, delay: 5 * time.Millisecond, onRun: func() {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
		}}, nil
	}
	wrapped := func(info sweep.RunInfo) (sweep.Runner, error) {
		r, _ := factory(info)
		return doneHook{r, func() { active.Add(-1) }}, nil
	}
	res, err := mustController(t, cfg(0, 7, 2), wrapped).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, res.Aggregate.Successful)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestSweep_CancelledBeforeSlots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := mustController(t, cfg(0, 2, 1), script(map[uint64]float64{})).Run(ctx)
	require.ErrorIs(t, err, sweep.ErrResourceExhausted)
	assert.ErrorIs(t, err, sweep.ErrAggregation)
	assert.Len(t, res.Errors, 3)
	for _, r := range res.Runs {
		assert.Equal(t, train.StatusFailed, r.Status)
	}
}

func TestSweep_FactoryError(t *testing.T) {
	factory := func(info sweep.RunInfo) (sweep.Runner, error) {
		if info.Seed == 1 {
			return nil, errors.New("no device")
		}
		return fakeRunner{seed: info.Seed, metric: 2}, nil
	}
	res, err := mustController(t, cfg(0, 1, 1), factory).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sweep.StatusPartiallyFailed, res.Status)
	assert.Contains(t, res.Runs[1].Error, "no device")
}

func TestSweep_CurveSummary(t *testing.T) {
	curves := map[uint64][]float64{
		0: {1, 0.5, 0.75},
		1: {0.75, 0.25, 0.5, 0.25},
	}
	factory := func(info sweep.RunInfo) (sweep.Runner, error) {
		return fakeRunner{seed: info.Seed, metric: 0.1, curve: curves[info.Seed]}, nil
	}
	c := cfg(0, 1, 2)
	c.DumpCurves = true
	res, err := mustController(t, c, factory).Run(context.Background())
	require.NoError(t, err)

	cs := res.Curves
	require.NotNil(t, cs)
	assert.Equal(t, []float64{0.875, 0.375, 0.625}, cs.MeanCurve)
	assert.Equal(t, 1, cs.BestIndex)
	assert.Equal(t, 2, cs.BestEpoch)
	assert.Equal(t, 0.375, cs.Mean)
	assert.InDelta(t, 0.125, cs.Std, 1e-12)
	require.Len(t, cs.PerSeed, 2)
	assert.Equal(t, sweep.SeedCurveStats{Seed: 1, Mean: 0.4375, Max: 0.75, Min: 0.25, Median: 0.375}, cs.PerSeed[1])
	assert.Equal(t, 0.75, cs.PerSeed[0].Median)
}

func TestSweep_TracingAndSink(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	sink := &memSink{}

	c := mustController(t, cfg(0, 2, 2), script(map[uint64]float64{0: 1, 1: 2}, 2),
		sweep.WithTracer(tp.Tracer("test")), sweep.WithSink(sink))
	res, err := c.Run(context.Background())
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 4)
	names := map[string]int{}
	for _, s := range spans {
		names[s.Name()]++
	}
	assert.Equal(t, map[string]int{"sweep.Run": 1, "sweep.run": 3}, names)
	require.Len(t, sink.got, 1)
	assert.Same(t, res, sink.got[0])
}

func TestSweep_SinkErrorSurfaces(t *testing.T) {
	c := mustController(t, cfg(0, 0, 1), script(map[uint64]float64{0: 1}), sweep.WithSink(&memSink{err: errors.New("disk full")}))
	res, err := c.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, sweep.StatusComplete, res.Status)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	_, err := sweep.New(cfg(3, 2, 1), script(nil))
	assert.ErrorIs(t, err, sweep.ErrConfig)
	_, err = sweep.New(cfg(0, 2, 0), script(nil))
	assert.ErrorIs(t, err, sweep.ErrConfig)
	_, err = sweep.New(cfg(0, 2, 1), nil)
	assert.ErrorIs(t, err, sweep.ErrConfig)
	assert.Equal(t, []uint64{4, 5, 6}, cfg(4, 6, 1).Seeds())
}

func TestConfig_SeedRangeBounded(t *testing.T) {
	full := cfg(0, math.MaxUint64, 1)
	assert.ErrorIs(t, full.Validate(), sweep.ErrConfig)
	assert.Nil(t, full.Seeds())

	over := cfg(10, 10+sweep.MaxSeeds, 1)
	assert.ErrorIs(t, over.Validate(), sweep.ErrConfig)

	edge := cfg(10, 10+sweep.MaxSeeds-1, 1)
	require.NoError(t, edge.Validate())
	seeds := edge.Seeds()
	assert.Len(t, seeds, sweep.MaxSeeds)
	assert.Equal(t, uint64(10+sweep.MaxSeeds-1), seeds[len(seeds)-1])
}

func mustController(t *testing.T, c sweep.Config, f sweep.RunnerFactory, opts ...sweep.Option) *sweep.Controller {
	t.Helper()
	ctl, err := sweep.New(c, f, opts...)
	require.NoError(t, err)

	return ctl
}

type doneHook struct {
	sweep.Runner
	done func()
}

func (d doneHook) Run(ctx context.Context) (train.RunRecord, error) {
	defer d.done()
	return d.Runner.Run(ctx)
}

type memSink struct {
	mu  sync.Mutex
	got []*sweep.Result
	err error
}

func (m *memSink) SaveSweep(_ context.Context, res *sweep.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.got = append(m.got, res)

	return nil
}
