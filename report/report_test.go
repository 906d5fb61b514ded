// SPDX-License-Identifier: MIT
package report_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cellsweep/report"
	"github.com/katalvlaran/cellsweep/sweep"
	"github.com/katalvlaran/cellsweep/train"
)

func result() *sweep.Result {
	return &sweep.Result{
		ID:         "7f0c",
		Name:       "ring-lookup",
		Metric:     "mae",
		Direction:  train.Minimize,
		StopSeed:   1,
		StartedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		FinishedAt: time.Date(2026, 1, 2, 3, 9, 5, 0, time.UTC),
		Status:     sweep.StatusPartiallyFailed,
		Aggregate:  sweep.Aggregate{Mean: 0.25, BestSeed: 0, BestMetric: 0.25, Successful: 1, Failed: 1},
		Curves: &sweep.CurveSummary{
			MeanCurve: []float64{0.5, 0.25}, StdCurve: []float64{0, 0}, BestIndex: 1, BestEpoch: 2, Mean: 0.25,
			PerSeed: []sweep.SeedCurveStats{{Seed: 0, Mean: 0.375, Max: 0.5, Min: 0.25, Median: 0.375}},
		},
		Runs: []train.RunRecord{
			{Seed: 0, Status: train.StatusCompleted, BestMetric: 0.25, BestEpoch: 2, EpochsRun: 2,
				Curve: []train.CurvePoint{{Epoch: 1, Eval: 0.5}, {Epoch: 2, Eval: 0.25}}},
			{Seed: 1, Status: train.StatusFailed, Error: "train: divergence"},
		},
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	res := result()
	require.NoError(t, report.WriteFile(path, res))

	back, err := report.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, res, back)
}

func TestWriteYAML_Keys(t *testing.T) {
	var b strings.Builder
	require.NoError(t, report.WriteYAML(&b, result()))
	out := b.String()
	for _, key := range []string{"id: 7f0c", "direction: min", "status: partially_failed", "best_seed: 0", "mean_curve:"} {
		assert.Contains(t, out, key)
	}
}

func TestSummary(t *testing.T) {
	var b strings.Builder
	require.NoError(t, report.Summary(&b, result()))
	out := b.String()
	assert.Contains(t, out, "Seed 0:  0.250 @ epoch 2")
	assert.Contains(t, out, "Seed 1:  failed (train: divergence)")
	assert.Contains(t, out, "===== Median performance per seed")
	assert.Contains(t, out, "Result:         0.250000 ± 0.000000")
	assert.Contains(t, out, "Runs:           1 ok, 1 failed")
}
