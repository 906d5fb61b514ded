// SPDX-License-Identifier: MIT
package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cellsweep/preprocess"
	"github.com/katalvlaran/cellsweep/store"
	"github.com/katalvlaran/cellsweep/sweep"
	"github.com/katalvlaran/cellsweep/train"
)

var (
	_ preprocess.ArtifactStore = (*store.Store)(nil)
	_ train.Checkpointer       = (*store.Store)(nil)
	_ sweep.Sink               = (*store.Store)(nil)
)

func open(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "cellsweep.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestArtifacts(t *testing.T) {
	ctx := context.Background()
	s := open(t)

	_, err := s.LoadArtifact(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SaveArtifact(ctx, "sweep-a/seed-0/best", []byte("v1")))
	require.NoError(t, s.SaveArtifact(ctx, "sweep-a/seed-0/best", []byte("v2")))
	require.NoError(t, s.SaveArtifact(ctx, "sweep-a/seed-1/best", []byte("x")))
	require.NoError(t, s.SaveArtifact(ctx, "preprocess/abc", []byte("{}")))

	got, err := s.LoadArtifact(ctx, "sweep-a/seed-0/best")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	names, err := s.ListArtifacts(ctx, "sweep-a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"sweep-a/seed-0/best", "sweep-a/seed-1/best"}, names)
}

func sampleResult(id string) *sweep.Result {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &sweep.Result{
		ID:         id,
		Name:       "synthetic",
		Metric:     "mae",
		Direction:  train.Minimize,
		StartSeed:  0,
		StopSeed:   1,
		StartedAt:  start,
		FinishedAt: start.Add(time.Minute),
		Status:     sweep.StatusPartiallyFailed,
		Aggregate:  sweep.Aggregate{Mean: 0.5, BestSeed: 0, BestMetric: 0.5, Successful: 1, Failed: 1},
		Runs: []train.RunRecord{
			{Seed: 0, Status: train.StatusEarlyStopped, BestMetric: 0.5, BestEpoch: 2, EarlyStopEpoch: 4, EpochsRun: 4, FinalLR: 0.001,
				FinalMetric: 0.6, Curve: []train.CurvePoint{{Epoch: 1, Train: 1, Eval: 0.7, LR: 0.001}, {Epoch: 2, Train: 0.8, Eval: 0.5, LR: 0.001}}},
			{Seed: 1, Status: train.StatusFailed, Error: "train: divergence", EpochsRun: 1},
		},
	}
}

func TestSweeps_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	res := sampleResult("s1")
	require.NoError(t, s.SaveSweep(ctx, res))

	back, err := s.LoadSweep(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, res.StartedAt.Equal(back.StartedAt))
	back.StartedAt, back.FinishedAt = res.StartedAt, res.FinishedAt
	assert.Equal(t, res, back)

	runs, err := s.Runs(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, res.Runs, runs)

	_, err = s.LoadSweep(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSweeps_ReplaceAndList(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	first := sampleResult("s1")
	require.NoError(t, s.SaveSweep(ctx, first))

	updated := sampleResult("s1")
	updated.Runs = updated.Runs[:1]
	updated.Status = sweep.StatusComplete
	require.NoError(t, s.SaveSweep(ctx, updated))

	later := sampleResult("s2")
	later.FinishedAt = later.FinishedAt.Add(time.Hour)
	require.NoError(t, s.SaveSweep(ctx, later))

	runs, err := s.Runs(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	list, err := s.ListSweeps(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s2", list[0].ID)
	assert.Equal(t, sweep.StatusComplete, list[1].Status)
	assert.Equal(t, 0.5, list[1].Mean)
}
