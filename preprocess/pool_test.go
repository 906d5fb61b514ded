// SPDX-License-Identifier: MIT
package preprocess_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cellsweep/cellcomplex"
	"github.com/katalvlaran/cellsweep/dataset"
	"github.com/katalvlaran/cellsweep/metrics"
	"github.com/katalvlaran/cellsweep/preprocess"
)

func molecules(t *testing.T, n int) []dataset.Record {
	t.Helper()
	recs, err := dataset.SyntheticMolecules{Count: n, MaxRings: 3, AtomTypes: 4, Seed: 5}.Load(context.Background())
	require.NoError(t, err)

	return recs
}

func TestPool_DeterministicAcrossJobCounts(t *testing.T) {
	recs := molecules(t, 40)

	seq, err := preprocess.New(preprocess.WithJobs(1)).Run(context.Background(), "mol", recs)
	require.NoError(t, err)
	par, err := preprocess.New(preprocess.WithJobs(8)).Run(context.Background(), "mol", recs)
	require.NoError(t, err)
	again, err := preprocess.New(preprocess.WithJobs(8)).Run(context.Background(), "mol", recs)
	require.NoError(t, err)

	require.Equal(t, len(recs), par.Len())
	assert.Equal(t, seq.Fingerprint, par.Fingerprint)
	for i := range recs {
		assert.Equal(t, recs[i].ID, par.IDs[i])
		assert.Equal(t, recs[i].Target, par.Targets[i])
		assert.True(t, seq.Complexes[i].Equal(par.Complexes[i]), "record %d", i)
		assert.True(t, par.Complexes[i].Equal(again.Complexes[i]), "record %d", i)
		assert.NoError(t, par.Complexes[i].Validate())
	}
	assert.Empty(t, par.Failures)
}

func TestPool_ToleratesFailuresUpToThreshold(t *testing.T) {
	recs := molecules(t, 10)
	recs[2].Graph = nil
	recs[7].Graph = nil

	var buf syncBuffer
	pool := preprocess.New(
		preprocess.WithJobs(3),
		preprocess.WithMaxFailures(2),
		preprocess.WithLogger(zerolog.New(&buf)),
	)
	ds, err := pool.Run(context.Background(), "mol", recs)
	require.NoError(t, err)
	require.Len(t, ds.Failures, 2)
	assert.Equal(t, 2, ds.Failures[0].Index)
	assert.Equal(t, recs[7].ID, ds.Failures[1].ID)
	assert.Nil(t, ds.Complexes[2])
	assert.Equal(t, []int{0, 1, 3}, ds.Usable([]int{0, 1, 2, 3}))
	assert.Contains(t, buf.String(), recs[2].ID)
}

func TestPool_FailureThresholdIsFatal(t *testing.T) {
	recs := molecules(t, 12)
	for _, i := range []int{1, 4, 9} {
		recs[i].Graph = nil
	}

	_, err := preprocess.New(preprocess.WithJobs(2), preprocess.WithMaxFailures(1)).
		Run(context.Background(), "mol", recs)
	require.ErrorIs(t, err, preprocess.ErrFailureThreshold)

	var rerr *preprocess.RecordError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 1, rerr.Index)
	assert.Equal(t, recs[1].ID, rerr.ID)
}

func TestPool_ResourceExhausted(t *testing.T) {
	recs := molecules(t, 4)

	_, err := preprocess.New(preprocess.WithJobs(0)).Run(context.Background(), "mol", recs)
	assert.ErrorIs(t, err, preprocess.ErrResourceExhausted)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = preprocess.New().Run(ctx, "mol", recs)
	assert.ErrorIs(t, err, preprocess.ErrResourceExhausted)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPool_InvalidComplexOptions(t *testing.T) {
	_, err := preprocess.New(preprocess.WithComplexOptions(cellcomplex.WithMaxDim(-1))).
		Run(context.Background(), "mol", molecules(t, 2))
	assert.ErrorIs(t, err, cellcomplex.ErrInvalidOption)
}

func TestPool_MaxDimOneSkipsRings(t *testing.T) {
	ds, err := preprocess.New(preprocess.WithComplexOptions(cellcomplex.WithMaxDim(1))).
		Run(context.Background(), "mol", molecules(t, 3))
	require.NoError(t, err)
	for _, cx := range ds.Complexes {
		assert.Len(t, cx.Counts(), 2)
	}
}

func TestPool_CacheHit(t *testing.T) {
	recs := molecules(t, 6)
	cache := preprocess.NewCache(4)
	pool := preprocess.New(preprocess.WithCache(cache))

	first, err := pool.Run(context.Background(), "mol", recs)
	require.NoError(t, err)
	before := testutil.ToFloat64(metrics.PreprocessRecords.WithLabelValues(metrics.OutcomeCached))

	second, err := pool.Run(context.Background(), "mol", recs)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, before+6, testutil.ToFloat64(metrics.PreprocessRecords.WithLabelValues(metrics.OutcomeCached)))

	// Different options miss.
	third, err := preprocess.New(preprocess.WithCache(cache), preprocess.WithComplexOptions(cellcomplex.WithMaxRingSize(5))).
		Run(context.Background(), "mol", recs)
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, third.Fingerprint)
	assert.Equal(t, 2, cache.Len())
}

func TestPool_ArtifactStoreRoundTrip(t *testing.T) {
	recs := molecules(t, 5)
	st := &memStore{blobs: map[string][]byte{}}

	first, err := preprocess.New(preprocess.WithStore(st)).Run(context.Background(), "mol", recs)
	require.NoError(t, err)
	require.Len(t, st.blobs, 1)

	second, err := preprocess.New(preprocess.WithStore(st)).Run(context.Background(), "mol", recs)
	require.NoError(t, err)
	assert.Equal(t, 1, st.hits)
	for i := range recs {
		assert.True(t, first.Complexes[i].Equal(second.Complexes[i]))
	}
}

func TestFingerprint_DependsOnInputs(t *testing.T) {
	recs := molecules(t, 3)
	o := preprocess.DefaultOptions()
	a := preprocess.Fingerprint("mol", recs, o)
	assert.Equal(t, a, preprocess.Fingerprint("mol", recs, o))
	assert.NotEqual(t, a, preprocess.Fingerprint("other", recs, o))
	assert.NotEqual(t, a, preprocess.Fingerprint("mol", recs[:2], o))
	o.Complex.UseCoboundaries = true
	assert.NotEqual(t, a, preprocess.Fingerprint("mol", recs, o))

	o = preprocess.DefaultOptions()
	retarget := append([]dataset.Record(nil), recs...)
	retarget[1].Target += 1
	assert.NotEqual(t, a, preprocess.Fingerprint("mol", retarget, o))
}

// TestPool_CacheKeyedByContent runs two sources with equal names and ids but
// different seeds through one cached pool; the second must not reuse the first.
func TestPool_CacheKeyedByContent(t *testing.T) {
	ctx := context.Background()
	load := func(seed uint64) []dataset.Record {
		recs, err := dataset.SyntheticMolecules{Count: 12, MaxRings: 3, AtomTypes: 4, Seed: seed}.Load(ctx)
		require.NoError(t, err)
		return recs
	}
	a, b := load(1), load(2)
	require.Equal(t, a[0].ID, b[0].ID)
	require.NotEqual(t, dataset.Targets(a), dataset.Targets(b))

	p := preprocess.New(preprocess.WithJobs(2), preprocess.WithCache(preprocess.NewCache(4)))
	first, err := p.Run(ctx, "mol", a)
	require.NoError(t, err)
	second, err := p.Run(ctx, "mol", b)
	require.NoError(t, err)

	assert.NotEqual(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, dataset.Targets(b), second.Targets)
	assert.NotSame(t, first, second)
}

type memStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	hits  int
}

func (m *memStore) SaveArtifact(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = append([]byte(nil), data...)

	return nil
}

func (m *memStore) LoadArtifact(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[name]
	if !ok {
		return nil, fmt.Errorf("no artifact %q", name)
	}
	m.hits++

	return b, nil
}

type syncBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)

	return len(p), nil
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return string(b.buf)
}
