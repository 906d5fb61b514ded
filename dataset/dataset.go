// SPDX-License-Identifier: MIT
// Package dataset declares Record, Source, Split and split helpers.

package dataset

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/cellsweep/core"
)

var (
	// ErrEmpty indicates a source that produced no records.
	ErrEmpty = errors.New("dataset: no records")

	// ErrBadSplit indicates out-of-range, duplicate or missing split indices.
	ErrBadSplit = errors.New("dataset: invalid split")

	// ErrBadParam indicates an unusable source parameter.
	ErrBadParam = errors.New("dataset: invalid parameter")
)

// Record is one molecule with its regression target.
type Record struct {
	ID     string
	Graph  *core.Graph
	Target float64
}

// Source produces records. Load must be deterministic for a fixed configuration.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Record, error)
}

// Splitter is implemented by sources with a predefined split.
type Splitter interface {
	Split(n int) (Split, error)
}

// Split partitions record indices. Test may be empty.
type Split struct {
	Train []int `json:"train" yaml:"train"`
	Valid []int `json:"valid" yaml:"valid"`
	Test  []int `json:"test,omitempty" yaml:"test,omitempty"`
}

// Validate checks that indices are within [0,n), disjoint and that Train and
// Valid are non-empty.
func (s Split) Validate(n int) error {
	if len(s.Train) == 0 || len(s.Valid) == 0 {
		return fmt.Errorf("dataset: split needs train and valid indices: %w", ErrBadSplit)
	}
	seen := make([]bool, n)
	for _, part := range [][]int{s.Train, s.Valid, s.Test} {
		for _, i := range part {
			if i < 0 || i >= n {
				return fmt.Errorf("dataset: split index %d outside [0,%d): %w", i, n, ErrBadSplit)
			}
			if seen[i] {
				return fmt.Errorf("dataset: split index %d used twice: %w", i, ErrBadSplit)
			}
			seen[i] = true
		}
	}

	return nil
}

// RandomSplit shuffles 0..n-1 with rng and cuts it into train/valid/test
// by the given fractions; the remainder after train and valid goes to test.
func RandomSplit(n int, trainFrac, validFrac float64, rng *rand.Rand) (Split, error) {
	if trainFrac <= 0 || validFrac <= 0 || trainFrac+validFrac > 1 {
		return Split{}, fmt.Errorf("dataset: fractions %.3f/%.3f: %w", trainFrac, validFrac, ErrBadParam)
	}
	if rng == nil {
		return Split{}, fmt.Errorf("dataset: RandomSplit: nil rng: %w", ErrBadParam)
	}
	perm := rng.Perm(n)
	nt := int(float64(n) * trainFrac)
	nv := int(float64(n) * validFrac)
	if nt == 0 || nv == 0 {
		return Split{}, fmt.Errorf("dataset: %d records too few for split: %w", n, ErrBadSplit)
	}
	s := Split{
		Train: perm[:nt],
		Valid: perm[nt : nt+nv],
	}
	if nt+nv < n {
		s.Test = perm[nt+nv:]
	}

	return s, nil
}

// SplitFor returns src's own split when it implements Splitter, otherwise a
// seeded RandomSplit with an 80/10/10 partition.
func SplitFor(src Source, n int, seed uint64) (Split, error) {
	if sp, ok := src.(Splitter); ok {
		return sp.Split(n)
	}

	return RandomSplit(n, 0.8, 0.1, rand.New(rand.NewPCG(seed, seed)))
}

// Targets projects the record targets in order.
func Targets(recs []Record) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r.Target
	}

	return out
}

// Memory is a Source over a fixed record slice.
type Memory struct {
	name    string
	records []Record
	split   *Split
}

// NewMemory wraps records under name. Graphs are frozen in place.
func NewMemory(name string, records []Record) *Memory {
	for _, r := range records {
		if r.Graph != nil {
			r.Graph.Freeze()
		}
	}

	return &Memory{name: name, records: records}
}

// WithSplit fixes the split returned by Split.
func (m *Memory) WithSplit(s Split) *Memory {
	m.split = &s

	return m
}

// Name implements Source.
func (m *Memory) Name() string { return m.name }

// Load implements Source and returns a shallow copy of the record slice.
func (m *Memory) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.records) == 0 {
		return nil, fmt.Errorf("dataset: %s: %w", m.name, ErrEmpty)
	}

	return append([]Record(nil), m.records...), nil
}

// Split implements Splitter. Without a fixed split the first 80% train and
// the rest validate.
func (m *Memory) Split(n int) (Split, error) {
	if m.split != nil {
		return *m.split, m.split.Validate(n)
	}
	nt := n * 8 / 10
	if nt == 0 || nt == n {
		return Split{}, fmt.Errorf("dataset: %s: %d records too few for split: %w", m.name, n, ErrBadSplit)
	}
	s := Split{Train: seq(0, nt), Valid: seq(nt, n)}

	return s, nil
}

func seq(lo, hi int) []int {
	out := make([]int, hi-lo)
	for i := range out {
		out[i] = lo + i
	}

	return out
}

// recordRand derives an independent stream for record i of a seeded source.
func recordRand(seed uint64, i int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(i)*0x9e3779b97f4a7c15+1))
}
