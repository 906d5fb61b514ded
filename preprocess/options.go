// SPDX-License-Identifier: MIT
// Package preprocess declares pool options and sentinel errors.

package preprocess

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/katalvlaran/cellsweep/cellcomplex"
	"github.com/katalvlaran/cellsweep/rings"
)

var (
	// ErrFailureThreshold aborts a pass whose failures exceed MaxFailures.
	ErrFailureThreshold = errors.New("preprocess: failure threshold exceeded")

	// ErrResourceExhausted indicates that no worker slot could be acquired.
	ErrResourceExhausted = errors.New("preprocess: worker resources exhausted")
)

// Defaults of a Pool.
const (
	DefaultJobs        = 4
	DefaultMaxFailures = 3
	DefaultRingSize    = 6
)

// Cache memoises preprocessed datasets by fingerprint.
type Cache = lru.Cache[string, *Dataset]

// NewCache returns an LRU holding up to size datasets. Panics if size < 1.
func NewCache(size int) *Cache {
	c, err := lru.New[string, *Dataset](size)
	if err != nil {
		panic(fmt.Sprintf("preprocess: NewCache(%d): %v", size, err))
	}

	return c
}

// Options configures a Pool.
type Options struct {
	Jobs        int
	MaxFailures int
	Complex     cellcomplex.Options
	Dedupe      rings.Dedupe

	cache  *Cache
	store  ArtifactStore
	logger zerolog.Logger
	tracer trace.Tracer
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns 4 workers, a failure budget of 3 and rings up to six atoms.
func DefaultOptions() Options {
	cx := cellcomplex.DefaultOptions()
	cx.MaxRingSize = DefaultRingSize

	return Options{
		Jobs:        DefaultJobs,
		MaxFailures: DefaultMaxFailures,
		Complex:     cx,
		Dedupe:      rings.ByVertexSet,
		logger:      zerolog.Nop(),
		tracer:      noop.NewTracerProvider().Tracer("cellsweep/preprocess"),
	}
}

// WithJobs sets the worker count. Values < 1 are rejected by Run with
// ErrResourceExhausted.
func WithJobs(n int) Option {
	return func(o *Options) { o.Jobs = n }
}

// WithMaxFailures sets how many failed records are tolerated. Panics if k < 0.
func WithMaxFailures(k int) Option {
	if k < 0 {
		panic("preprocess: WithMaxFailures(k<0)")
	}
	return func(o *Options) { o.MaxFailures = k }
}

// WithComplexOptions applies cellcomplex options to the per-record build.
// MaxRingSize also bounds ring extraction.
func WithComplexOptions(opts ...cellcomplex.Option) Option {
	return func(o *Options) {
		for _, opt := range opts {
			opt(&o.Complex)
		}
	}
}

// WithDedupe selects the ring identity used during extraction.
func WithDedupe(d rings.Dedupe) Option {
	return func(o *Options) { o.Dedupe = d }
}

// WithCache enables in-process memoisation.
func WithCache(c *Cache) Option {
	return func(o *Options) { o.cache = c }
}

// WithStore enables persistent memoisation of failure-free datasets.
func WithStore(s ArtifactStore) Option {
	return func(o *Options) { o.store = s }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithTracer sets the tracer. A nil tracer has no effect.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.tracer = t
		}
	}
}
