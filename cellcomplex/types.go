// SPDX-License-Identifier: MIT
// Package cellcomplex declares Cell, Complex, build options and sentinel errors.

package cellcomplex

import (
	"errors"
	"fmt"
)

// Dimensions populated by Build.
const (
	DimVertex = 0
	DimEdge   = 1
	DimRing   = 2
)

var (
	// ErrDataIntegrity indicates a malformed graph/ring cross-reference.
	ErrDataIntegrity = errors.New("cellcomplex: data integrity violation")

	// ErrInvariant indicates a complex whose boundary/coboundary maps disagree.
	ErrInvariant = errors.New("cellcomplex: invariant violated")

	// ErrInvalidOption indicates an unusable build option value.
	ErrInvalidOption = errors.New("cellcomplex: invalid option")

	// ErrEmptyDimension indicates a matrix request over an empty arena.
	ErrEmptyDimension = errors.New("cellcomplex: empty dimension")
)

// InitMethod selects how derived cell features are pooled from their support.
type InitMethod string

const (
	// InitSum adds the member feature vectors.
	InitSum InitMethod = "sum"
	// InitMean averages the member feature vectors.
	InitMean InitMethod = "mean"
)

// Cell is a dimension-tagged member of a complex.
type Cell struct {
	Dim   int `json:"dim"`
	Index int `json:"index"`

	// Vertices is the sorted vertex support of the cell.
	Vertices []int `json:"vertices"`

	// Boundary holds indices into Cells[Dim-1], sorted ascending.
	Boundary []int `json:"boundary,omitempty"`

	// Coboundary holds indices into Cells[Dim+1], sorted ascending.
	Coboundary []int `json:"coboundary,omitempty"`

	Features []float64 `json:"features,omitempty"`

	// CoboundaryFeatures carries edge features propagated into a ring.
	CoboundaryFeatures []float64 `json:"coboundary_features,omitempty"`
}

// Complex is the full cell collection of one graph plus derived adjacency.
type Complex struct {
	// MaxDim is the configured dimension bound; len(Cells) == MaxDim+1.
	MaxDim int `json:"max_dim"`

	// Cells[d] is the arena of d-dimensional cells.
	Cells [][]Cell `json:"cells"`

	// Upper[d][i] lists d-cells sharing a (d+1)-cell with cell i.
	Upper [][][]int `json:"upper"`

	// Lower[d][i] lists d-cells sharing a (d-1)-cell with cell i; nil unless requested.
	Lower [][][]int `json:"lower,omitempty"`

	// UseCoboundaries records whether consumers should pass messages through coboundaries.
	UseCoboundaries bool `json:"use_coboundaries"`
}

// Options holds configurable parameters of Build.
type Options struct {
	// MaxDim bounds the complex dimension (≥ 0). Default 2.
	MaxDim int

	// MaxRingSize discards longer rings when > 0. Default 0 (keep every given ring).
	MaxRingSize int

	// Init pools support features into edge and ring features. Default InitSum.
	Init InitMethod

	// UseEdgeFeatures copies graph edge features into 1-cells.
	UseEdgeFeatures bool

	// UseCoboundaries enables coboundary features on rings.
	UseCoboundaries bool

	// IncludeDownAdj derives lower adjacency.
	IncludeDownAdj bool
}

// Option configures Build.
type Option func(*Options)

// DefaultOptions returns MaxDim=2, no ring bound, InitSum and every flag off.
func DefaultOptions() Options {
	return Options{
		MaxDim: DimRing,
		Init:   InitSum,
	}
}

// WithOptions replaces every build option at once.
func WithOptions(v Options) Option {
	return func(o *Options) { *o = v }
}

// WithMaxDim bounds the highest cell dimension.
func WithMaxDim(d int) Option {
	return func(o *Options) { o.MaxDim = d }
}

// WithMaxRingSize discards rings with more than n vertices (0 = unbounded).
func WithMaxRingSize(n int) Option {
	return func(o *Options) { o.MaxRingSize = n }
}

// WithInitMethod selects feature pooling.
func WithInitMethod(m InitMethod) Option {
	return func(o *Options) { o.Init = m }
}

// WithEdgeFeatures toggles copying of graph edge features.
func WithEdgeFeatures(on bool) Option {
	return func(o *Options) { o.UseEdgeFeatures = on }
}

// WithCoboundaries toggles coboundary usage and ring coboundary features.
func WithCoboundaries(on bool) Option {
	return func(o *Options) { o.UseCoboundaries = on }
}

// WithDownAdjacency toggles derivation of lower adjacency.
func WithDownAdjacency(on bool) Option {
	return func(o *Options) { o.IncludeDownAdj = on }
}

// Validate rejects meaningless option values with ErrInvalidOption.
func (o Options) Validate() error {
	if o.MaxDim < 0 {
		return fmt.Errorf("cellcomplex: max_dim=%d: %w", o.MaxDim, ErrInvalidOption)
	}
	if o.MaxRingSize < 0 {
		return fmt.Errorf("cellcomplex: max_ring_size=%d: %w", o.MaxRingSize, ErrInvalidOption)
	}
	if o.Init != InitSum && o.Init != InitMean {
		return fmt.Errorf("cellcomplex: init_method=%q: %w", o.Init, ErrInvalidOption)
	}

	return nil
}

// ParseInitMethod maps a configuration string to an InitMethod.
func ParseInitMethod(s string) (InitMethod, error) {
	switch m := InitMethod(s); m {
	case InitSum, InitMean:
		return m, nil
	default:
		return "", fmt.Errorf("cellcomplex: init_method=%q: %w", s, ErrInvalidOption)
	}
}
