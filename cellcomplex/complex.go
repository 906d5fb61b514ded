// SPDX-License-Identifier: MIT
// Package cellcomplex implements incidence derivation, validation and queries.

package cellcomplex

import (
	"fmt"
	"slices"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Reindex recomputes Coboundary, Upper and (if previously present) Lower
// from the Boundary lists. Call it after editing Boundary by hand.
func (cx *Complex) Reindex() {
	cx.reindex(cx.Lower != nil)
}

func (cx *Complex) reindex(withLower bool) {
	// 1) Coboundary = transpose of Boundary.
	for d := range cx.Cells {
		for i := range cx.Cells[d] {
			cx.Cells[d][i].Coboundary = nil
		}
	}
	for d := 1; d < len(cx.Cells); d++ {
		for i, c := range cx.Cells[d] {
			for _, b := range c.Boundary {
				if b < 0 || b >= len(cx.Cells[d-1]) {
					continue // reported by Validate
				}
				lo := &cx.Cells[d-1][b]
				lo.Coboundary = append(lo.Coboundary, i)
			}
		}
	}
	for d := range cx.Cells {
		for i := range cx.Cells[d] {
			sort.Ints(cx.Cells[d][i].Coboundary)
		}
	}

	// 2) Upper adjacency through shared coboundary cells.
	cx.Upper = make([][][]int, len(cx.Cells))
	for d := range cx.Cells {
		cx.Upper[d] = make([][]int, len(cx.Cells[d]))
		if d+1 >= len(cx.Cells) {
			continue
		}
		for _, hi := range cx.Cells[d+1] {
			linkAll(cx.Upper[d], hi.Boundary, len(cx.Cells[d]))
		}
		normalise(cx.Upper[d])
	}

	// 3) Lower adjacency through shared boundary cells.
	cx.Lower = nil
	if !withLower {
		return
	}
	cx.Lower = make([][][]int, len(cx.Cells))
	for d := range cx.Cells {
		cx.Lower[d] = make([][]int, len(cx.Cells[d]))
		if d == 0 {
			continue
		}
		for _, lo := range cx.Cells[d-1] {
			linkAll(cx.Lower[d], lo.Coboundary, len(cx.Cells[d]))
		}
		normalise(cx.Lower[d])
	}
}

// linkAll connects every pair of members in adj.
func linkAll(adj [][]int, members []int, n int) {
	for i, a := range members {
		for _, b := range members[i+1:] {
			if a < 0 || b < 0 || a >= n || b >= n || a == b {
				continue
			}
			adj[a] = append(adj[a], b)
			adj[b] = append(adj[b], a)
		}
	}
}

// normalise sorts and deduplicates every neighbor list.
func normalise(adj [][]int) {
	for i := range adj {
		sort.Ints(adj[i])
		adj[i] = slices.Compact(adj[i])
	}
}

// Validate checks the structural invariants:
//   - every d>0 cell has at least one boundary cell, all in range;
//   - Boundary holds no cell twice and Coboundary is strictly ascending;
//   - Coboundary is the exact inverse of Boundary.
//
// Violations are reported as ErrInvariant with the offending cell.
func (cx *Complex) Validate() error {
	if len(cx.Cells) != cx.MaxDim+1 {
		return fmt.Errorf("cellcomplex: %d arenas for max_dim %d: %w", len(cx.Cells), cx.MaxDim, ErrInvariant)
	}
	for d := range cx.Cells {
		for i, c := range cx.Cells[d] {
			if c.Dim != d || c.Index != i {
				return fmt.Errorf("cellcomplex: cell (%d,%d) tagged (%d,%d): %w", d, i, c.Dim, c.Index, ErrInvariant)
			}
			if d > 0 {
				if len(c.Boundary) == 0 {
					return fmt.Errorf("cellcomplex: cell (%d,%d) has empty boundary: %w", d, i, ErrInvariant)
				}
				if b, ok := repeated(slices.Sorted(slices.Values(c.Boundary))); ok {
					return fmt.Errorf("cellcomplex: cell (%d,%d) boundary repeats %d: %w", d, i, b, ErrInvariant)
				}
				for _, b := range c.Boundary {
					if b < 0 || b >= len(cx.Cells[d-1]) {
						return fmt.Errorf("cellcomplex: cell (%d,%d) boundary %d out of range: %w", d, i, b, ErrInvariant)
					}
					if !containsSorted(cx.Cells[d-1][b].Coboundary, i) {
						return fmt.Errorf("cellcomplex: cell (%d,%d) missing from coboundary of (%d,%d): %w", d, i, d-1, b, ErrInvariant)
					}
				}
			}
			for k := 1; k < len(c.Coboundary); k++ {
				if c.Coboundary[k] <= c.Coboundary[k-1] {
					return fmt.Errorf("cellcomplex: cell (%d,%d) coboundary not strictly ascending at %d: %w", d, i, k, ErrInvariant)
				}
			}
			for _, u := range c.Coboundary {
				if d+1 >= len(cx.Cells) || u < 0 || u >= len(cx.Cells[d+1]) {
					return fmt.Errorf("cellcomplex: cell (%d,%d) coboundary %d out of range: %w", d, i, u, ErrInvariant)
				}
				if !slices.Contains(cx.Cells[d+1][u].Boundary, i) {
					return fmt.Errorf("cellcomplex: cell (%d,%d) lists (%d,%d) which does not bound it: %w", d, i, d+1, u, ErrInvariant)
				}
			}
		}
	}

	return nil
}

func containsSorted(xs []int, x int) bool {
	_, ok := slices.BinarySearch(xs, x)

	return ok
}

// Counts returns the number of cells per dimension.
func (cx *Complex) Counts() []int {
	out := make([]int, len(cx.Cells))
	for d := range cx.Cells {
		out[d] = len(cx.Cells[d])
	}

	return out
}

// NumCells returns the total number of cells.
func (cx *Complex) NumCells() int {
	n := 0
	for d := range cx.Cells {
		n += len(cx.Cells[d])
	}

	return n
}

// FeatureDim returns the feature width of dimension d (0 if empty or featureless).
func (cx *Complex) FeatureDim(d int) int {
	if d < 0 || d >= len(cx.Cells) || len(cx.Cells[d]) == 0 {
		return 0
	}

	return len(cx.Cells[d][0].Features)
}

// BoundaryMatrix returns the 0/1 incidence matrix between dimensions d-1
// (rows) and d (columns). Both arenas must be non-empty.
func (cx *Complex) BoundaryMatrix(d int) (*mat.Dense, error) {
	if d < 1 || d >= len(cx.Cells) {
		return nil, fmt.Errorf("cellcomplex: BoundaryMatrix: dim %d outside [1,%d]: %w", d, cx.MaxDim, ErrInvalidOption)
	}
	rows, cols := len(cx.Cells[d-1]), len(cx.Cells[d])
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("cellcomplex: BoundaryMatrix: dim %d is %dx%d: %w", d, rows, cols, ErrEmptyDimension)
	}
	m := mat.NewDense(rows, cols, nil)
	for j, c := range cx.Cells[d] {
		for _, i := range c.Boundary {
			m.Set(i, j, 1)
		}
	}

	return m, nil
}

// Equal reports structural and feature equality with other.
func (cx *Complex) Equal(other *Complex) bool {
	if cx == nil || other == nil {
		return cx == other
	}
	if cx.MaxDim != other.MaxDim || cx.UseCoboundaries != other.UseCoboundaries || len(cx.Cells) != len(other.Cells) {
		return false
	}
	for d := range cx.Cells {
		if len(cx.Cells[d]) != len(other.Cells[d]) {
			return false
		}
		for i := range cx.Cells[d] {
			if !cellEqual(cx.Cells[d][i], other.Cells[d][i]) {
				return false
			}
		}
	}
	if !adjEqual(cx.Upper, other.Upper) {
		return false
	}

	return adjEqual(cx.Lower, other.Lower)
}

func cellEqual(a, b Cell) bool {
	return a.Dim == b.Dim && a.Index == b.Index &&
		slices.Equal(a.Vertices, b.Vertices) &&
		slices.Equal(a.Boundary, b.Boundary) &&
		slices.Equal(a.Coboundary, b.Coboundary) &&
		slices.Equal(a.Features, b.Features) &&
		slices.Equal(a.CoboundaryFeatures, b.CoboundaryFeatures)
}

func adjEqual(a, b [][][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for d := range a {
		if len(a[d]) != len(b[d]) {
			return false
		}
		for i := range a[d] {
			if !slices.Equal(a[d][i], b[d][i]) {
				return false
			}
		}
	}

	return true
}
