// SPDX-License-Identifier: MIT
// Package sweep implements result and curve aggregation.

package sweep

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/cellsweep/train"
)

// usable reports whether a run contributes to aggregation: it did not fail
// and it evaluated at least once.
func usable(r train.RunRecord) bool {
	return r.Status.Succeeded() && r.BestEpoch > 0
}

// Summarise computes mean and population std of the best metric over usable
// runs, and the best seed under dir (ties go to the earlier run).
// No usable run ⇒ ErrAggregation.
func Summarise(runs []train.RunRecord, dir train.Direction) (Aggregate, error) {
	var agg Aggregate
	values := make([]float64, 0, len(runs))
	for _, r := range runs {
		if !usable(r) {
			agg.Failed++
			continue
		}
		if len(values) == 0 || dir.Better(r.BestMetric, agg.BestMetric) {
			agg.BestSeed, agg.BestMetric = r.Seed, r.BestMetric
		}
		values = append(values, r.BestMetric)
	}
	agg.Successful = len(values)
	if len(values) == 0 {
		return agg, ErrAggregation
	}
	mean, variance := stat.PopMeanVariance(values, nil)
	agg.Mean, agg.Std = mean, math.Sqrt(variance)

	return agg, nil
}

// SummariseCurves averages evaluation curves of usable runs over their
// common prefix. Nil when no usable run carries a curve.
func SummariseCurves(runs []train.RunRecord, dir train.Direction) *CurveSummary {
	var (
		curves [][]float64
		owners []train.RunRecord
	)
	for _, r := range runs {
		if usable(r) && len(r.Curve) > 0 {
			curves = append(curves, r.EvalCurve())
			owners = append(owners, r)
		}
	}
	if len(curves) == 0 {
		return nil
	}
	n := len(curves[0])
	for _, c := range curves[1:] {
		n = min(n, len(c))
	}

	sum := &CurveSummary{
		MeanCurve: make([]float64, n),
		StdCurve:  make([]float64, n),
	}
	column := make([]float64, len(curves))
	for i := 0; i < n; i++ {
		for k, c := range curves {
			column[k] = c[i]
		}
		m, v := stat.PopMeanVariance(column, nil)
		sum.MeanCurve[i], sum.StdCurve[i] = m, math.Sqrt(v)
		if i == 0 || dir.Better(m, sum.MeanCurve[sum.BestIndex]) {
			sum.BestIndex = i
		}
	}
	sum.Mean = sum.MeanCurve[sum.BestIndex]
	sum.Std = sum.StdCurve[sum.BestIndex]
	sum.BestEpoch = owners[0].Curve[sum.BestIndex].Epoch

	for k, c := range curves {
		sum.PerSeed = append(sum.PerSeed, SeedCurveStats{
			Seed:   owners[k].Seed,
			Mean:   stat.Mean(c, nil),
			Max:    floats.Max(c),
			Min:    floats.Min(c),
			Median: median(c),
		})
	}

	return sum
}

// median averages the two middle values of an even-length sample.
func median(xs []float64) float64 {
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}

	return (s[mid-1] + s[mid]) / 2
}
