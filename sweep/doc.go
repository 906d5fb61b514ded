// Package sweep repeats one training protocol over an inclusive seed range
// and aggregates the per-seed results.
//
// Runs are scheduled onto Parallelism device slots (a weighted semaphore);
// results are stored by seed position, so sequential and concurrent
// schedules produce identical aggregates. Failed runs are recorded and
// excluded from aggregation; a sweep where every run failed returns
// ErrAggregation.
//
// With curve dumping enabled, CurveSummary reproduces the classic k-fold
// report: the evaluation curves are averaged, the best averaged index is
// picked and the spread across seeds at that index is reported, together
// with per-seed mean, max, min and median.
package sweep
