// Package cellsweep turns molecular graphs into cell complexes and runs
// seed sweeps of a readout model over them.
//
// What is inside?
//
//	core/        — Graph, Vertex and Edge with per-element feature vectors
//	builder/     — deterministic constructors (paths, cycles, fused rings, grids)
//	rings/       — bounded simple-cycle extraction with canonical traversals
//	cellcomplex/ — 0/1/2-cells, boundary and coboundary adjacency, feature pooling
//	dataset/     — record sources, splits, synthetic molecules and ring lookup
//	preprocess/  — parallel lifting pool with failure budget, LRU and artifact cache
//	model/       — pooled readout, losses, metrics and optimizers
//	train/       — one seeded run: epochs, evaluation, plateau/step schedules, early stop
//	sweep/       — seed-range controller and aggregate statistics
//	store/       — SQLite persistence of artifacts, sweeps, runs and curves
//	report/      — YAML artifact and text summary of a sweep
//	config/      — viper settings and logger factory
//	metrics/     — Prometheus counters and gauges
//
// A sweep in code:
//
//	ds, _ := preprocess.New(preprocess.WithJobs(8)).Run(ctx, src.Name(), records)
//	data, _ := train.NewData(ds, split)
//	spec, _ := model.SpecFor(ds.Complexes, 64)
//	ctrl, _ := sweep.New(sweep.Config{StopSeed: 9, Parallelism: 2, Metric: "mae"},
//		func(info sweep.RunInfo) (sweep.Runner, error) {
//			return train.NewRunner(cfg.RunConfig(info.Seed, ""), model.ReadoutFactory(spec), data)
//		})
//	res, err := ctrl.Run(ctx)
//
// The cellsweep command in cmd/cellsweep wires the same pipeline from a YAML
// config file, flags and CELLSWEEP_* environment variables.
package cellsweep
