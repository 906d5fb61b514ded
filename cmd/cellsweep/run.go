// SPDX-License-Identifier: MIT
package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/cellsweep/config"
)

func newRunCmd(mgr *config.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a seed sweep",
		Long:  `Preprocess the dataset, train one run per seed and print the aggregate.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPipeline(mgr)
			if err != nil {
				return err
			}
			defer p.Close()

			return p.runSweep(cmd.Context(), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.String("name", "", "Sweep name")
	f.Uint64("start-seed", 0, "First seed (inclusive)")
	f.Uint64("stop-seed", 9, "Last seed (inclusive)")
	f.Int("devices", 1, "Concurrent runs")
	f.Int("epochs", 100, "Epoch budget per run")
	f.Bool("early-stop", false, "Stop a run once the metric stalls for --patience evaluations")
	f.Bool("dump-curves", false, "Keep per-epoch curves and summarise them")
	f.String("report", "", "Write the sweep result as YAML to this path")
	f.String("metrics", "", "Write Prometheus metrics in textfile format to this path")
	bind(mgr, f, map[string]string{
		"sweep.name":          "name",
		"sweep.start_seed":    "start-seed",
		"sweep.stop_seed":     "stop-seed",
		"sweep.devices":       "devices",
		"train.epochs":        "epochs",
		"train.early_stop":    "early-stop",
		"sweep.dump_curves":   "dump-curves",
		"output.report_path":  "report",
		"output.metrics_path": "metrics",
	})

	return cmd
}

func newPreprocessCmd(mgr *config.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preprocess",
		Short: "Lift the dataset to cell complexes and cache the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPipeline(mgr)
			if err != nil {
				return err
			}
			defer p.Close()

			return p.preprocessOnly(cmd.Context(), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.Int("jobs", 4, "Preprocessing workers")
	f.Int("max-ring-size", 6, "Largest ring lifted to a 2-cell")
	bind(mgr, f, map[string]string{
		"preprocess.jobs":       "jobs",
		"complex.max_ring_size": "max-ring-size",
	})

	return cmd
}

func newListCmd(mgr *config.Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sweeps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPipeline(mgr)
			if err != nil {
				return err
			}
			defer p.Close()

			return p.list(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
