// SPDX-License-Identifier: MIT
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/cellsweep/config"
)

// newRootCmd wires every subcommand to one config.Manager so flags, files and
// environment overrides meet in a single viper instance.
func newRootCmd() *cobra.Command {
	mgr := config.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "cellsweep",
		Short: "Cell complex seed sweeps",
		Long: `cellsweep lifts molecular graphs to cell complexes (vertices, bonds and
rings up to a size bound), trains a readout once per seed and aggregates
the best validation metric across the seed range.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile == "" {
				return nil
			}
			return mgr.LoadFromFile(cfgFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("db", "cellsweep.db", "SQLite database for artifacts and sweep results")
	pf.String("dataset", config.DatasetSynthetic, "Dataset (synthetic, ring_lookup)")
	bind(mgr, pf, map[string]string{
		"logging.level":  "log-level",
		"output.db_path": "db",
		"dataset.name":   "dataset",
	})

	root.AddCommand(newRunCmd(mgr), newPreprocessCmd(mgr), newListCmd(mgr))

	return root
}

// bind maps viper keys onto flags. Unset flags fall through to file and
// environment values.
func bind(mgr *config.Manager, fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := mgr.Viper().BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}
