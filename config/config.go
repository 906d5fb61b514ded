// SPDX-License-Identifier: MIT

// Package config loads experiment settings through viper and maps them onto
// the option types of the pipeline packages.
//
// Keys are grouped by section (dataset, complex, preprocess, train, sweep,
// output, logging). Every key has a default, so environment overrides of the
// form CELLSWEEP_TRAIN_LR=0.01 work without a config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalid reports a setting outside its accepted range.
var ErrInvalid = errors.New("config: invalid setting")

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "CELLSWEEP"

// Dataset names accepted by Config.Source.
const (
	DatasetSynthetic  = "synthetic"
	DatasetRingLookup = "ring_lookup"
)

// Manager wraps a viper instance preloaded with defaults.
type Manager struct {
	v *viper.Viper
}

// New creates a Manager with defaults.
func New() *Manager {
	v := viper.New()

	v.SetDefault("dataset.name", DatasetSynthetic)
	v.SetDefault("dataset.size", 256)
	v.SetDefault("dataset.max_rings", 3)
	v.SetDefault("dataset.atom_types", 8)
	v.SetDefault("dataset.ring_nodes", 6)
	v.SetDefault("dataset.train_samples", 1000)
	v.SetDefault("dataset.valid_samples", 200)
	v.SetDefault("dataset.seed", 0)

	v.SetDefault("complex.max_dim", 2)
	v.SetDefault("complex.max_ring_size", 6)
	v.SetDefault("complex.init_method", "sum")
	v.SetDefault("complex.use_edge_features", false)
	v.SetDefault("complex.use_coboundaries", false)
	v.SetDefault("complex.include_down_adj", false)

	v.SetDefault("preprocess.jobs", 4)
	v.SetDefault("preprocess.max_failures", 3)
	v.SetDefault("preprocess.cache_size", 4)

	v.SetDefault("train.epochs", 100)
	v.SetDefault("train.batch_size", 128)
	v.SetDefault("train.emb_dim", 64)
	v.SetDefault("train.lr", 0.001)
	v.SetDefault("train.optimizer", "adam")
	v.SetDefault("train.loss", "mae")
	v.SetDefault("train.eval_metric", "mae")
	v.SetDefault("train.minimize", true)
	v.SetDefault("train.eval_period", 1)
	v.SetDefault("train.lr_scheduler", "plateau")
	v.SetDefault("train.lr_scheduler_patience", 10)
	v.SetDefault("train.lr_scheduler_decay_rate", 0.5)
	v.SetDefault("train.lr_scheduler_min_lr", 1e-5)
	v.SetDefault("train.lr_scheduler_decay_steps", 50)
	v.SetDefault("train.early_stop", false)
	v.SetDefault("train.patience", 20)

	v.SetDefault("sweep.name", "")
	v.SetDefault("sweep.start_seed", 0)
	v.SetDefault("sweep.stop_seed", 9)
	v.SetDefault("sweep.devices", 1)
	v.SetDefault("sweep.dump_curves", false)

	v.SetDefault("output.db_path", "cellsweep.db")
	v.SetDefault("output.report_path", "")
	v.SetDefault("output.metrics_path", "")

	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Manager{v: v}
}

// LoadFromFile merges the file at path over the defaults.
func (m *Manager) LoadFromFile(path string) error {
	m.v.SetConfigFile(path)
	if err := m.v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	return nil
}

// Set overrides a single key.
func (m *Manager) Set(key string, value any) { m.v.Set(key, value) }

// Viper exposes the underlying instance for flag binding.
func (m *Manager) Viper() *viper.Viper { return m.v }

func (m *Manager) LogLevel() string   { return m.v.GetString("logging.level") }
func (m *Manager) DBPath() string     { return m.v.GetString("output.db_path") }
func (m *Manager) ReportPath() string { return m.v.GetString("output.report_path") }
func (m *Manager) StartSeed() uint64  { return m.v.GetUint64("sweep.start_seed") }
func (m *Manager) StopSeed() uint64   { return m.v.GetUint64("sweep.stop_seed") }
func (m *Manager) Devices() int       { return m.v.GetInt("sweep.devices") }

// Config unmarshals and validates the merged settings.
func (m *Manager) Config() (Config, error) {
	var c Config
	if err := m.v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}
