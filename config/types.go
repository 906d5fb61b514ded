// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/cellsweep/cellcomplex"
	"github.com/katalvlaran/cellsweep/dataset"
	"github.com/katalvlaran/cellsweep/model"
	"github.com/katalvlaran/cellsweep/preprocess"
	"github.com/katalvlaran/cellsweep/sweep"
	"github.com/katalvlaran/cellsweep/train"
)

// Config is the typed view of a Manager.
type Config struct {
	Dataset    DatasetConfig    `mapstructure:"dataset" yaml:"dataset"`
	Complex    ComplexConfig    `mapstructure:"complex" yaml:"complex"`
	Preprocess PreprocessConfig `mapstructure:"preprocess" yaml:"preprocess"`
	Train      TrainConfig      `mapstructure:"train" yaml:"train"`
	Sweep      SweepConfig      `mapstructure:"sweep" yaml:"sweep"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

type DatasetConfig struct {
	Name         string `mapstructure:"name" yaml:"name"`
	Size         int    `mapstructure:"size" yaml:"size"`
	MaxRings     int    `mapstructure:"max_rings" yaml:"max_rings"`
	AtomTypes    int    `mapstructure:"atom_types" yaml:"atom_types"`
	RingNodes    int    `mapstructure:"ring_nodes" yaml:"ring_nodes"`
	TrainSamples int    `mapstructure:"train_samples" yaml:"train_samples"`
	ValidSamples int    `mapstructure:"valid_samples" yaml:"valid_samples"`
	Seed         uint64 `mapstructure:"seed" yaml:"seed"`
}

type ComplexConfig struct {
	MaxDim          int    `mapstructure:"max_dim" yaml:"max_dim"`
	MaxRingSize     int    `mapstructure:"max_ring_size" yaml:"max_ring_size"`
	InitMethod      string `mapstructure:"init_method" yaml:"init_method"`
	UseEdgeFeatures bool   `mapstructure:"use_edge_features" yaml:"use_edge_features"`
	UseCoboundaries bool   `mapstructure:"use_coboundaries" yaml:"use_coboundaries"`
	IncludeDownAdj  bool   `mapstructure:"include_down_adj" yaml:"include_down_adj"`
}

type PreprocessConfig struct {
	Jobs        int `mapstructure:"jobs" yaml:"jobs"`
	MaxFailures int `mapstructure:"max_failures" yaml:"max_failures"`
	CacheSize   int `mapstructure:"cache_size" yaml:"cache_size"`
}

type TrainConfig struct {
	Epochs     int     `mapstructure:"epochs" yaml:"epochs"`
	BatchSize  int     `mapstructure:"batch_size" yaml:"batch_size"`
	EmbDim     int     `mapstructure:"emb_dim" yaml:"emb_dim"`
	LR         float64 `mapstructure:"lr" yaml:"lr"`
	Optimizer  string  `mapstructure:"optimizer" yaml:"optimizer"`
	Loss       string  `mapstructure:"loss" yaml:"loss"`
	EvalMetric string  `mapstructure:"eval_metric" yaml:"eval_metric"`
	Minimize   bool    `mapstructure:"minimize" yaml:"minimize"`
	EvalPeriod int     `mapstructure:"eval_period" yaml:"eval_period"`

	Scheduler           string  `mapstructure:"lr_scheduler" yaml:"lr_scheduler"`
	SchedulerPatience   int     `mapstructure:"lr_scheduler_patience" yaml:"lr_scheduler_patience"`
	SchedulerDecayRate  float64 `mapstructure:"lr_scheduler_decay_rate" yaml:"lr_scheduler_decay_rate"`
	SchedulerMinLR      float64 `mapstructure:"lr_scheduler_min_lr" yaml:"lr_scheduler_min_lr"`
	SchedulerDecaySteps int     `mapstructure:"lr_scheduler_decay_steps" yaml:"lr_scheduler_decay_steps"`

	EarlyStop bool `mapstructure:"early_stop" yaml:"early_stop"`
	Patience  int  `mapstructure:"patience" yaml:"patience"`
}

type SweepConfig struct {
	Name       string `mapstructure:"name" yaml:"name"`
	StartSeed  uint64 `mapstructure:"start_seed" yaml:"start_seed"`
	StopSeed   uint64 `mapstructure:"stop_seed" yaml:"stop_seed"`
	Devices    int    `mapstructure:"devices" yaml:"devices"`
	DumpCurves bool   `mapstructure:"dump_curves" yaml:"dump_curves"`
}

type OutputConfig struct {
	DBPath      string `mapstructure:"db_path" yaml:"db_path"`
	ReportPath  string `mapstructure:"report_path" yaml:"report_path"`
	MetricsPath string `mapstructure:"metrics_path" yaml:"metrics_path"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Validate checks what the pipeline packages would otherwise reject late,
// after expensive preprocessing.
func (c Config) Validate() error {
	switch c.Dataset.Name {
	case DatasetSynthetic, DatasetRingLookup:
	default:
		return fmt.Errorf("config: dataset.name %q: %w", c.Dataset.Name, ErrInvalid)
	}
	if c.Sweep.StopSeed < c.Sweep.StartSeed {
		return fmt.Errorf("config: sweep seeds %d..%d: %w", c.Sweep.StartSeed, c.Sweep.StopSeed, ErrInvalid)
	}
	if err := c.SweepConfig().Validate(); err != nil {
		return fmt.Errorf("config: sweep: %w: %w", ErrInvalid, err)
	}
	if c.Sweep.Devices < 1 {
		return fmt.Errorf("config: sweep.devices=%d: %w", c.Sweep.Devices, ErrInvalid)
	}
	if c.Preprocess.Jobs < 1 {
		return fmt.Errorf("config: preprocess.jobs=%d: %w", c.Preprocess.Jobs, ErrInvalid)
	}
	if c.Preprocess.MaxFailures < 0 {
		return fmt.Errorf("config: preprocess.max_failures=%d: %w", c.Preprocess.MaxFailures, ErrInvalid)
	}
	if c.Preprocess.CacheSize < 1 {
		return fmt.Errorf("config: preprocess.cache_size=%d: %w", c.Preprocess.CacheSize, ErrInvalid)
	}
	if c.Train.EmbDim < 0 {
		return fmt.Errorf("config: train.emb_dim=%d: %w", c.Train.EmbDim, ErrInvalid)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level %q: %w", c.Logging.Level, ErrInvalid)
	}
	if _, err := c.ComplexOptions(); err != nil {
		return fmt.Errorf("config: complex: %w: %w", ErrInvalid, err)
	}
	if err := c.RunConfig(c.Sweep.StartSeed, "").Validate(); err != nil {
		return fmt.Errorf("config: train: %w: %w", ErrInvalid, err)
	}
	if _, err := model.LossByName(c.Train.Loss); err != nil {
		return fmt.Errorf("config: train.loss: %w: %w", ErrInvalid, err)
	}
	if _, err := model.MetricByName(c.Train.EvalMetric); err != nil {
		return fmt.Errorf("config: train.eval_metric: %w: %w", ErrInvalid, err)
	}
	if _, err := train.NewScheduler(c.RunConfig(0, "").Scheduler, c.Direction()); err != nil {
		return fmt.Errorf("config: train.lr_scheduler: %w: %w", ErrInvalid, err)
	}

	return nil
}

// Direction maps train.minimize onto train.Direction.
func (c Config) Direction() train.Direction {
	if c.Train.Minimize {
		return train.Minimize
	}

	return train.Maximize
}

// Source builds the configured dataset.
func (c Config) Source() (dataset.Source, error) {
	d := c.Dataset
	switch d.Name {
	case DatasetSynthetic:
		return dataset.SyntheticMolecules{Count: d.Size, MaxRings: d.MaxRings, AtomTypes: d.AtomTypes, Seed: d.Seed}, nil
	case DatasetRingLookup:
		return dataset.RingLookup{Nodes: d.RingNodes, TrainSamples: d.TrainSamples, ValidSamples: d.ValidSamples, Seed: d.Seed}, nil
	}

	return nil, fmt.Errorf("config: dataset.name %q: %w", d.Name, ErrInvalid)
}

// ComplexOptions returns the lifting options, already validated.
func (c Config) ComplexOptions() (cellcomplex.Options, error) {
	im, err := cellcomplex.ParseInitMethod(c.Complex.InitMethod)
	if err != nil {
		return cellcomplex.Options{}, err
	}
	o := cellcomplex.Options{
		MaxDim:          c.Complex.MaxDim,
		MaxRingSize:     c.Complex.MaxRingSize,
		Init:            im,
		UseEdgeFeatures: c.Complex.UseEdgeFeatures,
		UseCoboundaries: c.Complex.UseCoboundaries,
		IncludeDownAdj:  c.Complex.IncludeDownAdj,
	}

	return o, o.Validate()
}

// PreprocessOptions returns pool options. Cache, store and logger are wired
// by the caller.
func (c Config) PreprocessOptions() ([]preprocess.Option, error) {
	cx, err := c.ComplexOptions()
	if err != nil {
		return nil, err
	}

	return []preprocess.Option{
		preprocess.WithJobs(c.Preprocess.Jobs),
		preprocess.WithMaxFailures(c.Preprocess.MaxFailures),
		preprocess.WithComplexOptions(cellcomplex.WithOptions(cx)),
	}, nil
}

// RunConfig returns the per-seed training configuration.
func (c Config) RunConfig(seed uint64, name string) train.Config {
	t := c.Train
	return train.Config{
		Name:       name,
		Seed:       seed,
		Epochs:     t.Epochs,
		BatchSize:  t.BatchSize,
		EvalPeriod: t.EvalPeriod,
		Loss:       t.Loss,
		Metric:     t.EvalMetric,
		Direction:  c.Direction(),
		Optimizer:  t.Optimizer,
		LR:         t.LR,
		Scheduler: train.SchedulerConfig{
			Kind:       t.Scheduler,
			Patience:   t.SchedulerPatience,
			Factor:     t.SchedulerDecayRate,
			MinLR:      t.SchedulerMinLR,
			DecaySteps: t.SchedulerDecaySteps,
			Gamma:      t.SchedulerDecayRate,
		},
		EarlyStop:  t.EarlyStop,
		Patience:   t.Patience,
		DumpCurves: c.Sweep.DumpCurves,
	}
}

// SweepConfig returns the controller configuration.
func (c Config) SweepConfig() sweep.Config {
	return sweep.Config{
		Name:        c.Sweep.Name,
		StartSeed:   c.Sweep.StartSeed,
		StopSeed:    c.Sweep.StopSeed,
		Parallelism: c.Sweep.Devices,
		Metric:      c.Train.EvalMetric,
		Direction:   c.Direction(),
		DumpCurves:  c.Sweep.DumpCurves,
	}
}

// Logger builds a console logger on stderr.
func (c Config) Logger() zerolog.Logger { return c.LoggerTo(os.Stderr) }

// LoggerTo builds a console logger on w at the configured level.
func (c Config) LoggerTo(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}).Level(level).With().Timestamp().Str("service", "cellsweep").Logger()
}
