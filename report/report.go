// SPDX-License-Identifier: MIT

// Package report renders a sweep.Result as a YAML artifact and as a
// plain-text summary for terminals and logs.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cellsweep/sweep"
)

// WriteYAML encodes res with two-space indentation.
func WriteYAML(w io.Writer, res *sweep.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("report: encode %s: %w", res.ID, err)
	}

	return enc.Close()
}

// WriteFile writes the YAML artifact to path.
func WriteFile(path string, res *sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := WriteYAML(f, res); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// ReadFile decodes an artifact written by WriteFile.
func ReadFile(path string) (*sweep.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	var res sweep.Result
	if err := yaml.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("report: decode %s: %w", path, err)
	}

	return &res, nil
}

// Summary prints per-seed results, the curve breakdown when present and the
// final aggregate.
func Summary(w io.Writer, res *sweep.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Sweep %s (%s)  status=%s\n", res.ID, res.Name, res.Status)
	b.WriteString(" ===== Best performance per seed ======\n")
	for _, r := range res.Runs {
		if !r.Status.Succeeded() {
			fmt.Fprintf(&b, "Seed %d:  failed (%s)\n", r.Seed, r.Error)
			continue
		}
		fmt.Fprintf(&b, "Seed %d:  %.3f @ epoch %d  [%s]\n", r.Seed, r.BestMetric, r.BestEpoch, r.Status)
	}

	if cs := res.Curves; cs != nil {
		sections := []struct {
			title string
			pick  func(sweep.SeedCurveStats) float64
		}{
			{"Mean", func(s sweep.SeedCurveStats) float64 { return s.Mean }},
			{"Max", func(s sweep.SeedCurveStats) float64 { return s.Max }},
			{"Median", func(s sweep.SeedCurveStats) float64 { return s.Median }},
		}
		for _, sec := range sections {
			fmt.Fprintf(&b, " ===== %s performance per seed ======\n", sec.title)
			for _, s := range cs.PerSeed {
				fmt.Fprintf(&b, "Seed %d:  %.3f\n", s.Seed, sec.pick(s))
			}
		}
		fmt.Fprintf(&b, "Curve best:     %.6f ± %.6f at epoch %d\n", cs.Mean, cs.Std, cs.BestEpoch)
	}

	agg := res.Aggregate
	b.WriteString(" ===== Final result ======\n")
	fmt.Fprintf(&b, "Metric:         %s (%s)\n", res.Metric, res.Direction)
	fmt.Fprintf(&b, "Result:         %.6f ± %.6f\n", agg.Mean, agg.Std)
	fmt.Fprintf(&b, "Best seed:      %d (%.6f)\n", agg.BestSeed, agg.BestMetric)
	fmt.Fprintf(&b, "Runs:           %d ok, %d failed\n", agg.Successful, agg.Failed)
	b.WriteString("-------------------------------\n")

	_, err := io.WriteString(w, b.String())

	return err
}
