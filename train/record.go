// SPDX-License-Identifier: MIT
// Package train declares the finalized run record.

package train

// CurvePoint is one evaluation of a dumped curve.
type CurvePoint struct {
	Epoch int     `json:"epoch" yaml:"epoch"`
	Train float64 `json:"train" yaml:"train"`
	Eval  float64 `json:"eval" yaml:"eval"`
	LR    float64 `json:"lr" yaml:"lr"`
}

// RunRecord summarises a finalized run.
type RunRecord struct {
	Seed           uint64       `json:"seed" yaml:"seed"`
	Status         Status       `json:"status" yaml:"status"`
	FinalMetric    float64      `json:"final_metric" yaml:"final_metric"`
	BestMetric     float64      `json:"best_metric" yaml:"best_metric"`
	BestEpoch      int          `json:"best_epoch" yaml:"best_epoch"`
	EarlyStopEpoch int          `json:"early_stop_epoch" yaml:"early_stop_epoch"`
	EpochsRun      int          `json:"epochs_run" yaml:"epochs_run"`
	FinalLR        float64      `json:"final_lr" yaml:"final_lr"`
	Error          string       `json:"error,omitempty" yaml:"error,omitempty"`
	Curve          []CurvePoint `json:"curve,omitempty" yaml:"curve,omitempty"`
}

// EvalCurve projects the evaluation metric of the curve.
func (r RunRecord) EvalCurve() []float64 {
	out := make([]float64, len(r.Curve))
	for i, p := range r.Curve {
		out[i] = p.Eval
	}

	return out
}
