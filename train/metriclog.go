// SPDX-License-Identifier: MIT
// Package train implements the append-only metric log.

package train

// Evaluation is one metric log entry.
type Evaluation struct {
	Epoch int
	Train float64
	Eval  float64
	LR    float64
}

// MetricLog accumulates evaluations in epoch order. Not safe for concurrent use.
type MetricLog struct {
	entries []Evaluation
}

// Append adds e.
func (l *MetricLog) Append(e Evaluation) { l.entries = append(l.entries, e) }

// Len returns the number of evaluations.
func (l *MetricLog) Len() int { return len(l.entries) }

// Last returns the most recent evaluation.
func (l *MetricLog) Last() (Evaluation, bool) {
	if len(l.entries) == 0 {
		return Evaluation{}, false
	}

	return l.entries[len(l.entries)-1], true
}

// Best returns the first strictly-best evaluation under d.
func (l *MetricLog) Best(d Direction) (Evaluation, bool) {
	if len(l.entries) == 0 {
		return Evaluation{}, false
	}
	best := l.entries[0]
	for _, e := range l.entries[1:] {
		if d.Better(e.Eval, best.Eval) {
			best = e
		}
	}

	return best, true
}

// Entries returns a copy of the log.
func (l *MetricLog) Entries() []Evaluation {
	return append([]Evaluation(nil), l.entries...)
}

// tracker counts evaluations since the last strict improvement.
type tracker struct {
	dir  Direction
	has  bool
	best float64
	bad  int
}

// observe returns true when v improves on the best seen so far.
func (t *tracker) observe(v float64) bool {
	if !t.has || t.dir.Better(v, t.best) {
		t.has, t.best, t.bad = true, v, 0

		return true
	}
	t.bad++

	return false
}
