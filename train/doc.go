// Package train runs one seeded training protocol over a preprocessed
// complex dataset.
//
// A Runner walks the state machine
//
//	Initialized → Training → Evaluating → Training | EarlyStopped |
//	EpochBudgetExhausted | Cancelled | Failed → Finalized
//
// Every evaluation is appended to a single MetricLog. The learning-rate
// Scheduler and the EarlyStopper observe that log independently; neither
// knows about the other. Both compare strictly under the run's Direction,
// so a tie never counts as an improvement.
//
// All randomness (parameter init, shuffling) flows from one *rand.Rand seeded
// from Config.Seed, so equal seeds and inputs give identical RunRecords.
package train
