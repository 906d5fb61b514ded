// Package preprocess runs ring extraction and complex construction over a
// whole dataset with a bounded number of workers.
//
// Every record owns one output slot, so workers share nothing but read-only
// inputs and the output order always matches the input order. Per-record
// failures are collected as RecordError values; once more than MaxFailures
// records fail, the pass aborts with ErrFailureThreshold, because a partially
// preprocessed dataset would silently skew every downstream aggregate.
//
// Finished datasets are memoised in an LRU keyed by Fingerprint, and can be
// persisted through an ArtifactStore so later processes skip the work.
package preprocess
