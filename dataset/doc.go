// Package dataset defines the molecular Record, the Source contract and the
// train/valid/test Split consumed by preprocessing and training.
//
// Sources shipped here are synthetic and fully deterministic for a fixed seed:
//
//   - Memory: a fixed in-memory record list.
//   - RingLookup: one n-ring per sample; vertex 0 carries a key and the
//     target is the value stored under that key elsewhere on the ring.
//   - SyntheticMolecules: fused 5/6-rings with an optional side chain and a
//     target derived from the ring inventory.
//
// Every graph returned by Load is frozen, so records can be shared read-only
// across workers and runs.
package dataset
