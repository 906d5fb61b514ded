// Package cellcomplex lifts a molecular core.Graph and its extracted rings
// into a bounded-dimension cell complex.
//
// Cells live in per-dimension arenas (Complex.Cells[d]) and reference each
// other only by index, so complexes have no pointer cycles and serialise
// trivially:
//
//	dim 0: one cell per vertex
//	dim 1: one cell per edge,  Boundary = its two endpoint vertices
//	dim 2: one cell per ring,  Boundary = its edges (sorted)
//
// Coboundary lists are derived by inverting Boundary after all cells exist
// (Reindex), together with upper adjacency (cells sharing a coboundary cell)
// and, when requested, lower adjacency (cells sharing a boundary cell).
//
// Feature initialisation follows the edge/ring "init" conventions of cellular
// message passing: edges without their own features and all rings are
// initialised by summing (or averaging) the features of their vertex support.
// With both UseEdgeFeatures and UseCoboundaries, each ring additionally
// carries CoboundaryFeatures aggregated from its boundary edges.
//
// A ring that references a vertex or edge missing from the graph is a
// data-integrity failure (ErrDataIntegrity), never silently dropped.
package cellcomplex
