// Package rings extracts the bounded simple cycles ("rings") of a core.Graph.
//
// Extract enumerates every simple cycle of length 3..maxSize exactly once:
// each cycle is rooted at its smallest vertex s and grown only through vertices
// larger than s, with an on-path visited set and a hard length bound. The
// search is pruned the moment a partial path reaches maxSize vertices, so no
// longer cycle is ever explored.
//
// Every discovered cycle is canonicalised with Booth's minimal-rotation
// algorithm over both traversal directions, exactly as the dfs package of the
// graph toolkit did for string IDs, and deduplicated:
//
//   - ByVertexSet (default): two rings with the same vertex set are the same
//     ring, even if their edge sets differ. The lexicographically smallest
//     canonical traversal is kept.
//   - ByTraversal: rings are distinct unless they are rotations/reflections of
//     each other.
//
// The final list is sorted by sorted vertex tuple (then by canonical sequence),
// making the output a pure function of (graph, maxSize, options).
//
// Complexity:
//
//   - Time:   O(V · Δ^(L-1)) worst case for maximum degree Δ and bound L.
//   - Memory: O(L + R·L) for the recursion path and R retained rings.
package rings
