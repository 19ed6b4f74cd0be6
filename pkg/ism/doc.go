// Package ism implements the Interpretive Structural Modelling (ISM)
// reachability engine and the MICMAC driving/dependence classification.
//
// # Overview
//
// ISM converts a set of pairwise, human-judged directional relationships
// between factors into a leveled hierarchy. The pipeline is:
//
//  1. Encode the Structural Self-Interaction Matrix (SSIM) of V/A/X/O
//     judgments into the Initial Reachability Matrix (IRM).
//  2. Compute the Final Reachability Matrix (FRM), the transitive closure
//     of the IRM.
//  3. Partition the factors into hierarchy levels, stripping the top
//     stratum of the preorder defined by the FRM on each iteration.
//  4. Classify each factor into a MICMAC quadrant from its driving power
//     (FRM row sum) and dependence power (FRM column sum).
//
// [Analyze] runs the complete pipeline and returns a [Result]. The
// individual stages ([BuildIRM], [Closure], [Partition], [Classify]) are
// exported for callers that only need part of the computation.
//
// # Judgment Symbols
//
// The SSIM is defined over the upper triangle of the factor ordering. For
// a pair (i, j) with i preceding j:
//
//   - V: factor i influences factor j
//   - A: factor j influences factor i
//   - X: mutual influence
//   - O: no relationship (the default for absent entries)
//
// Lower-triangle and diagonal entries are derived, never entered: the
// diagonal is always reflexive and the lower triangle mirrors the
// upper-triangle entry's direction.
//
// # Determinism
//
// Every stage is a pure function of its input. The same factor list and
// judgment map always produce byte-identical matrices, levels, and MICMAC
// points. The closure runs a single in-place Floyd–Warshall pass so cell
// update order is fixed, and level elements are emitted in ascending
// factor-index order.
//
// # Concurrency
//
// The engine holds no shared state. Distinct invocations can run in
// parallel freely; the only caller obligation is not to mutate a judgment
// map while an invocation that reads it is in flight.
package ism
