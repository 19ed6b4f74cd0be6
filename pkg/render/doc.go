// Package render turns analysis results into visual artifacts.
//
// Two diagram families are produced:
//
//   - The hierarchy digraph: factors grouped into ranks by level, with
//     the most dependent stratum (level 1) on top. Edges come from the
//     transitive skeleton of the reachability matrix, so the diagram
//     shows direct influence without the closure's redundant arcs.
//     Emitted as Graphviz DOT and rendered to SVG or PNG.
//
//   - The MICMAC chart: a driving-power versus dependence-power scatter
//     with the four quadrant regions, emitted as a self-contained SVG.
package render
