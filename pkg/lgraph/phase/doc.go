// Package phase implements a minimal layered layout on top of the graph
// model in [github.com/matzehuels/lgraph/pkg/lgraph].
//
// # Phases
//
// [Layout] runs the phases in order on every graph of a hierarchy:
//
//  1. [BreakCycles] reverses the back edges found by a depth-first search
//  2. [AssignLayers] puts every node one layer after its deepest predecessor
//  3. [OrderLayers] reorders layers by barycenter sweeps, keeping the order
//     with the fewest crossings
//  4. [Place] stacks the nodes of each layer and distributes free ports
//  5. [RestoreReversed] turns reversed edges back
//
// Self-loops are left to [github.com/matzehuels/lgraph/pkg/selfloop], which
// [Layout] runs once node positions are final.
//
// # Scope
//
// Long edges are not split into dummy nodes and edges are not routed apart
// from self-loops. Edges spanning several layers are ignored when counting
// crossings.
package phase
