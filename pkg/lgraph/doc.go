// Package lgraph provides the mutable graph model that layered layout
// phases operate on.
//
// # Overview
//
// A layered drawing places nodes into consecutive vertical layers. While the
// layout runs, phases move nodes between layers, reverse edges to break
// cycles, insert and remove dummy nodes and reorder ports. This package
// holds that intermediate state: graphs, layers, nodes, ports, edges and
// labels, each with geometry and a handful of typed layout attributes.
//
// # Arena
//
// All elements of one layout run are created through an [Arena]. The arena
// hands out unique integer IDs and keeps a registry of everything it created.
// Elements reference each other by pointer; there is no global state, so two
// arenas can lay out two diagrams concurrently.
//
//	a := lgraph.NewArena()
//	g := a.NewGraph()
//	n := g.NewNode()
//	p := n.NewPort()
//	p.SetSide(lgraph.East)
//
// # Consistency
//
// The containment relations are bidirectional and are maintained by the
// setters only:
//
//   - [Node.SetLayer] keeps layer membership and the graph's layerless bag
//     in sync. A node without a layer is always in its graph's layerless bag.
//   - [Port.SetNode] keeps the node's port list in sync.
//   - [Edge.SetSource] and [Edge.SetTarget] keep the ports' outgoing and
//     incoming lists in sync.
//   - [Label.SetOwner] moves a label between owners; a label has at most one.
//
// Container accessors return copies, so callers can iterate while mutating.
//
// # Invalid usage
//
// Misuse that indicates a programming error, such as asking an edge for the
// other end of a port it does not touch or inserting at an out-of-range
// index, panics with an error carrying
// [github.com/matzehuels/lgraph/pkg/errors.ErrCodeInvalidArgument].
//
// # Concurrency
//
// A graph and its arena are not safe for concurrent use. Layout runs are
// single threaded; parallelism happens across diagrams.
package lgraph
