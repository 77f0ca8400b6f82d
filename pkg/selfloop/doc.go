// Package selfloop routes the self-loops of placed nodes and places their
// labels.
//
// The self-loops of a node fall into components: groups of ports
// connected by loops. Each component is routed clockwise around the node,
// starting behind the widest gap between its ports, and classified by how
// many corners its route turns:
//
//	NonLoop      a single port looping onto itself
//	Side         both ends on one side
//	Corner       ends on adjacent sides, one corner
//	Opposing     ends on opposite sides
//	ThreeCorner  ends on adjacent sides the long way round
//	FourCorner   ends on one side, wrapping the whole node
//
// Routes nest: a component whose ports span another's runs outside it.
// The labels of each component's edges are merged into one box, and every
// box gets a list of candidate positions along the route. A local search
// picks one candidate per box, weighing side and alignment preferences
// against overlaps with other boxes and with loops. Loops then move out
// to clear the chosen boxes and are routed.
//
// [Process] runs all steps for every node of a graph. The steps are also
// exported individually: [NewNodeRep], [NodeRep.Prepare], [Generate],
// [Evaluate] and [Route].
package selfloop
