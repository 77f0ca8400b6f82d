package lgutil

import (
	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// DefaultAspectRatio is assumed when a graph has no aspect ratio set.
const DefaultAspectRatio = 1.6

// Direction returns the graph's layout direction. An undefined direction
// resolves to RIGHT for aspect ratios of at least one and DOWN otherwise.
func Direction(g *lgraph.Graph) lgraph.Direction {
	if g.Direction != lgraph.DirUndefined {
		return g.Direction
	}
	ratio := g.AspectRatio
	if ratio <= 0 {
		ratio = DefaultAspectRatio
	}
	if ratio >= 1 {
		return lgraph.DirRight
	}
	return lgraph.DirDown
}

// IndividualOrInherited returns the node's own spacing value for s, falling
// back to the value set on its graph. ok is false when neither is set.
func IndividualOrInherited(n *lgraph.Node, s lgraph.Spacing) (v float64, ok bool) {
	if v, ok := n.Spacings[s]; ok {
		return v, true
	}
	if g := n.Graph(); g != nil {
		v, ok := g.Spacings[s]
		return v, ok
	}
	return 0, false
}

// IsDescendant reports whether child is nested, at any depth, inside parent.
// A node is not its own descendant.
func IsDescendant(child, parent *lgraph.Node) bool {
	for g := child.Graph(); g != nil && g.Parent() != nil; g = g.Parent().Graph() {
		if g.Parent() == parent {
			return true
		}
	}
	return false
}

// ChangeCoordSystem converts point from the coordinates of from to those of
// to by walking both graphs up to the root, applying graph offsets, paddings
// and parent node positions.
func ChangeCoordSystem(point *geom.Vector, from, to *lgraph.Graph) {
	if from == to {
		return
	}
	for g := from; g != nil; {
		point.Add(g.Offset())
		parent := g.Parent()
		if parent == nil {
			break
		}
		point.Add(g.Padding.TopLeft()).Add(parent.Position)
		g = parent.Graph()
	}
	for g := to; g != nil; {
		point.Sub(g.Offset())
		parent := g.Parent()
		if parent == nil {
			break
		}
		point.Sub(g.Padding.TopLeft()).Sub(parent.Position)
		g = parent.Graph()
	}
}

// OffsetGraph translates every layerless node of g together with the bend
// points, junction points and labels of its outgoing edges. Graph offsets
// are not consulted, so the call can be repeated.
func OffsetGraph(g *lgraph.Graph, dx, dy float64) {
	for _, n := range g.LayerlessNodes() {
		n.Position.Translate(dx, dy)
		for _, p := range n.Ports() {
			for _, e := range p.Outgoing() {
				e.BendPoints.Offset(dx, dy)
				e.JunctionPoints.Offset(dx, dy)
				for _, l := range e.Labels() {
					l.Position.Translate(dx, dy)
				}
			}
		}
	}
}

// ComputeGraphProperties recomputes g.Properties from its layerless nodes.
// Undefined port constraints are corrected to FREE on the way.
func ComputeGraphProperties(g *lgraph.Graph) {
	dir := Direction(g)
	var props lgraph.GraphProperties

	for _, n := range g.LayerlessNodes() {
		switch {
		case n.Hypernode:
			props |= lgraph.PropHypernodes | lgraph.PropHyperedges
		case n.Type == lgraph.NodeExternalPort:
			props |= lgraph.PropExternalPorts
		}

		switch n.PortConstraints {
		case lgraph.ConstraintsUndefined:
			n.PortConstraints = lgraph.ConstraintsFree
		case lgraph.ConstraintsFree:
		default:
			props |= lgraph.PropNonFreePorts
		}

		for _, p := range n.Ports() {
			if p.Degree() > 1 {
				props |= lgraph.PropHyperedges
			}
			s := p.Side()
			if (dir.IsVertical() && (s == lgraph.East || s == lgraph.West)) || (!dir.IsVertical() && s.IsVertical()) {
				props |= lgraph.PropNorthSouthPorts
			}
			for _, e := range p.Outgoing() {
				if e.Target().Node() == n {
					props |= lgraph.PropSelfLoops
				}
			}
		}
	}
	g.Properties = props
}
