package lgutil

import (
	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// ExternalPort describes a port on the boundary of a graph's parent node, as
// seen from inside the graph.
type ExternalPort struct {
	// Side is the port's side; it is overwritten when the constraints leave
	// the side free.
	Side lgraph.PortSide
	// NetFlow is the vote computed by [NetFlow].
	NetFlow int
	// Position is the port position relative to the parent node.
	Position geom.Vector
	Size     geom.Vector
	// Anchor is an explicit anchor, or nil.
	Anchor *geom.Vector
	// Index is an explicit port index, or nil.
	Index        *int
	BorderOffset float64
	Origin       any
}

// CreateExternalPortDummy creates the EXTERNAL_PORT dummy that stands for
// ext inside g. parentSize is the size of the parent node. The dummy gets a
// single port placed at the anchor; layering, edge and in-layer constraints
// follow from the final side:
//
//	WEST:  first separate layer, outgoing edges only, dummy port EAST
//	EAST:  last separate layer, incoming edges only, dummy port WEST
//	NORTH: top of its layer, dummy port SOUTH
//	SOUTH: bottom of its layer, dummy port NORTH
func CreateExternalPortDummy(ext *ExternalPort, c lgraph.PortConstraints, parentSize geom.Vector, dir lgraph.Direction, g *lgraph.Graph) *lgraph.Node {
	dummy := g.NewDummy(lgraph.NodeExternalPort)
	dummy.ExtPortSize = ext.Size
	dummy.PortConstraints = lgraph.ConstraintsFixedPos
	dummy.Origin = ext.Origin

	port := dummy.NewPort()
	port.BorderOffset = ext.BorderOffset

	if !c.IsSideFixed() {
		if dir == lgraph.DirUndefined {
			dir = lgraph.DirRight
		}
		if ext.NetFlow > 0 {
			ext.Side = lgraph.SideFromDirection(dir)
		} else {
			ext.Side = lgraph.SideFromDirection(dir).Opposed()
		}
	}

	explicit := ext.Anchor != nil
	anchor := geom.V(ext.Size.X/2, ext.Size.Y/2)
	if explicit {
		anchor = *ext.Anchor
	}

	switch ext.Side {
	case lgraph.West:
		dummy.LayerConstraint = lgraph.LayerFirstSeparate
		dummy.EdgeConstraint = lgraph.EdgeOutgoingOnly
		dummy.Size.Y = ext.Size.Y
		port.SetSide(lgraph.East)
		if !explicit {
			anchor.X = ext.Size.X
		}
		// The dummy has zero width, so the anchor is taken relative to the
		// port's right border.
		anchor.X -= ext.Size.X
	case lgraph.East:
		dummy.LayerConstraint = lgraph.LayerLastSeparate
		dummy.EdgeConstraint = lgraph.EdgeIncomingOnly
		dummy.Size.Y = ext.Size.Y
		port.SetSide(lgraph.West)
		if !explicit {
			anchor.X = 0
		}
	case lgraph.North:
		dummy.InLayerConstraint = lgraph.InLayerTop
		dummy.Size.X = ext.Size.X
		port.SetSide(lgraph.South)
		if !explicit {
			anchor.Y = ext.Size.Y
		}
	case lgraph.South:
		dummy.InLayerConstraint = lgraph.InLayerBottom
		dummy.Size.X = ext.Size.X
		port.SetSide(lgraph.North)
		if !explicit {
			anchor.Y = 0
		}
	}

	port.Position = anchor
	dummy.PortAnchor = anchor

	if c.IsOrderFixed() {
		dummy.PortRatioOrPosition = orderKey(ext, c, parentSize)
	}
	dummy.ExtPortSide = ext.Side
	return dummy
}

// orderKey returns the value external port dummies are sorted by on their
// side. South and west indices are negated because those sides run against
// the clockwise index order.
func orderKey(ext *ExternalPort, c lgraph.PortConstraints, parentSize geom.Vector) float64 {
	if c == lgraph.ConstraintsFixedOrder && ext.Index != nil {
		switch ext.Side {
		case lgraph.North, lgraph.East:
			return float64(*ext.Index)
		case lgraph.South, lgraph.West:
			return -float64(*ext.Index)
		}
		return 0
	}

	switch ext.Side {
	case lgraph.West, lgraph.East:
		if c.IsRatioFixed() {
			return ext.Position.Y / parentSize.Y
		}
		return ext.Position.Y
	case lgraph.North, lgraph.South:
		if c.IsRatioFixed() {
			return ext.Position.X / parentSize.X
		}
		return ext.Position.X
	}
	return 0
}

// ExternalPortPosition computes where the external port represented by
// dummy ends up on the parent node, given the final graph size, padding and
// offset. The dummy itself is moved onto the graph border as a side effect.
func ExternalPortPosition(g *lgraph.Graph, dummy *lgraph.Node, portWidth, portHeight float64) geom.Vector {
	pos := geom.V(dummy.Position.X+dummy.Size.X/2, dummy.Position.Y+dummy.Size.Y/2)
	offset := 0.0
	if ports := dummy.Ports(); len(ports) > 0 {
		offset = ports[0].BorderOffset
	}

	size, pad, goff := g.Size, g.Padding, g.Offset()
	switch dummy.ExtPortSide {
	case lgraph.North:
		pos.X += pad.Left + goff.X - portWidth/2
		pos.Y = -portHeight - offset
		dummy.Position.Y = -(pad.Top + offset + goff.Y)
	case lgraph.East:
		pos.X = size.X + pad.Left + pad.Right + offset
		pos.Y += pad.Top + goff.Y - portHeight/2
		dummy.Position.X = size.X + pad.Right + offset - goff.X
	case lgraph.South:
		pos.X += pad.Left + goff.X - portWidth/2
		pos.Y = size.Y + pad.Top + pad.Bottom + offset
		dummy.Position.Y = size.Y + pad.Bottom + offset - goff.Y
	case lgraph.West:
		pos.X = -portWidth - offset
		pos.Y += pad.Top + goff.Y - portHeight/2
		dummy.Position.X = -(pad.Left + offset + goff.X)
	}
	return pos
}

// FlowEdge is an edge incident to an external port, classified for the net
// flow vote.
type FlowEdge struct {
	// Outgoing is true when the port is the edge's source.
	Outgoing bool
	SelfLoop bool
	// InsideSelfLoop marks self-loops routed through the node's interior.
	InsideSelfLoop bool
	// Inside is true when the other end is the parent node itself or one of
	// its children.
	Inside bool
}

// NetFlow tallies output votes minus input votes for an external port. An
// outgoing edge whose other end is inside votes input, one leaving the graph
// votes output, and incoming edges vote the opposite way. Ordinary
// self-loops vote like edges leaving the graph, inside self-loops the other
// way round.
func NetFlow(edges []FlowEdge) int {
	out, in := 0, 0
	for _, e := range edges {
		var output bool
		switch {
		case e.SelfLoop && e.InsideSelfLoop:
			output = !e.Outgoing
		case e.SelfLoop:
			output = e.Outgoing
		case e.Inside:
			output = !e.Outgoing
		default:
			output = e.Outgoing
		}
		if output {
			out++
		} else {
			in++
		}
	}
	return out - in
}

// ExternalPortSide returns the side an external port ends up on. Free
// constraints decide by net flow; fixed constraints keep the given side,
// inferring it from inferred when undefined and falling back to the layout
// direction.
func ExternalPortSide(side lgraph.PortSide, c lgraph.PortConstraints, dir lgraph.Direction, netFlow int, inferred lgraph.PortSide) lgraph.PortSide {
	if !c.IsSideFixed() {
		if netFlow > 0 {
			return lgraph.SideFromDirection(dir)
		}
		return lgraph.SideFromDirection(dir).Opposed()
	}
	if side != lgraph.SideUndefined {
		return side
	}
	if inferred != lgraph.SideUndefined {
		return inferred
	}
	return lgraph.SideFromDirection(dir)
}
