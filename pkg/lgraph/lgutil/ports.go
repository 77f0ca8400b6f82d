// Package lgutil collects helpers that operate on the layered graph model:
// port side inference, port creation, external port dummies, coordinate
// translation between nested graphs and node resizing.
package lgutil

import (
	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// CalcPortSide infers the side of p from its position relative to its node.
// A port sticking out of the node along the layout direction snaps to that
// side; otherwise the node's diagonals decide. Nodes of zero size yield
// [lgraph.SideUndefined].
func CalcPortSide(p *lgraph.Port, dir lgraph.Direction) lgraph.PortSide {
	n := p.Node()
	if n == nil {
		return lgraph.SideUndefined
	}
	return SideOf(p.Position, p.Size, n.Size, dir)
}

// SideOf applies the rule of [CalcPortSide] to raw geometry: a box at pos
// with the given size on a node of size node.
func SideOf(pos, size, node geom.Vector, dir lgraph.Direction) lgraph.PortSide {
	if node.X <= 0 && node.Y <= 0 {
		return lgraph.SideUndefined
	}

	switch {
	case dir.IsHorizontal():
		if pos.X < 0 {
			return lgraph.West
		} else if pos.X+size.X > node.X {
			return lgraph.East
		}
	case dir.IsVertical():
		if pos.Y < 0 {
			return lgraph.North
		} else if pos.Y+size.Y > node.Y {
			return lgraph.South
		}
	}

	wp := (pos.X + size.X/2) / node.X
	hp := (pos.Y + size.Y/2) / node.Y
	switch {
	case wp+hp <= 1 && wp-hp <= 0:
		return lgraph.West
	case wp+hp >= 1 && wp-hp >= 0:
		return lgraph.East
	case hp < 0.5:
		return lgraph.North
	default:
		return lgraph.South
	}
}

// CalcPortOffset returns the distance between p and the border of its node
// on side s. Ports inside the node get negative offsets.
func CalcPortOffset(p *lgraph.Port, s lgraph.PortSide) float64 {
	n := p.Node()
	switch s {
	case lgraph.North:
		return -(p.Position.Y + p.Size.Y)
	case lgraph.East:
		return p.Position.X - n.Size.X
	case lgraph.South:
		return p.Position.Y - n.Size.Y
	case lgraph.West:
		return -(p.Position.X + p.Size.X)
	}
	return 0
}

// CenterPoint moves point to the middle of side s of a box of the given
// size. SideUndefined leaves point untouched.
func CenterPoint(point *geom.Vector, size geom.Vector, s lgraph.PortSide) {
	switch s {
	case lgraph.North:
		point.X, point.Y = size.X/2, 0
	case lgraph.East:
		point.X, point.Y = size.X, size.Y/2
	case lgraph.South:
		point.X, point.Y = size.X/2, size.Y
	case lgraph.West:
		point.X, point.Y = 0, size.Y/2
	}
}

// ProvideCollectorPort returns the node's input or output collector port,
// creating it on side s when missing. PortUndefined yields nil.
func ProvideCollectorPort(g *lgraph.Graph, n *lgraph.Node, t lgraph.PortType, s lgraph.PortSide) *lgraph.Port {
	for _, p := range n.Ports() {
		if (t == lgraph.PortInput && p.InputCollector) || (t == lgraph.PortOutput && p.OutputCollector) {
			return p
		}
	}

	var p *lgraph.Port
	switch t {
	case lgraph.PortInput:
		p = g.Arena().NewPort()
		p.InputCollector = true
	case lgraph.PortOutput:
		p = g.Arena().NewPort()
		p.OutputCollector = true
	default:
		return nil
	}
	p.SetNode(n)
	p.SetSide(s)
	CenterPoint(&p.Position, n.Size, s)
	return p
}

// CreatePort creates a port on n for an edge end. Merged-edge graphs and
// hypernodes without fixed sides share collector ports. Otherwise a fresh
// port is placed at endpoint (graph coordinates, clamped to the node box) or,
// without an endpoint, on the side the layout direction implies for t.
func CreatePort(n *lgraph.Node, endpoint *geom.Vector, t lgraph.PortType, g *lgraph.Graph) *lgraph.Port {
	dir := Direction(g)
	def := lgraph.SideFromDirection(dir)

	if (g.MergeEdges || n.Hypernode) && !n.PortConstraints.IsSideFixed() {
		side := def
		if t != lgraph.PortOutput {
			side = def.Opposed()
		}
		return ProvideCollectorPort(g, n, t, side)
	}

	p := n.NewPort()
	if endpoint != nil {
		p.Position = endpoint.Minus(n.Position)
		p.Position.Bound(0, 0, n.Size.X, n.Size.Y)
		p.SetSide(CalcPortSide(p, dir))
	} else if t == lgraph.PortOutput {
		p.SetSide(def)
	} else {
		p.SetSide(def.Opposed())
	}

	s := p.Side()
	if (dir.IsHorizontal() && s.IsVertical()) || (dir.IsVertical() && (s == lgraph.East || s == lgraph.West)) {
		g.Properties |= lgraph.PropNorthSouthPorts
	}
	return p
}

// InitializePort settles side, border offset, ratio and anchor of an
// imported port. A nil anchor means none was given.
func InitializePort(p *lgraph.Port, c lgraph.PortConstraints, dir lgraph.Direction, anchor *geom.Vector) {
	side := p.Side()

	if side == lgraph.SideUndefined && c.IsSideFixed() {
		side = CalcPortSide(p, dir)
		p.SetSide(side)

		// A port at (0,0) keeps offset zero.
		if p.BorderOffset == 0 && side != lgraph.SideUndefined && (p.Position.X != 0 || p.Position.Y != 0) {
			p.BorderOffset = CalcPortOffset(p, side)
		}
	}

	if c.IsRatioFixed() {
		ratio := 0.0
		n := p.Node()
		switch side {
		case lgraph.North, lgraph.South:
			if n.Size.X > 0 {
				ratio = p.Position.X / n.Size.X
			}
		case lgraph.East, lgraph.West:
			if n.Size.Y > 0 {
				ratio = p.Position.Y / n.Size.Y
			}
		}
		p.PortRatio = ratio
	}

	if anchor != nil {
		p.SetAnchor(*anchor)
	} else if !p.ExplicitAnchor() {
		// Recompute the side's default anchor from the final size; ports
		// without a side get the center.
		p.SetSide(side)
	}
}
