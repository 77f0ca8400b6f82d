package phase

import (
	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/lgraph/lgutil"
)

// Place assigns coordinates. Layers follow each other along the layout
// direction, separated by the between-layers spacing; the nodes of a layer
// are stacked across it, separated by the node-node spacing and their
// margins, and centered within the layer. Nodes with self-loops keep the
// self-loop spacing free around them. Ports of nodes whose positions are
// not fixed are spread evenly over their sides. Finally the graph size is
// set to the extent of the drawing.
func Place(g *lgraph.Graph) {
	dir := lgutil.Direction(g)
	horizontal := !dir.IsVertical()
	between := g.Spacing(lgraph.SpacingNodeNodeBetweenLayers)
	nodeNode := g.Spacing(lgraph.SpacingNodeNode)

	for _, n := range g.Nodes() {
		distributePorts(n, dir)
	}

	layers := g.Layers()
	u, totalV := 0.0, 0.0
	for i, l := range layers {
		if i > 0 {
			u += between
		}
		thick := 0.0
		for _, n := range l.Nodes() {
			b := boxOf(n, horizontal)
			thick = max(thick, b.before+b.size+b.after)
		}

		v := 0.0
		for j, n := range l.Nodes() {
			if j > 0 {
				v += nodeNode
			}
			b := boxOf(n, horizontal)
			pu := u + (thick-b.before-b.size-b.after)/2 + b.before
			pv := v + b.crossBefore
			n.Position = axes(pu, pv, horizontal)
			v = pv + b.crossSize + b.crossAfter
		}
		l.Size = axes(thick, v, horizontal)
		totalV = max(totalV, v)
		u += thick
	}

	// Layerless nodes go after the last layer.
	for _, n := range g.LayerlessNodes() {
		if u > 0 {
			u += between
		}
		b := boxOf(n, horizontal)
		n.Position = axes(u+b.before, b.crossBefore, horizontal)
		u += b.before + b.size + b.after
		totalV = max(totalV, b.crossBefore+b.crossSize+b.crossAfter)
	}

	if dir == lgraph.DirLeft || dir == lgraph.DirUp {
		for _, n := range g.Nodes() {
			if horizontal {
				n.Position.X = u - n.Position.X - n.Size.X
			} else {
				n.Position.Y = u - n.Position.Y - n.Size.Y
			}
		}
	}
	g.Size = axes(u, totalV, horizontal)
}

// box is the extent of a node along (size) and across (crossSize) the
// layout direction, with the space to keep free on either side.
type box struct {
	before, size, after                float64
	crossBefore, crossSize, crossAfter float64
}

func boxOf(n *lgraph.Node, horizontal bool) box {
	loop := 0.0
	if hasSelfLoop(n) {
		loop = n.Spacing(lgraph.SpacingNodeSelfLoop)
	}
	m := n.Margin
	if horizontal {
		return box{
			m.Left + loop, n.Size.X, m.Right + loop,
			m.Top + loop, n.Size.Y, m.Bottom + loop,
		}
	}
	return box{
		m.Top + loop, n.Size.Y, m.Bottom + loop,
		m.Left + loop, n.Size.X, m.Right + loop,
	}
}

// axes maps layout coordinates to x and y.
func axes(along, across float64, horizontal bool) geom.Vector {
	if horizontal {
		return geom.V(along, across)
	}
	return geom.V(across, along)
}

func hasSelfLoop(n *lgraph.Node) bool {
	for _, e := range n.Outgoing() {
		if e.IsSelfLoop() {
			return true
		}
	}
	return false
}

// distributePorts gives sideless ports the side their flow implies and
// spreads the ports of each side evenly. Ports of nodes with fixed ratios
// or positions are left alone.
func distributePorts(n *lgraph.Node, dir lgraph.Direction) {
	if n.PortConstraints.IsRatioFixed() || n.PortConstraints.IsPosFixed() {
		return
	}
	out := lgraph.SideFromDirection(dir)
	for _, p := range n.Ports() {
		if p.Side() != lgraph.SideUndefined {
			continue
		}
		if len(p.Outgoing()) > len(p.Incoming()) {
			p.SetSide(out)
		} else {
			p.SetSide(out.Opposed())
		}
	}

	n.SortPortsBySide()
	n.CachePortSides()
	for _, s := range lgraph.Sides {
		ports := n.PortsOnSide(s)
		for i, p := range ports {
			f := float64(i+1) / float64(len(ports)+1)
			switch s {
			case lgraph.North:
				p.Position = geom.V(n.Size.X*f-p.Size.X/2, -p.Size.Y)
			case lgraph.East:
				p.Position = geom.V(n.Size.X, n.Size.Y*f-p.Size.Y/2)
			case lgraph.South:
				p.Position = geom.V(n.Size.X*(1-f)-p.Size.X/2, n.Size.Y)
			case lgraph.West:
				p.Position = geom.V(-p.Size.X, n.Size.Y*(1-f)-p.Size.Y/2)
			}
		}
	}
}
