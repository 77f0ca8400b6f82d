package selfloop

import (
	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// Route computes the bend points of every self-loop of rep. Loops run
// clockwise around the node at the levels assigned by Prepare, pushed out
// by the port and segment offsets of the final label assignment. Bend
// points are written in the coordinates of the node's graph.
func Route(rep *NodeRep) {
	origin := geom.V(0, 0)
	if rep.Node != nil {
		origin = rep.Node.Position
	}
	for _, c := range rep.Components {
		for _, e := range c.Edges {
			chain := rep.routeEdge(c, e)
			chain.Offset(origin.X, origin.Y)
			e.BendPoints = chain
		}
	}
}

// routeEdge returns the bend points of e in node coordinates, ordered from
// source to target.
func (r *NodeRep) routeEdge(c *Component, e *lgraph.Edge) geom.Chain {
	pa, pb := c.portOf(e.Source()), c.portOf(e.Target())
	if pa == pb {
		return r.portLoop(pa, e)
	}
	reversed := false
	if c.routePos(pb) < c.routePos(pa) {
		pa, pb = pb, pa
		reversed = true
	}

	sa, sb := pa.Side(), pb.Side()
	la, lb := pa.EdgeLevel(e), pb.EdgeLevel(e)
	oa, ob := pa.OtherEdgeOffset, pb.OtherEdgeOffset
	ee := r.EdgeEdgeSpacing

	var chain geom.Chain
	if sa == sb && pa.sideIndex < pb.sideIndex {
		// Both ends on one side: a single segment at the outer level.
		l, off := max(la, lb), max(oa, ob)
		chain = geom.Chain{outward(pa, l, ee, off), outward(pb, l, ee, off)}
	} else {
		ba, bb := outward(pa, la, ee, oa), outward(pb, lb, ee, ob)
		chain = geom.Chain{ba}
		chain = append(chain, r.cornerPoints(c, sa, sb, ba, bb, ee)...)
		chain = append(chain, bb)
	}
	if reversed {
		chain.Reverse()
	}
	return chain
}

// portLoop routes a loop leaving and entering the same port as a short
// segment across its outward bend.
func (r *NodeRep) portLoop(p *Port, e *lgraph.Edge) geom.Chain {
	b := outward(p, p.EdgeLevel(e), r.EdgeEdgeSpacing, p.OtherEdgeOffset)
	t := p.Side().Right().Vector().Times(r.EdgeEdgeSpacing / 2)
	return geom.Chain{b.Minus(t), b.Plus(t)}
}

// outward projects the anchor of p level spacings plus offset away from
// the node.
func outward(p *Port, level int, spacing, offset float64) geom.Vector {
	return p.Anchor().Plus(p.Side().Vector().Times(float64(level)*spacing + offset))
}
