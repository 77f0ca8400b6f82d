package selfloop

import (
	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// anchorHeight separates a segment from the ports' loop levels.
const anchorHeight = 5

// generator creates the candidate positions of one node's labels.
type generator struct {
	rep       *NodeRep
	penalties Penalties
}

// alignments lists the candidate families in generation order.
var alignments = [3]Alignment{Centered, RightOrBottom, LeftOrTop}

// Generate fills the candidate list of every labeled component of rep. The
// representation must be prepared.
func Generate(rep *NodeRep, penalties Penalties) {
	g := generator{rep: rep, penalties: penalties}
	for _, c := range rep.Components {
		if c.Label == nil {
			continue
		}
		c.Label.Candidates = g.positions(c)
		c.Label.Position = nil
	}
}

// positions dispatches on the component type.
func (g generator) positions(c *Component) []*LabelPosition {
	switch c.Type {
	case NonLoop:
		return g.nonLoop(c)
	case Side:
		return g.side(c)
	case Corner:
		return g.corner(c)
	case Opposing:
		return g.opposing(c)
	case ThreeCorner:
		return g.threeCorner(c)
	case FourCorner:
		return g.fourCorner(c)
	}
	return nil
}

// bend projects the anchor of p out past its outermost loop.
func (g generator) bend(p *Port) geom.Vector {
	dist := float64(p.MaxLevel)*g.rep.EdgeEdgeSpacing + g.rep.EdgeLabelSpacing
	return p.Anchor().Plus(p.Side().Vector().Times(dist))
}

// corners returns the corner points of c's route between the two end
// bends.
func (g generator) corners(c *Component, first, last geom.Vector) []geom.Vector {
	return g.rep.cornerPoints(c, c.Start().Side(), c.End().Side(), first, last, g.rep.EdgeEdgeSpacing)
}

// cornerPoints walks the sides of c's route from side from to side to.
// Each passed side contributes a corner on the line of its segment; the
// last corner joins the previous point to the end bend.
func (r *NodeRep) cornerPoints(c *Component, from, to lgraph.PortSide, first, last geom.Vector, spacing float64) []geom.Vector {
	var out []geom.Vector
	prev := first
	s := from.Right()
	for range 3 {
		if s == to {
			break
		}
		level, offset := r.Side(s).MaxSegmentLevel+1, 0.0
		if seg := r.Side(s).segment(c); seg != nil {
			level, offset = seg.Level, seg.LabelOffset
		}
		pad := spacing*float64(level) + offset + anchorHeight
		prev = onSideLine(prev, s, r.Size, pad)
		out = append(out, prev)
		s = s.Right()
	}
	return append(out, singleCorner(prev, last, to))
}

// onSideLine projects prev onto the line running along side s at distance
// pad from a node of the given size.
func onSideLine(prev geom.Vector, s lgraph.PortSide, size geom.Vector, pad float64) geom.Vector {
	switch s {
	case lgraph.North:
		return geom.V(prev.X, -pad)
	case lgraph.East:
		return geom.V(size.X+pad, prev.Y)
	case lgraph.South:
		return geom.V(prev.X, size.Y+pad)
	case lgraph.West:
		return geom.V(-pad, prev.Y)
	}
	return prev
}

// singleCorner is the corner between a point and a bend on targetSide.
func singleCorner(prev, target geom.Vector, targetSide lgraph.PortSide) geom.Vector {
	if targetSide.IsVertical() {
		return geom.V(prev.X, target.Y)
	}
	return geom.V(target.X, prev.Y)
}

// centeredCoordinates centers the label on the line from start to end,
// shifted to the offset side of the line.
func centeredCoordinates(size geom.Vector, offsetSide lgraph.PortSide, start, end geom.Vector) geom.Vector {
	dist := start.Distance(end)
	c := start
	switch offsetSide {
	case lgraph.North:
		c.X += (dist - size.X) / 2
		c.Y -= size.Y
	case lgraph.East:
		c.Y += dist/2 - size.Y/2
	case lgraph.South:
		c.X += dist/2 - size.X/2
	case lgraph.West:
		c.Y += (dist - size.Y) / 2
		c.X -= size.X
	}
	return c
}

// topOrLeftCoordinates puts the label at the start of the line.
func topOrLeftCoordinates(size geom.Vector, offsetSide lgraph.PortSide, start geom.Vector) geom.Vector {
	c := start
	switch offsetSide {
	case lgraph.North:
		c.Y -= size.Y
	case lgraph.West:
		c.X -= size.X
	}
	return c
}

// bottomOrRightCoordinates puts the label at the end of the line, pulled
// back so it does not extend past it.
func bottomOrRightCoordinates(size geom.Vector, offsetSide lgraph.PortSide, start, end geom.Vector) geom.Vector {
	back := end.Direction(start)
	c := end
	switch offsetSide {
	case lgraph.North:
		c.Y -= size.Y
		c.Add(back.Times(size.X))
	case lgraph.East:
		c.Add(back.Times(size.Y))
	case lgraph.South:
		c.Add(back.Times(size.X))
	case lgraph.West:
		c.X -= size.X
		c.Add(back.Times(size.Y))
	}
	return c
}

// create builds a candidate on the line from start to end. The segment
// side is where the candidate counts crossings, the label side where the
// box goes, the penalty side what it costs.
func (g generator) create(l *Label, segmentSide, labelSide, penaltySide lgraph.PortSide, start, end geom.Vector, a Alignment) *LabelPosition {
	var coords geom.Vector
	switch a {
	case Centered:
		coords = centeredCoordinates(l.Size, labelSide, start, end)
	case LeftOrTop:
		coords = topOrLeftCoordinates(l.Size, labelSide, start)
	case RightOrBottom:
		coords = bottomOrRightCoordinates(l.Size, labelSide, start, end)
	}

	text := a.text()
	switch labelSide {
	case lgraph.East:
		text = TextLeft
	case lgraph.West:
		text = TextRight
	}

	return &LabelPosition{
		Side:        segmentSide,
		Position:    coords,
		Original:    coords,
		BasePenalty: g.penalties.Side(penaltySide) + g.penalties.Alignment(a),
		Alignment:   a,
		Text:        text,
	}
}

// outerSegment places the label beside the stub between a port and its
// bend, on the side facing away from the loop or towards it.
func (g generator) outerSegment(l *Label, p *Port, portPoint, bendPoint geom.Vector, leftOfStub bool, a Alignment) *LabelPosition {
	side := p.Side()
	labelSide := side.Right()
	if leftOfStub {
		labelSide = side.Left()
	}
	start, end := portPoint, bendPoint
	if side == lgraph.North || side == lgraph.West {
		start, end = bendPoint, portPoint
	}
	pos := g.create(l, side, labelSide, side, start, end, a)
	pos.BasePenalty += g.penalties.ShortSegment
	pos.port, pos.level = p, p.MaxLevel
	return pos
}

// shortSegment places the label on the segment between the bend of p and
// the next point of the route, outside the node.
func (g generator) shortSegment(l *Label, p *Port, portPoint, bendPoint geom.Vector, a Alignment, shortPenalty bool) *LabelPosition {
	side := p.Side()
	start, end := portPoint, bendPoint
	switch side {
	case lgraph.North, lgraph.East:
		if p.Direction != RouteRight {
			start, end = bendPoint, portPoint
		}
	case lgraph.South, lgraph.West:
		if p.Direction != RouteLeft {
			start, end = bendPoint, portPoint
		}
	}
	pos := g.create(l, side, side, side, start, end, a)
	if shortPenalty {
		pos.BasePenalty += g.penalties.ShortSegment
	}
	pos.port, pos.level = p, p.MaxLevel
	return pos
}

// longSegment places the label on a segment between two corners, running
// along side.
func (g generator) longSegment(l *Label, side lgraph.PortSide, b1, b2 geom.Vector, a Alignment) *LabelPosition {
	start, end := b1, b2
	if (side.IsVertical() && b1.X > b2.X) || (!side.IsVertical() && b1.Y > b2.Y) {
		start, end = b2, b1
	}
	return g.create(l, side, side, side, start, end, a)
}

// onSegment anchors pos to the segment of c on side.
func (g generator) onSegment(pos *LabelPosition, c *Component, side lgraph.PortSide) *LabelPosition {
	if seg := g.rep.Side(side).segment(c); seg != nil {
		pos.segment, pos.level = seg, seg.Level
	}
	return pos
}
