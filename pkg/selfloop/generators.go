package selfloop

// Each family below is emitted once per alignment: centered first, then
// right or bottom aligned, then left or top aligned.

// nonLoop places the label beside the stub of a port looping onto itself.
func (g generator) nonLoop(c *Component) []*LabelPosition {
	l, p := c.Label, c.Start()
	anchor, bend := p.Anchor(), g.bend(p)
	var out []*LabelPosition
	for _, a := range alignments {
		out = append(out,
			g.outerSegment(l, p, anchor, bend, true, a),
			g.outerSegment(l, p, anchor, bend, false, a))
	}
	return out
}

// side places the label beside the stubs of both ports, facing away from
// the loop, or on the segment joining them.
func (g generator) side(c *Component) []*LabelPosition {
	l, start, end := c.Label, c.Start(), c.End()
	level := max(start.MaxLevel, end.MaxLevel)
	dist := float64(level)*g.rep.EdgeEdgeSpacing + g.rep.EdgeLabelSpacing
	dir := start.Side().Vector()
	first := start.Anchor().Plus(dir.Times(dist))
	last := end.Anchor().Plus(dir.Times(dist))

	var out []*LabelPosition
	for _, a := range alignments {
		long := g.longSegment(l, start.Side(), first, last, a)
		long.level = level
		out = append(out,
			g.outerSegment(l, start, start.Anchor(), first, true, a),
			g.outerSegment(l, end, end.Anchor(), last, false, a),
			long)
	}
	return out
}

// corner places the label on either leg meeting at the corner.
func (g generator) corner(c *Component) []*LabelPosition {
	l, start, end := c.Label, c.Start(), c.End()
	first, last := g.bend(start), g.bend(end)
	cs := g.corners(c, first, last)

	var out []*LabelPosition
	for _, a := range alignments {
		out = append(out,
			g.shortSegment(l, start, first, cs[0], a, false),
			g.shortSegment(l, end, last, cs[0], a, false))
	}
	return out
}

// opposing places the label on the legs at both ports or on the segment
// connecting them across the passed side.
func (g generator) opposing(c *Component) []*LabelPosition {
	l, start, end := c.Label, c.Start(), c.End()
	first, last := g.bend(start), g.bend(end)
	cs := g.corners(c, first, last)
	mid := c.intermediateSides()[0]

	var out []*LabelPosition
	for _, a := range alignments {
		out = append(out,
			g.shortSegment(l, start, first, cs[0], a, true),
			g.shortSegment(l, end, last, cs[1], a, true),
			g.onSegment(g.longSegment(l, mid, cs[0], cs[1], a), c, mid))
	}
	return out
}

// threeCorner places the label on the legs at both ports or on either of
// the two segments in between.
func (g generator) threeCorner(c *Component) []*LabelPosition {
	l, start, end := c.Label, c.Start(), c.End()
	first, last := g.bend(start), g.bend(end)
	cs := g.corners(c, first, last)
	sides := c.intermediateSides()

	var out []*LabelPosition
	for _, a := range alignments {
		out = append(out,
			g.shortSegment(l, start, first, cs[0], a, true),
			g.shortSegment(l, end, last, cs[2], a, true),
			g.onSegment(g.longSegment(l, sides[0], cs[0], cs[1], a), c, sides[0]),
			g.onSegment(g.longSegment(l, sides[1], cs[1], cs[2], a), c, sides[1]))
	}
	return out
}

// fourCorner places the label on the legs at both ports, on the segments
// adjacent to them, or on the middle segment facing the start side.
//
// Middle segment candidates cost the side penalty plus the alignment
// penalty like every other long segment; aligned ones are not charged the
// alignment penalty alone.
func (g generator) fourCorner(c *Component) []*LabelPosition {
	l, start, end := c.Label, c.Start(), c.End()
	first, last := g.bend(start), g.bend(end)
	cs := g.corners(c, first, last)
	sides := c.intermediateSides()
	middle := start.Side().Right().Right()

	var out []*LabelPosition
	for _, a := range alignments {
		out = append(out,
			g.shortSegment(l, start, first, cs[0], a, true),
			g.shortSegment(l, end, last, cs[3], a, true),
			g.onSegment(g.longSegment(l, sides[0], cs[0], cs[1], a), c, sides[0]),
			g.onSegment(g.longSegment(l, sides[2], cs[3], cs[2], a), c, sides[2]),
			g.onSegment(g.longSegment(l, middle, cs[1], cs[2], a), c, sides[1]))
	}
	return out
}
