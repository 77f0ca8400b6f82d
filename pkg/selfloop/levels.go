package selfloop

import (
	"cmp"
	"slices"

	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// span marks the side ports a component's route runs over.
type span []bool

func (s span) size() int {
	n := 0
	for _, v := range s {
		if v {
			n++
		}
	}
	return n
}

func (s span) intersects(o span) bool {
	for i := range s {
		if s[i] && o[i] {
			return true
		}
	}
	return false
}

// spanOn returns the ports of side the route of c runs over, or nil when
// the route has no port there.
func spanOn(c *Component, side *NodeSide) span {
	m := len(side.Ports)
	if m == 0 {
		return nil
	}
	var sp span
	cover := func(lo, hi int) {
		if sp == nil {
			sp = make(span, m)
		}
		for i := lo; i <= hi; i++ {
			sp[i] = true
		}
	}

	s := side.Side
	start, end := c.Start(), c.End()
	switch c.Type {
	case NonLoop:
		if start.Side() == s {
			cover(start.sideIndex, start.sideIndex)
		}
	case Side:
		if start.Side() == s {
			cover(start.sideIndex, end.sideIndex)
		}
	default:
		if start.Side() == s {
			cover(start.sideIndex, m-1)
		}
		if end.Side() == s {
			cover(0, end.sideIndex)
		}
		if slices.Contains(c.intermediateSides(), s) && len(c.PortsOnSide(s)) > 0 {
			cover(0, m-1)
		}
	}
	return sp
}

// depthOn returns how many levels c occupies on s: one per loop at its
// busiest port, plus one for the segment passing the side.
func depthOn(c *Component, s lgraph.PortSide) int {
	d := 1
	for _, p := range c.PortsOnSide(s) {
		d = max(d, len(p.edges))
	}
	if slices.Contains(c.intermediateSides(), s) {
		d++
	}
	return d
}

// assignLevels nests the routes on every side. A component whose span
// encloses another's lies outside it: its level is one above the other's
// outermost level. Overlapping spans of equal size nest by start index.
func (r *NodeRep) assignLevels() {
	for _, c := range r.Components {
		c.levels = make(map[lgraph.PortSide]int)
	}

	for _, side := range r.sides {
		var comps []*Component
		spans := make(map[*Component]span)
		for _, c := range r.Components {
			if sp := spanOn(c, side); sp != nil {
				comps = append(comps, c)
				spans[c] = sp
			}
		}

		encloses := func(c, d *Component) bool {
			sc, sd := spans[c], spans[d]
			if !sc.intersects(sd) {
				return false
			}
			if sc.size() != sd.size() {
				return sc.size() > sd.size()
			}
			return c.Start().OriginalIndex < d.Start().OriginalIndex
		}

		memo := make(map[*Component]int)
		var level, top func(*Component) int
		level = func(c *Component) int {
			if l, ok := memo[c]; ok {
				return l
			}
			l := 1
			for _, d := range comps {
				if d != c && encloses(c, d) {
					l = max(l, top(d)+1)
				}
			}
			memo[c] = l
			return l
		}
		top = func(c *Component) int {
			return level(c) + depthOn(c, side.Side) - 1
		}

		side.MaxPortLevel = 0
		for _, c := range comps {
			l := level(c)
			c.levels[side.Side] = l
			side.MaxPortLevel = max(side.MaxPortLevel, top(c))
			for _, p := range c.PortsOnSide(side.Side) {
				p.MaxLevel = l + len(p.edges) - 1
				p.assignEdgeLevels(l)
			}
		}
	}
}

// assignEdgeLevels stacks the loops at p from base outward, loops reaching
// nearer ports inside.
func (p *Port) assignEdgeLevels(base int) {
	c := p.Component
	pos := c.routePos(p)
	reach := func(e *lgraph.Edge) int {
		d := c.routePos(c.portOf(e.OtherPort(p.Port))) - pos
		if d < 0 {
			d = -d
		}
		return d
	}
	edges := slices.Clone(p.edges)
	slices.SortStableFunc(edges, func(a, b *lgraph.Edge) int {
		return cmp.Compare(reach(a), reach(b))
	})
	p.edgeLevels = make(map[*lgraph.Edge]int, len(edges))
	for i, e := range edges {
		p.edgeLevels[e] = base + i
	}
}

// portOf returns the component port wrapping lp.
func (c *Component) portOf(lp *lgraph.Port) *Port {
	for _, p := range c.Ports {
		if p.Port == lp {
			return p
		}
	}
	return nil
}

// createSegments adds a segment for every side a component's route passes.
// Segments on sides with ports of their own component sit just outside
// those ports; opposing segments stack above the side's port levels, later
// starting components inside.
func (r *NodeRep) createSegments() {
	for _, side := range r.sides {
		side.Segments = nil
	}
	for _, c := range r.Components {
		for _, s := range c.intermediateSides() {
			seg := &Segment{Component: c, Side: s, Opposing: len(c.PortsOnSide(s)) == 0}
			if !seg.Opposing {
				seg.Level = c.levels[s] + depthOn(c, s) - 1
			}
			r.Side(s).Segments = append(r.Side(s).Segments, seg)
		}
	}

	for _, side := range r.sides {
		var opposing []*Segment
		maxLevel := side.MaxPortLevel
		for _, seg := range side.Segments {
			if seg.Opposing {
				opposing = append(opposing, seg)
			} else {
				maxLevel = max(maxLevel, seg.Level)
			}
		}
		slices.SortStableFunc(opposing, func(a, b *Segment) int {
			return cmp.Compare(b.Component.Start().OriginalIndex, a.Component.Start().OriginalIndex)
		})
		level := side.MaxPortLevel
		for _, seg := range opposing {
			level++
			seg.Level = level
			seg.Component.levels[side.Side] = level
		}
		side.MaxSegmentLevel = max(maxLevel, level)
	}
}
