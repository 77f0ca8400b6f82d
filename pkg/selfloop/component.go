package selfloop

import (
	"cmp"
	"slices"

	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// Component is a connected group of self-loops of one node.
type Component struct {
	// Ports are sorted by original index.
	Ports []*Port
	// Edges are sorted by ID.
	Edges []*lgraph.Edge
	Type  ComponentType
	// Label merges the labels of all edges, or is nil.
	Label *Label

	route  []*Port
	levels map[lgraph.PortSide]int
}

// Route returns the ports in the order the loop visits them.
func (c *Component) Route() []*Port { return slices.Clone(c.route) }

// Start returns the port the route leaves from.
func (c *Component) Start() *Port { return c.route[0] }

// End returns the port the route arrives at.
func (c *Component) End() *Port { return c.route[len(c.route)-1] }

// Level returns the component's innermost level on side s, or zero when its
// route does not touch s.
func (c *Component) Level(s lgraph.PortSide) int { return c.levels[s] }

// PortsOnSide returns the component's ports on side s.
func (c *Component) PortsOnSide(s lgraph.PortSide) []*Port {
	var out []*Port
	for _, p := range c.Ports {
		if p.Side() == s {
			out = append(out, p)
		}
	}
	return out
}

func (c *Component) String() string {
	s := "("
	for i, p := range c.Ports {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}

// findComponents runs a depth-first search over self-loops starting at
// every port in clockwise order.
func findComponents(ports []*Port, byPort map[*lgraph.Port]*Port) []*Component {
	var comps []*Component
	for _, start := range ports {
		if start.Component != nil || len(start.edges) == 0 {
			continue
		}
		c := &Component{}
		stack := []*Port{start}
		start.Component = c
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			c.Ports = append(c.Ports, p)
			for _, e := range p.edges {
				if !slices.Contains(c.Edges, e) {
					c.Edges = append(c.Edges, e)
				}
				other, ok := byPort[e.OtherPort(p.Port)]
				if !ok || other.Component != nil {
					continue
				}
				other.Component = c
				stack = append(stack, other)
			}
		}
		slices.SortFunc(c.Ports, func(a, b *Port) int { return cmp.Compare(a.OriginalIndex, b.OriginalIndex) })
		slices.SortFunc(c.Edges, func(a, b *lgraph.Edge) int { return cmp.Compare(a.ID(), b.ID()) })
		comps = append(comps, c)
	}
	return comps
}

// assignDirections picks the route through the component's ports and sets
// the routing direction of each. Routes always sweep clockwise. With a
// fixed port order the sweep starts at the source of the first edge;
// otherwise it starts behind the widest gap between consecutive ports.
func (c *Component) assignDirections(rep *NodeRep, fixedOrder bool) {
	k := len(c.Ports)
	if k == 1 {
		c.route = []*Port{c.Ports[0]}
		c.Ports[0].Direction = RouteBoth
		return
	}

	start := 0
	if fixedOrder {
		src := c.Edges[0].Source()
		for i, p := range c.Ports {
			if p.Port == src {
				start = i
			}
		}
	} else {
		best, bestForeign := -1, -1
		for i := range c.Ports {
			prev, cur := c.Ports[(i+k-1)%k], c.Ports[i]
			gap := sidesBetween(prev, cur)
			foreign := foreignPortsBetween(rep, prev, cur)
			if gap > best || (gap == best && foreign > bestForeign) {
				start, best, bestForeign = i, gap, foreign
			}
		}
	}

	c.route = make([]*Port, k)
	for i := range k {
		c.route[i] = c.Ports[(start+i)%k]
	}
	for i, p := range c.route {
		switch {
		case i == 0:
			p.Direction = RouteRight
		case i == k-1:
			p.Direction = RouteLeft
		case i < k/2:
			p.Direction = RouteRight
		default:
			p.Direction = RouteLeft
		}
	}
}

// sidesBetween counts the side boundaries passed going clockwise from a to
// b. Going from a port to an earlier one on the same side wraps the node.
func sidesBetween(a, b *Port) int {
	d := (int(b.Side()) - int(a.Side()) + 4) % 4
	if d == 0 && b.OriginalIndex <= a.OriginalIndex {
		return 4
	}
	return d
}

// foreignPortsBetween counts ports of other components or without loops
// strictly between a and b in clockwise order.
func foreignPortsBetween(rep *NodeRep, a, b *Port) int {
	n := len(rep.ports)
	count := 0
	for i := (a.OriginalIndex + 1) % n; i != b.OriginalIndex; i = (i + 1) % n {
		if rep.ports[i].Component != a.Component {
			count++
		}
	}
	return count
}

// classify derives the type from the route's end ports.
func (c *Component) classify() ComponentType {
	if len(c.route) == 1 {
		return NonLoop
	}
	src, tgt := c.Start(), c.End()
	ss, ts := src.Side(), tgt.Side()
	right := src.Direction == RouteRight
	left := src.Direction == RouteLeft

	switch {
	case ss == ts:
		if (left && src.sideIndex < tgt.sideIndex) || (right && tgt.sideIndex < src.sideIndex) {
			return FourCorner
		}
		return Side
	case ss.AreAdjacent(ts):
		if (left && ss.Right() == ts) || (right && ss.Left() == ts) {
			return ThreeCorner
		}
		return Corner
	}
	return Opposing
}

// intermediateSides lists the sides the route passes between its start and
// end side.
func (c *Component) intermediateSides() []lgraph.PortSide {
	n := c.Type.Corners() - 1
	if n <= 0 {
		return nil
	}
	out := make([]lgraph.PortSide, 0, n)
	s := c.Start().Side()
	for range n {
		s = s.Right()
		out = append(out, s)
	}
	return out
}

// routePos returns the position of p in the route.
func (c *Component) routePos(p *Port) int {
	return slices.Index(c.route, p)
}
