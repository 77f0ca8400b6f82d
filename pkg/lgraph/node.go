package lgraph

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/geom"
)

// Node is a node of a layered graph. Position is the top-left corner of the
// node box, relative to the graph's drawing area; Size excludes Margin.
type Node struct {
	id     int
	arena  *Arena
	graph  *Graph
	layer  *Layer
	nested *Graph
	ports  []*Port
	labels []*Label

	sideRanges map[PortSide][2]int

	Type NodeType
	// Name is the identifier the node had in the input diagram, if any.
	Name string

	Position geom.Vector
	Size     geom.Vector
	// Margin is space around the node reserved for ports and labels.
	Margin  geom.Insets
	Padding geom.Insets

	PortConstraints   PortConstraints
	LayerConstraint   LayerConstraint
	InLayerConstraint InLayerConstraint
	EdgeConstraint    EdgeConstraint

	// External port dummies remember what they stand for.
	ExtPortSide         PortSide
	ExtPortSize         geom.Vector
	PortAnchor          geom.Vector
	PortRatioOrPosition float64
	// Origin is the element a dummy was created for, typically a *Port.
	Origin any

	Hypernode bool
	SizeFixed bool

	// Spacings overrides graph-wide spacings for this node only.
	Spacings Spacings
}

// ID returns the node's arena-unique identifier.
func (n *Node) ID() int { return n.id }

func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("n_%s", n.Name)
	}
	return fmt.Sprintf("n%d", n.id)
}

// Graph returns the graph containing n.
func (n *Node) Graph() *Graph {
	if n.layer != nil {
		return n.layer.graph
	}
	return n.graph
}

// Layer returns the node's layer, or nil if it has none.
func (n *Node) Layer() *Layer { return n.layer }

// SetLayer moves n to the end of layer l. A nil layer puts n into its
// graph's layerless bag.
func (n *Node) SetLayer(l *Layer) {
	if l == n.layer && l != nil {
		return
	}
	n.detach()
	if l == nil {
		if n.graph != nil {
			n.graph.layerless = append(n.graph.layerless, n)
		}
		return
	}
	n.layer = l
	n.graph = l.graph
	l.nodes = append(l.nodes, n)
}

// SetLayerAt moves n into layer l at index i.
func (n *Node) SetLayerAt(i int, l *Layer) {
	if l == nil {
		errors.InvalidArgument("layer must not be nil")
	}
	size := len(l.nodes)
	if n.layer == l {
		size--
	}
	if i < 0 || i > size {
		errors.InvalidArgument("index %d out of range [0,%d] for layer %d", i, size, l.Index())
	}
	n.detach()
	n.layer = l
	n.graph = l.graph
	l.nodes = slices.Insert(l.nodes, i, n)
}

func (n *Node) detach() {
	if n.layer != nil {
		n.layer.nodes = remove(n.layer.nodes, n)
		n.layer = nil
	} else if n.graph != nil {
		n.graph.layerless = remove(n.graph.layerless, n)
	}
}

// Index returns the position of n in its layer, or -1 without a layer.
func (n *Node) Index() int {
	if n.layer == nil {
		return -1
	}
	return slices.Index(n.layer.nodes, n)
}

// NestedGraph returns the graph nested inside n, or nil.
func (n *Node) NestedGraph() *Graph { return n.nested }

// SetNestedGraph makes g the nested graph of n.
func (n *Node) SetNestedGraph(g *Graph) {
	if n.nested != nil {
		n.nested.parent = nil
	}
	n.nested = g
	if g != nil {
		g.parent = n
	}
}

// NewNestedGraph creates a graph in n's arena and nests it inside n.
func (n *Node) NewNestedGraph() *Graph {
	g := n.arena.NewGraph()
	n.SetNestedGraph(g)
	return g
}

// NewPort creates a port attached to n.
func (n *Node) NewPort() *Port {
	p := n.arena.NewPort()
	p.SetNode(n)
	return p
}

// Ports returns the node's ports in order.
func (n *Node) Ports() []*Port { return slices.Clone(n.ports) }

// PortCount returns the number of ports.
func (n *Node) PortCount() int { return len(n.ports) }

// PortsOfType returns the ports with incoming (PortInput) or outgoing
// (PortOutput) edges. PortUndefined returns all ports.
func (n *Node) PortsOfType(t PortType) []*Port {
	var out []*Port
	for _, p := range n.ports {
		switch {
		case t == PortInput && len(p.incoming) > 0,
			t == PortOutput && len(p.outgoing) > 0,
			t == PortUndefined:
			out = append(out, p)
		}
	}
	return out
}

// PortsOnSide returns the ports on side s in port order. After
// [Node.CachePortSides] it slices the cached range.
func (n *Node) PortsOnSide(s PortSide) []*Port {
	if n.sideRanges != nil {
		r, ok := n.sideRanges[s]
		if !ok {
			return nil
		}
		return slices.Clone(n.ports[r[0]:r[1]])
	}
	var out []*Port
	for _, p := range n.ports {
		if p.side == s {
			out = append(out, p)
		}
	}
	return out
}

// CachePortSides records the index range of each side's run of ports. The
// ports must already be sorted by side. The cache stays valid until
// [Node.InvalidatePortSides] or the next port change on n.
func (n *Node) CachePortSides() {
	n.sideRanges = make(map[PortSide][2]int)
	if len(n.ports) == 0 {
		return
	}
	first := 0
	current := n.ports[0].side
	for i, p := range n.ports {
		if p.side != current {
			n.sideRanges[current] = [2]int{first, i}
			current = p.side
			first = i
		}
	}
	n.sideRanges[current] = [2]int{first, len(n.ports)}
}

// InvalidatePortSides drops the cached side ranges.
func (n *Node) InvalidatePortSides() { n.sideRanges = nil }

// SortPorts reorders the ports with cmp. The sort is stable.
func (n *Node) SortPorts(less func(a, b *Port) int) {
	slices.SortStableFunc(n.ports, less)
	n.sideRanges = nil
}

// SortPortsBySide orders ports clockwise by side: north, east, south, west.
// Ports without a side go last. The order within a side is kept.
func (n *Node) SortPortsBySide() {
	n.SortPorts(func(a, b *Port) int {
		return cmp.Compare(sideOrdinal(a.side), sideOrdinal(b.side))
	})
}

func sideOrdinal(s PortSide) int {
	if s == SideUndefined {
		return int(West) + 1
	}
	return int(s)
}

// Labels returns the node's labels.
func (n *Node) Labels() []*Label { return slices.Clone(n.labels) }

// AddLabel makes n the owner of l.
func (n *Node) AddLabel(l *Label) { l.SetOwner(n) }

func (n *Node) labelStore() *[]*Label { return &n.labels }

// Incoming returns all edges ending at one of n's ports.
func (n *Node) Incoming() []*Edge {
	var out []*Edge
	for _, p := range n.ports {
		out = append(out, p.incoming...)
	}
	return out
}

// Outgoing returns all edges starting at one of n's ports.
func (n *Node) Outgoing() []*Edge {
	var out []*Edge
	for _, p := range n.ports {
		out = append(out, p.outgoing...)
	}
	return out
}

// Connected returns incoming edges followed by outgoing edges. A self-loop
// appears twice.
func (n *Node) Connected() []*Edge {
	return append(n.Incoming(), n.Outgoing()...)
}

// Spacing returns the node's own value for s when set, otherwise the value
// of its graph.
func (n *Node) Spacing(s Spacing) float64 {
	if v, ok := n.Spacings[s]; ok {
		return v
	}
	if g := n.Graph(); g != nil {
		return g.Spacing(s)
	}
	return DefaultSpacings()[s]
}

// Center returns the center of the node box in graph coordinates.
func (n *Node) Center() geom.Vector {
	return geom.V(n.Position.X+n.Size.X/2, n.Position.Y+n.Size.Y/2)
}
