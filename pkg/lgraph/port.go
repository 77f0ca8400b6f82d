package lgraph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/geom"
)

// Port is a point on a node's border where edges attach. Position is the
// top-left corner of the port box relative to the node's position.
type Port struct {
	id       int
	node     *Node
	side     PortSide
	anchor   geom.Vector
	explicit bool
	labels   []*Label
	incoming []*Edge
	outgoing []*Edge

	// Name is the identifier the port had in the input diagram, if any.
	Name string

	Position geom.Vector
	Size     geom.Vector
	Margin   geom.Insets

	// InputCollector and OutputCollector mark ports shared by all incoming
	// or outgoing edges of their node.
	InputCollector  bool
	OutputCollector bool

	// BorderOffset is the distance of the port from the node border; negative
	// values lie inside the node.
	BorderOffset float64
	// PortRatio is the relative position along the side for ratio-fixed ports.
	PortRatio float64
	// Origin is the element the port was created for, if any.
	Origin any
}

// ID returns the port's arena-unique identifier.
func (p *Port) ID() int { return p.id }

func (p *Port) String() string {
	name := p.Name
	if name == "" {
		name = fmt.Sprint(p.id)
	}
	if p.node == nil {
		return fmt.Sprintf("p_%s", name)
	}
	return fmt.Sprintf("%v.p_%s", p.node, name)
}

// Node returns the node owning p, or nil.
func (p *Port) Node() *Node { return p.node }

// SetNode moves p to the end of n's port list. A nil node detaches p.
func (p *Port) SetNode(n *Node) {
	if p.node == n {
		return
	}
	if p.node != nil {
		p.node.ports = remove(p.node.ports, p)
		p.node.sideRanges = nil
	}
	p.node = n
	if n != nil {
		n.ports = append(n.ports, p)
		n.sideRanges = nil
	}
}

// Index returns the position of p in its node's port list, or -1.
func (p *Port) Index() int {
	if p.node == nil {
		return -1
	}
	return slices.Index(p.node.ports, p)
}

// Side returns the port's side.
func (p *Port) Side() PortSide { return p.side }

// SetSide places p on side s. Without an explicit anchor the default anchor
// for the side is recomputed from the current size.
func (p *Port) SetSide(s PortSide) {
	if !s.IsValid() {
		errors.InvalidArgument("invalid port side %d", int(s))
	}
	p.side = s
	if !p.explicit {
		p.anchor = DefaultAnchor(s, p.Size)
	}
	if p.node != nil {
		p.node.sideRanges = nil
	}
}

// DefaultAnchor returns the anchor a port of size size gets on side s.
func DefaultAnchor(s PortSide, size geom.Vector) geom.Vector {
	switch s {
	case North:
		return geom.V(size.X/2, 0)
	case East:
		return geom.V(size.X, size.Y/2)
	case South:
		return geom.V(size.X/2, size.Y)
	case West:
		return geom.V(0, size.Y/2)
	}
	return geom.V(size.X/2, size.Y/2)
}

// Anchor returns the point edges attach to, relative to the port position.
func (p *Port) Anchor() geom.Vector { return p.anchor }

// SetAnchor sets an explicit anchor that side changes no longer touch.
func (p *Port) SetAnchor(a geom.Vector) {
	p.anchor = a
	p.explicit = true
}

// ExplicitAnchor reports whether the anchor was set explicitly.
func (p *Port) ExplicitAnchor() bool { return p.explicit }

// AbsoluteAnchor returns the anchor in the coordinates of the node's graph.
func (p *Port) AbsoluteAnchor() geom.Vector {
	a := p.Position.Plus(p.anchor)
	if p.node != nil {
		a = a.Plus(p.node.Position)
	}
	return a
}

// Labels returns the port's labels.
func (p *Port) Labels() []*Label { return slices.Clone(p.labels) }

// AddLabel makes p the owner of l.
func (p *Port) AddLabel(l *Label) { l.SetOwner(p) }

func (p *Port) labelStore() *[]*Label { return &p.labels }

// Incoming returns the edges ending at p.
func (p *Port) Incoming() []*Edge { return slices.Clone(p.incoming) }

// Outgoing returns the edges starting at p.
func (p *Port) Outgoing() []*Edge { return slices.Clone(p.outgoing) }

// Connected returns incoming then outgoing edges.
func (p *Port) Connected() []*Edge {
	out := make([]*Edge, 0, len(p.incoming)+len(p.outgoing))
	out = append(out, p.incoming...)
	return append(out, p.outgoing...)
}

// Degree returns the number of incident edges.
func (p *Port) Degree() int { return len(p.incoming) + len(p.outgoing) }

// NetFlow returns incoming minus outgoing edge count.
func (p *Port) NetFlow() int { return len(p.incoming) - len(p.outgoing) }

// Predecessors returns the source ports of incoming edges.
func (p *Port) Predecessors() []*Port {
	out := make([]*Port, 0, len(p.incoming))
	for _, e := range p.incoming {
		out = append(out, e.source)
	}
	return out
}

// Successors returns the target ports of outgoing edges.
func (p *Port) Successors() []*Port {
	out := make([]*Port, 0, len(p.outgoing))
	for _, e := range p.outgoing {
		out = append(out, e.target)
	}
	return out
}
