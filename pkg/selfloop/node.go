package selfloop

import (
	"cmp"
	"slices"

	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// NodeRep is the working representation of one node while its self-loops
// are placed. Coordinates are relative to the node's top-left corner.
type NodeRep struct {
	Node *lgraph.Node
	Size geom.Vector

	// Spacings taken from the node when the representation is built.
	EdgeEdgeSpacing   float64
	EdgeLabelSpacing  float64
	LabelLabelSpacing float64

	Components []*Component

	ports []*Port
	sides [4]*NodeSide
}

// NodeSide holds the ports of one side in clockwise order and the segments
// routed along it.
type NodeSide struct {
	Side     lgraph.PortSide
	Ports    []*Port
	Segments []*Segment

	// MaxPortLevel is the highest level used by loops leaving ports on
	// this side. MaxSegmentLevel includes the segments passing the side.
	MaxPortLevel    int
	MaxSegmentLevel int
}

// Port wraps a node port. Ports without self-loops have no component and
// level zero.
type Port struct {
	Port      *lgraph.Port
	Component *Component
	Direction RoutingDirection
	// MaxLevel is the level of the outermost loop at this port.
	MaxLevel int
	// OtherEdgeOffset pushes the port's loops outward to clear labels.
	OtherEdgeOffset float64
	// OriginalIndex is the port's rank in clockwise order around the node.
	OriginalIndex int

	edges      []*lgraph.Edge
	edgeLevels map[*lgraph.Edge]int
	sideIndex  int
}

// Segment is the part of a component's route running along a side the
// route passes without ending there.
type Segment struct {
	Component *Component
	Side      lgraph.PortSide
	Level     int
	// LabelOffset pushes the segment outward to clear labels.
	LabelOffset float64
	// Opposing is set when the component has no ports on the side.
	Opposing bool
}

// NewNodeRep builds the representation of n and discovers its self-loop
// components. Ports without a side are ignored.
func NewNodeRep(n *lgraph.Node) *NodeRep {
	rep := &NodeRep{
		Node:              n,
		Size:              n.Size,
		EdgeEdgeSpacing:   n.Spacing(lgraph.SpacingEdgeEdge),
		EdgeLabelSpacing:  n.Spacing(lgraph.SpacingEdgeLabel),
		LabelLabelSpacing: n.Spacing(lgraph.SpacingLabelLabel),
	}
	for i, s := range lgraph.Sides {
		rep.sides[i] = &NodeSide{Side: s}
	}

	byPort := make(map[*lgraph.Port]*Port)
	for i, p := range clockwise(n.Ports()) {
		sp := &Port{Port: p, OriginalIndex: i}
		side := rep.Side(p.Side())
		sp.sideIndex = len(side.Ports)
		side.Ports = append(side.Ports, sp)
		rep.ports = append(rep.ports, sp)
		byPort[p] = sp
	}
	for _, sp := range rep.ports {
		sp.edges = slices.DeleteFunc(selfLoops(sp.Port), func(e *lgraph.Edge) bool {
			_, ok := byPort[e.OtherPort(sp.Port)]
			return !ok
		})
	}
	rep.Components = findComponents(rep.ports, byPort)
	return rep
}

// Side returns the representation of side s. It panics for SideUndefined.
func (r *NodeRep) Side(s lgraph.PortSide) *NodeSide {
	return r.sides[int(s)-1]
}

// Sides returns the four sides clockwise from north.
func (r *NodeRep) Sides() []*NodeSide { return r.sides[:] }

// Ports returns all sided ports in clockwise order.
func (r *NodeRep) Ports() []*Port { return slices.Clone(r.ports) }

// Prepare assigns routing directions, types, levels and segments. It must
// run before candidates are generated or loops routed.
func (r *NodeRep) Prepare() {
	fixed := r.Node != nil && r.Node.PortConstraints.IsOrderFixed()
	for _, c := range r.Components {
		c.assignDirections(r, fixed)
		c.Type = c.classify()
	}
	r.assignLevels()
	r.createSegments()
}

// Side returns the port's side.
func (p *Port) Side() lgraph.PortSide { return p.Port.Side() }

// Anchor returns the port's anchor in node coordinates.
func (p *Port) Anchor() geom.Vector {
	return p.Port.Position.Plus(p.Port.Anchor())
}

// Edges returns the self-loops at the port.
func (p *Port) Edges() []*lgraph.Edge { return slices.Clone(p.edges) }

// EdgeLevel returns the level of e where it leaves p.
func (p *Port) EdgeLevel(e *lgraph.Edge) int {
	if l, ok := p.edgeLevels[e]; ok {
		return l
	}
	return p.MaxLevel
}

func (p *Port) String() string { return p.Port.String() }

// segment returns the segment of c on the side, or nil.
func (s *NodeSide) segment(c *Component) *Segment {
	for _, seg := range s.Segments {
		if seg.Component == c {
			return seg
		}
	}
	return nil
}

// clockwise sorts ports north, east, south, west, each side in clockwise
// direction by position. Ties keep the port order.
func clockwise(ports []*lgraph.Port) []*lgraph.Port {
	ports = slices.DeleteFunc(ports, func(p *lgraph.Port) bool {
		return p.Side() == lgraph.SideUndefined
	})
	slices.SortStableFunc(ports, func(a, b *lgraph.Port) int {
		if c := cmp.Compare(a.Side(), b.Side()); c != 0 {
			return c
		}
		pa, pb := a.Position.Plus(a.Anchor()), b.Position.Plus(b.Anchor())
		switch a.Side() {
		case lgraph.North:
			return cmp.Compare(pa.X, pb.X)
		case lgraph.East:
			return cmp.Compare(pa.Y, pb.Y)
		case lgraph.South:
			return cmp.Compare(pb.X, pa.X)
		default:
			return cmp.Compare(pb.Y, pa.Y)
		}
	})
	return ports
}

// selfLoops returns the distinct self-loops at p ordered by ID.
func selfLoops(p *lgraph.Port) []*lgraph.Edge {
	var out []*lgraph.Edge
	for _, e := range p.Connected() {
		if e.IsSelfLoop() && !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *lgraph.Edge) int { return cmp.Compare(a.ID(), b.ID()) })
	return out
}
