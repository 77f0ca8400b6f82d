package lgutil

import (
	"testing"

	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

func newNode(w, h float64) (*lgraph.Graph, *lgraph.Node) {
	g := lgraph.NewArena().NewGraph()
	n := g.NewNode()
	n.Size = geom.V(w, h)
	return g, n
}

func TestCalcPortSide(t *testing.T) {
	tests := []struct {
		name string
		pos  geom.Vector
		dir  lgraph.Direction
		want lgraph.PortSide
	}{
		{"left of node", geom.V(-1, 25), lgraph.DirRight, lgraph.West},
		{"top middle", geom.V(50, 0), lgraph.DirRight, lgraph.North},
		{"bottom middle", geom.V(50, 50), lgraph.DirRight, lgraph.South},
		{"right border", geom.V(100, 25), lgraph.DirRight, lgraph.East},
		{"beyond right", geom.V(101, 10), lgraph.DirRight, lgraph.East},
		{"above in vertical layout", geom.V(10, -1), lgraph.DirDown, lgraph.North},
		{"below in vertical layout", geom.V(90, 51), lgraph.DirDown, lgraph.South},
		{"center", geom.V(50, 25), lgraph.DirRight, lgraph.West},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, n := newNode(100, 50)
			p := n.NewPort()
			p.Position = tt.pos
			if got := CalcPortSide(p, tt.dir); got != tt.want {
				t.Errorf("CalcPortSide(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestCalcPortSideZeroSizeNode(t *testing.T) {
	_, n := newNode(0, 0)
	p := n.NewPort()
	p.Position = geom.V(-5, 0)
	if got := CalcPortSide(p, lgraph.DirRight); got != lgraph.SideUndefined {
		t.Errorf("CalcPortSide() = %v, want UNDEFINED", got)
	}
}

func TestCalcPortOffset(t *testing.T) {
	_, n := newNode(100, 50)
	p := n.NewPort()
	p.Size = geom.V(4, 4)

	tests := []struct {
		name string
		pos  geom.Vector
		side lgraph.PortSide
		want float64
	}{
		{"north outside", geom.V(10, -6), lgraph.North, 2},
		{"east on border", geom.V(100, 10), lgraph.East, 0},
		{"south inside", geom.V(10, 45), lgraph.South, -5},
		{"west outside", geom.V(-10, 10), lgraph.West, 6},
		{"undefined", geom.V(3, 3), lgraph.SideUndefined, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.Position = tt.pos
			if got := CalcPortOffset(p, tt.side); got != tt.want {
				t.Errorf("CalcPortOffset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProvideCollectorPortReuses(t *testing.T) {
	g, n := newNode(40, 20)
	in1 := ProvideCollectorPort(g, n, lgraph.PortInput, lgraph.West)
	in2 := ProvideCollectorPort(g, n, lgraph.PortInput, lgraph.East)
	out := ProvideCollectorPort(g, n, lgraph.PortOutput, lgraph.East)

	if in1 != in2 {
		t.Error("input collector not reused")
	}
	if in1 == out {
		t.Error("input and output collector must differ")
	}
	if in1.Position != geom.V(0, 10) {
		t.Errorf("input collector position = %v, want {0 10}", in1.Position)
	}
	if out.Side() != lgraph.East || out.Position != geom.V(40, 10) {
		t.Errorf("output collector = %v at %v", out.Side(), out.Position)
	}
	if ProvideCollectorPort(g, n, lgraph.PortUndefined, lgraph.East) != nil {
		t.Error("undefined port type should yield nil")
	}
}

func TestCreatePort(t *testing.T) {
	t.Run("merged edges use collectors", func(t *testing.T) {
		g, n := newNode(40, 20)
		g.Direction = lgraph.DirRight
		g.MergeEdges = true
		p1 := CreatePort(n, nil, lgraph.PortOutput, g)
		p2 := CreatePort(n, nil, lgraph.PortOutput, g)
		if p1 != p2 || !p1.OutputCollector || p1.Side() != lgraph.East {
			t.Errorf("collector = %v side %v", p1, p1.Side())
		}
	})

	t.Run("endpoint decides side", func(t *testing.T) {
		g, n := newNode(40, 20)
		g.Direction = lgraph.DirRight
		n.Position = geom.V(100, 100)
		end := geom.V(120, 100)
		p := CreatePort(n, &end, lgraph.PortInput, g)
		if p.Side() != lgraph.North {
			t.Errorf("Side() = %v, want NORTH", p.Side())
		}
		if !g.Properties.Has(lgraph.PropNorthSouthPorts) {
			t.Error("NORTH_SOUTH_PORTS not recorded")
		}
	})

	t.Run("default side from direction", func(t *testing.T) {
		g, n := newNode(40, 20)
		g.Direction = lgraph.DirDown
		if s := CreatePort(n, nil, lgraph.PortInput, g).Side(); s != lgraph.North {
			t.Errorf("input side = %v, want NORTH", s)
		}
		if s := CreatePort(n, nil, lgraph.PortOutput, g).Side(); s != lgraph.South {
			t.Errorf("output side = %v, want SOUTH", s)
		}
	})
}

func TestInitializePort(t *testing.T) {
	_, n := newNode(100, 50)
	p := n.NewPort()
	p.Size = geom.V(10, 10)
	p.Position = geom.V(-15, 20)

	InitializePort(p, lgraph.ConstraintsFixedRatio, lgraph.DirRight, nil)

	if p.Side() != lgraph.West {
		t.Errorf("Side() = %v, want WEST", p.Side())
	}
	if p.BorderOffset != 5 {
		t.Errorf("BorderOffset = %v, want 5", p.BorderOffset)
	}
	if p.PortRatio != 0.4 {
		t.Errorf("PortRatio = %v, want 0.4", p.PortRatio)
	}
	if p.Anchor() != geom.V(0, 5) {
		t.Errorf("Anchor() = %v, want {0 5}", p.Anchor())
	}

	anchor := geom.V(2, 3)
	InitializePort(p, lgraph.ConstraintsFree, lgraph.DirRight, &anchor)
	if p.Anchor() != anchor || !p.ExplicitAnchor() {
		t.Errorf("explicit anchor not applied: %v", p.Anchor())
	}
}

func TestCreateExternalPortDummy(t *testing.T) {
	tests := []struct {
		side     lgraph.PortSide
		layer    lgraph.LayerConstraint
		inLayer  lgraph.InLayerConstraint
		edge     lgraph.EdgeConstraint
		portSide lgraph.PortSide
		anchor   geom.Vector
	}{
		{lgraph.West, lgraph.LayerFirstSeparate, lgraph.InLayerNone, lgraph.EdgeOutgoingOnly, lgraph.East, geom.V(0, 3)},
		{lgraph.East, lgraph.LayerLastSeparate, lgraph.InLayerNone, lgraph.EdgeIncomingOnly, lgraph.West, geom.V(0, 3)},
		{lgraph.North, lgraph.LayerNone, lgraph.InLayerTop, lgraph.EdgeNone, lgraph.South, geom.V(4, 6)},
		{lgraph.South, lgraph.LayerNone, lgraph.InLayerBottom, lgraph.EdgeNone, lgraph.North, geom.V(4, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			g := lgraph.NewArena().NewGraph()
			ext := &ExternalPort{Side: tt.side, Size: geom.V(8, 6)}
			d := CreateExternalPortDummy(ext, lgraph.ConstraintsFixedSide, geom.V(100, 100), lgraph.DirRight, g)

			if d.Type != lgraph.NodeExternalPort || d.ExtPortSide != tt.side {
				t.Fatalf("dummy type %v side %v", d.Type, d.ExtPortSide)
			}
			if d.LayerConstraint != tt.layer || d.InLayerConstraint != tt.inLayer || d.EdgeConstraint != tt.edge {
				t.Errorf("constraints = %v/%v/%v", d.LayerConstraint, d.InLayerConstraint, d.EdgeConstraint)
			}
			ports := d.Ports()
			if len(ports) != 1 || ports[0].Side() != tt.portSide {
				t.Fatalf("dummy ports = %v", ports)
			}
			if ports[0].Position != tt.anchor || d.PortAnchor != tt.anchor {
				t.Errorf("anchor = %v, want %v", ports[0].Position, tt.anchor)
			}
		})
	}
}

func TestCreateExternalPortDummyFreeSide(t *testing.T) {
	tests := []struct {
		name    string
		netFlow int
		want    lgraph.PortSide
	}{
		{"outputs", 2, lgraph.East},
		{"inputs", -1, lgraph.West},
		{"balanced", 0, lgraph.West},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := lgraph.NewArena().NewGraph()
			ext := &ExternalPort{Side: lgraph.North, NetFlow: tt.netFlow}
			CreateExternalPortDummy(ext, lgraph.ConstraintsFree, geom.V(10, 10), lgraph.DirRight, g)
			if ext.Side != tt.want {
				t.Errorf("Side = %v, want %v", ext.Side, tt.want)
			}
		})
	}
}

func TestExternalPortOrderKey(t *testing.T) {
	idx := 3
	tests := []struct {
		name string
		ext  ExternalPort
		c    lgraph.PortConstraints
		want float64
	}{
		{"index north", ExternalPort{Side: lgraph.North, Index: &idx}, lgraph.ConstraintsFixedOrder, 3},
		{"index west", ExternalPort{Side: lgraph.West, Index: &idx}, lgraph.ConstraintsFixedOrder, -3},
		{"position east", ExternalPort{Side: lgraph.East, Position: geom.V(0, 30)}, lgraph.ConstraintsFixedPos, 30},
		{"ratio south", ExternalPort{Side: lgraph.South, Position: geom.V(25, 0)}, lgraph.ConstraintsFixedRatio, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := lgraph.NewArena().NewGraph()
			d := CreateExternalPortDummy(&tt.ext, tt.c, geom.V(100, 100), lgraph.DirRight, g)
			if d.PortRatioOrPosition != tt.want {
				t.Errorf("PortRatioOrPosition = %v, want %v", d.PortRatioOrPosition, tt.want)
			}
		})
	}
}

func TestExternalPortPosition(t *testing.T) {
	g := lgraph.NewArena().NewGraph()
	g.Size = geom.V(200, 100)
	g.Padding = geom.Uniform(10)

	ext := &ExternalPort{Side: lgraph.East, Size: geom.V(4, 4)}
	d := CreateExternalPortDummy(ext, lgraph.ConstraintsFixedSide, geom.V(220, 120), lgraph.DirRight, g)
	d.Position = geom.V(0, 40)

	pos := ExternalPortPosition(g, d, 4, 4)
	if want := geom.V(220, 50); pos != want {
		t.Errorf("ExternalPortPosition() = %v, want %v", pos, want)
	}
	if d.Position.X != 210 {
		t.Errorf("dummy x = %v, want 210", d.Position.X)
	}
}

func TestNetFlow(t *testing.T) {
	tests := []struct {
		name  string
		edges []FlowEdge
		want  int
	}{
		{"outgoing into graph", []FlowEdge{{Outgoing: true, Inside: true}}, -1},
		{"outgoing leaving graph", []FlowEdge{{Outgoing: true}}, 1},
		{"incoming from inside", []FlowEdge{{Inside: true}}, 1},
		{"incoming from outside", []FlowEdge{{}}, -1},
		{"self loop", []FlowEdge{{Outgoing: true, SelfLoop: true}, {SelfLoop: true}}, 0},
		{"inside self loop out", []FlowEdge{{Outgoing: true, SelfLoop: true, InsideSelfLoop: true}}, -1},
		{"mixed", []FlowEdge{{Outgoing: true}, {Outgoing: true}, {Inside: true}, {}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NetFlow(tt.edges); got != tt.want {
				t.Errorf("NetFlow() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExternalPortSide(t *testing.T) {
	tests := []struct {
		name     string
		side     lgraph.PortSide
		c        lgraph.PortConstraints
		netFlow  int
		inferred lgraph.PortSide
		want     lgraph.PortSide
	}{
		{"free outputs", lgraph.North, lgraph.ConstraintsFree, 1, lgraph.South, lgraph.East},
		{"free inputs", lgraph.North, lgraph.ConstraintsFree, 0, lgraph.South, lgraph.West},
		{"fixed keeps side", lgraph.North, lgraph.ConstraintsFixedSide, 1, lgraph.South, lgraph.North},
		{"fixed infers", lgraph.SideUndefined, lgraph.ConstraintsFixedPos, 1, lgraph.South, lgraph.South},
		{"fixed falls back", lgraph.SideUndefined, lgraph.ConstraintsFixedPos, 1, lgraph.SideUndefined, lgraph.East},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExternalPortSide(tt.side, tt.c, lgraph.DirRight, tt.netFlow, tt.inferred)
			if got != tt.want {
				t.Errorf("ExternalPortSide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChangeCoordSystem(t *testing.T) {
	a := lgraph.NewArena()
	root := a.NewGraph()
	root.AddOffset(3, 4)
	parent := root.NewNode()
	parent.Position = geom.V(50, 60)
	inner := parent.NewNestedGraph()
	inner.Padding = geom.Insets{Top: 5, Left: 7}
	inner.AddOffset(1, 1)

	p := geom.V(10, 10)
	ChangeCoordSystem(&p, inner, inner)
	if p != geom.V(10, 10) {
		t.Errorf("same graph changed point to %v", p)
	}

	ChangeCoordSystem(&p, inner, root)
	if want := geom.V(68, 76); p != want {
		t.Errorf("inner->root = %v, want %v", p, want)
	}
	ChangeCoordSystem(&p, root, inner)
	if want := geom.V(10, 10); p != want {
		t.Errorf("round trip = %v, want %v", p, want)
	}
}

func TestIsDescendant(t *testing.T) {
	a := lgraph.NewArena()
	root := a.NewGraph()
	outer := root.NewNode()
	mid := outer.NewNestedGraph().NewNode()
	leaf := mid.NewNestedGraph().NewNode()
	other := root.NewNode()

	tests := []struct {
		name          string
		child, parent *lgraph.Node
		want          bool
	}{
		{"direct", mid, outer, true},
		{"transitive", leaf, outer, true},
		{"self", outer, outer, false},
		{"sibling", other, outer, false},
		{"reverse", outer, leaf, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDescendant(tt.child, tt.parent); got != tt.want {
				t.Errorf("IsDescendant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResizeNode(t *testing.T) {
	g, n := newNode(100, 50)
	east := n.NewPort()
	east.SetSide(lgraph.East)
	east.Position = geom.V(100, 20)
	north := n.NewPort()
	north.SetSide(lgraph.North)
	north.Position = geom.V(40, -4)

	a := g.Arena()
	right := a.NewSizedLabel("r", 10, 10)
	right.Position = geom.V(85, 15) // mid (90,20): right triangle
	bottom := a.NewSizedLabel("b", 10, 10)
	bottom.Position = geom.V(45, 40) // mid (50,45): bottom triangle
	topLeft := a.NewSizedLabel("tl", 10, 10)
	topLeft.Position = geom.V(0, 0)
	for _, l := range []*lgraph.Label{right, bottom, topLeft} {
		n.AddLabel(l)
	}

	ResizeNode(n, geom.V(200, 100), true, true)

	if n.Size != geom.V(200, 100) || !n.SizeFixed {
		t.Fatalf("size = %v fixed=%v", n.Size, n.SizeFixed)
	}
	if east.Position != geom.V(200, 40) {
		t.Errorf("east port = %v, want {200 40}", east.Position)
	}
	if north.Position != geom.V(80, -4) {
		t.Errorf("north port = %v, want {80 -4}", north.Position)
	}
	if right.Position != geom.V(185, 35) {
		t.Errorf("right label = %v, want {185 35}", right.Position)
	}
	if bottom.Position != geom.V(95, 90) {
		t.Errorf("bottom label = %v, want {95 90}", bottom.Position)
	}
	if topLeft.Position != geom.V(0, 0) {
		t.Errorf("top-left label moved to %v", topLeft.Position)
	}
}

func TestResizeNodeFixedPorts(t *testing.T) {
	_, n := newNode(100, 50)
	n.PortConstraints = lgraph.ConstraintsFixedPos
	p := n.NewPort()
	p.SetSide(lgraph.South)
	p.Position = geom.V(30, 50)

	ResizeNode(n, geom.V(150, 60), true, false)
	if p.Position != geom.V(30, 60) {
		t.Errorf("fixed south port = %v, want {30 60}", p.Position)
	}
}

func TestResizeNodeFromZero(t *testing.T) {
	g, n := newNode(0, 0)
	p := n.NewPort()
	p.SetSide(lgraph.East)
	p.Position = geom.V(0, 3)
	l := g.Arena().NewSizedLabel("l", 4, 4)
	l.Position = geom.V(1, 1)
	n.AddLabel(l)

	ResizeNode(n, geom.V(40, 20), true, true)
	if n.Size != geom.V(40, 20) {
		t.Fatalf("Size = %v, want {40 20}", n.Size)
	}
	if p.Position != geom.V(40, 3) {
		t.Errorf("east port = %v, want {40 3}", p.Position)
	}
	if l.Position != geom.V(1, 1) {
		t.Errorf("label = %v, want {1 1}", l.Position)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name  string
		dir   lgraph.Direction
		ratio float64
		want  lgraph.Direction
	}{
		{"explicit", lgraph.DirUp, 0.5, lgraph.DirUp},
		{"wide", lgraph.DirUndefined, 1.0, lgraph.DirRight},
		{"tall", lgraph.DirUndefined, 0.5, lgraph.DirDown},
		{"unset ratio", lgraph.DirUndefined, 0, lgraph.DirRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := lgraph.NewArena().NewGraph()
			g.Direction = tt.dir
			g.AspectRatio = tt.ratio
			if got := Direction(g); got != tt.want {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOffsetGraph(t *testing.T) {
	a := lgraph.NewArena()
	g := a.NewGraph()
	n1, n2 := g.NewNode(), g.NewNode()
	e := a.NewEdge()
	e.SetSource(n1.NewPort())
	e.SetTarget(n2.NewPort())
	e.BendPoints = geom.Chain{geom.V(1, 1)}
	l := a.NewLabel("x")
	e.AddLabel(l)

	OffsetGraph(g, 10, 20)
	OffsetGraph(g, 10, 20)

	if n1.Position != geom.V(20, 40) {
		t.Errorf("node = %v, want {20 40}", n1.Position)
	}
	if e.BendPoints[0] != geom.V(21, 41) {
		t.Errorf("bend = %v, want {21 41}", e.BendPoints[0])
	}
	if l.Position != geom.V(20, 40) {
		t.Errorf("label = %v, want {20 40}", l.Position)
	}
	if g.Offset() != (geom.Vector{}) {
		t.Errorf("graph offset changed to %v", g.Offset())
	}
}

func TestComputeGraphProperties(t *testing.T) {
	a := lgraph.NewArena()
	g := a.NewGraph()
	g.Direction = lgraph.DirRight
	n := g.NewNode()
	p := n.NewPort()
	p.SetSide(lgraph.North)
	e := a.NewEdge()
	e.SetSource(p)
	e.SetTarget(n.NewPort())

	ComputeGraphProperties(g)

	for _, want := range []lgraph.GraphProperties{lgraph.PropSelfLoops, lgraph.PropNorthSouthPorts} {
		if !g.Properties.Has(want) {
			t.Errorf("Properties = %b, missing %b", g.Properties, want)
		}
	}
	if n.PortConstraints != lgraph.ConstraintsFree {
		t.Errorf("PortConstraints = %v, want FREE", n.PortConstraints)
	}
}

func TestIndividualOrInherited(t *testing.T) {
	g, n := newNode(1, 1)
	g.Spacings = lgraph.Spacings{lgraph.SpacingEdgeEdge: 4}

	if v, ok := IndividualOrInherited(n, lgraph.SpacingEdgeEdge); !ok || v != 4 {
		t.Errorf("inherited = %v, %v", v, ok)
	}
	n.Spacings = lgraph.Spacings{lgraph.SpacingEdgeEdge: 9}
	if v, ok := IndividualOrInherited(n, lgraph.SpacingEdgeEdge); !ok || v != 9 {
		t.Errorf("individual = %v, %v", v, ok)
	}
	if _, ok := IndividualOrInherited(n, lgraph.SpacingPortPort); ok {
		t.Error("unset spacing reported as set")
	}
}
