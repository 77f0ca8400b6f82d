package phase

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/lgraph/lgutil"
	"github.com/matzehuels/lgraph/pkg/selfloop"
)

// testGraph builds a graph from "a>b" edge specs. Nodes are 10x10 and
// created in order of first mention; every edge end gets its own sideless
// port.
type testGraph struct {
	g     *lgraph.Graph
	nodes map[string]*lgraph.Node
	edges []*lgraph.Edge
}

func build(specs ...string) testGraph {
	a := lgraph.NewArena()
	tg := testGraph{g: a.NewGraph(), nodes: make(map[string]*lgraph.Node)}
	node := func(name string) *lgraph.Node {
		if n, ok := tg.nodes[name]; ok {
			return n
		}
		n := tg.g.NewNode()
		n.Name = name
		n.Size = geom.V(10, 10)
		tg.nodes[name] = n
		return n
	}
	for _, s := range specs {
		from, to, ok := strings.Cut(s, ">")
		src := node(from)
		if !ok {
			continue
		}
		e := a.NewEdge()
		e.SetSource(src.NewPort())
		e.SetTarget(node(to).NewPort())
		tg.edges = append(tg.edges, e)
	}
	return tg
}

func (tg testGraph) layerOf(name string) int {
	return tg.nodes[name].Layer().Index()
}

func (tg testGraph) order(i int) []string {
	var out []string
	for _, n := range tg.g.Layer(i).Nodes() {
		out = append(out, n.Name)
	}
	return out
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
		want  int
	}{
		{"empty", nil, 0},
		{"single node", []string{"a"}, 0},
		{"no cycles", []string{"a>b", "b>c"}, 0},
		{"simple cycle", []string{"a>b", "b>a"}, 1},
		{"triangle", []string{"a>b", "b>c", "c>a"}, 1},
		{"two cycles", []string{"a>b", "b>a", "c>d", "d>c"}, 2},
		{"self-loop ignored", []string{"a>a"}, 0},
		{"diamond", []string{"a>b", "a>c", "b>d", "c>d"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := build(tt.specs...)
			if got := BreakCycles(tg.g); got != tt.want {
				t.Errorf("BreakCycles() = %d, want %d", got, tt.want)
			}
			if got := BreakCycles(tg.g); got != 0 {
				t.Errorf("second BreakCycles() = %d, want 0", got)
			}
		})
	}
}

func TestBreakCyclesReversesBackEdge(t *testing.T) {
	tg := build("a>b", "b>c", "c>d", "d>b")
	BreakCycles(tg.g)

	back := tg.edges[3]
	if !back.Reversed() {
		t.Fatal("d>b should be reversed")
	}
	if back.Source().Node() != tg.nodes["b"] {
		t.Errorf("Source() = %v, want b", back.Source().Node())
	}

	if got := RestoreReversed(tg.g); got != 1 {
		t.Errorf("RestoreReversed() = %d, want 1", got)
	}
	if back.Reversed() || back.Source().Node() != tg.nodes["d"] {
		t.Errorf("edge after restore = %v, want d>b", back)
	}
}

func TestAssignLayers(t *testing.T) {
	tg := build("a>b", "a>c", "b>d", "c>d", "a>d", "e")
	AssignLayers(tg.g)

	want := map[string]int{"a": 0, "b": 1, "c": 1, "d": 2, "e": 0}
	for name, l := range want {
		if got := tg.layerOf(name); got != l {
			t.Errorf("layer(%s) = %d, want %d", name, got, l)
		}
	}
	if n := len(tg.g.LayerlessNodes()); n != 0 {
		t.Errorf("layerless = %d, want 0", n)
	}

	// A second run starts from scratch.
	AssignLayers(tg.g)
	if got := tg.g.LayerCount(); got != 3 {
		t.Errorf("LayerCount() = %d, want 3", got)
	}
}

func TestAssignLayersConstraints(t *testing.T) {
	tests := []struct {
		name       string
		specs      []string
		constraint map[string]lgraph.LayerConstraint
		want       map[string]int
		layers     int
	}{
		{
			"first separate",
			[]string{"a>b", "w>a"},
			map[string]lgraph.LayerConstraint{"w": lgraph.LayerFirstSeparate},
			map[string]int{"w": 0, "a": 1, "b": 2},
			3,
		},
		{
			"last separate",
			[]string{"a>b", "b>e"},
			map[string]lgraph.LayerConstraint{"e": lgraph.LayerLastSeparate},
			map[string]int{"a": 0, "b": 1, "e": 2},
			3,
		},
		{
			"first joins first regular layer",
			[]string{"a>b", "b>c", "f"},
			map[string]lgraph.LayerConstraint{"c": lgraph.LayerFirst},
			map[string]int{"a": 0, "b": 1, "c": 0, "f": 0},
			2,
		},
		{
			"last joins last regular layer",
			[]string{"a>b", "b>c", "l"},
			map[string]lgraph.LayerConstraint{"l": lgraph.LayerLast},
			map[string]int{"a": 0, "b": 1, "c": 2, "l": 2},
			3,
		},
		{
			"only separate nodes",
			[]string{"w>e"},
			map[string]lgraph.LayerConstraint{"w": lgraph.LayerFirstSeparate, "e": lgraph.LayerLastSeparate},
			map[string]int{"w": 0, "e": 1},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := build(tt.specs...)
			for name, c := range tt.constraint {
				tg.nodes[name].LayerConstraint = c
			}
			AssignLayers(tg.g)
			for name, l := range tt.want {
				if got := tg.layerOf(name); got != l {
					t.Errorf("layer(%s) = %d, want %d", name, got, l)
				}
			}
			if got := tg.g.LayerCount(); got != tt.layers {
				t.Errorf("LayerCount() = %d, want %d", got, tt.layers)
			}
		})
	}
}

func TestBreakCyclesEdgeConstraints(t *testing.T) {
	tests := []struct {
		name       string
		specs      []string
		constraint map[string]lgraph.EdgeConstraint
		want       int
	}{
		{"into outgoing only", []string{"a>w"}, map[string]lgraph.EdgeConstraint{"w": lgraph.EdgeOutgoingOnly}, 1},
		{"out of incoming only", []string{"e>a"}, map[string]lgraph.EdgeConstraint{"e": lgraph.EdgeIncomingOnly}, 1},
		{"both ends constrained", []string{"e>w"}, map[string]lgraph.EdgeConstraint{
			"w": lgraph.EdgeOutgoingOnly, "e": lgraph.EdgeIncomingOnly,
		}, 1},
		{"already in flow", []string{"w>a", "a>e"}, map[string]lgraph.EdgeConstraint{
			"w": lgraph.EdgeOutgoingOnly, "e": lgraph.EdgeIncomingOnly,
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := build(tt.specs...)
			for name, c := range tt.constraint {
				tg.nodes[name].EdgeConstraint = c
			}
			if got := BreakCycles(tg.g); got != tt.want {
				t.Errorf("BreakCycles() = %d, want %d", got, tt.want)
			}
			for name, c := range tt.constraint {
				n := tg.nodes[name]
				for _, e := range n.Outgoing() {
					if c == lgraph.EdgeIncomingOnly && e.Source().Node() == n {
						t.Errorf("%s has outgoing edge %v", name, e)
					}
				}
				for _, e := range n.Incoming() {
					if c == lgraph.EdgeOutgoingOnly && e.Target().Node() == n {
						t.Errorf("%s has incoming edge %v", name, e)
					}
				}
			}
		})
	}
}

func TestCountLayerCrossings(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
		upper []string
		lower []string
		want  int
	}{
		{"parallel", []string{"a>c", "b>d"}, []string{"a", "b"}, []string{"c", "d"}, 0},
		{"crossed", []string{"a>d", "b>c"}, []string{"a", "b"}, []string{"c", "d"}, 1},
		{"fan", []string{"a>e", "a>f", "b>d", "c>d"}, []string{"a", "b", "c"}, []string{"d", "e", "f"}, 4},
		{"no edges", []string{"a", "b"}, []string{"a"}, []string{"b"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := build(tt.specs...)
			pick := func(names []string) []*lgraph.Node {
				var out []*lgraph.Node
				for _, n := range names {
					out = append(out, tg.nodes[n])
				}
				return out
			}
			if got := CountLayerCrossings(pick(tt.upper), pick(tt.lower)); got != tt.want {
				t.Errorf("CountLayerCrossings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOrderLayers(t *testing.T) {
	tg := build("a", "b", "c", "d", "a>d", "b>c")
	AssignLayers(tg.g)
	if got := CountCrossings(tg.g); got != 1 {
		t.Fatalf("initial crossings = %d, want 1", got)
	}

	if got := OrderLayers(tg.g, 0); got != 0 {
		t.Errorf("OrderLayers() = %d, want 0", got)
	}
	if got := CountCrossings(tg.g); got != 0 {
		t.Errorf("CountCrossings() = %d, want 0", got)
	}
	if got, want := tg.order(1), []string{"d", "c"}; !slices.Equal(got, want) {
		t.Errorf("layer 1 = %v, want %v", got, want)
	}
}

func TestOrderLayersNeverWorse(t *testing.T) {
	tg := build("a>e", "a>f", "b>d", "c>d", "b>f", "c>e")
	AssignLayers(tg.g)
	before := CountCrossings(tg.g)
	if got := OrderLayers(tg.g, 4); got > before {
		t.Errorf("OrderLayers() = %d, want at most %d", got, before)
	}
}

func TestOrderLayersInLayerConstraints(t *testing.T) {
	tg := build("a>x", "a>y", "a>z", "b>x", "c")
	AssignLayers(tg.g)
	tg.nodes["z"].InLayerConstraint = lgraph.InLayerTop
	tg.nodes["x"].InLayerConstraint = lgraph.InLayerBottom

	OrderLayers(tg.g, 4)
	got := tg.order(1)
	if got[0] != "z" {
		t.Errorf("layer 1 = %v, want z first", got)
	}
	if got[len(got)-1] != "x" {
		t.Errorf("layer 1 = %v, want x last", got)
	}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name     string
		dir      lgraph.Direction
		wantA    geom.Vector
		wantB    geom.Vector
		wantSize geom.Vector
	}{
		{"right", lgraph.DirRight, geom.V(0, 0), geom.V(30, 0), geom.V(50, 30)},
		{"undefined is right", lgraph.DirUndefined, geom.V(0, 0), geom.V(30, 0), geom.V(50, 30)},
		{"left", lgraph.DirLeft, geom.V(40, 0), geom.V(0, 0), geom.V(50, 30)},
		{"down", lgraph.DirDown, geom.V(0, 0), geom.V(0, 30), geom.V(20, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := build("a>b")
			tg.g.Direction = tt.dir
			tg.nodes["b"].Size = geom.V(20, 30)
			AssignLayers(tg.g)
			Place(tg.g)

			if got := tg.nodes["a"].Position; got != tt.wantA {
				t.Errorf("a at %v, want %v", got, tt.wantA)
			}
			if got := tg.nodes["b"].Position; got != tt.wantB {
				t.Errorf("b at %v, want %v", got, tt.wantB)
			}
			if tg.g.Size != tt.wantSize {
				t.Errorf("Size = %v, want %v", tg.g.Size, tt.wantSize)
			}
		})
	}
}

func TestPlaceCentersWithinLayer(t *testing.T) {
	tg := build("a>b", "a>c")
	tg.nodes["c"].Size = geom.V(30, 10)
	AssignLayers(tg.g)
	Place(tg.g)

	// Layer 1 is 30 wide; b is centered in it.
	if got, want := tg.nodes["b"].Position, geom.V(40, 0); got != want {
		t.Errorf("b at %v, want %v", got, want)
	}
	if got, want := tg.nodes["c"].Position, geom.V(30, 30); got != want {
		t.Errorf("c at %v, want %v", got, want)
	}
}

func TestPlacePorts(t *testing.T) {
	tg := build("a>b")
	AssignLayers(tg.g)
	Place(tg.g)

	src, tgt := tg.edges[0].Source(), tg.edges[0].Target()
	if src.Side() != lgraph.East || tgt.Side() != lgraph.West {
		t.Errorf("sides = %v, %v, want EAST, WEST", src.Side(), tgt.Side())
	}
	if got, want := src.Position, geom.V(10, 5); got != want {
		t.Errorf("source port at %v, want %v", got, want)
	}
	if got, want := tgt.Position, geom.V(0, 5); got != want {
		t.Errorf("target port at %v, want %v", got, want)
	}
}

func TestPlaceKeepsFixedPorts(t *testing.T) {
	tg := build("a>b")
	a := tg.nodes["a"]
	a.PortConstraints = lgraph.ConstraintsFixedPos
	p := tg.edges[0].Source()
	p.SetSide(lgraph.South)
	p.Position = geom.V(3, 10)

	AssignLayers(tg.g)
	Place(tg.g)
	if p.Side() != lgraph.South || p.Position != geom.V(3, 10) {
		t.Errorf("fixed port moved to %v %v", p.Side(), p.Position)
	}
}

func TestLayout(t *testing.T) {
	tg := build("a>b", "b>a", "b>b")
	loop := tg.edges[2]
	loop.AddLabel(tg.g.Arena().NewSizedLabel("loop", 20, 8))

	stats, err := Layout(tg.g, Options{SelfLoops: selfloop.DefaultOptions()})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if stats.Graphs != 1 || stats.Reversed != 1 || stats.Layers != 2 {
		t.Errorf("stats = %+v, want 1 graph, 1 reversed edge, 2 layers", stats)
	}
	for _, e := range tg.edges {
		if e.Reversed() {
			t.Errorf("%v still reversed", e)
		}
	}
	if stats.SelfLoops.Components != 1 {
		t.Errorf("self-loop components = %d, want 1", stats.SelfLoops.Components)
	}
	if len(loop.BendPoints) < 2 {
		t.Errorf("BendPoints = %v, want a routed loop", loop.BendPoints)
	}
}

func TestLayoutNested(t *testing.T) {
	tg := build("a>b")
	inner := tg.nodes["b"].NewNestedGraph()
	x, y := inner.NewNode(), inner.NewNode()
	e := tg.g.Arena().NewEdge()
	e.SetSource(x.NewPort())
	e.SetTarget(y.NewPort())

	stats, err := Layout(tg.g, Options{})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if stats.Graphs != 2 || stats.Nodes != 4 {
		t.Errorf("stats = %+v, want 2 graphs and 4 nodes", stats)
	}
	if x.Layer() == nil || y.Layer() == nil || x.Layer() == y.Layer() {
		t.Error("nested nodes should be layered apart")
	}
}

func TestLayoutNestedResizesParent(t *testing.T) {
	tg := build("p>o")
	p, o := tg.nodes["p"], tg.nodes["o"]
	p.Size = geom.V(20, 20)
	inner := p.NewNestedGraph()
	inner.Padding = geom.Insets{Top: 10, Right: 10, Bottom: 10, Left: 10}
	var prev *lgraph.Node
	for range 3 {
		n := inner.NewNode()
		n.Size = geom.V(50, 50)
		if prev != nil {
			e := tg.g.Arena().NewEdge()
			e.SetSource(prev.NewPort())
			e.SetTarget(n.NewPort())
		}
		prev = n
	}

	if _, err := Layout(tg.g, Options{}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if got, want := inner.Size, geom.V(190, 50); got != want {
		t.Errorf("nested Size = %v, want %v", got, want)
	}
	if got, want := p.Size, inner.ActualSize(); got != want {
		t.Errorf("parent Size = %v, want %v", got, want)
	}
	if right := p.Position.X + p.Size.X; o.Position.X < right {
		t.Errorf("o at %v overlaps parent ending at x=%v", o.Position, right)
	}
	if got, want := o.Position.X, 230.0; got != want {
		t.Errorf("o.X = %v, want %v", got, want)
	}
}

func TestLayoutPlacesExternalPorts(t *testing.T) {
	a := lgraph.NewArena()
	g := a.NewGraph()
	p := g.NewNode()
	p.Size = geom.V(20, 20)
	pp := p.NewPort()
	pp.Size = geom.V(4, 4)

	inner := p.NewNestedGraph()
	x := inner.NewNode()
	x.Size = geom.V(50, 50)
	ext := &lgutil.ExternalPort{NetFlow: -1, Size: pp.Size, Origin: pp}
	dummy := lgutil.CreateExternalPortDummy(ext, lgraph.ConstraintsFree, p.Size, lgraph.DirRight, inner)
	e := a.NewEdge()
	e.SetSource(dummy.Ports()[0])
	e.SetTarget(x.NewPort())

	if _, err := Layout(g, Options{}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if got, want := dummy.Layer().Index(), 0; got != want {
		t.Errorf("dummy layer = %d, want %d", got, want)
	}
	if got, want := x.Layer().Index(), 1; got != want {
		t.Errorf("x layer = %d, want %d", got, want)
	}
	if got, want := p.Size, geom.V(70, 50); got != want {
		t.Errorf("parent Size = %v, want %v", got, want)
	}
	if pp.Side() != lgraph.West {
		t.Errorf("port side = %v, want WEST", pp.Side())
	}
	if got, want := pp.Position, geom.V(-4, 0); got != want {
		t.Errorf("port at %v, want %v", got, want)
	}
	if p.PortConstraints != lgraph.ConstraintsFixedPos {
		t.Errorf("PortConstraints = %v, want FIXED_POS", p.PortConstraints)
	}
}

func TestLayoutNil(t *testing.T) {
	if _, err := Layout(nil, Options{}); err == nil {
		t.Error("Layout(nil) should fail")
	}
}
