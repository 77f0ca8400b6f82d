package dot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// fixture returns a 70x30 graph with nodes a at (0,0) and b at (50,0), an
// edge a -> b bending at (35,5) and a labeled self-loop on b.
func fixture() (*lgraph.Graph, *lgraph.Edge) {
	a := lgraph.NewArena()
	g := a.NewGraph()
	g.Size = geom.V(70, 30)

	na, nb := g.NewNode(), g.NewNode()
	na.Name, nb.Name = "a", "b"
	na.Size, nb.Size = geom.V(20, 10), geom.V(20, 10)
	nb.Position = geom.V(50, 0)

	pa := na.NewPort()
	pa.Position = geom.V(20, 5)
	pa.SetSide(lgraph.East)
	pb := nb.NewPort()
	pb.Position = geom.V(0, 5)
	pb.SetSide(lgraph.West)

	e := a.NewEdge()
	e.SetSource(pa)
	e.SetTarget(pb)
	e.BendPoints = geom.Chain{geom.V(35, 5)}

	pn := nb.NewPort()
	pn.Position = geom.V(10, 0)
	pn.SetSide(lgraph.North)
	loop := a.NewEdge()
	loop.SetSource(pn)
	loop.SetTarget(pn)
	l := a.NewSizedLabel("self", 20, 8)
	l.Position = geom.V(50, 20)
	loop.AddLabel(l)
	return g, e
}

func TestToDOT(t *testing.T) {
	g, e := fixture()
	src := ToDOT(g, Options{})

	for _, want := range []string{
		"digraph G",
		"layout=neato",
		`label="a"`,
		`pos="10,25!"`,
		`pos="60,25!"`,
		fmt.Sprintf(`"e%d_1" [shape=point, width=0.01, label="", pos="35,25!"]`, e.ID()),
		fmt.Sprintf(`"e%d_1" -> "e%d_2" [dir=forward]`, e.ID(), e.ID()),
		fmt.Sprintf(`"e%d_0" -> "e%d_1" [dir=none]`, e.ID(), e.ID()),
		`label="self"`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("ToDOT() missing %s", want)
		}
	}
	if strings.Contains(src, `fillcolor=black`) {
		t.Error("ToDOT() drew ports without Options.Ports")
	}
}

func TestToDOTOptions(t *testing.T) {
	g, _ := fixture()
	src := ToDOT(g, Options{Ports: true, Detailed: true})

	if !strings.Contains(src, "fillcolor=black") {
		t.Error("ToDOT() with Ports missing port boxes")
	}
	if !strings.Contains(src, `NORMAL #`) {
		t.Error("ToDOT() with Detailed missing node type")
	}
}

func TestToDOTNested(t *testing.T) {
	a := lgraph.NewArena()
	g := a.NewGraph()
	g.Size = geom.V(200, 100)
	parent := g.NewNode()
	parent.Name = "parent"
	parent.Position = geom.V(100, 50)
	parent.Size = geom.V(80, 40)
	child := parent.NewNestedGraph().NewNode()
	child.Name = "child"
	child.Position = geom.V(10, 10)
	child.Size = geom.V(10, 10)

	src := ToDOT(g, Options{})
	// Child center (115,65) in root coordinates, flipped: y = 100 - 65.
	if !strings.Contains(src, `pos="115,35!"`) {
		t.Errorf("ToDOT() nested child not at absolute position:\n%s", src)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20">`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without view box = %s, want unchanged", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	g, _ := fixture()
	svg, err := RenderSVG(context.Background(), ToDOT(g, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
