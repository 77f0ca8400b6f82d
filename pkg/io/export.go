package io

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strconv"

	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/lgraph/lgutil"
)

// WriteJSON encodes the laid out graph g in the diagram format read by
// [ReadJSON].
//
// Node positions are relative to the parent's content area, port positions
// to their node and label positions to their owner. Edge sections hold
// absolute coordinates: start and end at the port anchors, bend points in
// between. Ports without a name, such as those the importer creates for
// edges ending at a node, are written with generated ids of the form
// "<node>.p<id>" so the output reads back with the same geometry. Edges
// moved to external port dummies are written with the parent ports the
// dummies stand for.
func WriteJSON(g *lgraph.Graph, w io.Writer) error {
	ex := &exporter{edges: make(map[*lgraph.Graph][]*lgraph.Edge)}
	for _, e := range g.Arena().Edges() {
		if e.Source() == nil || e.Target() == nil {
			continue
		}
		c := container(e)
		ex.edges[c] = append(ex.edges[c], e)
	}

	size := g.ActualSize()
	root := &diagram{ID: g.Name, Width: size.X, Height: size.Y, LayoutOptions: graphOptions(g)}
	if root.ID == "" {
		root.ID = "root"
	}
	ex.fill(root, g)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a diagram file at path.
func ExportJSON(g *lgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

type exporter struct {
	edges map[*lgraph.Graph][]*lgraph.Edge
}

// fill writes the nodes and edges of g into d.
func (ex *exporter) fill(d *diagram, g *lgraph.Graph) {
	origin := g.Offset().Plus(g.Padding.TopLeft())

	for _, n := range g.Nodes() {
		if n.Type.IsDummy() {
			continue
		}
		pos := n.Position.Plus(origin)
		c := &diagram{
			ID:     elementID(n.Name, "n", n.ID()),
			X:      ptr(pos.X),
			Y:      ptr(pos.Y),
			Width:  n.Size.X,
			Height: n.Size.Y,
			Labels: labels(n.Labels(), geom.Vector{}),
		}
		for _, p := range n.Ports() {
			c.Ports = append(c.Ports, port{
				ID:     portID(p),
				X:      ptr(p.Position.X),
				Y:      ptr(p.Position.Y),
				Width:  p.Size.X,
				Height: p.Size.Y,
				Side:   p.Side().String(),
				Labels: labels(p.Labels(), geom.Vector{}),
			})
		}
		if n.PortConstraints != lgraph.ConstraintsUndefined {
			c.LayoutOptions = map[string]string{"portConstraints": n.PortConstraints.String()}
		}
		if nested := n.NestedGraph(); nested != nil {
			if c.LayoutOptions == nil {
				c.LayoutOptions = graphOptions(nested)
			} else {
				maps.Copy(c.LayoutOptions, graphOptions(nested))
			}
			ex.fill(c, nested)
		}
		d.Children = append(d.Children, c)
	}

	for _, e := range ex.edges[g] {
		d.Edges = append(d.Edges, ex.edge(e, origin))
	}
}

func (ex *exporter) edge(e *lgraph.Edge, origin geom.Vector) edge {
	id := elementID(e.Name, "e", e.ID())
	src, tgt := original(e.Source()), original(e.Target())
	out := edge{
		ID:      id,
		Sources: []string{portID(src)},
		Targets: []string{portID(tgt)},
		Labels:  labels(e.Labels(), origin),
	}

	bendGraph := container(e)
	sec := section{
		ID:         id + "_s0",
		StartPoint: toPoint(absolute(src.AbsoluteAnchor(), src.Node().Graph())),
		EndPoint:   toPoint(absolute(tgt.AbsoluteAnchor(), tgt.Node().Graph())),
	}
	for _, b := range e.BendPoints {
		sec.BendPoints = append(sec.BendPoints, toPoint(absolute(b, bendGraph)))
	}
	out.Sections = []section{sec}
	return out
}

// container returns the graph an edge is listed in: the graph of its ends,
// or the nested graph when one end is a port of that graph's parent.
func container(e *lgraph.Edge) *lgraph.Graph {
	sn, tn := e.Source().Node(), e.Target().Node()
	sg, tg := sn.Graph(), tn.Graph()
	if tg != nil && tg.Parent() == sn && sn != nil {
		return tg
	}
	return sg
}

// absolute converts v from the coordinates of g to those of the root
// graph's content area.
func absolute(v geom.Vector, g *lgraph.Graph) geom.Vector {
	lgutil.ChangeCoordSystem(&v, g, nil)
	root := g
	for root.Parent() != nil {
		root = root.Parent().Graph()
	}
	return v.Plus(root.Padding.TopLeft())
}

// graphOptions returns the options needed to read g back: its direction
// and padding.
func graphOptions(g *lgraph.Graph) map[string]string {
	opts := make(map[string]string)
	if g.Direction != lgraph.DirUndefined {
		opts["direction"] = g.Direction.String()
	}
	if p := g.Padding; p != (geom.Insets{}) {
		opts["padding"] = fmt.Sprintf("[top=%s,left=%s,bottom=%s,right=%s]",
			num(p.Top), num(p.Left), num(p.Bottom), num(p.Right))
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func labels(ls []*lgraph.Label, origin geom.Vector) []label {
	var out []label
	for _, l := range ls {
		pos := l.Position.Plus(origin)
		out = append(out, label{
			ID:     "l" + strconv.Itoa(l.ID()),
			Text:   l.Text,
			X:      ptr(pos.X),
			Y:      ptr(pos.Y),
			Width:  l.Size.X,
			Height: l.Size.Y,
		})
	}
	return out
}

// original returns the parent port an external port dummy's port stands
// for, or p itself.
func original(p *lgraph.Port) *lgraph.Port {
	if n := p.Node(); n != nil && n.Type == lgraph.NodeExternalPort {
		if o, ok := n.Origin.(*lgraph.Port); ok {
			return o
		}
	}
	return p
}

func portID(p *lgraph.Port) string {
	p = original(p)
	if p.Name != "" {
		return p.Name
	}
	n := p.Node()
	return elementID(n.Name, "n", n.ID()) + ".p" + strconv.Itoa(p.ID())
}

func elementID(name, prefix string, id int) string {
	if name != "" {
		return name
	}
	return prefix + strconv.Itoa(id)
}

func toPoint(v geom.Vector) point { return point{X: v.X, Y: v.Y} }
