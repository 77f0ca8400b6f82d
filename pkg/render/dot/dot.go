package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/lgraph/lgutil"
	"github.com/matzehuels/lgraph/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	// Ports draws every port as a small filled box.
	Ports bool
	// Detailed adds node types and ids to node labels.
	Detailed bool
}

// ToDOT converts a laid out graph to Graphviz DOT. Every element is pinned
// at its computed position, so neato only draws; it does not lay out.
// Nested graphs are drawn inside their parent nodes and every edge follows
// its bend points. Graphviz's y axis points up, so y is flipped.
func ToDOT(g *lgraph.Graph, opts Options) string {
	w := &writer{
		opts:   opts,
		height: g.ActualSize().Y,
		pad:    g.Padding.TopLeft(),
	}

	w.buf.WriteString("digraph G {\n")
	w.buf.WriteString("  layout=neato;\n")
	w.buf.WriteString("  inputscale=72;\n")
	w.buf.WriteString("  splines=line;\n")
	w.buf.WriteString("  overlap=true;\n")
	w.buf.WriteString("  bgcolor=\"transparent\";\n")
	w.buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true, fontsize=10];\n")
	w.buf.WriteString("  edge [arrowsize=0.6];\n")
	w.buf.WriteString("\n")

	graphs := []*lgraph.Graph{g}
	var all []*lgraph.Graph
	for len(graphs) > 0 {
		cur := graphs[0]
		graphs = graphs[1:]
		all = append(all, cur)
		for _, n := range cur.Nodes() {
			w.node(n, cur)
			if nested := n.NestedGraph(); nested != nil {
				graphs = append(graphs, nested)
			}
		}
	}

	w.buf.WriteString("\n")
	for _, cur := range all {
		for _, n := range cur.Nodes() {
			for _, p := range n.Ports() {
				for _, e := range p.Outgoing() {
					w.edge(e)
				}
			}
		}
	}

	w.buf.WriteString("}\n")
	return w.buf.String()
}

type writer struct {
	buf    bytes.Buffer
	opts   Options
	height float64
	pad    geom.Vector
}

// abs converts v from the coordinates of g to DOT points.
func (w *writer) abs(v geom.Vector, g *lgraph.Graph) geom.Vector {
	lgutil.ChangeCoordSystem(&v, g, nil)
	v = v.Plus(w.pad)
	return geom.V(v.X, w.height-v.Y)
}

func (w *writer) pin(v geom.Vector) string {
	return fmt.Sprintf("pos=\"%s,%s!\"", num(v.X), num(v.Y))
}

func (w *writer) node(n *lgraph.Node, g *lgraph.Graph) {
	center := w.abs(n.Position.Plus(n.Size.Times(0.5)), g)
	attrs := []string{
		fmt.Sprintf("label=%q", nodeLabel(n, w.opts.Detailed)),
		w.pin(center),
		fmt.Sprintf("width=%s", num(n.Size.X/72)),
		fmt.Sprintf("height=%s", num(n.Size.Y/72)),
	}
	if n.NestedGraph() != nil {
		attrs = append(attrs, `labelloc="t"`, `fillcolor="#f4f4f4"`)
	}
	if n.Type.IsDummy() {
		attrs = append(attrs, `style="filled,dashed"`, fmt.Sprintf("fillcolor=%q", n.Type.Color()))
	}
	fmt.Fprintf(&w.buf, "  %q [%s];\n", nodeID(n), strings.Join(attrs, ", "))

	if !w.opts.Ports {
		return
	}
	for _, p := range n.Ports() {
		c := w.abs(n.Position.Plus(p.Position).Plus(p.Size.Times(0.5)), g)
		fmt.Fprintf(&w.buf, "  \"p%d\" [shape=box, style=filled, fillcolor=black, label=\"\", %s, width=%s, height=%s];\n",
			p.ID(), w.pin(c), num(max(p.Size.X, 2)/72), num(max(p.Size.Y, 2)/72))
	}
}

// edge draws e as a chain of pinned points: source anchor, bend points,
// target anchor. Only the last segment carries an arrowhead.
func (w *writer) edge(e *lgraph.Edge) {
	src, tgt := e.Source(), e.Target()
	if src == nil || tgt == nil || src.Node() == nil || tgt.Node() == nil {
		return
	}
	sg := src.Node().Graph()

	points := []geom.Vector{w.abs(src.AbsoluteAnchor(), sg)}
	for _, b := range e.BendPoints {
		points = append(points, w.abs(b, sg))
	}
	points = append(points, w.abs(tgt.AbsoluteAnchor(), tgt.Node().Graph()))

	ids := make([]string, len(points))
	for i, pt := range points {
		ids[i] = fmt.Sprintf("e%d_%d", e.ID(), i)
		fmt.Fprintf(&w.buf, "  %q [shape=point, width=0.01, label=\"\", %s];\n", ids[i], w.pin(pt))
	}
	for i := 1; i < len(ids); i++ {
		attr := "dir=none"
		if i == len(ids)-1 {
			attr = "dir=forward"
		}
		fmt.Fprintf(&w.buf, "  %q -> %q [%s];\n", ids[i-1], ids[i], attr)
	}

	for _, l := range e.Labels() {
		c := w.abs(l.Position.Plus(l.Size.Times(0.5)), sg)
		fmt.Fprintf(&w.buf, "  \"l%d\" [shape=plaintext, style=\"\", label=%q, %s, width=%s, height=%s];\n",
			l.ID(), l.Text, w.pin(c), num(l.Size.X/72), num(l.Size.Y/72))
	}
}

func nodeID(n *lgraph.Node) string {
	return "n" + strconv.Itoa(n.ID())
}

func nodeLabel(n *lgraph.Node, detailed bool) string {
	text := n.Name
	if ls := n.Labels(); len(ls) > 0 {
		text = ls[0].Text
	}
	if text == "" {
		text = n.String()
	}
	if !detailed {
		return text
	}
	return fmt.Sprintf("%s\n%s #%d", text, n.Type, n.ID())
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG with Graphviz's neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag with one whose size matches
// the view box, so the drawing scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPNG renders DOT source to PNG via SVG. See [render.ToPNG].
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// RenderPDF renders DOT source to PDF via SVG. See [render.ToPDF].
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
