// Package dot draws laid out graphs with Graphviz.
//
// [ToDOT] writes DOT source in which nodes, ports, edge bend points and
// edge labels are pinned at the coordinates the layout computed. Graphviz
// is only used to draw, never to lay out:
//
//	src := dot.ToDOT(g, dot.Options{Ports: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// Edges are drawn as chains of invisible points through their bend points,
// so self-loops keep the routes chosen around their nodes. Nested graphs
// are drawn on top of their parent nodes.
//
// SVG rendering runs in process through [github.com/goccy/go-graphviz].
// [RenderPNG] and [RenderPDF] convert the SVG with rsvg-convert.
package dot
