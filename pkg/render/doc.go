// Package render turns laid out graphs into images.
//
// The [dot] subpackage writes Graphviz DOT with every element pinned at its
// computed position and renders it to SVG in process. This package converts
// SVG to PDF and PNG with the external rsvg-convert tool (from librsvg):
//
//	svg, err := dot.RenderSVG(ctx, dot.ToDOT(g, dot.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [dot]: github.com/matzehuels/lgraph/pkg/render/dot
package render
