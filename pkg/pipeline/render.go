package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/lgraph/pkg/io"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/observability"
	"github.com/matzehuels/lgraph/pkg/render/dot"
)

// Render generates output artifacts in the requested formats.
// Opts must have been validated.
func Render(ctx context.Context, g *lgraph.Graph, opts Options) (artifacts map[string][]byte, err error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	src := dot.ToDOT(g, dot.Options{Ports: opts.Ports, Detailed: opts.Detailed})

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = io.WriteJSON(g, &buf)
			data = buf.Bytes()
		case FormatDOT:
			data = []byte(src)
		case FormatSVG:
			data, err = dot.RenderSVG(ctx, src)
		case FormatPNG:
			data, err = dot.RenderPNG(ctx, src, opts.Scale)
		case FormatPDF:
			data, err = dot.RenderPDF(ctx, src)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
