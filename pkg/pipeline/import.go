package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/lgraph/pkg/io"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/observability"
)

// Import decodes a diagram.
func Import(ctx context.Context, input []byte) (*lgraph.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnImportStart(ctx, FormatJSON, len(input))
	start := time.Now()

	g, err := io.ReadJSON(bytes.NewReader(input))
	nodes := 0
	if g != nil {
		nodes = len(g.Arena().Nodes())
	}
	hooks.OnImportComplete(ctx, FormatJSON, nodes, time.Since(start), err)
	return g, err
}
