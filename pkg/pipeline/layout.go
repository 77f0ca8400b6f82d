package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lgraph/pkg/config"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/lgraph/phase"
	"github.com/matzehuels/lgraph/pkg/observability"
)

// Layout fills in the defaults from cfg that g leaves unset and lays g out.
// runID is only passed to the pipeline hooks.
func Layout(ctx context.Context, runID string, g *lgraph.Graph, cfg config.Config, logger *log.Logger) (phase.Stats, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, runID, len(g.Arena().Nodes()))
	start := time.Now()

	cfg.Apply(g)
	stats, err := phase.Layout(g, cfg.PhaseOptions(logger))

	hooks.OnLayoutComplete(ctx, runID, stats.SelfLoops.Nodes, time.Since(start), err)
	return stats, err
}
