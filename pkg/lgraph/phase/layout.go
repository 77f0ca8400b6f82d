package phase

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/lgraph/lgutil"
	"github.com/matzehuels/lgraph/pkg/selfloop"
)

// Options configure [Layout].
type Options struct {
	// Sweeps is the number of ordering sweeps; zero means [DefaultSweeps].
	Sweeps    int
	SelfLoops selfloop.Options
	// Logger receives per-graph debug output. Nil disables it.
	Logger *log.Logger
}

// Stats summarizes a layout run over a hierarchy.
type Stats struct {
	Graphs    int
	Nodes     int
	Reversed  int
	Layers    int
	Crossings int
	SelfLoops selfloop.Stats
	Duration  time.Duration
}

// Layout runs the layered phases on g and every nested graph and then
// places the self-loops of the whole hierarchy. Nested graphs are laid out
// before the graphs containing them: each parent node is resized to hold
// its nested drawing, and the parent ports represented by external port
// dummies are moved to where their dummies ended up.
func Layout(g *lgraph.Graph, opts Options) (stats Stats, err error) {
	defer errors.Recover(&err)
	if g == nil {
		errors.InvalidArgument("graph must not be nil")
	}
	start := time.Now()

	graphs := []*lgraph.Graph{g}
	for i := 0; i < len(graphs); i++ {
		for _, n := range graphs[i].Nodes() {
			if nested := n.NestedGraph(); nested != nil {
				graphs = append(graphs, nested)
			}
		}
	}
	for i := len(graphs) - 1; i >= 0; i-- {
		layoutGraph(graphs[i], opts, &stats)
		if graphs[i] != g {
			fitParent(graphs[i])
		}
	}

	sl, err := selfloop.Process(g, opts.SelfLoops)
	if err != nil {
		return stats, err
	}
	stats.SelfLoops = sl
	stats.Duration = time.Since(start)
	return stats, nil
}

// fitParent sizes the parent node of g to g's drawing plus padding and
// places the parent ports that g represents by external port dummies.
func fitParent(g *lgraph.Graph) {
	parent := g.Parent()
	if parent == nil {
		return
	}
	if size := g.ActualSize(); size != parent.Size {
		lgutil.ResizeNode(parent, size, true, true)
	}

	external := false
	for _, n := range g.Nodes() {
		if n.Type != lgraph.NodeExternalPort {
			continue
		}
		p, ok := n.Origin.(*lgraph.Port)
		if !ok || p.Node() != parent {
			continue
		}
		external = true
		if n.ExtPortSide != lgraph.SideUndefined {
			p.SetSide(n.ExtPortSide)
		}
		p.Position = lgutil.ExternalPortPosition(g, n, p.Size.X, p.Size.Y)
	}
	if external {
		parent.PortConstraints = lgraph.ConstraintsFixedPos
	}
}

func layoutGraph(g *lgraph.Graph, opts Options, stats *Stats) {
	lgutil.ComputeGraphProperties(g)
	reversed := BreakCycles(g)
	AssignLayers(g)
	crossings := OrderLayers(g, opts.Sweeps)
	Place(g)
	RestoreReversed(g)

	stats.Graphs++
	stats.Nodes += len(g.Nodes())
	stats.Reversed += reversed
	stats.Layers += g.LayerCount()
	stats.Crossings += crossings

	if opts.Logger != nil {
		opts.Logger.Debug("laid out graph", "graph", g, "nodes", len(g.Nodes()),
			"layers", g.LayerCount(), "reversed", reversed, "crossings", crossings,
			"width", g.Size.X, "height", g.Size.Y)
	}
}
