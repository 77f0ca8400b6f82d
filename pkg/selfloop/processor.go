package selfloop

import (
	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// Options configure Process.
type Options struct {
	Penalties Penalties
	// Observer receives the evaluation trace of every node. Nil discards it.
	Observer Observer
}

// DefaultOptions returns the default penalties and no observer.
func DefaultOptions() Options {
	return Options{Penalties: DefaultPenalties()}
}

// Stats summarizes a run of Process.
type Stats struct {
	Nodes       int
	Components  int
	Labels      int
	Evaluations int
	Penalty     float64
}

// Process places the self-loops of every node of g and its nested graphs.
// For each node with self-loops it groups them into components, assigns
// routing levels, generates label candidates, picks one per label and
// routes the loops around the node. Node positions must be final.
func Process(g *lgraph.Graph, opts Options) (stats Stats, err error) {
	defer errors.Recover(&err)
	if g == nil {
		errors.InvalidArgument("graph must not be nil")
	}

	queue := []*lgraph.Graph{g}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Nodes() {
			if nested := n.NestedGraph(); nested != nil {
				queue = append(queue, nested)
			}
			processNode(n, opts, &stats)
		}
	}
	return stats, nil
}

// ProcessNode places the self-loops of a single node.
func ProcessNode(n *lgraph.Node, opts Options) Result {
	var stats Stats
	return processNode(n, opts, &stats)
}

func processNode(n *lgraph.Node, opts Options, stats *Stats) Result {
	rep := NewNodeRep(n)
	if len(rep.Components) == 0 {
		return Result{}
	}
	rep.Prepare()
	for _, c := range rep.Components {
		c.Label = newLabel(c, rep.LabelLabelSpacing)
	}
	Generate(rep, opts.Penalties)
	res := Evaluate(rep, opts.Penalties, opts.Observer)

	for _, c := range rep.Components {
		if c.Label != nil && c.Label.Position != nil {
			c.Label.apply(n.Position, rep.LabelLabelSpacing)
			stats.Labels++
		}
	}
	Route(rep)

	stats.Nodes++
	stats.Components += len(rep.Components)
	stats.Evaluations += res.Evaluations
	stats.Penalty += res.Penalty
	return res
}
