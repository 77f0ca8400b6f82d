package phase

import (
	"cmp"
	"slices"

	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// DefaultSweeps is the number of ordering sweeps when none is given.
const DefaultSweeps = 8

// OrderLayers reduces crossings by barycenter sweeps. Odd sweeps go forward
// and order each layer by the mean position of its predecessors; even
// sweeps go backward using successors. Nodes without neighbours in the
// fixed layer keep their position as barycenter. The best order seen is
// kept and its crossing count returned. Nodes constrained to the top or
// bottom of their layer stay there throughout.
func OrderLayers(g *lgraph.Graph, sweeps int) int {
	if sweeps <= 0 {
		sweeps = DefaultSweeps
	}
	layers := g.Layers()
	for _, l := range layers {
		pinInLayer(l)
	}
	best := CountCrossings(g)
	bestOrder := snapshot(layers)

	for s := 0; s < sweeps && best > 0; s++ {
		if s%2 == 0 {
			for i := 1; i < len(layers); i++ {
				reorder(layers[i], layers[i-1], predecessors)
			}
		} else {
			for i := len(layers) - 2; i >= 0; i-- {
				reorder(layers[i], layers[i+1], successors)
			}
		}
		if c := CountCrossings(g); c < best {
			best = c
			bestOrder = snapshot(layers)
		}
	}

	for i, l := range layers {
		l.SetNodeOrder(bestOrder[i])
	}
	return best
}

// reorder sorts l by the barycenters of the neighbours of its nodes in
// fixed.
func reorder(l, fixed *lgraph.Layer, neighbours func(*lgraph.Node) []*lgraph.Node) {
	pos := posMap(fixed.Nodes())
	nodes := l.Nodes()
	bary := make(map[*lgraph.Node]float64, len(nodes))
	for i, n := range nodes {
		sum, count := 0.0, 0
		for _, m := range neighbours(n) {
			if p, ok := pos[m]; ok {
				sum += float64(p)
				count++
			}
		}
		if count == 0 {
			bary[n] = float64(i)
		} else {
			bary[n] = sum / float64(count)
		}
	}
	slices.SortStableFunc(nodes, func(a, b *lgraph.Node) int {
		return cmp.Compare(bary[a], bary[b])
	})
	l.SetNodeOrder(nodes)
	pinInLayer(l)
}

// pinInLayer moves TOP nodes to the front of l and BOTTOM nodes to its end,
// keeping their relative order.
func pinInLayer(l *lgraph.Layer) {
	top := 0
	var bottom []*lgraph.Node
	for _, n := range l.Nodes() {
		switch n.InLayerConstraint {
		case lgraph.InLayerTop:
			n.SetLayerAt(top, l)
			top++
		case lgraph.InLayerBottom:
			bottom = append(bottom, n)
		}
	}
	for _, n := range bottom {
		n.SetLayerAt(len(l.Nodes())-1, l)
	}
}

func snapshot(layers []*lgraph.Layer) [][]*lgraph.Node {
	out := make([][]*lgraph.Node, len(layers))
	for i, l := range layers {
		out[i] = l.Nodes()
	}
	return out
}
