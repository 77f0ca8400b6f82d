package phase

import "github.com/matzehuels/lgraph/pkg/lgraph"

// AssignLayers places every node of g into a layer by longest path: nodes
// without predecessors go to the first layer, every other node one layer
// after its deepest predecessor. Existing layers are discarded.
//
// Layer constraints are honoured: FIRST_SEPARATE and LAST_SEPARATE nodes
// get a layer of their own before or after all others, FIRST and LAST
// nodes join the first or last regular layer. Edges to separate nodes do
// not count as dependencies of the regular nodes.
//
// The graph must be acyclic; run [BreakCycles] first. Nodes on a cycle
// never become ready and stay in the first layer.
func AssignLayers(g *lgraph.Graph) {
	nodes := g.Nodes()
	for _, n := range nodes {
		n.SetLayer(nil)
	}
	g.RemoveEmptyLayers()
	if len(nodes) == 0 {
		return
	}

	var regular, first, last []*lgraph.Node
	for _, n := range nodes {
		switch n.LayerConstraint {
		case lgraph.LayerFirstSeparate:
			first = append(first, n)
		case lgraph.LayerLastSeparate:
			last = append(last, n)
		default:
			regular = append(regular, n)
		}
	}
	keep := func(ns []*lgraph.Node) []*lgraph.Node {
		out := ns[:0:0]
		for _, n := range ns {
			if !separate(n) {
				out = append(out, n)
			}
		}
		return out
	}

	inDegree := make(map[*lgraph.Node]int, len(regular))
	rows := make(map[*lgraph.Node]int, len(regular))
	queue := make([]*lgraph.Node, 0, len(regular))
	for _, n := range regular {
		d := len(keep(predecessors(n)))
		inDegree[n] = d
		if d == 0 {
			queue = append(queue, n)
		}
	}

	depth := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range keep(successors(curr)) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
				depth = max(depth, row)
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	for _, n := range regular {
		switch n.LayerConstraint {
		case lgraph.LayerFirst:
			rows[n] = 0
		case lgraph.LayerLast:
			rows[n] = depth
		}
	}

	if len(first) > 0 {
		l := g.NewLayer()
		for _, n := range first {
			n.SetLayer(l)
		}
	}
	if len(regular) > 0 {
		layers := make([]*lgraph.Layer, depth+1)
		for i := range layers {
			layers[i] = g.NewLayer()
		}
		for _, n := range regular {
			n.SetLayer(layers[rows[n]])
		}
	}
	if len(last) > 0 {
		l := g.NewLayer()
		for _, n := range last {
			n.SetLayer(l)
		}
	}
	g.RemoveEmptyLayers()
}

func separate(n *lgraph.Node) bool {
	return n.LayerConstraint == lgraph.LayerFirstSeparate || n.LayerConstraint == lgraph.LayerLastSeparate
}
