package phase

import (
	"slices"

	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// CountCrossings returns the number of edge crossings between consecutive
// layers of g in their current order.
func CountCrossings(g *lgraph.Graph) int {
	layers := g.Layers()
	crossings := 0
	for i := 0; i+1 < len(layers); i++ {
		crossings += CountLayerCrossings(layers[i].Nodes(), layers[i+1].Nodes())
	}
	return crossings
}

// CountLayerCrossings counts crossings among the edges from upper to lower
// using a Fenwick tree. Two edges (u1,v1) and (u2,v2) cross when
//
//	pos(u1) < pos(u2) and pos(v1) > pos(v2)
//
// so the count is the number of inversions in the target positions once
// edges are sorted by source position. Edges between the layers in the
// opposite direction count the same way.
func CountLayerCrossings(upper, lower []*lgraph.Node) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	upperPos, lowerPos := posMap(upper), posMap(lower)
	type edge struct{ upper, lower int }
	var edges []edge
	for i, n := range upper {
		for _, e := range edgesOf(n) {
			if pos, ok := lowerPos[e.Target().Node()]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	for i, n := range lower {
		for _, e := range edgesOf(n) {
			if pos, ok := upperPos[e.Target().Node()]; ok {
				edges = append(edges, edge{pos, i})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		// Edges seen so far with target <= e.lower.
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

func posMap(nodes []*lgraph.Node) map[*lgraph.Node]int {
	m := make(map[*lgraph.Node]int, len(nodes))
	for i, n := range nodes {
		m[n] = i
	}
	return m
}
