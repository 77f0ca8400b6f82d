package phase

import "github.com/matzehuels/lgraph/pkg/lgraph"

// BreakCycles makes g acyclic by reversing every back edge found by a
// depth-first search. The search starts at nodes without incoming edges,
// then at any node not yet visited. Before that, edges pointing the wrong
// way for a node's edge or layer constraint are reversed. It returns the
// number of reversed edges; [RestoreReversed] turns them back.
func BreakCycles(g *lgraph.Graph) int {
	constrained := reverseConstrained(g)

	const (
		white = iota
		gray
		black
	)

	color := make(map[*lgraph.Node]int)
	var backEdges []*lgraph.Edge

	var dfs func(n *lgraph.Node)
	dfs = func(n *lgraph.Node) {
		color[n] = gray
		for _, e := range edgesOf(n) {
			child := e.Target().Node()
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, e)
			}
		}
		color[n] = black
	}

	nodes := g.Nodes()
	for _, n := range nodes {
		if len(predecessors(n)) == 0 && color[n] == white {
			dfs(n)
		}
	}
	for _, n := range nodes {
		if color[n] == white {
			dfs(n)
		}
	}

	for _, e := range backEdges {
		e.Reverse()
	}
	return constrained + len(backEdges)
}

// reverseConstrained turns edges around that enter nodes allowed only
// outgoing edges or leave nodes allowed only incoming ones. Nodes pinned to
// the first layers count as outgoing only, those pinned to the last layers
// as incoming only.
func reverseConstrained(g *lgraph.Graph) int {
	var turn []*lgraph.Edge
	seen := make(map[*lgraph.Edge]bool)
	add := func(e *lgraph.Edge) {
		if !seen[e] {
			seen[e] = true
			turn = append(turn, e)
		}
	}
	for _, n := range g.Nodes() {
		switch {
		case outgoingOnly(n):
			for _, e := range n.Incoming() {
				if s := e.Source().Node(); s != nil && s != n && s.Graph() == n.Graph() && !outgoingOnly(s) {
					add(e)
				}
			}
		case incomingOnly(n):
			for _, e := range edgesOf(n) {
				if !incomingOnly(e.Target().Node()) {
					add(e)
				}
			}
		}
	}
	for _, e := range turn {
		e.Reverse()
	}
	return len(turn)
}

func outgoingOnly(n *lgraph.Node) bool {
	return n.EdgeConstraint == lgraph.EdgeOutgoingOnly ||
		n.LayerConstraint == lgraph.LayerFirst || n.LayerConstraint == lgraph.LayerFirstSeparate
}

func incomingOnly(n *lgraph.Node) bool {
	return n.EdgeConstraint == lgraph.EdgeIncomingOnly ||
		n.LayerConstraint == lgraph.LayerLast || n.LayerConstraint == lgraph.LayerLastSeparate
}

// RestoreReversed reverses every reversed edge between nodes of g again and
// returns how many were restored.
func RestoreReversed(g *lgraph.Graph) int {
	var reversed []*lgraph.Edge
	for _, n := range g.Nodes() {
		for _, e := range edgesOf(n) {
			if e.Reversed() {
				reversed = append(reversed, e)
			}
		}
	}
	for _, e := range reversed {
		e.Reverse()
	}
	return len(reversed)
}
