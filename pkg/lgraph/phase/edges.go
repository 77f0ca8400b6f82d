package phase

import "github.com/matzehuels/lgraph/pkg/lgraph"

// edgesOf returns the outgoing edges of n that end at another node of the
// same graph. Self-loops and edges leaving the hierarchy level are skipped.
func edgesOf(n *lgraph.Node) []*lgraph.Edge {
	var out []*lgraph.Edge
	for _, e := range n.Outgoing() {
		if t := e.Target(); t != nil && t.Node() != nil && t.Node() != n && t.Node().Graph() == n.Graph() {
			out = append(out, e)
		}
	}
	return out
}

// predecessors returns the distinct sources of the edges ending at n.
func predecessors(n *lgraph.Node) []*lgraph.Node {
	var out []*lgraph.Node
	seen := make(map[*lgraph.Node]bool)
	for _, e := range n.Incoming() {
		s := e.Source()
		if s == nil || s.Node() == nil || s.Node() == n || s.Node().Graph() != n.Graph() || seen[s.Node()] {
			continue
		}
		seen[s.Node()] = true
		out = append(out, s.Node())
	}
	return out
}

// successors returns the distinct targets of the edges starting at n.
func successors(n *lgraph.Node) []*lgraph.Node {
	var out []*lgraph.Node
	seen := make(map[*lgraph.Node]bool)
	for _, e := range edgesOf(n) {
		if t := e.Target().Node(); !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
