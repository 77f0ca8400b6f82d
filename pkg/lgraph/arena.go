package lgraph

import (
	"slices"

	"github.com/matzehuels/lgraph/pkg/geom"
)

// Arena owns every element of one layout run and hands out their IDs.
// IDs are unique within an arena and never reused.
type Arena struct {
	next   int
	graphs []*Graph
	nodes  []*Node
	ports  []*Port
	edges  []*Edge
	labels []*Label
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) nextID() int {
	id := a.next
	a.next++
	return id
}

// NewGraph creates a top-level graph with default spacings.
func (a *Arena) NewGraph() *Graph {
	g := &Graph{
		id:       a.nextID(),
		arena:    a,
		Spacings: DefaultSpacings(),
	}
	a.graphs = append(a.graphs, g)
	return g
}

func (a *Arena) newNode(g *Graph) *Node {
	n := &Node{
		id:    a.nextID(),
		arena: a,
		graph: g,
	}
	a.nodes = append(a.nodes, n)
	g.layerless = append(g.layerless, n)
	return n
}

// NewPort creates a port that is not attached to any node yet.
func (a *Arena) NewPort() *Port {
	p := &Port{id: a.nextID()}
	a.ports = append(a.ports, p)
	return p
}

// NewEdge creates an edge with neither source nor target.
func (a *Arena) NewEdge() *Edge {
	e := &Edge{id: a.nextID()}
	a.edges = append(a.edges, e)
	return e
}

// NewLabel creates an unowned label with the given text.
func (a *Arena) NewLabel(text string) *Label {
	l := &Label{id: a.nextID(), Text: text}
	a.labels = append(a.labels, l)
	return l
}

// NewSizedLabel creates an unowned label and sets its size.
func (a *Arena) NewSizedLabel(text string, w, h float64) *Label {
	l := a.NewLabel(text)
	l.Size = geom.V(w, h)
	return l
}

// Graphs returns every graph created by the arena in creation order.
func (a *Arena) Graphs() []*Graph { return slices.Clone(a.graphs) }

// Nodes returns every node created by the arena in creation order.
func (a *Arena) Nodes() []*Node { return slices.Clone(a.nodes) }

// Ports returns every port created by the arena in creation order.
func (a *Arena) Ports() []*Port { return slices.Clone(a.ports) }

// Edges returns every edge created by the arena in creation order.
func (a *Arena) Edges() []*Edge { return slices.Clone(a.edges) }

// Labels returns every label created by the arena in creation order.
func (a *Arena) Labels() []*Label { return slices.Clone(a.labels) }

// remove deletes the first occurrence of v from s, preserving order.
func remove[T comparable](s []T, v T) []T {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}
