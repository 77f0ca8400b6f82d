package lgraph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/geom"
)

// Layer is an ordered list of nodes that share a coordinate along the
// layout direction.
type Layer struct {
	id    int
	graph *Graph
	nodes []*Node

	Size geom.Vector
}

// ID returns the layer's arena-unique identifier.
func (l *Layer) ID() int { return l.id }

// Graph returns the graph owning l, or nil once the layer was removed.
func (l *Layer) Graph() *Graph { return l.graph }

// Nodes returns the layer's nodes in order.
func (l *Layer) Nodes() []*Node { return slices.Clone(l.nodes) }

// Len returns the number of nodes in the layer.
func (l *Layer) Len() int { return len(l.nodes) }

// Index returns the position of l in its graph, or -1 if it was removed.
func (l *Layer) Index() int {
	if l.graph == nil {
		return -1
	}
	return slices.Index(l.graph.layers, l)
}

func (l *Layer) String() string {
	return fmt.Sprintf("L_%d%v", l.Index(), l.nodes)
}

// SetNodeOrder replaces the node order with order, which must be a
// permutation of the current nodes.
func (l *Layer) SetNodeOrder(order []*Node) {
	if len(order) != len(l.nodes) {
		errors.InvalidArgument("order has %d nodes, layer has %d", len(order), len(l.nodes))
	}
	seen := make(map[*Node]bool, len(order))
	for _, n := range order {
		if n.layer != l || seen[n] {
			errors.InvalidArgument("order is not a permutation of layer %d", l.Index())
		}
		seen[n] = true
	}
	l.nodes = slices.Clone(order)
}
