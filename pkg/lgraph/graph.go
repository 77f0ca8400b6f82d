package lgraph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/geom"
)

// Graph is a layered graph: an ordered list of layers plus the bag of nodes
// not yet assigned to any layer. A graph nested inside a node has that node
// as its parent.
type Graph struct {
	id     int
	arena  *Arena
	parent *Node

	layers    []*Layer
	layerless []*Node
	offset    geom.Vector

	// Name is the identifier the graph had in the input diagram, if any.
	Name string

	// Size is the size of the drawing area, excluding padding.
	Size    geom.Vector
	Padding geom.Insets

	Direction       Direction
	Spacings        Spacings
	Properties      GraphProperties
	PortConstraints PortConstraints

	// MergeEdges requests that edges sharing a port are drawn as one hyperedge.
	MergeEdges bool
	// AspectRatio is the desired width to height ratio; zero means unset.
	AspectRatio float64
}

// ID returns the graph's arena-unique identifier.
func (g *Graph) ID() int { return g.id }

// Arena returns the arena that created g.
func (g *Graph) Arena() *Arena { return g.arena }

// Parent returns the node g is nested in, or nil for a top-level graph.
func (g *Graph) Parent() *Node { return g.parent }

func (g *Graph) String() string {
	if g.Name != "" {
		return fmt.Sprintf("G[%s]", g.Name)
	}
	return fmt.Sprintf("G%d", g.id)
}

// Offset returns the translation applied to every element when the graph is
// drawn.
func (g *Graph) Offset() geom.Vector { return g.offset }

// AddOffset grows the graph offset. Offsets only accumulate.
func (g *Graph) AddOffset(dx, dy float64) {
	g.offset.Translate(dx, dy)
}

// Layers returns the graph's layers in order.
func (g *Graph) Layers() []*Layer { return slices.Clone(g.layers) }

// LayerCount returns the number of layers.
func (g *Graph) LayerCount() int { return len(g.layers) }

// Layer returns the layer at index i.
func (g *Graph) Layer(i int) *Layer {
	if i < 0 || i >= len(g.layers) {
		errors.InvalidArgument("layer index %d out of range [0,%d)", i, len(g.layers))
	}
	return g.layers[i]
}

// LayerlessNodes returns the nodes not assigned to any layer.
func (g *Graph) LayerlessNodes() []*Node { return slices.Clone(g.layerless) }

// Nodes returns all nodes of g: layer by layer in order, then the layerless
// bag. Nodes of nested graphs are not included.
func (g *Graph) Nodes() []*Node {
	var out []*Node
	for _, l := range g.layers {
		out = append(out, l.nodes...)
	}
	return append(out, g.layerless...)
}

// NewNode creates a normal node in g's layerless bag.
func (g *Graph) NewNode() *Node {
	return g.arena.newNode(g)
}

// NewDummy creates a dummy node of type t in g's layerless bag.
func (g *Graph) NewDummy(t NodeType) *Node {
	n := g.arena.newNode(g)
	n.Type = t
	return n
}

// NewLayer appends an empty layer.
func (g *Graph) NewLayer() *Layer {
	l := &Layer{id: g.arena.nextID(), graph: g}
	g.layers = append(g.layers, l)
	return l
}

// InsertLayer inserts an empty layer at index i.
func (g *Graph) InsertLayer(i int) *Layer {
	if i < 0 || i > len(g.layers) {
		errors.InvalidArgument("layer index %d out of range [0,%d]", i, len(g.layers))
	}
	l := &Layer{id: g.arena.nextID(), graph: g}
	g.layers = slices.Insert(g.layers, i, l)
	return l
}

// RemoveEmptyLayers drops layers without nodes and returns how many were
// removed.
func (g *Graph) RemoveEmptyLayers() int {
	before := len(g.layers)
	g.layers = slices.DeleteFunc(g.layers, func(l *Layer) bool {
		if len(l.nodes) == 0 {
			l.graph = nil
			return true
		}
		return false
	})
	return before - len(g.layers)
}

// RemoveNode detaches n from its layer or the layerless bag. The node's
// ports and edges are left untouched.
func (g *Graph) RemoveNode(n *Node) {
	if n.graph != g {
		errors.InvalidArgument("node %v does not belong to graph %v", n, g)
	}
	if n.layer != nil {
		n.layer.nodes = remove(n.layer.nodes, n)
		n.layer = nil
	} else {
		g.layerless = remove(g.layerless, n)
	}
	n.graph = nil
}

// Spacing returns the graph-wide spacing value for s.
func (g *Graph) Spacing(s Spacing) float64 {
	return g.Spacings.Get(s)
}

// ActualSize returns the size of the drawing area including padding.
func (g *Graph) ActualSize() geom.Vector {
	return geom.V(g.Size.X+g.Padding.Horizontal(), g.Size.Y+g.Padding.Vertical())
}
