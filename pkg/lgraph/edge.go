package lgraph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/geom"
)

// Edge connects a source port to a target port. Bend points are in the
// coordinates of the graph containing the source node.
type Edge struct {
	id       int
	source   *Port
	target   *Port
	labels   []*Label
	reversed bool

	// Name is the identifier the edge had in the input diagram, if any.
	Name string

	BendPoints     geom.Chain
	JunctionPoints geom.Chain
}

// ID returns the edge's arena-unique identifier.
func (e *Edge) ID() int { return e.id }

func (e *Edge) String() string {
	name := e.Name
	if name == "" {
		name = fmt.Sprint(e.id)
	}
	return fmt.Sprintf("e_%s(%v->%v)", name, e.source, e.target)
}

// Source returns the source port.
func (e *Edge) Source() *Port { return e.source }

// Target returns the target port.
func (e *Edge) Target() *Port { return e.target }

// SetSource attaches the edge's tail to p, appending it to p's outgoing
// edges. Setting the current source is a no-op; nil detaches.
func (e *Edge) SetSource(p *Port) {
	if p == e.source {
		return
	}
	if e.source != nil {
		e.source.outgoing = remove(e.source.outgoing, e)
	}
	e.source = p
	if p != nil {
		p.outgoing = append(p.outgoing, e)
	}
}

// SetSourceAt attaches the tail to p and inserts e at index i of p's
// outgoing edges. The index is checked before e is detached, so a bad
// index leaves the edge where it was.
func (e *Edge) SetSourceAt(i int, p *Port) {
	if p == nil {
		errors.InvalidArgument("source port must not be nil")
	}
	size := len(p.outgoing)
	if e.source == p {
		size--
	}
	if i < 0 || i > size {
		errors.InvalidArgument("index %d out of range [0,%d] for outgoing edges of %v", i, size, p)
	}
	if e.source != nil {
		e.source.outgoing = remove(e.source.outgoing, e)
	}
	e.source = p
	p.outgoing = slices.Insert(p.outgoing, i, e)
}

// SetTarget attaches the edge's head to p, appending it to p's incoming
// edges. Setting the current target is a no-op; nil detaches.
func (e *Edge) SetTarget(p *Port) {
	if p == e.target {
		return
	}
	if e.target != nil {
		e.target.incoming = remove(e.target.incoming, e)
	}
	e.target = p
	if p != nil {
		p.incoming = append(p.incoming, e)
	}
}

// SetTargetAt attaches the head to p and inserts e at index i of p's
// incoming edges. See [Edge.SetSourceAt].
func (e *Edge) SetTargetAt(i int, p *Port) {
	if p == nil {
		errors.InvalidArgument("target port must not be nil")
	}
	size := len(p.incoming)
	if e.target == p {
		size--
	}
	if i < 0 || i > size {
		errors.InvalidArgument("index %d out of range [0,%d] for incoming edges of %v", i, size, p)
	}
	if e.target != nil {
		e.target.incoming = remove(e.target.incoming, e)
	}
	e.target = p
	p.incoming = slices.Insert(p.incoming, i, e)
}

// Reversed reports whether the edge currently points against its original
// direction.
func (e *Edge) Reversed() bool { return e.reversed }

// Reverse swaps source and target, reverses the bend points and swaps head
// and tail label placements. Reversing twice restores the edge.
func (e *Edge) Reverse() {
	src, tgt := e.source, e.target
	e.SetSource(nil)
	e.SetTarget(nil)
	e.SetSource(tgt)
	e.SetTarget(src)
	e.BendPoints.Reverse()
	e.JunctionPoints.Reverse()
	for _, l := range e.labels {
		switch l.Placement {
		case PlacementHead:
			l.Placement = PlacementTail
		case PlacementTail:
			l.Placement = PlacementHead
		}
	}
	e.reversed = !e.reversed
}

// IsSelfLoop reports whether both ends sit on the same node.
func (e *Edge) IsSelfLoop() bool {
	return e.source != nil && e.target != nil && e.source.node != nil && e.source.node == e.target.node
}

// IsInLayerEdge reports whether both ends sit on distinct nodes of one layer.
func (e *Edge) IsInLayerEdge() bool {
	if e.source == nil || e.target == nil || e.source.node == nil || e.target.node == nil {
		return false
	}
	sn, tn := e.source.node, e.target.node
	return sn != tn && sn.layer != nil && sn.layer == tn.layer
}

// OtherPort returns the end of e opposite to p.
func (e *Edge) OtherPort(p *Port) *Port {
	switch p {
	case e.source:
		return e.target
	case e.target:
		return e.source
	}
	errors.InvalidArgument("port %v is not incident to edge %v", p, e)
	return nil
}

// OtherNode returns the node at the end of e opposite to n. For a self-loop
// that is n itself.
func (e *Edge) OtherNode(n *Node) *Node {
	var other *Port
	switch {
	case e.source != nil && e.source.node == n:
		other = e.target
	case e.target != nil && e.target.node == n:
		other = e.source
	default:
		errors.InvalidArgument("node %v is not incident to edge %v", n, e)
	}
	if other == nil {
		errors.InvalidArgument("edge %v has no opposite end at node %v", e, n)
	}
	return other.node
}

// Labels returns the edge's labels.
func (e *Edge) Labels() []*Label { return slices.Clone(e.labels) }

// AddLabel makes e the owner of l.
func (e *Edge) AddLabel(l *Label) { l.SetOwner(e) }

func (e *Edge) labelStore() *[]*Label { return &e.labels }
