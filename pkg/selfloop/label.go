package selfloop

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// Label merges the labels of a component's edges into one box. The
// constituents are stacked vertically.
type Label struct {
	Labels     []*lgraph.Label
	Size       geom.Vector
	Candidates []*LabelPosition
	// Position is the candidate currently assigned.
	Position *LabelPosition
}

// LabelPosition is one candidate placement of a label.
type LabelPosition struct {
	// Side is the side of the segment the label sits on.
	Side lgraph.PortSide
	// Position is the top-left corner in node coordinates. Offsets move it
	// away from Original during evaluation.
	Position    geom.Vector
	Original    geom.Vector
	BasePenalty float64
	Alignment   Alignment
	Text        TextAlignment

	LabelEdgeCrossings  int
	LabelLabelCrossings int

	// The port or segment the candidate is anchored to, and its level.
	port    *Port
	segment *Segment
	level   int
}

// Reset moves the position back to its original coordinates.
func (p *LabelPosition) Reset() {
	p.Position = p.Original
	p.LabelEdgeCrossings = 0
	p.LabelLabelCrossings = 0
}

// Segment returns the segment the candidate is anchored to, or nil.
func (p *LabelPosition) Segment() *Segment { return p.segment }

// Port returns the port the candidate is anchored to, or nil.
func (p *LabelPosition) Port() *Port { return p.port }

// Text returns the constituent texts joined by newlines.
func (l *Label) Text() string {
	texts := make([]string, len(l.Labels))
	for i, ll := range l.Labels {
		texts[i] = ll.Text
	}
	return strings.Join(texts, "\n")
}

// newLabel merges the labels of c's edges, narrowest first, or returns nil
// when the edges carry none.
func newLabel(c *Component, labelSpacing float64) *Label {
	var labels []*lgraph.Label
	for _, e := range c.Edges {
		labels = append(labels, e.Labels()...)
	}
	if len(labels) == 0 {
		return nil
	}
	slices.SortStableFunc(labels, func(a, b *lgraph.Label) int {
		return cmp.Compare(a.Size.X, b.Size.X)
	})

	l := &Label{Labels: labels}
	for i, ll := range labels {
		l.Size.X = max(l.Size.X, ll.Size.X)
		l.Size.Y += ll.Size.Y
		if i > 0 {
			l.Size.Y += labelSpacing
		}
	}
	return l
}

// apply writes the current position into the constituent labels, offset by
// origin.
func (l *Label) apply(origin geom.Vector, labelSpacing float64) {
	pos := origin.Plus(l.Position.Position)
	y := pos.Y
	for _, ll := range l.Labels {
		x := pos.X
		switch l.Position.Text {
		case TextCenter:
			x += (l.Size.X - ll.Size.X) / 2
		case TextRight:
			x += l.Size.X - ll.Size.X
		}
		ll.Position = geom.V(x, y)
		y += ll.Size.Y + labelSpacing
	}
}
