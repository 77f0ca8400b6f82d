package lgraph

import (
	"fmt"

	"github.com/matzehuels/lgraph/pkg/geom"
)

// LabelOwner is implemented by [Node], [Port] and [Edge].
type LabelOwner interface {
	labelStore() *[]*Label
}

// Label is a text box attached to a node, port or edge. Position is the
// top-left corner; for edge labels it is in graph coordinates, otherwise
// relative to the owner.
type Label struct {
	id    int
	owner LabelOwner

	Text      string
	Size      geom.Vector
	Position  geom.Vector
	Placement LabelPlacement
}

// ID returns the label's arena-unique identifier.
func (l *Label) ID() int { return l.id }

func (l *Label) String() string {
	if l.Text == "" {
		return fmt.Sprintf("l%d", l.id)
	}
	return fmt.Sprintf("l_%s", l.Text)
}

// Owner returns the element the label belongs to, or nil.
func (l *Label) Owner() LabelOwner { return l.owner }

// SetOwner moves l to the end of o's label list. Pass a nil interface to
// detach the label.
func (l *Label) SetOwner(o LabelOwner) {
	if l.owner == o {
		return
	}
	if l.owner != nil {
		s := l.owner.labelStore()
		*s = remove(*s, l)
	}
	l.owner = o
	if o != nil {
		s := o.labelStore()
		*s = append(*s, l)
	}
}
