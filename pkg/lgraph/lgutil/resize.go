package lgutil

import (
	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// ResizeNode sets the node size and optionally moves ports and labels along.
//
// Ports on the east and south sides move with their border; unless port
// positions are fixed, coordinates along a side scale with the node. Labels
// are classified by the node's diagonals: labels in the right triangle move
// with the east border, labels in the bottom triangle with the south border,
// everything else stays. The node is marked as fixed in size afterwards.
//
// Ratios and differences are computed in single precision. A zero old
// dimension scales nothing along that axis and leaves the labels in place.
func ResizeNode(n *lgraph.Node, size geom.Vector, movePorts, moveLabels bool) {
	old := n.Size
	wr, hr := 1.0, 1.0
	if old.X != 0 {
		wr = float64(float32(size.X / old.X))
	}
	if old.Y != 0 {
		hr = float64(float32(size.Y / old.Y))
	}
	wd := float64(float32(size.X - old.X))
	hd := float64(float32(size.Y - old.Y))

	if movePorts {
		fixed := n.PortConstraints.IsPosFixed()
		for _, p := range n.Ports() {
			switch p.Side() {
			case lgraph.North:
				if !fixed {
					p.Position.X *= wr
				}
			case lgraph.East:
				p.Position.X += wd
				if !fixed {
					p.Position.Y *= hr
				}
			case lgraph.South:
				if !fixed {
					p.Position.X *= wr
				}
				p.Position.Y += hd
			case lgraph.West:
				if !fixed {
					p.Position.Y *= hr
				}
			}
		}
	}

	if moveLabels && old.X != 0 && old.Y != 0 {
		for _, l := range n.Labels() {
			midx := l.Position.X + l.Size.X/2
			midy := l.Position.Y + l.Size.Y/2
			wp := midx / old.X
			hp := midy / old.Y
			if wp+hp < 1 {
				continue
			}
			switch {
			case wp-hp > 0 && midy >= 0:
				l.Position.X += wd
				l.Position.Y += hd * hp
			case wp-hp < 0 && midx >= 0:
				l.Position.X += wd * wp
				l.Position.Y += hd
			}
		}
	}

	n.Size = size
	n.SizeFixed = true
}
