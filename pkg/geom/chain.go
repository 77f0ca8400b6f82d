package geom

import "slices"

// Chain is an ordered sequence of points, used for edge bend points and
// junction points.
type Chain []Vector

// Clone returns an independent copy of c.
func (c Chain) Clone() Chain {
	return slices.Clone(c)
}

// Reverse reverses c in place.
func (c Chain) Reverse() {
	slices.Reverse(c)
}

// Offset translates every point of c in place.
func (c Chain) Offset(dx, dy float64) {
	for i := range c {
		c[i].X += dx
		c[i].Y += dy
	}
}

// Length returns the total length of the polyline through c.
func (c Chain) Length() float64 {
	total := 0.0
	for i := 1; i < len(c); i++ {
		total += c[i-1].Distance(c[i])
	}
	return total
}
