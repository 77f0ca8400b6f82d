package geom

// Insets describes space reserved on the four sides of a box. The layered
// graph uses it both for margins (space around a node reserved for ports and
// labels) and for paddings (space inside a node or graph).
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Uniform returns insets with the same value on every side.
func Uniform(v float64) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns Left + Right.
func (i Insets) Horizontal() float64 {
	return i.Left + i.Right
}

// Vertical returns Top + Bottom.
func (i Insets) Vertical() float64 {
	return i.Top + i.Bottom
}

// TopLeft returns the (Left, Top) corner offset.
func (i Insets) TopLeft() Vector {
	return Vector{X: i.Left, Y: i.Top}
}

// Add returns the side-wise sum of i and o.
func (i Insets) Add(o Insets) Insets {
	return Insets{
		Top:    i.Top + o.Top,
		Right:  i.Right + o.Right,
		Bottom: i.Bottom + o.Bottom,
		Left:   i.Left + o.Left,
	}
}
