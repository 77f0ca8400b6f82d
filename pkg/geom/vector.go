// Package geom provides the small mutable geometry values shared by the
// layered graph model: points, bend point chains and box insets.
//
// All coordinates are float64 in drawing units. Values are plain structs;
// methods with pointer receivers mutate in place and return the receiver so
// calls can be chained, the value-receiver helpers return fresh copies.
package geom

import "math"

// Vector is a 2D point or direction.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vector{X: x, Y: y}.
func V(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add adds o to v in place.
func (v *Vector) Add(o Vector) *Vector {
	v.X += o.X
	v.Y += o.Y
	return v
}

// Sub subtracts o from v in place.
func (v *Vector) Sub(o Vector) *Vector {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// Scale multiplies both coordinates by f in place.
func (v *Vector) Scale(f float64) *Vector {
	v.X *= f
	v.Y *= f
	return v
}

// Translate shifts v by (dx, dy) in place.
func (v *Vector) Translate(dx, dy float64) *Vector {
	v.X += dx
	v.Y += dy
	return v
}

// Normalize scales v to unit length. A zero vector is left unchanged.
func (v *Vector) Normalize() *Vector {
	l := v.Length()
	if l > 0 {
		v.X /= l
		v.Y /= l
	}
	return v
}

// Bound clamps v into the rectangle [minX,maxX] x [minY,maxY].
func (v *Vector) Bound(minX, minY, maxX, maxY float64) *Vector {
	v.X = math.Min(math.Max(v.X, minX), maxX)
	v.Y = math.Min(math.Max(v.Y, minY), maxY)
	return v
}

// Plus returns v + o.
func (v Vector) Plus(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

// Minus returns v - o.
func (v Vector) Minus(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

// Times returns v scaled by f.
func (v Vector) Times(f float64) Vector {
	return Vector{v.X * f, v.Y * f}
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between v and o.
func (v Vector) Distance(o Vector) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Direction returns the unit vector pointing from v to o, or the zero vector
// when both points coincide.
func (v Vector) Direction(o Vector) Vector {
	d := o.Minus(v)
	d.Normalize()
	return d
}

// Equal reports whether v and o are within eps of each other on both axes.
func (v Vector) Equal(o Vector, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}
