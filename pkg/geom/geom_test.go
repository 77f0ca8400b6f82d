package geom

import (
	"math"
	"testing"
)

func TestVectorArithmetic(t *testing.T) {
	v := V(1, 2)
	v.Add(V(3, 4)).Scale(2).Sub(V(1, 1))

	if want := V(7, 11); v != want {
		t.Errorf("v = %v, want %v", v, want)
	}
	if got := V(3, 4).Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := V(0, 0).Distance(V(3, 4)); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestVectorNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vector
		want Vector
	}{
		{"axis", V(0, -7), V(0, -1)},
		{"diagonal", V(3, 4), V(0.6, 0.8)},
		{"zero", V(0, 0), V(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.in
			v.Normalize()
			if !v.Equal(tt.want, 1e-9) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, v, tt.want)
			}
		})
	}
}

func TestVectorBound(t *testing.T) {
	v := V(-5, 120)
	v.Bound(0, 0, 100, 50)
	if want := V(0, 50); v != want {
		t.Errorf("Bound() = %v, want %v", v, want)
	}
}

func TestChainReverseAndOffset(t *testing.T) {
	c := Chain{V(0, 0), V(10, 0), V(10, 10)}
	orig := c.Clone()

	c.Reverse()
	if c[0] != orig[2] || c[2] != orig[0] {
		t.Errorf("Reverse() = %v, want reversed %v", c, orig)
	}

	c.Offset(1, 2)
	if want := V(11, 12); c[0] != want {
		t.Errorf("Offset() first = %v, want %v", c[0], want)
	}
	if orig[2] != V(10, 10) {
		t.Error("Clone() should be independent of the original")
	}
	if got := orig.Length(); math.Abs(got-20) > 1e-9 {
		t.Errorf("Length() = %v, want 20", got)
	}
}

func TestInsets(t *testing.T) {
	i := Insets{Top: 1, Right: 2, Bottom: 3, Left: 4}
	if i.Horizontal() != 6 || i.Vertical() != 4 {
		t.Errorf("Horizontal/Vertical = %v/%v, want 6/4", i.Horizontal(), i.Vertical())
	}
	if got := i.Add(Uniform(1)); got != (Insets{2, 3, 4, 5}) {
		t.Errorf("Add() = %v", got)
	}
	if got := i.TopLeft(); got != V(4, 1) {
		t.Errorf("TopLeft() = %v, want (4,1)", got)
	}
}
