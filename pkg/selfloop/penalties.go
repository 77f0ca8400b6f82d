package selfloop

import "github.com/matzehuels/lgraph/pkg/lgraph"

// Penalties weights the terms of the placement objective. Side and
// alignment values only order the candidates among themselves; the crossing
// weights dominate them.
type Penalties struct {
	North float64 `toml:"north" yaml:"north"`
	South float64 `toml:"south" yaml:"south"`
	East  float64 `toml:"east" yaml:"east"`
	West  float64 `toml:"west" yaml:"west"`

	Centered      float64 `toml:"centered" yaml:"centered"`
	LeftOrTop     float64 `toml:"left_or_top" yaml:"left_or_top"`
	RightOrBottom float64 `toml:"right_or_bottom" yaml:"right_or_bottom"`

	// ShortSegment is added to candidates next to a port.
	ShortSegment float64 `toml:"short_segment" yaml:"short_segment"`

	LabelEdgeCrossing  float64 `toml:"label_edge_crossing" yaml:"label_edge_crossing"`
	LabelLabelCrossing float64 `toml:"label_label_crossing" yaml:"label_label_crossing"`
}

// DefaultPenalties returns the stock weights.
func DefaultPenalties() Penalties {
	return Penalties{
		North:              0,
		South:              0.01,
		East:               0.02,
		West:               0.03,
		Centered:           0,
		LeftOrTop:          0.1,
		RightOrBottom:      0.2,
		ShortSegment:       0.3,
		LabelEdgeCrossing:  10,
		LabelLabelCrossing: 40,
	}
}

// Side returns the preference penalty of a node side.
func (p Penalties) Side(s lgraph.PortSide) float64 {
	switch s {
	case lgraph.North:
		return p.North
	case lgraph.South:
		return p.South
	case lgraph.East:
		return p.East
	case lgraph.West:
		return p.West
	}
	return 0
}

// Alignment returns the preference penalty of a candidate alignment.
func (p Penalties) Alignment(a Alignment) float64 {
	switch a {
	case LeftOrTop:
		return p.LeftOrTop
	case RightOrBottom:
		return p.RightOrBottom
	}
	return p.Centered
}
