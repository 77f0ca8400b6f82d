package lgraph

import (
	"strings"

	"github.com/matzehuels/lgraph/pkg/geom"
)

// NodeType discriminates original nodes from the dummy nodes layout phases
// insert. Phases switch on the tag explicitly.
type NodeType int

const (
	// NodeNormal is a node from the input diagram.
	NodeNormal NodeType = iota
	// NodeLongEdge splits an edge spanning several layers.
	NodeLongEdge
	// NodeExternalPort stands for a port of the graph's parent node.
	NodeExternalPort
	// NodeNorthSouthPort represents a north or south port in its own slot.
	NodeNorthSouthPort
	// NodeLabel reserves space for an edge label between layers.
	NodeLabel
	// NodeBigNode is one slice of a node wider than a layer.
	NodeBigNode
	// NodeBreakingPoint marks where a wrapped graph is cut.
	NodeBreakingPoint
)

var nodeTypeNames = [...]string{"NORMAL", "LONG_EDGE", "EXTERNAL_PORT", "NORTH_SOUTH_PORT", "LABEL", "BIG_NODE", "BREAKING_POINT"}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return "UNKNOWN"
	}
	return nodeTypeNames[t]
}

// IsDummy reports whether t is any synthetic node type.
func (t NodeType) IsDummy() bool { return t != NodeNormal }

// Color returns a Graphviz color name used when drawing debug output.
func (t NodeType) Color() string {
	switch t {
	case NodeLongEdge:
		return "gold"
	case NodeExternalPort:
		return "cadetblue"
	case NodeNorthSouthPort:
		return "darkolivegreen3"
	case NodeLabel:
		return "lightblue"
	case NodeBigNode:
		return "orchid"
	case NodeBreakingPoint:
		return "salmon"
	default:
		return "white"
	}
}

// PortSide is the side of its node a port is placed on.
type PortSide int

const (
	SideUndefined PortSide = iota
	North
	East
	South
	West
)

// Sides lists the four defined sides in clockwise order starting at North.
var Sides = [4]PortSide{North, East, South, West}

var portSideNames = [...]string{"UNDEFINED", "NORTH", "EAST", "SOUTH", "WEST"}

func (s PortSide) String() string {
	if !s.IsValid() {
		return "INVALID"
	}
	return portSideNames[s]
}

// IsValid reports whether s is one of the declared constants.
func (s PortSide) IsValid() bool { return s >= SideUndefined && s <= West }

// Right returns the next side in clockwise order.
func (s PortSide) Right() PortSide {
	switch s {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	}
	return SideUndefined
}

// Left returns the next side in counter-clockwise order.
func (s PortSide) Left() PortSide {
	switch s {
	case North:
		return West
	case East:
		return North
	case South:
		return East
	case West:
		return South
	}
	return SideUndefined
}

// Opposed returns the side across the node.
func (s PortSide) Opposed() PortSide {
	switch s {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	}
	return SideUndefined
}

// AreAdjacent reports whether s and o share a node corner.
func (s PortSide) AreAdjacent(o PortSide) bool {
	return s != SideUndefined && o != SideUndefined && (s.Left() == o || s.Right() == o)
}

// Vector returns the outward unit vector of the side. SideUndefined yields
// the zero vector.
func (s PortSide) Vector() geom.Vector {
	switch s {
	case North:
		return geom.V(0, -1)
	case East:
		return geom.V(1, 0)
	case South:
		return geom.V(0, 1)
	case West:
		return geom.V(-1, 0)
	}
	return geom.Vector{}
}

// IsVertical reports whether ports on s leave the node vertically.
func (s PortSide) IsVertical() bool { return s == North || s == South }

// ParsePortSide converts a case-insensitive side name.
func ParsePortSide(v string) PortSide {
	for i, n := range portSideNames {
		if strings.EqualFold(n, v) {
			return PortSide(i)
		}
	}
	return SideUndefined
}

// Direction is the overall flow direction of a layered drawing.
type Direction int

const (
	DirUndefined Direction = iota
	DirRight
	DirLeft
	DirDown
	DirUp
)

var directionNames = [...]string{"UNDEFINED", "RIGHT", "LEFT", "DOWN", "UP"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "UNDEFINED"
	}
	return directionNames[d]
}

// IsHorizontal reports whether layers are laid out left to right or right to left.
func (d Direction) IsHorizontal() bool { return d == DirLeft || d == DirRight }

// IsVertical reports whether layers are laid out top down or bottom up.
func (d Direction) IsVertical() bool { return d == DirUp || d == DirDown }

// ParseDirection converts a case-insensitive direction name.
func ParseDirection(v string) Direction {
	for i, n := range directionNames {
		if strings.EqualFold(n, v) {
			return Direction(i)
		}
	}
	return DirUndefined
}

// SideFromDirection returns the side edges leave a node towards when flowing
// in direction d.
func SideFromDirection(d Direction) PortSide {
	switch d {
	case DirRight:
		return East
	case DirLeft:
		return West
	case DirDown:
		return South
	case DirUp:
		return North
	}
	return SideUndefined
}

// PortType is the flow role of a port.
type PortType int

const (
	PortUndefined PortType = iota
	PortInput
	PortOutput
)

func (t PortType) String() string {
	switch t {
	case PortInput:
		return "INPUT"
	case PortOutput:
		return "OUTPUT"
	}
	return "UNDEFINED"
}

// PortConstraints says how much freedom layout phases have with a node's ports.
// The constants are ordered from least to most constrained.
type PortConstraints int

const (
	ConstraintsUndefined PortConstraints = iota
	ConstraintsFree
	ConstraintsFixedSide
	ConstraintsFixedOrder
	ConstraintsFixedRatio
	ConstraintsFixedPos
)

var constraintNames = [...]string{"UNDEFINED", "FREE", "FIXED_SIDE", "FIXED_ORDER", "FIXED_RATIO", "FIXED_POS"}

func (c PortConstraints) String() string {
	if c < 0 || int(c) >= len(constraintNames) {
		return "UNDEFINED"
	}
	return constraintNames[c]
}

// IsSideFixed reports whether port sides may not change.
func (c PortConstraints) IsSideFixed() bool { return c >= ConstraintsFixedSide }

// IsOrderFixed reports whether the port order around the node may not change.
func (c PortConstraints) IsOrderFixed() bool { return c >= ConstraintsFixedOrder }

// IsRatioFixed reports whether port positions scale with the node.
func (c PortConstraints) IsRatioFixed() bool { return c == ConstraintsFixedRatio }

// IsPosFixed reports whether port positions are pinned.
func (c PortConstraints) IsPosFixed() bool { return c == ConstraintsFixedPos }

// ParsePortConstraints converts a case-insensitive constraint name.
func ParsePortConstraints(v string) PortConstraints {
	for i, n := range constraintNames {
		if strings.EqualFold(n, v) {
			return PortConstraints(i)
		}
	}
	return ConstraintsUndefined
}

// LayerConstraint pins a node to the first or last layer.
type LayerConstraint int

const (
	LayerNone LayerConstraint = iota
	LayerFirst
	LayerFirstSeparate
	LayerLast
	LayerLastSeparate
)

// InLayerConstraint pins a node to the top or bottom of its layer.
type InLayerConstraint int

const (
	InLayerNone InLayerConstraint = iota
	InLayerTop
	InLayerBottom
)

// EdgeConstraint restricts the edges a node may have.
type EdgeConstraint int

const (
	EdgeNone EdgeConstraint = iota
	EdgeIncomingOnly
	EdgeOutgoingOnly
)

// LabelPlacement tags where along its edge a label belongs.
type LabelPlacement int

const (
	PlacementCenter LabelPlacement = iota
	PlacementHead
	PlacementTail
)

func (p LabelPlacement) String() string {
	switch p {
	case PlacementHead:
		return "HEAD"
	case PlacementTail:
		return "TAIL"
	}
	return "CENTER"
}

// GraphProperties collects facts about a graph that phases use to decide
// whether they need to run.
type GraphProperties uint

const (
	PropExternalPorts GraphProperties = 1 << iota
	PropNorthSouthPorts
	PropHyperedges
	PropSelfLoops
	PropNonFreePorts
	PropHypernodes
)

// Has reports whether every flag of q is set.
func (p GraphProperties) Has(q GraphProperties) bool { return p&q == q }
