package selfloop

// RoutingDirection tells which way a loop leaves a port: RouteRight follows
// the node border clockwise, RouteLeft counter-clockwise.
type RoutingDirection int

const (
	RouteRight RoutingDirection = iota
	RouteLeft
	// RouteBoth marks the single port of a loop that starts and ends there.
	RouteBoth
)

func (d RoutingDirection) String() string {
	switch d {
	case RouteRight:
		return "RIGHT"
	case RouteLeft:
		return "LEFT"
	case RouteBoth:
		return "BOTH"
	}
	return "UNKNOWN"
}

// ComponentType classifies a component by the sides its route touches.
type ComponentType int

const (
	// NonLoop components have a single port.
	NonLoop ComponentType = iota
	// Side loops start and end on the same side without wrapping.
	Side
	// Corner loops connect two adjacent sides around their shared corner.
	Corner
	// Opposing loops connect opposite sides.
	Opposing
	// ThreeCorner loops connect adjacent sides the long way round.
	ThreeCorner
	// FourCorner loops start and end on the same side and wrap the node.
	FourCorner
)

var componentTypeNames = [...]string{"NON_LOOP", "SIDE", "CORNER", "OPPOSING", "THREE_CORNER", "FOUR_CORNER"}

func (t ComponentType) String() string {
	if t < 0 || int(t) >= len(componentTypeNames) {
		return "UNKNOWN"
	}
	return componentTypeNames[t]
}

// Corners returns how many node corners a route of this type goes around.
func (t ComponentType) Corners() int {
	switch t {
	case Corner:
		return 1
	case Opposing:
		return 2
	case ThreeCorner:
		return 3
	case FourCorner:
		return 4
	}
	return 0
}

// Alignment is the placement of a candidate along its segment.
type Alignment int

const (
	Centered Alignment = iota
	LeftOrTop
	RightOrBottom
)

func (a Alignment) String() string {
	switch a {
	case Centered:
		return "CENTERED"
	case LeftOrTop:
		return "LEFT_OR_TOP"
	case RightOrBottom:
		return "RIGHT_OR_BOTTOM"
	}
	return "UNKNOWN"
}

// TextAlignment aligns the constituent labels of a merged label against
// each other.
type TextAlignment int

const (
	TextCenter TextAlignment = iota
	TextLeft
	TextRight
)

func (a TextAlignment) String() string {
	switch a {
	case TextLeft:
		return "LEFT"
	case TextRight:
		return "RIGHT"
	}
	return "CENTER"
}

func (a Alignment) text() TextAlignment {
	switch a {
	case LeftOrTop:
		return TextLeft
	case RightOrBottom:
		return TextRight
	}
	return TextCenter
}
