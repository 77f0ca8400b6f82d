package lgraph

// Spacing identifies one of the distances layout phases keep between
// elements.
type Spacing int

const (
	SpacingNodeNode Spacing = iota
	SpacingNodeNodeBetweenLayers
	SpacingEdgeEdge
	SpacingEdgeNode
	SpacingEdgeLabel
	SpacingLabelLabel
	SpacingLabelNode
	SpacingPortPort
	SpacingNodeSelfLoop
)

var spacingNames = [...]string{
	"node_node", "node_node_between_layers", "edge_edge", "edge_node",
	"edge_label", "label_label", "label_node", "port_port", "node_self_loop",
}

func (s Spacing) String() string {
	if s < 0 || int(s) >= len(spacingNames) {
		return "unknown"
	}
	return spacingNames[s]
}

// ParseSpacing converts a snake_case spacing name as used in config files.
func ParseSpacing(v string) (Spacing, bool) {
	for i, n := range spacingNames {
		if n == v {
			return Spacing(i), true
		}
	}
	return 0, false
}

// Spacings maps spacing kinds to values. Missing entries fall back to
// [DefaultSpacings].
type Spacings map[Spacing]float64

// DefaultSpacings returns the default spacing table.
func DefaultSpacings() Spacings {
	return Spacings{
		SpacingNodeNode:              20,
		SpacingNodeNodeBetweenLayers: 20,
		SpacingEdgeEdge:              10,
		SpacingEdgeNode:              10,
		SpacingEdgeLabel:             2,
		SpacingLabelLabel:            0,
		SpacingLabelNode:             5,
		SpacingPortPort:              10,
		SpacingNodeSelfLoop:          10,
	}
}

// Get returns the value for s, falling back to the default table.
func (sp Spacings) Get(s Spacing) float64 {
	if v, ok := sp[s]; ok {
		return v
	}
	return DefaultSpacings()[s]
}
