package io

// diagram is the JSON form of a node. The root of a document is a diagram
// whose children are the top-level nodes; its edges are the top-level edges.
type diagram struct {
	ID            string            `json:"id"`
	X             *float64          `json:"x,omitempty"`
	Y             *float64          `json:"y,omitempty"`
	Width         float64           `json:"width,omitempty"`
	Height        float64           `json:"height,omitempty"`
	LayoutOptions map[string]string `json:"layoutOptions,omitempty"`
	Ports         []port            `json:"ports,omitempty"`
	Labels        []label           `json:"labels,omitempty"`
	Children      []*diagram        `json:"children,omitempty"`
	Edges         []edge            `json:"edges,omitempty"`
}

type port struct {
	ID            string            `json:"id"`
	X             *float64          `json:"x,omitempty"`
	Y             *float64          `json:"y,omitempty"`
	Width         float64           `json:"width,omitempty"`
	Height        float64           `json:"height,omitempty"`
	Side          string            `json:"side,omitempty"`
	LayoutOptions map[string]string `json:"layoutOptions,omitempty"`
	Labels        []label           `json:"labels,omitempty"`
}

type label struct {
	ID     string   `json:"id,omitempty"`
	Text   string   `json:"text"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
}

type edge struct {
	ID       string    `json:"id"`
	Sources  []string  `json:"sources"`
	Targets  []string  `json:"targets"`
	Labels   []label   `json:"labels,omitempty"`
	Sections []section `json:"sections,omitempty"`
}

type section struct {
	ID         string  `json:"id"`
	StartPoint point   `json:"startPoint"`
	EndPoint   point   `json:"endPoint"`
	BendPoints []point `json:"bendPoints,omitempty"`
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func ptr(v float64) *float64 { return &v }

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
