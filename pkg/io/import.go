package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/lgraph/lgutil"
)

// ReadJSON decodes a diagram from r into a new layered graph with its own
// arena.
//
// Children with children or edges of their own become nodes with nested
// graphs. Every edge must have exactly one source and one target, given as
// the id of a node or port at the level the edge is listed on, or of a port
// of the node listing it. Labels without a size are measured.
//
// When edges inside a nested graph end at ports of its parent node, every
// port of that parent is represented inside the graph by an external port
// dummy, and those edges are moved to the dummies' ports. The dummy's
// Origin is the parent port it stands for.
//
// ReadJSON returns an [errors.Error] with code
//   - INVALID_FORMAT when the JSON is malformed,
//   - INVALID_INPUT for duplicate or unknown ids, bad sizes and bad options,
//   - UNSUPPORTED_HYPEREDGE for edges with several sources or targets,
//   - UNSUPPORTED_INPUT for edges without ends or crossing hierarchy levels.
//
// No partial graph is returned on error. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*lgraph.Graph, error) {
	var root diagram
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram")
	}
	m, err := defaultMeasurer()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}
	return newImporter(m).run(&root)
}

// ImportJSON reads the diagram file at path. See [ReadJSON].
func ImportJSON(path string) (*lgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

type importer struct {
	measurer *Measurer
	arena    *lgraph.Arena
	nodes    map[string]*lgraph.Node
	ports    map[string]*lgraph.Port
	ids      map[string]bool
	root     *lgraph.Graph
	graphs   []*lgraph.Graph
	// external holds the edges of each nested graph that end at a port of
	// the graph's parent, in import order.
	external map[*lgraph.Graph][]*lgraph.Edge
	extOrder []*lgraph.Graph
}

func newImporter(m *Measurer) *importer {
	return &importer{
		measurer: m,
		arena:    lgraph.NewArena(),
		nodes:    make(map[string]*lgraph.Node),
		ports:    make(map[string]*lgraph.Port),
		ids:      make(map[string]bool),
		external: make(map[*lgraph.Graph][]*lgraph.Edge),
	}
}

func (im *importer) run(root *diagram) (*lgraph.Graph, error) {
	g := im.arena.NewGraph()
	g.Name = root.ID
	im.root = g
	im.graphs = append(im.graphs, g)
	if err := applyGraphOptions(g, root.LayoutOptions); err != nil {
		return nil, err
	}
	if err := im.children(g, root); err != nil {
		return nil, err
	}
	if err := im.edges(g, root); err != nil {
		return nil, err
	}
	for _, nested := range im.extOrder {
		im.externalPorts(nested)
	}
	// Positions were read relative to each graph's outer border.
	for _, graph := range im.graphs {
		lgutil.OffsetGraph(graph, -graph.Padding.Left, -graph.Padding.Top)
	}
	return g, nil
}

// children imports the children of d into g, depth first.
func (im *importer) children(g *lgraph.Graph, d *diagram) error {
	for _, c := range d.Children {
		if err := im.claim(c.ID); err != nil {
			return err
		}
		if err := dimensions("node "+c.ID, c.Width, c.Height); err != nil {
			return err
		}

		n := g.NewNode()
		n.Name = c.ID
		n.Position = geom.V(deref(c.X), deref(c.Y))
		n.Size = geom.V(c.Width, c.Height)
		if err := applyNodeOptions(n, c.LayoutOptions); err != nil {
			return err
		}
		im.nodes[c.ID] = n

		for _, l := range c.Labels {
			n.AddLabel(im.label(l))
		}
		for _, cp := range c.Ports {
			if err := im.port(n, cp); err != nil {
				return err
			}
		}

		if len(c.Children) > 0 || len(c.Edges) > 0 {
			nested := n.NewNestedGraph()
			nested.Name = c.ID
			im.graphs = append(im.graphs, nested)
			inherit(nested, g)
			if err := applyGraphOptions(nested, c.LayoutOptions); err != nil {
				return err
			}
			if err := im.children(nested, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (im *importer) port(n *lgraph.Node, cp port) error {
	if err := im.claim(cp.ID); err != nil {
		return err
	}
	if err := dimensions("port "+cp.ID, cp.Width, cp.Height); err != nil {
		return err
	}
	p := n.NewPort()
	p.Name = cp.ID
	p.Position = geom.V(deref(cp.X), deref(cp.Y))
	p.Size = geom.V(cp.Width, cp.Height)
	p.SetSide(lgraph.ParsePortSide(cp.Side))

	var anchor *geom.Vector
	if v, ok := option(cp.LayoutOptions, "port.anchor"); ok {
		a, err := parsePair(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "port %s anchor", cp.ID)
		}
		anchor = &a
	}
	if v, ok := option(cp.LayoutOptions, "port.borderOffset"); ok {
		off, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "port %s border offset", cp.ID)
		}
		p.BorderOffset = off
	}
	dir := lgraph.DirUndefined
	if g := n.Graph(); g != nil {
		dir = lgutil.Direction(g)
	}
	lgutil.InitializePort(p, n.PortConstraints, dir, anchor)

	for _, l := range cp.Labels {
		p.AddLabel(im.label(l))
	}
	im.ports[cp.ID] = p
	return nil
}

func (im *importer) label(l label) *lgraph.Label {
	size := geom.V(l.Width, l.Height)
	if size.X == 0 && size.Y == 0 {
		size = im.measurer.Measure(l.Text)
	}
	out := im.arena.NewSizedLabel(l.Text, size.X, size.Y)
	out.Position = geom.V(deref(l.X), deref(l.Y))
	return out
}

// edges imports the edges listed on d into g, then those of every
// descendant.
func (im *importer) edges(g *lgraph.Graph, d *diagram) error {
	for _, e := range d.Edges {
		if err := im.edge(g, e); err != nil {
			return err
		}
	}
	for _, c := range d.Children {
		n := im.nodes[c.ID]
		if nested := n.NestedGraph(); nested != nil {
			if err := im.edges(nested, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (im *importer) edge(g *lgraph.Graph, e edge) error {
	if len(e.Sources) > 1 || len(e.Targets) > 1 {
		return errors.New(errors.ErrCodeUnsupportedHyperedge,
			"edge %s has %d sources and %d targets", e.ID, len(e.Sources), len(e.Targets))
	}
	if len(e.Sources) == 0 || len(e.Targets) == 0 {
		return errors.New(errors.ErrCodeUnsupportedInput, "edge %s has no source or no target", e.ID)
	}
	if e.ID != "" {
		if err := im.claim(e.ID); err != nil {
			return err
		}
	}

	src, err := im.endpoint(g, e.ID, e.Sources[0], lgraph.PortOutput)
	if err != nil {
		return err
	}
	tgt, err := im.endpoint(g, e.ID, e.Targets[0], lgraph.PortInput)
	if err != nil {
		return err
	}

	out := im.arena.NewEdge()
	out.Name = e.ID
	out.SetSource(src)
	out.SetTarget(tgt)
	for _, l := range e.Labels {
		out.AddLabel(im.label(l))
	}
	if parent := g.Parent(); parent != nil && (src.Node() == parent || tgt.Node() == parent) {
		if _, ok := im.external[g]; !ok {
			im.extOrder = append(im.extOrder, g)
		}
		im.external[g] = append(im.external[g], out)
	}

	// Sections of a previous layout hold absolute coordinates. Node
	// positions are still unpadded here, so subtracting those of the
	// enclosing nodes leaves g's coordinates.
	if len(e.Sections) > 0 {
		for _, b := range e.Sections[0].BendPoints {
			v := geom.V(b.X, b.Y)
			for n := g.Parent(); n != nil; n = n.Graph().Parent() {
				v = v.Minus(n.Position)
			}
			out.BendPoints = append(out.BendPoints, v)
		}
	}
	return nil
}

// externalPorts creates an external port dummy in g for every port of g's
// parent node and moves the edges of g that end at a parent port over to
// the port of its dummy. The dummy's side follows the port constraints of
// the parent, or the port's net flow when its side is free.
func (im *importer) externalPorts(g *lgraph.Graph) {
	parent := g.Parent()
	dir := lgutil.Direction(g)
	moved := make(map[*lgraph.Edge]bool)
	for _, e := range im.external[g] {
		moved[e] = true
	}

	for _, p := range parent.Ports() {
		var flow []lgutil.FlowEdge
		for _, e := range p.Outgoing() {
			flow = append(flow, lgutil.FlowEdge{
				Outgoing: true,
				SelfLoop: e.Target() == p,
				Inside:   inside(e.Target().Node(), g),
			})
		}
		for _, e := range p.Incoming() {
			flow = append(flow, lgutil.FlowEdge{
				SelfLoop: e.Source() == p,
				Inside:   inside(e.Source().Node(), g),
			})
		}

		index := p.Index()
		ext := &lgutil.ExternalPort{
			NetFlow:      lgutil.NetFlow(flow),
			Position:     p.Position,
			Size:         p.Size,
			Index:        &index,
			BorderOffset: p.BorderOffset,
			Origin:       p,
		}
		ext.Side = lgutil.ExternalPortSide(p.Side(), parent.PortConstraints, dir, ext.NetFlow, lgutil.CalcPortSide(p, dir))
		if p.ExplicitAnchor() {
			a := p.Anchor()
			ext.Anchor = &a
		}
		dummy := lgutil.CreateExternalPortDummy(ext, parent.PortConstraints, parent.Size, dir, g)
		dummy.Name = p.Name
		dp := dummy.Ports()[0]

		for _, e := range p.Outgoing() {
			if moved[e] {
				e.SetSourceAt(len(dp.Outgoing()), dp)
			}
		}
		for _, e := range p.Incoming() {
			if moved[e] {
				e.SetTargetAt(len(dp.Incoming()), dp)
			}
		}
	}
}

// inside reports whether n belongs to g or is g's parent.
func inside(n *lgraph.Node, g *lgraph.Graph) bool {
	return n != nil && (n.Graph() == g || n == g.Parent())
}

// endpoint resolves id to a port usable by an edge listed in g. Node ids
// get a fresh port, or the node's collector port when edges are merged.
func (im *importer) endpoint(g *lgraph.Graph, edgeID, id string, t lgraph.PortType) (*lgraph.Port, error) {
	if n, ok := im.nodes[id]; ok {
		if n.Graph() != g {
			if below(n, g) {
				return nil, errors.New(errors.ErrCodeUnsupportedInput,
					"edge %s connects node %s nested below its hierarchy level", edgeID, id)
			}
			return nil, errors.New(errors.ErrCodeUnsupportedInput,
				"edge %s connects node %s outside its hierarchy level", edgeID, id)
		}
		return lgutil.CreatePort(n, nil, t, g), nil
	}
	if p, ok := im.ports[id]; ok {
		n := p.Node()
		if n.Graph() != g && n != g.Parent() {
			return nil, errors.New(errors.ErrCodeUnsupportedInput,
				"edge %s connects port %s outside its hierarchy level", edgeID, id)
		}
		return p, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "edge %s references unknown element %q", edgeID, id)
}

// below reports whether n sits in a graph nested inside one of g's nodes.
func below(n *lgraph.Node, g *lgraph.Graph) bool {
	for _, m := range g.Nodes() {
		if lgutil.IsDescendant(n, m) {
			return true
		}
	}
	return false
}

func (im *importer) claim(id string) error {
	if err := errors.ValidateElementID(id); err != nil {
		return err
	}
	if im.ids[id] {
		return errors.New(errors.ErrCodeInvalidInput, "duplicate id %q", id)
	}
	im.ids[id] = true
	return nil
}

func dimensions(what string, w, h float64) error {
	if err := errors.ValidateDimension(what+" width", w); err != nil {
		return err
	}
	return errors.ValidateDimension(what+" height", h)
}

// inherit copies the settings a nested graph takes from its parent graph
// unless overridden by its own options.
func inherit(nested, parent *lgraph.Graph) {
	nested.Direction = parent.Direction
	nested.MergeEdges = parent.MergeEdges
	nested.AspectRatio = parent.AspectRatio
	nested.PortConstraints = parent.PortConstraints
	nested.Spacings = make(lgraph.Spacings, len(parent.Spacings))
	for k, v := range parent.Spacings {
		nested.Spacings[k] = v
	}
}

// option looks key up with and without the "elk." prefix.
func option(opts map[string]string, key string) (string, bool) {
	if v, ok := opts[key]; ok {
		return v, true
	}
	v, ok := opts["elk."+key]
	return v, ok
}

func applyGraphOptions(g *lgraph.Graph, opts map[string]string) error {
	for k, v := range opts {
		key := strings.TrimPrefix(k, "elk.")
		switch {
		case key == "direction":
			d := lgraph.ParseDirection(v)
			if d == lgraph.DirUndefined && !strings.EqualFold(v, "UNDEFINED") {
				return errors.New(errors.ErrCodeInvalidInput, "graph %s: unknown direction %q", g.Name, v)
			}
			g.Direction = d
		case key == "aspectRatio":
			r, err := strconv.ParseFloat(v, 64)
			if err != nil || r <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "graph %s: invalid aspect ratio %q", g.Name, v)
			}
			g.AspectRatio = r
		case key == "layered.mergeEdges" || key == "mergeEdges":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "graph %s: invalid mergeEdges %q", g.Name, v)
			}
			g.MergeEdges = b
		case key == "padding":
			p, err := parsePadding(v)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "graph %s: invalid padding", g.Name)
			}
			g.Padding = p
		case strings.HasPrefix(key, "spacing.") && !strings.HasPrefix(key, "spacing.individual."):
			s, val, err := parseSpacing(key, v)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "graph %s", g.Name)
			}
			if g.Spacings == nil {
				g.Spacings = lgraph.Spacings{}
			}
			g.Spacings[s] = val
		}
	}
	return nil
}

func applyNodeOptions(n *lgraph.Node, opts map[string]string) error {
	if v, ok := option(opts, "portConstraints"); ok {
		c := lgraph.ParsePortConstraints(v)
		if c == lgraph.ConstraintsUndefined && !strings.EqualFold(v, "UNDEFINED") {
			return errors.New(errors.ErrCodeInvalidInput, "node %s: unknown port constraints %q", n.Name, v)
		}
		n.PortConstraints = c
	}
	for k, v := range opts {
		key := strings.TrimPrefix(k, "elk.")
		if !strings.HasPrefix(key, "spacing.individual.") {
			continue
		}
		s, val, err := parseSpacing(key, v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %s", n.Name)
		}
		if n.Spacings == nil {
			n.Spacings = lgraph.Spacings{}
		}
		n.Spacings[s] = val
	}
	return nil
}

// parseSpacing reads keys like "spacing.nodeNode" or
// "spacing.individual.edgeEdge".
func parseSpacing(key, v string) (lgraph.Spacing, float64, error) {
	name := snake(key[strings.LastIndexByte(key, '.')+1:])
	s, ok := lgraph.ParseSpacing(name)
	if !ok {
		return 0, 0, fmt.Errorf("unknown spacing %q", key)
	}
	val, err := strconv.ParseFloat(v, 64)
	if err != nil || val < 0 {
		return 0, 0, fmt.Errorf("invalid %s value %q", key, v)
	}
	return s, val, nil
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parsePadding reads a single number or "[top=1,left=2,bottom=3,right=4]".
func parsePadding(v string) (geom.Insets, error) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "[") {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			return geom.Insets{}, fmt.Errorf("want a non-negative number, got %q", v)
		}
		return geom.Uniform(p), nil
	}

	var in geom.Insets
	for _, part := range strings.Split(strings.Trim(v, "[]"), ",") {
		k, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return geom.Insets{}, fmt.Errorf("want key=value, got %q", part)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return geom.Insets{}, err
		}
		switch strings.TrimSpace(k) {
		case "top":
			in.Top = f
		case "left":
			in.Left = f
		case "bottom":
			in.Bottom = f
		case "right":
			in.Right = f
		default:
			return geom.Insets{}, fmt.Errorf("unknown side %q", k)
		}
	}
	return in, nil
}

// parsePair reads "(x,y)" or "x,y".
func parsePair(v string) (geom.Vector, error) {
	v = strings.Trim(strings.TrimSpace(v), "()")
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return geom.Vector{}, fmt.Errorf("want x,y, got %q", v)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.Vector{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.Vector{}, err
	}
	return geom.V(x, y), nil
}
