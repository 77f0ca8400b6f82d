// Package config loads layout settings from TOML or YAML files.
//
// Config file locations (priority order):
//  1. $LGRAPH_CONFIG
//  2. ./lgraph.toml, ./lgraph.yaml, ./lgraph.yml
//  3. ~/.config/lgraph/config.toml
//
// A file only needs the keys it changes; everything else keeps the value
// from [Default]:
//
//	[layout]
//	direction = "DOWN"
//	spacing = { node_node = 30, node_self_loop = 12 }
//
//	[self_loops.penalties]
//	label_label_crossing = 80
//
//	[cache]
//	ttl = "24h"
//	redis = "redis://localhost:6379/0"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/lgraph/phase"
	"github.com/matzehuels/lgraph/pkg/selfloop"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "LGRAPH_CONFIG"

// Config is the complete set of file-configurable settings.
type Config struct {
	Layout    Layout    `toml:"layout" yaml:"layout"`
	SelfLoops SelfLoops `toml:"self_loops" yaml:"self_loops"`
	Cache     Cache     `toml:"cache" yaml:"cache"`
	Server    Server    `toml:"server" yaml:"server"`
}

// Layout holds graph-wide layout defaults. They fill in what the input
// diagram leaves unset.
type Layout struct {
	Direction       string             `toml:"direction" yaml:"direction"`
	AspectRatio     float64            `toml:"aspect_ratio" yaml:"aspect_ratio"`
	MergeEdges      bool               `toml:"merge_edges" yaml:"merge_edges"`
	PortConstraints string             `toml:"port_constraints" yaml:"port_constraints"`
	Spacing         map[string]float64 `toml:"spacing" yaml:"spacing"`
	// Sweeps is the number of crossing-minimization sweeps.
	Sweeps int `toml:"sweeps" yaml:"sweeps"`
}

// SelfLoops configures self-loop label placement.
type SelfLoops struct {
	Penalties selfloop.Penalties `toml:"penalties" yaml:"penalties"`
	// Trace logs every evaluated candidate at debug level.
	Trace bool `toml:"trace" yaml:"trace"`
}

// Cache configures result caching. A Redis address takes precedence over
// an SQLite database path; with neither set entries are files in Dir.
type Cache struct {
	Dir    string   `toml:"dir" yaml:"dir"`
	TTL    Duration `toml:"ttl" yaml:"ttl"`
	Redis  string   `toml:"redis" yaml:"redis"`
	SQLite string   `toml:"sqlite" yaml:"sqlite"`
	Prefix string   `toml:"prefix" yaml:"prefix"`
}

// Server configures the HTTP service.
type Server struct {
	Addr string `toml:"addr" yaml:"addr"`
	// MaxBody limits request bodies in bytes.
	MaxBody int64 `toml:"max_body" yaml:"max_body"`
}

// Default returns the built-in settings.
func Default() Config {
	spacing := make(map[string]float64)
	for s, v := range lgraph.DefaultSpacings() {
		spacing[s.String()] = v
	}
	return Config{
		Layout: Layout{
			PortConstraints: lgraph.ConstraintsFree.String(),
			Spacing:         spacing,
			Sweeps:          phase.DefaultSweeps,
		},
		SelfLoops: SelfLoops{Penalties: selfloop.DefaultPenalties()},
		Cache: Cache{
			Dir: defaultCacheDir(),
			TTL: Duration(7 * 24 * time.Hour),
		},
		Server: Server{
			Addr:    ":8080",
			MaxBody: 4 << 20,
		},
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "lgraph")
	}
	return filepath.Join(dir, "lgraph")
}

// Find returns the first existing config file in the search order, or ""
// when there is none.
func Find() string {
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	candidates := []string{"lgraph.toml", "lgraph.yaml", "lgraph.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "lgraph", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads the file at path over the defaults and validates the result.
// The extension selects the decoder: .toml, or .yaml and .yml. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown extension %q", path, filepath.Ext(path))
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks every named value and range.
func (c Config) Validate() error {
	l := c.Layout
	if l.Direction != "" && lgraph.ParseDirection(l.Direction) == lgraph.DirUndefined && !strings.EqualFold(l.Direction, "UNDEFINED") {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.direction: unknown direction %q", l.Direction)
	}
	if l.PortConstraints != "" && lgraph.ParsePortConstraints(l.PortConstraints) == lgraph.ConstraintsUndefined && !strings.EqualFold(l.PortConstraints, "UNDEFINED") {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.port_constraints: unknown value %q", l.PortConstraints)
	}
	if l.AspectRatio < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.aspect_ratio cannot be negative")
	}
	if l.Sweeps < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.sweeps cannot be negative")
	}
	for name, v := range l.Spacing {
		if _, ok := lgraph.ParseSpacing(name); !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "layout.spacing: unknown spacing %q", name)
		}
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "layout.spacing.%s cannot be negative", name)
		}
	}

	p := c.SelfLoops.Penalties
	for name, v := range map[string]float64{
		"north": p.North, "south": p.South, "east": p.East, "west": p.West,
		"centered": p.Centered, "left_or_top": p.LeftOrTop, "right_or_bottom": p.RightOrBottom,
		"short_segment": p.ShortSegment, "label_edge_crossing": p.LabelEdgeCrossing,
		"label_label_crossing": p.LabelLabelCrossing,
	} {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "self_loops.penalties.%s cannot be negative", name)
		}
	}

	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if c.Server.MaxBody < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body cannot be negative")
	}
	return nil
}

// Apply fills the settings g and its nested graphs leave unset: direction,
// aspect ratio, port constraints of graph and nodes, and missing spacings.
// Merging edges is switched on but never off.
func (c Config) Apply(g *lgraph.Graph) {
	dir := lgraph.ParseDirection(c.Layout.Direction)
	constraints := lgraph.ParsePortConstraints(c.Layout.PortConstraints)

	queue := []*lgraph.Graph{g}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.Direction == lgraph.DirUndefined {
			cur.Direction = dir
		}
		if cur.AspectRatio == 0 {
			cur.AspectRatio = c.Layout.AspectRatio
		}
		if cur.PortConstraints == lgraph.ConstraintsUndefined {
			cur.PortConstraints = constraints
		}
		cur.MergeEdges = cur.MergeEdges || c.Layout.MergeEdges
		for name, v := range c.Layout.Spacing {
			s, ok := lgraph.ParseSpacing(name)
			if !ok {
				continue
			}
			if cur.Spacings == nil {
				cur.Spacings = lgraph.Spacings{}
			}
			if _, set := cur.Spacings[s]; !set {
				cur.Spacings[s] = v
			}
		}

		for _, n := range cur.Nodes() {
			if n.PortConstraints == lgraph.ConstraintsUndefined {
				n.PortConstraints = cur.PortConstraints
			}
			if nested := n.NestedGraph(); nested != nil {
				queue = append(queue, nested)
			}
		}
	}
}

// PhaseOptions returns the layout options for the phase pipeline. With
// Trace set and a logger given, the self-loop evaluator logs its search.
func (c Config) PhaseOptions(logger *log.Logger) phase.Options {
	opts := phase.Options{
		Sweeps:    c.Layout.Sweeps,
		SelfLoops: selfloop.Options{Penalties: c.SelfLoops.Penalties},
		Logger:    logger,
	}
	if c.SelfLoops.Trace && logger != nil {
		opts.SelfLoops.Observer = selfloop.LogObserver{Logger: logger}
	}
	return opts
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Duration is a time.Duration written as a string like "90s" or "24h".
type Duration time.Duration

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
