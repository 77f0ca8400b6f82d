// Package pipeline provides the import → layout → render pipeline for lgraph.
//
// The CLI and the HTTP service both run diagrams through this package so
// that they cache, log and report the same way.
//
// # Stages
//
//  1. Import: decode a diagram (see [github.com/matzehuels/lgraph/pkg/io])
//  2. Layout: fill in configuration defaults and run the layered phases,
//     including self-loop placement
//  3. Render: write the laid out graph as JSON, DOT, SVG, PNG or PDF
//
// The layout stage is cached under the hash of the input and the layout
// configuration; rendered artifacts are cached under the hash of the
// layout result and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   data,
//	    Formats: []string{"json", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lgraph/pkg/cache"
	"github.com/matzehuels/lgraph/pkg/config"
	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/lgraph/phase"
)

// DefaultScale is the PNG scale factor when none is given.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// Options contains all configuration for a pipeline run.
// The JSON form is accepted by the HTTP service next to the diagram.
type Options struct {
	// Input is the diagram in the JSON format read by io.ReadJSON.
	Input []byte `json:"-"`

	// Config supplies layout defaults and self-loop penalties.
	// Nil means config.Default().
	Config *config.Config `json:"-"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Ports    bool     `json:"ports,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Refresh skips cache lookups; results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and hooks.
	RunID string

	// Graph is the laid out graph.
	Graph *lgraph.Graph

	// Layout is the laid out graph in diagram JSON.
	Layout []byte

	// LayoutHash is the content hash of Layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImportTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
	// Layout holds the statistics of the layout run that produced the
	// result, which may be an earlier, cached run.
	Layout phase.Stats
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Input) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for the layout stage. Every
// layout and self-loop setting is folded into the options hash.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	data, _ := json.Marshal(struct {
		Layout    config.Layout
		SelfLoops config.SelfLoops
	}{o.Config.Layout, o.Config.SelfLoops})
	return cache.LayoutKeyOpts{
		Direction: o.Config.Layout.Direction,
		Options:   cache.Hash(data),
	}
}

// ArtifactKeyOpts returns cache key options for rendering one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	style := fmt.Sprintf("ports=%t,detailed=%t", o.Ports, o.Detailed)
	if format == FormatPNG {
		style += fmt.Sprintf(",scale=%g", o.Scale)
	}
	return cache.ArtifactKeyOpts{Format: format, Style: style}
}
