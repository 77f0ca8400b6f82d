package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lgraph/pkg/config"
	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/pipeline"
)

type renderFlags struct {
	formats  string
	output   string
	ports    bool
	detailed bool
	scale    float64
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  renderFlags
		layout layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [diagram.json]",
		Short: "Lay out a diagram and render it",
		Long: `Lay out a diagram and render it.

Every element is drawn at its computed position and every edge along its
bend points, so the drawing shows exactly what 'layout' computes. SVG, PNG
and PDF are rendered through Graphviz; PNG and PDF also need rsvg-convert.

Output files are named <output>.<format>; JSON is written to
<output>.layout.json.`,
		Example: `  lgraph render diagram.json
  lgraph render diagram.json -f svg,png --scale 3 -o out/diagram
  lgraph render diagram.json -f dot --ports --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			layout.apply(cmd, &cfg)
			return c.runRender(cmd.Context(), args[0], cfg, layout, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", "svg", "output formats, comma separated: json, dot, svg, png, pdf")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path without extension (default: input without extension)")
	cmd.Flags().BoolVar(&flags.ports, "ports", false, "draw ports")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "add node types and ids to labels")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	layout.register(cmd)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, cfg config.Config, layout layoutFlags, flags renderFlags) error {
	formats := parseFormats(flags.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	base := flags.output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	if err := errors.ValidatePath(base); err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, layout.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spin := newSpinner(ctx, os.Stderr, "Rendering "+strings.Join(formats, ", ")+"...")
	spin.Start()
	res, err := runner.Execute(ctx, pipeline.Options{
		Input:    data,
		Config:   &cfg,
		Formats:  formats,
		Ports:    flags.ports,
		Detailed: flags.detailed,
		Scale:    flags.scale,
		Refresh:  layout.refresh,
	})
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	paths, err := writeArtifacts(base, res.Artifacts)
	if err != nil {
		return err
	}
	prog.done("Rendered " + input)

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(statsParts(res), res.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each artifact to base.<format> and returns the
// paths in format order. JSON goes to base.layout.json so that it never
// replaces the input diagram.
func writeArtifacts(base string, artifacts map[string][]byte) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if f == pipeline.FormatJSON {
			path = base + ".layout.json"
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
