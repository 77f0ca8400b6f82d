package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lgraph/pkg/config"
	"github.com/matzehuels/lgraph/pkg/errors"
	"github.com/matzehuels/lgraph/pkg/pipeline"
)

// layoutFlags are the flags shared by the commands that lay out a diagram.
// Set flags override the config file.
type layoutFlags struct {
	direction  string
	mergeEdges bool
	sweeps     int
	trace      bool
	noCache    bool
	refresh    bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "", "default layout direction: RIGHT, LEFT, DOWN, UP")
	cmd.Flags().BoolVar(&f.mergeEdges, "merge-edges", false, "route edges of a node through shared ports")
	cmd.Flags().IntVar(&f.sweeps, "sweeps", 0, "crossing minimization sweeps")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "log the self-loop label evaluation (with -v)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
}

func (f *layoutFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("direction") {
		cfg.Layout.Direction = strings.ToUpper(f.direction)
	}
	if cmd.Flags().Changed("merge-edges") {
		cfg.Layout.MergeEdges = f.mergeEdges
	}
	if cmd.Flags().Changed("sweeps") {
		cfg.Layout.Sweeps = f.sweeps
	}
	if f.trace {
		cfg.SelfLoops.Trace = true
	}
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram.json]",
		Short: "Lay out a diagram",
		Long: `Lay out a diagram.

The layout command reads an ELK-style JSON diagram, lays it out and writes
the same diagram with positions, edge sections and self-loop routes filled
in. Settings the diagram leaves open come from the config file and flags.

Results are cached, so laying out an unchanged diagram again is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, &cfg)
			return c.runLayout(cmd.Context(), args[0], output, cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, cfg config.Config, flags layoutFlags) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := newSpinner(ctx, os.Stderr, "Laying out diagram...")
	spin.Start()
	res, err := runner.Execute(ctx, pipeline.Options{
		Input:   data,
		Config:  &cfg,
		Formats: []string{pipeline.FormatJSON},
		Refresh: flags.refresh,
	})
	if err != nil {
		spin.StopWithError("Layout failed")
		return err
	}
	spin.Stop()

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := errors.ValidatePath(output); err != nil {
		return err
	}
	if err := os.WriteFile(output, res.Layout, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(statsParts(res), res.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)
	return nil
}

// readInput reads a diagram file.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "diagram not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func statsParts(res *pipeline.Result) []string {
	s := res.Stats.Layout
	parts := []string{
		fmt.Sprintf("%d nodes", s.Nodes),
		fmt.Sprintf("%d layers", s.Layers),
		fmt.Sprintf("%d crossings", s.Crossings),
	}
	if s.SelfLoops.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("%d self-loop labels", s.SelfLoops.Labels))
	}
	return parts
}
