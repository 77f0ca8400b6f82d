package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lgraph/pkg/config"
	"github.com/matzehuels/lgraph/pkg/geom"
	"github.com/matzehuels/lgraph/pkg/io"
	"github.com/matzehuels/lgraph/pkg/lgraph/phase"
	"github.com/matzehuels/lgraph/pkg/selfloop"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		flags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [diagram.json]",
		Short: "Browse the self-loop label placement of a diagram",
		Long: `Browse the self-loop label placement of a diagram.

The diagram is laid out without the cache and every self-loop label is
listed with the side and position it was given. Select a label to see all
candidate positions with their base penalties.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, &cfg)
			traces, err := traceLabels(cmd.Context(), args[0], cfg)
			if err != nil {
				return err
			}
			if len(traces) == 0 {
				printInfo("No self-loop labels in %s", args[0])
				return nil
			}
			if plain {
				fmt.Println(labelTable(traces, -1, 0, len(traces)).Render())
				return nil
			}
			_, err = tea.NewProgram(newInspectModel(traces), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of starting the browser")
	flags.register(cmd)
	return cmd
}

// traceLabels lays out the diagram at path and records the label placement.
func traceLabels(ctx context.Context, path string, cfg config.Config) ([]labelTrace, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	g, err := io.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	rec := &recorder{}
	cfg.Apply(g)
	opts := cfg.PhaseOptions(loggerFromContext(ctx))
	opts.SelfLoops.Observer = rec
	if _, err := phase.Layout(g, opts); err != nil {
		return nil, err
	}
	return rec.labels, nil
}

// labelTrace is the recorded placement of one self-loop label.
type labelTrace struct {
	Node       string
	Text       string
	Candidates []candidateTrace
	// Chosen indexes Candidates; -1 when the label got no position.
	Chosen      int
	NodePenalty float64
}

type candidateTrace struct {
	Side        string
	Alignment   string
	Position    geom.Vector
	BasePenalty float64
}

// recorder is a selfloop.Observer that keeps the final assignment of every
// node.
type recorder struct {
	selfloop.NopObserver
	node   string
	labels []labelTrace
}

func (r *recorder) Setup(rep *selfloop.NodeRep, _ []*selfloop.Label) {
	r.node = rep.Node.Name
	if r.node == "" {
		r.node = rep.Node.String()
	}
}

func (r *recorder) Finished(labels []*selfloop.Label, penalty float64) {
	for _, l := range labels {
		t := labelTrace{Node: r.node, Text: l.Text(), Chosen: -1, NodePenalty: penalty}
		for i, c := range l.Candidates {
			if c == l.Position {
				t.Chosen = i
			}
			t.Candidates = append(t.Candidates, candidateTrace{
				Side:        c.Side.String(),
				Alignment:   c.Alignment.String(),
				Position:    c.Position,
				BasePenalty: c.BasePenalty,
			})
		}
		r.labels = append(r.labels, t)
	}
}

var (
	inspectHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	inspectCursorStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	inspectChosenStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// inspectModel is the bubbletea model of the inspect command.
type inspectModel struct {
	labels   []labelTrace
	cursor   int
	offset   int
	height   int
	expanded bool
}

func newInspectModel(labels []labelTrace) inspectModel {
	return inspectModel{labels: labels, height: 12}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.offset = min(m.offset, m.cursor)
			}
		case "down", "j":
			if m.cursor < len(m.labels)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			m.expanded = !m.expanded
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height/2-4, 3)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Self-loop labels"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ candidates  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.labels))
	b.WriteString(labelTable(m.labels, m.cursor, m.offset, end).Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.labels))))

	if m.expanded {
		l := m.labels[m.cursor]
		b.WriteString("\n\n")
		b.WriteString(StyleTitle.Render(fmt.Sprintf("Candidates of %q on %s", firstLine(l.Text), l.Node)))
		b.WriteString(StyleDim.Render(fmt.Sprintf("  penalty %s", num(l.NodePenalty))))
		b.WriteString("\n")
		b.WriteString(candidateTable(l).Render())
	}
	b.WriteString("\n")
	return b.String()
}

// labelTable shows labels[from:to]; the row of cursor is highlighted.
func labelTable(labels []labelTrace, cursor, from, to int) *table.Table {
	rows := make([][]string, 0, to-from)
	for i := from; i < to; i++ {
		l := labels[i]
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		side, x, y := "—", "—", "—"
		if l.Chosen >= 0 {
			c := l.Candidates[l.Chosen]
			side, x, y = c.Side, num(c.Position.X), num(c.Position.Y)
		}
		rows = append(rows, []string{mark, l.Node, firstLine(l.Text), side, x, y, fmt.Sprint(len(l.Candidates))})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Label", "Side", "X", "Y", "Candidates").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return inspectHeaderStyle
			case from+row == cursor:
				return inspectCursorStyle
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		})
}

func candidateTable(l labelTrace) *table.Table {
	rows := make([][]string, len(l.Candidates))
	for i, c := range l.Candidates {
		mark := ""
		if i == l.Chosen {
			mark = iconSuccess
		}
		rows[i] = []string{mark, c.Side, c.Alignment, num(c.Position.X), num(c.Position.Y), num(c.BasePenalty)}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Side", "Alignment", "X", "Y", "Base").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return inspectHeaderStyle
			case row == l.Chosen:
				return inspectChosenStyle
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		})
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}
