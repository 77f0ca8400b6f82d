package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/lgraph/pkg/config"
)

func TestTraceLabels(t *testing.T) {
	_, diagram := setup(t)
	traces, err := traceLabels(t.Context(), diagram, config.Default())
	if err != nil {
		t.Fatalf("traceLabels() error = %v", err)
	}
	if len(traces) != 1 {
		t.Fatalf("len(traces) = %d, want 1", len(traces))
	}
	l := traces[0]
	if l.Node != "b" || l.Text != "self" {
		t.Errorf("trace = %s/%q, want b/\"self\"", l.Node, l.Text)
	}
	if len(l.Candidates) == 0 || l.Chosen < 0 || l.Chosen >= len(l.Candidates) {
		t.Errorf("Chosen = %d of %d candidates", l.Chosen, len(l.Candidates))
	}
}

func TestInspectModel(t *testing.T) {
	labels := []labelTrace{
		{Node: "a", Text: "first", Chosen: 0, Candidates: []candidateTrace{{Side: "NORTH", Alignment: "CENTER"}}},
		{Node: "b", Text: "second\nline", Chosen: -1},
	}
	var m tea.Model = newInspectModel(labels)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.(inspectModel).cursor; got != 1 {
		t.Errorf("cursor after down = %d, want 1", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.(inspectModel).cursor; got != 1 {
		t.Errorf("cursor past end = %d, want 1", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	for _, want := range []string{"first", "second …", "Candidates of \"first\" on a", "NORTH"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{2.5, "2.5"},
		{-3.7, "-3.7"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
