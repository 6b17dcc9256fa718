package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
)

// Theme contains the styles used by command output.
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Dim     lipgloss.Style
	Easy    lipgloss.Style
	Hard    lipgloss.Style
	Flip    lipgloss.Style
	Cleared lipgloss.Style
	Stuck   lipgloss.Style
	Box     lipgloss.Style
}

// DefaultTheme returns the colored theme.
func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:   lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Easy:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")),  // Lime green
		Hard:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")), // Hot pink
		Flip:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // Bright cyan
		Cleared: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		Stuck:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}

// PlainTheme returns unstyled output for pipes and files.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Title: plain, Label: plain, Value: plain, Dim: plain,
		Easy: plain, Hard: plain, Flip: plain, Cleared: plain, Stuck: plain,
		Box: plain,
	}
}

var theme = pickTheme()

func pickTheme() Theme {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return DefaultTheme()
	}
	return PlainTheme()
}

// termWidth returns the terminal width, or 80 when stdout is not a terminal.
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func (t Theme) kind(k core.BehaviourKind) lipgloss.Style {
	switch k {
	case core.EasyClear:
		return t.Easy
	case core.HardClear:
		return t.Hard
	default:
		return t.Flip
	}
}

func (t Theme) outcome(o core.Outcome) string {
	switch o {
	case core.OutcomeCleared:
		return t.Cleared.Render(o.String())
	case core.OutcomeStuck:
		return t.Stuck.Render(o.String())
	default:
		return t.Value.Render(o.String())
	}
}
