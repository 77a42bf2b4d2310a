package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the styles every renderer pulls from.
type Theme struct {
	Title, Muted, Accent, Success, Error, Busy lipgloss.Style
	Selected, Help, Label                      lipgloss.Style
	Border                                     lipgloss.Border
	BorderColor                                lipgloss.TerminalColor
	Cursor, Bullet                             string
}

var current = classic()

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Busy:        lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Help:        lipgloss.NewStyle().Faint(true),
			Label:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			Cursor:      "❯ ",
			Bullet:      "◆",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain.Bold(true), Busy: plain,
			Selected: plain.Reverse(true), Help: plain, Label: plain.Bold(true),
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
			Cursor:      "> ",
			Bullet:      "-",
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Busy:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Label:       lipgloss.NewStyle().Bold(true),
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
		Cursor:      "> ",
		Bullet:      "•",
	}
}

// Current returns the active theme.
func Current() Theme { return current }

// Box is the framed container used for panels, the form and the detail view.
func (t Theme) Box() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
}
