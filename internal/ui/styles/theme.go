// Package styles holds the color palette and styles of the editor screens.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Purple - menu keys, titles
	Secondary lipgloss.Color // Gold/orange - modified marker

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Field values
	FgMuted  lipgloss.Color // Field labels
	FgSubtle lipgloss.Color // Separators, audio info

	// Status colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for menu screens.
type Styles struct {
	Base     lipgloss.Style // Field values
	Muted    lipgloss.Style // Labels
	Subtle   lipgloss.Style // Separators, secondary info
	Title    lipgloss.Style // Screen title
	Heading  lipgloss.Style // Section headings
	Key      lipgloss.Style // Menu keys
	Modified lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Heading:  base.Bold(true),
		Key:      lipgloss.NewStyle().Foreground(t.Primary),
		Modified: lipgloss.NewStyle().Foreground(t.Secondary),
		Info:     base,
		Success:  lipgloss.NewStyle().Foreground(t.Success),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning),
	}
}
