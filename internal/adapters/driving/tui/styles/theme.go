// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// Theme is the colour palette. Each colour adapts to light and dark
// terminal backgrounds.
type Theme struct {
	Accent  lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Subtle  lipgloss.AdaptiveColor
	Approve lipgloss.AdaptiveColor
	Caution lipgloss.AdaptiveColor
	Deny    lipgloss.AdaptiveColor
	Line    lipgloss.AdaptiveColor
	Bar     lipgloss.AdaptiveColor
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"},
		Info:    lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"},
		Text:    lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"},
		Subtle:  lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Approve: lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"},
		Caution: lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"},
		Deny:    lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"},
		Line:    lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"},
		Bar:     lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#111827"},
	}
}

// Styles holds the lipgloss styles every view renders with.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style

	// Approved and Rejected colour claim decisions. The remaining
	// decisions render in Warning.
	Approved lipgloss.Style
	Rejected lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Line)

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Accent).Bold(true).MarginBottom(1),
		Subtitle: fg(theme.Info).Italic(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Subtle),
		Selected: fg(theme.Accent).Bold(true),

		Error:   fg(theme.Deny),
		Success: fg(theme.Approve),
		Warning: fg(theme.Caution),

		InputField: boxed.Padding(0, 1),
		StatusBar:  fg(theme.Subtle).Background(theme.Bar).Padding(0, 1),
		Help:       fg(theme.Subtle).Faint(true),
		Border:     boxed,

		Approved: fg(theme.Approve).Bold(true),
		Rejected: fg(theme.Deny).Bold(true),

		ProgressFilled: fg(theme.Info),
		ProgressEmpty:  fg(theme.Line),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Decision renders a claim decision label in its colour.
func (s *Styles) Decision(d domain.Decision) string {
	label := display.Decision(d)
	switch d {
	case domain.DecisionApproved:
		return s.Approved.Render(label)
	case domain.DecisionRejected:
		return s.Rejected.Render(label)
	default:
		return s.Warning.Bold(true).Render(label)
	}
}

// ProgressBar renders a bar of the given width filled to percent.
func (s *Styles) ProgressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	width = max(1, width)
	filled := percent * width / 100
	return s.ProgressFilled.Render(strings.Repeat("█", filled)) +
		s.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}
