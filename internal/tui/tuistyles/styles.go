// Package tuistyles holds the shared palette and lipgloss styles of the
// terminal UI. It sits below tui, components and scenes so all three can
// import it.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorPrimary   = lipgloss.Color("#EB0A1E")
	ColorSecondary = lipgloss.Color("#58595B")
	ColorAccent    = lipgloss.Color("#F4B400")
	ColorSuccess   = lipgloss.Color("#2E9E5B")
	ColorWarning   = lipgloss.Color("#E8A317")
	ColorDanger    = lipgloss.Color("#D64545")
	ColorInfo      = lipgloss.Color("#4A90D9")

	ColorForeground = lipgloss.Color("#E6E6E6")
	ColorMuted      = lipgloss.Color("#8A8A8A")
	ColorBorder     = lipgloss.Color("#444444")

	ColorChartValue = lipgloss.Color("#EB0A1E")
	ColorChartLower = lipgloss.Color("#8A8A8A")
	ColorChartUpper = lipgloss.Color("#4A90D9")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(lipgloss.Color("#2A2A2A")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Bold(true)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Bold(true).
				Underline(true)
)

// ScoreColor buckets a 0-100 score into good, fair and poor
func ScoreColor(score int) lipgloss.Color {
	switch {
	case score >= 70:
		return ColorSuccess
	case score >= 40:
		return ColorWarning
	default:
		return ColorDanger
	}
}

// ScoreStyle colors a 0-100 score
func ScoreStyle(score int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ScoreColor(score)).Bold(true)
}

// TrendIndicator returns an arrow for a change in the shopper's favor
func TrendIndicator(favorable bool) string {
	if favorable {
		return "▲"
	}
	return "▼"
}

// MetricTrendStyle colors a trend
func MetricTrendStyle(favorable bool) lipgloss.Style {
	if favorable {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}
