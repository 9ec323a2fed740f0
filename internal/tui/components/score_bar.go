package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/drivefit/internal/tui/tuistyles"
)

// ScoreBar draws a 0-100 score as a filled bar, e.g. a match percentage
type ScoreBar struct {
	Label string
	Score int
	Width int
}

// NewScoreBar creates a bar; scores are clamped to 0-100
func NewScoreBar(label string, score int) *ScoreBar {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return &ScoreBar{Label: label, Score: score, Width: 20}
}

// WithWidth sets the bar width in cells
func (b *ScoreBar) WithWidth(width int) *ScoreBar {
	b.Width = width
	return b
}

// Filled is the number of filled cells
func (b *ScoreBar) Filled() int {
	return b.Score * b.Width / 100
}

// Render returns "label ████░░░░ 80%"
func (b *ScoreBar) Render() string {
	filled := b.Filled()
	bar := lipgloss.NewStyle().Foreground(tuistyles.ScoreColor(b.Score)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", b.Width-filled))

	var out strings.Builder
	if b.Label != "" {
		out.WriteString(tuistyles.MetricLabelStyle.Width(14).Render(b.Label))
		out.WriteString(" ")
	}
	out.WriteString(bar)
	out.WriteString(fmt.Sprintf(" %3d%%", b.Score))
	return out.String()
}
