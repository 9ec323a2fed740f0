package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/drivefit/internal/tui/tuistyles"
)

// MetricCard shows one figure of a vehicle analysis, optionally colored by a
// 0-100 score or annotated with a change against a reference value
type MetricCard struct {
	Label string
	Value string
	Note  string
	Width int

	score *int
	delta *Delta
}

// Delta is a difference from a reference, e.g. "-$42/mo vs top pick"
type Delta struct {
	Favorable bool
	Change    string
}

// NewMetricCard creates a card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithScore colors the value by a 0-100 score
func (m *MetricCard) WithScore(score int) *MetricCard {
	m.score = &score
	return m
}

// WithDelta adds a change line
func (m *MetricCard) WithDelta(favorable bool, change string) *MetricCard {
	m.delta = &Delta{Favorable: favorable, Change: change}
	return m
}

// WithNote adds a muted footnote
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) valueStyle() lipgloss.Style {
	if m.score != nil {
		return tuistyles.ScoreStyle(*m.score)
	}
	return tuistyles.MetricValueStyle
}

func (m *MetricCard) deltaText() string {
	if m.delta == nil {
		return ""
	}
	arrow := tuistyles.TrendIndicator(m.delta.Favorable)
	return tuistyles.MetricTrendStyle(m.delta.Favorable).Render(fmt.Sprintf("%s %s", arrow, m.delta.Change))
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + m.valueStyle().Render(m.Value)
	if d := m.deltaText(); d != "" {
		content += "\n" + d
	}
	if m.Note != "" {
		content += "\n" + tuistyles.SubtitleStyle.UnsetPadding().Render(m.Note)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns a single borderless line
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + m.valueStyle().Render(m.Value)
	if d := m.deltaText(); d != "" {
		line += " " + d
	}
	return line
}

// MetricGrid lays cards out in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
