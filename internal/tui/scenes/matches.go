// Package scenes implements the individual screens of the terminal UI.
package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/tui/components"
	"github.com/rgehrsitz/drivefit/internal/tui/tuimsg"
	"github.com/rgehrsitz/drivefit/internal/tui/tuistyles"
)

// MatchKeys are the bindings of the ranked list
type MatchKeys struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding
	Filter key.Binding
	Clear  key.Binding
}

// DefaultMatchKeys returns the list bindings
func DefaultMatchKeys() MatchKeys {
	return MatchKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
	}
}

// ShortHelp lists the bindings shown in the status bar
func (k MatchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Filter}
}

// MatchesModel is the ranked vehicle list with an inline filter
type MatchesModel struct {
	keys     MatchKeys
	matches  []domain.VehicleMatch
	visible  []int
	selected int
	filter   textinput.Model
	width    int
	height   int
}

// NewMatchesModel creates an empty list
func NewMatchesModel() *MatchesModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "model, trim, category or fuel"
	ti.CharLimit = 40

	return &MatchesModel{
		keys:   DefaultMatchKeys(),
		filter: ti,
		width:  80,
		height: 24,
	}
}

// Keys returns the list bindings
func (m *MatchesModel) Keys() MatchKeys {
	return m.keys
}

// SetMatches replaces the ranked list and resets the cursor
func (m *MatchesModel) SetMatches(matches []domain.VehicleMatch) {
	m.matches = matches
	m.selected = 0
	m.applyFilter()
}

// SetSize updates the available area
func (m *MatchesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Filtering reports whether the filter input has focus
func (m *MatchesModel) Filtering() bool {
	return m.filter.Focused()
}

// Query is the active filter text
func (m *MatchesModel) Query() string {
	return strings.TrimSpace(m.filter.Value())
}

// Visible returns the matches that pass the filter, in rank order
func (m *MatchesModel) Visible() []domain.VehicleMatch {
	out := make([]domain.VehicleMatch, len(m.visible))
	for i, idx := range m.visible {
		out[i] = m.matches[idx]
	}
	return out
}

// Selected returns the highlighted match
func (m *MatchesModel) Selected() (domain.VehicleMatch, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return domain.VehicleMatch{}, false
	}
	return m.matches[m.visible[m.selected]], true
}

// Rank is the 1-based position of a visible row in the unfiltered ranking
func (m *MatchesModel) Rank(row int) int {
	return m.visible[row] + 1
}

func matchesQuery(v domain.VehicleData, q string) bool {
	if q == "" {
		return true
	}
	for _, field := range []string{v.Model, v.Trim, v.Category, v.FuelType} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (m *MatchesModel) applyFilter() {
	q := strings.ToLower(m.Query())
	m.visible = m.visible[:0]
	for i, match := range m.matches {
		if matchesQuery(match.Vehicle, q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *MatchesModel) filterChanged() tea.Cmd {
	query, shown := m.Query(), len(m.visible)
	return func() tea.Msg {
		return tuimsg.FilterChangedMsg{Query: query, Shown: shown}
	}
}

// Update handles list navigation and filter editing
func (m *MatchesModel) Update(msg tea.Msg) (*MatchesModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filter.Focused() {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.filter.Blur()
			return m, m.filterChanged()
		case tea.KeyEsc:
			m.filter.Blur()
			m.filter.Reset()
			m.applyFilter()
			return m, m.filterChanged()
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(keyMsg)
		m.applyFilter()
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, m.keys.Top):
		m.selected = 0
	case key.Matches(keyMsg, m.keys.Bottom):
		if len(m.visible) > 0 {
			m.selected = len(m.visible) - 1
		}
	case key.Matches(keyMsg, m.keys.Filter):
		return m, m.filter.Focus()
	case key.Matches(keyMsg, m.keys.Clear):
		if m.Query() != "" {
			m.filter.Reset()
			m.applyFilter()
			return m, m.filterChanged()
		}
	case key.Matches(keyMsg, m.keys.Open):
		match, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.VehicleSelectedMsg{Match: match}
		}
	}
	return m, nil
}

// View renders the list beside a summary of the highlighted vehicle
func (m *MatchesModel) View() string {
	if len(m.matches) == 0 {
		return tuistyles.InfoStyle.Render("No vehicles matched this profile.")
	}

	list := m.renderList()
	var body string
	if match, ok := m.Selected(); ok && m.width >= 110 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", renderSummary(match))
	} else {
		body = list
	}

	if m.filter.Focused() || m.Query() != "" {
		body = m.filter.View() + "\n\n" + body
	}
	return body
}

func (m *MatchesModel) renderList() string {
	if len(m.visible) == 0 {
		return tuistyles.BorderStyle.Render(tuistyles.InfoStyle.Render(fmt.Sprintf("Nothing matches %q", m.Query())))
	}

	header := tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-3s %-34s %6s %10s %6s", "#", "Vehicle", "Match", "Payment", "Afford"))
	rows := []string{header}

	// Keep the cursor in the window when the list is taller than the screen
	window := m.height - 8
	if window < 5 {
		window = 5
	}
	start := 0
	if m.selected >= window {
		start = m.selected - window + 1
	}
	end := start + window
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for row := start; row < end; row++ {
		match := m.matches[m.visible[row]]
		name := match.Vehicle.DisplayName()
		if len(name) > 34 {
			name = name[:31] + "..."
		}
		line := fmt.Sprintf("%-3d %-34s %5d%% %10s %6d",
			m.Rank(row), name, match.MatchPercentage,
			"$"+match.MonthlyPayment.StringFixed(0), match.AffordabilityScore)

		if row == m.selected {
			rows = append(rows, tuistyles.SelectedItemStyle.Render("▸ "+line))
		} else {
			rows = append(rows, tuistyles.UnselectedItemStyle.Render("  "+line))
		}
	}

	return tuistyles.BorderStyle.Render(strings.Join(rows, "\n"))
}

func renderSummary(match domain.VehicleMatch) string {
	v := match.Vehicle
	lines := []string{
		tuistyles.SelectedItemStyle.Render(v.DisplayName()),
		tuistyles.HelpDescStyle.Render(fmt.Sprintf("%s • %s • %s • seats %d", v.Category, v.FuelType, v.MPG, v.Seating)),
		"",
		components.NewMetricCard("MSRP", calculation.FormatDollars(v.Price())).RenderCompact(),
		components.NewMetricCard("All-in monthly", "$"+match.TotalMonthlyCost.Total.StringFixed(2)).RenderCompact(),
		"",
		components.NewScoreBar("Match", match.MatchPercentage).Render(),
		components.NewScoreBar("Affordability", match.AffordabilityScore).Render(),
		components.NewScoreBar("Salary fit", match.SalaryFit).Render(),
		components.NewScoreBar("Reliability", match.ReliabilityScore).Render(),
		components.NewScoreBar("Term match", match.TermMatch).Render(),
	}
	return tuistyles.ActiveBorderStyle.Render(strings.Join(lines, "\n"))
}
