package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/tui/components"
	"github.com/rgehrsitz/drivefit/internal/tui/tuimsg"
	"github.com/rgehrsitz/drivefit/internal/tui/tuistyles"
)

// DetailKeys are the bindings of the vehicle detail view
type DetailKeys struct {
	Back  key.Binding
	Costs key.Binding
}

// DefaultDetailKeys returns the detail bindings
func DefaultDetailKeys() DetailKeys {
	return DetailKeys{
		Back:  key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Costs: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "costs/chart")),
	}
}

// ShortHelp lists the bindings shown in the status bar
func (k DetailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Costs}
}

// DetailModel shows one matched vehicle: its cost cards and value projection
type DetailModel struct {
	keys        DetailKeys
	match       domain.VehicleMatch
	top         *domain.VehicleMatch
	projection  *calculation.Projection
	resale      *domain.ResaleEstimate
	resaleYears decimal.Decimal
	err         error
	loading     bool
	showCosts   bool
	width       int
}

// NewDetailModel creates an empty detail view
func NewDetailModel() *DetailModel {
	return &DetailModel{keys: DefaultDetailKeys(), width: 80}
}

// Keys returns the detail bindings
func (m *DetailModel) Keys() DetailKeys {
	return m.keys
}

// SetMatch opens a vehicle. top is the best-ranked match, used for deltas.
func (m *DetailModel) SetMatch(match domain.VehicleMatch, top *domain.VehicleMatch) {
	m.match = match
	m.top = top
	m.projection = nil
	m.resale = nil
	m.err = nil
	m.loading = true
	m.showCosts = false
}

// VehicleID is the id of the open vehicle
func (m *DetailModel) VehicleID() string {
	return m.match.Vehicle.ID
}

// SetWidth updates the available width
func (m *DetailModel) SetWidth(width int) {
	m.width = width
}

// Loading reports whether the projection is still being computed
func (m *DetailModel) Loading() bool {
	return m.loading
}

// Update handles projection results and view toggles
func (m *DetailModel) Update(msg tea.Msg) (*DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tuimsg.ProjectionReadyMsg:
		// a late result for a vehicle the user already left
		if msg.VehicleID != m.VehicleID() {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		m.projection = msg.Projection
		m.resale = msg.Resale
		m.resaleYears = msg.ResaleYears
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return tuimsg.BackMsg{} }
		case key.Matches(msg, m.keys.Costs):
			m.showCosts = !m.showCosts
		}
	}
	return m, nil
}

// View renders the detail screen
func (m *DetailModel) View() string {
	v := m.match.Vehicle
	var b strings.Builder

	b.WriteString(tuistyles.SelectedItemStyle.Render(v.DisplayName()))
	b.WriteString("\n")
	b.WriteString(tuistyles.HelpDescStyle.Render(fmt.Sprintf("%s • %s • %s • %s MSRP",
		v.Category, v.FuelType, v.MPG, calculation.FormatDollars(v.Price()))))
	b.WriteString("\n\n")

	b.WriteString(components.MetricGrid(m.cards(), m.columns()))
	b.WriteString("\n\n")

	switch {
	case m.showCosts:
		b.WriteString(renderCostTable(m.match.TotalMonthlyCost))
	case m.loading:
		b.WriteString(tuistyles.InfoStyle.Render("Projecting value..."))
	case m.err != nil:
		b.WriteString(tuistyles.ErrorStyle.Render("Projection failed: " + m.err.Error()))
	case m.projection != nil:
		chart := components.ValuePathChart("Ten-year value projection", m.projection.Path)
		if m.width > 20 {
			chart.WithSize(min(m.width-4, 80), 12)
		}
		b.WriteString(chart.Render())
	}

	if m.resale != nil {
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Resale after %s years: %s (%s to %s, %s confidence)",
			m.resaleYears.String(), calculation.FormatDollars(m.resale.EstimatedValue),
			calculation.FormatDollars(m.resale.LowerBound), calculation.FormatDollars(m.resale.UpperBound),
			strings.ToLower(m.resale.Confidence)))
	}
	return b.String()
}

func (m *DetailModel) columns() int {
	if m.width >= 100 {
		return 4
	}
	if m.width >= 56 {
		return 2
	}
	return 1
}

func (m *DetailModel) cards() []*components.MetricCard {
	match := m.match
	payment := components.NewMetricCard("Monthly payment", "$"+match.MonthlyPayment.StringFixed(2)).
		WithNote("10% down")
	total := components.NewMetricCard("All-in monthly", "$"+match.TotalMonthlyCost.Total.StringFixed(2))
	if m.top != nil && m.top.Vehicle.ID != match.Vehicle.ID {
		diff := match.TotalMonthlyCost.Total.Sub(m.top.TotalMonthlyCost.Total)
		total.WithDelta(!diff.IsPositive(), signedDollars(diff)+"/mo vs top pick")
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Match", fmt.Sprintf("%d%%", match.MatchPercentage)).WithScore(match.MatchPercentage),
		payment,
		total,
		components.NewMetricCard("Affordability", fmt.Sprintf("%d/100", match.AffordabilityScore)).WithScore(match.AffordabilityScore),
	}
	if m.projection != nil {
		cards = append(cards,
			components.NewMetricCard("Projection payment", "$"+m.projection.MonthlyPayment.StringFixed(2)).
				WithNote(fmt.Sprintf("20%% down, %d mo at %s%%", m.projection.TermMonths, m.projection.APR.String())),
			components.NewMetricCard("Monthly fuel", "$"+m.projection.MonthlyFuel.StringFixed(2)).
				WithNote(fmt.Sprintf("%d mi/yr", m.projection.AnnualMileage)),
		)
	}
	return cards
}

func signedDollars(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(0)
	}
	return "+$" + d.StringFixed(0)
}

func renderCostTable(cost domain.TotalMonthlyCost) string {
	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Payment", cost.Payment},
		{"Insurance", cost.Insurance},
		{"Fuel", cost.Fuel},
		{"Maintenance", cost.Maintenance},
		{"Taxes & fees", cost.TaxesAndFees},
	}

	label := lipgloss.NewStyle().Width(16).Foreground(tuistyles.ColorMuted)
	value := lipgloss.NewStyle().Width(12).Align(lipgloss.Right)

	lines := []string{tuistyles.TableHeaderStyle.Render("Monthly cost breakdown")}
	for _, r := range rows {
		lines = append(lines, label.Render(r.label)+value.Render("$"+r.value.StringFixed(2)))
	}
	lines = append(lines, label.Bold(true).Render("Total")+value.Bold(true).Render("$"+cost.Total.StringFixed(2)))
	return tuistyles.BorderStyle.Render(strings.Join(lines, "\n"))
}
