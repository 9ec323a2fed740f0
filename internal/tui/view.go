package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.loading:
		content = tuistyles.BorderStyle.Render("⠋ " + m.loadingMessage)
	case m.err != nil:
		content = m.renderError()
	default:
		switch m.currentScene {
		case SceneMatches:
			content = m.renderProfile() + "\n\n" + m.matchesModel.View()
		case SceneDetail:
			content = m.detailModel.View()
		case SceneHelp:
			content = m.helpModel.View()
		default:
			content = "Unknown scene"
		}
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("DriveFit - Vehicle Affordability")

	crumb := m.currentScene.String()
	if m.shopper != nil && m.shopper.Name != "" {
		crumb = m.shopper.Name + " / " + crumb
	}
	if m.currentScene == SceneDetail {
		crumb += " / " + m.detailModel.VehicleID()
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(crumb))
}

// renderProfile summarizes the loaded shopper above the match list
func (m Model) renderProfile() string {
	if m.shopper == nil {
		return ""
	}
	fp := m.shopper.Financial
	parts := []string{
		fmt.Sprintf("Income %s", calculation.FormatDollars(fp.AnnualIncome)),
		fmt.Sprintf("Net %s/mo", calculation.FormatDollars(m.netPay.MonthlyNet)),
		fmt.Sprintf("Credit %d (%s, %s%% APR)", fp.CreditScore, calculation.CreditRating(fp.CreditScore), calculation.ResolveAPR(fp.CreditScore).String()),
		fmt.Sprintf("Budget %s-%s", calculation.FormatDollars(fp.BudgetMin), calculation.FormatDollars(fp.BudgetMax)),
		fmt.Sprintf("%d mo", fp.LeaseTerm),
	}
	return tuistyles.HelpDescStyle.Render(strings.Join(parts, " • "))
}

func (m Model) renderStatusBar() string {
	var bindings []key.Binding
	switch m.currentScene {
	case SceneMatches:
		bindings = m.matchesModel.Keys().ShortHelp()
	case SceneDetail:
		bindings = m.detailModel.Keys().ShortHelp()
	}
	bindings = append(bindings, m.keys.Help, m.keys.Quit)

	status := m.helpModel.ShortHelpView(bindings)
	if m.filterSummary != "" && m.currentScene == SceneMatches {
		status += "   " + tuistyles.StatusKeyStyle.Render("filter") + " " + m.filterSummary
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(status)
}

func (m Model) renderError() string {
	return tuistyles.BorderStyle.BorderForeground(tuistyles.ColorDanger).Render(
		tuistyles.ErrorStyle.Render("Error") + "\n\n" + m.err.Error() + "\n\n" +
			tuistyles.HelpDescStyle.Render("Press q to quit."))
}
