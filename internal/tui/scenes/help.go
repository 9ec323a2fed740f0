package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/rgehrsitz/drivefit/internal/tui/tuistyles"
)

// HelpModel renders every key binding grouped by screen
type HelpModel struct {
	help   help.Model
	groups [][]key.Binding
}

// NewHelpModel builds the help screen from the scene bindings plus the
// global ones
func NewHelpModel(matches MatchKeys, detail DetailKeys, global []key.Binding) *HelpModel {
	h := help.New()
	h.Styles.FullKey = tuistyles.HelpKeyStyle
	h.Styles.FullDesc = tuistyles.HelpDescStyle
	h.Styles.ShortKey = tuistyles.HelpKeyStyle
	h.Styles.ShortDesc = tuistyles.HelpDescStyle

	return &HelpModel{
		help: h,
		groups: [][]key.Binding{
			{matches.Up, matches.Down, matches.Top, matches.Bottom},
			{matches.Open, matches.Filter, matches.Clear},
			{detail.Back, detail.Costs},
			global,
		},
	}
}

// SetWidth bounds the help layout
func (m *HelpModel) SetWidth(width int) {
	m.help.Width = width
}

// ShortHelpView renders bindings on one line for the status bar
func (m *HelpModel) ShortHelpView(bindings []key.Binding) string {
	return m.help.ShortHelpView(bindings)
}

// View renders the full help screen
func (m *HelpModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.SelectedItemStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.groups))
	b.WriteString("\n\n")
	b.WriteString(tuistyles.HelpDescStyle.Render(
		"Vehicles are ranked by match percentage for the loaded profile.\n" +
			"Payments assume 10% down over the profile's lease term; the value\n" +
			"projection assumes 20% down over 60 months."))
	return tuistyles.BorderStyle.Render(b.String())
}
