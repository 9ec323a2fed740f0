package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.matchesModel.SetSize(msg.Width, msg.Height)
		m.detailModel.SetWidth(msg.Width)
		m.helpModel.SetWidth(msg.Width)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ProfileLoadedMsg:
		m.loading = false
		m.shopper = msg.Shopper
		m.engine = msg.Engine
		m.netPay = msg.NetPay
		m.matches = msg.Matches
		m.matchesModel.SetMatches(msg.Matches)
		return m, nil

	case tuimsg.VehicleSelectedMsg:
		var top *domain.VehicleMatch
		if len(m.matches) > 0 {
			top = &m.matches[0]
		}
		m.detailModel.SetMatch(msg.Match, top)
		m.previousScene = m.currentScene
		m.currentScene = SceneDetail
		return m, projectionCmd(m.engine, m.shopper, msg.Match)

	case tuimsg.ProjectionReadyMsg:
		var cmd tea.Cmd
		m.detailModel, cmd = m.detailModel.Update(msg)
		return m, cmd

	case tuimsg.BackMsg:
		m.previousScene = m.currentScene
		m.currentScene = SceneMatches
		return m, nil

	case tuimsg.FilterChangedMsg:
		if msg.Query == "" {
			m.filterSummary = ""
		} else {
			m.filterSummary = fmt.Sprintf("%q: %d of %d", msg.Query, msg.Shown, len(m.matches))
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress applies global shortcuts, then hands the key to the scene
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// While typing a filter every printable key belongs to the input
	typing := m.currentScene == SceneMatches && m.matchesModel.Filtering()
	if !typing {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			if m.currentScene == SceneHelp {
				return m.back()
			}
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneHelp} }
		}
	}

	if m.loading || m.err != nil {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentScene {
	case SceneMatches:
		m.matchesModel, cmd = m.matchesModel.Update(msg)
	case SceneDetail:
		m.detailModel, cmd = m.detailModel.Update(msg)
	case SceneHelp:
		if msg.Type == tea.KeyEsc {
			return m.back()
		}
	}
	return m, cmd
}

// back leaves the help screen for whatever was showing before it
func (m Model) back() (tea.Model, tea.Cmd) {
	target := m.previousScene
	if target == SceneHelp {
		target = SceneMatches
	}
	m.previousScene = m.currentScene
	m.currentScene = target
	return m, nil
}
