package tui

import (
	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
)

// Scene is a screen of the TUI
type Scene int

const (
	SceneMatches Scene = iota
	SceneDetail
	SceneHelp
)

// NavigateMsg switches scenes
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg reports a failure that stops the app from showing matches
type ErrorMsg struct {
	Err error
}

// ProfileLoadedMsg carries a validated profile and its ranked matches
type ProfileLoadedMsg struct {
	Shopper *domain.Shopper
	Engine  *calculation.Engine
	NetPay  domain.NetPay
	Matches []domain.VehicleMatch
}
