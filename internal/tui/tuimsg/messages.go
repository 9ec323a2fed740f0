// Package tuimsg defines messages that scenes send to the root model.
// Keeping them here lets scenes stay free of an import on package tui.
package tuimsg

import (
	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// VehicleSelectedMsg asks the root model to open a vehicle's detail view
type VehicleSelectedMsg struct {
	Match domain.VehicleMatch
}

// ProjectionReadyMsg carries the ten-year projection for the open vehicle
type ProjectionReadyMsg struct {
	VehicleID   string
	Projection  *calculation.Projection
	Resale      *domain.ResaleEstimate
	ResaleYears decimal.Decimal
	Err         error
}

// BackMsg returns from a detail view to the list
type BackMsg struct{}

// FilterChangedMsg reports the match-list filter text
type FilterChangedMsg struct {
	Query string
	Shown int
}
