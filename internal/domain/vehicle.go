package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultAnnualMileage is assumed whenever a caller does not supply mileage
const DefaultAnnualMileage = 12000

// Vehicle categories used by the built-in catalog
const (
	CategorySedan = "Sedan"
	CategorySUV   = "SUV"
	CategoryTruck = "Truck"
)

// Fuel types used by the built-in catalog
const (
	FuelGas          = "Gas"
	FuelHybrid       = "Hybrid"
	FuelPluginHybrid = "Plug-in Hybrid"
	FuelElectric     = "Electric"
)

// VehicleData is an immutable catalog record
type VehicleData struct {
	ID          string          `yaml:"id" json:"id"`
	Model       string          `yaml:"model" json:"model"`
	Trim        string          `yaml:"trim" json:"trim"`
	Year        int             `yaml:"year" json:"year"`
	MSRP        int             `yaml:"msrp" json:"msrp"`
	Image       string          `yaml:"image,omitempty" json:"image,omitempty"`
	Category    string          `yaml:"category" json:"category"`
	FuelType    string          `yaml:"fuel_type" json:"fuelType"`
	MPG         string          `yaml:"mpg" json:"mpg"`
	MPGCombined decimal.Decimal `yaml:"mpg_combined" json:"mpgCombined"`
	Seating     int             `yaml:"seating" json:"seating"`
	Reliability decimal.Decimal `yaml:"reliability" json:"reliability"`
}

// Price returns the MSRP as a decimal
func (v VehicleData) Price() decimal.Decimal {
	return decimal.NewFromInt(int64(v.MSRP))
}

// DisplayName joins year, model and trim
func (v VehicleData) DisplayName() string {
	return strings.TrimSpace(fmt.Sprintf("%d %s %s", v.Year, v.Model, v.Trim))
}

// Validate checks the catalog record invariants
func (v VehicleData) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("missing id: %w", ErrInvalidVehicle)
	}
	if v.MSRP <= 0 {
		return fmt.Errorf("vehicle %s msrp %d: %w", v.ID, v.MSRP, ErrInvalidPrice)
	}
	if !v.MPGCombined.IsPositive() {
		return fmt.Errorf("vehicle %s: %w", v.ID, ErrInvalidMPG)
	}
	if err := ValidateReliability(v.Reliability); err != nil {
		return fmt.Errorf("vehicle %s: %w", v.ID, err)
	}
	return nil
}

// ValidateReliability rejects ratings outside [1, 5]
func ValidateReliability(r decimal.Decimal) error {
	if r.LessThan(decimal.NewFromInt(1)) || r.GreaterThan(decimal.NewFromInt(5)) {
		return fmt.Errorf("reliability %s: %w", r.String(), ErrInvalidReliability)
	}
	return nil
}
