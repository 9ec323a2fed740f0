package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/domain"
)

// MaxAnnualMileage bounds SetAnnualMileage
const MaxAnnualMileage = 100000

// SetAnnualMileage changes how far the shopper expects to drive each year
type SetAnnualMileage struct {
	Miles int
}

func (sm *SetAnnualMileage) Name() string {
	return "set_mileage"
}

func (sm *SetAnnualMileage) Description() string {
	return fmt.Sprintf("Drive %d miles per year", sm.Miles)
}

func (sm *SetAnnualMileage) Validate(base *domain.Shopper) error {
	if base == nil {
		return NewTransformError(sm.Name(), "validate", "base shopper cannot be nil", nil)
	}
	if sm.Miles <= 0 || sm.Miles > MaxAnnualMileage {
		return NewTransformError(sm.Name(), "validate",
			fmt.Sprintf("miles must be between 1 and %d, got %d", MaxAnnualMileage, sm.Miles), domain.ErrInvalidMileage)
	}
	return nil
}

func (sm *SetAnnualMileage) Apply(base *domain.Shopper) (*domain.Shopper, error) {
	modified := base.Clone()
	modified.Lifestyle.EstimatedAnnualMileage = sm.Miles
	return modified, nil
}

// Depreciation factor names accepted by SetFactor
const (
	FactorLowMileage    = "low_mileage"
	FactorGoodCondition = "good_condition"
	FactorLowInterest   = "low_interest"
	FactorLowGas        = "low_gas"
)

// SetFactor turns one depreciation factor on or off
type SetFactor struct {
	Factor  string
	Enabled bool
}

func (sf *SetFactor) Name() string {
	return "set_factor"
}

func (sf *SetFactor) Description() string {
	state := "off"
	if sf.Enabled {
		state = "on"
	}
	return fmt.Sprintf("Turn %s %s", strings.ReplaceAll(sf.Factor, "_", " "), state)
}

func (sf *SetFactor) Validate(base *domain.Shopper) error {
	if base == nil {
		return NewTransformError(sf.Name(), "validate", "base shopper cannot be nil", nil)
	}
	switch sf.Factor {
	case FactorLowMileage, FactorGoodCondition, FactorLowInterest, FactorLowGas:
		return nil
	}
	return NewTransformError(sf.Name(), "validate", fmt.Sprintf("unknown factor %q", sf.Factor), nil)
}

func (sf *SetFactor) Apply(base *domain.Shopper) (*domain.Shopper, error) {
	modified := base.Clone()
	switch sf.Factor {
	case FactorLowMileage:
		modified.Factors.LowMileage = sf.Enabled
	case FactorGoodCondition:
		modified.Factors.GoodCondition = sf.Enabled
	case FactorLowInterest:
		modified.Factors.LowInterest = sf.Enabled
	case FactorLowGas:
		modified.Factors.LowGas = sf.Enabled
	default:
		return nil, NewTransformError(sf.Name(), "apply", fmt.Sprintf("unknown factor %q", sf.Factor), nil)
	}
	return modified, nil
}
