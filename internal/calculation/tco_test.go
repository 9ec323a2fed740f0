package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_TCOFromVehicle_Scenario(t *testing.T) {
	engine := NewEngine(nil)

	result, err := engine.TCOFromVehicle(TCOInput{
		VehiclePrice: dec("35000"),
		DownPayment:  dec("3500"),
		TermMonths:   48,
		CreditScore:  720,
		MPGCombined:  dec("30"),
		Reliability:  dec("4.5"),
	})
	require.NoError(t, err)

	assertDecimal(t, "56635", result.TotalPaid)
	assertDecimal(t, "15750", result.Depreciation)
	assertDecimal(t, "37385", result.NetCost)
	assertDecimal(t, "779", result.MonthlyEquivalent)
	assertDecimal(t, "19250", result.ResaleValue)

	assertDecimal(t, "34479", result.Breakdown.Payments)
	assertDecimal(t, "6000", result.Breakdown.Insurance)
	assertDecimal(t, "5600", result.Breakdown.Fuel)
	assertDecimal(t, "3312", result.Breakdown.Maintenance)
	assertDecimal(t, "3744", result.Breakdown.TaxesAndFees)
	assertDecimal(t, "15750", result.Breakdown.Depreciation)
}

func TestCalculateTCO_ZeroRate(t *testing.T) {
	recurring := RecurringCosts{
		Insurance:    dec("100"),
		Fuel:         dec("50"),
		Maintenance:  dec("25"),
		TaxesAndFees: dec("25"),
	}
	result := CalculateTCO(dec("24000"), dec("0"), decimal.Zero, 24, recurring, domain.DepreciationFactors{})

	// 24000 of payments plus 200/month of running costs
	assertDecimal(t, "24000", result.Breakdown.Payments)
	assertDecimal(t, "28800", result.TotalPaid)
	// two years retains 73%
	assertDecimal(t, "17520", result.ResaleValue)
	assertDecimal(t, "6480", result.Depreciation)
	assertDecimal(t, "11280", result.NetCost)
	assertDecimal(t, "470", result.MonthlyEquivalent)
}

func TestCalculateTCO_FactorsRaiseResale(t *testing.T) {
	recurring := RecurringCosts{Insurance: dec("120")}
	plain := CalculateTCO(dec("30000"), dec("3000"), dec("6.2"), 36, recurring, domain.DepreciationFactors{})
	boosted := CalculateTCO(dec("30000"), dec("3000"), dec("6.2"), 36, recurring, allFactors)

	assert.True(t, boosted.ResaleValue.GreaterThan(plain.ResaleValue))
	assert.True(t, boosted.NetCost.LessThan(plain.NetCost))
	assert.True(t, boosted.TotalPaid.Equal(plain.TotalPaid))
}

func TestEngine_TCOFromVehicle_Validation(t *testing.T) {
	engine := NewEngine(nil)

	_, err := engine.TCOFromVehicle(TCOInput{VehiclePrice: dec("30000"), TermMonths: 36, CreditScore: 200, MPGCombined: dec("30"), Reliability: dec("4")})
	assert.True(t, errors.Is(err, domain.ErrInvalidCreditScore))

	_, err = engine.TCOFromVehicle(TCOInput{VehiclePrice: dec("30000"), TermMonths: 0, CreditScore: 700, MPGCombined: dec("30"), Reliability: dec("4")})
	assert.True(t, errors.Is(err, domain.ErrInvalidTerm))
}
