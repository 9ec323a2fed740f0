package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEstimateInsurance(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		score    int
		expected string
	}{
		{"excellent credit mid price", "35000", 720, "125"},
		{"poor credit pricier car", "50000", 600, "192"},
		{"fair credit cheap car", "20000", 700, "141"},
		{"luxury price", "150000", 720, "168"},
		{"price factor capped", "300000", 720, "185"},
		{"low price discount", "1000", 650, "132"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, EstimateInsurance(dec(tt.price), tt.score))
		})
	}
}

func TestFuelCost(t *testing.T) {
	assertDecimal(t, "116.67", FuelCost(dec("30"), 12000, DefaultGasPrice))
	assertDecimal(t, "67.31", FuelCost(dec("52"), 12000, DefaultGasPrice))
	// defaults apply for missing mileage and gas price
	assertDecimal(t, "116.67", FuelCost(dec("30"), 0, decimal.Zero))
	assertDecimal(t, "100", FuelCost(dec("30"), 12000, dec("3")))
	assert.True(t, FuelCost(decimal.Zero, 12000, DefaultGasPrice).IsZero())
}

func TestEstimateMaintenanceCost(t *testing.T) {
	tests := []struct {
		price       string
		reliability string
		expected    string
	}{
		{"35000", "4.5", "69"}, // base 75, price not above 35000
		{"35001", "4.0", "85"}, // mid tier
		{"48500", "4.6", "91"}, // top tier
		{"20000", "3.0", "86"}, // unreliable costs more
		{"20000", "1.0", "98"}, // factor capped at 1.3
		{"20000", "5.0", "64"}, // 75 × 0.85
		{"60000", "5.0", "85"}, // 100 × 0.85
	}

	for _, tt := range tests {
		assertDecimal(t, tt.expected, EstimateMaintenanceCost(dec(tt.price), dec(tt.reliability)))
	}
}

func TestEstimateTaxesAndFees(t *testing.T) {
	assertDecimal(t, "78", EstimateTaxesAndFees(dec("35000")))
	assertDecimal(t, "73", EstimateTaxesAndFees(dec("28400")))
}

func TestCalculateTotalMonthlyCost_Scenario(t *testing.T) {
	in := CostInput{
		VehiclePrice: dec("35000"),
		DownPayment:  dec("3500"),
		APR:          ResolveAPR(720),
		TermMonths:   48,
		CreditScore:  720,
		MPGCombined:  dec("30"),
		Reliability:  dec("4.5"),
	}
	assert.NoError(t, in.Validate())

	cost := CalculateTotalMonthlyCost(in)
	assertDecimal(t, "718.31", cost.Payment)
	assertDecimal(t, "125", cost.Insurance)
	assertDecimal(t, "116.67", cost.Fuel)
	assertDecimal(t, "69", cost.Maintenance)
	assertDecimal(t, "78", cost.TaxesAndFees)
	assertDecimal(t, "1107", cost.Total)
}

func TestCostInput_Validate(t *testing.T) {
	valid := CostInput{
		VehiclePrice: dec("30000"),
		DownPayment:  dec("3000"),
		APR:          dec("4.5"),
		TermMonths:   60,
		CreditScore:  700,
		MPGCombined:  dec("30"),
		Reliability:  dec("4.5"),
	}

	tests := []struct {
		name   string
		mutate func(*CostInput)
		target error
	}{
		{"price", func(c *CostInput) { c.VehiclePrice = decimal.Zero }, domain.ErrInvalidPrice},
		{"down payment", func(c *CostInput) { c.DownPayment = dec("-1") }, domain.ErrInvalidDownPayment},
		{"term", func(c *CostInput) { c.TermMonths = 0 }, domain.ErrInvalidTerm},
		{"credit", func(c *CostInput) { c.CreditScore = 900 }, domain.ErrInvalidCreditScore},
		{"mpg", func(c *CostInput) { c.MPGCombined = decimal.Zero }, domain.ErrInvalidMPG},
		{"reliability", func(c *CostInput) { c.Reliability = dec("5.5") }, domain.ErrInvalidReliability},
		{"mileage", func(c *CostInput) { c.AnnualMileage = -1 }, domain.ErrInvalidMileage},
	}

	assert.NoError(t, valid.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}
