package calculation

import (
	"testing"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDecimal compares decimals by value so 125 and 125.00 are equal
func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

// TestLogger records engine log lines
type TestLogger struct {
	lines []string
}

func (l *TestLogger) Debugf(format string, args ...any) { l.lines = append(l.lines, "DEBUG "+format) }
func (l *TestLogger) Infof(format string, args ...any)  { l.lines = append(l.lines, "INFO "+format) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.lines = append(l.lines, "WARN "+format) }
func (l *TestLogger) Errorf(format string, args ...any) { l.lines = append(l.lines, "ERROR "+format) }

// sliceSource is an in-memory VehicleSource
type sliceSource []domain.VehicleData

func (s sliceSource) All() []domain.VehicleData {
	out := make([]domain.VehicleData, len(s))
	copy(out, s)
	return out
}

func (s sliceSource) ByID(id string) (domain.VehicleData, bool) {
	for _, v := range s {
		if v.ID == id {
			return v, true
		}
	}
	return domain.VehicleData{}, false
}

func vehicle(id string, msrp int, mpg, reliability string) domain.VehicleData {
	return domain.VehicleData{
		ID:          id,
		Model:       "Model " + id,
		Trim:        "LE",
		Year:        2024,
		MSRP:        msrp,
		Category:    domain.CategorySedan,
		FuelType:    domain.FuelGas,
		MPGCombined: dec(mpg),
		Seating:     5,
		Reliability: dec(reliability),
	}
}

func scenarioProfile() domain.FinancialProfile {
	return domain.FinancialProfile{
		AnnualIncome: decimal.NewFromInt(75000),
		CreditScore:  720,
		BudgetMin:    decimal.NewFromInt(25000),
		BudgetMax:    decimal.NewFromInt(40000),
		LeaseTerm:    48,
	}
}
