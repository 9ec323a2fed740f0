package output

import (
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportTime = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func testShopper() *domain.Shopper {
	return &domain.Shopper{
		Name: "Jordan",
		Financial: domain.FinancialProfile{
			AnnualIncome: decimal.NewFromInt(75000),
			CreditScore:  720,
			BudgetMin:    decimal.NewFromInt(25000),
			BudgetMax:    decimal.NewFromInt(40000),
			LeaseTerm:    48,
		},
	}
}

func buildTestReport(t *testing.T) *Report {
	t.Helper()
	report, err := BuildReport(calculation.NewEngine(catalog.Default()), testShopper(), 5, reportTime)
	require.NoError(t, err)
	return report
}

func TestBuildReport(t *testing.T) {
	report := buildTestReport(t)

	assert.Equal(t, "Jordan", report.ShopperName)
	assert.Equal(t, reportTime, report.GeneratedAt)
	assert.Equal(t, "Excellent", report.CreditRating)
	assert.Equal(t, "4.5", report.APR.String())
	assert.Equal(t, "37500", report.MaxAffordable.String())
	assert.Equal(t, "5076.79", report.NetPay.MonthlyNet.StringFixed(2))
	require.Len(t, report.Matches, 5)
	assert.Equal(t, "camry-hybrid-se", report.Matches[0].Vehicle.ID)
	assert.Len(t, report.Forecast, 7)
	assert.Equal(t, DefaultAssumptions, report.Assumptions)

	require.NotNil(t, report.TopPick)
	assert.Equal(t, "camry-hybrid-se", report.TopPick.Vehicle.ID)
	require.NotNil(t, report.TopPick.Affordability)
	assert.Len(t, report.TopPick.Affordability.Breakdown, 5)
	require.NotNil(t, report.TopPick.Resale)
	// four years keeps 55% of 31,900
	assert.Equal(t, "17545", report.TopPick.Resale.EstimatedValue.String())
}

func TestBuildReport_Shortlist(t *testing.T) {
	shopper := testShopper()
	shopper.Shortlist = []string{"rav4-le", "camry-le"}

	report, err := BuildReport(calculation.NewEngine(catalog.Default()), shopper, 5, reportTime)
	require.NoError(t, err)
	require.Len(t, report.Matches, 2)
	assert.Equal(t, "rav4-le", report.Matches[0].Vehicle.ID)
	assert.Equal(t, "rav4-le", report.TopPick.Vehicle.ID)
}

func TestBuildReport_NoMatches(t *testing.T) {
	shopper := testShopper()
	shopper.Shortlist = []string{"civic-lx"}

	report, err := BuildReport(calculation.NewEngine(catalog.Default()), shopper, 5, reportTime)
	require.NoError(t, err)
	assert.Empty(t, report.Matches)
	assert.Nil(t, report.TopPick)
}

func TestBuildReport_Errors(t *testing.T) {
	engine := calculation.NewEngine(catalog.Default())

	_, err := BuildReport(engine, nil, 5, reportTime)
	assert.Error(t, err)

	shopper := testShopper()
	shopper.Financial.AnnualIncome = decimal.Zero
	_, err = BuildReport(engine, shopper, 5, reportTime)
	assert.True(t, errors.Is(err, domain.ErrInvalidIncome))
}
