package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() domain.FinancialProfile {
	return domain.FinancialProfile{
		AnnualIncome: decimal.NewFromInt(75000),
		CreditScore:  720,
		BudgetMin:    decimal.NewFromInt(25000),
		BudgetMax:    decimal.NewFromInt(40000),
		LeaseTerm:    48,
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine(catalog.Default()))

	compSet, err := ce.Compare(context.Background(), testProfile(),
		[]string{"camry-le", "camry-hybrid-se", "unknown", "rav4-le"},
		CompareOptions{ProfilePath: "me.yaml"})
	require.NoError(t, err)

	assert.Equal(t, "camry-le", compSet.BaseVehicleID)
	assert.Equal(t, 48, compSet.TermMonths)
	assert.Equal(t, "me.yaml", compSet.ProfilePath)
	require.Len(t, compSet.AlternativeResults, 2)
	assert.Equal(t, "camry-hybrid-se", compSet.AlternativeResults[0].VehicleID)
	assert.Equal(t, "rav4-le", compSet.AlternativeResults[1].VehicleID)

	base := compSet.BaseResult
	hybrid := compSet.AlternativeResults[0]
	assert.Equal(t, 97, hybrid.MatchPercentage)
	assert.True(t, hybrid.TotalMonthlyCost.Equal(decimal.NewFromInt(987)))
	assert.Equal(t, hybrid.MatchPercentage-base.MatchPercentage, hybrid.MatchDiffFromBase)
	assert.True(t, hybrid.NetCostDiffFromBase.Equal(hybrid.NetCost.Sub(base.NetCost)))
	assert.True(t, hybrid.TCO.NetCost.Equal(hybrid.NetCost))
	assert.True(t, hybrid.NetCost.IsPositive())

	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Best Match: 2024 Camry Hybrid SE")

	matches := compSet.Matches()
	require.Len(t, matches, 3)
	assert.Equal(t, "camry-le", matches[0].Vehicle.ID)
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine(catalog.Default()))
	ctx := context.Background()

	_, err := ce.Compare(ctx, testProfile(), []string{"camry-le", "unknown"}, CompareOptions{})
	assert.True(t, errors.Is(err, domain.ErrInsufficientVehicle))

	_, err = ce.Compare(ctx, testProfile(), []string{"a", "b", "c", "d", "e", "f"}, CompareOptions{})
	assert.Error(t, err)

	bad := testProfile()
	bad.CreditScore = 100
	_, err = ce.Compare(ctx, bad, []string{"camry-le", "rav4-le"}, CompareOptions{})
	assert.True(t, errors.Is(err, domain.ErrInvalidCreditScore))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ce.Compare(cancelled, testProfile(), []string{"camry-le", "rav4-le"}, CompareOptions{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCompareEngine_FactorsRaiseResale(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine(catalog.Default()))
	ids := []string{"camry-le", "rav4-le"}

	plain, err := ce.Compare(context.Background(), testProfile(), ids, CompareOptions{})
	require.NoError(t, err)
	boosted, err := ce.Compare(context.Background(), testProfile(), ids,
		CompareOptions{Factors: domain.DepreciationFactors{LowMileage: true, GoodCondition: true}})
	require.NoError(t, err)

	assert.True(t, boosted.BaseResult.ResaleValue.GreaterThan(plain.BaseResult.ResaleValue))
	assert.True(t, boosted.BaseResult.NetCost.LessThan(plain.BaseResult.NetCost))
}

func TestGenerateRecommendations(t *testing.T) {
	base := ComparisonResult{Name: "A", MatchPercentage: 80, TotalMonthlyCost: decimal.NewFromInt(900), NetCost: decimal.NewFromInt(30000)}
	b := ComparisonResult{Name: "B", MatchPercentage: 90, TotalMonthlyCost: decimal.NewFromInt(950), NetCost: decimal.NewFromInt(29000)}
	c := ComparisonResult{Name: "C", MatchPercentage: 70, TotalMonthlyCost: decimal.NewFromInt(850), NetCost: decimal.NewFromInt(31000)}

	recs := GenerateRecommendations(&ComparisonSet{
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{b, c},
		TermMonths:         36,
	})
	assert.Equal(t, []string{
		"Best Match: B scores 10 points higher than A",
		"Lowest Monthly Cost: C saves $50 a month",
		"Lowest Ownership Cost: B saves $1,000 over 36 months",
	}, recs)

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: &base}))

	// base already best on every axis
	recs = GenerateRecommendations(&ComparisonSet{BaseResult: &b, AlternativeResults: []ComparisonResult{{
		Name: "D", MatchPercentage: 50, TotalMonthlyCost: decimal.NewFromInt(2000), NetCost: decimal.NewFromInt(90000),
	}}})
	assert.Empty(t, recs)
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	mc := NewMetricsCalculator()
	base := ComparisonResult{MatchPercentage: 90, TotalMonthlyCost: decimal.NewFromInt(1000), NetCost: decimal.NewFromInt(40000)}
	alt := ComparisonResult{MatchPercentage: 85, TotalMonthlyCost: decimal.NewFromInt(900), NetCost: decimal.NewFromInt(30000)}

	got := mc.CalculateComparison(alt, base)
	assert.Equal(t, -5, got.MatchDiffFromBase)
	assert.Equal(t, "-100", got.MonthlyCostDiffFromBase.String())
	assert.Equal(t, "-10000", got.NetCostDiffFromBase.String())
	assert.Equal(t, "-25", got.NetCostPctFromBase.String())

	zeroBase := mc.CalculateComparison(alt, ComparisonResult{})
	assert.True(t, zeroBase.NetCostPctFromBase.IsZero())
}
