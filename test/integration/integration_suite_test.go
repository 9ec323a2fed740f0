package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleProfile = "../../configs/shopper.example.yaml"

// loadExample parses the example profile and builds an engine over the
// built-in catalog
func loadExample(t *testing.T) (*domain.Shopper, *calculation.Engine) {
	t.Helper()
	shopper, err := config.NewInputParser().LoadFromFile(exampleProfile)
	require.NoError(t, err)
	return shopper, calculation.NewEngine(catalog.Default())
}

// TestIntegrationSmokeTest runs a quick smoke test of core functionality
func TestIntegrationSmokeTest(t *testing.T) {
	t.Run("basic_match", func(t *testing.T) {
		shopper, engine := loadExample(t)

		matches, err := engine.Match(shopper.Financial, 5)
		require.NoError(t, err)
		require.Len(t, matches, 5)
		assert.Equal(t, "camry-hybrid-se", matches[0].Vehicle.ID)
		assert.Equal(t, 97, matches[0].MatchPercentage)
	})

	t.Run("basic_output_generation", func(t *testing.T) {
		shopper, engine := loadExample(t)

		report, err := output.BuildReport(engine, shopper, 5, time.Now())
		require.NoError(t, err)

		for _, format := range []string{"console", "json"} {
			f := output.GetFormatterByName(format)
			require.NotNil(t, f, format)
			data, err := f.Format(report)
			assert.NoError(t, err, "Should generate %s output", format)
			assert.NotEmpty(t, data)
		}
	})
}

// TestIntegrationRegression tests for regression issues
func TestIntegrationRegression(t *testing.T) {
	t.Run("calculation_consistency", func(t *testing.T) {
		shopper, engine := loadExample(t)

		// Run ranking twice
		first, err := engine.Match(shopper.Financial, 0)
		require.NoError(t, err)
		second, err := engine.Match(shopper.Financial, 0)
		require.NoError(t, err)

		require.Equal(t, len(first), len(second), "Should have same number of matches")
		for i := range first {
			assert.Equal(t, first[i].Vehicle.ID, second[i].Vehicle.ID, "Ranking order should match")
			assert.Equal(t, first[i].MatchPercentage, second[i].MatchPercentage)
			assert.True(t, first[i].MonthlyPayment.Equal(second[i].MonthlyPayment), "Payments should match")
		}
	})

	t.Run("output_format_consistency", func(t *testing.T) {
		shopper, engine := loadExample(t)
		report, err := output.BuildReport(engine, shopper, 5, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		for _, format := range output.AvailableFormats() {
			t.Run(fmt.Sprintf("format_%s", format), func(t *testing.T) {
				f := output.GetFormatterByName(format)
				require.NotNil(t, f)
				first, err := f.Format(report)
				require.NoError(t, err, "Should generate %s output", format)
				second, err := f.Format(report)
				require.NoError(t, err)
				assert.Equal(t, string(first), string(second), "%s output should be deterministic", format)
			})
		}
	})
}

// TestIntegrationBenchmarks runs performance checks
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}

	t.Run("match_performance", func(t *testing.T) {
		shopper, engine := loadExample(t)

		start := time.Now()
		for i := 0; i < 100; i++ {
			_, err := engine.Match(shopper.Financial, 0)
			require.NoError(t, err)
		}
		duration := time.Since(start)

		assert.Less(t, duration, 10*time.Second, "100 rankings should complete within 10 seconds")
		t.Logf("100 rankings completed in %v", duration)
	})

	t.Run("sensitivity_performance", func(t *testing.T) {
		shopper, engine := loadExample(t)
		v, err := engine.Vehicle("camry-le")
		require.NoError(t, err)

		analyzer := calculation.NewSensitivityAnalyzer(engine)
		base := calculation.AffordabilityInput{
			AnnualIncome:  shopper.Financial.AnnualIncome,
			CreditScore:   shopper.Financial.CreditScore,
			VehiclePrice:  v.Price(),
			DownPayment:   v.Price().Mul(calculation.MatchDownPaymentRate),
			LeaseTerm:     shopper.Financial.LeaseTerm,
			MPGCombined:   v.MPGCombined,
			Reliability:   v.Reliability,
			AnnualMileage: shopper.Lifestyle.AnnualMileage(),
		}
		income, err := analyzer.DefaultParameter(calculation.ParamAnnualIncome, base)
		require.NoError(t, err)
		price, err := analyzer.DefaultParameter(calculation.ParamVehiclePrice, base)
		require.NoError(t, err)

		start := time.Now()
		_, err = analyzer.AnalyzeParameterMatrix(context.Background(), base, income, price)
		duration := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, duration, 5*time.Second, "Matrix should complete within 5 seconds")
		t.Logf("5x5 matrix completed in %v", duration)
	})
}

// TestIntegrationDataValidation tests data validation across the system
func TestIntegrationDataValidation(t *testing.T) {
	t.Run("profile_data_validation", func(t *testing.T) {
		parser := config.NewInputParser()
		shopper, err := parser.LoadFromFile(exampleProfile)
		require.NoError(t, err)
		require.NoError(t, parser.ValidateConfiguration(shopper))

		assert.NotEmpty(t, shopper.Name, "Should have a name")
		assert.True(t, shopper.Financial.AnnualIncome.IsPositive(), "Income should be positive")
		assert.GreaterOrEqual(t, shopper.Financial.CreditScore, domain.MinCreditScore)
		assert.LessOrEqual(t, shopper.Financial.CreditScore, domain.MaxCreditScore)
		assert.True(t, shopper.Factors.GoodCondition)
	})

	t.Run("shortlist_resolves", func(t *testing.T) {
		shopper, engine := loadExample(t)
		for _, id := range shopper.Shortlist {
			_, err := engine.Vehicle(id)
			assert.NoError(t, err, "Shortlist vehicle %s should exist", id)
		}
	})

	t.Run("catalog_validation", func(t *testing.T) {
		for _, v := range catalog.Default().All() {
			assert.NoError(t, v.Validate(), "Catalog vehicle %s should be valid", v.ID)
		}
	})

	t.Run("match_result_validation", func(t *testing.T) {
		shopper, engine := loadExample(t)
		matches, err := engine.Match(shopper.Financial, 0)
		require.NoError(t, err)

		for i, m := range matches {
			assert.GreaterOrEqual(t, m.MatchPercentage, 0)
			assert.LessOrEqual(t, m.MatchPercentage, 100)
			assert.True(t, m.MonthlyPayment.IsPositive(), "%s payment should be positive", m.Vehicle.ID)
			assert.True(t, m.TotalMonthlyCost.Total.GreaterThanOrEqual(m.MonthlyPayment))
			if i > 0 {
				assert.LessOrEqual(t, m.MatchPercentage, matches[i-1].MatchPercentage, "Matches should be sorted")
			}
		}
	})
}
