package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
)

// MaxVehicles bounds how many vehicles one comparison can hold
const MaxVehicles = 5

// CompareEngine orchestrates vehicle comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	AnnualMileage int                        // 0 uses the default mileage
	Factors       domain.DepreciationFactors // applied to every vehicle's resale
	ProfilePath   string                     // shown in reports
}

// Compare scores the vehicles for the profile and measures the rest against
// the first id. TCO runs over the profile's lease term. Unknown ids are
// skipped; at least two vehicles must remain.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	profile domain.FinancialProfile,
	ids []string,
	options CompareOptions,
) (*ComparisonSet, error) {
	if len(ids) > MaxVehicles {
		return nil, fmt.Errorf("compare: at most %d vehicles, got %d", MaxVehicles, len(ids))
	}

	matches, err := ce.CalcEngine.MatchSelected(profile, ids)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	if len(matches) < 2 {
		return nil, fmt.Errorf("compare: %d known vehicles: %w", len(matches), domain.ErrInsufficientVehicle)
	}

	results := make([]ComparisonResult, 0, len(matches))
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v := m.Vehicle
		tco, err := ce.CalcEngine.TCOFromVehicle(calculation.TCOInput{
			VehiclePrice:  v.Price(),
			DownPayment:   v.Price().Mul(calculation.MatchDownPaymentRate),
			TermMonths:    profile.LeaseTerm,
			CreditScore:   profile.CreditScore,
			MPGCombined:   v.MPGCombined,
			Reliability:   v.Reliability,
			AnnualMileage: options.AnnualMileage,
			Factors:       options.Factors,
		})
		if err != nil {
			return nil, fmt.Errorf("compare %s: %w", v.ID, err)
		}
		results = append(results, ce.MetricsCalculator.CalculateMetrics(m, *tco))
	}

	base := results[0]
	alternatives := make([]ComparisonResult, 0, len(results)-1)
	for _, alt := range results[1:] {
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, base))
	}

	compSet := &ComparisonSet{
		BaseVehicleID:      base.VehicleID,
		BaseResult:         &base,
		AlternativeResults: alternatives,
		TermMonths:         profile.LeaseTerm,
		ProfilePath:        options.ProfilePath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
