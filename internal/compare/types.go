package compare

import (
	"strconv"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one vehicle's standing in a comparison
type ComparisonResult struct {
	VehicleID string              `json:"vehicleId"`
	Name      string              `json:"name"`
	Category  string              `json:"category"`
	FuelType  string              `json:"fuelType"`
	Match     domain.VehicleMatch `json:"-"`

	// Key metrics
	Price              decimal.Decimal  `json:"price"`
	MatchPercentage    int              `json:"matchPercentage"`
	MonthlyPayment     decimal.Decimal  `json:"monthlyPayment"`
	TotalMonthlyCost   decimal.Decimal  `json:"totalMonthlyCost"`
	AffordabilityScore int              `json:"affordabilityScore"`
	NetCost            decimal.Decimal  `json:"netCost"`
	ResaleValue        decimal.Decimal  `json:"resaleValue"`
	TCO                domain.TCOResult `json:"tco"`

	// Comparison to base
	MatchDiffFromBase       int             `json:"matchDiffFromBase"`
	MonthlyCostDiffFromBase decimal.Decimal `json:"monthlyCostDiffFromBase"`
	NetCostDiffFromBase     decimal.Decimal `json:"netCostDiffFromBase"`
	NetCostPctFromBase      decimal.Decimal `json:"netCostPctFromBase"`
}

// ComparisonSet is a base vehicle measured against its alternatives
type ComparisonSet struct {
	BaseVehicleID      string             `json:"baseVehicleId"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	TermMonths         int                `json:"termMonths"`
	ProfilePath        string             `json:"profilePath,omitempty"`
}

// All returns the base followed by the alternatives
func (cs *ComparisonSet) All() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// Matches returns the underlying vehicle matches in display order
func (cs *ComparisonSet) Matches() []domain.VehicleMatch {
	all := cs.All()
	out := make([]domain.VehicleMatch, len(all))
	for i, r := range all {
		out[i] = r.Match
	}
	return out
}

// MetricsCalculator extracts comparison metrics from a match and its TCO
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the per-vehicle metrics
func (mc *MetricsCalculator) CalculateMetrics(match domain.VehicleMatch, tco domain.TCOResult) ComparisonResult {
	v := match.Vehicle
	return ComparisonResult{
		VehicleID:          v.ID,
		Name:               v.DisplayName(),
		Category:           v.Category,
		FuelType:           v.FuelType,
		Match:              match,
		Price:              v.Price(),
		MatchPercentage:    match.MatchPercentage,
		MonthlyPayment:     match.MonthlyPayment,
		TotalMonthlyCost:   match.TotalMonthlyCost.Total,
		AffordabilityScore: match.AffordabilityScore,
		NetCost:            tco.NetCost,
		ResaleValue:        tco.ResaleValue,
		TCO:                tco,
	}
}

// CalculateComparison fills the deltas of a vehicle against the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.MatchDiffFromBase = alt.MatchPercentage - base.MatchPercentage
	alt.MonthlyCostDiffFromBase = alt.TotalMonthlyCost.Sub(base.TotalMonthlyCost)
	alt.NetCostDiffFromBase = alt.NetCost.Sub(base.NetCost)

	if !base.NetCost.IsZero() {
		alt.NetCostPctFromBase = alt.NetCostDiffFromBase.
			Div(base.NetCost).
			Mul(decimal.NewFromInt(100))
	}
	return alt
}

// GenerateRecommendations names the vehicles that beat the base on match
// percentage, monthly cost and net cost of ownership.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	bestMatch := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].MatchPercentage > bestMatch.MatchPercentage {
			bestMatch = &compSet.AlternativeResults[i]
		}
	}
	if bestMatch != base {
		recommendations = append(recommendations,
			"Best Match: "+bestMatch.Name+" scores "+
				strconv.Itoa(bestMatch.MatchPercentage-base.MatchPercentage)+" points higher than "+base.Name)
	}

	cheapest := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].TotalMonthlyCost.LessThan(cheapest.TotalMonthlyCost) {
			cheapest = &compSet.AlternativeResults[i]
		}
	}
	if cheapest != base {
		savings := base.TotalMonthlyCost.Sub(cheapest.TotalMonthlyCost)
		recommendations = append(recommendations,
			"Lowest Monthly Cost: "+cheapest.Name+" saves "+calculation.FormatDollars(savings)+" a month")
	}

	lowestTCO := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].NetCost.LessThan(lowestTCO.NetCost) {
			lowestTCO = &compSet.AlternativeResults[i]
		}
	}
	if lowestTCO != base {
		savings := base.NetCost.Sub(lowestTCO.NetCost)
		recommendations = append(recommendations,
			"Lowest Ownership Cost: "+lowestTCO.Name+" saves "+calculation.FormatDollars(savings)+
				" over "+strconv.Itoa(compSet.TermMonths)+" months")
	}

	return recommendations
}
