package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// NotEnoughToCompare is returned by Compare for fewer than two matches
const NotEnoughToCompare = "Add more vehicles to compare."

// RuleBased writes template narratives from the match numbers alone
type RuleBased struct{}

// Recommend never fails
func (RuleBased) Recommend(_ context.Context, req Request) (Recommendation, error) {
	return ruleRecommendation(req), nil
}

// Compare names the top match
func (RuleBased) Compare(_ context.Context, matches []domain.VehicleMatch, _ UserSummary) (Comparison, error) {
	return ruleComparison(matches), nil
}

func ruleComparison(matches []domain.VehicleMatch) Comparison {
	if len(matches) < 2 {
		return Comparison{Text: NotEnoughToCompare, Source: SourceRules}
	}
	return Comparison{Text: topMatchSentence(matches[0]), Source: SourceRules}
}

func ruleRecommendation(req Request) Recommendation {
	m := req.Match
	v := m.Vehicle
	total := m.TotalMonthlyCost.Total.String()

	var financial string
	switch {
	case m.AffordabilityScore >= 80:
		financial = fmt.Sprintf("This vehicle is well within your financial comfort zone, with total monthly costs of $%s leaving ample budget for savings and other priorities.", total)
	case m.AffordabilityScore >= 60:
		financial = fmt.Sprintf("This vehicle represents a significant but manageable monthly commitment at $%s, fitting appropriately within your income range.", total)
	default:
		financial = fmt.Sprintf("While this vehicle is at the upper end of your budget, the monthly cost of $%s is still within acceptable financing parameters.", total)
	}

	value := "This model maintains"
	if v.FuelType == domain.FuelHybrid {
		value = "The hybrid powertrain provides excellent fuel economy"
	}
	years := domain.TermYears(req.Profile.LeaseTerm)

	summary := fmt.Sprintf("The %d %s %s is an excellent match for your financial profile, with a %d%% compatibility score. This %s fits comfortably within your budget while providing %s efficiency and Toyota's renowned reliability.",
		v.Year, v.Model, v.Trim, m.MatchPercentage, strings.ToLower(v.Category), strings.ToLower(v.FuelType))
	keyPoints := []string{
		fmt.Sprintf("Monthly payment of $%s represents %s%% of your income, leaving comfortable room for other expenses and savings",
			m.MonthlyPayment.String(), paymentRatio(m.MonthlyPayment, req.Profile.AnnualIncome)),
		fmt.Sprintf("Exceptional reliability rating of %s/5.0 minimizes unexpected maintenance costs over your %d-month lease term",
			v.Reliability.String(), req.Profile.LeaseTerm),
		fmt.Sprintf("Strong resale value with projected %d%% retention after 3 years, protecting your investment for the long term",
			threeYearRetention()),
	}
	reliability := fmt.Sprintf("With an industry-leading reliability score of %s/5.0, this Toyota model demonstrates exceptional dependability that will minimize repair costs and maximize peace of mind throughout your ownership.",
		v.Reliability.String())
	value = fmt.Sprintf("%s strong resale value typical of Toyota vehicles, with minimal depreciation protecting your investment over the %s-year term.",
		value, years.String())

	return Recommendation{
		Summary:            summary,
		KeyPoints:          keyPoints,
		FinancialInsight:   financial,
		ReliabilityInsight: reliability,
		ValueInsight:       value,
		Source:             SourceRules,
	}
}

// paymentRatio is the payment as a percentage of gross monthly income, one decimal
func paymentRatio(payment, annualIncome decimal.Decimal) string {
	if !annualIncome.IsPositive() {
		return "0.0"
	}
	monthly := annualIncome.Div(decimal.NewFromInt(12))
	return payment.Div(monthly).Mul(decimal.NewFromInt(100)).StringFixed(1)
}

func threeYearRetention() int {
	for _, p := range calculation.Forecast(domain.DepreciationFactors{}) {
		if p.Year == 3 {
			return p.Value
		}
	}
	return 0
}

func topMatchSentence(top domain.VehicleMatch) string {
	return fmt.Sprintf("The %s %s offers the best overall value with a %d%% match score and monthly payment of $%s, providing an optimal balance of affordability, reliability, and features for your budget.",
		top.Vehicle.Model, top.Vehicle.Trim, top.MatchPercentage, top.MonthlyPayment.String())
}
