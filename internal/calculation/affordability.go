package calculation

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AffordabilityInput is a single vehicle evaluated against a shopper's income
type AffordabilityInput struct {
	AnnualIncome      decimal.Decimal `json:"annualIncome"`
	CreditScore       int             `json:"creditScore"`
	EmploymentSubsidy decimal.Decimal `json:"employmentSubsidy"`
	VehiclePrice      decimal.Decimal `json:"vehiclePrice"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	LeaseTerm         int             `json:"leaseTerm"`
	MPGCombined       decimal.Decimal `json:"mpgCombined"`
	Reliability       decimal.Decimal `json:"reliability"`
	AnnualMileage     int             `json:"annualMileage,omitempty"`
}

// Validate checks the affordability input invariants
func (in AffordabilityInput) Validate() error {
	if !in.AnnualIncome.IsPositive() {
		return fmt.Errorf("annual income %s: %w", in.AnnualIncome.String(), domain.ErrInvalidIncome)
	}
	if in.EmploymentSubsidy.IsNegative() {
		return fmt.Errorf("employment subsidy %s: %w", in.EmploymentSubsidy.String(), domain.ErrInvalidSubsidy)
	}
	return in.costInput(decimal.Zero, decimal.Zero).Validate()
}

func (in AffordabilityInput) costInput(apr, gasPrice decimal.Decimal) CostInput {
	return CostInput{
		VehiclePrice:  in.VehiclePrice,
		DownPayment:   in.DownPayment,
		APR:           apr,
		TermMonths:    in.LeaseTerm,
		CreditScore:   in.CreditScore,
		MPGCombined:   in.MPGCombined,
		Reliability:   in.Reliability,
		AnnualMileage: in.AnnualMileage,
		GasPrice:      gasPrice,
	}
}

// Price ratio tiers: a vehicle priced at or under Ratio × the affordable
// price scores Score.
var priceRatioTiers = []struct {
	Ratio decimal.Decimal
	Score int
}{
	{decimal.NewFromFloat(0.70), 95},
	{decimal.NewFromFloat(0.85), 80},
	{decimal.NewFromFloat(1.00), 60},
	{decimal.NewFromFloat(1.15), 40},
}

// PriceRatioScore scores a price against the shopper's affordable price
func PriceRatioScore(vehiclePrice, maxAffordable decimal.Decimal) int {
	if !maxAffordable.IsPositive() {
		return 20
	}
	ratio := vehiclePrice.Div(maxAffordable)
	for _, tier := range priceRatioTiers {
		if ratio.LessThanOrEqual(tier.Ratio) {
			return tier.Score
		}
	}
	return 20
}

// applyPaymentPenalty lowers a score when the all-in monthly cost takes more
// than 20% (−10) or 25% (−20) of monthly net income. The score floors at 0.
func applyPaymentPenalty(score int, paymentRatio decimal.Decimal) int {
	switch {
	case paymentRatio.GreaterThan(decimal.NewFromFloat(0.25)):
		score -= 20
	case paymentRatio.GreaterThan(decimal.NewFromFloat(0.20)):
		score -= 10
	}
	if score < 0 {
		return 0
	}
	return score
}

// FormatDollars renders a whole-dollar amount with thousands separators
func FormatDollars(amount decimal.Decimal) string {
	return "$" + message.NewPrinter(language.English).Sprintf("%d", amount.Round(0).IntPart())
}

// AffordabilityRecommendation is the advice sentence for a score
func AffordabilityRecommendation(score int, maxAffordable decimal.Decimal) string {
	limit := FormatDollars(maxAffordable)
	switch {
	case score >= 80:
		return fmt.Sprintf("Excellent fit! This vehicle is well within your budget. Based on your income and credit score, you can afford up to %s.", limit)
	case score >= 60:
		return fmt.Sprintf("Good match. This vehicle fits your budget, though it will be a significant monthly expense. Maximum recommended budget: %s.", limit)
	case score >= 40:
		return fmt.Sprintf("Proceed with caution. This vehicle is at or above your recommended limit of %s.", limit)
	default:
		return fmt.Sprintf("Consider a less expensive option. This vehicle exceeds your recommended budget of %s and may strain your finances.", limit)
	}
}

// DTIScore rates a monthly cost against income on a 0-100 scale.
// A 30% debt-to-income ratio zeroes the base score; each credit point above
// 650 adds a tenth of a point and volatility subtracts 100 points per unit.
func DTIScore(monthlyIncome, totalMonthlyCost decimal.Decimal, creditScore int, volatility decimal.Decimal) int {
	base := decimal.Zero
	if monthlyIncome.IsPositive() {
		dti := totalMonthlyCost.Div(monthlyIncome)
		base = hundred.Mul(decimal.NewFromInt(1).Sub(decimal.Min(decimal.NewFromInt(1), dti.Div(decimal.NewFromFloat(0.3)))))
	}
	credit := decimal.NewFromInt(int64(creditScore - 650)).Div(decimal.NewFromInt(10))
	return roundScore(base.Add(credit).Sub(volatility.Mul(hundred)))
}

var breakdownColors = []string{
	"hsl(var(--chart-1))",
	"hsl(var(--chart-2))",
	"hsl(var(--chart-3))",
	"hsl(var(--chart-4))",
	"hsl(var(--chart-5))",
}

// CostBreakdown lists the components of a monthly cost for charting
func CostBreakdown(cost domain.TotalMonthlyCost) []domain.BreakdownItem {
	values := []struct {
		name  string
		value decimal.Decimal
	}{
		{"Monthly Payment", cost.Payment},
		{"Insurance", cost.Insurance},
		{"Fuel", cost.Fuel},
		{"Maintenance", cost.Maintenance},
		{"Taxes & Fees", cost.TaxesAndFees},
	}
	items := make([]domain.BreakdownItem, len(values))
	for i, v := range values {
		items[i] = domain.BreakdownItem{Name: v.name, Value: v.value, Color: breakdownColors[i]}
	}
	return items
}

// CalculateAffordability answers whether a shopper can afford one vehicle
func (e *Engine) CalculateAffordability(in AffordabilityInput) (*domain.AffordabilityResult, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("affordability: %w", err)
	}

	netPay, err := e.NetPayCalc.Calculate(in.AnnualIncome, in.EmploymentSubsidy)
	if err != nil {
		return nil, fmt.Errorf("affordability: %w", err)
	}
	apr := ResolveAPR(in.CreditScore)
	cost := CalculateTotalMonthlyCost(in.costInput(apr, e.gasPrice()))
	maxAffordable := AffordableCarPrice(in.AnnualIncome, in.CreditScore)

	paymentRatio := decimal.Zero
	if netPay.MonthlyNet.IsPositive() {
		paymentRatio = cost.Total.Div(netPay.MonthlyNet)
	}
	score := applyPaymentPenalty(PriceRatioScore(in.VehiclePrice, maxAffordable), paymentRatio)
	canAfford := in.VehiclePrice.LessThanOrEqual(maxAffordable) &&
		cost.Total.LessThan(netPay.MonthlyNet.Mul(decimal.NewFromFloat(0.25)))

	e.Logger.Debugf("affordability: price=%s max=%s total=%s monthlyNet=%s score=%d",
		in.VehiclePrice.StringFixed(2), maxAffordable.StringFixed(2), cost.Total.String(), netPay.MonthlyNet.StringFixed(2), score)

	return &domain.AffordabilityResult{
		Score:             score,
		MonthlyNetIncome:  netPay.MonthlyNet,
		TotalMonthlyCost:  cost.Total,
		Breakdown:         CostBreakdown(cost),
		BudgetUtilization: paymentRatio.Mul(hundred),
		APR:               apr,
		CanAfford:         canAfford,
		Recommendation:    AffordabilityRecommendation(score, maxAffordable),
		MaxAffordable:     maxAffordable,
	}, nil
}
