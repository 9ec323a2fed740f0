package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultMatchLimit is how many ranked vehicles Match returns when no limit is given
const DefaultMatchLimit = 10

// MatchDownPaymentRate is the down payment assumed when ranking the catalog
var MatchDownPaymentRate = decimal.NewFromFloat(0.1)

// MatchCriteria is the shopper side of a match score
type MatchCriteria struct {
	MonthlyIncome decimal.Decimal
	BudgetMin     decimal.Decimal
	BudgetMax     decimal.Decimal
	LeaseTerm     int
	CreditScore   int
}

// Match score weights: price fit 40, reliability 30, payment affordability 20,
// fuel efficiency 10.
var (
	priceFitWeight    = decimal.NewFromInt(40)
	reliabilityWeight = decimal.NewFromInt(30)
	efficiencyWeight  = decimal.NewFromInt(10)
	efficiencyMPG     = decimal.NewFromInt(30)
)

func priceFit(price, budgetMin, budgetMax decimal.Decimal) decimal.Decimal {
	switch {
	case price.LessThan(budgetMin):
		return priceFitWeight.Mul(price).Div(budgetMin)
	case price.GreaterThan(budgetMax):
		return priceFitWeight.Mul(budgetMax).Div(price)
	default:
		return priceFitWeight
	}
}

// paymentFit scores the payment on 90% of the price against monthly income
func paymentFit(price decimal.Decimal, c MatchCriteria) decimal.Decimal {
	payment := MonthlyPayment(price.Mul(decimal.NewFromFloat(0.9)), ResolveAPR(c.CreditScore), c.LeaseTerm)
	switch {
	case payment.LessThan(c.MonthlyIncome.Mul(decimal.NewFromFloat(0.15))):
		return decimal.NewFromInt(20)
	case payment.LessThan(c.MonthlyIncome.Mul(decimal.NewFromFloat(0.20))):
		return decimal.NewFromInt(15)
	case payment.LessThan(c.MonthlyIncome.Mul(decimal.NewFromFloat(0.25))):
		return decimal.NewFromInt(10)
	default:
		return decimal.NewFromInt(5)
	}
}

// MatchPercentage is the composite 0-100 fit between a vehicle and a shopper
func MatchPercentage(price, reliability, mpgCombined decimal.Decimal, c MatchCriteria) int {
	score := priceFit(price, c.BudgetMin, c.BudgetMax)

	rel := reliability.Sub(decimal.NewFromInt(4)).Mul(reliabilityWeight)
	score = score.Add(clamp(rel, decimal.Zero, reliabilityWeight))

	score = score.Add(paymentFit(price, c))

	score = score.Add(decimal.Min(efficiencyWeight, mpgCombined.Div(efficiencyMPG).Mul(efficiencyWeight)))

	return roundScore(score)
}

// SalaryFit grades a loan payment against monthly net income
func SalaryFit(payment, monthlyNet decimal.Decimal) int {
	switch {
	case payment.LessThan(monthlyNet.Mul(decimal.NewFromFloat(0.15))):
		return 95
	case payment.LessThan(monthlyNet.Mul(decimal.NewFromFloat(0.20))):
		return 85
	default:
		return 70
	}
}

// TermMatch favours the shorter standard lease terms
func TermMatch(leaseTerm int) int {
	switch leaseTerm {
	case 36:
		return 95
	case 48:
		return 90
	default:
		return 85
	}
}

// ReliabilityScore maps a 1-5 rating onto 0-100
func ReliabilityScore(reliability decimal.Decimal) int {
	return int(reliability.Mul(decimal.NewFromInt(20)).Round(0).IntPart())
}

// ScoreVehicle evaluates one vehicle for a shopper whose net pay is known
func (e *Engine) ScoreVehicle(v domain.VehicleData, profile domain.FinancialProfile, netPay domain.NetPay) domain.VehicleMatch {
	price := v.Price()
	apr := ResolveAPR(profile.CreditScore)

	match := MatchPercentage(price, v.Reliability, v.MPGCombined, MatchCriteria{
		MonthlyIncome: netPay.MonthlyNet,
		BudgetMin:     profile.BudgetMin,
		BudgetMax:     profile.BudgetMax,
		LeaseTerm:     profile.LeaseTerm,
		CreditScore:   profile.CreditScore,
	})

	cost := CalculateTotalMonthlyCost(CostInput{
		VehiclePrice: price,
		DownPayment:  price.Mul(MatchDownPaymentRate),
		APR:          apr,
		TermMonths:   profile.LeaseTerm,
		CreditScore:  profile.CreditScore,
		MPGCombined:  v.MPGCombined,
		Reliability:  v.Reliability,
		GasPrice:     e.gasPrice(),
	})

	return domain.VehicleMatch{
		Vehicle:            v,
		MatchPercentage:    match,
		MonthlyPayment:     cost.Payment,
		TotalMonthlyCost:   cost,
		AffordabilityScore: DTIScore(netPay.MonthlyNet, cost.Total, profile.CreditScore, netPay.VolatilityFactor),
		SalaryFit:          SalaryFit(cost.Payment, netPay.MonthlyNet),
		ReliabilityScore:   ReliabilityScore(v.Reliability),
		TermMatch:          TermMatch(profile.LeaseTerm),
	}
}

// Match ranks the catalog for a shopper, best match first. Vehicles with
// equal scores keep catalog order. A non-positive limit returns
// DefaultMatchLimit vehicles.
func (e *Engine) Match(profile domain.FinancialProfile, limit int) ([]domain.VehicleMatch, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	if e.Source == nil {
		return nil, fmt.Errorf("match: no vehicle catalog configured")
	}
	netPay, err := e.NetPayCalc.Calculate(profile.AnnualIncome, profile.EmploymentSubsidy)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	vehicles := e.Source.All()
	matches := make([]domain.VehicleMatch, 0, len(vehicles))
	for _, v := range vehicles {
		matches = append(matches, e.ScoreVehicle(v, profile, netPay))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchPercentage > matches[j].MatchPercentage
	})

	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	if limit < len(matches) {
		matches = matches[:limit]
	}

	e.Logger.Debugf("match: ranked %d vehicles, returning %d (monthly net %s)", len(vehicles), len(matches), netPay.MonthlyNet.StringFixed(2))
	return matches, nil
}

// MatchSelected scores only the requested vehicles, in the order given.
// Unknown ids are skipped.
func (e *Engine) MatchSelected(profile domain.FinancialProfile, ids []string) ([]domain.VehicleMatch, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	if e.Source == nil {
		return nil, fmt.Errorf("match: no vehicle catalog configured")
	}
	netPay, err := e.NetPayCalc.Calculate(profile.AnnualIncome, profile.EmploymentSubsidy)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	matches := make([]domain.VehicleMatch, 0, len(ids))
	for _, id := range ids {
		v, ok := e.Source.ByID(id)
		if !ok {
			e.Logger.Warnf("match: unknown vehicle %q skipped", id)
			continue
		}
		matches = append(matches, e.ScoreVehicle(v, profile, netPay))
	}
	return matches, nil
}
