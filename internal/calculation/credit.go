package calculation

import "github.com/shopspring/decimal"

// creditTier maps a minimum credit score to a value; a score equal to the
// minimum belongs to the tier.
type creditTier struct {
	MinScore int
	Value    decimal.Decimal
	Label    string
}

// Auto loan APRs (percent) by credit tier, best first
var aprTiers = []creditTier{
	{720, decimal.NewFromFloat(4.5), "Excellent"},
	{690, decimal.NewFromFloat(6.2), "Good"},
	{630, decimal.NewFromFloat(8.9), "Fair"},
	{580, decimal.NewFromFloat(12.5), "Poor"},
	{0, decimal.NewFromFloat(15.9), "Very Poor"},
}

// Share of annual income a shopper can put toward a vehicle, by credit tier
var priceScalingTiers = []creditTier{
	{750, decimal.NewFromFloat(0.7), "Excellent"},
	{700, decimal.NewFromFloat(0.5), "Good"},
	{650, decimal.NewFromFloat(0.35), "Fair"},
	{600, decimal.NewFromFloat(0.25), "Poor"},
	{0, decimal.NewFromFloat(0.15), "Bad"},
}

func lookupTier(tiers []creditTier, score int) creditTier {
	for _, t := range tiers {
		if score >= t.MinScore {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// ResolveAPR returns the annual percentage rate offered at a credit score
func ResolveAPR(creditScore int) decimal.Decimal {
	return lookupTier(aprTiers, creditScore).Value
}

// CreditRating names the lending tier a credit score falls in
func CreditRating(creditScore int) string {
	return lookupTier(aprTiers, creditScore).Label
}

// CreditScalingFactor returns the income multiple used for the affordable price
func CreditScalingFactor(creditScore int) decimal.Decimal {
	return lookupTier(priceScalingTiers, creditScore).Value
}

// AffordableCarPrice is annual income scaled by the credit tier factor
func AffordableCarPrice(annualIncome decimal.Decimal, creditScore int) decimal.Decimal {
	return annualIncome.Mul(CreditScalingFactor(creditScore))
}
