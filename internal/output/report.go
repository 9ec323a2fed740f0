package output

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is the shopper-facing affordability and match summary every
// formatter renders.
type Report struct {
	GeneratedAt   time.Time               `json:"generatedAt"`
	ShopperName   string                  `json:"shopperName,omitempty"`
	Profile       domain.FinancialProfile `json:"profile"`
	NetPay        domain.NetPay           `json:"netPay"`
	CreditRating  string                  `json:"creditRating"`
	APR           decimal.Decimal         `json:"apr"`
	MaxAffordable decimal.Decimal         `json:"maxAffordablePrice"`
	Matches       []domain.VehicleMatch   `json:"matches"`
	TopPick       *TopPick                `json:"topPick,omitempty"`
	Forecast      []domain.ForecastPoint  `json:"forecast"`
	Assumptions   []string                `json:"assumptions"`
}

// TopPick details the best-ranked vehicle
type TopPick struct {
	Vehicle       domain.VehicleData          `json:"vehicle"`
	Affordability *domain.AffordabilityResult `json:"affordability"`
	Resale        *domain.ResaleEstimate      `json:"resale"`
}

// BuildReport ranks vehicles for the shopper and details the top pick. A
// shortlist restricts ranking to those ids in the order given; otherwise the
// best limit vehicles of the catalog are used.
func BuildReport(engine *calculation.Engine, shopper *domain.Shopper, limit int, now time.Time) (*Report, error) {
	if shopper == nil {
		return nil, fmt.Errorf("report: shopper is nil")
	}
	profile := shopper.Financial

	var (
		matches []domain.VehicleMatch
		err     error
	)
	if len(shopper.Shortlist) > 0 {
		matches, err = engine.MatchSelected(profile, shopper.Shortlist)
	} else {
		matches, err = engine.Match(profile, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	netPay, err := engine.NetPayCalc.Calculate(profile.AnnualIncome, profile.EmploymentSubsidy)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	report := &Report{
		GeneratedAt:   now,
		ShopperName:   shopper.Name,
		Profile:       profile,
		NetPay:        netPay,
		CreditRating:  calculation.CreditRating(profile.CreditScore),
		APR:           calculation.ResolveAPR(profile.CreditScore),
		MaxAffordable: calculation.AffordableCarPrice(profile.AnnualIncome, profile.CreditScore),
		Matches:       matches,
		Forecast:      calculation.Forecast(shopper.Factors),
		Assumptions:   DefaultAssumptions,
	}

	if len(matches) == 0 {
		return report, nil
	}

	top := matches[0].Vehicle
	price := top.Price()
	affordability, err := engine.CalculateAffordability(calculation.AffordabilityInput{
		AnnualIncome:      profile.AnnualIncome,
		CreditScore:       profile.CreditScore,
		EmploymentSubsidy: profile.EmploymentSubsidy,
		VehiclePrice:      price,
		DownPayment:       price.Mul(calculation.MatchDownPaymentRate),
		LeaseTerm:         profile.LeaseTerm,
		MPGCombined:       top.MPGCombined,
		Reliability:       top.Reliability,
		AnnualMileage:     shopper.Lifestyle.AnnualMileage(),
	})
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", top.ID, err)
	}

	years := domain.TermYears(profile.LeaseTerm)
	resale := calculation.ResaleValue(price, years, shopper.Factors)

	report.TopPick = &TopPick{
		Vehicle:       top,
		Affordability: affordability,
		Resale:        &resale,
	}
	return report, nil
}
