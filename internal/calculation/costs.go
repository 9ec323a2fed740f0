package calculation

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultGasPrice is dollars per gallon when none is configured
var DefaultGasPrice = decimal.NewFromFloat(3.50)

// Insurance pricing: a base premium scaled by vehicle value, then by credit tier
var (
	insuranceBase        = decimal.NewFromInt(145)
	insurancePivotPrice  = decimal.NewFromInt(30000)
	insurancePriceSpan   = decimal.NewFromInt(100000)
	insurancePriceWeight = decimal.NewFromFloat(0.3)
	insuranceMinFactor   = decimal.NewFromFloat(0.7)
	insuranceMaxFactor   = decimal.NewFromFloat(1.5)
)

// EstimateInsurance returns the monthly premium in whole dollars
func EstimateInsurance(vehiclePrice decimal.Decimal, creditScore int) decimal.Decimal {
	priceFactor := decimal.NewFromInt(1).Add(
		vehiclePrice.Sub(insurancePivotPrice).Div(insurancePriceSpan).Mul(insurancePriceWeight))
	monthly := insuranceBase.Mul(clamp(priceFactor, insuranceMinFactor, insuranceMaxFactor))

	switch {
	case creditScore >= 720:
		monthly = monthly.Mul(decimal.NewFromFloat(0.85))
	case creditScore >= 650:
		// standard rate
	default:
		monthly = monthly.Mul(decimal.NewFromFloat(1.25))
	}
	return monthly.Round(0)
}

// FuelCost returns monthly fuel spend in cents. A non-positive mileage uses
// DefaultAnnualMileage and a non-positive gas price uses DefaultGasPrice.
func FuelCost(mpgCombined decimal.Decimal, annualMileage int, gasPrice decimal.Decimal) decimal.Decimal {
	if !mpgCombined.IsPositive() {
		return decimal.Zero
	}
	if annualMileage <= 0 {
		annualMileage = domain.DefaultAnnualMileage
	}
	if !gasPrice.IsPositive() {
		gasPrice = DefaultGasPrice
	}
	gallons := decimal.NewFromInt(int64(annualMileage)).Div(mpgCombined)
	return gallons.Mul(gasPrice).Div(twelve).Round(2)
}

// EstimateMaintenanceCost returns monthly upkeep in whole dollars. Pricier
// vehicles start from a higher base; reliability above 4.0 lowers it.
func EstimateMaintenanceCost(vehiclePrice, reliability decimal.Decimal) decimal.Decimal {
	monthly := decimal.NewFromInt(75)
	switch {
	case vehiclePrice.GreaterThan(decimal.NewFromInt(45000)):
		monthly = decimal.NewFromInt(100)
	case vehiclePrice.GreaterThan(decimal.NewFromInt(35000)):
		monthly = decimal.NewFromInt(85)
	}

	factor := decimal.NewFromInt(1).Sub(reliability.Sub(decimal.NewFromInt(4)).Mul(decimal.NewFromFloat(0.15)))
	monthly = monthly.Mul(clamp(factor, decimal.NewFromFloat(0.7), decimal.NewFromFloat(1.3)))
	return monthly.Round(0)
}

// EstimateTaxesAndFees returns monthly registration and fees in whole dollars
func EstimateTaxesAndFees(vehiclePrice decimal.Decimal) decimal.Decimal {
	return vehiclePrice.Mul(decimal.NewFromFloat(0.0008)).Add(decimal.NewFromInt(50)).Round(0)
}

// CostInput describes a financed vehicle for monthly cost estimation
type CostInput struct {
	VehiclePrice  decimal.Decimal
	DownPayment   decimal.Decimal
	APR           decimal.Decimal
	TermMonths    int
	CreditScore   int
	MPGCombined   decimal.Decimal
	Reliability   decimal.Decimal
	AnnualMileage int             // defaults to 12,000
	GasPrice      decimal.Decimal // defaults to DefaultGasPrice
}

// Validate checks the cost input invariants
func (in CostInput) Validate() error {
	if !in.VehiclePrice.IsPositive() {
		return fmt.Errorf("vehicle price %s: %w", in.VehiclePrice.String(), domain.ErrInvalidPrice)
	}
	if in.DownPayment.IsNegative() {
		return fmt.Errorf("down payment %s: %w", in.DownPayment.String(), domain.ErrInvalidDownPayment)
	}
	if err := ValidateLoan(in.VehiclePrice.Sub(in.DownPayment), in.APR, in.TermMonths); err != nil {
		return err
	}
	if err := domain.ValidateCreditScore(in.CreditScore); err != nil {
		return err
	}
	if !in.MPGCombined.IsPositive() {
		return fmt.Errorf("mpg %s: %w", in.MPGCombined.String(), domain.ErrInvalidMPG)
	}
	if err := domain.ValidateReliability(in.Reliability); err != nil {
		return err
	}
	if in.AnnualMileage < 0 {
		return fmt.Errorf("annual mileage %d: %w", in.AnnualMileage, domain.ErrInvalidMileage)
	}
	return nil
}

// CalculateTotalMonthlyCost combines the loan payment with the recurring
// ownership estimates. The total is rounded to whole dollars.
func CalculateTotalMonthlyCost(in CostInput) domain.TotalMonthlyCost {
	payment := MonthlyPayment(in.VehiclePrice.Sub(in.DownPayment), in.APR, in.TermMonths)
	insurance := EstimateInsurance(in.VehiclePrice, in.CreditScore)
	fuel := FuelCost(in.MPGCombined, in.AnnualMileage, in.GasPrice)
	maintenance := EstimateMaintenanceCost(in.VehiclePrice, in.Reliability)
	taxes := EstimateTaxesAndFees(in.VehiclePrice)

	return domain.TotalMonthlyCost{
		Payment:      payment,
		Insurance:    insurance,
		Fuel:         fuel,
		Maintenance:  maintenance,
		TaxesAndFees: taxes,
		Total:        payment.Add(insurance).Add(fuel).Add(maintenance).Add(taxes).Round(0),
	}
}
