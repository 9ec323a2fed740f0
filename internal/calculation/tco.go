package calculation

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// RecurringCosts are the monthly non-loan costs of owning a vehicle
type RecurringCosts struct {
	Insurance    decimal.Decimal
	Fuel         decimal.Decimal
	Maintenance  decimal.Decimal
	TaxesAndFees decimal.Decimal
}

// CalculateTCO totals what a financed vehicle costs over the term, net of
// its resale value at the end of the term. Every figure is rounded to whole
// dollars; intermediate sums are not.
func CalculateTCO(vehiclePrice, downPayment, apr decimal.Decimal, termMonths int, recurring RecurringCosts, factors domain.DepreciationFactors) domain.TCOResult {
	if termMonths <= 0 {
		return domain.TCOResult{}
	}
	months := decimal.NewFromInt(int64(termMonths))

	payments := UnroundedMonthlyPayment(vehiclePrice.Sub(downPayment), apr, termMonths).Mul(months)
	insurance := recurring.Insurance.Mul(months)
	fuel := recurring.Fuel.Mul(months)
	maintenance := recurring.Maintenance.Mul(months)
	taxes := recurring.TaxesAndFees.Mul(months)

	resale := ResaleValue(vehiclePrice, months.Div(twelve), factors)
	depreciation := vehiclePrice.Sub(resale.EstimatedValue)

	totalPaid := downPayment.Add(payments).Add(insurance).Add(fuel).Add(maintenance).Add(taxes)
	netCost := totalPaid.Sub(resale.EstimatedValue)

	return domain.TCOResult{
		TotalPaid:         totalPaid.Round(0),
		Depreciation:      depreciation.Round(0),
		NetCost:           netCost.Round(0),
		MonthlyEquivalent: netCost.Div(months).Round(0),
		ResaleValue:       resale.EstimatedValue,
		Breakdown: domain.TCOBreakdown{
			Payments:     payments.Round(0),
			Insurance:    insurance.Round(0),
			Fuel:         fuel.Round(0),
			Maintenance:  maintenance.Round(0),
			TaxesAndFees: taxes.Round(0),
			Depreciation: depreciation.Round(0),
		},
	}
}

// TCOInput describes a vehicle whose recurring costs are estimated from its
// specs and the buyer's credit score
type TCOInput struct {
	VehiclePrice  decimal.Decimal            `json:"vehiclePrice"`
	DownPayment   decimal.Decimal            `json:"downPayment"`
	TermMonths    int                        `json:"termMonths"`
	CreditScore   int                        `json:"creditScore"`
	MPGCombined   decimal.Decimal            `json:"mpgCombined"`
	Reliability   decimal.Decimal            `json:"reliability"`
	AnnualMileage int                        `json:"annualMileage,omitempty"`
	Factors       domain.DepreciationFactors `json:"factors"`
}

func (in TCOInput) costInput(apr, gasPrice decimal.Decimal) CostInput {
	return CostInput{
		VehiclePrice:  in.VehiclePrice,
		DownPayment:   in.DownPayment,
		APR:           apr,
		TermMonths:    in.TermMonths,
		CreditScore:   in.CreditScore,
		MPGCombined:   in.MPGCombined,
		Reliability:   in.Reliability,
		AnnualMileage: in.AnnualMileage,
		GasPrice:      gasPrice,
	}
}

// TCOFromVehicle estimates recurring costs with the cost estimators and the
// credit-tier APR, then aggregates them with CalculateTCO.
func (e *Engine) TCOFromVehicle(in TCOInput) (*domain.TCOResult, error) {
	apr := ResolveAPR(in.CreditScore)
	ci := in.costInput(apr, e.gasPrice())
	if err := ci.Validate(); err != nil {
		return nil, fmt.Errorf("tco: %w", err)
	}

	recurring := RecurringCosts{
		Insurance:    EstimateInsurance(in.VehiclePrice, in.CreditScore),
		Fuel:         FuelCost(in.MPGCombined, in.AnnualMileage, ci.GasPrice),
		Maintenance:  EstimateMaintenanceCost(in.VehiclePrice, in.Reliability),
		TaxesAndFees: EstimateTaxesAndFees(in.VehiclePrice),
	}
	result := CalculateTCO(in.VehiclePrice, in.DownPayment, apr, in.TermMonths, recurring, in.Factors)

	e.Logger.Debugf("tco: price=%s term=%d netCost=%s monthly=%s", in.VehiclePrice.String(), in.TermMonths, result.NetCost.String(), result.MonthlyEquivalent.String())
	return &result, nil
}
