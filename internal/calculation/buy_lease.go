package calculation

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// Straight-line depreciation assumed when comparing buying to leasing:
// 40% of the price over five years.
var (
	buyDepreciationRate  = decimal.NewFromFloat(0.40)
	buyDepreciationYears = decimal.NewFromInt(5)
)

// BuyVsLeaseInput describes a purchase loan and a competing lease
type BuyVsLeaseInput struct {
	VehiclePrice     decimal.Decimal `json:"vehiclePrice"`
	DownPayment      decimal.Decimal `json:"downPayment"`
	LoanTerm         int             `json:"loanTerm"` // months
	APR              decimal.Decimal `json:"apr"`
	LeaseDownPayment decimal.Decimal `json:"leaseDownPayment"`
	LeaseMonthly     decimal.Decimal `json:"leaseMonthly"`
	LeaseTerm        int             `json:"leaseTerm"` // months
}

// Validate checks the buy-vs-lease input invariants
func (in BuyVsLeaseInput) Validate() error {
	if !in.VehiclePrice.IsPositive() {
		return fmt.Errorf("vehicle price %s: %w", in.VehiclePrice.String(), domain.ErrInvalidPrice)
	}
	if in.DownPayment.IsNegative() || in.LeaseDownPayment.IsNegative() {
		return fmt.Errorf("down payments must not be negative: %w", domain.ErrInvalidDownPayment)
	}
	if in.DownPayment.GreaterThan(in.VehiclePrice) {
		return fmt.Errorf("down payment %s exceeds price: %w", in.DownPayment.String(), domain.ErrInvalidDownPayment)
	}
	if err := ValidateLoan(in.VehiclePrice.Sub(in.DownPayment), in.APR, in.LoanTerm); err != nil {
		return err
	}
	if in.LeaseMonthly.IsNegative() {
		return fmt.Errorf("lease payment %s: %w", in.LeaseMonthly.String(), domain.ErrInvalidPrice)
	}
	if err := domain.ValidateTerm(in.LeaseTerm); err != nil {
		return fmt.Errorf("lease term: %w", err)
	}
	return nil
}

// BuyVsLease compares the net cost of financing a purchase, after its
// residual value, with the total cost of a lease. Savings are reported as a
// magnitude; Recommendation names the cheaper choice.
func BuyVsLease(in BuyVsLeaseInput) (*domain.BuyVsLeaseResult, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("buy vs lease: %w", err)
	}

	term := decimal.NewFromInt(int64(in.LoanTerm))
	payment := UnroundedMonthlyPayment(in.VehiclePrice.Sub(in.DownPayment), in.APR, in.LoanTerm)
	totalBuy := in.DownPayment.Add(payment.Mul(term))

	yearsOwned := term.Div(twelve)
	depreciation := in.VehiclePrice.Mul(buyDepreciationRate.Div(buyDepreciationYears).Mul(yearsOwned))
	residual := in.VehiclePrice.Sub(depreciation)
	netBuy := totalBuy.Sub(residual)

	totalLease := in.LeaseDownPayment.Add(in.LeaseMonthly.Mul(decimal.NewFromInt(int64(in.LeaseTerm))))
	savings := totalLease.Sub(netBuy)

	choice := domain.ChoiceLease
	if savings.IsPositive() {
		choice = domain.ChoiceBuy
	}

	return &domain.BuyVsLeaseResult{
		BuyMonthlyPayment: payment.Round(2),
		TotalBuyCost:      totalBuy.Round(2),
		ResidualValue:     residual.Round(2),
		NetBuyCost:        netBuy.Round(2),
		TotalLeaseCost:    totalLease.Round(2),
		Recommendation:    choice,
		Savings:           savings.Abs().Round(2),
	}, nil
}
