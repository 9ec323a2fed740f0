package calculation

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX ASSUMPTIONS:
//
// 1. Federal brackets and standard deduction are the 2024 single-filer tables.
//    Shoppers are treated as single filers with no other deductions.
// 2. FICA is a flat 7.65% of gross with no Social Security wage-base cap.
// 3. No state or local income tax.

// TaxBracket represents a federal tax bracket. A zero Max marks the open-ended top bracket.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// width returns the span of the bracket and whether it is bounded
func (b TaxBracket) width() (decimal.Decimal, bool) {
	if b.Max.IsZero() {
		return decimal.Zero, false
	}
	return b.Max.Sub(b.Min), true
}

// FederalTaxCalculator handles federal income tax calculations
type FederalTaxCalculator struct {
	Year              int
	StandardDeduction decimal.Decimal
	Brackets          []TaxBracket
}

// NewFederalTaxCalculator2024 creates a federal tax calculator for 2024 single filers
func NewFederalTaxCalculator2024() *FederalTaxCalculator {
	return &FederalTaxCalculator{
		Year:              2024,
		StandardDeduction: decimal.NewFromInt(14600),
		Brackets: []TaxBracket{
			{decimal.Zero, decimal.NewFromInt(11600), decimal.NewFromFloat(0.10)},
			{decimal.NewFromInt(11600), decimal.NewFromInt(47150), decimal.NewFromFloat(0.12)},
			{decimal.NewFromInt(47150), decimal.NewFromInt(100525), decimal.NewFromFloat(0.22)},
			{decimal.NewFromInt(100525), decimal.NewFromInt(191950), decimal.NewFromFloat(0.24)},
			{decimal.NewFromInt(191950), decimal.NewFromInt(243725), decimal.NewFromFloat(0.32)},
			{decimal.NewFromInt(243725), decimal.NewFromInt(609350), decimal.NewFromFloat(0.35)},
			{decimal.NewFromInt(609350), decimal.Zero, decimal.NewFromFloat(0.37)},
		},
	}
}

// TaxableIncome subtracts the standard deduction, flooring at zero
func (ftc *FederalTaxCalculator) TaxableIncome(grossIncome decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, grossIncome.Sub(ftc.StandardDeduction))
}

// CalculateFederalTax calculates federal income tax on gross income.
// Taxable income is consumed bracket by bracket from the bottom.
func (ftc *FederalTaxCalculator) CalculateFederalTax(grossIncome decimal.Decimal) decimal.Decimal {
	remaining := ftc.TaxableIncome(grossIncome)

	var totalTax decimal.Decimal
	for _, bracket := range ftc.Brackets {
		if !remaining.IsPositive() {
			break
		}
		incomeInBracket := remaining
		if w, bounded := bracket.width(); bounded {
			incomeInBracket = decimal.Min(remaining, w)
		}
		totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		remaining = remaining.Sub(incomeInBracket)
	}

	return totalTax
}

// FICACalculator handles combined Social Security and Medicare withholding
type FICACalculator struct {
	Year int
	Rate decimal.Decimal
}

// NewFICACalculator2024 creates a FICA calculator at the combined 7.65% employee rate
func NewFICACalculator2024() *FICACalculator {
	return &FICACalculator{
		Year: 2024,
		Rate: decimal.NewFromFloat(0.0765),
	}
}

// CalculateFICA returns FICA owed on wages
func (fc *FICACalculator) CalculateFICA(wages decimal.Decimal) decimal.Decimal {
	if !wages.IsPositive() {
		return decimal.Zero
	}
	return wages.Mul(fc.Rate)
}

// NetPayCalculator converts gross income into take-home pay and a volatility factor
type NetPayCalculator struct {
	FederalTaxCalc *FederalTaxCalculator
	FICACalc       *FICACalculator

	// Volatility is VolatilityScale / income, clamped to [MinVolatility, MaxVolatility]
	VolatilityScale decimal.Decimal
	MinVolatility   decimal.Decimal
	MaxVolatility   decimal.Decimal
}

// NewNetPayCalculator creates a net pay calculator with 2024 tables
func NewNetPayCalculator() *NetPayCalculator {
	return &NetPayCalculator{
		FederalTaxCalc:  NewFederalTaxCalculator2024(),
		FICACalc:        NewFICACalculator2024(),
		VolatilityScale: decimal.NewFromInt(50000),
		MinVolatility:   decimal.NewFromFloat(0.05),
		MaxVolatility:   decimal.NewFromFloat(0.25),
	}
}

// Calculate estimates annual and monthly net pay. Zero income is accepted
// and yields zero taxes with the maximum volatility factor.
func (npc *NetPayCalculator) Calculate(annualIncome, employmentSubsidy decimal.Decimal) (domain.NetPay, error) {
	if annualIncome.IsNegative() {
		return domain.NetPay{}, fmt.Errorf("annual income %s: %w", annualIncome.String(), domain.ErrInvalidIncome)
	}
	if employmentSubsidy.IsNegative() {
		return domain.NetPay{}, fmt.Errorf("employment subsidy %s: %w", employmentSubsidy.String(), domain.ErrInvalidSubsidy)
	}

	federal := npc.FederalTaxCalc.CalculateFederalTax(annualIncome)
	fica := npc.FICACalc.CalculateFICA(annualIncome)
	net := annualIncome.Sub(federal).Sub(fica).Add(employmentSubsidy)

	return domain.NetPay{
		GrossIncome:      annualIncome,
		FederalTax:       federal,
		FICATax:          fica,
		NetIncome:        net,
		MonthlyNet:       net.Div(twelve),
		VolatilityFactor: npc.volatility(annualIncome),
	}, nil
}

func (npc *NetPayCalculator) volatility(annualIncome decimal.Decimal) decimal.Decimal {
	if !annualIncome.IsPositive() {
		return npc.MaxVolatility
	}
	return clamp(npc.VolatilityScale.Div(annualIncome), npc.MinVolatility, npc.MaxVolatility)
}
