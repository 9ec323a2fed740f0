package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidateLoan checks the inputs shared by every payment calculation
func ValidateLoan(principal, apr decimal.Decimal, termMonths int) error {
	if principal.IsNegative() {
		return fmt.Errorf("principal %s: %w", principal.String(), domain.ErrInvalidPrice)
	}
	if apr.IsNegative() {
		return fmt.Errorf("apr %s: %w", apr.String(), domain.ErrInvalidAPR)
	}
	return domain.ValidateTerm(termMonths)
}

// monthlyRate converts an APR in percent to a monthly fraction
func monthlyRate(apr decimal.Decimal) decimal.Decimal {
	return apr.Div(hundred).Div(twelve)
}

// annuity evaluates P·r(1+r)^n / ((1+r)^n − 1) in floating point.
// ok is false when the rate is zero and the closed form does not apply.
// When (1+r)^n overflows the payment takes its limit, the interest P·r.
func annuity(principal, apr decimal.Decimal, termMonths int) (payment float64, ok bool) {
	a, _ := apr.Float64()
	r := a / 100 / 12
	if r == 0 {
		return 0, false
	}
	p, _ := principal.Float64()
	f := math.Pow(1+r, float64(termMonths))
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return p * r, true
	}
	return p * (r * f) / (f - 1), true
}

// MonthlyPayment returns the level monthly payment on an amortized loan,
// rounded to cents. At 0% APR the payment is principal / term, unrounded.
// A non-positive term yields zero; callers validate with ValidateLoan.
func MonthlyPayment(principal, apr decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}
	payment, ok := annuity(principal, apr, termMonths)
	if !ok {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}
	return decimal.NewFromFloat(math.Round(payment * 100)).Shift(-2)
}

// UnroundedMonthlyPayment is MonthlyPayment without cent rounding, used when
// the payment is multiplied back out over a whole term.
func UnroundedMonthlyPayment(principal, apr decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}
	payment, ok := annuity(principal, apr, termMonths)
	if !ok {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}
	return decimal.NewFromFloat(payment)
}

// AmortizationSchedule splits each payment into interest and principal.
// Interest is rounded to cents each month and the final period absorbs any
// residual so the balance closes at exactly zero.
func AmortizationSchedule(principal, apr decimal.Decimal, termMonths int) ([]domain.AmortizationEntry, error) {
	if err := ValidateLoan(principal, apr, termMonths); err != nil {
		return nil, err
	}

	payment := MonthlyPayment(principal, apr, termMonths).Round(2)
	rate := monthlyRate(apr)
	balance := principal

	schedule := make([]domain.AmortizationEntry, 0, termMonths)
	for period := 1; period <= termMonths; period++ {
		interest := balance.Mul(rate).Round(2)
		toPrincipal := payment.Sub(interest)
		paid := payment
		if period == termMonths || toPrincipal.GreaterThan(balance) {
			toPrincipal = balance
			paid = balance.Add(interest)
		}
		balance = balance.Sub(toPrincipal)

		schedule = append(schedule, domain.AmortizationEntry{
			Period:           period,
			Payment:          paid,
			Principal:        toPrincipal,
			Interest:         interest,
			RemainingBalance: balance,
		})
	}
	return schedule, nil
}

// TotalInterest sums the interest column of a schedule
func TotalInterest(schedule []domain.AmortizationEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range schedule {
		total = total.Add(e.Interest)
	}
	return total
}
