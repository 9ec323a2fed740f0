package transform

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxLeaseTerm is the longest financing term a transform may set
const MaxLeaseTerm = domain.MaxTermMonths

// AdjustIncome changes annual income by a fixed amount. A negative amount
// models a pay cut.
type AdjustIncome struct {
	Amount decimal.Decimal
}

func (ai *AdjustIncome) Name() string {
	return "adjust_income"
}

func (ai *AdjustIncome) Description() string {
	if ai.Amount.IsNegative() {
		return fmt.Sprintf("Lower annual income by $%s", ai.Amount.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Raise annual income by $%s", ai.Amount.StringFixed(0))
}

func (ai *AdjustIncome) Validate(base *domain.Shopper) error {
	if base == nil {
		return NewTransformError(ai.Name(), "validate", "base shopper cannot be nil", nil)
	}
	if !base.Financial.AnnualIncome.Add(ai.Amount).IsPositive() {
		return NewTransformError(ai.Name(), "validate",
			fmt.Sprintf("income would drop to %s", base.Financial.AnnualIncome.Add(ai.Amount).StringFixed(0)), domain.ErrInvalidIncome)
	}
	return nil
}

func (ai *AdjustIncome) Apply(base *domain.Shopper) (*domain.Shopper, error) {
	modified := base.Clone()
	modified.Financial.AnnualIncome = modified.Financial.AnnualIncome.Add(ai.Amount)
	return modified, nil
}

// SetIncome replaces annual income
type SetIncome struct {
	Income decimal.Decimal
}

func (si *SetIncome) Name() string {
	return "set_income"
}

func (si *SetIncome) Description() string {
	return fmt.Sprintf("Set annual income to $%s", si.Income.StringFixed(0))
}

func (si *SetIncome) Validate(base *domain.Shopper) error {
	if base == nil {
		return NewTransformError(si.Name(), "validate", "base shopper cannot be nil", nil)
	}
	if !si.Income.IsPositive() {
		return NewTransformError(si.Name(), "validate", "income must be positive", domain.ErrInvalidIncome)
	}
	return nil
}

func (si *SetIncome) Apply(base *domain.Shopper) (*domain.Shopper, error) {
	modified := base.Clone()
	modified.Financial.AnnualIncome = si.Income
	return modified, nil
}

// SetCreditScore replaces the credit score
type SetCreditScore struct {
	Score int
}

func (sc *SetCreditScore) Name() string {
	return "set_credit_score"
}

func (sc *SetCreditScore) Description() string {
	return fmt.Sprintf("Set credit score to %d", sc.Score)
}

func (sc *SetCreditScore) Validate(base *domain.Shopper) error {
	if base == nil {
		return NewTransformError(sc.Name(), "validate", "base shopper cannot be nil", nil)
	}
	if err := domain.ValidateCreditScore(sc.Score); err != nil {
		return NewTransformError(sc.Name(), "validate", "score out of range", err)
	}
	return nil
}

func (sc *SetCreditScore) Apply(base *domain.Shopper) (*domain.Shopper, error) {
	modified := base.Clone()
	modified.Financial.CreditScore = sc.Score
	return modified, nil
}

// AdjustCreditScore moves the credit score by a number of points, capped to
// the valid range
type AdjustCreditScore struct {
	Points int
}

func (ac *AdjustCreditScore) Name() string {
	return "adjust_credit_score"
}

func (ac *AdjustCreditScore) Description() string {
	if ac.Points < 0 {
		return fmt.Sprintf("Lower credit score by %d points", -ac.Points)
	}
	return fmt.Sprintf("Raise credit score by %d points", ac.Points)
}

func (ac *AdjustCreditScore) Validate(base *domain.Shopper) error {
	if base == nil {
		return NewTransformError(ac.Name(), "validate", "base shopper cannot be nil", nil)
	}
	if ac.Points == 0 {
		return NewTransformError(ac.Name(), "validate", "points must be non-zero", nil)
	}
	return nil
}

func (ac *AdjustCreditScore) Apply(base *domain.Shopper) (*domain.Shopper, error) {
	modified := base.Clone()
	score := modified.Financial.CreditScore + ac.Points
	if score > domain.MaxCreditScore {
		score = domain.MaxCreditScore
	}
	if score < domain.MinCreditScore {
		score = domain.MinCreditScore
	}
	modified.Financial.CreditScore = score
	return modified, nil
}

// SetLeaseTerm changes the financing term in months
type SetLeaseTerm struct {
	Months int
}

func (st *SetLeaseTerm) Name() string {
	return "set_term"
}

func (st *SetLeaseTerm) Description() string {
	return fmt.Sprintf("Finance over %d months", st.Months)
}

func (st *SetLeaseTerm) Validate(base *domain.Shopper) error {
	if base == nil {
		return NewTransformError(st.Name(), "validate", "base shopper cannot be nil", nil)
	}
	if st.Months <= 0 || st.Months > MaxLeaseTerm {
		return NewTransformError(st.Name(), "validate",
			fmt.Sprintf("months must be between 1 and %d, got %d", MaxLeaseTerm, st.Months), domain.ErrInvalidTerm)
	}
	return nil
}

func (st *SetLeaseTerm) Apply(base *domain.Shopper) (*domain.Shopper, error) {
	modified := base.Clone()
	modified.Financial.LeaseTerm = st.Months
	return modified, nil
}

// SetBudget replaces the price range the shopper is considering
type SetBudget struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (sb *SetBudget) Name() string {
	return "set_budget"
}

func (sb *SetBudget) Description() string {
	return fmt.Sprintf("Set budget to $%s-$%s", sb.Min.StringFixed(0), sb.Max.StringFixed(0))
}

func (sb *SetBudget) Validate(base *domain.Shopper) error {
	if base == nil {
		return NewTransformError(sb.Name(), "validate", "base shopper cannot be nil", nil)
	}
	if !sb.Min.IsPositive() || sb.Min.GreaterThan(sb.Max) {
		return NewTransformError(sb.Name(), "validate", "budget must be positive with min <= max", domain.ErrInvalidBudget)
	}
	return nil
}

func (sb *SetBudget) Apply(base *domain.Shopper) (*domain.Shopper, error) {
	modified := base.Clone()
	modified.Financial.BudgetMin = sb.Min
	modified.Financial.BudgetMax = sb.Max
	return modified, nil
}

// SetSubsidy sets the monthly employment subsidy added to net pay
type SetSubsidy struct {
	Amount decimal.Decimal
}

func (ss *SetSubsidy) Name() string {
	return "set_subsidy"
}

func (ss *SetSubsidy) Description() string {
	return fmt.Sprintf("Set employment subsidy to $%s/mo", ss.Amount.StringFixed(0))
}

func (ss *SetSubsidy) Validate(base *domain.Shopper) error {
	if base == nil {
		return NewTransformError(ss.Name(), "validate", "base shopper cannot be nil", nil)
	}
	if ss.Amount.IsNegative() {
		return NewTransformError(ss.Name(), "validate", "subsidy cannot be negative", domain.ErrInvalidSubsidy)
	}
	return nil
}

func (ss *SetSubsidy) Apply(base *domain.Shopper) (*domain.Shopper, error) {
	modified := base.Clone()
	modified.Financial.EmploymentSubsidy = ss.Amount
	return modified, nil
}
