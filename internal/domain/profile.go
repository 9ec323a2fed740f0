package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Credit score bounds accepted by every engine entry point
const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

// MaxTermMonths is the longest loan or lease term the engine accepts
const MaxTermMonths = 96

// FinancialProfile holds the money side of a shopper's situation
type FinancialProfile struct {
	AnnualIncome      decimal.Decimal `yaml:"annual_income" json:"annualIncome"`
	MonthlyIncome     decimal.Decimal `yaml:"monthly_income" json:"monthlyIncome"`
	MonthlyExpenses   decimal.Decimal `yaml:"monthly_expenses" json:"monthlyExpenses"`
	TotalSavings      decimal.Decimal `yaml:"total_savings" json:"totalSavings"`
	CreditScore       int             `yaml:"credit_score" json:"creditScore"`
	EmploymentSubsidy decimal.Decimal `yaml:"employment_subsidy" json:"employmentSubsidy"`
	BudgetMin         decimal.Decimal `yaml:"budget_min" json:"budgetMin"`
	BudgetMax         decimal.Decimal `yaml:"budget_max" json:"budgetMax"`
	LeaseTerm         int             `yaml:"lease_term" json:"leaseTerm"` // months

	// Optional cash-flow stability metrics from linked accounts
	CashflowStability  *decimal.Decimal `yaml:"cashflow_stability,omitempty" json:"cashflowStability,omitempty"`
	AvgMonthlyCashflow *decimal.Decimal `yaml:"avg_monthly_cashflow,omitempty" json:"avgMonthlyCashflow,omitempty"`
	CashflowVolatility *decimal.Decimal `yaml:"cashflow_volatility,omitempty" json:"cashflowVolatility,omitempty"`
}

// Validate checks the profile invariants the engine relies on
func (fp FinancialProfile) Validate() error {
	if !fp.AnnualIncome.IsPositive() {
		return fmt.Errorf("annual income %s: %w", fp.AnnualIncome.String(), ErrInvalidIncome)
	}
	if err := ValidateCreditScore(fp.CreditScore); err != nil {
		return err
	}
	if fp.EmploymentSubsidy.IsNegative() {
		return fmt.Errorf("employment subsidy %s: %w", fp.EmploymentSubsidy.String(), ErrInvalidSubsidy)
	}
	if !fp.BudgetMin.IsPositive() || !fp.BudgetMax.IsPositive() {
		return fmt.Errorf("budget range must be positive: %w", ErrInvalidBudget)
	}
	if fp.BudgetMin.GreaterThan(fp.BudgetMax) {
		return fmt.Errorf("budget min %s exceeds max %s: %w", fp.BudgetMin.String(), fp.BudgetMax.String(), ErrInvalidBudget)
	}
	if err := ValidateTerm(fp.LeaseTerm); err != nil {
		return fmt.Errorf("lease term: %w", err)
	}
	return nil
}

// ValidateTerm rejects terms outside [1, MaxTermMonths] months
func ValidateTerm(months int) error {
	if months <= 0 || months > MaxTermMonths {
		return fmt.Errorf("term %d months outside 1-%d: %w", months, MaxTermMonths, ErrInvalidTerm)
	}
	return nil
}

// ValidateCreditScore rejects scores outside [300, 850]
func ValidateCreditScore(score int) error {
	if score < MinCreditScore || score > MaxCreditScore {
		return fmt.Errorf("credit score %d outside %d-%d: %w", score, MinCreditScore, MaxCreditScore, ErrInvalidCreditScore)
	}
	return nil
}

// UserProfile captures lifestyle attributes. The numeric engine does not read
// these; they only shape recommendation text.
type UserProfile struct {
	Age                    int    `yaml:"age,omitempty" json:"age,omitempty"`
	IsStudent              bool   `yaml:"is_student" json:"isStudent"`
	IsFirstCar             bool   `yaml:"is_first_car" json:"isFirstCar"`
	HasHomeCharging        bool   `yaml:"has_home_charging" json:"hasHomeCharging"`
	HasWorkCharging        bool   `yaml:"has_work_charging" json:"hasWorkCharging"`
	ClimateCondition       string `yaml:"climate_condition,omitempty" json:"climateCondition,omitempty"`
	NeedsAWD               bool   `yaml:"needs_awd" json:"needsAWD"`
	DailyCommuteOneWay     int    `yaml:"daily_commute_one_way" json:"dailyCommuteOneWay"`
	WeekendDrivingPerWeek  int    `yaml:"weekend_driving_per_week" json:"weekendDrivingPerWeek"`
	EstimatedAnnualMileage int    `yaml:"estimated_annual_mileage" json:"estimatedAnnualMileage"`
}

// AnnualMileage returns the estimated mileage, defaulting to 12,000
func (up UserProfile) AnnualMileage() int {
	if up.EstimatedAnnualMileage <= 0 {
		return DefaultAnnualMileage
	}
	return up.EstimatedAnnualMileage
}

// NetPay is the result of converting gross income into take-home pay
type NetPay struct {
	GrossIncome      decimal.Decimal `json:"grossIncome"`
	FederalTax       decimal.Decimal `json:"federalTax"`
	FICATax          decimal.Decimal `json:"ficaTax"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	MonthlyNet       decimal.Decimal `json:"monthlyNet"`
	VolatilityFactor decimal.Decimal `json:"volatilityFactor"`
}

// TermYears converts a term in months to years
func TermYears(months int) decimal.Decimal {
	return decimal.NewFromInt(int64(months)).Div(decimal.NewFromInt(12))
}
