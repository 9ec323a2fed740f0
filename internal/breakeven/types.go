package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines which financing parameter is solved for
type OptimizationTarget string

const (
	OptimizeMaxPrice     OptimizationTarget = "max_price"     // Highest price the shopper can afford
	OptimizeDownPayment  OptimizationTarget = "down_payment"  // Smallest down payment within the budget share
	OptimizeLeaseMonthly OptimizationTarget = "lease_monthly" // Lease payment where buying and leasing cost the same
	OptimizeAPR          OptimizationTarget = "apr"           // Highest APR at which buying still wins
	OptimizeTerm         OptimizationTarget = "term"          // Loan term with the best affordability score
	OptimizeAll          OptimizationTarget = "all"
)

// Targets lists every single-parameter target in evaluation order
func Targets() []OptimizationTarget {
	return []OptimizationTarget{
		OptimizeMaxPrice,
		OptimizeDownPayment,
		OptimizeTerm,
		OptimizeLeaseMonthly,
		OptimizeAPR,
	}
}

// needsLease reports whether a target compares against a lease offer
func (t OptimizationTarget) needsLease() bool {
	return t == OptimizeLeaseMonthly || t == OptimizeAPR
}

// LeaseOffer is the competing lease for buy-vs-lease targets
type LeaseOffer struct {
	Monthly     decimal.Decimal `json:"monthly"`
	DownPayment decimal.Decimal `json:"downPayment"`
	Term        int             `json:"term"` // months
}

// IsZero reports whether no lease was supplied
func (l LeaseOffer) IsZero() bool {
	return l.Monthly.IsZero() && l.Term == 0
}

// Constraints define search bounds. Nil fields use DefaultConstraints.
type Constraints struct {
	// Price search range
	MinPrice *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice *decimal.Decimal `json:"max_price,omitempty"`

	// Share of monthly net income the all-in cost may take (0.20 = 20%)
	MaxBudgetShare *decimal.Decimal `json:"max_budget_share,omitempty"`

	// Loan term range in months, searched in TermStep increments
	MinTerm  *int `json:"min_term,omitempty"`
	MaxTerm  *int `json:"max_term,omitempty"`
	TermStep *int `json:"term_step,omitempty"`

	// APR search ceiling in percent
	MaxAPR *decimal.Decimal `json:"max_apr,omitempty"`
}

// DefaultConstraints returns the bounds used when a field is not set
func DefaultConstraints() Constraints {
	minPrice := decimal.NewFromInt(5000)
	maxPrice := decimal.NewFromInt(150000)
	share := decimal.NewFromFloat(0.20)
	minTerm := 24
	maxTerm := 84
	step := 12
	maxAPR := decimal.NewFromInt(30)

	return Constraints{
		MinPrice:       &minPrice,
		MaxPrice:       &maxPrice,
		MaxBudgetShare: &share,
		MinTerm:        &minTerm,
		MaxTerm:        &maxTerm,
		TermStep:       &step,
		MaxAPR:         &maxAPR,
	}
}

// withDefaults fills unset fields from DefaultConstraints
func (c Constraints) withDefaults() Constraints {
	d := DefaultConstraints()
	if c.MinPrice == nil {
		c.MinPrice = d.MinPrice
	}
	if c.MaxPrice == nil {
		c.MaxPrice = d.MaxPrice
	}
	if c.MaxBudgetShare == nil {
		c.MaxBudgetShare = d.MaxBudgetShare
	}
	if c.MinTerm == nil {
		c.MinTerm = d.MinTerm
	}
	if c.MaxTerm == nil {
		c.MaxTerm = d.MaxTerm
	}
	if c.TermStep == nil {
		c.TermStep = d.TermStep
	}
	if c.MaxAPR == nil {
		c.MaxAPR = d.MaxAPR
	}
	return c
}

// OptimizationRequest defines the parameters for one solver run
type OptimizationRequest struct {
	Profile       domain.FinancialProfile `json:"profile"`
	Vehicle       domain.VehicleData      `json:"vehicle"`
	DownPayment   decimal.Decimal         `json:"downPayment"` // zero uses 10% of the price
	AnnualMileage int                     `json:"annualMileage,omitempty"`
	Lease         LeaseOffer              `json:"lease"`
	Target        OptimizationTarget      `json:"target"`
	Constraints   Constraints             `json:"constraints"`
	MaxIterations int                     `json:"-"`
	Tolerance     decimal.Decimal         `json:"-"` // zero uses the target's default
}

// OptimizationResult contains the outcome of one solver run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info,omitempty"`

	// Solved parameter; only the field for Request.Target is set
	OptimalPrice        *decimal.Decimal `json:"optimal_price,omitempty"`
	OptimalDownPayment  *decimal.Decimal `json:"optimal_down_payment,omitempty"`
	OptimalLeaseMonthly *decimal.Decimal `json:"optimal_lease_monthly,omitempty"`
	OptimalAPR          *decimal.Decimal `json:"optimal_apr,omitempty"`
	OptimalTerm         *int             `json:"optimal_term,omitempty"`

	// Outcome at the solved parameter
	Affordability *domain.AffordabilityResult `json:"affordability,omitempty"`
	BuyVsLease    *domain.BuyVsLeaseResult    `json:"buy_vs_lease,omitempty"`
}

// MultiDimensionalResult collects every target solved for one vehicle
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	Skipped         map[string]string    `json:"skipped,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations int             // Maximum bisection steps
	Tolerance     decimal.Decimal // Overrides every target's default tolerance when set
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 60,
	}
}

// defaultTolerance is the bisection width at which a target has converged
func defaultTolerance(t OptimizationTarget) decimal.Decimal {
	switch t {
	case OptimizeMaxPrice, OptimizeDownPayment:
		return decimal.NewFromInt(50)
	case OptimizeLeaseMonthly:
		return decimal.NewFromInt(1)
	case OptimizeAPR:
		return decimal.NewFromFloat(0.01)
	default:
		return decimal.NewFromInt(1)
	}
}

// Validate checks that constraint ranges are internally consistent
func (c *Constraints) Validate() error {
	if c.MinPrice != nil && c.MaxPrice != nil {
		if !c.MinPrice.IsPositive() {
			return &BreakEvenError{Operation: "validate_constraints", Message: "min_price must be positive"}
		}
		if c.MinPrice.GreaterThanOrEqual(*c.MaxPrice) {
			return &BreakEvenError{Operation: "validate_constraints", Message: "min_price must be below max_price"}
		}
	}

	if c.MaxBudgetShare != nil {
		if !c.MaxBudgetShare.IsPositive() || c.MaxBudgetShare.GreaterThan(decimal.NewFromInt(1)) {
			return &BreakEvenError{Operation: "validate_constraints", Message: "max_budget_share must be in (0, 1]"}
		}
	}

	if c.MinTerm != nil && c.MaxTerm != nil {
		if *c.MinTerm <= 0 || *c.MinTerm > *c.MaxTerm {
			return &BreakEvenError{Operation: "validate_constraints", Message: "term range must be positive with min_term <= max_term"}
		}
		if *c.MaxTerm > domain.MaxTermMonths {
			return &BreakEvenError{Operation: "validate_constraints", Message: fmt.Sprintf("max_term must be at most %d months", domain.MaxTermMonths)}
		}
	}
	if c.TermStep != nil && *c.TermStep <= 0 {
		return &BreakEvenError{Operation: "validate_constraints", Message: "term_step must be positive"}
	}

	if c.MaxAPR != nil && !c.MaxAPR.IsPositive() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "max_apr must be positive"}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
