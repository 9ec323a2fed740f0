package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the financing parameter at which an affordability or
// buy-vs-lease outcome flips
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if err := req.Profile.Validate(); err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "invalid profile", Cause: err}
	}
	if req.Target.needsLease() && (req.Lease.Term <= 0 || req.Lease.Monthly.IsNegative() || req.Lease.DownPayment.IsNegative()) {
		return nil, &BreakEvenError{Operation: "optimize", Message: fmt.Sprintf("%s needs a lease offer with a positive term", req.Target)}
	}
	if req.Target != OptimizeMaxPrice && req.Vehicle.MSRP <= 0 {
		return nil, &BreakEvenError{Operation: "optimize", Message: "vehicle price is required", Cause: domain.ErrInvalidPrice}
	}

	// Apply defaults
	req.Constraints = req.Constraints.withDefaults()
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = defaultTolerance(req.Target)
	}

	var (
		result *OptimizationResult
		err    error
	)
	switch req.Target {
	case OptimizeMaxPrice:
		result, err = s.optimizeMaxPrice(ctx, req)
	case OptimizeDownPayment:
		result, err = s.optimizeDownPayment(ctx, req)
	case OptimizeLeaseMonthly:
		result, err = s.optimizeLeaseMonthly(ctx, req)
	case OptimizeAPR:
		result, err = s.optimizeAPR(ctx, req)
	case OptimizeTerm:
		result, err = s.optimizeTerm(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
	if err != nil {
		return nil, err
	}

	if s.CalcEngine.Logger != nil {
		s.CalcEngine.Logger.Debugf("breakeven: target=%s iterations=%d %s", req.Target, result.Iterations, result.ConvergenceInfo)
	}
	return result, nil
}

// optimizeMaxPrice finds the highest price the shopper can afford with the
// request's down payment rule
func (s *Solver) optimizeMaxPrice(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_max_price"
	affordable := func(price decimal.Decimal) (bool, error) {
		r, err := s.affordability(req, price, s.downPayment(req, price), req.Profile.LeaseTerm)
		if err != nil {
			return false, err
		}
		return r.CanAfford, nil
	}

	lo, hi := *req.Constraints.MinPrice, *req.Constraints.MaxPrice
	ok, err := affordable(lo)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate minimum price", Cause: err}
	}
	if !ok {
		return nil, &BreakEvenError{Operation: op, Message: fmt.Sprintf("no affordable price at or above %s", calculation.FormatDollars(lo))}
	}

	price, iterations, info, err := s.bisect(ctx, req, lo, hi, affordable)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "search failed", Cause: err}
	}
	price = price.Floor()

	afford, err := s.affordability(req, price, s.downPayment(req, price), req.Profile.LeaseTerm)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate result", Cause: err}
	}
	return &OptimizationResult{
		Request:         req,
		Success:         true,
		Iterations:      iterations,
		ConvergenceInfo: info,
		OptimalPrice:    &price,
		Affordability:   afford,
	}, nil
}

// optimizeDownPayment finds the smallest down payment that keeps the all-in
// monthly cost within the budget share of net income
func (s *Solver) optimizeDownPayment(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_down_payment"
	price := req.Vehicle.Price()
	share := *req.Constraints.MaxBudgetShare
	withinBudget := func(down decimal.Decimal) (bool, error) {
		r, err := s.affordability(req, price, down, req.Profile.LeaseTerm)
		if err != nil {
			return false, err
		}
		return r.TotalMonthlyCost.LessThanOrEqual(r.MonthlyNetIncome.Mul(share)), nil
	}

	ok, err := withinBudget(decimal.Zero)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate zero down", Cause: err}
	}
	if ok {
		return s.downPaymentResult(req, decimal.Zero, 1, "No down payment needed")
	}
	ok, err = withinBudget(price)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate full payment", Cause: err}
	}
	if !ok {
		return nil, &BreakEvenError{Operation: op, Message: "running costs alone exceed the budget share"}
	}

	down, iterations, info, err := s.bisect(ctx, req, price, decimal.Zero, withinBudget)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "search failed", Cause: err}
	}
	return s.downPaymentResult(req, down.Ceil(), iterations+2, info)
}

func (s *Solver) downPaymentResult(req OptimizationRequest, down decimal.Decimal, iterations int, info string) (*OptimizationResult, error) {
	afford, err := s.affordability(req, req.Vehicle.Price(), down, req.Profile.LeaseTerm)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_down_payment", Message: "failed to evaluate result", Cause: err}
	}
	return &OptimizationResult{
		Request:            req,
		Success:            true,
		Iterations:         iterations,
		ConvergenceInfo:    info,
		OptimalDownPayment: &down,
		Affordability:      afford,
	}, nil
}

// optimizeLeaseMonthly finds the lowest lease payment at which buying is the
// cheaper choice. Below it, leasing wins.
func (s *Solver) optimizeLeaseMonthly(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_lease_monthly"
	apr := calculation.ResolveAPR(req.Profile.CreditScore)
	buyWins := func(monthly decimal.Decimal) (bool, error) {
		r, err := s.buyVsLease(req, apr, monthly)
		if err != nil {
			return false, err
		}
		return r.Recommendation == domain.ChoiceBuy, nil
	}

	hi := req.Vehicle.Price()
	ok, err := buyWins(decimal.Zero)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate free lease", Cause: err}
	}
	monthly := decimal.Zero
	iterations := 1
	info := "Buying wins against any lease payment"
	if !ok {
		var n int
		monthly, n, info, err = s.bisect(ctx, req, hi, decimal.Zero, buyWins)
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "search failed", Cause: err}
		}
		monthly = monthly.Mul(decimal.NewFromInt(100)).Ceil().Div(decimal.NewFromInt(100))
		iterations += n
	}

	bvl, err := s.buyVsLease(req, apr, monthly)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate result", Cause: err}
	}
	return &OptimizationResult{
		Request:             req,
		Success:             true,
		Iterations:          iterations,
		ConvergenceInfo:     info,
		OptimalLeaseMonthly: &monthly,
		BuyVsLease:          bvl,
	}, nil
}

// optimizeAPR finds the highest loan APR at which buying still beats the
// lease offer
func (s *Solver) optimizeAPR(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_apr"
	buyWins := func(apr decimal.Decimal) (bool, error) {
		r, err := s.buyVsLease(req, apr, req.Lease.Monthly)
		if err != nil {
			return false, err
		}
		return r.Recommendation == domain.ChoiceBuy, nil
	}

	ok, err := buyWins(decimal.Zero)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate zero rate", Cause: err}
	}
	if !ok {
		return nil, &BreakEvenError{Operation: op, Message: "leasing wins even at 0% APR"}
	}

	apr, iterations, info, err := s.bisect(ctx, req, decimal.Zero, *req.Constraints.MaxAPR, buyWins)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "search failed", Cause: err}
	}
	apr = apr.Mul(decimal.NewFromInt(100)).Floor().Div(decimal.NewFromInt(100))

	bvl, err := s.buyVsLease(req, apr, req.Lease.Monthly)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate result", Cause: err}
	}
	return &OptimizationResult{
		Request:         req,
		Success:         true,
		Iterations:      iterations + 1,
		ConvergenceInfo: info,
		OptimalAPR:      &apr,
		BuyVsLease:      bvl,
	}, nil
}

// optimizeTerm grid-searches loan terms for the best affordability score.
// Ties go to the shorter term.
func (s *Solver) optimizeTerm(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_term"
	price := req.Vehicle.Price()
	down := s.downPayment(req, price)

	var (
		best     *domain.AffordabilityResult
		bestTerm int
	)
	iterations := 0
	for term := *req.Constraints.MinTerm; term <= *req.Constraints.MaxTerm; term += *req.Constraints.TermStep {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		r, err := s.affordability(req, price, down, term)
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: fmt.Sprintf("failed to evaluate %d months", term), Cause: err}
		}
		if best == nil || r.Score > best.Score {
			best, bestTerm = r, term
		}
	}

	return &OptimizationResult{
		Request:         req,
		Success:         true,
		Iterations:      iterations,
		ConvergenceInfo: fmt.Sprintf("Evaluated %d loan terms", iterations),
		OptimalTerm:     &bestTerm,
		Affordability:   best,
	}, nil
}

// bisect narrows the interval between a point where ok holds (good) and one
// where it does not (bad) and returns the last good point. If bad turns out
// to satisfy ok, bad is returned.
func (s *Solver) bisect(
	ctx context.Context,
	req OptimizationRequest,
	good, bad decimal.Decimal,
	ok func(decimal.Decimal) (bool, error),
) (decimal.Decimal, int, string, error) {
	iterations := 1
	badOK, err := ok(bad)
	if err != nil {
		return decimal.Zero, iterations, "", err
	}
	if badOK {
		return bad, iterations, "Search bound satisfies the goal", nil
	}

	two := decimal.NewFromInt(2)
	for iterations < req.MaxIterations {
		if good.Sub(bad).Abs().LessThanOrEqual(req.Tolerance) {
			return good, iterations, fmt.Sprintf("Converged within %s", req.Tolerance.String()), nil
		}
		iterations++

		select {
		case <-ctx.Done():
			return decimal.Zero, iterations, "", ctx.Err()
		default:
		}

		mid := good.Add(bad).Div(two)
		midOK, err := ok(mid)
		if err != nil {
			return decimal.Zero, iterations, "", err
		}
		if midOK {
			good = mid
		} else {
			bad = mid
		}
	}
	return good, iterations, fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations), nil
}

// downPayment is the request's down payment capped at price, or the matching
// assumption of 10% when none was given
func (s *Solver) downPayment(req OptimizationRequest, price decimal.Decimal) decimal.Decimal {
	if req.DownPayment.IsPositive() {
		return decimal.Min(req.DownPayment, price)
	}
	return price.Mul(calculation.MatchDownPaymentRate)
}

func (s *Solver) affordability(req OptimizationRequest, price, down decimal.Decimal, term int) (*domain.AffordabilityResult, error) {
	return s.CalcEngine.CalculateAffordability(calculation.AffordabilityInput{
		AnnualIncome:      req.Profile.AnnualIncome,
		CreditScore:       req.Profile.CreditScore,
		EmploymentSubsidy: req.Profile.EmploymentSubsidy,
		VehiclePrice:      price,
		DownPayment:       down,
		LeaseTerm:         term,
		MPGCombined:       req.Vehicle.MPGCombined,
		Reliability:       req.Vehicle.Reliability,
		AnnualMileage:     req.AnnualMileage,
	})
}

func (s *Solver) buyVsLease(req OptimizationRequest, apr, leaseMonthly decimal.Decimal) (*domain.BuyVsLeaseResult, error) {
	price := req.Vehicle.Price()
	return calculation.BuyVsLease(calculation.BuyVsLeaseInput{
		VehiclePrice:     price,
		DownPayment:      s.downPayment(req, price),
		LoanTerm:         req.Profile.LeaseTerm,
		APR:              apr,
		LeaseDownPayment: req.Lease.DownPayment,
		LeaseMonthly:     leaseMonthly,
		LeaseTerm:        req.Lease.Term,
	})
}
