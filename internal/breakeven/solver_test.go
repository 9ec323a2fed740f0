package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func scenarioRequest(target OptimizationTarget) OptimizationRequest {
	return OptimizationRequest{
		Profile: domain.FinancialProfile{
			AnnualIncome: d("75000"),
			CreditScore:  720,
			BudgetMin:    d("25000"),
			BudgetMax:    d("40000"),
			LeaseTerm:    48,
		},
		Vehicle: domain.VehicleData{
			ID:          "custom",
			Model:       "Custom vehicle",
			MSRP:        35000,
			MPGCombined: d("30"),
			Reliability: d("4.5"),
		},
		DownPayment: d("3500"),
		Target:      target,
	}
}

func withLease(req OptimizationRequest) OptimizationRequest {
	req.Lease = LeaseOffer{Monthly: d("350"), DownPayment: d("2000"), Term: 36}
	return req
}

func affordAt(t *testing.T, engine *calculation.Engine, req OptimizationRequest, price, down decimal.Decimal, term int) *domain.AffordabilityResult {
	t.Helper()
	r, err := engine.CalculateAffordability(calculation.AffordabilityInput{
		AnnualIncome:  req.Profile.AnnualIncome,
		CreditScore:   req.Profile.CreditScore,
		VehiclePrice:  price,
		DownPayment:   down,
		LeaseTerm:     term,
		MPGCombined:   req.Vehicle.MPGCombined,
		Reliability:   req.Vehicle.Reliability,
		AnnualMileage: req.AnnualMileage,
	})
	if err != nil {
		t.Fatalf("affordability: %v", err)
	}
	return r
}

func buyVsLeaseAt(t *testing.T, req OptimizationRequest, apr, monthly decimal.Decimal) *domain.BuyVsLeaseResult {
	t.Helper()
	r, err := calculation.BuyVsLease(calculation.BuyVsLeaseInput{
		VehiclePrice:     req.Vehicle.Price(),
		DownPayment:      req.DownPayment,
		LoanTerm:         req.Profile.LeaseTerm,
		APR:              apr,
		LeaseDownPayment: req.Lease.DownPayment,
		LeaseMonthly:     monthly,
		LeaseTerm:        req.Lease.Term,
	})
	if err != nil {
		t.Fatalf("buy vs lease: %v", err)
	}
	return r
}

func TestNewSolver(t *testing.T) {
	calcEngine := calculation.NewEngine(nil)
	options := SolverOptions{MaxIterations: 10, Tolerance: d("5")}

	solver := NewSolver(calcEngine, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.CalcEngine != calcEngine {
		t.Error("Expected CalcEngine to match input")
	}
	if solver.Options.MaxIterations != 10 || !solver.Options.Tolerance.Equal(d("5")) {
		t.Error("Expected Options to match input")
	}
}

func TestNewDefaultSolver(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(nil))

	if solver.Options.MaxIterations != DefaultSolverOptions().MaxIterations {
		t.Error("Expected default max iterations to be applied")
	}
	if !solver.Options.Tolerance.IsZero() {
		t.Error("Expected per-target tolerance by default")
	}
}

func TestSolver_Optimize_InvalidRequests(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(nil))
	minTerm, maxTerm := 72, 36

	tests := []struct {
		name string
		req  func() OptimizationRequest
	}{
		{"invalid constraints", func() OptimizationRequest {
			req := scenarioRequest(OptimizeTerm)
			req.Constraints = Constraints{MinTerm: &minTerm, MaxTerm: &maxTerm}
			return req
		}},
		{"unsupported target", func() OptimizationRequest {
			return scenarioRequest("unsupported_target")
		}},
		{"lease target without offer", func() OptimizationRequest {
			return scenarioRequest(OptimizeLeaseMonthly)
		}},
		{"missing vehicle price", func() OptimizationRequest {
			req := scenarioRequest(OptimizeDownPayment)
			req.Vehicle.MSRP = 0
			return req
		}},
		{"invalid profile", func() OptimizationRequest {
			req := scenarioRequest(OptimizeMaxPrice)
			req.Profile.CreditScore = 200
			return req
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.Optimize(context.Background(), tt.req())
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}
			if result != nil {
				t.Error("Expected nil result")
			}
		})
	}
}

func TestSolver_OptimizeMaxPrice(t *testing.T) {
	engine := calculation.NewEngine(nil)
	solver := NewDefaultSolver(engine)
	req := scenarioRequest(OptimizeMaxPrice)

	result, err := solver.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if !result.Success || result.OptimalPrice == nil || result.Affordability == nil {
		t.Fatalf("Expected a solved price, got %+v", result)
	}

	price := *result.OptimalPrice
	if price.LessThan(d("35000")) {
		t.Errorf("Expected at least $35,000 to be affordable, got %s", price)
	}
	if price.GreaterThan(result.Affordability.MaxAffordable) {
		t.Errorf("Price %s exceeds max affordable %s", price, result.Affordability.MaxAffordable)
	}
	if !affordAt(t, engine, req, price, req.DownPayment, 48).CanAfford {
		t.Errorf("Expected %s to be affordable", price)
	}
	above := price.Add(d("51"))
	if affordAt(t, engine, req, above, req.DownPayment, 48).CanAfford {
		t.Errorf("Expected %s to be unaffordable", above)
	}
}

func TestSolver_OptimizeMaxPrice_NothingAffordable(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(nil))
	req := scenarioRequest(OptimizeMaxPrice)
	minPrice, maxPrice := d("90000"), d("120000")
	req.Constraints = Constraints{MinPrice: &minPrice, MaxPrice: &maxPrice}

	if _, err := solver.Optimize(context.Background(), req); err == nil {
		t.Error("Expected error when the minimum price is unaffordable")
	}
}

func TestSolver_OptimizeDownPayment(t *testing.T) {
	engine := calculation.NewEngine(nil)
	solver := NewDefaultSolver(engine)
	req := scenarioRequest(OptimizeDownPayment)

	result, err := solver.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if result.OptimalDownPayment == nil {
		t.Fatal("Expected a solved down payment")
	}

	down := *result.OptimalDownPayment
	// $3,500 down leaves the all-in cost above 20% of net pay
	if down.LessThanOrEqual(d("3500")) || down.GreaterThan(d("35000")) {
		t.Fatalf("Unexpected down payment %s", down)
	}

	within := func(down decimal.Decimal) bool {
		r := affordAt(t, engine, req, req.Vehicle.Price(), down, 48)
		return r.TotalMonthlyCost.LessThanOrEqual(r.MonthlyNetIncome.Mul(d("0.20")))
	}
	if !within(down) {
		t.Errorf("Expected %s down to stay within budget", down)
	}
	if within(down.Sub(d("51"))) {
		t.Errorf("Expected %s down to exceed budget", down.Sub(d("51")))
	}
}

func TestSolver_OptimizeDownPayment_Bounds(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(nil))

	t.Run("no down payment needed", func(t *testing.T) {
		req := scenarioRequest(OptimizeDownPayment)
		share := d("0.5")
		req.Constraints = Constraints{MaxBudgetShare: &share}

		result, err := solver.Optimize(context.Background(), req)
		if err != nil {
			t.Fatalf("Optimize: %v", err)
		}
		if !result.OptimalDownPayment.IsZero() {
			t.Errorf("Expected zero down, got %s", result.OptimalDownPayment)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		req := scenarioRequest(OptimizeDownPayment)
		share := d("0.01")
		req.Constraints = Constraints{MaxBudgetShare: &share}

		if _, err := solver.Optimize(context.Background(), req); err == nil {
			t.Error("Expected error when running costs exceed the budget share")
		}
	})
}

func TestSolver_OptimizeLeaseMonthly(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(nil))
	req := withLease(scenarioRequest(OptimizeLeaseMonthly))

	result, err := solver.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if result.OptimalLeaseMonthly == nil || result.BuyVsLease == nil {
		t.Fatalf("Expected a solved lease payment, got %+v", result)
	}

	apr := calculation.ResolveAPR(720)
	netBuy := buyVsLeaseAt(t, req, apr, req.Lease.Monthly).NetBuyCost
	expected := netBuy.Sub(req.Lease.DownPayment).Div(decimal.NewFromInt(36))
	if diff := result.OptimalLeaseMonthly.Sub(expected).Abs(); diff.GreaterThan(d("1.02")) {
		t.Errorf("Expected break-even near %s, got %s", expected.StringFixed(2), result.OptimalLeaseMonthly)
	}
	if result.BuyVsLease.Recommendation != domain.ChoiceBuy {
		t.Errorf("Expected buying to win at the break-even payment, got %s", result.BuyVsLease.Recommendation)
	}
	below := result.OptimalLeaseMonthly.Sub(d("2"))
	if buyVsLeaseAt(t, req, apr, below).Recommendation != domain.ChoiceLease {
		t.Errorf("Expected leasing to win at %s", below)
	}
}

func TestSolver_OptimizeAPR(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(nil))
	req := withLease(scenarioRequest(OptimizeAPR))

	result, err := solver.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	apr := *result.OptimalAPR
	if !apr.IsPositive() || apr.GreaterThanOrEqual(d("30")) {
		t.Fatalf("Unexpected break-even APR %s", apr)
	}
	if buyVsLeaseAt(t, req, apr, req.Lease.Monthly).Recommendation != domain.ChoiceBuy {
		t.Errorf("Expected buying to win at %s%%", apr)
	}
	if buyVsLeaseAt(t, req, apr.Add(d("0.02")), req.Lease.Monthly).Recommendation != domain.ChoiceLease {
		t.Errorf("Expected leasing to win above %s%%", apr)
	}
}

func TestSolver_OptimizeAPR_LeaseAlwaysWins(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(nil))
	req := scenarioRequest(OptimizeAPR)
	req.Lease = LeaseOffer{Monthly: d("100"), Term: 36}

	if _, err := solver.Optimize(context.Background(), req); err == nil {
		t.Error("Expected error when leasing wins at 0% APR")
	}
}

func TestSolver_OptimizeTerm(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(nil))

	result, err := solver.Optimize(context.Background(), scenarioRequest(OptimizeTerm))
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if result.OptimalTerm == nil || *result.OptimalTerm != 60 {
		t.Fatalf("Expected 60 months, got %v", result.OptimalTerm)
	}
	if result.Affordability.Score != 60 {
		t.Errorf("Expected score 60, got %d", result.Affordability.Score)
	}
	if result.Iterations != 6 {
		t.Errorf("Expected 6 terms evaluated, got %d", result.Iterations)
	}
}

func TestSolver_Optimize_Cancelled(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Optimize(ctx, scenarioRequest(OptimizeTerm))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolver_OptimizeMultiDimensional(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(nil))

	t.Run("without lease", func(t *testing.T) {
		md, err := solver.OptimizeMultiDimensional(context.Background(), scenarioRequest(""))
		if err != nil {
			t.Fatalf("OptimizeMultiDimensional: %v", err)
		}
		if len(md.Results) != 3 {
			t.Errorf("Expected 3 results, got %d", len(md.Results))
		}
		if md.Skipped[string(OptimizeLeaseMonthly)] == "" || md.Skipped[string(OptimizeAPR)] == "" {
			t.Errorf("Expected lease targets to be skipped, got %v", md.Skipped)
		}
		joined := strings.Join(md.Recommendations, "\n")
		for _, want := range []string{"Keep the price at or below", "Put at least", "60-month loan"} {
			if !strings.Contains(joined, want) {
				t.Errorf("Recommendations missing %q:\n%s", want, joined)
			}
		}
	})

	t.Run("with lease", func(t *testing.T) {
		md, err := solver.OptimizeMultiDimensional(context.Background(), withLease(scenarioRequest("")))
		if err != nil {
			t.Fatalf("OptimizeMultiDimensional: %v", err)
		}
		if len(md.Results) != 5 {
			t.Errorf("Expected 5 results, got %d (skipped %v)", len(md.Results), md.Skipped)
		}
		if md.Find(OptimizeAPR) == nil {
			t.Error("Expected an APR result")
		}
	})
}
