package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/calculation"
)

// OptimizeMultiDimensional solves every target for one vehicle. Lease
// targets are skipped when the request carries no lease offer; a target that
// cannot be solved is recorded in Skipped.
func (s *Solver) OptimizeMultiDimensional(ctx context.Context, base OptimizationRequest) (*MultiDimensionalResult, error) {
	if err := base.Constraints.Validate(); err != nil {
		return nil, err
	}

	md := &MultiDimensionalResult{Skipped: map[string]string{}}
	for _, target := range Targets() {
		if target.needsLease() && base.Lease.IsZero() {
			md.Skipped[string(target)] = "no lease offer"
			continue
		}

		req := base
		req.Target = target
		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			md.Skipped[string(target)] = err.Error()
			continue
		}
		md.Results = append(md.Results, *result)
	}

	if len(md.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
		}
	}

	md.Recommendations = s.generateMultiDimensionalRecommendations(base, md)
	return md, nil
}

// Find returns the result for a target, or nil
func (md *MultiDimensionalResult) Find(target OptimizationTarget) *OptimizationResult {
	for i := range md.Results {
		if md.Results[i].Request.Target == target {
			return &md.Results[i]
		}
	}
	return nil
}

// generateMultiDimensionalRecommendations turns solved targets into advice
func (s *Solver) generateMultiDimensionalRecommendations(base OptimizationRequest, md *MultiDimensionalResult) []string {
	var recommendations []string
	price := base.Vehicle.Price()

	if r := md.Find(OptimizeMaxPrice); r != nil && r.OptimalPrice != nil {
		rec := fmt.Sprintf("Keep the price at or below %s", calculation.FormatDollars(*r.OptimalPrice))
		if base.Vehicle.MSRP > 0 {
			if price.LessThanOrEqual(*r.OptimalPrice) {
				rec += fmt.Sprintf("; %s leaves %s of headroom", base.Vehicle.DisplayName(), calculation.FormatDollars(r.OptimalPrice.Sub(price)))
			} else {
				rec += fmt.Sprintf("; %s is %s over", base.Vehicle.DisplayName(), calculation.FormatDollars(price.Sub(*r.OptimalPrice)))
			}
		}
		recommendations = append(recommendations, rec)
	}

	if r := md.Find(OptimizeDownPayment); r != nil && r.OptimalDownPayment != nil {
		if r.OptimalDownPayment.IsZero() {
			recommendations = append(recommendations, "No down payment is needed to stay within budget")
		} else {
			recommendations = append(recommendations, fmt.Sprintf("Put at least %s down to keep monthly costs within budget",
				calculation.FormatDollars(*r.OptimalDownPayment)))
		}
	}

	if r := md.Find(OptimizeTerm); r != nil && r.OptimalTerm != nil && r.Affordability != nil {
		recommendations = append(recommendations, fmt.Sprintf("A %d-month loan gives the best affordability score (%d/100)",
			*r.OptimalTerm, r.Affordability.Score))
	}

	if r := md.Find(OptimizeLeaseMonthly); r != nil && r.OptimalLeaseMonthly != nil {
		offer := base.Lease.Monthly
		if offer.LessThan(*r.OptimalLeaseMonthly) {
			recommendations = append(recommendations, fmt.Sprintf("The $%s/mo lease beats buying; buying only wins at $%s/mo or more",
				offer.StringFixed(2), r.OptimalLeaseMonthly.StringFixed(2)))
		} else {
			recommendations = append(recommendations, fmt.Sprintf("Buying beats the $%s/mo lease; a lease would need to be under $%s/mo",
				offer.StringFixed(2), r.OptimalLeaseMonthly.StringFixed(2)))
		}
	}

	if r := md.Find(OptimizeAPR); r != nil && r.OptimalAPR != nil {
		recommendations = append(recommendations, fmt.Sprintf("Buying wins against this lease at any APR up to %s%%",
			r.OptimalAPR.StringFixed(2)))
	}

	return recommendations
}
