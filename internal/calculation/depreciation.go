package calculation

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// Base value-retention curve by years since purchase. Years 6 and 8+ have no
// data point; resale lookups interpolate or hold the last point.
var retentionCurve = []struct {
	Year      int
	Retention decimal.Decimal
}{
	{0, decimal.NewFromFloat(1.00)},
	{1, decimal.NewFromFloat(0.85)},
	{2, decimal.NewFromFloat(0.73)},
	{3, decimal.NewFromFloat(0.63)},
	{4, decimal.NewFromFloat(0.55)},
	{5, decimal.NewFromFloat(0.48)},
	{7, decimal.NewFromFloat(0.38)},
}

// Confidence interval half-widths by year
var confidenceIntervals = map[int]decimal.Decimal{
	1: decimal.NewFromFloat(0.03),
	2: decimal.NewFromFloat(0.04),
	3: decimal.NewFromFloat(0.08),
	4: decimal.NewFromFloat(0.10),
	5: decimal.NewFromFloat(0.11),
	7: decimal.NewFromFloat(0.12),
}

var defaultConfidenceInterval = decimal.NewFromFloat(0.12)

// Bounds are skewed: downside risk widens the lower bound more than the upper
var (
	lowerSkew = decimal.NewFromFloat(1.2)
	upperSkew = decimal.NewFromFloat(0.8)
)

// FactorAdjustment sums the retention bonuses of the enabled factors
func FactorAdjustment(f domain.DepreciationFactors) decimal.Decimal {
	adj := decimal.Zero
	if f.LowMileage {
		adj = adj.Add(decimal.NewFromFloat(0.03))
	}
	if f.GoodCondition {
		adj = adj.Add(decimal.NewFromFloat(0.02))
	}
	if f.LowInterest {
		adj = adj.Add(decimal.NewFromFloat(0.02))
	}
	if f.LowGas {
		adj = adj.Add(decimal.NewFromFloat(0.01))
	}
	return adj
}

func percent(fraction decimal.Decimal) int {
	return int(fraction.Mul(hundred).Round(0).IntPart())
}

// Forecast returns retained value as whole percentages of MSRP over years
// {0,1,2,3,4,5,7}. Retention is the same for every price.
func Forecast(factors domain.DepreciationFactors) []domain.ForecastPoint {
	bonus := FactorAdjustment(factors)
	one := decimal.NewFromInt(1)

	points := make([]domain.ForecastPoint, 0, len(retentionCurve))
	for _, p := range retentionCurve {
		adjusted := decimal.Min(one, p.Retention.Add(bonus))
		ci, ok := confidenceIntervals[p.Year]
		if !ok {
			ci = defaultConfidenceInterval
		}
		lower := decimal.Max(decimal.Zero, adjusted.Sub(ci.Mul(lowerSkew)))
		upper := decimal.Min(one, adjusted.Add(ci.Mul(upperSkew)))

		points = append(points, domain.ForecastPoint{
			Year:  p.Year,
			Value: percent(adjusted),
			Lower: percent(lower),
			Upper: percent(upper),
		})
	}
	return points
}

// Confidence labels for resale estimates
const (
	ConfidenceHigh     = "High (87%+)"
	ConfidenceModerate = "Moderate (75-87%)"
	ConfidenceLower    = "Lower (60-75%)"
)

// ConfidenceLabel describes how far a resale estimate can be trusted
func ConfidenceLabel(years decimal.Decimal) string {
	switch {
	case years.LessThanOrEqual(decimal.NewFromInt(3)):
		return ConfidenceHigh
	case years.LessThanOrEqual(decimal.NewFromInt(5)):
		return ConfidenceModerate
	default:
		return ConfidenceLower
	}
}

// retentionAt finds the forecast percentages at a possibly fractional age.
// Known years are returned as-is, gaps are interpolated linearly with each
// field rounded, and ages past the curve hold its last point.
func retentionAt(forecast []domain.ForecastPoint, years decimal.Decimal) domain.ForecastPoint {
	var before, after *domain.ForecastPoint
	for i := range forecast {
		y := decimal.NewFromInt(int64(forecast[i].Year))
		switch {
		case y.Equal(years):
			return forecast[i]
		case y.LessThan(years):
			before = &forecast[i]
		case after == nil:
			after = &forecast[i]
		}
	}
	if before == nil || after == nil {
		return forecast[len(forecast)-1]
	}

	ratio := years.Sub(decimal.NewFromInt(int64(before.Year))).
		Div(decimal.NewFromInt(int64(after.Year - before.Year)))
	lerp := func(a, b int) int {
		from := decimal.NewFromInt(int64(a))
		to := decimal.NewFromInt(int64(b))
		return int(from.Add(to.Sub(from).Mul(ratio)).Round(0).IntPart())
	}
	return domain.ForecastPoint{
		Value: lerp(before.Value, after.Value),
		Lower: lerp(before.Lower, after.Lower),
		Upper: lerp(before.Upper, after.Upper),
	}
}

// ResaleValue projects what a vehicle will sell for after years of ownership.
// Dollar figures are rounded to whole dollars.
func ResaleValue(vehiclePrice, years decimal.Decimal, factors domain.DepreciationFactors) domain.ResaleEstimate {
	point := retentionAt(Forecast(factors), years)
	atPercent := func(pct int) decimal.Decimal {
		return vehiclePrice.Mul(decimal.NewFromInt(int64(pct))).Div(hundred).Round(0)
	}
	return domain.ResaleEstimate{
		EstimatedValue: atPercent(point.Value),
		LowerBound:     atPercent(point.Lower),
		UpperBound:     atPercent(point.Upper),
		Confidence:     ConfidenceLabel(years),
	}
}

// DepreciationForecast validates the price and returns the retention curve
func (e *Engine) DepreciationForecast(vehiclePrice decimal.Decimal, factors domain.DepreciationFactors) ([]domain.ForecastPoint, error) {
	if !vehiclePrice.IsPositive() {
		return nil, fmt.Errorf("forecast: vehicle price %s: %w", vehiclePrice.String(), domain.ErrInvalidPrice)
	}
	return Forecast(factors), nil
}

// Resale validates its inputs and returns ResaleValue
func (e *Engine) Resale(vehiclePrice, years decimal.Decimal, factors domain.DepreciationFactors) (*domain.ResaleEstimate, error) {
	if !vehiclePrice.IsPositive() {
		return nil, fmt.Errorf("resale: vehicle price %s: %w", vehiclePrice.String(), domain.ErrInvalidPrice)
	}
	if !years.IsPositive() {
		return nil, fmt.Errorf("resale: years %s: %w", years.String(), domain.ErrInvalidYears)
	}
	est := ResaleValue(vehiclePrice, years, factors)
	e.Logger.Debugf("resale: price=%s years=%s estimate=%s (%s)", vehiclePrice.String(), years.String(), est.EstimatedValue.String(), est.Confidence)
	return &est, nil
}
