package calculation

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// ValuePathYears is the horizon of the compounding value projection
const ValuePathYears = 10

// ProjectionTermMonths is the loan length assumed by vehicle projections
const ProjectionTermMonths = 60

var (
	// ProjectionDownPaymentRate is the share of MSRP paid up front
	ProjectionDownPaymentRate = decimal.NewFromFloat(0.2)
	// DefaultProjectionAPR applies when neither an APR nor a credit score is supplied
	DefaultProjectionAPR = decimal.NewFromFloat(5.0)
)

// pathDepreciationRate is the share of value lost in a given year of ownership
func pathDepreciationRate(year int) decimal.Decimal {
	switch {
	case year == 0:
		return decimal.Zero
	case year == 1:
		return decimal.NewFromFloat(0.20)
	case year <= 5:
		return decimal.NewFromFloat(0.12)
	default:
		return decimal.NewFromFloat(0.08)
	}
}

// MileageFactor scales value down 2% for every 15,000 annual miles
func MileageFactor(annualMileage int) decimal.Decimal {
	miles := decimal.NewFromInt(int64(annualMileage))
	return decimal.NewFromInt(1).Sub(miles.Div(decimal.NewFromInt(15000)).Mul(decimal.NewFromFloat(0.02)))
}

// ValuePath compounds yearly depreciation and the mileage factor over ten
// years, labelling each point with its calendar year. Bounds are ±10%.
// This model is independent of the retention curve used by Forecast.
func ValuePath(v domain.VehicleData, annualMileage int) []domain.ValuePathPoint {
	if annualMileage <= 0 {
		annualMileage = domain.DefaultAnnualMileage
	}
	mileage := MileageFactor(annualMileage)
	lowerBand := decimal.NewFromFloat(0.90)
	upperBand := decimal.NewFromFloat(1.10)

	value := v.Price()
	path := make([]domain.ValuePathPoint, 0, ValuePathYears+1)
	for year := 0; year <= ValuePathYears; year++ {
		value = value.Mul(decimal.NewFromInt(1).Sub(pathDepreciationRate(year))).Mul(mileage)
		path = append(path, domain.ValuePathPoint{
			Year:  v.Year + year,
			Value: value.Round(0),
			Lower: value.Mul(lowerBand).Round(0),
			Upper: value.Mul(upperBand).Round(0),
		})
	}
	return path
}

// Projection is the financing snapshot and value path shown for one vehicle
type Projection struct {
	Vehicle        domain.VehicleData      `json:"vehicle"`
	DownPayment    decimal.Decimal         `json:"downPayment"`
	LoanAmount     decimal.Decimal         `json:"loanAmount"`
	APR            decimal.Decimal         `json:"apr"`
	TermMonths     int                     `json:"termMonths"`
	MonthlyPayment decimal.Decimal         `json:"monthlyPayment"`
	MonthlyFuel    decimal.Decimal         `json:"monthlyFuel"`
	AnnualMileage  int                     `json:"annualMileage"`
	Path           []domain.ValuePathPoint `json:"path"`
}

// Projection finances a vehicle at 20% down over 60 months and projects its
// value over ten years.
func (e *Engine) Projection(v domain.VehicleData, apr decimal.Decimal, annualMileage int) (*Projection, error) {
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("projection: %w", err)
	}
	if apr.IsNegative() {
		return nil, fmt.Errorf("projection: apr %s: %w", apr.String(), domain.ErrInvalidAPR)
	}
	if annualMileage < 0 {
		return nil, fmt.Errorf("projection: annual mileage %d: %w", annualMileage, domain.ErrInvalidMileage)
	}
	if annualMileage == 0 {
		annualMileage = domain.DefaultAnnualMileage
	}

	down := v.Price().Mul(ProjectionDownPaymentRate)
	loan := v.Price().Sub(down)
	return &Projection{
		Vehicle:        v,
		DownPayment:    down,
		LoanAmount:     loan,
		APR:            apr,
		TermMonths:     ProjectionTermMonths,
		MonthlyPayment: MonthlyPayment(loan, apr, ProjectionTermMonths),
		MonthlyFuel:    FuelCost(v.MPGCombined, annualMileage, e.gasPrice()),
		AnnualMileage:  annualMileage,
		Path:           ValuePath(v, annualMileage),
	}, nil
}
