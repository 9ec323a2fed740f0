package domain

import "github.com/shopspring/decimal"

// DepreciationFactors are qualitative adjustments to value retention.
// Each enabled factor adds a fixed bonus; order does not matter.
type DepreciationFactors struct {
	LowMileage    bool `yaml:"low_mileage" json:"lowMileage"`
	GoodCondition bool `yaml:"good_condition" json:"goodCondition"`
	LowInterest   bool `yaml:"low_interest" json:"lowInterest"`
	LowGas        bool `yaml:"low_gas" json:"lowGas"`
}

// ForecastPoint is retained value as a percentage of MSRP at a given age
type ForecastPoint struct {
	Year  int `json:"year"`
	Value int `json:"value"`
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// ResaleEstimate is the projected resale value after some years of ownership
type ResaleEstimate struct {
	EstimatedValue decimal.Decimal `json:"estimatedValue"`
	LowerBound     decimal.Decimal `json:"lowerBound"`
	UpperBound     decimal.Decimal `json:"upperBound"`
	Confidence     string          `json:"confidence"`
}

// ValuePathPoint is one year of the compounding ten-year value projection
type ValuePathPoint struct {
	Year  int             `json:"year"`
	Value decimal.Decimal `json:"value"`
	Lower decimal.Decimal `json:"lower"`
	Upper decimal.Decimal `json:"upper"`
}
