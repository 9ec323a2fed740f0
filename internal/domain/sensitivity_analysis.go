package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter is one input swept across a range of values
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "dollars", "points", "months", "miles"
	Description string          `yaml:"description" json:"description"`
}

// ParameterSensitivityAnalysis is a single or multi-parameter sweep
type ParameterSensitivityAnalysis struct {
	Vehicle      string                 `json:"vehicle"`
	Base         SensitivityMetrics     `json:"base"`
	Parameters   []SensitivityParameter `json:"parameters"`
	Results      []SensitivityResult    `json:"results"`
	Summary      SensitivitySummary     `json:"summary"`
	AnalysisType string                 `json:"analysisType"` // "single", "multi"
}

// SensitivityResult is the affordability outcome at one point of a sweep
type SensitivityResult struct {
	ParameterValues map[string]decimal.Decimal `json:"parameterValues"`
	Label           string                     `json:"label"`
	KeyMetrics      SensitivityMetrics         `json:"keyMetrics"`
}

// SensitivityMetrics are the affordability figures compared across a sweep.
// The change fields are relative to the unmodified inputs.
type SensitivityMetrics struct {
	Score             int             `json:"score"`
	TotalMonthlyCost  decimal.Decimal `json:"totalMonthlyCost"`
	BudgetUtilization decimal.Decimal `json:"budgetUtilization"` // percent of monthly net
	CanAfford         bool            `json:"canAfford"`

	ScoreChange          int             `json:"scoreChange"`
	CostChange           decimal.Decimal `json:"costChange"`
	UtilizationChange    decimal.Decimal `json:"utilizationChange"`    // percentage points
	UtilizationChangePct decimal.Decimal `json:"utilizationChangePct"` // relative change, percent
}

// SensitivitySummary ranks parameters by how strongly they move budget use
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivityScores"`
	AffordabilityFlips     []string                   `json:"affordabilityFlips,omitempty"`
	Recommendations        []string                   `json:"recommendations"`
	RiskLevel              string                     `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH", "CRITICAL"
}

// SensitivityMatrix is a two-parameter sweep
type SensitivityMatrix struct {
	Vehicle       string                   `json:"vehicle"`
	Base          SensitivityMetrics       `json:"base"`
	Parameter1    SensitivityParameter     `json:"parameter1"`
	Parameter2    SensitivityParameter     `json:"parameter2"`
	MatrixResults [][]SensitivityResult    `json:"matrixResults"`
	Summary       SensitivityMatrixSummary `json:"summary"`
}

// SensitivityMatrixSummary describes the matrix extremes and the interaction
// between the two parameters
type SensitivityMatrixSummary struct {
	MostSensitiveCombination string          `json:"mostSensitiveCombination"`
	InteractionEffect        decimal.Decimal `json:"interactionEffect"` // percentage points
	AffordableCells          int             `json:"affordableCells"`
	Recommendations          []string        `json:"recommendations"`
	RiskLevel                string          `json:"riskLevel"`
}

// Risk thresholds on the largest sensitivity score (elasticity of budget use)
var (
	sensitivityMedium   = decimal.NewFromFloat(0.5)
	sensitivityHigh     = decimal.NewFromFloat(1.0)
	sensitivityCritical = decimal.NewFromFloat(1.5)
)

// RiskLevelFor buckets a sensitivity score
func RiskLevelFor(score decimal.Decimal) string {
	switch {
	case score.LessThan(sensitivityMedium):
		return "LOW"
	case score.LessThan(sensitivityHigh):
		return "MEDIUM"
	case score.LessThan(sensitivityCritical):
		return "HIGH"
	default:
		return "CRITICAL"
	}
}

// DetermineRiskLevel determines the risk level from the largest score
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	maxScore := decimal.Zero
	for _, score := range ss.SensitivityScores {
		if score.GreaterThan(maxScore) {
			maxScore = score
		}
	}
	return RiskLevelFor(maxScore)
}

// GenerateRecommendations generates advice from the risk level and the most
// sensitive parameter
func (ss *SensitivitySummary) GenerateRecommendations() []string {
	recommendations := []string{}

	switch ss.DetermineRiskLevel() {
	case "LOW":
		recommendations = append(recommendations, "Affordability holds up across the tested ranges")
	case "MEDIUM":
		recommendations = append(recommendations, "Budget use moves noticeably with these inputs; leave some margin")
	case "HIGH":
		recommendations = append(recommendations, "Budget use is sensitive to these inputs")
		recommendations = append(recommendations, "Compare a cheaper trim or a larger down payment before committing")
	case "CRITICAL":
		recommendations = append(recommendations, "⚠️ Budget use swings sharply with small input changes")
		recommendations = append(recommendations, "Treat this vehicle as a stretch and line up a fallback option")
	}

	switch ss.MostSensitiveParameter {
	case "annual_income":
		recommendations = append(recommendations, "Income is the biggest lever; check affordability against a pay cut")
	case "credit_score":
		recommendations = append(recommendations, "Credit tier drives the rate; improving the score before applying pays off")
	case "vehicle_price":
		recommendations = append(recommendations, "Price is the biggest lever; negotiate or consider a lower trim")
	case "down_payment":
		recommendations = append(recommendations, "A larger down payment noticeably lowers monthly cost")
	case "lease_term":
		recommendations = append(recommendations, "Term length matters; a longer loan lowers payments but adds interest")
	case "annual_mileage", "gas_price":
		recommendations = append(recommendations, "Fuel is a large share of cost; a more efficient model would help")
	}

	return recommendations
}
