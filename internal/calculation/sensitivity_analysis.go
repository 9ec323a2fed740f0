package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// Inputs a sensitivity sweep can vary
const (
	ParamAnnualIncome  = "annual_income"
	ParamCreditScore   = "credit_score"
	ParamVehiclePrice  = "vehicle_price"
	ParamDownPayment   = "down_payment"
	ParamLeaseTerm     = "lease_term"
	ParamAnnualMileage = "annual_mileage"
	ParamGasPrice      = "gas_price"
)

// SensitivityParameters lists every sweepable input
func SensitivityParameters() []string {
	return []string{
		ParamAnnualIncome, ParamCreditScore, ParamVehiclePrice, ParamDownPayment,
		ParamLeaseTerm, ParamAnnualMileage, ParamGasPrice,
	}
}

// SensitivityAnalyzer sweeps affordability inputs for one vehicle
type SensitivityAnalyzer struct {
	engine *Engine
}

// NewSensitivityAnalyzer creates an analyzer that evaluates with engine
func NewSensitivityAnalyzer(engine *Engine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &SensitivityAnalyzer{engine: engine}
}

// sweepPoint is one set of inputs; gas price lives on the engine, not the input
type sweepPoint struct {
	in  AffordabilityInput
	gas decimal.Decimal
}

// DefaultParameter builds the standard sweep for name around the given inputs
func (sa *SensitivityAnalyzer) DefaultParameter(name string, base AffordabilityInput) (domain.SensitivityParameter, error) {
	point := sa.basePoint(base)
	baseValue, err := baseValueOf(point, name)
	if err != nil {
		return domain.SensitivityParameter{}, err
	}

	p := domain.SensitivityParameter{Name: name, BaseValue: baseValue, Steps: 5}
	switch name {
	case ParamAnnualIncome:
		p.MinValue, p.MaxValue = baseValue.Mul(decimal.NewFromFloat(0.8)), baseValue.Mul(decimal.NewFromFloat(1.2))
		p.Unit, p.Description = "dollars", "Gross annual income"
	case ParamVehiclePrice:
		p.MinValue, p.MaxValue = baseValue.Mul(decimal.NewFromFloat(0.8)), baseValue.Mul(decimal.NewFromFloat(1.2))
		p.Unit, p.Description = "dollars", "Purchase price"
	case ParamCreditScore:
		lo := clampInt(int(baseValue.IntPart())-80, domain.MinCreditScore, domain.MaxCreditScore)
		hi := clampInt(int(baseValue.IntPart())+80, domain.MinCreditScore, domain.MaxCreditScore)
		p.MinValue, p.MaxValue = decimal.NewFromInt(int64(lo)), decimal.NewFromInt(int64(hi))
		p.Unit, p.Description = "points", "Credit score"
	case ParamDownPayment:
		p.MinValue = decimal.Zero
		p.MaxValue = base.VehiclePrice.Mul(decimal.NewFromFloat(0.3)).Round(0)
		p.Steps = 4
		p.Unit, p.Description = "dollars", "Cash down"
	case ParamLeaseTerm:
		p.MinValue, p.MaxValue, p.Steps = decimal.NewFromInt(36), decimal.NewFromInt(72), 4
		p.Unit, p.Description = "months", "Loan term"
	case ParamAnnualMileage:
		p.MinValue, p.MaxValue, p.Steps = decimal.NewFromInt(6000), decimal.NewFromInt(24000), 4
		p.Unit, p.Description = "miles", "Miles driven per year"
	case ParamGasPrice:
		p.MinValue = decimal.Max(baseValue.Sub(decimal.NewFromInt(1)), decimal.NewFromFloat(0.5))
		p.MaxValue = baseValue.Add(decimal.NewFromInt(1))
		p.Unit, p.Description = "dollars_per_gallon", "Gas price"
	}
	return p, nil
}

// AnalyzeSingleParameter sweeps one input and compares each point with the
// unmodified inputs. BaseValue is always taken from base.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	base AffordabilityInput,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	point := sa.basePoint(base)
	baseMetrics, err := sa.evaluate(point)
	if err != nil {
		return nil, fmt.Errorf("sensitivity: base inputs: %w", err)
	}

	results, parameter, err := sa.sweep(ctx, point, baseMetrics, parameter)
	if err != nil {
		return nil, err
	}

	return &domain.ParameterSensitivityAnalysis{
		Base:         baseMetrics,
		Parameters:   []domain.SensitivityParameter{parameter},
		Results:      results,
		Summary:      sa.calculateSensitivitySummary(results, parameter),
		AnalysisType: "single",
	}, nil
}

// AnalyzeMultipleParameters sweeps each input independently and ranks them
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(
	ctx context.Context,
	base AffordabilityInput,
	parameters []domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	if len(parameters) == 0 {
		return nil, fmt.Errorf("sensitivity: at least one parameter is required")
	}

	point := sa.basePoint(base)
	baseMetrics, err := sa.evaluate(point)
	if err != nil {
		return nil, fmt.Errorf("sensitivity: base inputs: %w", err)
	}

	analysis := &domain.ParameterSensitivityAnalysis{
		Base:         baseMetrics,
		AnalysisType: "multi",
		Summary: domain.SensitivitySummary{
			SensitivityScores: make(map[string]decimal.Decimal),
		},
	}
	maxScore := decimal.NewFromInt(-1)

	for _, param := range parameters {
		results, resolved, err := sa.sweep(ctx, point, baseMetrics, param)
		if err != nil {
			return nil, err
		}
		single := sa.calculateSensitivitySummary(results, resolved)

		paramScore := decimal.Zero
		for _, score := range single.SensitivityScores {
			if score.GreaterThan(paramScore) {
				paramScore = score
			}
		}
		analysis.Summary.SensitivityScores[resolved.Name] = paramScore
		if paramScore.GreaterThan(maxScore) {
			maxScore = paramScore
			analysis.Summary.MostSensitiveParameter = resolved.Name
		}

		analysis.Parameters = append(analysis.Parameters, resolved)
		analysis.Results = append(analysis.Results, results...)
		analysis.Summary.AffordabilityFlips = append(analysis.Summary.AffordabilityFlips, single.AffordabilityFlips...)
	}

	analysis.Summary.RiskLevel = analysis.Summary.DetermineRiskLevel()
	analysis.Summary.Recommendations = analysis.Summary.GenerateRecommendations()
	return analysis, nil
}

// AnalyzeParameterMatrix sweeps two inputs together
func (sa *SensitivityAnalyzer) AnalyzeParameterMatrix(
	ctx context.Context,
	base AffordabilityInput,
	param1, param2 domain.SensitivityParameter,
) (*domain.SensitivityMatrix, error) {
	if param1.Name == param2.Name {
		return nil, fmt.Errorf("sensitivity: matrix needs two different parameters")
	}

	point := sa.basePoint(base)
	baseMetrics, err := sa.evaluate(point)
	if err != nil {
		return nil, fmt.Errorf("sensitivity: base inputs: %w", err)
	}

	// One-dimensional sweeps give the single effects the interaction is measured against
	row, param1, err := sa.sweep(ctx, point, baseMetrics, param1)
	if err != nil {
		return nil, err
	}
	col, param2, err := sa.sweep(ctx, point, baseMetrics, param2)
	if err != nil {
		return nil, err
	}

	matrixResults := make([][]domain.SensitivityResult, len(row))
	for i, r := range row {
		matrixResults[i] = make([]domain.SensitivityResult, len(col))
		v1 := r.ParameterValues[param1.Name]

		for j, c := range col {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v2 := c.ParameterValues[param2.Name]

			p, err := applyParameter(point, param1.Name, v1)
			if err != nil {
				return nil, err
			}
			if p, err = applyParameter(p, param2.Name, v2); err != nil {
				return nil, err
			}
			metrics, err := sa.evaluate(p)
			if err != nil {
				return nil, fmt.Errorf("sensitivity: %s=%s, %s=%s: %w",
					param1.Name, formatParameterValue(param1, v1), param2.Name, formatParameterValue(param2, v2), err)
			}

			matrixResults[i][j] = domain.SensitivityResult{
				ParameterValues: map[string]decimal.Decimal{param1.Name: v1, param2.Name: v2},
				Label: fmt.Sprintf("%s=%s, %s=%s",
					param1.Name, formatParameterValue(param1, v1), param2.Name, formatParameterValue(param2, v2)),
				KeyMetrics: withChanges(metrics, baseMetrics),
			}
		}
	}

	return &domain.SensitivityMatrix{
		Base:          baseMetrics,
		Parameter1:    param1,
		Parameter2:    param2,
		MatrixResults: matrixResults,
		Summary:       sa.calculateMatrixSummary(matrixResults, row, col, param1, param2),
	}, nil
}

// sweep evaluates every value of one parameter
func (sa *SensitivityAnalyzer) sweep(
	ctx context.Context,
	point sweepPoint,
	baseMetrics domain.SensitivityMetrics,
	param domain.SensitivityParameter,
) ([]domain.SensitivityResult, domain.SensitivityParameter, error) {
	baseValue, err := baseValueOf(point, param.Name)
	if err != nil {
		return nil, param, err
	}
	param.BaseValue = baseValue
	if err := validateParameter(param); err != nil {
		return nil, param, err
	}

	values := sa.generateParameterValues(param)
	results := make([]domain.SensitivityResult, 0, len(values))
	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return nil, param, err
		}

		p, err := applyParameter(point, param.Name, value)
		if err != nil {
			return nil, param, err
		}
		metrics, err := sa.evaluate(p)
		if err != nil {
			return nil, param, fmt.Errorf("sensitivity: %s=%s: %w", param.Name, formatParameterValue(param, value), err)
		}

		results = append(results, domain.SensitivityResult{
			ParameterValues: map[string]decimal.Decimal{param.Name: value},
			Label:           fmt.Sprintf("%s=%s", param.Name, formatParameterValue(param, value)),
			KeyMetrics:      withChanges(metrics, baseMetrics),
		})
	}

	sa.engine.Logger.Debugf("sensitivity: swept %s over %d values", param.Name, len(results))
	return results, param, nil
}

// generateParameterValues spreads Steps values evenly from MinValue to MaxValue
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	values := make([]decimal.Decimal, 0, param.Steps)
	for i := 0; i < param.Steps; i++ {
		value := param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i))))
		if isIntegerParameter(param.Name) {
			value = value.Round(0)
		} else {
			value = value.Round(2)
		}
		values = append(values, value)
	}
	return values
}

func (sa *SensitivityAnalyzer) basePoint(in AffordabilityInput) sweepPoint {
	return sweepPoint{in: in, gas: sa.engine.gasPrice()}
}

func (sa *SensitivityAnalyzer) evaluate(p sweepPoint) (domain.SensitivityMetrics, error) {
	eng := *sa.engine
	eng.GasPrice = p.gas
	eng.Logger = NopLogger{}

	result, err := eng.CalculateAffordability(p.in)
	if err != nil {
		return domain.SensitivityMetrics{}, err
	}
	return domain.SensitivityMetrics{
		Score:             result.Score,
		TotalMonthlyCost:  result.TotalMonthlyCost,
		BudgetUtilization: result.BudgetUtilization.Round(2),
		CanAfford:         result.CanAfford,
	}, nil
}

func withChanges(m, base domain.SensitivityMetrics) domain.SensitivityMetrics {
	m.ScoreChange = m.Score - base.Score
	m.CostChange = m.TotalMonthlyCost.Sub(base.TotalMonthlyCost)
	m.UtilizationChange = m.BudgetUtilization.Sub(base.BudgetUtilization)
	if base.BudgetUtilization.IsPositive() {
		m.UtilizationChangePct = m.UtilizationChange.Div(base.BudgetUtilization).Mul(hundred).Round(2)
	}
	return m
}

func applyParameter(p sweepPoint, name string, value decimal.Decimal) (sweepPoint, error) {
	switch name {
	case ParamAnnualIncome:
		p.in.AnnualIncome = value
	case ParamCreditScore:
		p.in.CreditScore = int(value.Round(0).IntPart())
	case ParamVehiclePrice:
		p.in.VehiclePrice = value
	case ParamDownPayment:
		p.in.DownPayment = value
	case ParamLeaseTerm:
		p.in.LeaseTerm = int(value.Round(0).IntPart())
	case ParamAnnualMileage:
		p.in.AnnualMileage = int(value.Round(0).IntPart())
	case ParamGasPrice:
		p.gas = value
	default:
		return p, fmt.Errorf("sensitivity: unknown parameter %q", name)
	}
	return p, nil
}

func baseValueOf(p sweepPoint, name string) (decimal.Decimal, error) {
	switch name {
	case ParamAnnualIncome:
		return p.in.AnnualIncome, nil
	case ParamCreditScore:
		return decimal.NewFromInt(int64(p.in.CreditScore)), nil
	case ParamVehiclePrice:
		return p.in.VehiclePrice, nil
	case ParamDownPayment:
		return p.in.DownPayment, nil
	case ParamLeaseTerm:
		return decimal.NewFromInt(int64(p.in.LeaseTerm)), nil
	case ParamAnnualMileage:
		if p.in.AnnualMileage <= 0 {
			return decimal.NewFromInt(domain.DefaultAnnualMileage), nil
		}
		return decimal.NewFromInt(int64(p.in.AnnualMileage)), nil
	case ParamGasPrice:
		return p.gas, nil
	}
	return decimal.Zero, fmt.Errorf("sensitivity: unknown parameter %q", name)
}

func validateParameter(p domain.SensitivityParameter) error {
	if p.Steps < 1 {
		return fmt.Errorf("sensitivity: %s steps must be at least 1", p.Name)
	}
	if p.Steps > 1 && p.MinValue.GreaterThan(p.MaxValue) {
		return fmt.Errorf("sensitivity: %s min %s exceeds max %s", p.Name, p.MinValue.String(), p.MaxValue.String())
	}
	return nil
}

func isIntegerParameter(name string) bool {
	return name == ParamCreditScore || name == ParamLeaseTerm || name == ParamAnnualMileage
}

func formatParameterValue(p domain.SensitivityParameter, v decimal.Decimal) string {
	switch {
	case p.Name == ParamGasPrice:
		return v.StringFixed(2)
	case isIntegerParameter(p.Name):
		return v.Round(0).String()
	default:
		return v.StringFixed(0)
	}
}

// calculateSensitivitySummary scores each point as the elasticity of budget
// use: percent change in utilization per percent change in the parameter
func (sa *SensitivityAnalyzer) calculateSensitivitySummary(results []domain.SensitivityResult, parameter domain.SensitivityParameter) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{
		MostSensitiveParameter: parameter.Name,
		SensitivityScores:      make(map[string]decimal.Decimal),
	}
	if len(results) == 0 {
		summary.RiskLevel = summary.DetermineRiskLevel()
		return summary
	}

	for i, result := range results {
		value := result.ParameterValues[parameter.Name]
		if i > 0 && result.KeyMetrics.CanAfford != results[i-1].KeyMetrics.CanAfford {
			summary.AffordabilityFlips = append(summary.AffordabilityFlips,
				fmt.Sprintf("Can afford flips between %s and %s", results[i-1].Label, result.Label))
		}

		if parameter.BaseValue.IsZero() || value.Equal(parameter.BaseValue) {
			continue
		}
		paramChange := value.Sub(parameter.BaseValue).Div(parameter.BaseValue).Mul(hundred)
		summary.SensitivityScores[result.Label] = result.KeyMetrics.UtilizationChangePct.Abs().Div(paramChange.Abs()).Round(3)
	}

	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()
	return summary
}

// calculateMatrixSummary finds the largest move and the largest interaction.
// Interaction is the change at a cell minus the two single-parameter changes.
func (sa *SensitivityAnalyzer) calculateMatrixSummary(
	matrixResults [][]domain.SensitivityResult,
	row, col []domain.SensitivityResult,
	param1, param2 domain.SensitivityParameter,
) domain.SensitivityMatrixSummary {
	var summary domain.SensitivityMatrixSummary
	maxChange := decimal.NewFromInt(-1)
	maxSensitivity := decimal.Zero
	cells := 0

	for i := range matrixResults {
		for j := range matrixResults[i] {
			result := matrixResults[i][j]
			cells++
			if result.KeyMetrics.CanAfford {
				summary.AffordableCells++
			}

			change := result.KeyMetrics.UtilizationChange
			if change.Abs().GreaterThan(maxChange) {
				maxChange = change.Abs()
				summary.MostSensitiveCombination = result.Label
			}

			interaction := change.Sub(row[i].KeyMetrics.UtilizationChange).Sub(col[j].KeyMetrics.UtilizationChange)
			if interaction.Abs().GreaterThan(summary.InteractionEffect.Abs()) {
				summary.InteractionEffect = interaction.Round(2)
			}

			paramMove := relativeChange(result.ParameterValues[param1.Name], param1.BaseValue).
				Add(relativeChange(result.ParameterValues[param2.Name], param2.BaseValue))
			if paramMove.IsPositive() {
				s := result.KeyMetrics.UtilizationChangePct.Abs().Div(paramMove)
				if s.GreaterThan(maxSensitivity) {
					maxSensitivity = s
				}
			}
		}
	}

	summary.RiskLevel = domain.RiskLevelFor(maxSensitivity)
	summary.Recommendations = append(summary.Recommendations,
		fmt.Sprintf("%d of %d combinations are affordable", summary.AffordableCells, cells))
	switch summary.RiskLevel {
	case "LOW", "MEDIUM":
		summary.Recommendations = append(summary.Recommendations, "Budget use stays manageable across these combinations")
	default:
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("⚠️ Budget use is highly sensitive when %s and %s move together", param1.Name, param2.Name))
	}
	if summary.InteractionEffect.Abs().GreaterThan(decimal.NewFromInt(1)) {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("The two inputs compound: up to %s points of budget use beyond their separate effects",
				summary.InteractionEffect.Abs().StringFixed(1)))
	}
	return summary
}

// relativeChange is |v - base| / base in percent; zero when base is zero
func relativeChange(v, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return v.Sub(base).Div(base).Mul(hundred).Abs()
}
