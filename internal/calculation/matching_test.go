package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPercentage_Scenario(t *testing.T) {
	c := MatchCriteria{
		MonthlyIncome: dec("5076.791666666667"),
		BudgetMin:     dec("25000"),
		BudgetMax:     dec("40000"),
		LeaseTerm:     48,
		CreditScore:   720,
	}
	assert.Equal(t, 85, MatchPercentage(dec("35000"), dec("4.5"), dec("30"), c))
}

func TestMatchPercentage_Components(t *testing.T) {
	rich := MatchCriteria{
		MonthlyIncome: dec("100000"),
		BudgetMin:     dec("20000"),
		BudgetMax:     dec("40000"),
		LeaseTerm:     60,
		CreditScore:   800,
	}

	tests := []struct {
		name        string
		price       string
		reliability string
		mpg         string
		expected    int
	}{
		// 40 price + 30 reliability + 20 payment + 10 efficiency
		{"perfect vehicle", "30000", "5.0", "50", 100},
		// reliability at or below 4.0 earns nothing
		{"average reliability", "30000", "4.0", "30", 70},
		{"below budget scales down", "10000", "5.0", "30", 80},
		{"above budget scales down", "80000", "5.0", "30", 80},
		{"poor efficiency", "30000", "5.0", "15", 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchPercentage(dec(tt.price), dec(tt.reliability), dec(tt.mpg), rich))
		})
	}
}

func TestMatchPercentage_Bounds(t *testing.T) {
	incomes := []string{"0", "500", "5000", "50000"}
	prices := []string{"5000", "30000", "250000"}
	reliabilities := []string{"1.0", "4.0", "5.0"}
	mpgs := []string{"5", "30", "140"}

	for _, inc := range incomes {
		for _, p := range prices {
			for _, r := range reliabilities {
				for _, m := range mpgs {
					got := MatchPercentage(dec(p), dec(r), dec(m), MatchCriteria{
						MonthlyIncome: dec(inc),
						BudgetMin:     dec("20000"),
						BudgetMax:     dec("40000"),
						LeaseTerm:     36,
						CreditScore:   300,
					})
					assert.GreaterOrEqual(t, got, 0)
					assert.LessOrEqual(t, got, 100)
				}
			}
		}
	}
}

func TestSalaryFitAndTermMatch(t *testing.T) {
	net := dec("5000")
	assert.Equal(t, 95, SalaryFit(dec("749.99"), net))
	assert.Equal(t, 85, SalaryFit(dec("750"), net))
	assert.Equal(t, 70, SalaryFit(dec("1000"), net))

	assert.Equal(t, 95, TermMatch(36))
	assert.Equal(t, 90, TermMatch(48))
	assert.Equal(t, 85, TermMatch(60))

	assert.Equal(t, 94, ReliabilityScore(dec("4.7")))
	assert.Equal(t, 98, ReliabilityScore(dec("4.9")))
}

func TestEngine_Match_Scenario(t *testing.T) {
	engine := NewEngine(catalog.Default())

	matches, err := engine.Match(scenarioProfile(), 0)
	require.NoError(t, err)
	require.Len(t, matches, DefaultMatchLimit)

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.Vehicle.ID
	}
	assert.Equal(t, []string{
		"camry-hybrid-se", "corolla-hybrid-le", "corolla-se",
		"camry-le", "camry-se", "camry-xse",
		"corolla-le", "rav4-le", "rav4-xle", "rav4-xle-hybrid",
	}, ids)

	top := matches[0]
	assert.Equal(t, 97, top.MatchPercentage)
	assertDecimal(t, "654.69", top.MonthlyPayment)
	assertDecimal(t, "987", top.TotalMonthlyCost.Total)
	assert.Equal(t, 17, top.AffordabilityScore)
	assert.Equal(t, 95, top.SalaryFit)
	assert.Equal(t, 98, top.ReliabilityScore)
	assert.Equal(t, 90, top.TermMatch)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].MatchPercentage, matches[i].MatchPercentage)
	}
}

func TestEngine_Match_FullCatalogTail(t *testing.T) {
	engine := NewEngine(catalog.Default())

	matches, err := engine.Match(scenarioProfile(), 50)
	require.NoError(t, err)
	require.Len(t, matches, 22)

	last := matches[len(matches)-1]
	assert.Equal(t, "tacoma-trd-pro", last.Vehicle.ID)
	assert.Equal(t, 58, last.MatchPercentage)
	assert.Equal(t, 0, last.AffordabilityScore)
	assert.Equal(t, 70, last.SalaryFit)
}

func TestEngine_Match_TiesKeepCatalogOrder(t *testing.T) {
	source := sliceSource{
		vehicle("b", 30000, "30", "4.5"),
		vehicle("a", 30000, "30", "4.5"),
		vehicle("c", 30000, "30", "4.5"),
	}
	engine := NewEngine(source)

	matches, err := engine.Match(scenarioProfile(), 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "b", matches[0].Vehicle.ID)
	assert.Equal(t, "a", matches[1].Vehicle.ID)
}

func TestEngine_Match_Validation(t *testing.T) {
	engine := NewEngine(catalog.Default())

	p := scenarioProfile()
	p.BudgetMin = dec("50000")
	_, err := engine.Match(p, 10)
	assert.True(t, errors.Is(err, domain.ErrInvalidBudget))

	p = scenarioProfile()
	p.AnnualIncome = decimal.Zero
	_, err = engine.Match(p, 10)
	assert.True(t, errors.Is(err, domain.ErrInvalidIncome))

	_, err = NewEngine(nil).Match(scenarioProfile(), 10)
	assert.Error(t, err)
}

func TestEngine_MatchSelected(t *testing.T) {
	engine := NewEngine(catalog.Default())
	logger := &TestLogger{}
	engine.SetLogger(logger)

	matches, err := engine.MatchSelected(scenarioProfile(), []string{"rav4-le", "nope", "camry-le"})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "rav4-le", matches[0].Vehicle.ID)
	assert.Equal(t, "camry-le", matches[1].Vehicle.ID)
	assert.Contains(t, logger.lines, "WARN match: unknown vehicle %q skipped")
}
