package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allFactors = domain.DepreciationFactors{LowMileage: true, GoodCondition: true, LowInterest: true, LowGas: true}

func TestForecast_BaseCurve(t *testing.T) {
	expected := []domain.ForecastPoint{
		{Year: 0, Value: 100, Lower: 86, Upper: 100},
		{Year: 1, Value: 85, Lower: 81, Upper: 87},
		{Year: 2, Value: 73, Lower: 68, Upper: 76},
		{Year: 3, Value: 63, Lower: 53, Upper: 69},
		{Year: 4, Value: 55, Lower: 43, Upper: 63},
		{Year: 5, Value: 48, Lower: 35, Upper: 57},
		{Year: 7, Value: 38, Lower: 24, Upper: 48},
	}
	assert.Equal(t, expected, Forecast(domain.DepreciationFactors{}))
}

func TestForecast_AllFactors(t *testing.T) {
	expected := []domain.ForecastPoint{
		{Year: 0, Value: 100, Lower: 86, Upper: 100},
		{Year: 1, Value: 93, Lower: 89, Upper: 95},
		{Year: 2, Value: 81, Lower: 76, Upper: 84},
		{Year: 3, Value: 71, Lower: 61, Upper: 77},
		{Year: 4, Value: 63, Lower: 51, Upper: 71},
		{Year: 5, Value: 56, Lower: 43, Upper: 65},
		{Year: 7, Value: 46, Lower: 32, Upper: 56},
	}
	assert.Equal(t, expected, Forecast(allFactors))
}

func TestForecast_FactorMonotonicity(t *testing.T) {
	base := Forecast(domain.DepreciationFactors{})

	// every subset of the four factors
	for mask := 0; mask < 16; mask++ {
		f := domain.DepreciationFactors{
			LowMileage:    mask&1 != 0,
			GoodCondition: mask&2 != 0,
			LowInterest:   mask&4 != 0,
			LowGas:        mask&8 != 0,
		}
		got := Forecast(f)
		require.Len(t, got, len(base))
		assert.Equal(t, 100, got[0].Value, "year 0 retains full value")
		for i := range got {
			assert.GreaterOrEqual(t, got[i].Value, base[i].Value, "mask %d year %d", mask, got[i].Year)
			assert.LessOrEqual(t, got[i].Value, 100)
			assert.LessOrEqual(t, got[i].Lower, got[i].Value)
			assert.GreaterOrEqual(t, got[i].Upper, got[i].Value)
		}
	}
}

func TestFactorAdjustment(t *testing.T) {
	assert.True(t, FactorAdjustment(domain.DepreciationFactors{}).IsZero())
	assertDecimal(t, "0.03", FactorAdjustment(domain.DepreciationFactors{LowMileage: true}))
	assertDecimal(t, "0.08", FactorAdjustment(allFactors))
}

func TestResaleValue(t *testing.T) {
	price := dec("35000")

	tests := []struct {
		name       string
		years      string
		factors    domain.DepreciationFactors
		value      string
		lower      string
		upper      string
		confidence string
	}{
		{"known year", "3", domain.DepreciationFactors{}, "22050", "18550", "24150", ConfidenceHigh},
		{"fractional year interpolates", "2.5", domain.DepreciationFactors{}, "23800", "21350", "25550", ConfidenceHigh},
		{"missing year six interpolates", "6", domain.DepreciationFactors{}, "15050", "10500", "18550", ConfidenceLower},
		{"beyond curve holds last point", "10", domain.DepreciationFactors{}, "13300", "8400", "16800", ConfidenceLower},
		{"with factor", "4", domain.DepreciationFactors{LowMileage: true}, "20300", "16100", "23100", ConfidenceModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := ResaleValue(price, dec(tt.years), tt.factors)
			assertDecimal(t, tt.value, est.EstimatedValue)
			assertDecimal(t, tt.lower, est.LowerBound)
			assertDecimal(t, tt.upper, est.UpperBound)
			assert.Equal(t, tt.confidence, est.Confidence)
		})
	}
}

func TestResaleValue_MatchesForecastAtYearThree(t *testing.T) {
	for _, f := range []domain.DepreciationFactors{{}, allFactors, {GoodCondition: true}} {
		for _, p := range []string{"22300", "35000", "55000"} {
			price := dec(p)
			year3 := Forecast(f)[3]
			require.Equal(t, 3, year3.Year)
			expected := price.Mul(decimal.NewFromInt(int64(year3.Value))).Div(decimal.NewFromInt(100)).Round(0)
			assert.True(t, expected.Equal(ResaleValue(price, dec("3"), f).EstimatedValue))
		}
	}
}

func TestConfidenceLabel(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, ConfidenceLabel(dec("3")))
	assert.Equal(t, ConfidenceModerate, ConfidenceLabel(dec("3.5")))
	assert.Equal(t, ConfidenceModerate, ConfidenceLabel(dec("5")))
	assert.Equal(t, ConfidenceLower, ConfidenceLabel(dec("5.01")))
}

func TestEngine_ResaleValidation(t *testing.T) {
	engine := NewEngine(nil)

	_, err := engine.Resale(decimal.Zero, dec("3"), domain.DepreciationFactors{})
	assert.True(t, errors.Is(err, domain.ErrInvalidPrice))

	_, err = engine.Resale(dec("30000"), decimal.Zero, domain.DepreciationFactors{})
	assert.True(t, errors.Is(err, domain.ErrInvalidYears))

	_, err = engine.DepreciationForecast(dec("-5"), domain.DepreciationFactors{})
	assert.True(t, errors.Is(err, domain.ErrInvalidPrice))

	points, err := engine.DepreciationForecast(dec("30000"), allFactors)
	require.NoError(t, err)
	assert.Len(t, points, 7)
}

func TestValuePath(t *testing.T) {
	v := vehicle("camry-le", 28400, "32", "4.8")
	path := ValuePath(v, 12000)
	require.Len(t, path, 11)

	expected := [][4]int64{
		{2024, 27946, 25151, 30740},
		{2025, 21999, 19799, 24199},
		{2026, 19049, 17144, 20954},
		{2029, 12368, 11131, 13605},
		{2034, 7520, 6768, 8272},
	}
	byYear := map[int]domain.ValuePathPoint{}
	for _, p := range path {
		byYear[p.Year] = p
	}
	for _, e := range expected {
		p, ok := byYear[int(e[0])]
		require.True(t, ok, "year %d", e[0])
		assert.Equal(t, e[1], p.Value.IntPart(), "value %d", e[0])
		assert.Equal(t, e[2], p.Lower.IntPart(), "lower %d", e[0])
		assert.Equal(t, e[3], p.Upper.IntPart(), "upper %d", e[0])
	}
}

func TestValuePath_MileageLowersValue(t *testing.T) {
	v := vehicle("rav4-le", 30500, "30", "4.7")
	low := ValuePath(v, 6000)
	high := ValuePath(v, 24000)
	for i := range low {
		assert.True(t, low[i].Value.GreaterThan(high[i].Value), "year %d", low[i].Year)
	}
	// default mileage applies when none is given
	assert.Equal(t, ValuePath(v, 12000), ValuePath(v, 0))
}

func TestEngine_Projection(t *testing.T) {
	engine := NewEngine(nil)
	v := vehicle("camry-le", 28400, "32", "4.8")

	proj, err := engine.Projection(v, DefaultProjectionAPR, 12000)
	require.NoError(t, err)
	assertDecimal(t, "5680", proj.DownPayment)
	assertDecimal(t, "22720", proj.LoanAmount)
	assert.Equal(t, 60, proj.TermMonths)
	assertDecimal(t, "428.75", proj.MonthlyPayment)
	assertDecimal(t, "109.38", proj.MonthlyFuel)
	assert.Len(t, proj.Path, 11)

	_, err = engine.Projection(v, dec("-1"), 12000)
	assert.True(t, errors.Is(err, domain.ErrInvalidAPR))
}
