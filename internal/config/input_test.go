package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfileYAML = `
name: "Jordan"
financial:
  annual_income: 75000
  monthly_income: 6250
  monthly_expenses: 2800
  total_savings: 12000
  credit_score: 720
  employment_subsidy: 0
  budget_min: 25000
  budget_max: 40000
  lease_term: 48
lifestyle:
  age: 29
  is_first_car: false
  daily_commute_one_way: 18
  estimated_annual_mileage: 14000
depreciation_factors:
  low_mileage: true
  good_condition: true
shortlist:
  - camry-le
  - rav4-xle-hybrid
catalog_file: lineup.yaml
`

func validShopper() *domain.Shopper {
	return &domain.Shopper{
		Name: "Jordan",
		Financial: domain.FinancialProfile{
			AnnualIncome: decimal.NewFromInt(75000),
			CreditScore:  720,
			BudgetMin:    decimal.NewFromInt(25000),
			BudgetMax:    decimal.NewFromInt(40000),
			LeaseTerm:    48,
		},
	}
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	shopper, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, shopper)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidFile, []byte("invalid: yaml: content: [unclosed"), 0644))

	shopper, err := NewInputParser().LoadFromFile(invalidFile)

	assert.Error(t, err)
	assert.Nil(t, shopper)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "profile.yaml")
	require.NoError(t, os.WriteFile(validFile, []byte(validProfileYAML), 0644))

	shopper, err := NewInputParser().LoadFromFile(validFile)
	require.NoError(t, err)

	assert.Equal(t, "Jordan", shopper.Name)
	assert.True(t, shopper.Financial.AnnualIncome.Equal(decimal.NewFromInt(75000)))
	assert.Equal(t, 720, shopper.Financial.CreditScore)
	assert.Equal(t, 48, shopper.Financial.LeaseTerm)
	assert.Equal(t, 14000, shopper.Lifestyle.AnnualMileage())
	assert.True(t, shopper.Factors.LowMileage)
	assert.True(t, shopper.Factors.GoodCondition)
	assert.False(t, shopper.Factors.LowGas)
	assert.Equal(t, []string{"camry-le", "rav4-xle-hybrid"}, shopper.Shortlist)
	assert.Equal(t, filepath.Join(tmpDir, "lineup.yaml"), shopper.CatalogFile, "Should resolve catalog next to the profile")
}

func TestInputParser_LoadFromFile_ValidationFailure(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "bad.yaml")
	content := "financial:\n  annual_income: 50000\n  credit_score: 900\n  budget_min: 1\n  budget_max: 2\n  lease_term: 36\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	_, err := NewInputParser().LoadFromFile(file)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.True(t, errors.Is(err, domain.ErrInvalidCreditScore))
}

func TestInputParser_ValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(*domain.Shopper)
		wantErr bool
		target  error
	}{
		{name: "valid", mutate: func(*domain.Shopper) {}},
		{
			name:    "zero income",
			mutate:  func(s *domain.Shopper) { s.Financial.AnnualIncome = decimal.Zero },
			wantErr: true,
			target:  domain.ErrInvalidIncome,
		},
		{
			name:    "inverted budget",
			mutate:  func(s *domain.Shopper) { s.Financial.BudgetMin = decimal.NewFromInt(50000) },
			wantErr: true,
			target:  domain.ErrInvalidBudget,
		},
		{
			name:    "negative subsidy",
			mutate:  func(s *domain.Shopper) { s.Financial.EmploymentSubsidy = decimal.NewFromInt(-1) },
			wantErr: true,
			target:  domain.ErrInvalidSubsidy,
		},
		{
			name:    "zero lease term",
			mutate:  func(s *domain.Shopper) { s.Financial.LeaseTerm = 0 },
			wantErr: true,
			target:  domain.ErrInvalidTerm,
		},
		{
			name:    "negative mileage",
			mutate:  func(s *domain.Shopper) { s.Lifestyle.EstimatedAnnualMileage = -5 },
			wantErr: true,
			target:  domain.ErrInvalidMileage,
		},
		{
			name:    "negative commute",
			mutate:  func(s *domain.Shopper) { s.Lifestyle.DailyCommuteOneWay = -1 },
			wantErr: true,
		},
		{
			name:    "duplicate shortlist",
			mutate:  func(s *domain.Shopper) { s.Shortlist = []string{"camry-le", "camry-le"} },
			wantErr: true,
		},
		{
			name:    "blank shortlist entry",
			mutate:  func(s *domain.Shopper) { s.Shortlist = []string{" "} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shopper := validShopper()
			tt.mutate(shopper)
			err := parser.ValidateConfiguration(shopper)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
		})
	}

	assert.Error(t, parser.ValidateConfiguration(nil))
}
