package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common shopper scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Income
	registry.Register(Template{
		Name:        "raise_5k",
		Description: "Annual income up $5,000",
		Transforms:  []ProfileTransform{&AdjustIncome{Amount: decimal.NewFromInt(5000)}},
	})
	registry.Register(Template{
		Name:        "raise_10k",
		Description: "Annual income up $10,000",
		Transforms:  []ProfileTransform{&AdjustIncome{Amount: decimal.NewFromInt(10000)}},
	})
	registry.Register(Template{
		Name:        "pay_cut_10pct",
		Description: "Annual income down 10%",
		Transforms:  []ProfileTransform{&scaleIncome{Factor: decimal.NewFromFloat(0.9)}},
	})

	// Credit
	registry.Register(Template{
		Name:        "credit_plus_50",
		Description: "Credit score up 50 points",
		Transforms:  []ProfileTransform{&AdjustCreditScore{Points: 50}},
	})
	registry.Register(Template{
		Name:        "credit_excellent",
		Description: "Credit score of 780 (excellent tier)",
		Transforms:  []ProfileTransform{&SetCreditScore{Score: 780}},
	})

	// Loan term
	for _, months := range []int{36, 60, 72} {
		registry.Register(Template{
			Name:        fmt.Sprintf("term_%d", months),
			Description: fmt.Sprintf("Finance over %d months", months),
			Transforms:  []ProfileTransform{&SetLeaseTerm{Months: months}},
		})
	}

	// Driving
	registry.Register(Template{
		Name:        "drive_less",
		Description: "Drive 8,000 miles a year with the low-mileage factor on",
		Transforms: []ProfileTransform{
			&SetAnnualMileage{Miles: 8000},
			&SetFactor{Factor: FactorLowMileage, Enabled: true},
		},
	})
	registry.Register(Template{
		Name:        "drive_more",
		Description: "Drive 18,000 miles a year with the low-mileage factor off",
		Transforms: []ProfileTransform{
			&SetAnnualMileage{Miles: 18000},
			&SetFactor{Factor: FactorLowMileage, Enabled: false},
		},
	})

	// Combinations
	registry.Register(Template{
		Name:        "best_case",
		Description: "Raise $10,000 + credit 780 + 60-month term",
		Transforms: []ProfileTransform{
			&AdjustIncome{Amount: decimal.NewFromInt(10000)},
			&SetCreditScore{Score: 780},
			&SetLeaseTerm{Months: 60},
		},
	})
	registry.Register(Template{
		Name:        "tight_budget",
		Description: "Income down 10% + credit down 50 points",
		Transforms: []ProfileTransform{
			&scaleIncome{Factor: decimal.NewFromFloat(0.9)},
			&AdjustCreditScore{Points: -50},
		},
	})

	return registry
}

// scaleIncome multiplies annual income; only templates use it
type scaleIncome struct {
	Factor decimal.Decimal
}

func (s *scaleIncome) Name() string { return "scale_income" }

func (s *scaleIncome) Description() string {
	return fmt.Sprintf("Scale annual income by %s", s.Factor.String())
}

func (s *scaleIncome) Validate(base *domain.Shopper) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base shopper cannot be nil", nil)
	}
	if !s.Factor.IsPositive() {
		return NewTransformError(s.Name(), "validate", "factor must be positive", nil)
	}
	return nil
}

func (s *scaleIncome) Apply(base *domain.Shopper) (*domain.Shopper, error) {
	modified := base.Clone()
	modified.Financial.AnnualIncome = modified.Financial.AnnualIncome.Mul(s.Factor).Round(2)
	return modified, nil
}

// ApplyTemplate applies a template to a base shopper
func ApplyTemplate(base *domain.Shopper, template Template) (*domain.Shopper, error) {
	if len(template.Transforms) == 0 {
		return base.Clone(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

var templateCategories = []string{"Income", "Credit", "Loan Term", "Driving", "Combinations"}

func templateCategory(name string) string {
	switch {
	case strings.HasPrefix(name, "raise_"), strings.HasPrefix(name, "pay_cut"):
		return "Income"
	case strings.HasPrefix(name, "credit_"):
		return "Credit"
	case strings.HasPrefix(name, "term_"):
		return "Loan Term"
	case strings.HasPrefix(name, "drive_"):
		return "Driving"
	default:
		return "Combinations"
	}
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		cat := templateCategory(t.Name)
		categories[cat] = append(categories[cat], t)
	}

	for _, category := range templateCategories {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  drivefit whatif profile.yaml --template raise_5k,credit_plus_50\n")
	sb.WriteString("  drivefit whatif profile.yaml --transform set_budget:min=20000,max=35000\n")

	return sb.String()
}
