package transform

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []ProfileTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	if _, ok = registry.Get("TEST_TEMPLATE"); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	if _, ok = registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestTemplateRegistry_List(t *testing.T) {
	registry := NewTemplateRegistry()

	registry.Register(Template{Name: "template2", Description: "Second"})
	registry.Register(Template{Name: "template1", Description: "First"})

	names := registry.List()
	if len(names) != 2 {
		t.Fatalf("Expected 2 templates, got %d", len(names))
	}
	if names[0] != "template1" {
		t.Errorf("Expected sorted names, got %v", names)
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{
		"raise_5k", "raise_10k", "pay_cut_10pct",
		"credit_plus_50", "credit_excellent",
		"term_36", "term_60", "term_72",
		"drive_less", "drive_more",
		"best_case", "tight_budget",
	} {
		tmpl, ok := registry.Get(name)
		if !ok {
			t.Errorf("Expected template %s to exist", name)
			continue
		}
		if len(tmpl.Transforms) == 0 {
			t.Errorf("Template %s has no transforms", name)
		}
		if tmpl.Description == "" {
			t.Errorf("Template %s has no description", name)
		}
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := createTestShopper()

	tests := []struct {
		name       string
		income     int64
		credit     int
		term       int
		lowMileage bool
	}{
		{name: "raise_5k", income: 80000, credit: 720, term: 48},
		{name: "pay_cut_10pct", income: 67500, credit: 720, term: 48},
		{name: "credit_excellent", income: 75000, credit: 780, term: 48},
		{name: "term_72", income: 75000, credit: 720, term: 72},
		{name: "drive_less", income: 75000, credit: 720, term: 48, lowMileage: true},
		{name: "best_case", income: 85000, credit: 780, term: 60},
		{name: "tight_budget", income: 67500, credit: 670, term: 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, _ := registry.Get(tt.name)
			result, err := ApplyTemplate(base, tmpl)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !result.Financial.AnnualIncome.Equal(decimal.NewFromInt(tt.income)) {
				t.Errorf("Expected income %d, got %s", tt.income, result.Financial.AnnualIncome)
			}
			if result.Financial.CreditScore != tt.credit {
				t.Errorf("Expected credit %d, got %d", tt.credit, result.Financial.CreditScore)
			}
			if result.Financial.LeaseTerm != tt.term {
				t.Errorf("Expected term %d, got %d", tt.term, result.Financial.LeaseTerm)
			}
			if result.Factors.LowMileage != tt.lowMileage {
				t.Errorf("Expected low mileage %t, got %t", tt.lowMileage, result.Factors.LowMileage)
			}
		})
	}

	if base.Financial.CreditScore != 720 || base.Financial.LeaseTerm != 48 {
		t.Error("Templates modified the base shopper")
	}
}

func TestApplyTemplate_EmptyTransforms(t *testing.T) {
	base := createTestShopper()

	result, err := ApplyTemplate(base, Template{Name: "empty"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result == base {
		t.Error("Expected a copy, got the same pointer")
	}
	if result.Financial.CreditScore != base.Financial.CreditScore {
		t.Error("Expected identical copy")
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "", want: nil},
		{input: "raise_5k", want: []string{"raise_5k"}},
		{input: "raise_5k,term_60", want: []string{"raise_5k", "term_60"}},
		{input: " raise_5k , term_60 ,", want: []string{"raise_5k", "term_60"}},
		{input: ",,", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseTemplateList(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Index %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	for _, want := range []string{
		"Available Templates:",
		"Income:",
		"Credit:",
		"Loan Term:",
		"Driving:",
		"Combinations:",
		"raise_5k",
		"best_case",
		"drivefit whatif",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}

	// Categories appear in a fixed order
	if strings.Index(help, "Income:") > strings.Index(help, "Combinations:") {
		t.Error("Expected Income before Combinations")
	}
}

func TestGetTemplateHelp_EmptyRegistry(t *testing.T) {
	if help := GetTemplateHelp(NewTemplateRegistry()); help != "No templates registered" {
		t.Errorf("Unexpected help %q", help)
	}
}
