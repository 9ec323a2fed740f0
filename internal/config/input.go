package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of shopper profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a shopper profile from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Shopper, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var shopper domain.Shopper
	if err := yaml.Unmarshal(data, &shopper); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// A relative catalog path is resolved against the profile's directory
	if shopper.CatalogFile != "" && !filepath.IsAbs(shopper.CatalogFile) {
		shopper.CatalogFile = filepath.Join(filepath.Dir(filename), shopper.CatalogFile)
	}

	if err := ip.ValidateConfiguration(&shopper); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &shopper, nil
}

// ValidateConfiguration validates a loaded profile
func (ip *InputParser) ValidateConfiguration(shopper *domain.Shopper) error {
	if shopper == nil {
		return fmt.Errorf("profile is required")
	}
	if err := shopper.Financial.Validate(); err != nil {
		return fmt.Errorf("financial profile: %w", err)
	}
	if err := ip.validateLifestyle(&shopper.Lifestyle); err != nil {
		return fmt.Errorf("lifestyle: %w", err)
	}
	return ip.validateShortlist(shopper.Shortlist)
}

func (ip *InputParser) validateLifestyle(up *domain.UserProfile) error {
	if up.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if up.DailyCommuteOneWay < 0 || up.WeekendDrivingPerWeek < 0 {
		return fmt.Errorf("driving distances cannot be negative")
	}
	if up.EstimatedAnnualMileage < 0 {
		return fmt.Errorf("estimated annual mileage %d: %w", up.EstimatedAnnualMileage, domain.ErrInvalidMileage)
	}
	return nil
}

func (ip *InputParser) validateShortlist(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return fmt.Errorf("shortlist entry %d is empty", i)
		}
		if seen[id] {
			return fmt.Errorf("shortlist lists %q twice", id)
		}
		seen[id] = true
	}
	return nil
}
