// Package catalog holds the read-only vehicle lineup the engine ranks.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"gopkg.in/yaml.v3"
)

// CategoryAll selects every vehicle in ByCategory
const CategoryAll = "all"

// Catalog is an immutable set of vehicles in display order
type Catalog struct {
	vehicles []domain.VehicleData
	index    map[string]int
}

// New validates the records and builds a catalog. Ids must be unique.
func New(vehicles []domain.VehicleData) (*Catalog, error) {
	if len(vehicles) == 0 {
		return nil, errors.New("catalog is empty")
	}
	c := &Catalog{
		vehicles: make([]domain.VehicleData, len(vehicles)),
		index:    make(map[string]int, len(vehicles)),
	}
	copy(c.vehicles, vehicles)
	for i, v := range c.vehicles {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("vehicle %d: %w", i, err)
		}
		if _, dup := c.index[v.ID]; dup {
			return nil, fmt.Errorf("duplicate vehicle id %q: %w", v.ID, domain.ErrInvalidVehicle)
		}
		c.index[v.ID] = i
	}
	return c, nil
}

// Default returns the built-in 2024 Toyota lineup
func Default() *Catalog {
	c, err := New(toyota2024)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

type catalogFile struct {
	Vehicles []domain.VehicleData `yaml:"vehicles"`
}

// LoadFromFile reads a YAML catalog of the form `vehicles: [...]`
func LoadFromFile(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", filename, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	c, err := New(file.Vehicles)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", filename, err)
	}
	return c, nil
}

// All returns a copy of every vehicle in catalog order
func (c *Catalog) All() []domain.VehicleData {
	out := make([]domain.VehicleData, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

// Len is the number of vehicles
func (c *Catalog) Len() int {
	return len(c.vehicles)
}

// ByID looks up a vehicle
func (c *Catalog) ByID(id string) (domain.VehicleData, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.VehicleData{}, false
	}
	return c.vehicles[i], true
}

// ByCategory filters by exact category; CategoryAll returns everything
func (c *Catalog) ByCategory(category string) []domain.VehicleData {
	if category == CategoryAll {
		return c.All()
	}
	return c.filter(func(v domain.VehicleData) bool { return v.Category == category })
}

// Search matches a case-insensitive substring of model or trim
func (c *Catalog) Search(query string) []domain.VehicleData {
	q := strings.ToLower(query)
	return c.filter(func(v domain.VehicleData) bool {
		return strings.Contains(strings.ToLower(v.Model), q) ||
			strings.Contains(strings.ToLower(v.Trim), q)
	})
}

// Categories lists the distinct categories, sorted
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range c.vehicles {
		if !seen[v.Category] {
			seen[v.Category] = true
			out = append(out, v.Category)
		}
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) filter(keep func(domain.VehicleData) bool) []domain.VehicleData {
	out := []domain.VehicleData{}
	for _, v := range c.vehicles {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
