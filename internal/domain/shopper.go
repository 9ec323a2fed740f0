package domain

import "github.com/shopspring/decimal"

// Shopper is the root of a profile input file: who is buying, what they earn,
// how they drive, and which vehicles they already have in mind.
type Shopper struct {
	Name        string              `yaml:"name" json:"name"`
	Financial   FinancialProfile    `yaml:"financial" json:"financial"`
	Lifestyle   UserProfile         `yaml:"lifestyle" json:"lifestyle"`
	Factors     DepreciationFactors `yaml:"depreciation_factors" json:"depreciationFactors"`
	Shortlist   []string            `yaml:"shortlist,omitempty" json:"shortlist,omitempty"`
	CatalogFile string              `yaml:"catalog_file,omitempty" json:"catalogFile,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with s
func (s *Shopper) Clone() *Shopper {
	if s == nil {
		return nil
	}
	c := *s
	if s.Shortlist != nil {
		c.Shortlist = append([]string(nil), s.Shortlist...)
	}
	c.Financial.CashflowStability = cloneDecimal(s.Financial.CashflowStability)
	c.Financial.AvgMonthlyCashflow = cloneDecimal(s.Financial.AvgMonthlyCashflow)
	c.Financial.CashflowVolatility = cloneDecimal(s.Financial.CashflowVolatility)
	return &c
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
