// Package recommend produces the narrative that accompanies a vehicle match:
// a deterministic rule-based writer, a Gemini-backed writer that falls back
// to it, and a caching decorator.
package recommend

import (
	"context"
	"time"

	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Where a recommendation came from
const (
	SourceRules  = "rules"
	SourceGemini = "gemini"
	SourceCache  = "cache"
)

// UserSummary is the slice of a shopper profile the narrative refers to
type UserSummary struct {
	AnnualIncome decimal.Decimal `json:"annualIncome"`
	CreditScore  int             `json:"creditScore"`
	LeaseTerm    int             `json:"leaseTerm"`
	BudgetMin    decimal.Decimal `json:"budgetMin"`
	BudgetMax    decimal.Decimal `json:"budgetMax"`
}

// SummaryFromProfile extracts the narrative inputs from a financial profile
func SummaryFromProfile(fp domain.FinancialProfile) UserSummary {
	return UserSummary{
		AnnualIncome: fp.AnnualIncome,
		CreditScore:  fp.CreditScore,
		LeaseTerm:    fp.LeaseTerm,
		BudgetMin:    fp.BudgetMin,
		BudgetMax:    fp.BudgetMax,
	}
}

// Request asks for a narrative about one scored vehicle
type Request struct {
	Match   domain.VehicleMatch `json:"vehicleMatch"`
	Profile UserSummary         `json:"userProfile"`
}

// Recommendation is the narrative for one vehicle match
type Recommendation struct {
	Summary            string   `json:"summary"`
	KeyPoints          []string `json:"keyPoints"`
	FinancialInsight   string   `json:"financialInsight"`
	ReliabilityInsight string   `json:"reliabilityInsight"`
	ValueInsight       string   `json:"valueInsight"`

	Source string `json:"-"`
}

// Comparison is the narrative across several matches
type Comparison struct {
	Text   string
	Source string
}

// Recommender writes narratives for matches
type Recommender interface {
	Recommend(ctx context.Context, req Request) (Recommendation, error)
	// Compare summarizes which of the matches is the better buy. Matches are
	// expected best-first.
	Compare(ctx context.Context, matches []domain.VehicleMatch, profile UserSummary) (Comparison, error)
}

// New builds the configured recommender. A nil cache disables caching.
func New(rc config.RecommenderConfig, cache Cache, ttl time.Duration, logger *zap.Logger) Recommender {
	var r Recommender = RuleBased{}
	if rc.Provider == config.ProviderGemini {
		r = NewGemini(rc, logger)
	}
	if cache != nil {
		r = NewCached(r, cache, ttl, logger)
	}
	return r
}
