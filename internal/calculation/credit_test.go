package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveAPR_TierBoundaries(t *testing.T) {
	tests := []struct {
		score    int
		expected string
		rating   string
	}{
		{850, "4.5", "Excellent"},
		{720, "4.5", "Excellent"},
		{719, "6.2", "Good"},
		{690, "6.2", "Good"},
		{689, "8.9", "Fair"},
		{630, "8.9", "Fair"},
		{629, "12.5", "Poor"},
		{580, "12.5", "Poor"},
		{579, "15.9", "Very Poor"},
		{300, "15.9", "Very Poor"},
	}

	for _, tt := range tests {
		assertDecimal(t, tt.expected, ResolveAPR(tt.score))
		assert.Equal(t, tt.rating, CreditRating(tt.score), "score %d", tt.score)
	}
}

func TestAffordableCarPrice(t *testing.T) {
	tests := []struct {
		name     string
		income   int64
		score    int
		expected string
	}{
		{"good tier", 50000, 700, "25000"},
		{"excellent tier", 50000, 750, "35000"},
		{"just below excellent", 50000, 749, "25000"},
		{"fair tier", 60000, 650, "21000"},
		{"poor tier", 60000, 600, "15000"},
		{"bad tier", 60000, 599, "9000"},
		{"scenario", 75000, 720, "37500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, AffordableCarPrice(decimal.NewFromInt(tt.income), tt.score))
		})
	}
}
