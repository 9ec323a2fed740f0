package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing vehicles
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("VEHICLE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("Base Vehicle: %s\n", compSet.BaseResult.Name))
	}
	sb.WriteString(fmt.Sprintf("Ownership Period: %d months\n", compSet.TermMonths))
	if compSet.ProfilePath != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", compSet.ProfilePath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Vehicle",
		numWidth, "Match",
		numWidth, "Payment",
		numWidth, "Monthly",
		numWidth, "Net TCO"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Name))

			matchSymbol := "+"
			if alt.MatchDiffFromBase < 0 {
				matchSymbol = ""
			}
			sb.WriteString(fmt.Sprintf("  Match:            %s%d points\n", matchSymbol, alt.MatchDiffFromBase))

			// lower cost is better
			if !alt.MonthlyCostDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Monthly Cost:     %s$%s\n",
					tf.deltaSymbol(alt.MonthlyCostDiffFromBase),
					alt.MonthlyCostDiffFromBase.Abs().StringFixed(0)))
			}
			if !alt.NetCostDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Net TCO:          %s$%s (%s%%)\n",
					tf.deltaSymbol(alt.NetCostDiffFromBase),
					tf.formatDecimal(alt.NetCostDiffFromBase.Abs()),
					alt.NetCostPctFromBase.StringFixed(1)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Name
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, fmt.Sprintf("%d%%", result.MatchPercentage),
		numWidth, "$"+result.MonthlyPayment.StringFixed(2),
		numWidth, "$"+result.TotalMonthlyCost.StringFixed(0),
		numWidth, "$"+tf.formatDecimal(result.NetCost))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol prefixes increases with + and decreases with -
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of monthly cost deltas
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseResult.Name))
	}

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.MonthlyCostDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+$%s/mo", alt.MonthlyCostDiffFromBase.StringFixed(0))
		} else if alt.MonthlyCostDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-$%s/mo", alt.MonthlyCostDiffFromBase.Abs().StringFixed(0))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name, change))
	}

	return sb.String()
}
