package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Target:      %s\n", result.Request.Target))
	if result.Request.Vehicle.MSRP > 0 {
		sb.WriteString(fmt.Sprintf("Vehicle:     %s ($%s)\n", tf.vehicleName(result), tf.formatCurrency(result.Request.Vehicle.Price())))
	}
	sb.WriteString(fmt.Sprintf("Status:      %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLVED PARAMETER\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(tf.parameterLine(result))
	sb.WriteString("\n")

	if a := result.Affordability; a != nil {
		sb.WriteString("AFFORDABILITY AT THIS VALUE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Score:              %d/100\n", a.Score))
		sb.WriteString(fmt.Sprintf("Total monthly cost: $%s\n", tf.formatCurrency(a.TotalMonthlyCost)))
		sb.WriteString(fmt.Sprintf("Budget used:        %s%%\n", a.BudgetUtilization.StringFixed(1)))
		sb.WriteString(fmt.Sprintf("Can afford:         %t\n", a.CanAfford))
		sb.WriteString("\n")
	}

	if b := result.BuyVsLease; b != nil {
		sb.WriteString("BUY VS LEASE AT THIS VALUE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Net buy cost:     $%s\n", tf.formatCurrency(b.NetBuyCost)))
		sb.WriteString(fmt.Sprintf("Total lease cost: $%s\n", tf.formatCurrency(b.TotalLeaseCost)))
		diff := b.TotalLeaseCost.Sub(b.NetBuyCost)
		sb.WriteString(fmt.Sprintf("Lease minus buy:  %s$%s\n", tf.deltaSymbol(diff), tf.formatCurrency(diff.Abs())))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from every solved target
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-16s %14s %8s %12s %12s\n", "Target", "Value", "Score", "Monthly", "Lease-Buy"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range result.Results {
		score, monthly, diff := "-", "-", "-"
		if a := res.Affordability; a != nil {
			score = fmt.Sprintf("%d", a.Score)
			monthly = "$" + tf.formatShort(a.TotalMonthlyCost)
		}
		if b := res.BuyVsLease; b != nil {
			d := b.TotalLeaseCost.Sub(b.NetBuyCost)
			diff = tf.deltaSymbol(d) + "$" + tf.formatShort(d.Abs())
		}
		sb.WriteString(fmt.Sprintf("%-16s %14s %8s %12s %12s\n",
			tf.truncate(string(res.Request.Target), 16), tf.shortValue(&res), score, monthly, diff))
	}
	sb.WriteString("\n")

	if len(result.Skipped) > 0 {
		sb.WriteString("SKIPPED\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, target := range Targets() {
			if reason, ok := result.Skipped[string(target)]; ok {
				sb.WriteString(fmt.Sprintf("%-16s %s\n", target, reason))
			}
		}
		sb.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) parameterLine(result *OptimizationResult) string {
	switch {
	case result.OptimalPrice != nil:
		return fmt.Sprintf("Maximum affordable price: $%s\n", tf.formatCurrency(*result.OptimalPrice))
	case result.OptimalDownPayment != nil:
		return fmt.Sprintf("Minimum down payment:     $%s\n", tf.formatCurrency(*result.OptimalDownPayment))
	case result.OptimalLeaseMonthly != nil:
		return fmt.Sprintf("Break-even lease payment: $%s/mo\n", tf.formatCurrency(*result.OptimalLeaseMonthly))
	case result.OptimalAPR != nil:
		return fmt.Sprintf("Break-even APR:           %s%%\n", result.OptimalAPR.StringFixed(2))
	case result.OptimalTerm != nil:
		return fmt.Sprintf("Best loan term:           %d months\n", *result.OptimalTerm)
	}
	return "No parameter solved\n"
}

func (tf *TableFormatter) shortValue(result *OptimizationResult) string {
	switch {
	case result.OptimalPrice != nil:
		return "$" + tf.formatShort(*result.OptimalPrice)
	case result.OptimalDownPayment != nil:
		return "$" + tf.formatShort(*result.OptimalDownPayment)
	case result.OptimalLeaseMonthly != nil:
		return "$" + result.OptimalLeaseMonthly.StringFixed(2) + "/mo"
	case result.OptimalAPR != nil:
		return result.OptimalAPR.StringFixed(2) + "%"
	case result.OptimalTerm != nil:
		return fmt.Sprintf("%d mo", *result.OptimalTerm)
	}
	return "-"
}

func (tf *TableFormatter) vehicleName(result *OptimizationResult) string {
	v := result.Request.Vehicle
	if v.Year == 0 {
		return v.Model
	}
	return v.DisplayName()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

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
