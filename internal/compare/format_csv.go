package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Vehicle ID",
		"Vehicle",
		"Type",
		"Price",
		"Match %",
		"Monthly Payment",
		"Total Monthly Cost",
		"Affordability Score",
		"Net TCO",
		"Resale Value",
		"Match Diff from Base",
		"Monthly Cost Diff from Base",
		"Net TCO Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	return []string{
		result.VehicleID,
		result.Name,
		rowType,
		result.Price.StringFixed(2),
		strconv.Itoa(result.MatchPercentage),
		result.MonthlyPayment.StringFixed(2),
		result.TotalMonthlyCost.StringFixed(2),
		strconv.Itoa(result.AffordabilityScore),
		result.NetCost.StringFixed(2),
		result.ResaleValue.StringFixed(2),
		strconv.Itoa(result.MatchDiffFromBase),
		result.MonthlyCostDiffFromBase.StringFixed(2),
		result.NetCostDiffFromBase.StringFixed(2),
	}
}
