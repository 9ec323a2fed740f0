package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes one row per ranked vehicle
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Rank", "VehicleID", "Vehicle", "Category", "MSRP", "MatchPercentage", "MonthlyPayment", "TotalMonthlyCost", "AffordabilityScore", "SalaryFit", "ReliabilityScore", "TermMatch"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, m := range report.Matches {
		row := []string{
			strconv.Itoa(i + 1),
			m.Vehicle.ID,
			m.Vehicle.DisplayName(),
			m.Vehicle.Category,
			strconv.Itoa(m.Vehicle.MSRP),
			strconv.Itoa(m.MatchPercentage),
			m.MonthlyPayment.StringFixed(2),
			m.TotalMonthlyCost.Total.StringFixed(2),
			strconv.Itoa(m.AffordabilityScore),
			strconv.Itoa(m.SalaryFit),
			strconv.Itoa(m.ReliabilityScore),
			strconv.Itoa(m.TermMatch),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
