package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/calculation"
)

// ConsoleFormatter renders the report as plain text for a terminal
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	if report.ShopperName != "" {
		fmt.Fprintf(&buf, "VEHICLE AFFORDABILITY REPORT: %s\n", report.ShopperName)
	} else {
		fmt.Fprintln(&buf, "VEHICLE AFFORDABILITY REPORT")
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)

	fp := report.Profile
	fmt.Fprintln(&buf, "FINANCIAL PROFILE")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Annual Income:        %s\n", calculation.FormatDollars(fp.AnnualIncome))
	fmt.Fprintf(&buf, "  Monthly Take-Home:    %s\n", FormatCurrency(report.NetPay.MonthlyNet))
	fmt.Fprintf(&buf, "  Credit Score:         %d (%s, %s APR)\n", fp.CreditScore, report.CreditRating, FormatPercentage(report.APR))
	fmt.Fprintf(&buf, "  Budget:               %s - %s\n", calculation.FormatDollars(fp.BudgetMin), calculation.FormatDollars(fp.BudgetMax))
	fmt.Fprintf(&buf, "  Term:                 %d months\n", fp.LeaseTerm)
	fmt.Fprintf(&buf, "  Recommended Limit:    %s\n", calculation.FormatDollars(report.MaxAffordable))
	fmt.Fprintln(&buf)

	if report.TopPick != nil {
		writeTopPick(&buf, report.TopPick)
	}

	fmt.Fprintln(&buf, "RANKED MATCHES")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	if len(report.Matches) == 0 {
		fmt.Fprintln(&buf, "  No vehicles matched.")
	} else {
		fmt.Fprintf(&buf, "%-4s %-30s %8s %10s %10s %8s\n", "#", "Vehicle", "Match", "Payment", "Monthly", "Afford")
		for i, m := range report.Matches {
			fmt.Fprintf(&buf, "%-4d %-30s %7d%% %10s %10s %8d\n",
				i+1,
				truncate(m.Vehicle.DisplayName(), 30),
				m.MatchPercentage,
				FormatCurrency(m.MonthlyPayment),
				calculation.FormatDollars(m.TotalMonthlyCost.Total),
				m.AffordabilityScore)
		}
	}
	fmt.Fprintln(&buf)

	if len(report.Forecast) > 0 {
		fmt.Fprintln(&buf, "VALUE RETENTION FORECAST")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, p := range report.Forecast {
			fmt.Fprintf(&buf, "  Year %d: %3d%%  (%d%% - %d%%)\n", p.Year, p.Value, p.Lower, p.Upper)
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}

	return buf.Bytes(), nil
}

func writeTopPick(buf *bytes.Buffer, pick *TopPick) {
	v := pick.Vehicle
	fmt.Fprintf(buf, "TOP PICK: %s\n", v.DisplayName())
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "  MSRP:                 %s\n", calculation.FormatDollars(v.Price()))
	fmt.Fprintf(buf, "  Fuel Economy:         %s (%s)\n", v.MPG, v.FuelType)

	if a := pick.Affordability; a != nil {
		fmt.Fprintf(buf, "  Affordability Score:  %d/100\n", a.Score)
		for _, item := range a.Breakdown {
			fmt.Fprintf(buf, "    %-18s %10s\n", item.Name+":", FormatCurrency(item.Value))
		}
		fmt.Fprintf(buf, "    %-18s %10s\n", "Total:", calculation.FormatDollars(a.TotalMonthlyCost))
		fmt.Fprintf(buf, "  Budget Used:          %s of take-home\n", FormatPercentage(a.BudgetUtilization))
		fmt.Fprintf(buf, "  %s\n", a.Recommendation)
	}
	if r := pick.Resale; r != nil {
		fmt.Fprintf(buf, "  Resale at Term End:   %s (%s - %s, %s)\n",
			calculation.FormatDollars(r.EstimatedValue),
			calculation.FormatDollars(r.LowerBound),
			calculation.FormatDollars(r.UpperBound),
			r.Confidence)
	}
	fmt.Fprintln(buf)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
