package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [profile-file]",
	Short: "Test how affordability for one vehicle reacts to changing inputs",
	Long: `Sweep income, credit, price, down payment, term, mileage or gas price and
report how the affordability score and budget use move.

Parameters are given as name or name:min-max:steps. With no --parameter every
input is swept over its default range. --matrix sweeps exactly two together.

Examples:
  drivefit sensitivity profile.yaml --vehicle camry-le
  drivefit sensitivity profile.yaml --vehicle rav4-xle --parameter vehicle_price:28000-42000:5
  drivefit sensitivity profile.yaml --price 35000 --parameter annual_income --parameter vehicle_price --matrix
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shopper, env, err := loadProfile(args[0])
		if err != nil {
			return err
		}
		v, err := vehicleFromFlags(cmd, env)
		if err != nil {
			return err
		}
		down, err := downPayment(cmd, v.Price())
		if err != nil {
			return err
		}
		fp := shopper.Financial
		base := calculation.AffordabilityInput{
			AnnualIncome:      fp.AnnualIncome,
			CreditScore:       fp.CreditScore,
			EmploymentSubsidy: fp.EmploymentSubsidy,
			VehiclePrice:      v.Price(),
			DownPayment:       down,
			LeaseTerm:         fp.LeaseTerm,
			MPGCombined:       v.MPGCombined,
			Reliability:       v.Reliability,
			AnnualMileage:     shopper.Lifestyle.AnnualMileage(),
		}

		analyzer := calculation.NewSensitivityAnalyzer(env.engine)
		specs, _ := cmd.Flags().GetStringArray("parameter")
		if len(specs) == 0 {
			specs = calculation.SensitivityParameters()
		}
		parameters := make([]domain.SensitivityParameter, 0, len(specs))
		for _, spec := range specs {
			p, err := parseParameterSpec(analyzer, base, spec)
			if err != nil {
				return err
			}
			parameters = append(parameters, p)
		}

		out := cmd.OutOrStdout()
		asJSON, _ := cmd.Flags().GetBool("json")
		name := vehicleName(v)

		if matrix, _ := cmd.Flags().GetBool("matrix"); matrix {
			if len(parameters) != 2 {
				return fmt.Errorf("--matrix needs exactly two --parameter values, got %d", len(parameters))
			}
			result, err := analyzer.AnalyzeParameterMatrix(cmd.Context(), base, parameters[0], parameters[1])
			if err != nil {
				return err
			}
			result.Vehicle = name
			if asJSON {
				return writeJSON(out, result)
			}
			printSensitivityMatrix(out, result)
			return nil
		}

		var analysis *domain.ParameterSensitivityAnalysis
		if len(parameters) == 1 {
			analysis, err = analyzer.AnalyzeSingleParameter(cmd.Context(), base, parameters[0])
		} else {
			analysis, err = analyzer.AnalyzeMultipleParameters(cmd.Context(), base, parameters)
		}
		if err != nil {
			return err
		}
		analysis.Vehicle = name
		if asJSON {
			return writeJSON(out, analysis)
		}
		printSensitivity(out, analysis)
		return nil
	},
}

// parseParameterSpec accepts "name" for the default range or "name:min-max:steps"
func parseParameterSpec(analyzer *calculation.SensitivityAnalyzer, base calculation.AffordabilityInput, spec string) (domain.SensitivityParameter, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	param, err := analyzer.DefaultParameter(parts[0], base)
	if err != nil {
		return domain.SensitivityParameter{}, err
	}
	if len(parts) == 1 {
		return param, nil
	}
	if len(parts) != 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter format: %s (expected name:min-max:steps)", spec)
	}

	minMax := strings.Split(parts[1], "-")
	if len(minMax) != 2 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid range format: %s (expected min-max)", parts[1])
	}
	if param.MinValue, err = decimal.NewFromString(strings.TrimSpace(minMax[0])); err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid min value: %w", err)
	}
	if param.MaxValue, err = decimal.NewFromString(strings.TrimSpace(minMax[1])); err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid max value: %w", err)
	}
	if param.Steps, err = strconv.Atoi(parts[2]); err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps value: %w", err)
	}
	return param, nil
}

func printSensitivity(w io.Writer, a *domain.ParameterSensitivityAnalysis) {
	fmt.Fprintf(w, "SENSITIVITY ANALYSIS: %s\n", a.Vehicle)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Base: score %d/100, %s/mo, %s%% of net pay\n\n",
		a.Base.Score, money(a.Base.TotalMonthlyCost), a.Base.BudgetUtilization.StringFixed(1))

	fmt.Fprintf(w, "%-32s %7s %12s %10s %9s %7s\n", "Point", "Score", "Monthly", "Budget", "Change", "Afford")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range a.Results {
		m := r.KeyMetrics
		fmt.Fprintf(w, "%-32s %7d %12s %9s%% %+8.1f%% %7s\n",
			r.Label, m.Score, money(m.TotalMonthlyCost), m.BudgetUtilization.StringFixed(1),
			m.UtilizationChangePct.InexactFloat64(), yesNo(m.CanAfford))
	}
	fmt.Fprintln(w)

	s := a.Summary
	fmt.Fprintf(w, "Most sensitive: %s\n", s.MostSensitiveParameter)
	fmt.Fprintf(w, "Risk level:     %s\n", s.RiskLevel)
	if len(s.AffordabilityFlips) > 0 {
		fmt.Fprintln(w)
		for _, f := range s.AffordabilityFlips {
			fmt.Fprintf(w, "• %s\n", f)
		}
	}
	if len(s.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRECOMMENDATIONS")
		fmt.Fprintln(w, strings.Repeat("-", 80))
		for _, rec := range s.Recommendations {
			fmt.Fprintf(w, "• %s\n", rec)
		}
	}
}

func printSensitivityMatrix(w io.Writer, m *domain.SensitivityMatrix) {
	fmt.Fprintf(w, "SENSITIVITY MATRIX: %s\n", m.Vehicle)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Budget use (%% of net pay), %s down, %s across; * = cannot afford\n\n", m.Parameter1.Name, m.Parameter2.Name)

	if len(m.MatrixResults) == 0 {
		return
	}
	fmt.Fprintf(w, "%14s", "")
	for _, cell := range m.MatrixResults[0] {
		fmt.Fprintf(w, " %10s", cell.ParameterValues[m.Parameter2.Name].StringFixed(0))
	}
	fmt.Fprintln(w)
	for _, row := range m.MatrixResults {
		fmt.Fprintf(w, "%14s", row[0].ParameterValues[m.Parameter1.Name].StringFixed(0))
		for _, cell := range row {
			mark := " "
			if !cell.KeyMetrics.CanAfford {
				mark = "*"
			}
			fmt.Fprintf(w, " %9s%s", cell.KeyMetrics.BudgetUtilization.StringFixed(1), mark)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	s := m.Summary
	fmt.Fprintf(w, "Largest move:       %s\n", s.MostSensitiveCombination)
	fmt.Fprintf(w, "Interaction effect: %s points\n", s.InteractionEffect.StringFixed(2))
	fmt.Fprintf(w, "Risk level:         %s\n", s.RiskLevel)
	fmt.Fprintln(w, "\nRECOMMENDATIONS")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, rec := range s.Recommendations {
		fmt.Fprintf(w, "• %s\n", rec)
	}
}

func init() {
	vehicleFlags(sensitivityCmd)
	sensitivityCmd.Flags().StringArray("parameter", nil, "Input to sweep: name or name:min-max:steps (repeatable)")
	sensitivityCmd.Flags().Bool("matrix", false, "Sweep two parameters together")
	rootCmd.AddCommand(sensitivityCmd)
}
