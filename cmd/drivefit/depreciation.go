package main

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/spf13/cobra"
)

var depreciationCmd = &cobra.Command{
	Use:   "depreciation",
	Short: "Value retention forecasts and resale estimates",
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Retained value by year, adjusted for ownership factors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		points := calculation.Forecast(readFactors(cmd))

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, points)
		}
		fmt.Fprintf(out, "%-6s %9s %9s %9s\n", "Year", "Retained", "Low", "High")
		for _, p := range points {
			fmt.Fprintf(out, "%-6d %8d%% %8d%% %8d%%\n", p.Year, p.Value, p.Lower, p.Upper)
		}
		return nil
	},
}

var resaleCmd = &cobra.Command{
	Use:   "resale",
	Short: "Estimate resale value after some years",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv("")
		if err != nil {
			return err
		}
		price, err := parseDecimalFlag(cmd, "price")
		if err != nil {
			return err
		}
		years, err := parseDecimalFlag(cmd, "years")
		if err != nil {
			return err
		}

		estimate, err := env.engine.Resale(price, years, readFactors(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, estimate)
		}
		fmt.Fprintf(out, "Estimated value after %s years: %s\n", years.String(), calculation.FormatDollars(estimate.EstimatedValue))
		fmt.Fprintf(out, "Range: %s - %s\n", calculation.FormatDollars(estimate.LowerBound), calculation.FormatDollars(estimate.UpperBound))
		fmt.Fprintf(out, "Confidence: %s\n", estimate.Confidence)
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path [vehicle-id]",
	Short: "Ten-year value projection and financing for a catalog vehicle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv("")
		if err != nil {
			return err
		}
		v, err := env.engine.Vehicle(args[0])
		if err != nil {
			return err
		}

		apr := calculation.DefaultProjectionAPR
		if cmd.Flags().Changed("apr") {
			if apr, err = parseDecimalFlag(cmd, "apr"); err != nil {
				return err
			}
		} else if score, _ := cmd.Flags().GetInt("credit-score"); score != 0 {
			if err := domain.ValidateCreditScore(score); err != nil {
				return err
			}
			apr = calculation.ResolveAPR(score)
		}
		mileage, _ := cmd.Flags().GetInt("mileage")

		proj, err := env.engine.Projection(v, apr, mileage)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, proj)
		}
		fmt.Fprintf(out, "%s\n", v.DisplayName())
		fmt.Fprintf(out, "Down payment: %s  Loan: %s  APR: %s%%  Term: %d months\n",
			calculation.FormatDollars(proj.DownPayment), calculation.FormatDollars(proj.LoanAmount), proj.APR.String(), proj.TermMonths)
		fmt.Fprintf(out, "Monthly payment: %s  Monthly fuel: %s (%d mi/yr)\n\n",
			money(proj.MonthlyPayment), money(proj.MonthlyFuel), proj.AnnualMileage)
		fmt.Fprintf(out, "%-6s %10s %10s %10s\n", "Year", "Value", "Low", "High")
		for _, p := range proj.Path {
			fmt.Fprintf(out, "%-6d %10s %10s %10s\n", p.Year,
				calculation.FormatDollars(p.Value), calculation.FormatDollars(p.Lower), calculation.FormatDollars(p.Upper))
		}
		return nil
	},
}

func init() {
	factorFlags(forecastCmd)
	forecastCmd.Flags().Bool("json", false, "Print JSON")

	factorFlags(resaleCmd)
	resaleCmd.Flags().String("price", "", "Purchase price")
	resaleCmd.Flags().String("years", "3", "Years of ownership")
	resaleCmd.Flags().Bool("json", false, "Print JSON")
	_ = resaleCmd.MarkFlagRequired("price")

	pathCmd.Flags().String("apr", calculation.DefaultProjectionAPR.String(), "Loan APR")
	pathCmd.Flags().Int("credit-score", 0, "Derive the APR from a credit score instead")
	pathCmd.Flags().Int("mileage", domain.DefaultAnnualMileage, "Annual mileage")
	pathCmd.Flags().Bool("json", false, "Print JSON")

	depreciationCmd.AddCommand(forecastCmd)
	depreciationCmd.AddCommand(resaleCmd)
	depreciationCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(depreciationCmd)
}
