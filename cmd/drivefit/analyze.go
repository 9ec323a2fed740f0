package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// vehicleFromFlags resolves --vehicle against the catalog, or builds an ad
// hoc vehicle from --price, --mpg and --reliability
func vehicleFromFlags(cmd *cobra.Command, env *appEnv) (domain.VehicleData, error) {
	if id, _ := cmd.Flags().GetString("vehicle"); id != "" {
		v, ok := env.catalog.ByID(id)
		if !ok {
			return domain.VehicleData{}, fmt.Errorf("vehicle %q: %w", id, domain.ErrVehicleNotFound)
		}
		return v, nil
	}

	price, err := parseDecimalFlag(cmd, "price")
	if err != nil {
		return domain.VehicleData{}, err
	}
	if !price.IsPositive() {
		return domain.VehicleData{}, fmt.Errorf("either --vehicle or --price is required")
	}
	mpg, err := parseDecimalFlag(cmd, "mpg")
	if err != nil {
		return domain.VehicleData{}, err
	}
	reliability, err := parseDecimalFlag(cmd, "reliability")
	if err != nil {
		return domain.VehicleData{}, err
	}
	return domain.VehicleData{
		ID:          "custom",
		Model:       "Custom vehicle",
		MSRP:        int(price.Round(0).IntPart()),
		MPGCombined: mpg,
		Reliability: reliability,
	}, nil
}

// vehicleName drops the model year of ad hoc vehicles
func vehicleName(v domain.VehicleData) string {
	if v.Year == 0 {
		return v.Model
	}
	return v.DisplayName()
}

// downPayment reads --down, defaulting to the matching assumption of 10%
func downPayment(cmd *cobra.Command, price decimal.Decimal) (decimal.Decimal, error) {
	if cmd.Flags().Changed("down") {
		return parseDecimalFlag(cmd, "down")
	}
	return price.Mul(calculation.MatchDownPaymentRate), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func vehicleFlags(cmd *cobra.Command) {
	cmd.Flags().String("vehicle", "", "Catalog vehicle id")
	cmd.Flags().String("price", "", "Vehicle price when no --vehicle is given")
	cmd.Flags().String("mpg", "30", "Combined MPG when no --vehicle is given")
	cmd.Flags().String("reliability", "4.0", "Reliability rating 0-5 when no --vehicle is given")
	cmd.Flags().String("down", "", "Down payment (default: 10% of price)")
	cmd.Flags().Bool("json", false, "Print JSON")
}

var affordabilityCmd = &cobra.Command{
	Use:   "affordability [profile-file]",
	Short: "Score how affordable one vehicle is for a shopper",
	Long: `Score one vehicle against the shopper's take-home pay.

Examples:
  drivefit affordability profile.yaml --vehicle camry-le
  drivefit affordability profile.yaml --price 35000 --mpg 30 --reliability 4.5 --down 3500
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
		result, err := env.engine.CalculateAffordability(calculation.AffordabilityInput{
			AnnualIncome:      fp.AnnualIncome,
			CreditScore:       fp.CreditScore,
			EmploymentSubsidy: fp.EmploymentSubsidy,
			VehiclePrice:      v.Price(),
			DownPayment:       down,
			LeaseTerm:         fp.LeaseTerm,
			MPGCombined:       v.MPGCombined,
			Reliability:       v.Reliability,
			AnnualMileage:     shopper.Lifestyle.AnnualMileage(),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, result)
		}
		printAffordability(out, v, result)
		return nil
	},
}

func printAffordability(w io.Writer, v domain.VehicleData, r *domain.AffordabilityResult) {
	fmt.Fprintf(w, "AFFORDABILITY: %s (%s)\n", vehicleName(v), calculation.FormatDollars(v.Price()))
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Score:              %d/100\n", r.Score)
	fmt.Fprintf(w, "Monthly net income: %s\n", money(r.MonthlyNetIncome))
	fmt.Fprintf(w, "Total monthly cost: %s\n", money(r.TotalMonthlyCost))
	for _, item := range r.Breakdown {
		fmt.Fprintf(w, "  %-16s %s\n", item.Name+":", money(item.Value))
	}
	fmt.Fprintf(w, "Budget used:        %s%%\n", r.BudgetUtilization.StringFixed(1))
	fmt.Fprintf(w, "APR:                %s%%\n", r.APR.String())
	fmt.Fprintf(w, "Max affordable:     %s\n", calculation.FormatDollars(r.MaxAffordable))
	fmt.Fprintf(w, "Can afford:         %s\n\n", yesNo(r.CanAfford))
	fmt.Fprintln(w, r.Recommendation)
}

var matchCmd = &cobra.Command{
	Use:   "match [profile-file]",
	Short: "Rank catalog vehicles for a shopper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shopper, env, err := loadProfile(args[0])
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit < 1 {
			return fmt.Errorf("--limit must be at least 1")
		}

		matches, err := env.engine.Match(shopper.Financial, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, matches)
		}
		printMatches(out, matches)
		return nil
	},
}

func printMatches(w io.Writer, matches []domain.VehicleMatch) {
	fmt.Fprintf(w, "%-4s %-36s %6s %10s %10s %7s\n", "#", "Vehicle", "Match", "Payment", "Monthly", "Afford")
	fmt.Fprintln(w, strings.Repeat("-", 78))
	for i, m := range matches {
		fmt.Fprintf(w, "%-4d %-36s %5d%% %10s %10s %7d\n",
			i+1, m.Vehicle.DisplayName(), m.MatchPercentage,
			money(m.MonthlyPayment), money(m.TotalMonthlyCost.Total), m.AffordabilityScore)
	}
}

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Compute a loan payment and amortization schedule",
	Long: `Compute the level monthly payment of an auto loan.

Examples:
  drivefit payment --principal 27000 --apr 5 --term 60
  drivefit payment --principal 27000 --apr 5 --term 60 --schedule
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		principal, err := parseDecimalFlag(cmd, "principal")
		if err != nil {
			return err
		}
		apr, err := parseDecimalFlag(cmd, "apr")
		if err != nil {
			return err
		}
		term, _ := cmd.Flags().GetInt("term")

		schedule, err := calculation.AmortizationSchedule(principal, apr, term)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, map[string]any{
				"monthlyPayment": calculation.MonthlyPayment(principal, apr, term),
				"totalInterest":  calculation.TotalInterest(schedule),
				"schedule":       schedule,
			})
		}

		fmt.Fprintf(out, "Monthly payment: %s\n", money(calculation.MonthlyPayment(principal, apr, term)))
		fmt.Fprintf(out, "Total interest:  %s\n", money(calculation.TotalInterest(schedule)))
		if showSchedule, _ := cmd.Flags().GetBool("schedule"); showSchedule {
			fmt.Fprintf(out, "\n%-6s %12s %12s %12s %14s\n", "Month", "Payment", "Principal", "Interest", "Balance")
			for _, e := range schedule {
				fmt.Fprintf(out, "%-6d %12s %12s %12s %14s\n",
					e.Period, e.Payment.StringFixed(2), e.Principal.StringFixed(2), e.Interest.StringFixed(2), e.RemainingBalance.StringFixed(2))
			}
		}
		return nil
	},
}

var tcoCmd = &cobra.Command{
	Use:   "tco [profile-file]",
	Short: "Total cost of ownership over a financing term",
	Args:  cobra.ExactArgs(1),
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
		term, _ := cmd.Flags().GetInt("term")
		if term == 0 {
			term = shopper.Financial.LeaseTerm
		}

		result, err := env.engine.TCOFromVehicle(calculation.TCOInput{
			VehiclePrice:  v.Price(),
			DownPayment:   down,
			TermMonths:    term,
			CreditScore:   shopper.Financial.CreditScore,
			MPGCombined:   v.MPGCombined,
			Reliability:   v.Reliability,
			AnnualMileage: shopper.Lifestyle.AnnualMileage(),
			Factors:       shopper.Factors,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, result)
		}

		fmt.Fprintf(out, "TOTAL COST OF OWNERSHIP: %s over %d months\n", vehicleName(v), term)
		fmt.Fprintln(out, strings.Repeat("=", 50))
		b := result.Breakdown
		for _, row := range []struct {
			label string
			value decimal.Decimal
		}{
			{"Payments", b.Payments},
			{"Insurance", b.Insurance},
			{"Fuel", b.Fuel},
			{"Maintenance", b.Maintenance},
			{"Taxes & fees", b.TaxesAndFees},
		} {
			fmt.Fprintf(out, "  %-14s %s\n", row.label+":", calculation.FormatDollars(row.value))
		}
		fmt.Fprintf(out, "Total paid:       %s\n", calculation.FormatDollars(result.TotalPaid))
		fmt.Fprintf(out, "Resale value:     %s\n", calculation.FormatDollars(result.ResaleValue))
		fmt.Fprintf(out, "Depreciation:     %s\n", calculation.FormatDollars(result.Depreciation))
		fmt.Fprintf(out, "Net cost:         %s\n", calculation.FormatDollars(result.NetCost))
		fmt.Fprintf(out, "Monthly equivalent: %s\n", calculation.FormatDollars(result.MonthlyEquivalent))
		return nil
	},
}

var buyVsLeaseCmd = &cobra.Command{
	Use:   "buy-vs-lease",
	Short: "Compare financing a purchase against leasing",
	Long: `Compare the net cost of buying (after resale) against leasing.

Example:
  drivefit buy-vs-lease --price 30000 --down 3000 --loan-term 60 --apr 5 \
    --lease-monthly 350 --lease-down 2000 --lease-term 36
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var in calculation.BuyVsLeaseInput
		var err error
		for name, dst := range map[string]*decimal.Decimal{
			"price":         &in.VehiclePrice,
			"down":          &in.DownPayment,
			"apr":           &in.APR,
			"lease-monthly": &in.LeaseMonthly,
			"lease-down":    &in.LeaseDownPayment,
		} {
			if *dst, err = parseDecimalFlag(cmd, name); err != nil {
				return err
			}
		}
		in.LoanTerm, _ = cmd.Flags().GetInt("loan-term")
		in.LeaseTerm, _ = cmd.Flags().GetInt("lease-term")

		result, err := calculation.BuyVsLease(in)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, result)
		}
		fmt.Fprintf(out, "Buy:   %s/mo, total %s, resale %s, net %s\n",
			money(result.BuyMonthlyPayment), money(result.TotalBuyCost), money(result.ResidualValue), money(result.NetBuyCost))
		fmt.Fprintf(out, "Lease: total %s\n", money(result.TotalLeaseCost))
		fmt.Fprintf(out, "Recommendation: %s (saves %s)\n", strings.ToUpper(result.Recommendation), money(result.Savings))
		return nil
	},
}

func init() {
	vehicleFlags(affordabilityCmd)

	matchCmd.Flags().IntP("limit", "n", calculation.DefaultMatchLimit, "Number of vehicles to show")
	matchCmd.Flags().Bool("json", false, "Print JSON")

	paymentCmd.Flags().String("principal", "", "Amount financed")
	paymentCmd.Flags().String("apr", "0", "Annual percentage rate, e.g. 5.9")
	paymentCmd.Flags().Int("term", 60, "Term in months")
	paymentCmd.Flags().Bool("schedule", false, "Print the month-by-month schedule")
	paymentCmd.Flags().Bool("json", false, "Print JSON")
	_ = paymentCmd.MarkFlagRequired("principal")

	vehicleFlags(tcoCmd)
	tcoCmd.Flags().Int("term", 0, "Ownership term in months (default: profile lease term)")

	buyVsLeaseCmd.Flags().String("price", "", "Vehicle price")
	buyVsLeaseCmd.Flags().String("down", "0", "Purchase down payment")
	buyVsLeaseCmd.Flags().Int("loan-term", 60, "Loan term in months")
	buyVsLeaseCmd.Flags().String("apr", "5", "Loan APR")
	buyVsLeaseCmd.Flags().String("lease-monthly", "", "Monthly lease payment")
	buyVsLeaseCmd.Flags().String("lease-down", "0", "Lease due at signing")
	buyVsLeaseCmd.Flags().Int("lease-term", 36, "Lease term in months")
	buyVsLeaseCmd.Flags().Bool("json", false, "Print JSON")
	_ = buyVsLeaseCmd.MarkFlagRequired("price")
	_ = buyVsLeaseCmd.MarkFlagRequired("lease-monthly")

	rootCmd.AddCommand(affordabilityCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(paymentCmd)
	rootCmd.AddCommand(tcoCmd)
	rootCmd.AddCommand(buyVsLeaseCmd)
}
