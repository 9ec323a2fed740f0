package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// whatIfOutcome is what one version of the profile produces
type whatIfOutcome struct {
	MonthlyNet    decimal.Decimal             `json:"monthlyNet"`
	APR           decimal.Decimal             `json:"apr"`
	CreditRating  string                      `json:"creditRating"`
	MaxAffordable decimal.Decimal             `json:"maxAffordable"`
	TopMatch      *domain.VehicleMatch        `json:"topMatch,omitempty"`
	Affordability *domain.AffordabilityResult `json:"affordability,omitempty"`
}

type whatIfReport struct {
	Changes  []string      `json:"changes"`
	Base     whatIfOutcome `json:"base"`
	Modified whatIfOutcome `json:"modified"`
}

var whatifCmd = &cobra.Command{
	Use:   "whatif [profile-file]",
	Short: "Compare a profile against a changed version of itself",
	Long: `Apply templates and transforms to a shopper profile and compare the result.

Templates are applied first, in order, then each --transform. Transform
specs take the form name:key=value,key=value.

Examples:
  drivefit whatif profile.yaml --template raise_5k,credit_plus_50
  drivefit whatif profile.yaml --transform set_term:months=60 --vehicle camry-le
  drivefit whatif --list-templates
`,
	Args: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		templates := transform.CreateBuiltInTemplates()
		out := cmd.OutOrStdout()
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			fmt.Fprint(out, transform.GetTemplateHelp(templates))
			return nil
		}

		shopper, env, err := loadProfile(args[0])
		if err != nil {
			return err
		}

		var transforms []transform.ProfileTransform
		templateList, _ := cmd.Flags().GetString("template")
		for _, name := range transform.ParseTemplateList(templateList) {
			t, ok := templates.Get(name)
			if !ok {
				return fmt.Errorf("unknown template %q (see --list-templates)", name)
			}
			transforms = append(transforms, t.Transforms...)
		}
		specs, _ := cmd.Flags().GetStringArray("transform")
		registry := transform.NewTransformRegistry()
		for _, spec := range specs {
			t, err := registry.ParseTransformSpec(spec)
			if err != nil {
				return err
			}
			transforms = append(transforms, t)
		}
		if len(transforms) == 0 {
			return fmt.Errorf("at least one --template or --transform is required")
		}

		modified, err := transform.ApplyTransforms(shopper, transforms)
		if err != nil {
			return err
		}
		env.logger.Debug("applied what-if transforms")

		var vehicle *domain.VehicleData
		id, _ := cmd.Flags().GetString("vehicle")
		if id != "" || cmd.Flags().Changed("price") {
			v, err := vehicleFromFlags(cmd, env)
			if err != nil {
				return err
			}
			vehicle = &v
		}

		report := whatIfReport{Changes: transform.Describe(transforms)}
		if report.Base, err = evaluateWhatIf(cmd, env, shopper, vehicle); err != nil {
			return err
		}
		if report.Modified, err = evaluateWhatIf(cmd, env, modified, vehicle); err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, report)
		}
		printWhatIf(out, report, vehicle)
		return nil
	},
}

func evaluateWhatIf(cmd *cobra.Command, env *appEnv, s *domain.Shopper, vehicle *domain.VehicleData) (whatIfOutcome, error) {
	fp := s.Financial
	netPay, err := env.engine.NetPayCalc.Calculate(fp.AnnualIncome, fp.EmploymentSubsidy)
	if err != nil {
		return whatIfOutcome{}, err
	}
	outcome := whatIfOutcome{
		MonthlyNet:    netPay.MonthlyNet,
		APR:           calculation.ResolveAPR(fp.CreditScore),
		CreditRating:  calculation.CreditRating(fp.CreditScore),
		MaxAffordable: calculation.AffordableCarPrice(fp.AnnualIncome, fp.CreditScore),
	}

	matches, err := env.engine.Match(fp, 1)
	if err != nil {
		return whatIfOutcome{}, err
	}
	if len(matches) > 0 {
		outcome.TopMatch = &matches[0]
	}

	if vehicle != nil {
		down, err := downPayment(cmd, vehicle.Price())
		if err != nil {
			return whatIfOutcome{}, err
		}
		outcome.Affordability, err = env.engine.CalculateAffordability(calculation.AffordabilityInput{
			AnnualIncome:      fp.AnnualIncome,
			CreditScore:       fp.CreditScore,
			EmploymentSubsidy: fp.EmploymentSubsidy,
			VehiclePrice:      vehicle.Price(),
			DownPayment:       down,
			LeaseTerm:         fp.LeaseTerm,
			MPGCombined:       vehicle.MPGCombined,
			Reliability:       vehicle.Reliability,
			AnnualMileage:     s.Lifestyle.AnnualMileage(),
		})
		if err != nil {
			return whatIfOutcome{}, err
		}
	}
	return outcome, nil
}

func printWhatIf(w io.Writer, r whatIfReport, vehicle *domain.VehicleData) {
	fmt.Fprintln(w, "WHAT-IF ANALYSIS")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintln(w, "Changes:")
	for _, c := range r.Changes {
		fmt.Fprintf(w, "  • %s\n", c)
	}
	fmt.Fprintln(w)

	row := func(label, base, modified string) {
		fmt.Fprintf(w, "%-22s %-20s %-20s\n", label, base, modified)
	}
	row("", "Base", "What-if")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	b, m := r.Base, r.Modified
	row("Monthly net income", money(b.MonthlyNet), money(m.MonthlyNet))
	row("Loan APR", b.APR.StringFixed(1)+"%", m.APR.StringFixed(1)+"%")
	row("Credit rating", b.CreditRating, m.CreditRating)
	row("Max affordable", calculation.FormatDollars(b.MaxAffordable), calculation.FormatDollars(m.MaxAffordable))
	row("Top match", topMatchLabel(b.TopMatch), topMatchLabel(m.TopMatch))

	if vehicle != nil && b.Affordability != nil && m.Affordability != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s (%s)\n", vehicleName(*vehicle), calculation.FormatDollars(vehicle.Price()))
		fmt.Fprintln(w, strings.Repeat("-", 70))
		ba, ma := b.Affordability, m.Affordability
		row("Score", fmt.Sprintf("%d/100", ba.Score), fmt.Sprintf("%d/100", ma.Score))
		row("Total monthly cost", money(ba.TotalMonthlyCost), money(ma.TotalMonthlyCost))
		row("Budget used", ba.BudgetUtilization.StringFixed(1)+"%", ma.BudgetUtilization.StringFixed(1)+"%")
		row("Can afford", yesNo(ba.CanAfford), yesNo(ma.CanAfford))
	}
}

func topMatchLabel(m *domain.VehicleMatch) string {
	if m == nil {
		return "-"
	}
	return fmt.Sprintf("%s %d%%", m.Vehicle.Model, m.MatchPercentage)
}

func init() {
	vehicleFlags(whatifCmd)
	whatifCmd.Flags().String("template", "", "Comma-separated built-in templates")
	whatifCmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	whatifCmd.Flags().Bool("list-templates", false, "List built-in templates and exit")
	rootCmd.AddCommand(whatifCmd)
}
