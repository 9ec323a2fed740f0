package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/breakeven"
	"github.com/spf13/cobra"
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven [profile-file]",
	Short: "Solve for the price, down payment, term or lease payment where the answer flips",
	Long: `Find financing break-even points for one vehicle.

Targets:
  max_price      highest price the shopper can afford
  down_payment   smallest down payment that keeps monthly costs within --budget-share
  term           loan term with the best affordability score
  lease_monthly  lease payment at which buying becomes cheaper (needs --lease-monthly)
  apr            highest APR at which buying still beats the lease (needs --lease-monthly)
  all            every target that applies

Examples:
  drivefit breakeven profile.yaml --vehicle rav4-xle --target down_payment
  drivefit breakeven profile.yaml --vehicle camry-le --lease-monthly 350 --lease-down 2000
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shopper, env, err := loadProfile(args[0])
		if err != nil {
			return err
		}

		target, _ := cmd.Flags().GetString("target")
		target = strings.ToLower(target)

		req := breakeven.OptimizationRequest{
			Profile:       shopper.Financial,
			AnnualMileage: shopper.Lifestyle.AnnualMileage(),
			Target:        breakeven.OptimizationTarget(target),
		}
		id, _ := cmd.Flags().GetString("vehicle")
		switch {
		case id != "" || cmd.Flags().Changed("price"):
			if req.Vehicle, err = vehicleFromFlags(cmd, env); err != nil {
				return err
			}
		case req.Target == breakeven.OptimizeMaxPrice:
			// max_price only needs fuel economy and reliability
			if req.Vehicle.MPGCombined, err = parseDecimalFlag(cmd, "mpg"); err != nil {
				return err
			}
			if req.Vehicle.Reliability, err = parseDecimalFlag(cmd, "reliability"); err != nil {
				return err
			}
		default:
			return fmt.Errorf("either --vehicle or --price is required")
		}
		if cmd.Flags().Changed("down") {
			if req.DownPayment, err = parseDecimalFlag(cmd, "down"); err != nil {
				return err
			}
		}

		if req.Lease.Monthly, err = parseDecimalFlag(cmd, "lease-monthly"); err != nil {
			return err
		}
		if req.Lease.DownPayment, err = parseDecimalFlag(cmd, "lease-down"); err != nil {
			return err
		}
		if !req.Lease.Monthly.IsZero() {
			req.Lease.Term, _ = cmd.Flags().GetInt("lease-term")
		}
		if cmd.Flags().Changed("budget-share") {
			share, err := parseDecimalFlag(cmd, "budget-share")
			if err != nil {
				return err
			}
			req.Constraints.MaxBudgetShare = &share
		}

		solver := breakeven.NewDefaultSolver(env.engine)
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		var rendered string
		if req.Target == breakeven.OptimizeAll {
			md, err := solver.OptimizeMultiDimensional(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				rendered, err = (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(md)
				if err != nil {
					return err
				}
				rendered += "\n"
			} else {
				rendered = (&breakeven.TableFormatter{}).FormatMultiDimensional(md)
			}
		} else {
			result, err := solver.Optimize(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				rendered, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				rendered += "\n"
			} else {
				rendered = (&breakeven.TableFormatter{}).Format(result)
			}
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	vehicleFlags(breakevenCmd)
	breakevenCmd.Flags().String("target", string(breakeven.OptimizeAll), "max_price, down_payment, term, lease_monthly, apr or all")
	breakevenCmd.Flags().String("lease-monthly", "0", "Competing lease payment")
	breakevenCmd.Flags().String("lease-down", "0", "Lease due at signing")
	breakevenCmd.Flags().Int("lease-term", 36, "Lease term in months")
	breakevenCmd.Flags().String("budget-share", "0.20", "Share of monthly net pay the all-in cost may take")
	rootCmd.AddCommand(breakevenCmd)
}
