package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/compare"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [profile-file]",
	Short: "Compare vehicles side by side against the first one",
	Long: `Compare up to five vehicles for a shopper. The first vehicle is the base;
the others are reported as differences from it.

Examples:
  drivefit compare profile.yaml --vehicles camry-le,camry-hybrid-se,rav4-le
  drivefit compare profile.yaml --format csv     # uses the profile shortlist
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shopper, env, err := loadProfile(args[0])
		if err != nil {
			return err
		}

		ids, _ := cmd.Flags().GetStringSlice("vehicles")
		if len(ids) == 0 {
			ids = shopper.Shortlist
		}
		if len(ids) < 2 {
			return fmt.Errorf("at least two vehicles are required: pass --vehicles or add a shortlist to the profile")
		}

		engine := compare.NewCompareEngine(env.engine)
		compSet, err := engine.Compare(cmd.Context(), shopper.Financial, ids, compare.CompareOptions{
			AnnualMileage: shopper.Lifestyle.AnnualMileage(),
			Factors:       shopper.Factors,
			ProfilePath:   args[0],
		})
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		var rendered string
		switch strings.ToLower(format) {
		case "table", "":
			rendered = (&compare.TableFormatter{}).Format(compSet)
		case "compact":
			rendered = (&compare.TableFormatter{}).FormatCompact(compSet)
		case "csv":
			rendered, err = (&compare.CSVFormatter{}).Format(compSet)
		case "json":
			rendered, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		default:
			return fmt.Errorf("unknown format %q (table, compact, csv, json)", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringSlice("vehicles", nil, "Comma-separated vehicle ids, base first (default: profile shortlist)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	rootCmd.AddCommand(compareCmd)
}
