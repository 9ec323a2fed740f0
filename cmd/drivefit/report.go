package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/drivefit/internal/output"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [profile-file]",
	Short: "Generate a full affordability report",
	Long: fmt.Sprintf(`Rank vehicles for a shopper and detail the top pick.

Formats: %s (aliases: %s)

Examples:
  drivefit report profile.yaml
  drivefit report profile.yaml --format html --output-dir reports/
`, strings.Join(output.AvailableFormats(), ", "), strings.Join(output.AvailableFormatAliases(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shopper, env, err := loadProfile(args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormats(), ", "))
		}

		limit, _ := cmd.Flags().GetInt("limit")
		report, err := output.BuildReport(env.engine, shopper, limit, time.Now())
		if err != nil {
			return err
		}

		if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
			path, err := output.WriteFormatted(f, report, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			return nil
		}

		data, err := f.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	reportCmd.Flags().StringP("format", "f", "console", "Output format")
	reportCmd.Flags().IntP("limit", "n", 5, "Number of ranked vehicles when the profile has no shortlist")
	reportCmd.Flags().StringP("output-dir", "o", "", "Write a timestamped file here instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
