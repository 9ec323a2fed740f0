package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/recommend"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRecommender builds the configured narrative source. A cache that
// cannot be built is logged and skipped.
func newRecommender(env *appEnv) recommend.Recommender {
	cache, err := recommend.NewCache(env.cfg.Cache)
	if err != nil {
		env.logger.Warn("recommendation cache disabled", zap.Error(err))
		cache = nil
	}
	return recommend.New(env.cfg.Recommender, cache, env.cfg.Cache.TTL, env.logger)
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [profile-file]",
	Short: "Explain why a vehicle does or does not suit a shopper",
	Long: `Write a short narrative for one vehicle, or for the top match when no
--vehicle is given. With recommender.provider set to gemini and an API key
configured, the narrative is generated by the Gemini API; otherwise it is
rule-based.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shopper, env, err := loadProfile(args[0])
		if err != nil {
			return err
		}

		var match domain.VehicleMatch
		if id, _ := cmd.Flags().GetString("vehicle"); id != "" {
			matches, err := env.engine.MatchSelected(shopper.Financial, []string{id})
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return fmt.Errorf("vehicle %q: %w", id, domain.ErrVehicleNotFound)
			}
			match = matches[0]
		} else {
			matches, err := env.engine.Match(shopper.Financial, 1)
			if err != nil {
				return err
			}
			match = matches[0]
		}

		rec, err := newRecommender(env).Recommend(cmd.Context(), recommend.Request{
			Match:   match,
			Profile: recommend.SummaryFromProfile(shopper.Financial),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, rec)
		}
		fmt.Fprintf(out, "%s (%d%% match)\n", match.Vehicle.DisplayName(), match.MatchPercentage)
		fmt.Fprintln(out, strings.Repeat("=", 50))
		fmt.Fprintln(out, rec.Summary)
		fmt.Fprintln(out)
		for _, p := range rec.KeyPoints {
			fmt.Fprintf(out, "• %s\n", p)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Financial:   %s\n", rec.FinancialInsight)
		fmt.Fprintf(out, "Reliability: %s\n", rec.ReliabilityInsight)
		fmt.Fprintf(out, "Value:       %s\n", rec.ValueInsight)
		return nil
	},
}

func init() {
	recommendCmd.Flags().String("vehicle", "", "Catalog vehicle id (default: top match)")
	recommendCmd.Flags().Bool("json", false, "Print JSON")
	rootCmd.AddCommand(recommendCmd)
}
