package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	appConfigPath string
	catalogPath   string
	debugMode     bool
)

var rootCmd = &cobra.Command{
	Use:   "drivefit",
	Short: "Vehicle affordability and matching calculator",
	Long: `DriveFit scores how well vehicles fit a shopper's finances: affordability,
ranked matches, ownership cost, depreciation and buy-versus-lease.

Most commands take a shopper profile (YAML) describing income, credit,
budget and lease term. Settings such as gas price, catalog file, logging and
the HTTP server come from drivefit.yaml, a .env file and DRIVEFIT_*
environment variables.`,
	SilenceUsage: true,
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "drivefit %s (commit %s, built %s)\n", version, commit, date)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				if info := buildInfo(); info != "" {
					fmt.Fprintln(cmd.OutOrStdout(), info)
				}
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// appEnv is what every command needs: settings, the catalog and an engine
// bound to it
type appEnv struct {
	cfg     *config.AppConfig
	catalog *catalog.Catalog
	engine  *calculation.Engine
	logger  *zap.Logger
}

// newEnv loads settings and picks the catalog: --catalog, then the profile's
// catalog_file, then engine.catalog_file, then the built-in lineup
func newEnv(profileCatalog string) (*appEnv, error) {
	cfg, err := config.LoadAppConfig(appConfigPath)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if debugMode {
		logger, err = logging.New(cfg.Logging, "debug")
		if err != nil {
			return nil, err
		}
	}

	path := catalogPath
	if path == "" {
		path = profileCatalog
	}
	if path == "" {
		path = cfg.Engine.CatalogFile
	}

	cat := catalog.Default()
	if path != "" {
		cat, err = catalog.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded catalog", zap.String("path", path), zap.Int("vehicles", cat.Len()))
	}

	engine := calculation.NewEngine(cat)
	if cfg.Engine.GasPrice > 0 {
		engine.GasPrice = decimal.NewFromFloat(cfg.Engine.GasPrice)
	}
	if debugMode {
		engine.SetLogger(logging.NewSugarAdapter(logger, "engine"))
	}

	return &appEnv{cfg: cfg, catalog: cat, engine: engine, logger: logger}, nil
}

// loadProfile parses a shopper profile and builds the environment for it
func loadProfile(path string) (*domain.Shopper, *appEnv, error) {
	shopper, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	env, err := newEnv(shopper.CatalogFile)
	if err != nil {
		return nil, nil, err
	}
	return shopper, env, nil
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func parseDecimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return d, nil
}

// factorFlags registers the four depreciation factor switches
func factorFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("low-mileage", false, "Vehicle is driven less than average")
	cmd.Flags().Bool("good-condition", false, "Vehicle is kept in good condition")
	cmd.Flags().Bool("low-interest", false, "Market rates are low")
	cmd.Flags().Bool("low-gas", false, "Gas prices are low")
}

func readFactors(cmd *cobra.Command) domain.DepreciationFactors {
	var f domain.DepreciationFactors
	f.LowMileage, _ = cmd.Flags().GetBool("low-mileage")
	f.GoodCondition, _ = cmd.Flags().GetBool("good-condition")
	f.LowInterest, _ = cmd.Flags().GetBool("low-interest")
	f.LowGas, _ = cmd.Flags().GetBool("low-gas")
	return f
}

var validateCmd = &cobra.Command{
	Use:   "validate [profile-file]",
	Short: "Validate a shopper profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shopper, env, err := loadProfile(args[0])
		if err != nil {
			return err
		}
		for _, id := range shopper.Shortlist {
			if _, ok := env.catalog.ByID(id); !ok {
				return fmt.Errorf("shortlist vehicle %q: %w", id, domain.ErrVehicleNotFound)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Profile %s is valid\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&appConfigPath, "config", "drivefit.yaml", "Application settings file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Vehicle catalog YAML (default: built-in 2024 lineup)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Log engine calculations to stderr")

	vc := versionCmd()
	vc.Flags().BoolP("verbose", "v", false, "Include Go build information")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(vc)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
