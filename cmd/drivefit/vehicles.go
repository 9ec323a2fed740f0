package main

import (
	"fmt"
	"io"

	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/spf13/cobra"
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "Browse the vehicle catalog",
}

var vehiclesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vehicles, optionally by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv("")
		if err != nil {
			return err
		}
		category, _ := cmd.Flags().GetString("category")
		return printVehicles(cmd, env.catalog.ByCategory(category))
	},
}

var vehiclesSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find vehicles whose model or trim contains the query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv("")
		if err != nil {
			return err
		}
		return printVehicles(cmd, env.catalog.Search(args[0]))
	},
}

var vehiclesShowCmd = &cobra.Command{
	Use:   "show [vehicle-id]",
	Short: "Show one vehicle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv("")
		if err != nil {
			return err
		}
		v, ok := env.catalog.ByID(args[0])
		if !ok {
			return fmt.Errorf("vehicle %q: %w", args[0], domain.ErrVehicleNotFound)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, v)
		}
		fmt.Fprintf(out, "%s\n", v.DisplayName())
		fmt.Fprintf(out, "  ID:          %s\n", v.ID)
		fmt.Fprintf(out, "  MSRP:        $%d\n", v.MSRP)
		fmt.Fprintf(out, "  Category:    %s\n", v.Category)
		fmt.Fprintf(out, "  Fuel:        %s (%s)\n", v.FuelType, v.MPG)
		fmt.Fprintf(out, "  Seating:     %d\n", v.Seating)
		fmt.Fprintf(out, "  Reliability: %s/5\n", v.Reliability.String())
		return nil
	},
}

func printVehicles(cmd *cobra.Command, vehicles []domain.VehicleData) error {
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, vehicles)
	}
	writeVehicleTable(out, vehicles)
	return nil
}

func writeVehicleTable(w io.Writer, vehicles []domain.VehicleData) {
	if len(vehicles) == 0 {
		fmt.Fprintln(w, "No vehicles found")
		return
	}
	fmt.Fprintf(w, "%-24s %-34s %9s %-7s %-15s %5s\n", "ID", "Vehicle", "MSRP", "Type", "Fuel", "Rel.")
	for _, v := range vehicles {
		fmt.Fprintf(w, "%-24s %-34s %9s %-7s %-15s %5s\n",
			v.ID, v.DisplayName(), fmt.Sprintf("$%d", v.MSRP), v.Category, v.FuelType, v.Reliability.String())
	}
	fmt.Fprintf(w, "\n%d vehicles\n", len(vehicles))
}

func init() {
	vehiclesListCmd.Flags().String("category", catalog.CategoryAll, "Sedan, SUV, Truck or all")
	for _, c := range []*cobra.Command{vehiclesListCmd, vehiclesSearchCmd, vehiclesShowCmd} {
		c.Flags().Bool("json", false, "Print JSON")
		vehiclesCmd.AddCommand(c)
	}
	rootCmd.AddCommand(vehiclesCmd)
}
