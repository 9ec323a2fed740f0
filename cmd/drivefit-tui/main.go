package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/rgehrsitz/drivefit/internal/tui"
)

func main() {
	// Get profile path from arguments
	profilePath := ""
	if len(os.Args) > 1 {
		profilePath = os.Args[1]
	} else {
		fmt.Println("Usage: drivefit-tui <profile-file>")
		os.Exit(1)
	}

	if _, err := os.Stat(profilePath); os.IsNotExist(err) {
		fmt.Printf("Error: Profile file not found: %s\n", profilePath)
		os.Exit(1)
	}

	// Gas price and catalog come from drivefit.yaml when present
	cfg, err := config.LoadAppConfig("drivefit.yaml")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cat := catalog.Default()
	if cfg.Engine.CatalogFile != "" {
		if cat, err = catalog.LoadFromFile(cfg.Engine.CatalogFile); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	engine := calculation.NewEngine(cat)
	if cfg.Engine.GasPrice > 0 {
		engine.GasPrice = decimal.NewFromFloat(cfg.Engine.GasPrice)
	}

	p := tea.NewProgram(
		tui.NewModel(profilePath, engine),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
