package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/cli"
	"github.com/theirongolddev/runwise/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Projection months: %d\n", cfg.General.ProjectionMonths)
	fmt.Printf("    Currency symbol:   %s\n", cfg.General.CurrencySymbol)
	fmt.Printf("    Data directory:    %s\n", cfg.DataDir())
	fmt.Println()

	fmt.Println("  [Hiring]")
	fmt.Printf("    Average salary:    %s/month\n", cli.FormatCurrencyFull(cfg.Hiring.AverageSalary))
	fmt.Printf("    Min runway:        %.0f months\n", cfg.Hiring.MinRunwayMonths)
	fmt.Println()

	fmt.Println("  [Serve]")
	fmt.Printf("    Address:           %s\n", cfg.Serve.Addr)
	fmt.Printf("    Schedule:          %s\n", cfg.Serve.Schedule)
	fmt.Printf("    Events buffer:     %d\n", cfg.Serve.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:             %s\n", cfg.Log.Level)
	fmt.Printf("    Format:            %s\n", cfg.Log.Format)
	fmt.Println()

	fmt.Printf("  Environment overrides: %s, %s, %s, %s (also read from .env)\n",
		config.EnvDataDir, config.EnvLogLevel, config.EnvCurrency, config.EnvMonths)
	fmt.Println("  Run `runwise setup` to reconfigure.")
	return nil
}
