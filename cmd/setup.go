package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

var monthOptions = []int{12, 18, 24, 36, 48}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the file only, so env overrides are not persisted.
	fileCfg, err := config.ReadFile(config.ConfigPath())
	if err != nil {
		fileCfg = config.DefaultConfig()
	}

	months := fileCfg.General.ProjectionMonths
	currency := fileCfg.General.CurrencySymbol
	salary := strconv.FormatFloat(fileCfg.Hiring.AverageSalary, 'f', -1, 64)
	minRunway := strconv.FormatFloat(fileCfg.Hiring.MinRunwayMonths, 'f', -1, 64)
	addr := fileCfg.Serve.Addr

	opts := make([]huh.Option[int], 0, len(monthOptions))
	for _, m := range monthOptions {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d months", m), m))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to runwise").
				Description("A few defaults for projections and hiring estimates."),
			huh.NewSelect[int]().
				Title("Projection horizon").
				Options(opts...).
				Value(&months),
			huh.NewInput().
				Title("Currency symbol").
				Value(&currency).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency symbol is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Average monthly salary of a new hire").
				Value(&salary).
				Validate(positiveNumber),
			huh.NewInput().
				Title("Runway to preserve when hiring (months)").
				Value(&minRunway).
				Validate(positiveNumber),
			huh.NewInput().
				Title("Daemon listen address").
				Value(&addr),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return err
	}

	fileCfg.General.ProjectionMonths = months
	fileCfg.General.CurrencySymbol = strings.TrimSpace(currency)
	fileCfg.Hiring.AverageSalary, _ = strconv.ParseFloat(salary, 64)
	fileCfg.Hiring.MinRunwayMonths, _ = strconv.ParseFloat(minRunway, 64)
	fileCfg.Serve.Addr = addr

	if err := config.Save(fileCfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `runwise setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func positiveNumber(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}
