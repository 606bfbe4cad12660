package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/cli"
	"github.com/theirongolddev/runwise/internal/engine"
)

var (
	flagHireSalary    float64
	flagHireMinRunway float64
)

var hiresCmd = &cobra.Command{
	Use:   "hires",
	Short: "How many hires the current cash can absorb",
	RunE:  runHires,
}

func init() {
	hiresCmd.Flags().Float64Var(&flagHireSalary, "salary", 0, "Average monthly salary per hire (default from config)")
	hiresCmd.Flags().Float64Var(&flagHireMinRunway, "min-runway", 0, "Runway to preserve in months (default from config)")
	rootCmd.AddCommand(hiresCmd)
}

func runHires(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	salary := cfg.Hiring.AverageSalary
	if flagHireSalary > 0 {
		salary = flagHireSalary
	}
	minRunway := cfg.Hiring.MinRunwayMonths
	if flagHireMinRunway > 0 {
		minRunway = flagHireMinRunway
	}

	m := engine.CalculateMetrics(ws.Inputs, nil)
	n := engine.AffordableHires(ws.Inputs, salary, minRunway)

	fmt.Println()
	switch {
	case n == engine.UnconstrainedHires:
		fmt.Printf("  Not burning cash: hiring is limited by revenue, not runway.\n")
	case n == 0:
		fmt.Printf("  No room to hire at %s/month while keeping %.0f months of runway.\n",
			cli.FormatCurrencyFull(salary), minRunway)
	default:
		fmt.Printf("  You can afford %d more hire(s) at %s/month and keep %.0f months of runway.\n",
			n, cli.FormatCurrencyFull(salary), minRunway)
	}
	fmt.Println(cli.RenderMuted(fmt.Sprintf("  Current runway %s, payroll %s of costs",
		cli.FormatMonths(m.Runway), cli.FormatPercent(engine.PayrollPercentage(ws.Inputs)))))
	fmt.Println()
	return nil
}
