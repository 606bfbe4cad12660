package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/cli"
	"github.com/theirongolddev/runwise/internal/engine"
)

var compareCmd = &cobra.Command{
	Use:   "compare [scenario-id...]",
	Short: "Compare scenarios side by side",
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	scenarios := ws.Scenarios
	if len(args) > 0 {
		scenarios = scenarios[:0:0]
		for _, id := range args {
			s, ok := ws.Scenario(id)
			if !ok {
				return fmt.Errorf("unknown scenario %q", id)
			}
			scenarios = append(scenarios, s)
		}
	}

	months := horizon(ws)
	comparisons := engine.CompareScenarios(ws.Inputs, scenarios, months)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SCENARIOS  %d months", months)))
	fmt.Println()

	rows := make([][]string, 0, len(comparisons))
	var ending []float64
	for _, c := range comparisons {
		end := c.Metrics.CurrentCash
		if n := len(c.Projections); n > 0 {
			end = c.Projections[n-1].CashBalance
		}
		ending = append(ending, end)

		name := cli.RenderSwatch(c.Color) + " " + c.Name
		if c.ScenarioID == ws.ActiveScenarioID {
			name += " *"
		}
		rows = append(rows, []string{
			name,
			burnLabel(c.Metrics.MonthlyBurn),
			cli.FormatMonths(c.Metrics.Runway),
			cli.FormatMonthIndex(c.Metrics.BreakEvenMonth),
			zeroCashLabel(c.Projections),
			cli.FormatCurrency(end),
			fmt.Sprintf("%d %s", c.Metrics.RiskScore, c.Metrics.RiskLevel),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Burn", "Runway", "Break-even", "Zero Cash", "Ending Cash", "Risk"},
		Rows:    rows,
	}))

	peak := 0.0
	for _, v := range ending {
		peak = max(peak, v)
	}
	if peak > 0 {
		fmt.Println()
		fmt.Println("  Ending cash")
		for i, c := range comparisons {
			fmt.Printf("%s %s\n", cli.RenderHorizontalBar(c.Name, ending[i], peak, 40), cli.FormatCurrency(ending[i]))
		}
	}
	fmt.Println()
	return nil
}
