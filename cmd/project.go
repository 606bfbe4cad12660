package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/cli"
	"github.com/theirongolddev/runwise/internal/engine"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Month-by-month cash projection",
	RunE:  runProject,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

func runProject(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	scenario, err := selectedScenario(ws)
	if err != nil {
		return err
	}

	months := horizon(ws)
	projections := engine.GenerateProjections(ws.Inputs, scenario.Changes, months)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTION  %s  %d months", scenario.Name, months)))
	fmt.Println()

	rows := make([][]string, 0, len(projections))
	for _, p := range projections {
		cash := cli.FormatCurrencyFull(p.CashBalance)
		if p.IsNegative {
			cash = cli.RenderSeverity("danger") + " " + cash
		}
		rows = append(rows, []string{
			p.MonthLabel,
			cli.FormatCurrencyFull(p.Revenue),
			cli.FormatCurrencyFull(p.Costs),
			cli.FormatCurrencyFull(p.NetBurn),
			cash,
			cli.FormatMonths(p.Runway),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Revenue", "Costs", "Net Burn", "Cash", "Runway"},
		Rows:    rows,
	}))
	return nil
}
