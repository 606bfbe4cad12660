package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/cli"
	"github.com/theirongolddev/runwise/internal/engine"
	"github.com/theirongolddev/runwise/internal/model"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Key metrics and top insights for a scenario",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	scenario, err := selectedScenario(ws)
	if err != nil {
		return err
	}

	in := ws.Inputs
	months := horizon(ws)
	m := engine.CalculateMetrics(in, scenario.Changes)
	projections := engine.GenerateProjections(in, scenario.Changes, months)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", in.Company.Name, scenario.Name)))
	fmt.Println()

	rows := [][]string{
		{"Cash", cli.FormatCurrencyFull(m.CurrentCash)},
		{"Monthly Revenue", cli.FormatCurrencyFull(m.MonthlyRevenue)},
		{"Monthly Costs", cli.FormatCurrencyFull(m.MonthlyCosts)},
		{"Net Burn", burnLabel(m.MonthlyBurn)},
		{"---"},
		{"Runway", cli.FormatMonths(m.Runway)},
		{"Break-even", cli.FormatMonthIndex(m.BreakEvenMonth)},
		{"Zero Cash", zeroCashLabel(projections)},
		{"Payroll Share", cli.FormatPercent(engine.PayrollPercentage(in))},
		{"---"},
		{"Risk", fmt.Sprintf("%s %s", cli.RenderSeverity(string(m.RiskLevel)), cli.RenderScoreBar(m.RiskScore, 20))},
	}
	if diff := runwayVsBase(in, scenario, m); diff != "" {
		rows = append(rows[:6], append([][]string{{"Runway vs Base", diff}}, rows[6:]...)...)
	}
	if in.Cash.CreditLine > 0 {
		rows = append(rows[:1], append([][]string{{"Credit Line", cli.FormatCurrencyFull(in.Cash.CreditLine)}}, rows[1:]...)...)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(projections) > 0 {
		fmt.Println()
		fmt.Printf("  Cash over %d months  %s\n", months, cli.RenderSparkline(cashSeries(projections)))
	}

	insights := engine.GenerateInsights(in, m, projections)
	if len(insights) > 0 {
		fmt.Println()
		for _, ins := range insights[:min(3, len(insights))] {
			fmt.Printf("  %s %s\n", cli.RenderSeverity(string(ins.Type)), ins.Title)
		}
		if len(insights) > 3 {
			fmt.Println(cli.RenderMuted(fmt.Sprintf("  %d more, see `runwise insights`", len(insights)-3)))
		}
	}
	fmt.Println()
	return nil
}

func burnLabel(burn float64) string {
	if burn < 0 {
		return cli.FormatCurrencyFull(-burn) + " profit"
	}
	return cli.FormatCurrencyFull(burn)
}

// runwayVsBase compares a scenario's runway with the no-change trajectory.
// It is empty for the base scenario and when either runway is unlimited.
func runwayVsBase(in model.FinancialInputs, scenario model.Scenario, m model.FinancialMetrics) string {
	if scenario.IsBase || m.Runway == nil {
		return ""
	}
	base := engine.CalculateMetrics(in, nil)
	if base.Runway == nil {
		return ""
	}
	diff := *m.Runway - *base.Runway
	if diff == 0 {
		return ""
	}
	return cli.FormatMonthDelta(diff)
}

func zeroCashLabel(projections []model.MonthlyProjection) string {
	month := engine.FindZeroCashMonth(projections)
	if month == nil {
		return "not within horizon"
	}
	return projections[*month].MonthLabel
}

func cashSeries(projections []model.MonthlyProjection) []float64 {
	out := make([]float64, len(projections))
	for i, p := range projections {
		out[i] = p.CashBalance
	}
	return out
}
