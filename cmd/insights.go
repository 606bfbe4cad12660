package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/cli"
	"github.com/theirongolddev/runwise/internal/engine"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Warnings, highlights and recommendations for a scenario",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	scenario, err := selectedScenario(ws)
	if err != nil {
		return err
	}

	m := engine.CalculateMetrics(ws.Inputs, scenario.Changes)
	projections := engine.GenerateProjections(ws.Inputs, scenario.Changes, horizon(ws))
	insights := engine.GenerateInsights(ws.Inputs, m, projections)

	fmt.Println()
	fmt.Println(cli.RenderTitle("INSIGHTS  " + scenario.Name))
	fmt.Println()

	if len(insights) == 0 {
		fmt.Println("  Nothing stands out. Add revenue, costs or team members to get insights.")
	}
	for _, ins := range insights {
		line := fmt.Sprintf("  %s %s", cli.RenderSeverity(string(ins.Type)), ins.Title)
		if ins.Metric != "" {
			line += "  " + cli.RenderMuted(ins.Metric)
		}
		fmt.Println(line)
		fmt.Printf("          %s\n", ins.Description)
	}

	if recs := engine.GenerateRecommendations(ws.Inputs, m); len(recs) > 0 {
		fmt.Println()
		fmt.Println("  Recommendations")
		for _, r := range recs {
			fmt.Printf("  - %s\n", r)
		}
	}
	fmt.Println()
	return nil
}
