package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/cli"
	"github.com/theirongolddev/runwise/internal/engine"
	"github.com/theirongolddev/runwise/internal/model"
	"github.com/theirongolddev/runwise/internal/store"
)

var (
	flagHistoryLimit  int
	flagHistoryRecord bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Metric snapshots recorded for a scenario",
	Long: "Show how a scenario's metrics moved over time. Snapshots are recorded by\n" +
		"`runwise serve` whenever metrics change, or on demand with --record.",
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Max snapshots to show (0 = all)")
	historyCmd.Flags().BoolVar(&flagHistoryRecord, "record", false, "Record a snapshot of every scenario now")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ws, _, err := st.LoadWorkspace()
	if err != nil {
		return err
	}
	scenario, err := selectedScenario(ws)
	if err != nil {
		return err
	}

	if flagHistoryRecord {
		if err := recordAll(st, ws.Inputs, ws.Scenarios); err != nil {
			return err
		}
	}

	snaps, err := st.Snapshots(scenario.ID, flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("\n  No history yet. Run `runwise history --record` or `runwise serve`.")
		return nil
	}

	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		m := s.Metrics
		rows = append(rows, []string{
			s.RecordedAt.Local().Format("2006-01-02 15:04"),
			cli.FormatCurrency(m.CurrentCash),
			burnLabel(m.MonthlyBurn),
			cli.FormatMonths(m.Runway),
			strconv.Itoa(m.RiskScore),
			cli.RenderSeverity(string(m.RiskLevel)),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "History  " + scenario.Name,
		Headers: []string{"Recorded", "Cash", "Burn", "Runway", "Score", "Level"},
		Rows:    rows,
	}))
	return nil
}

func recordAll(st *store.Store, in model.FinancialInputs, scenarios []model.Scenario) error {
	now := time.Now()
	for _, s := range scenarios {
		if err := st.RecordSnapshot(s.ID, engine.CalculateMetrics(in, s.Changes), now); err != nil {
			return err
		}
	}
	done("Recorded %d snapshots", len(scenarios))
	return nil
}
