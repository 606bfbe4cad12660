package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/cli"
	"github.com/theirongolddev/runwise/internal/model"
	"github.com/theirongolddev/runwise/internal/workspace"
)

var (
	flagScenarioDesc   string
	flagChangeDesc     string
	flagChangeMonth    int
	flagChangeOnce     bool
	flagChangeScenario string
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "List or edit what-if scenarios",
	RunE:  runScenarioList,
}

var scenarioAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create an empty scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioAdd,
}

var scenarioRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a scenario (the base scenario cannot be deleted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return removeItem("scenario", args[0], workspace.Workspace.RemoveScenario)
	},
}

var scenarioUseCmd = &cobra.Command{
	Use:   "use ID",
	Short: "Make a scenario the active one",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioUse,
}

var changeCmd = &cobra.Command{
	Use:   "change",
	Short: "Edit the planned changes of a scenario",
}

var changeAddCmd = &cobra.Command{
	Use:   "add TYPE AMOUNT",
	Short: "Add a planned change (hire, fire, revenue-change, cost-change, one-time-expense, one-time-income)",
	Args:  cobra.ExactArgs(2),
	RunE:  runChangeAdd,
}

var changeRmCmd = &cobra.Command{
	Use:   "rm CHANGE-ID",
	Short: "Remove a planned change",
	Args:  cobra.ExactArgs(1),
	RunE:  runChangeRm,
}

func init() {
	scenarioAddCmd.Flags().StringVar(&flagScenarioDesc, "description", "", "What the scenario explores")

	changeCmd.PersistentFlags().StringVar(&flagChangeScenario, "in", "", "Scenario id (default: active scenario)")
	changeAddCmd.Flags().StringVar(&flagChangeDesc, "description", "", "Short description")
	changeAddCmd.Flags().IntVar(&flagChangeMonth, "month", 0, "Month the change takes effect")
	changeAddCmd.Flags().BoolVar(&flagChangeOnce, "once", false, "Apply revenue or cost changes only in that month")
	changeCmd.AddCommand(changeAddCmd, changeRmCmd)

	scenarioCmd.AddCommand(scenarioAddCmd, scenarioRmCmd, scenarioUseCmd, changeCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarioList(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	fmt.Println()
	for _, s := range ws.Scenarios {
		marker := " "
		if s.ID == ws.ActiveScenarioID {
			marker = "*"
		}
		fmt.Printf("  %s %s %s  %s\n", marker, cli.RenderSwatch(s.Color), s.Name, cli.RenderMuted(s.ID))
		if s.Description != "" {
			fmt.Printf("      %s\n", cli.RenderMuted(s.Description))
		}
		for _, c := range s.Changes {
			when := "from"
			if !c.Recurring && (c.Kind == model.ChangeRevenue || c.Kind == model.ChangeCost) {
				when = "in"
			}
			fmt.Printf("      %-8s %-16s %10s %s month %-3d %s\n",
				c.ID, c.Kind, cli.FormatCurrencyFull(c.Amount), when, c.Month, c.Description)
		}
	}
	fmt.Println()
	return nil
}

func runScenarioAdd(_ *cobra.Command, args []string) error {
	var added model.Scenario
	_, err := mutate(func(ws workspace.Workspace) (workspace.Workspace, error) {
		added = workspace.NewScenario(args[0], flagScenarioDesc, len(ws.Scenarios))
		return ws.AddScenario(added)
	})
	if err != nil {
		return err
	}
	done("Created scenario %s (%s)", added.Name, added.ID)
	return nil
}

func runScenarioUse(_ *cobra.Command, args []string) error {
	ws, err := mutate(func(ws workspace.Workspace) (workspace.Workspace, error) {
		return ws.SetActiveScenario(args[0])
	})
	if err != nil {
		return err
	}
	s, _ := ws.ActiveScenario()
	done("Active scenario: %s", s.Name)
	return nil
}

// changeTarget resolves --in, falling back to the scenario reports show as active.
func changeTarget(ws workspace.Workspace) string {
	if flagChangeScenario != "" {
		return flagChangeScenario
	}
	if s, ok := ws.ActiveScenario(); ok {
		return s.ID
	}
	return ws.ActiveScenarioID
}

func runChangeAdd(_ *cobra.Command, args []string) error {
	kind := model.ChangeKind(args[0])
	if !kind.Valid() {
		return fmt.Errorf("change type %q: %w", args[0], workspace.ErrInvalidKind)
	}
	// Revenue and cost changes may be negative; the sign is the direction.
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("amount %q: %w", args[1], err)
	}

	c := model.PlannedChange{
		ID:          workspace.NewID(),
		Kind:        kind,
		Description: flagChangeDesc,
		Amount:      amount,
		Month:       flagChangeMonth,
		Recurring:   !flagChangeOnce,
	}
	var target string
	_, err = mutate(func(ws workspace.Workspace) (workspace.Workspace, error) {
		target = changeTarget(ws)
		return ws.AddChange(target, c)
	})
	if errors.Is(err, workspace.ErrBaseScenario) {
		return fmt.Errorf("%w: pick another scenario with --in or 'runwise scenario use'", err)
	}
	if err != nil {
		return err
	}
	done("Added %s %s at month %d to %s (%s)", c.Kind, cli.FormatCurrencyFull(c.Amount), c.Month, target, c.ID)
	return nil
}

func runChangeRm(_ *cobra.Command, args []string) error {
	var target string
	_, err := mutate(func(ws workspace.Workspace) (workspace.Workspace, error) {
		target = changeTarget(ws)
		return ws.RemoveChange(target, args[0])
	})
	if err != nil {
		return err
	}
	done("Removed change %s from %s", args[0], target)
	return nil
}
