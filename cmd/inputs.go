package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/cli"
	"github.com/theirongolddev/runwise/internal/model"
	"github.com/theirongolddev/runwise/internal/workspace"
)

var (
	flagRevenueType   string
	flagRevenueGrowth float64
	flagRevenueStart  int
	flagRevenueEnd    int

	flagCostType  string
	flagCostFixed bool

	flagTeamStart int

	flagCashCredit float64

	flagCompanyName     string
	flagCompanyIndustry string
	flagCompanyStage    string
)

var revenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "List or edit revenue streams",
	RunE:  runRevenueList,
}

var revenueAddCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Add a revenue stream",
	Args:  cobra.ExactArgs(2),
	RunE:  runRevenueAdd,
}

var revenueRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a revenue stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return removeItem("revenue stream", args[0], workspace.Workspace.RemoveRevenue)
	},
}

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "List or edit operating costs",
	RunE:  runCostList,
}

var costAddCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Add a monthly cost",
	Args:  cobra.ExactArgs(2),
	RunE:  runCostAdd,
}

var costRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a cost",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return removeItem("cost", args[0], workspace.Workspace.RemoveCost)
	},
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "List or edit team members",
	RunE:  runTeamList,
}

var teamAddCmd = &cobra.Command{
	Use:   "add ROLE SALARY",
	Short: "Add a team member",
	Args:  cobra.ExactArgs(2),
	RunE:  runTeamAdd,
}

var teamRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a team member",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return removeItem("team member", args[0], workspace.Workspace.RemoveTeamMember)
	},
}

var cashCmd = &cobra.Command{
	Use:   "cash [BALANCE]",
	Short: "Show or set the current cash balance",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCash,
}

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Show or set the company profile",
	RunE:  runCompany,
}

func init() {
	revenueAddCmd.Flags().StringVarP(&flagRevenueType, "type", "t", string(model.RevenueRecurring), "recurring, one-time or contract")
	revenueAddCmd.Flags().Float64VarP(&flagRevenueGrowth, "growth", "g", 0, "Monthly growth rate for recurring revenue, 0.05 = 5%")
	revenueAddCmd.Flags().IntVar(&flagRevenueStart, "start", model.DefaultStartMonth, "First month (0 = current month)")
	revenueAddCmd.Flags().IntVar(&flagRevenueEnd, "end", -1, "Last month, inclusive (default: open-ended)")
	revenueCmd.AddCommand(revenueAddCmd, revenueRmCmd)

	costAddCmd.Flags().StringVarP(&flagCostType, "type", "t", string(model.CostOther), "payroll, operations, marketing, tools, rent or other")
	costAddCmd.Flags().BoolVar(&flagCostFixed, "fixed", false, "Mark the cost as fixed")
	costCmd.AddCommand(costAddCmd, costRmCmd)

	teamAddCmd.Flags().IntVar(&flagTeamStart, "start", 0, "Month the salary starts")
	teamCmd.AddCommand(teamAddCmd, teamRmCmd)

	cashCmd.Flags().Float64Var(&flagCashCredit, "credit-line", -1, "Available credit line (informational)")

	companyCmd.Flags().StringVar(&flagCompanyName, "name", "", "Company name")
	companyCmd.Flags().StringVar(&flagCompanyIndustry, "industry", "", "Industry")
	companyCmd.Flags().StringVar(&flagCompanyStage, "stage", "", "pre-seed, seed, series-a, series-b, growth or profitable")

	rootCmd.AddCommand(revenueCmd, costCmd, teamCmd, cashCmd, companyCmd)
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("amount %q: %w", s, workspace.ErrInvalidAmount)
	}
	return v, nil
}

func removeItem(what, id string, remove func(workspace.Workspace, string) (workspace.Workspace, error)) error {
	_, err := mutate(func(ws workspace.Workspace) (workspace.Workspace, error) {
		return remove(ws, id)
	})
	if err != nil {
		return err
	}
	done("Removed %s %s", what, id)
	return nil
}

func runRevenueAdd(_ *cobra.Command, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	r := model.RevenueStream{
		Name:       args[0],
		Kind:       model.RevenueKind(flagRevenueType),
		Amount:     amount,
		GrowthRate: flagRevenueGrowth,
		StartMonth: model.Month(flagRevenueStart),
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("revenue type %q: %w", flagRevenueType, workspace.ErrInvalidKind)
	}
	if flagRevenueEnd >= 0 {
		r.EndMonth = model.Month(flagRevenueEnd)
	}

	ws, err := mutate(func(ws workspace.Workspace) (workspace.Workspace, error) {
		return ws.AddRevenue(r)
	})
	if err != nil {
		return err
	}
	added := ws.Inputs.Revenue[len(ws.Inputs.Revenue)-1]
	done("Added revenue %s (%s) %s", added.Name, added.ID, cli.FormatCurrencyFull(added.Amount))
	return nil
}

func runRevenueList(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(ws.Inputs.Revenue))
	for _, r := range ws.Inputs.Revenue {
		end := "open"
		if r.EndMonth != nil {
			end = strconv.Itoa(r.End())
		}
		rows = append(rows, []string{
			r.ID, r.Name, string(r.Kind), cli.FormatCurrencyFull(r.Amount),
			cli.FormatPercent(r.GrowthRate), strconv.Itoa(r.Start()), end,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Revenue",
		Headers: []string{"ID", "Name", "Type", "Amount", "Growth", "Start", "End"},
		Rows:    rows,
	}))
	return nil
}

func runCostAdd(_ *cobra.Command, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	c := model.CostCategory{
		Name:    args[0],
		Type:    model.CostType(flagCostType),
		Amount:  amount,
		IsFixed: flagCostFixed,
	}
	if !c.Type.Valid() {
		return fmt.Errorf("cost type %q: %w", flagCostType, workspace.ErrInvalidKind)
	}

	ws, err := mutate(func(ws workspace.Workspace) (workspace.Workspace, error) {
		return ws.AddCost(c)
	})
	if err != nil {
		return err
	}
	added := ws.Inputs.Costs[len(ws.Inputs.Costs)-1]
	done("Added cost %s (%s) %s/month", added.Name, added.ID, cli.FormatCurrencyFull(added.Amount))
	return nil
}

func runCostList(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(ws.Inputs.Costs)+2)
	total := 0.0
	for _, c := range ws.Inputs.Costs {
		fixed := ""
		if c.IsFixed {
			fixed = "fixed"
		}
		total += c.Amount
		rows = append(rows, []string{c.ID, c.Name, string(c.Type), fixed, cli.FormatCurrencyFull(c.Amount)})
	}
	rows = append(rows, []string{"---"}, []string{"", "Total", "", "", cli.FormatCurrencyFull(total)})
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Costs",
		Headers: []string{"ID", "Name", "Type", "", "Monthly"},
		Rows:    rows,
	}))
	return nil
}

func runTeamAdd(_ *cobra.Command, args []string) error {
	salary, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	ws, err := mutate(func(ws workspace.Workspace) (workspace.Workspace, error) {
		return ws.AddTeamMember(model.TeamMember{Role: args[0], Salary: salary, StartMonth: flagTeamStart})
	})
	if err != nil {
		return err
	}
	added := ws.Inputs.Team[len(ws.Inputs.Team)-1]
	done("Added %s (%s) at %s/month from month %d", added.Role, added.ID, cli.FormatCurrencyFull(added.Salary), added.StartMonth)
	return nil
}

func runTeamList(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(ws.Inputs.Team)+2)
	total := 0.0
	for _, m := range ws.Inputs.Team {
		total += m.Salary
		rows = append(rows, []string{m.ID, m.Role, strconv.Itoa(m.StartMonth), cli.FormatCurrencyFull(m.Salary)})
	}
	rows = append(rows, []string{"---"}, []string{"", "Payroll", "", cli.FormatCurrencyFull(total)})
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Team",
		Headers: []string{"ID", "Role", "Start", "Salary"},
		Rows:    rows,
	}))
	return nil
}

func runCash(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !cmd.Flags().Changed("credit-line") {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}
		fmt.Printf("  Cash: %s\n", cli.FormatCurrencyFull(ws.Inputs.Cash.CurrentBalance))
		if ws.Inputs.Cash.CreditLine > 0 {
			fmt.Printf("  Credit line: %s\n", cli.FormatCurrencyFull(ws.Inputs.Cash.CreditLine))
		}
		return nil
	}

	ws, err := mutate(func(ws workspace.Workspace) (workspace.Workspace, error) {
		cash := ws.Inputs.Cash
		if len(args) == 1 {
			// Negative balances are allowed: an overdrawn account still projects.
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return ws, fmt.Errorf("balance %q: %w", args[0], err)
			}
			cash.CurrentBalance = v
		}
		if cmd.Flags().Changed("credit-line") {
			if flagCashCredit < 0 {
				return ws, fmt.Errorf("credit line: %w", workspace.ErrInvalidAmount)
			}
			cash.CreditLine = flagCashCredit
		}
		return ws.SetCash(cash), nil
	})
	if err != nil {
		return err
	}
	done("Cash set to %s", cli.FormatCurrencyFull(ws.Inputs.Cash.CurrentBalance))
	return nil
}

func runCompany(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	if !f.Changed("name") && !f.Changed("industry") && !f.Changed("stage") {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}
		c := ws.Inputs.Company
		fmt.Printf("  %s  %s  %s\n", c.Name, c.Industry, c.Stage)
		return nil
	}

	stage := model.CompanyStage(flagCompanyStage)
	if stage != "" && !stage.Valid() {
		return fmt.Errorf("stage %q: %w", flagCompanyStage, workspace.ErrInvalidKind)
	}
	ws, err := mutate(func(ws workspace.Workspace) (workspace.Workspace, error) {
		c := ws.Inputs.Company
		if flagCompanyName != "" {
			c.Name = flagCompanyName
		}
		if flagCompanyIndustry != "" {
			c.Industry = flagCompanyIndustry
		}
		if stage != "" {
			c.Stage = stage
		}
		return ws.SetCompany(c), nil
	})
	if err != nil {
		return err
	}
	done("Company: %s (%s, %s)", ws.Inputs.Company.Name, ws.Inputs.Company.Industry, ws.Inputs.Company.Stage)
	return nil
}
