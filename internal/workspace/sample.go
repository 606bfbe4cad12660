package workspace

import (
	"github.com/theirongolddev/runwise/internal/engine"
	"github.com/theirongolddev/runwise/internal/model"
)

// scenarioColors is the legend palette, cycled by scenario index.
var scenarioColors = []string{
	"#3b82f6", // blue
	"#10b981", // green
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // purple
	"#ec4899", // pink
	"#06b6d4", // cyan
	"#84cc16", // lime
}

// ScenarioColor returns the palette color for the scenario at index.
func ScenarioColor(index int) string {
	if index < 0 {
		index = -index
	}
	return scenarioColors[index%len(scenarioColors)]
}

// NewScenario builds an empty, non-base scenario colored for its position.
func NewScenario(name, description string, index int) model.Scenario {
	return model.Scenario{
		ID:          NewID(),
		Name:        name,
		Description: description,
		Changes:     []model.PlannedChange{},
		Color:       ScenarioColor(index),
	}
}

func baseScenario() model.Scenario {
	return model.Scenario{
		ID:          model.BaseScenarioID,
		Name:        "Base Case",
		Description: "Current trajectory with no changes",
		IsBase:      true,
		Changes:     []model.PlannedChange{},
		Color:       ScenarioColor(0),
	}
}

// Default returns the empty starting workspace.
func Default() Workspace {
	return Workspace{
		Inputs: model.FinancialInputs{
			Company: model.CompanyProfile{Name: "My Company", Industry: "Technology", Stage: model.StageSeed},
			Cash:    model.CashPosition{CurrentBalance: 500000},
			Revenue: []model.RevenueStream{},
			Costs:   []model.CostCategory{},
			Team:    []model.TeamMember{},
		},
		Scenarios:        []model.Scenario{baseScenario()},
		ActiveScenarioID: model.BaseScenarioID,
		ProjectionMonths: engine.DefaultProjectionMonths,
	}
}

// Sample returns a seed-stage SaaS company with four scenarios.
func Sample() Workspace {
	in := model.FinancialInputs{
		Company: model.CompanyProfile{Name: "TechStartup Inc.", Industry: "SaaS", Stage: model.StageSeed},
		Cash:    model.CashPosition{CurrentBalance: 850000},
		Revenue: []model.RevenueStream{
			{ID: NewID(), Name: "MRR - Subscriptions", Kind: model.RevenueRecurring, Amount: 45000, GrowthRate: 0.08},
			{ID: NewID(), Name: "Enterprise Contract - Acme Corp", Kind: model.RevenueContract, Amount: 8000,
				StartMonth: model.Month(0), EndMonth: model.Month(11)},
		},
		Costs: []model.CostCategory{
			{ID: NewID(), Name: "Office & Operations", Type: model.CostOperations, Amount: 8500, IsFixed: true},
			{ID: NewID(), Name: "Cloud Infrastructure", Type: model.CostTools, Amount: 12000},
			{ID: NewID(), Name: "Marketing & Ads", Type: model.CostMarketing, Amount: 15000},
			{ID: NewID(), Name: "Software & Tools", Type: model.CostTools, Amount: 3500, IsFixed: true},
			{ID: NewID(), Name: "Professional Services", Type: model.CostOther, Amount: 5000, IsFixed: true},
		},
		Team: []model.TeamMember{
			{ID: NewID(), Role: "CEO / Founder", Salary: 12000},
			{ID: NewID(), Role: "CTO / Co-founder", Salary: 12000},
			{ID: NewID(), Role: "Senior Engineer", Salary: 15000},
			{ID: NewID(), Role: "Full Stack Engineer", Salary: 13000},
			{ID: NewID(), Role: "Product Designer", Salary: 11000},
			{ID: NewID(), Role: "Marketing Lead", Salary: 10000},
		},
	}

	scenarios := []model.Scenario{
		baseScenario(),
		{
			ID:          "growth",
			Name:        "Growth Mode",
			Description: "Hire 2 engineers, increase marketing",
			Changes: []model.PlannedChange{
				{ID: NewID(), Kind: model.ChangeHire, Description: "Senior Backend Engineer", Amount: 14000, Month: 2, Recurring: true},
				{ID: NewID(), Kind: model.ChangeHire, Description: "Frontend Engineer", Amount: 12000, Month: 3, Recurring: true},
				{ID: NewID(), Kind: model.ChangeCost, Description: "Increase marketing budget", Amount: 10000, Month: 2, Recurring: true},
			},
			Color: ScenarioColor(1),
		},
		{
			ID:          "survival",
			Name:        "Survival Mode",
			Description: "Cut costs by 25% across the board",
			Changes: []model.PlannedChange{
				{ID: NewID(), Kind: model.ChangeCost, Description: "Reduce marketing spend", Amount: -10000, Month: 1, Recurring: true},
				{ID: NewID(), Kind: model.ChangeCost, Description: "Cut operations costs", Amount: -5000, Month: 1, Recurring: true},
			},
			Color: ScenarioColor(2),
		},
		{
			ID:          "client-loss",
			Name:        "Lose Big Client",
			Description: "What if Acme Corp cancels early?",
			Changes: []model.PlannedChange{
				{ID: NewID(), Kind: model.ChangeRevenue, Description: "Acme Corp cancellation", Amount: -8000, Month: 3, Recurring: true},
			},
			Color: ScenarioColor(3),
		},
	}

	return Workspace{
		Inputs:           in,
		Scenarios:        scenarios,
		ActiveScenarioID: model.BaseScenarioID,
		ProjectionMonths: engine.DefaultProjectionMonths,
	}
}
