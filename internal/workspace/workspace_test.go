package workspace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runwise/internal/engine"
	"github.com/theirongolddev/runwise/internal/model"
)

func TestDefault(t *testing.T) {
	w := Default()
	assert.Equal(t, 500000.0, w.Inputs.Cash.CurrentBalance)
	require.Len(t, w.Scenarios, 1)
	assert.True(t, w.Scenarios[0].IsBase)
	assert.Equal(t, model.BaseScenarioID, w.ActiveScenarioID)
	assert.Equal(t, engine.DefaultProjectionMonths, w.Months())
	assert.NoError(t, w.Validate())
}

func TestSample(t *testing.T) {
	w := Sample()
	require.NoError(t, w.Validate())
	assert.Equal(t, "TechStartup Inc.", w.Inputs.Company.Name)
	assert.Len(t, w.Inputs.Revenue, 2)
	assert.Len(t, w.Inputs.Costs, 5)
	assert.Len(t, w.Inputs.Team, 6)

	ids := make([]string, 0, len(w.Scenarios))
	for _, s := range w.Scenarios {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"base", "growth", "survival", "client-loss"}, ids)

	// 45000 + 8000 revenue against 44000 costs and 73000 payroll.
	m := engine.CalculateMetrics(w.Inputs, nil)
	assert.InDelta(t, 53000, m.MonthlyRevenue, 1e-9)
	assert.InDelta(t, 117000, m.MonthlyCosts, 1e-9)
	assert.InDelta(t, 64000, m.MonthlyBurn, 1e-9)
}

func TestCommandsDoNotMutateReceiver(t *testing.T) {
	w := Sample()
	before := w.Clone()

	next, err := w.AddRevenue(model.RevenueStream{Name: "Services", Kind: model.RevenueOneTime, Amount: 5000})
	require.NoError(t, err)
	next, err = next.RemoveCost(w.Inputs.Costs[0].ID)
	require.NoError(t, err)
	next, err = next.AddChange("growth", model.PlannedChange{Kind: model.ChangeFire, Amount: 10000, Month: 4})
	require.NoError(t, err)
	next = next.SetCash(model.CashPosition{CurrentBalance: 1})

	assert.Equal(t, before, w)
	assert.Len(t, next.Inputs.Revenue, 3)
	assert.Len(t, next.Inputs.Costs, 4)
	growth, _ := next.Scenario("growth")
	assert.Len(t, growth.Changes, 4)
	assert.Equal(t, 1.0, next.Inputs.Cash.CurrentBalance)
}

func TestAddAssignsIDs(t *testing.T) {
	w, err := Default().AddCost(model.CostCategory{Name: "Rent", Type: model.CostRent, Amount: 2000})
	require.NoError(t, err)
	require.Len(t, w.Inputs.Costs, 1)
	assert.Len(t, w.Inputs.Costs[0].ID, 8)

	_, err = w.AddCost(model.CostCategory{ID: w.Inputs.Costs[0].ID, Name: "Again"})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestUpdateKeepsID(t *testing.T) {
	w, err := Default().AddTeamMember(model.TeamMember{ID: "eng", Role: "Engineer", Salary: 9000})
	require.NoError(t, err)

	w, err = w.UpdateTeamMember("eng", func(m *model.TeamMember) {
		m.ID = "changed"
		m.Salary = 9500
	})
	require.NoError(t, err)
	assert.Equal(t, "eng", w.Inputs.Team[0].ID)
	assert.Equal(t, 9500.0, w.Inputs.Team[0].Salary)

	_, err = w.UpdateTeamMember("missing", func(*model.TeamMember) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveMissing(t *testing.T) {
	w := Default()
	_, err := w.RemoveRevenue("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = w.RemoveTeamMember("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = w.RemoveChange(model.BaseScenarioID, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScenarioLifecycle(t *testing.T) {
	w := Default()
	s := NewScenario("Hiring", "Two engineers", len(w.Scenarios))
	assert.Equal(t, "#10b981", s.Color)

	w, err := w.AddScenario(s)
	require.NoError(t, err)
	w, err = w.SetActiveScenario(s.ID)
	require.NoError(t, err)
	active, ok := w.ActiveScenario()
	require.True(t, ok)
	assert.Equal(t, s.ID, active.ID)

	w, err = w.RemoveScenario(s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BaseScenarioID, w.ActiveScenarioID)

	_, err = w.RemoveScenario(model.BaseScenarioID)
	assert.ErrorIs(t, err, ErrBaseScenario)

	_, err = w.SetActiveScenario("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActiveScenarioFallsBack(t *testing.T) {
	w := Sample()
	w.ActiveScenarioID = "stale"
	s, ok := w.ActiveScenario()
	require.True(t, ok)
	assert.Equal(t, model.BaseScenarioID, s.ID)

	_, ok = Workspace{}.ActiveScenario()
	assert.False(t, ok)
}

func TestAddChangeRejectsUnknownKind(t *testing.T) {
	_, err := Sample().AddChange("growth", model.PlannedChange{Kind: "bonus", Amount: 1})
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestBaseScenarioHasNoChanges(t *testing.T) {
	w := Default()
	_, err := w.AddChange(model.BaseScenarioID, model.PlannedChange{Kind: model.ChangeHire, Amount: 8000, Recurring: true})
	assert.ErrorIs(t, err, ErrBaseScenario)

	base, ok := w.Scenario(model.BaseScenarioID)
	require.True(t, ok)
	assert.Empty(t, base.Changes)

	w.Scenarios[0].Changes = []model.PlannedChange{{ID: "c1", Kind: model.ChangeHire, Amount: 8000}}
	assert.ErrorIs(t, w.Validate(), ErrBaseScenario)
}

func TestSetProjectionMonths(t *testing.T) {
	w, err := Default().SetProjectionMonths(36)
	require.NoError(t, err)
	assert.Equal(t, 36, w.Months())

	_, err = w.SetProjectionMonths(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestScenarioColorCycles(t *testing.T) {
	assert.Equal(t, ScenarioColor(0), ScenarioColor(8))
	assert.Equal(t, "#84cc16", ScenarioColor(7))
}

func TestValidate(t *testing.T) {
	w := Default()
	w.Inputs.Revenue = []model.RevenueStream{
		{ID: "a", Kind: model.RevenueRecurring, Amount: 100, StartMonth: model.Month(5), EndMonth: model.Month(2)},
		{ID: "a", Kind: "barter", Amount: -1},
	}
	w.Inputs.Team = []model.TeamMember{{ID: "t", Salary: -5}}
	w.Scenarios = append(w.Scenarios, model.Scenario{ID: model.BaseScenarioID})

	err := w.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))
	assert.True(t, errors.Is(err, ErrInvalidKind))
	assert.True(t, errors.Is(err, ErrInvalidAmount))
}
