package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runwise/internal/model"
)

var testAnchor = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func inputsWith(cash float64, revenue []model.RevenueStream, costs ...float64) model.FinancialInputs {
	in := model.FinancialInputs{
		Cash:    model.CashPosition{CurrentBalance: cash},
		Revenue: revenue,
	}
	for i, c := range costs {
		in.Costs = append(in.Costs, model.CostCategory{
			ID:     string(rune('a' + i)),
			Name:   "cost",
			Type:   model.CostOperations,
			Amount: c,
		})
	}
	return in
}

func recurring(amount, growth float64) model.RevenueStream {
	return model.RevenueStream{ID: "mrr", Name: "MRR", Kind: model.RevenueRecurring, Amount: amount, GrowthRate: growth}
}

func TestMonthlyRevenue_Kinds(t *testing.T) {
	in := model.FinancialInputs{Revenue: []model.RevenueStream{
		{ID: "r", Kind: model.RevenueRecurring, Amount: 1000, GrowthRate: 0.1, StartMonth: model.Month(2)},
		{ID: "o", Kind: model.RevenueOneTime, Amount: 500, StartMonth: model.Month(1)},
		{ID: "c", Kind: model.RevenueContract, Amount: 200, GrowthRate: 0.5, EndMonth: model.Month(3)},
	}}

	tests := []struct {
		month int
		want  float64
	}{
		{0, 200},
		{1, 700},
		{2, 1200},
		{3, 1300},
		{4, 1210},
		{10, 1000 * 2.14358881},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, MonthlyRevenue(in, tt.month, nil), 1e-6, "month %d", tt.month)
	}
}

func TestMonthlyRevenue_Changes(t *testing.T) {
	in := inputsWith(0, []model.RevenueStream{recurring(1000, 0)})
	changes := []model.PlannedChange{
		{ID: "lost", Kind: model.ChangeRevenue, Amount: -300, Month: 2, Recurring: true},
		{ID: "bump", Kind: model.ChangeRevenue, Amount: 50, Month: 1, Recurring: false},
		{ID: "grant", Kind: model.ChangeOneTimeIncome, Amount: 10000, Month: 3},
		{ID: "hire", Kind: model.ChangeHire, Amount: 99999, Month: 0},
	}

	assert.Equal(t, 1000.0, MonthlyRevenue(in, 0, changes))
	assert.Equal(t, 1050.0, MonthlyRevenue(in, 1, changes))
	assert.Equal(t, 700.0, MonthlyRevenue(in, 2, changes))
	assert.Equal(t, 10700.0, MonthlyRevenue(in, 3, changes))
	assert.Equal(t, 700.0, MonthlyRevenue(in, 4, changes))
}

func TestMonthlyRevenue_FlooredAtZero(t *testing.T) {
	in := inputsWith(0, []model.RevenueStream{recurring(1000, 0)})
	changes := []model.PlannedChange{{ID: "x", Kind: model.ChangeRevenue, Amount: -5000, Month: 0, Recurring: true}}

	assert.Equal(t, 0.0, MonthlyRevenue(in, 0, changes))
}

func TestMonthlyCosts_TeamAndChanges(t *testing.T) {
	in := inputsWith(0, nil, 10000, 2000)
	in.Team = []model.TeamMember{
		{ID: "ceo", Salary: 8000, StartMonth: 0},
		{ID: "eng", Salary: 7000, StartMonth: 2},
	}
	changes := []model.PlannedChange{
		{ID: "h", Kind: model.ChangeHire, Amount: 5000, Month: 1, Recurring: true},
		{ID: "f", Kind: model.ChangeFire, Amount: 8000, Month: 4},
		{ID: "c1", Kind: model.ChangeCost, Amount: -1000, Month: 3, Recurring: true},
		{ID: "c2", Kind: model.ChangeCost, Amount: 400, Month: 2, Recurring: false},
		{ID: "e", Kind: model.ChangeOneTimeExpense, Amount: 3000, Month: 5},
		{ID: "i", Kind: model.ChangeOneTimeIncome, Amount: 99999, Month: 5},
	}

	want := []float64{
		20000, // flat + ceo
		25000, // + hire
		32400, // + eng + one-off cost
		31000, // - recurring cut
		23000, // - fire
		26000, // + one-time expense
		23000,
	}
	for month, w := range want {
		assert.Equal(t, w, MonthlyCosts(in, month, changes), "month %d", month)
	}
}

func TestMonthlyCosts_FlooredAtZero(t *testing.T) {
	in := inputsWith(0, nil, 1000)
	changes := []model.PlannedChange{{ID: "f", Kind: model.ChangeFire, Amount: 5000, Month: 0}}

	assert.Equal(t, 0.0, MonthlyCosts(in, 0, changes))
}

func TestNetBurn(t *testing.T) {
	assert.Equal(t, 15000.0, NetBurn(45000, 60000))
	assert.Equal(t, -1000.0, NetBurn(45000, 44000))
}

func TestGenerateProjections_EmptyHorizon(t *testing.T) {
	in := inputsWith(1000, nil, 10)

	assert.Empty(t, GenerateProjectionsFrom(testAnchor, in, nil, 0))
	assert.Empty(t, GenerateProjectionsFrom(testAnchor, in, nil, -3))
}

func TestGenerateProjections_AccumulatesFromMonthOne(t *testing.T) {
	in := inputsWith(50000, nil, 20000)
	got := GenerateProjectionsFrom(testAnchor, in, nil, 5)
	require.Len(t, got, 5)

	assert.Equal(t, "Jan 2026", got[0].MonthLabel)
	assert.Equal(t, "May 2026", got[4].MonthLabel)

	wantCash := []float64{50000, 30000, 10000, 0, 0}
	wantNeg := []bool{false, false, false, true, true}
	for i, p := range got {
		assert.Equal(t, i, p.Month)
		assert.Equal(t, 20000.0, p.NetBurn)
		assert.Equal(t, wantCash[i], p.CashBalance, "month %d cash", i)
		assert.Equal(t, wantNeg[i], p.IsNegative, "month %d negative", i)
		require.NotNil(t, p.Runway)
	}
	assert.InDelta(t, 2.5, *got[0].Runway, 1e-9)
	assert.InDelta(t, 0.5, *got[2].Runway, 1e-9)
	assert.Equal(t, 0.0, *got[3].Runway, "runway is clamped at zero once cash is gone")
}

func TestGenerateProjections_ProfitableHasNoRunway(t *testing.T) {
	in := inputsWith(850000, []model.RevenueStream{recurring(45000, 0.08)}, 44000)
	got := GenerateProjectionsFrom(testAnchor, in, nil, 12)

	for _, p := range got {
		assert.Nil(t, p.Runway)
		assert.False(t, p.IsNegative)
	}
	assert.Greater(t, got[11].CashBalance, got[1].CashBalance)
}

func TestGenerateProjections_MonthZeroInvariant(t *testing.T) {
	in := inputsWith(123456, []model.RevenueStream{recurring(1000, 0.02)}, 90000)
	changes := []model.PlannedChange{{ID: "x", Kind: model.ChangeOneTimeExpense, Amount: 50000, Month: 0}}

	for _, n := range []int{1, 6, 60} {
		got := GenerateProjectionsFrom(testAnchor, in, changes, n)
		require.Len(t, got, n)
		assert.Equal(t, 123456.0, got[0].CashBalance)
	}
}

func TestGenerateProjections_NegativeStartBalance(t *testing.T) {
	in := inputsWith(-100, nil, 10)
	got := GenerateProjectionsFrom(testAnchor, in, nil, 2)

	assert.Equal(t, 0.0, got[0].CashBalance)
	assert.True(t, got[0].IsNegative)
}

func TestGenerateProjections_ClampedAndIdempotent(t *testing.T) {
	in := inputsWith(20000, []model.RevenueStream{recurring(3000, 0.05)}, 25000)
	in.Team = []model.TeamMember{{ID: "a", Salary: 6000, StartMonth: 3}}
	changes := []model.PlannedChange{
		{ID: "h", Kind: model.ChangeHire, Amount: 9000, Month: 2, Recurring: true},
	}

	first := GenerateProjectionsFrom(testAnchor, in, changes, 36)
	second := GenerateProjectionsFrom(testAnchor, in, changes, 36)
	assert.Equal(t, first, second)

	for _, p := range first {
		assert.GreaterOrEqual(t, p.CashBalance, 0.0)
	}
	assert.NotNil(t, FindZeroCashMonth(first))
}

func TestGenerateProjections_DoesNotMutateInputs(t *testing.T) {
	in := inputsWith(1000, []model.RevenueStream{recurring(10, 0.1)}, 5)
	snapshot := in.Clone()
	changes := []model.PlannedChange{{ID: "x", Kind: model.ChangeCost, Amount: 1, Month: 1, Recurring: true}}

	_ = GenerateProjectionsFrom(testAnchor, in, changes, 24)
	_ = CalculateMetrics(in, changes)

	assert.Equal(t, snapshot, in.Clone())
	assert.Len(t, changes, 1)
}
