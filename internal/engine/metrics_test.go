package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runwise/internal/model"
)

func TestCalculateMetrics_ProfitableBase(t *testing.T) {
	in := inputsWith(850000, []model.RevenueStream{recurring(45000, 0.08)}, 44000)
	m := CalculateMetrics(in, nil)

	assert.Equal(t, 850000.0, m.CurrentCash)
	assert.Equal(t, 45000.0, m.MonthlyRevenue)
	assert.Equal(t, 44000.0, m.MonthlyCosts)
	assert.Equal(t, -1000.0, m.MonthlyBurn)
	assert.Nil(t, m.Runway)
	require.NotNil(t, m.BreakEvenMonth)
	assert.Equal(t, 0, *m.BreakEvenMonth)
	assert.Equal(t, 10, m.RiskScore, "only the single-stream penalty applies")
	assert.Equal(t, model.RiskLow, m.RiskLevel)
}

func TestCalculateMetrics_LongRunway(t *testing.T) {
	in := inputsWith(850000, []model.RevenueStream{recurring(45000, 0.08)}, 60000)
	m := CalculateMetrics(in, nil)

	assert.Equal(t, 15000.0, m.MonthlyBurn)
	require.NotNil(t, m.Runway)
	assert.InDelta(t, 56.67, *m.Runway, 0.01)
	assert.Equal(t, 10, m.RiskScore)
	assert.Equal(t, model.RiskLow, m.RiskLevel)

	// 45000 * 1.08^4 = 61222 covers the flat 60000.
	require.NotNil(t, m.BreakEvenMonth)
	assert.Equal(t, 4, *m.BreakEvenMonth)
}

func TestCalculateMetrics_CriticalRunway(t *testing.T) {
	in := inputsWith(50000, nil, 20000)
	m := CalculateMetrics(in, nil)

	require.NotNil(t, m.Runway)
	assert.InDelta(t, 2.5, *m.Runway, 1e-9)
	assert.Nil(t, m.BreakEvenMonth)
	// runway < 3 (+50), burn ratio 0.4 (+25), no revenue (+15)
	assert.Equal(t, 90, m.RiskScore)
	assert.Equal(t, model.RiskCritical, m.RiskLevel)

	projections := GenerateProjectionsFrom(testAnchor, in, nil, 24)
	zero := FindZeroCashMonth(projections)
	require.NotNil(t, zero)
	assert.Equal(t, 3, *zero, "month 2 still holds 10000; the balance turns negative entering month 3")
	assert.Equal(t, 10000.0, projections[2].CashBalance)
}

func TestCalculateMetrics_RunwayNilWhenNotBurning(t *testing.T) {
	cases := []model.FinancialInputs{
		inputsWith(1000, []model.RevenueStream{recurring(500, 0)}, 500),
		inputsWith(1000, []model.RevenueStream{recurring(900, 0)}, 100),
		inputsWith(0, nil),
	}
	for _, in := range cases {
		m := CalculateMetrics(in, nil)
		require.LessOrEqual(t, m.MonthlyBurn, 0.0)
		assert.Nil(t, m.Runway)
	}
}

func TestCalculateMetrics_RiskBuckets(t *testing.T) {
	two := []model.RevenueStream{
		{ID: "a", Kind: model.RevenueContract, Amount: 500},
		{ID: "b", Kind: model.RevenueContract, Amount: 500},
	}

	tests := []struct {
		name  string
		cash  float64
		costs float64
		want  int
	}{
		{"runway under 6", 100000, 1000 + 100000/5.0, 35 + 15},
		{"runway under 9", 100000, 1000 + 100000/8.0, 20 + 10},
		{"runway under 12", 100000, 1000 + 100000/11.0, 10},
		{"runway 12 or more", 100000, 1000 + 100000/13.0, 0},
		{"runway under 3 with heavy burn", 100000, 1000 + 40000, 50 + 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := inputsWith(tt.cash, two, tt.costs)
			assert.Equal(t, tt.want, CalculateMetrics(in, nil).RiskScore)
		})
	}
}

func TestCalculateMetrics_ScoreBounded(t *testing.T) {
	ins := []model.FinancialInputs{
		inputsWith(1, nil, 1_000_000),
		inputsWith(0, nil, 10),
		inputsWith(-500, []model.RevenueStream{recurring(1, 0)}, 10),
		inputsWith(1e9, []model.RevenueStream{recurring(1e6, 0.5)}, 1),
	}
	for _, in := range ins {
		m := CalculateMetrics(in, nil)
		assert.GreaterOrEqual(t, m.RiskScore, 0)
		assert.LessOrEqual(t, m.RiskScore, 100)
		assert.Equal(t, RiskLevelFor(m.RiskScore), m.RiskLevel)
	}
}

func TestRiskLevelFor_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  model.RiskLevel
	}{
		{0, model.RiskLow},
		{24, model.RiskLow},
		{25, model.RiskMedium},
		{49, model.RiskMedium},
		{50, model.RiskHigh},
		{74, model.RiskHigh},
		{75, model.RiskCritical},
		{100, model.RiskCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskLevelFor(tt.score), "score %d", tt.score)
	}
}

func TestCalculateMetrics_BreakEvenUsesChanges(t *testing.T) {
	in := inputsWith(100000, []model.RevenueStream{recurring(5000, 0)}, 10000)
	changes := []model.PlannedChange{
		{ID: "deal", Kind: model.ChangeRevenue, Amount: 6000, Month: 7, Recurring: true},
	}

	assert.Nil(t, CalculateMetrics(in, nil).BreakEvenMonth)

	m := CalculateMetrics(in, changes)
	require.NotNil(t, m.BreakEvenMonth)
	assert.Equal(t, 7, *m.BreakEvenMonth)
	assert.Equal(t, 5000.0, m.MonthlyBurn, "month-0 snapshot ignores future changes")
}
