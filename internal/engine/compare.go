package engine

import (
	"math"
	"time"

	"github.com/theirongolddev/runwise/internal/model"
)

// UnconstrainedHires is returned by AffordableHires when the company is
// not burning cash.
const UnconstrainedHires = 99

// DefaultMinRunwayMonths is the runway floor AffordableHires protects by default.
const DefaultMinRunwayMonths = 6

// CompareScenarios evaluates every scenario independently against the same
// inputs. Output order matches input order.
func CompareScenarios(in model.FinancialInputs, scenarios []model.Scenario, months int) []model.ScenarioComparison {
	return CompareScenariosFrom(time.Now(), in, scenarios, months)
}

// CompareScenariosFrom is CompareScenarios with an explicit label anchor.
func CompareScenariosFrom(anchor time.Time, in model.FinancialInputs, scenarios []model.Scenario, months int) []model.ScenarioComparison {
	out := make([]model.ScenarioComparison, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, model.ScenarioComparison{
			ScenarioID:  s.ID,
			Name:        s.Name,
			Color:       s.Color,
			Metrics:     CalculateMetrics(in, s.Changes),
			Projections: GenerateProjectionsFrom(anchor, in, s.Changes, months),
		})
	}
	return out
}

// FindZeroCashMonth returns the month of the first projection whose
// unclamped balance is negative, or nil if cash never runs out.
func FindZeroCashMonth(projections []model.MonthlyProjection) *int {
	for _, p := range projections {
		if p.IsNegative {
			m := p.Month
			return &m
		}
	}
	return nil
}

// PayrollPercentage is team salary as a fraction of salary plus flat costs.
func PayrollPercentage(in model.FinancialInputs) float64 {
	var payroll, costs float64
	for _, m := range in.Team {
		payroll += m.Salary
	}
	for _, c := range in.Costs {
		costs += c.Amount
	}
	total := payroll + costs
	if total == 0 {
		return 0
	}
	return payroll / total
}

// AffordableHires returns how many hires at averageSalary keep runway at or
// above minRunwayMonths. Profitable companies get UnconstrainedHires.
func AffordableHires(in model.FinancialInputs, averageSalary float64, minRunwayMonths float64) int {
	current := CalculateMetrics(in, nil)
	if current.Runway == nil {
		return UnconstrainedHires
	}
	if averageSalary <= 0 || minRunwayMonths <= 0 {
		return 0
	}

	maxBurn := in.Cash.CurrentBalance / minRunwayMonths
	hires := math.Floor((maxBurn - current.MonthlyBurn) / averageSalary)
	if hires <= 0 || math.IsNaN(hires) {
		return 0
	}
	if hires > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(hires)
}
