package engine

import "github.com/theirongolddev/runwise/internal/model"

// BreakEvenHorizon is how many months CalculateMetrics scans for break-even,
// independent of the projection horizon.
const BreakEvenHorizon = 60

// CalculateMetrics computes the month-0 snapshot for a set of changes.
func CalculateMetrics(in model.FinancialInputs, changes []model.PlannedChange) model.FinancialMetrics {
	revenue := MonthlyRevenue(in, 0, changes)
	costs := MonthlyCosts(in, 0, changes)
	burn := NetBurn(revenue, costs)

	var runway *float64
	if burn > 0 {
		r := in.Cash.CurrentBalance / burn
		runway = &r
	}

	var breakEven *int
	for month := 0; month < BreakEvenHorizon; month++ {
		if MonthlyRevenue(in, month, changes) >= MonthlyCosts(in, month, changes) {
			m := month
			breakEven = &m
			break
		}
	}

	score := riskScore(in, runway, burn, revenue)

	return model.FinancialMetrics{
		CurrentCash:    in.Cash.CurrentBalance,
		MonthlyRevenue: revenue,
		MonthlyCosts:   costs,
		MonthlyBurn:    burn,
		Runway:         runway,
		BreakEvenMonth: breakEven,
		RiskScore:      score,
		RiskLevel:      RiskLevelFor(score),
	}
}

// riskScore is an additive 0-100 heuristic. Thresholds are part of the
// reporting contract and must not drift.
func riskScore(in model.FinancialInputs, runway *float64, burn, revenue float64) int {
	score := 0

	if runway != nil {
		switch r := *runway; {
		case r < 3:
			score += 50
		case r < 6:
			score += 35
		case r < 9:
			score += 20
		case r < 12:
			score += 10
		}
	}

	// A zero balance yields ±Inf or NaN here; comparisons then behave like
	// the ratio they approximate.
	burnRatio := burn / in.Cash.CurrentBalance
	switch {
	case burnRatio > 0.2:
		score += 25
	case burnRatio > 0.15:
		score += 15
	case burnRatio > 0.1:
		score += 10
	}

	if len(in.Revenue) == 1 {
		score += 10
	}

	if revenue == 0 {
		score += 15
	}

	return min(100, max(0, score))
}

// RiskLevelFor maps a risk score to its level.
func RiskLevelFor(score int) model.RiskLevel {
	switch {
	case score < 25:
		return model.RiskLow
	case score < 50:
		return model.RiskMedium
	case score < 75:
		return model.RiskHigh
	default:
		return model.RiskCritical
	}
}
