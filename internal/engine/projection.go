// Package engine turns financial inputs and planned changes into monthly
// projections, summary metrics, scenario comparisons, and insights.
//
// Every function here is pure: inputs are read, never mutated, and results
// are freshly allocated on each call.
package engine

import (
	"math"
	"time"

	"github.com/theirongolddev/runwise/internal/format"
	"github.com/theirongolddev/runwise/internal/model"
)

// DefaultProjectionMonths is the horizon used when callers have no preference.
const DefaultProjectionMonths = 24

// MonthlyRevenue returns total revenue in the given month, floored at zero.
func MonthlyRevenue(in model.FinancialInputs, month int, changes []model.PlannedChange) float64 {
	var total float64

	for _, stream := range in.Revenue {
		if !stream.ActiveAt(month) {
			continue
		}
		switch stream.Kind {
		case model.RevenueRecurring:
			// Growth compounds from the stream's own start.
			monthsActive := month - stream.Start()
			total += stream.Amount * math.Pow(1+stream.GrowthRate, float64(monthsActive))
		case model.RevenueOneTime:
			if month == stream.Start() {
				total += stream.Amount
			}
		case model.RevenueContract:
			total += stream.Amount
		}
	}

	for _, c := range changes {
		switch c.Kind {
		case model.ChangeRevenue:
			if month >= c.Month && (c.Recurring || month == c.Month) {
				total += c.Amount
			}
		case model.ChangeOneTimeIncome:
			if month == c.Month {
				total += c.Amount
			}
		case model.ChangeHire, model.ChangeFire, model.ChangeCost, model.ChangeOneTimeExpense:
			// cost side
		}
	}

	return math.Max(0, total)
}

// MonthlyCosts returns total costs in the given month, floored at zero.
// Base cost categories are flat; only planned changes move them.
func MonthlyCosts(in model.FinancialInputs, month int, changes []model.PlannedChange) float64 {
	var total float64

	for _, cost := range in.Costs {
		total += cost.Amount
	}

	for _, member := range in.Team {
		if month >= member.StartMonth {
			total += member.Salary
		}
	}

	for _, c := range changes {
		switch c.Kind {
		case model.ChangeHire:
			if month >= c.Month {
				total += c.Amount
			}
		case model.ChangeFire:
			if month >= c.Month {
				total -= c.Amount
			}
		case model.ChangeCost:
			if month >= c.Month && (c.Recurring || month == c.Month) {
				total += c.Amount
			}
		case model.ChangeOneTimeExpense:
			if month == c.Month {
				total += c.Amount
			}
		case model.ChangeRevenue, model.ChangeOneTimeIncome:
			// revenue side
		}
	}

	return math.Max(0, total)
}

// NetBurn is costs minus revenue; positive means cash is being consumed.
func NetBurn(revenue, costs float64) float64 {
	return costs - revenue
}

// GenerateProjections projects months of cash flow labeled from the
// current calendar month.
func GenerateProjections(in model.FinancialInputs, changes []model.PlannedChange, months int) []model.MonthlyProjection {
	return GenerateProjectionsFrom(time.Now(), in, changes, months)
}

// GenerateProjectionsFrom projects months of cash flow with labels anchored
// at the month containing anchor.
//
// Month 0 carries the starting balance untouched; burn is first subtracted
// entering month 1.
func GenerateProjectionsFrom(anchor time.Time, in model.FinancialInputs, changes []model.PlannedChange, months int) []model.MonthlyProjection {
	if months <= 0 {
		return []model.MonthlyProjection{}
	}

	projections := make([]model.MonthlyProjection, 0, months)
	cash := in.Cash.CurrentBalance

	for month := 0; month < months; month++ {
		revenue := MonthlyRevenue(in, month, changes)
		costs := MonthlyCosts(in, month, changes)
		burn := NetBurn(revenue, costs)

		if month > 0 {
			cash -= burn
		}

		var runway *float64
		if burn > 0 {
			r := math.Max(0, cash/burn)
			runway = &r
		}

		projections = append(projections, model.MonthlyProjection{
			Month:       month,
			MonthLabel:  format.MonthLabel(anchor, month),
			Revenue:     revenue,
			Costs:       costs,
			NetBurn:     burn,
			CashBalance: math.Max(0, cash),
			Runway:      runway,
			IsNegative:  cash < 0,
		})
	}

	return projections
}
