package engine

import (
	"fmt"
	"math"

	"github.com/theirongolddev/runwise/internal/format"
	"github.com/theirongolddev/runwise/internal/model"
)

// insightList hands out sequential ids in display order.
type insightList struct {
	items []model.Insight
}

func (l *insightList) add(typ model.InsightType, title, description, metric string) {
	l.items = append(l.items, model.Insight{
		ID:          fmt.Sprintf("insight-%d", len(l.items)),
		Type:        typ,
		Title:       title,
		Description: description,
		Metric:      metric,
	})
}

// GenerateInsights evaluates the insight rules in a fixed order. Rules are
// independent; any number of them may fire.
func GenerateInsights(in model.FinancialInputs, m model.FinancialMetrics, projections []model.MonthlyProjection) []model.Insight {
	l := &insightList{items: []model.Insight{}}

	runwayInsight(l, m)
	payrollInsight(l, in)
	breakEvenInsight(l, m)
	cashExhaustionInsight(l, projections)
	revenueShapeInsight(l, in, m)
	burnTrendInsight(l, projections)
	burnMultipleInsight(l, m)

	return l.items
}

func runwayInsight(l *insightList, m model.FinancialMetrics) {
	if m.Runway == nil {
		l.add(model.InsightSuccess, "Profitable operations",
			"Your revenue exceeds costs. You have unlimited runway!", "∞")
		return
	}

	months := format.Months(m.Runway)
	switch r := *m.Runway; {
	case r < 3:
		l.add(model.InsightDanger, "Critical: Less than 3 months runway",
			fmt.Sprintf("At current burn rate, you have %s of runway. Immediate action required.", months),
			months)
	case r < 6:
		l.add(model.InsightWarning, "Low runway warning",
			fmt.Sprintf("You have %s of runway. Consider reducing burn or raising capital.", months),
			months)
	case r >= 18:
		l.add(model.InsightSuccess, "Healthy runway",
			fmt.Sprintf("With %s of runway, you have time to execute your strategy.", months),
			months)
	}
}

func payrollInsight(l *insightList, in model.FinancialInputs) {
	pct := PayrollPercentage(in)
	switch {
	case pct > 0.7:
		l.add(model.InsightWarning, "High payroll concentration",
			fmt.Sprintf("Payroll is %s of your total costs. This limits flexibility.", format.Percent(pct)),
			format.Percent(pct))
	case pct > 0.5:
		l.add(model.InsightInfo, "Payroll insight",
			fmt.Sprintf("Payroll represents %s of your burn. Typical for tech companies.", format.Percent(pct)),
			format.Percent(pct))
	}
}

func breakEvenInsight(l *insightList, m model.FinancialMetrics) {
	if m.BreakEvenMonth == nil {
		if m.MonthlyBurn > 0 {
			l.add(model.InsightInfo, "No break-even in sight",
				"At current trajectory, break-even is beyond 5 years. Growth acceleration needed.", "")
		}
		return
	}

	month := *m.BreakEvenMonth
	metric := fmt.Sprintf("%d mo", month)
	switch {
	case month <= 6:
		l.add(model.InsightSuccess, "Break-even on the horizon",
			fmt.Sprintf("At current growth, you'll break even in %d months.", month), metric)
	case month <= 18:
		l.add(model.InsightInfo, "Path to profitability",
			fmt.Sprintf("Break-even projected in %d months at current growth rate.", month), metric)
	}
}

func cashExhaustionInsight(l *insightList, projections []model.MonthlyProjection) {
	zero := FindZeroCashMonth(projections)
	if zero == nil {
		return
	}

	label := ""
	for _, p := range projections {
		if p.Month == *zero {
			label = p.MonthLabel
			break
		}
	}
	l.add(model.InsightDanger, "Cash exhaustion date",
		fmt.Sprintf("Your cash reaches zero in %s. Plan accordingly.", label), label)
}

func revenueShapeInsight(l *insightList, in model.FinancialInputs, m model.FinancialMetrics) {
	switch {
	case m.MonthlyRevenue == 0:
		l.add(model.InsightInfo, "Pre-revenue stage",
			"Focus on reaching first revenue milestone to extend runway options.", "")
	case len(in.Revenue) == 1:
		l.add(model.InsightWarning, "Revenue concentration risk",
			"You have a single revenue source. Consider diversifying.", "")
	}
}

// burnTrendInsight compares month 3 against month 0 and needs at least four
// months of projections.
func burnTrendInsight(l *insightList, projections []model.MonthlyProjection) {
	if len(projections) < 4 {
		return
	}
	first := projections[0].NetBurn
	third := projections[3].NetBurn
	if third <= first*1.2 {
		return
	}

	description := "Your burn is projected to rise from break-even over the next 3 months."
	if first != 0 {
		delta := (third - first) / math.Abs(first)
		description = fmt.Sprintf("Your burn is projected to increase %s over the next 3 months.", format.Percent(delta))
	}
	l.add(model.InsightWarning, "Burn rate increasing", description, "")
}

func burnMultipleInsight(l *insightList, m model.FinancialMetrics) {
	if m.MonthlyRevenue <= 0 {
		return
	}
	ratio := m.MonthlyCosts / m.MonthlyRevenue
	metric := format.Multiple(ratio)
	switch {
	case ratio > 3:
		l.add(model.InsightInfo, "High burn multiple",
			fmt.Sprintf("You're spending %s your revenue. Normal for early stage, monitor as you grow.", metric),
			metric)
	case ratio < 1.2 && ratio > 0:
		l.add(model.InsightSuccess, "Efficient operations",
			fmt.Sprintf("Your costs are only %s revenue. Great efficiency!", metric),
			metric)
	}
}

// GenerateRecommendations returns plain-language next steps for a scenario.
func GenerateRecommendations(in model.FinancialInputs, m model.FinancialMetrics) []string {
	recs := []string{}

	if m.Runway != nil && *m.Runway < 6 {
		recs = append(recs,
			"Consider reducing non-essential costs to extend runway",
			"Start fundraising conversations now if planning to raise",
			"Identify which costs can be cut quickly if needed",
		)
	}

	if PayrollPercentage(in) > 0.7 {
		recs = append(recs, "High payroll % limits flexibility, consider contractors for variable work")
	}

	if m.MonthlyRevenue == 0 {
		recs = append(recs, "Focus on landing first paying customers to prove market demand")
	}

	if len(in.Revenue) == 1 && m.MonthlyRevenue > 0 {
		recs = append(recs, "Diversify revenue streams to reduce concentration risk")
	}

	return recs
}
