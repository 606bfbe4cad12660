package model

// MonthlyProjection is one month of a cash-flow projection.
//
// CashBalance is clamped at zero for display; IsNegative keeps the sign of
// the unclamped balance. Runway is the dynamic runway from that month's
// balance and burn, nil while not burning.
type MonthlyProjection struct {
	Month       int      `json:"month"`
	MonthLabel  string   `json:"monthLabel"`
	Revenue     float64  `json:"revenue"`
	Costs       float64  `json:"costs"`
	NetBurn     float64  `json:"netBurn"`
	CashBalance float64  `json:"cashBalance"`
	Runway      *float64 `json:"runway"`
	IsNegative  bool     `json:"isNegative"`
}

// RiskLevel buckets a risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// FinancialMetrics is the month-0 snapshot of a scenario.
//
// Runway here is static: current balance over month-0 burn. It is not the
// same quantity as MonthlyProjection.Runway.
type FinancialMetrics struct {
	CurrentCash    float64   `json:"currentCash"`
	MonthlyRevenue float64   `json:"monthlyRevenue"`
	MonthlyCosts   float64   `json:"monthlyCosts"`
	MonthlyBurn    float64   `json:"monthlyBurn"`
	Runway         *float64  `json:"runway"`
	BreakEvenMonth *int      `json:"breakEvenMonth"`
	RiskScore      int       `json:"riskScore"`
	RiskLevel      RiskLevel `json:"riskLevel"`
}

// InsightType is the severity tag of an insight.
type InsightType string

const (
	InsightDanger  InsightType = "danger"
	InsightWarning InsightType = "warning"
	InsightSuccess InsightType = "success"
	InsightInfo    InsightType = "info"
)

// Insight is one human-readable observation about a scenario.
type Insight struct {
	ID          string      `json:"id"`
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Metric      string      `json:"metric,omitempty"`
}

// ScenarioComparison packages one scenario's results for side-by-side display.
type ScenarioComparison struct {
	ScenarioID  string              `json:"scenarioId"`
	Name        string              `json:"name"`
	Color       string              `json:"color"`
	Metrics     FinancialMetrics    `json:"metrics"`
	Projections []MonthlyProjection `json:"projections"`
}
