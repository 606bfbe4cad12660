// Package model defines the financial data model shared by the engine,
// the workspace commands, and the persistence layers.
package model

import "math"

// DefaultStartMonth is the month a revenue stream starts when none is given.
const DefaultStartMonth = 0

// OpenEnded is the effective end month of a revenue stream without one.
const OpenEnded = math.MaxInt

// CompanyStage is the funding stage shown on reports.
type CompanyStage string

const (
	StagePreSeed    CompanyStage = "pre-seed"
	StageSeed       CompanyStage = "seed"
	StageSeriesA    CompanyStage = "series-a"
	StageSeriesB    CompanyStage = "series-b"
	StageGrowth     CompanyStage = "growth"
	StageProfitable CompanyStage = "profitable"
)

// Valid reports whether s is a known stage.
func (s CompanyStage) Valid() bool {
	switch s {
	case StagePreSeed, StageSeed, StageSeriesA, StageSeriesB, StageGrowth, StageProfitable:
		return true
	}
	return false
}

// CompanyProfile is display-only metadata about the company.
type CompanyProfile struct {
	Name     string       `json:"name" yaml:"name"`
	Industry string       `json:"industry" yaml:"industry"`
	Stage    CompanyStage `json:"stage" yaml:"stage"`
}

// CashPosition holds the starting cash for every projection.
type CashPosition struct {
	CurrentBalance float64 `json:"currentBalance" yaml:"current_balance"`
	CreditLine     float64 `json:"creditLine" yaml:"credit_line"` // available but not drawn
}

// RevenueKind selects how a revenue stream evolves over time.
type RevenueKind string

const (
	RevenueRecurring RevenueKind = "recurring"
	RevenueOneTime   RevenueKind = "one-time"
	RevenueContract  RevenueKind = "contract"
)

// Valid reports whether k is a known revenue kind.
func (k RevenueKind) Valid() bool {
	switch k {
	case RevenueRecurring, RevenueOneTime, RevenueContract:
		return true
	}
	return false
}

// RevenueStream is one source of income.
type RevenueStream struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Kind       RevenueKind `json:"type" yaml:"type"`
	Amount     float64     `json:"amount" yaml:"amount"`         // monthly for recurring, total for one-time
	GrowthRate float64     `json:"growthRate" yaml:"growth_rate"` // monthly, 0.05 = 5%
	StartMonth *int        `json:"startMonth,omitempty" yaml:"start_month,omitempty"`
	EndMonth   *int        `json:"endMonth,omitempty" yaml:"end_month,omitempty"`
}

// Start returns the first active month, DefaultStartMonth when unset.
func (r RevenueStream) Start() int {
	if r.StartMonth == nil {
		return DefaultStartMonth
	}
	return *r.StartMonth
}

// End returns the last active month (inclusive), OpenEnded when unset.
func (r RevenueStream) End() int {
	if r.EndMonth == nil {
		return OpenEnded
	}
	return *r.EndMonth
}

// ActiveAt reports whether the stream contributes in the given month.
func (r RevenueStream) ActiveAt(month int) bool {
	return month >= r.Start() && month <= r.End()
}

// CostType tags a cost category for display.
type CostType string

const (
	CostPayroll    CostType = "payroll"
	CostOperations CostType = "operations"
	CostMarketing  CostType = "marketing"
	CostTools      CostType = "tools"
	CostRent       CostType = "rent"
	CostOther      CostType = "other"
)

// Valid reports whether t is a known cost type.
func (t CostType) Valid() bool {
	switch t {
	case CostPayroll, CostOperations, CostMarketing, CostTools, CostRent, CostOther:
		return true
	}
	return false
}

// CostCategory is a flat monthly cost line. IsFixed is informational.
type CostCategory struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Type    CostType `json:"type" yaml:"type"`
	Amount  float64  `json:"amount" yaml:"amount"`
	IsFixed bool     `json:"isFixed" yaml:"is_fixed"`
}

// TeamMember is a salaried person on payroll from StartMonth onward.
type TeamMember struct {
	ID         string  `json:"id" yaml:"id"`
	Role       string  `json:"role" yaml:"role"`
	Salary     float64 `json:"salary" yaml:"salary"` // monthly fully-loaded cost
	StartMonth int     `json:"startMonth" yaml:"start_month"`
}

// FinancialInputs is the snapshot every engine computation reads.
type FinancialInputs struct {
	Company CompanyProfile  `json:"company" yaml:"company"`
	Cash    CashPosition    `json:"cash" yaml:"cash"`
	Revenue []RevenueStream `json:"revenue" yaml:"revenue"`
	Costs   []CostCategory  `json:"costs" yaml:"costs"`
	Team    []TeamMember    `json:"team" yaml:"team"`
}

// Clone returns a deep copy so callers can derive new snapshots safely.
func (in FinancialInputs) Clone() FinancialInputs {
	out := in
	out.Revenue = make([]RevenueStream, len(in.Revenue))
	for i, r := range in.Revenue {
		r.StartMonth = cloneInt(r.StartMonth)
		r.EndMonth = cloneInt(r.EndMonth)
		out.Revenue[i] = r
	}
	out.Costs = append([]CostCategory(nil), in.Costs...)
	out.Team = append([]TeamMember(nil), in.Team...)
	if out.Costs == nil {
		out.Costs = []CostCategory{}
	}
	if out.Team == nil {
		out.Team = []TeamMember{}
	}
	return out
}

// Month returns a pointer to m, for optional month fields.
func Month(m int) *int {
	return &m
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
