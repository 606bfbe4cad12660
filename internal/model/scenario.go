package model

// ChangeKind is the variant of a planned change.
type ChangeKind string

const (
	ChangeHire           ChangeKind = "hire"
	ChangeFire           ChangeKind = "fire"
	ChangeRevenue        ChangeKind = "revenue-change"
	ChangeCost           ChangeKind = "cost-change"
	ChangeOneTimeExpense ChangeKind = "one-time-expense"
	ChangeOneTimeIncome  ChangeKind = "one-time-income"
)

// ChangeKinds lists every change kind in display order.
var ChangeKinds = []ChangeKind{
	ChangeHire, ChangeFire, ChangeRevenue, ChangeCost, ChangeOneTimeExpense, ChangeOneTimeIncome,
}

// Valid reports whether k is a known change kind.
func (k ChangeKind) Valid() bool {
	switch k {
	case ChangeHire, ChangeFire, ChangeRevenue, ChangeCost, ChangeOneTimeExpense, ChangeOneTimeIncome:
		return true
	}
	return false
}

// PlannedChange is a timed delta applied on top of the base inputs.
//
// Amount is added as given for revenue, cost and one-time kinds. For hire it
// is the monthly salary added to costs; for fire the salary removed.
type PlannedChange struct {
	ID          string     `json:"id" yaml:"id"`
	Kind        ChangeKind `json:"type" yaml:"type"`
	Description string     `json:"description" yaml:"description"`
	Amount      float64    `json:"amount" yaml:"amount"`
	Month       int        `json:"month" yaml:"month"`
	Recurring   bool       `json:"recurring" yaml:"recurring"`
}

// BaseScenarioID is the id of the no-intervention scenario.
const BaseScenarioID = "base"

// Scenario is a named overlay of planned changes.
type Scenario struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	IsBase      bool            `json:"isBase" yaml:"is_base"`
	Changes     []PlannedChange `json:"changes" yaml:"changes"`
	Color       string          `json:"color" yaml:"color"`
}

// Clone returns a copy whose Changes slice is not shared with s.
func (s Scenario) Clone() Scenario {
	out := s
	out.Changes = append([]PlannedChange{}, s.Changes...)
	return out
}
