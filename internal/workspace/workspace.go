// Package workspace holds the user-owned planning state and the command
// functions that derive new states from it.
//
// Commands never modify their receiver: each returns a new Workspace whose
// slices are not shared with the original, so snapshots handed to the
// engine stay consistent.
package workspace

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/theirongolddev/runwise/internal/engine"
	"github.com/theirongolddev/runwise/internal/model"
)

var (
	// ErrNotFound is returned when an id does not match any item.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when adding an item whose id already exists.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrBaseScenario is returned when removing the base scenario or
	// planning changes on it.
	ErrBaseScenario = errors.New("the base scenario is fixed")
	// ErrInvalidAmount is returned for negative amounts where only positive make sense.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidKind is returned for unknown revenue, cost, or change kinds.
	ErrInvalidKind = errors.New("invalid kind")
)

// Workspace is the complete planning state.
type Workspace struct {
	Inputs           model.FinancialInputs `json:"inputs" yaml:"inputs"`
	Scenarios        []model.Scenario      `json:"scenarios" yaml:"scenarios"`
	ActiveScenarioID string                `json:"activeScenarioId" yaml:"active_scenario_id"`
	ProjectionMonths int                   `json:"projectionMonths" yaml:"projection_months"`
}

// NewID returns a fresh identifier for revenue, costs, team members,
// scenarios, and changes.
func NewID() string {
	return uuid.NewString()[:8]
}

// Clone returns a deep copy of w.
func (w Workspace) Clone() Workspace {
	out := w
	out.Inputs = w.Inputs.Clone()
	out.Scenarios = make([]model.Scenario, len(w.Scenarios))
	for i, s := range w.Scenarios {
		out.Scenarios[i] = s.Clone()
	}
	return out
}

// Months returns the projection horizon, falling back to the default.
func (w Workspace) Months() int {
	if w.ProjectionMonths <= 0 {
		return engine.DefaultProjectionMonths
	}
	return w.ProjectionMonths
}

// ActiveScenario returns the active scenario, or the first one when the
// active id is stale.
func (w Workspace) ActiveScenario() (model.Scenario, bool) {
	for _, s := range w.Scenarios {
		if s.ID == w.ActiveScenarioID {
			return s, true
		}
	}
	if len(w.Scenarios) > 0 {
		return w.Scenarios[0], true
	}
	return model.Scenario{}, false
}

// Scenario looks up a scenario by id.
func (w Workspace) Scenario(id string) (model.Scenario, bool) {
	for _, s := range w.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return model.Scenario{}, false
}

// SetCash replaces the cash position.
func (w Workspace) SetCash(cash model.CashPosition) Workspace {
	out := w.Clone()
	out.Inputs.Cash = cash
	return out
}

// SetCompany replaces the company profile.
func (w Workspace) SetCompany(c model.CompanyProfile) Workspace {
	out := w.Clone()
	out.Inputs.Company = c
	return out
}

// SetProjectionMonths sets the default projection horizon.
func (w Workspace) SetProjectionMonths(months int) (Workspace, error) {
	if months <= 0 {
		return w, fmt.Errorf("projection months %d: %w", months, ErrInvalidAmount)
	}
	out := w.Clone()
	out.ProjectionMonths = months
	return out, nil
}

// SetActiveScenario marks the scenario with id as active.
func (w Workspace) SetActiveScenario(id string) (Workspace, error) {
	if _, ok := w.Scenario(id); !ok {
		return w, fmt.Errorf("scenario %q: %w", id, ErrNotFound)
	}
	out := w.Clone()
	out.ActiveScenarioID = id
	return out, nil
}
