package workspace

import (
	"fmt"

	"github.com/theirongolddev/runwise/internal/model"
)

// AddRevenue appends a revenue stream, assigning an id when empty.
func (w Workspace) AddRevenue(r model.RevenueStream) (Workspace, error) {
	if r.ID == "" {
		r.ID = NewID()
	}
	for _, existing := range w.Inputs.Revenue {
		if existing.ID == r.ID {
			return w, fmt.Errorf("revenue %q: %w", r.ID, ErrDuplicateID)
		}
	}
	out := w.Clone()
	out.Inputs.Revenue = append(out.Inputs.Revenue, r)
	return out, nil
}

// UpdateRevenue applies fn to the revenue stream with id.
func (w Workspace) UpdateRevenue(id string, fn func(*model.RevenueStream)) (Workspace, error) {
	out := w.Clone()
	for i := range out.Inputs.Revenue {
		if out.Inputs.Revenue[i].ID == id {
			fn(&out.Inputs.Revenue[i])
			out.Inputs.Revenue[i].ID = id
			return out, nil
		}
	}
	return w, fmt.Errorf("revenue %q: %w", id, ErrNotFound)
}

// RemoveRevenue drops the revenue stream with id.
func (w Workspace) RemoveRevenue(id string) (Workspace, error) {
	out := w.Clone()
	kept, found := filter(out.Inputs.Revenue, func(r model.RevenueStream) bool { return r.ID != id })
	if !found {
		return w, fmt.Errorf("revenue %q: %w", id, ErrNotFound)
	}
	out.Inputs.Revenue = kept
	return out, nil
}

// AddCost appends a cost category, assigning an id when empty.
func (w Workspace) AddCost(c model.CostCategory) (Workspace, error) {
	if c.ID == "" {
		c.ID = NewID()
	}
	for _, existing := range w.Inputs.Costs {
		if existing.ID == c.ID {
			return w, fmt.Errorf("cost %q: %w", c.ID, ErrDuplicateID)
		}
	}
	out := w.Clone()
	out.Inputs.Costs = append(out.Inputs.Costs, c)
	return out, nil
}

// UpdateCost applies fn to the cost category with id.
func (w Workspace) UpdateCost(id string, fn func(*model.CostCategory)) (Workspace, error) {
	out := w.Clone()
	for i := range out.Inputs.Costs {
		if out.Inputs.Costs[i].ID == id {
			fn(&out.Inputs.Costs[i])
			out.Inputs.Costs[i].ID = id
			return out, nil
		}
	}
	return w, fmt.Errorf("cost %q: %w", id, ErrNotFound)
}

// RemoveCost drops the cost category with id.
func (w Workspace) RemoveCost(id string) (Workspace, error) {
	out := w.Clone()
	kept, found := filter(out.Inputs.Costs, func(c model.CostCategory) bool { return c.ID != id })
	if !found {
		return w, fmt.Errorf("cost %q: %w", id, ErrNotFound)
	}
	out.Inputs.Costs = kept
	return out, nil
}

// AddTeamMember appends a team member, assigning an id when empty.
func (w Workspace) AddTeamMember(m model.TeamMember) (Workspace, error) {
	if m.ID == "" {
		m.ID = NewID()
	}
	for _, existing := range w.Inputs.Team {
		if existing.ID == m.ID {
			return w, fmt.Errorf("team member %q: %w", m.ID, ErrDuplicateID)
		}
	}
	out := w.Clone()
	out.Inputs.Team = append(out.Inputs.Team, m)
	return out, nil
}

// UpdateTeamMember applies fn to the team member with id.
func (w Workspace) UpdateTeamMember(id string, fn func(*model.TeamMember)) (Workspace, error) {
	out := w.Clone()
	for i := range out.Inputs.Team {
		if out.Inputs.Team[i].ID == id {
			fn(&out.Inputs.Team[i])
			out.Inputs.Team[i].ID = id
			return out, nil
		}
	}
	return w, fmt.Errorf("team member %q: %w", id, ErrNotFound)
}

// RemoveTeamMember drops the team member with id.
func (w Workspace) RemoveTeamMember(id string) (Workspace, error) {
	out := w.Clone()
	kept, found := filter(out.Inputs.Team, func(m model.TeamMember) bool { return m.ID != id })
	if !found {
		return w, fmt.Errorf("team member %q: %w", id, ErrNotFound)
	}
	out.Inputs.Team = kept
	return out, nil
}

// AddScenario appends a scenario, assigning an id and palette color when empty.
func (w Workspace) AddScenario(s model.Scenario) (Workspace, error) {
	if s.ID == "" {
		s.ID = NewID()
	}
	if s.Color == "" {
		s.Color = ScenarioColor(len(w.Scenarios))
	}
	if _, ok := w.Scenario(s.ID); ok {
		return w, fmt.Errorf("scenario %q: %w", s.ID, ErrDuplicateID)
	}
	out := w.Clone()
	out.Scenarios = append(out.Scenarios, s.Clone())
	return out, nil
}

// UpdateScenario applies fn to the scenario with id.
func (w Workspace) UpdateScenario(id string, fn func(*model.Scenario)) (Workspace, error) {
	out := w.Clone()
	for i := range out.Scenarios {
		if out.Scenarios[i].ID == id {
			fn(&out.Scenarios[i])
			out.Scenarios[i].ID = id
			return out, nil
		}
	}
	return w, fmt.Errorf("scenario %q: %w", id, ErrNotFound)
}

// RemoveScenario drops the scenario with id. Removing the active scenario
// makes the base scenario active again.
func (w Workspace) RemoveScenario(id string) (Workspace, error) {
	s, ok := w.Scenario(id)
	if !ok {
		return w, fmt.Errorf("scenario %q: %w", id, ErrNotFound)
	}
	if s.IsBase {
		return w, ErrBaseScenario
	}
	out := w.Clone()
	out.Scenarios, _ = filter(out.Scenarios, func(s model.Scenario) bool { return s.ID != id })
	if out.ActiveScenarioID == id {
		out.ActiveScenarioID = model.BaseScenarioID
	}
	return out, nil
}

// AddChange appends a planned change to a scenario, assigning an id when empty.
// The base scenario keeps no changes.
func (w Workspace) AddChange(scenarioID string, c model.PlannedChange) (Workspace, error) {
	if c.ID == "" {
		c.ID = NewID()
	}
	if !c.Kind.Valid() {
		return w, fmt.Errorf("change kind %q: %w", c.Kind, ErrInvalidKind)
	}
	if s, ok := w.Scenario(scenarioID); ok && s.IsBase {
		return w, fmt.Errorf("scenario %q: %w", scenarioID, ErrBaseScenario)
	}
	return w.UpdateScenario(scenarioID, func(s *model.Scenario) {
		s.Changes = append(s.Changes, c)
	})
}

// RemoveChange drops a planned change from a scenario.
func (w Workspace) RemoveChange(scenarioID, changeID string) (Workspace, error) {
	s, ok := w.Scenario(scenarioID)
	if !ok {
		return w, fmt.Errorf("scenario %q: %w", scenarioID, ErrNotFound)
	}
	kept, found := filter(s.Changes, func(c model.PlannedChange) bool { return c.ID != changeID })
	if !found {
		return w, fmt.Errorf("change %q: %w", changeID, ErrNotFound)
	}
	return w.UpdateScenario(scenarioID, func(s *model.Scenario) {
		s.Changes = kept
	})
}

// filter returns the items keep accepts and whether any item was rejected.
func filter[T any](items []T, keep func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(items))
	rejected := false
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		} else {
			rejected = true
		}
	}
	return out, rejected
}
