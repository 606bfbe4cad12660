package workspace

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/runwise/internal/model"
)

// Validate checks the data-entry invariants the engine trusts: unique ids
// per list, known kinds, non-negative amounts and salaries, and month
// ranges that make sense. All problems are reported together.
func (w Workspace) Validate() error {
	var errs []error

	in := w.Inputs
	seen := map[string]bool{}
	for _, r := range in.Revenue {
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("revenue %q: %w", r.ID, ErrDuplicateID))
		}
		seen[r.ID] = true
		if !r.Kind.Valid() {
			errs = append(errs, fmt.Errorf("revenue %q type %q: %w", r.ID, r.Kind, ErrInvalidKind))
		}
		if r.Amount < 0 {
			errs = append(errs, fmt.Errorf("revenue %q amount %.2f: %w", r.ID, r.Amount, ErrInvalidAmount))
		}
		if r.Start() < 0 || r.End() < r.Start() {
			errs = append(errs, fmt.Errorf("revenue %q months %d..%d: %w", r.ID, r.Start(), r.End(), ErrInvalidAmount))
		}
	}

	seen = map[string]bool{}
	for _, c := range in.Costs {
		if seen[c.ID] {
			errs = append(errs, fmt.Errorf("cost %q: %w", c.ID, ErrDuplicateID))
		}
		seen[c.ID] = true
		if c.Type != "" && !c.Type.Valid() {
			errs = append(errs, fmt.Errorf("cost %q type %q: %w", c.ID, c.Type, ErrInvalidKind))
		}
		if c.Amount < 0 {
			errs = append(errs, fmt.Errorf("cost %q amount %.2f: %w", c.ID, c.Amount, ErrInvalidAmount))
		}
	}

	seen = map[string]bool{}
	for _, m := range in.Team {
		if seen[m.ID] {
			errs = append(errs, fmt.Errorf("team member %q: %w", m.ID, ErrDuplicateID))
		}
		seen[m.ID] = true
		if m.Salary < 0 || m.StartMonth < 0 {
			errs = append(errs, fmt.Errorf("team member %q: %w", m.ID, ErrInvalidAmount))
		}
	}

	seen = map[string]bool{}
	bases := 0
	for _, s := range w.Scenarios {
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("scenario %q: %w", s.ID, ErrDuplicateID))
		}
		seen[s.ID] = true
		if s.IsBase {
			bases++
			if len(s.Changes) > 0 {
				errs = append(errs, fmt.Errorf("scenario %q has %d changes: %w", s.ID, len(s.Changes), ErrBaseScenario))
			}
		}
		changeIDs := map[string]bool{}
		for _, c := range s.Changes {
			if changeIDs[c.ID] {
				errs = append(errs, fmt.Errorf("scenario %q change %q: %w", s.ID, c.ID, ErrDuplicateID))
			}
			changeIDs[c.ID] = true
			if !c.Kind.Valid() {
				errs = append(errs, fmt.Errorf("scenario %q change %q type %q: %w", s.ID, c.ID, c.Kind, ErrInvalidKind))
			}
			if c.Month < 0 {
				errs = append(errs, fmt.Errorf("scenario %q change %q month %d: %w", s.ID, c.ID, c.Month, ErrInvalidAmount))
			}
			if (c.Kind == model.ChangeHire || c.Kind == model.ChangeFire) && c.Amount < 0 {
				errs = append(errs, fmt.Errorf("scenario %q change %q salary %.2f: %w", s.ID, c.ID, c.Amount, ErrInvalidAmount))
			}
		}
	}
	if bases > 1 {
		errs = append(errs, fmt.Errorf("%d scenarios flagged as base: %w", bases, ErrDuplicateID))
	}

	return errors.Join(errs...)
}
