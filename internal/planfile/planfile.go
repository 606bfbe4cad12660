// Package planfile reads and writes workspaces as YAML or JSON plan files.
package planfile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v2"

	"github.com/theirongolddev/runwise/internal/model"
	"github.com/theirongolddev/runwise/internal/workspace"
)

//go:embed schema.json
var schemaJSON []byte

// ErrUnsupportedFormat is returned for file extensions other than
// .yaml, .yml and .json.
var ErrUnsupportedFormat = errors.New("unsupported plan file format")

// ValidationError lists everything wrong with a plan file.
type ValidationError struct {
	Path     string
	Problems []string
	Err      error // workspace validation error, nil for schema failures
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid plan %s: %s", e.Path, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Format is a plan file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Read loads and validates a plan file.
func Read(path string) (workspace.Workspace, error) {
	format, err := FormatFor(path)
	if err != nil {
		return workspace.Workspace{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return workspace.Workspace{}, fmt.Errorf("reading plan: %w", err)
	}
	return Decode(path, format, data)
}

// Decode parses data in the given format. JSON documents are checked
// against the plan schema before decoding; both formats then go through
// workspace validation.
func Decode(name string, format Format, data []byte) (workspace.Workspace, error) {
	var w workspace.Workspace
	switch format {
	case FormatJSON:
		if err := validateSchema(name, data); err != nil {
			return w, err
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return w, fmt.Errorf("parsing %s: %w", name, err)
		}
	case FormatYAML:
		if err := yaml.UnmarshalStrict(data, &w); err != nil {
			return w, fmt.Errorf("parsing %s: %w", name, err)
		}
	default:
		return w, fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}

	w = normalize(w)
	if err := w.Validate(); err != nil {
		return w, &ValidationError{Path: name, Problems: splitJoined(err), Err: err}
	}
	return w, nil
}

// Write stores w at path in the encoding its extension selects.
func Write(path string, w workspace.Workspace) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, w)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating plan dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o600)
}

// Encode serializes w in the given format.
func Encode(format Format, w workspace.Workspace) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(w, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(w)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}
}

func validateSchema(name string, data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		problems[i] = desc.String()
	}
	return &ValidationError{Path: name, Problems: problems}
}

// normalize fills the gaps a hand-written plan may leave: missing ids, a
// missing base scenario, a stale active id and an unset horizon.
func normalize(w workspace.Workspace) workspace.Workspace {
	w = w.Clone()
	for i := range w.Inputs.Revenue {
		if w.Inputs.Revenue[i].ID == "" {
			w.Inputs.Revenue[i].ID = workspace.NewID()
		}
	}
	for i := range w.Inputs.Costs {
		if w.Inputs.Costs[i].ID == "" {
			w.Inputs.Costs[i].ID = workspace.NewID()
		}
		if w.Inputs.Costs[i].Type == "" {
			w.Inputs.Costs[i].Type = model.CostOther
		}
	}
	for i := range w.Inputs.Team {
		if w.Inputs.Team[i].ID == "" {
			w.Inputs.Team[i].ID = workspace.NewID()
		}
	}

	hasBase := false
	for i := range w.Scenarios {
		s := &w.Scenarios[i]
		if s.ID == "" {
			s.ID = workspace.NewID()
		}
		if s.ID == model.BaseScenarioID {
			s.IsBase = true
		}
		hasBase = hasBase || s.IsBase
		if s.Color == "" {
			s.Color = workspace.ScenarioColor(i)
		}
		for j := range s.Changes {
			if s.Changes[j].ID == "" {
				s.Changes[j].ID = workspace.NewID()
			}
		}
	}
	if !hasBase {
		base := workspace.Default().Scenarios[0]
		w.Scenarios = append([]model.Scenario{base}, w.Scenarios...)
	}
	if _, ok := w.Scenario(w.ActiveScenarioID); !ok {
		w.ActiveScenarioID = w.Scenarios[0].ID
	}
	if w.ProjectionMonths <= 0 {
		w.ProjectionMonths = w.Months()
	}
	return w
}

func splitJoined(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
