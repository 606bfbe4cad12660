// Package store persists the workspace and a history of metric snapshots
// in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/runwise/internal/model"
	"github.com/theirongolddev/runwise/internal/workspace"

	_ "modernc.org/sqlite" // register sqlite driver
)

// snapshotTime is fixed-width so recorded_at sorts lexically.
const snapshotTime = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNoWorkspace is returned by LoadWorkspace before anything was saved.
var ErrNoWorkspace = errors.New("no saved workspace")

// Store is the SQLite-backed workspace database.
type Store struct {
	db *sql.DB
}

// Snapshot is the metrics of one scenario at one point in time.
type Snapshot struct {
	ScenarioID string                 `json:"scenarioId"`
	RecordedAt time.Time              `json:"recordedAt"`
	Metrics    model.FinancialMetrics `json:"metrics"`
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveWorkspace replaces the stored workspace.
func (s *Store) SaveWorkspace(w workspace.Workspace) error {
	doc, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encoding workspace: %w", err)
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO workspace
		(id, document, company, scenario_count, updated_at)
		VALUES (1, ?, ?, ?, ?)`,
		string(doc), w.Inputs.Company.Name, len(w.Scenarios), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}
	return nil
}

// LoadWorkspace reads the stored workspace and when it was last saved.
func (s *Store) LoadWorkspace() (workspace.Workspace, time.Time, error) {
	var w workspace.Workspace
	var doc, updated string
	err := s.db.QueryRow("SELECT document, updated_at FROM workspace WHERE id = 1").Scan(&doc, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return w, time.Time{}, ErrNoWorkspace
	}
	if err != nil {
		return w, time.Time{}, fmt.Errorf("loading workspace: %w", err)
	}
	if err := json.Unmarshal([]byte(doc), &w); err != nil {
		return w, time.Time{}, fmt.Errorf("decoding workspace: %w", err)
	}
	at, _ := time.Parse(time.RFC3339, updated)
	return w, at, nil
}

// RecordSnapshot appends the metrics of a scenario to the history.
func (s *Store) RecordSnapshot(scenarioID string, m model.FinancialMetrics, at time.Time) error {
	var runway sql.NullFloat64
	if m.Runway != nil {
		runway = sql.NullFloat64{Float64: *m.Runway, Valid: true}
	}
	var breakEven sql.NullInt64
	if m.BreakEvenMonth != nil {
		breakEven = sql.NullInt64{Int64: int64(*m.BreakEvenMonth), Valid: true}
	}

	_, err := s.db.Exec(`INSERT INTO metric_snapshots
		(scenario_id, recorded_at, current_cash, monthly_revenue, monthly_costs,
		 monthly_burn, runway_months, break_even_month, risk_score, risk_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scenarioID, at.UTC().Format(snapshotTime), m.CurrentCash, m.MonthlyRevenue, m.MonthlyCosts,
		m.MonthlyBurn, runway, breakEven, m.RiskScore, string(m.RiskLevel),
	)
	if err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	return nil
}

// Snapshots returns up to limit snapshots of a scenario, newest first.
// A limit of zero or less returns the full history.
func (s *Store) Snapshots(scenarioID string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`SELECT
		recorded_at, current_cash, monthly_revenue, monthly_costs, monthly_burn,
		runway_months, break_even_month, risk_score, risk_level
		FROM metric_snapshots WHERE scenario_id = ?
		ORDER BY recorded_at DESC, id DESC LIMIT ?`, scenarioID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var recorded, level string
		var runway sql.NullFloat64
		var breakEven sql.NullInt64
		m := &snap.Metrics

		err := rows.Scan(&recorded, &m.CurrentCash, &m.MonthlyRevenue, &m.MonthlyCosts, &m.MonthlyBurn,
			&runway, &breakEven, &m.RiskScore, &level)
		if err != nil {
			return nil, err
		}
		snap.ScenarioID = scenarioID
		snap.RecordedAt, _ = time.Parse(snapshotTime, recorded)
		m.RiskLevel = model.RiskLevel(level)
		if runway.Valid {
			v := runway.Float64
			m.Runway = &v
		}
		if breakEven.Valid {
			v := int(breakEven.Int64)
			m.BreakEvenMonth = &v
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// SnapshotCount returns the number of stored snapshots across scenarios.
func (s *Store) SnapshotCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM metric_snapshots").Scan(&count)
	return count, err
}

// Reset deletes the workspace and all history.
func (s *Store) Reset() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM metric_snapshots"); err != nil {
		return fmt.Errorf("clearing snapshots: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM workspace"); err != nil {
		return fmt.Errorf("clearing workspace: %w", err)
	}
	return tx.Commit()
}
