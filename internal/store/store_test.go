package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runwise/internal/engine"
	"github.com/theirongolddev/runwise/internal/model"
	"github.com/theirongolddev/runwise/internal/workspace"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "runwise.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadWorkspace_Empty(t *testing.T) {
	s := openTemp(t)
	_, _, err := s.LoadWorkspace()
	assert.ErrorIs(t, err, ErrNoWorkspace)
}

func TestSaveLoadWorkspace(t *testing.T) {
	s := openTemp(t)
	w := workspace.Sample()

	require.NoError(t, s.SaveWorkspace(w))
	got, at, err := s.LoadWorkspace()
	require.NoError(t, err)
	assert.Equal(t, w, got)
	assert.False(t, at.IsZero())

	// Saving again replaces the single row.
	w2 := w.SetCash(model.CashPosition{CurrentBalance: 42})
	require.NoError(t, s.SaveWorkspace(w2))
	got, _, err = s.LoadWorkspace()
	require.NoError(t, err)
	assert.Equal(t, 42.0, got.Inputs.Cash.CurrentBalance)
}

func TestSnapshots(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	m := engine.CalculateMetrics(workspace.Sample().Inputs, nil)
	require.NotNil(t, m.Runway)
	profitable := model.FinancialMetrics{CurrentCash: 10, MonthlyRevenue: 5, RiskScore: 15, RiskLevel: model.RiskLow}

	require.NoError(t, s.RecordSnapshot("base", m, base))
	require.NoError(t, s.RecordSnapshot("base", profitable, base.Add(time.Minute)))
	require.NoError(t, s.RecordSnapshot("growth", m, base))

	snaps, err := s.Snapshots("base", 0)
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	// newest first
	assert.Equal(t, base.Add(time.Minute), snaps[0].RecordedAt)
	assert.Nil(t, snaps[0].Metrics.Runway)
	assert.Nil(t, snaps[0].Metrics.BreakEvenMonth)
	assert.Equal(t, model.RiskLow, snaps[0].Metrics.RiskLevel)

	assert.Equal(t, m, snaps[1].Metrics)
	assert.Equal(t, "base", snaps[1].ScenarioID)

	limited, err := s.Snapshots("base", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	count, err := s.SnapshotCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestReset(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.SaveWorkspace(workspace.Default()))
	require.NoError(t, s.RecordSnapshot("base", model.FinancialMetrics{RiskLevel: model.RiskLow}, time.Now()))

	require.NoError(t, s.Reset())

	_, _, err := s.LoadWorkspace()
	assert.ErrorIs(t, err, ErrNoWorkspace)
	count, err := s.SnapshotCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}
