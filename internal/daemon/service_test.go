package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/theirongolddev/runwise/internal/model"
	"github.com/theirongolddev/runwise/internal/store"
	"github.com/theirongolddev/runwise/internal/workspace"
)

type recorded struct {
	scenario string
	metrics  model.FinancialMetrics
}

type fakeSource struct {
	mu        sync.Mutex
	ws        *workspace.Workspace
	snapshots []recorded
}

func (f *fakeSource) LoadWorkspace() (workspace.Workspace, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ws == nil {
		return workspace.Workspace{}, time.Time{}, store.ErrNoWorkspace
	}
	return f.ws.Clone(), time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), nil
}

func (f *fakeSource) RecordSnapshot(id string, m model.FinancialMetrics, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, recorded{id, m})
	return nil
}

func (f *fakeSource) set(w workspace.Workspace) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ws = &w
}

func newTestService(src Source) *Service {
	return New(Config{
		DBPath:       "test.db",
		EventsBuffer: 10,
		Now:          func() time.Time { return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC) },
	}, src, zap.NewNop())
}

func runway(v float64) *float64 { return &v }

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{Scenarios: []ScenarioSnapshot{
		{ID: "base", Metrics: model.FinancialMetrics{CurrentCash: 100, MonthlyBurn: 10, RiskScore: 30, Runway: runway(10)}},
		{ID: "same", Metrics: model.FinancialMetrics{CurrentCash: 5}},
		{ID: "gone"},
	}}
	curr := Snapshot{Scenarios: []ScenarioSnapshot{
		{ID: "base", Metrics: model.FinancialMetrics{CurrentCash: 80, MonthlyBurn: 16, RiskScore: 45, Runway: runway(5)}},
		{ID: "same", Metrics: model.FinancialMetrics{CurrentCash: 5}},
		{ID: "new", Metrics: model.FinancialMetrics{CurrentCash: 1}},
	}}

	delta := diffSnapshots(prev, curr)
	require.Len(t, delta.Scenarios, 3)

	base := delta.Scenarios[0]
	assert.Equal(t, "changed", base.Change)
	assert.InDelta(t, -20, base.CurrentCash, 1e-9)
	assert.InDelta(t, 6, base.MonthlyBurn, 1e-9)
	assert.Equal(t, 15, base.RiskScore)
	require.NotNil(t, base.Runway)
	assert.InDelta(t, -5, *base.Runway, 1e-9)

	assert.Equal(t, ScenarioDelta{ID: "new", Change: "added", CurrentCash: 1}, delta.Scenarios[1])
	assert.Equal(t, ScenarioDelta{ID: "gone", Change: "removed"}, delta.Scenarios[2])

	assert.True(t, diffSnapshots(curr, curr).isZero())
}

func TestDiffSnapshots_RunwayAppears(t *testing.T) {
	prev := Snapshot{Scenarios: []ScenarioSnapshot{{ID: "base"}}}
	curr := Snapshot{Scenarios: []ScenarioSnapshot{{ID: "base", Metrics: model.FinancialMetrics{Runway: runway(3)}}}}
	assert.False(t, diffSnapshots(prev, curr).isZero())
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2}, &fakeSource{}, nil)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	require.Len(t, s.events, 2)
	assert.Equal(t, int64(2), s.events[0].ID)
	assert.Equal(t, int64(3), s.events[1].ID)
}

func TestRecompute_Events(t *testing.T) {
	src := &fakeSource{}
	src.set(workspace.Sample())
	s := newTestService(src)

	s.recompute()
	st := s.snapshotStatus()
	assert.Empty(t, st.LastError)
	assert.Equal(t, int64(1), st.PollCount)
	assert.Equal(t, 1, st.EventCount)
	assert.Len(t, st.Summary.Scenarios, 4)
	assert.Equal(t, "TechStartup Inc.", st.Summary.Company)
	assert.Len(t, src.snapshots, 4)

	// Unchanged workspace: no event, no history.
	s.recompute()
	assert.Equal(t, 1, s.snapshotStatus().EventCount)
	assert.Len(t, src.snapshots, 4)

	// Adding a hire to growth only touches growth.
	w, err := workspace.Sample().AddChange("growth", model.PlannedChange{Kind: model.ChangeHire, Amount: 9000, Month: 0, Recurring: true})
	require.NoError(t, err)
	src.set(w)
	s.recompute()

	s.mu.RLock()
	last := s.events[len(s.events)-1]
	s.mu.RUnlock()
	assert.Equal(t, "metrics_delta", last.Type)
	require.Len(t, last.Delta.Scenarios, 1)
	assert.Equal(t, "growth", last.Delta.Scenarios[0].ID)
	assert.InDelta(t, 9000, last.Delta.Scenarios[0].MonthlyBurn, 1e-9)
	require.Len(t, src.snapshots, 5)
	assert.Equal(t, "growth", src.snapshots[4].scenario)
}

func TestRecompute_NoWorkspace(t *testing.T) {
	s := newTestService(&fakeSource{})
	s.recompute()

	st := s.snapshotStatus()
	assert.Equal(t, store.ErrNoWorkspace.Error(), st.LastError)
	assert.Equal(t, int64(1), st.PollCount)
	assert.Zero(t, st.EventCount)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandlers(t *testing.T) {
	src := &fakeSource{}
	src.set(workspace.Sample())
	s := newTestService(src)
	s.recompute()
	h := s.Handler()

	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())

	rec = get(t, h, "/v1/scenarios")
	require.Equal(t, http.StatusOK, rec.Code)
	var scenarios []ScenarioSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scenarios))
	require.Len(t, scenarios, 4)
	assert.True(t, scenarios[0].IsBase)

	rec = get(t, h, "/v1/scenarios/survival/projections")
	require.Equal(t, http.StatusOK, rec.Code)
	var projections []model.MonthlyProjection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projections))
	require.Len(t, projections, 24)
	assert.Equal(t, "Feb 2026", projections[0].MonthLabel)

	rec = get(t, h, "/v1/scenarios/base/insights")
	require.Equal(t, http.StatusOK, rec.Code)
	var ins insightsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ins))
	assert.Equal(t, "base", ins.ScenarioID)
	assert.NotEmpty(t, ins.Insights)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/v1/scenarios/ghost/projections").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/v1/scenarios/ghost/insights").Code)

	rec = get(t, h, "/v1/status")
	var st Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "@every 15s", st.Schedule)
	assert.Equal(t, "test.db", st.DBPath)

	rec = get(t, h, "/v1/events")
	var events []Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "snapshot", events[0].Type)

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `runwise_runway_months{name="Base Case",scenario="base"}`)
	assert.Contains(t, body, `runwise_recomputes_total{outcome="ok"} 1`)
}

func TestStreamSendsCurrentSnapshot(t *testing.T) {
	src := &fakeSource{}
	src.set(workspace.Default())
	s := newTestService(src)
	s.recompute()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/v1/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.Handler().ServeHTTP(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return s.snapshotStatus().SubscriberCount == 1
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "event: snapshot\ndata: "))
}

func TestRunRejectsBadSchedule(t *testing.T) {
	s := New(Config{Schedule: "every now and then", Addr: "127.0.0.1:0"}, &fakeSource{}, nil)
	err := s.Run(context.Background())
	assert.ErrorContains(t, err, "parsing schedule")
}
