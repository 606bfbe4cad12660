// Package daemon provides the long-running projection service: it
// recomputes every scenario of the saved workspace on a schedule and serves
// the results over HTTP, SSE and Prometheus.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/theirongolddev/runwise/internal/engine"
	"github.com/theirongolddev/runwise/internal/metrics"
	"github.com/theirongolddev/runwise/internal/model"
	"github.com/theirongolddev/runwise/internal/store"
	"github.com/theirongolddev/runwise/internal/workspace"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Addr         string
	Schedule     string // cron spec, e.g. "@every 15s" or "*/5 * * * *"
	EventsBuffer int
	Months       int // projection horizon; 0 uses the workspace setting

	// Now anchors month labels. Defaults to time.Now.
	Now func() time.Time
}

// Source is where the service reads the workspace and writes snapshots.
// *store.Store implements it.
type Source interface {
	LoadWorkspace() (workspace.Workspace, time.Time, error)
	RecordSnapshot(scenarioID string, m model.FinancialMetrics, at time.Time) error
}

// ScenarioSnapshot is the compact state of one scenario.
type ScenarioSnapshot struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Color         string                 `json:"color"`
	IsBase        bool                   `json:"is_base"`
	Metrics       model.FinancialMetrics `json:"metrics"`
	EndingCash    float64                `json:"ending_cash"`
	ZeroCashMonth *int                   `json:"zero_cash_month,omitempty"`
}

// Snapshot is the state of all scenarios after one recompute.
type Snapshot struct {
	At                 time.Time          `json:"at"`
	WorkspaceUpdatedAt time.Time          `json:"workspace_updated_at"`
	Company            string             `json:"company"`
	ActiveScenario     string             `json:"active_scenario"`
	Months             int                `json:"months"`
	Scenarios          []ScenarioSnapshot `json:"scenarios"`
}

// Delta lists the scenarios whose metrics moved between recomputes.
type Delta struct {
	Scenarios []ScenarioDelta `json:"scenarios,omitempty"`
}

func (d Delta) isZero() bool {
	return len(d.Scenarios) == 0
}

// ScenarioDelta is the change of one scenario. Numeric fields are
// current minus previous; Runway is nil unless both sides burn cash.
type ScenarioDelta struct {
	ID          string   `json:"id"`
	Change      string   `json:"change"` // added, removed or changed
	CurrentCash float64  `json:"current_cash"`
	MonthlyBurn float64  `json:"monthly_burn"`
	RiskScore   int      `json:"risk_score"`
	Runway      *float64 `json:"runway,omitempty"`
}

// Event is emitted whenever the snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	Schedule        string    `json:"schedule"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	src     Source
	log     *zap.Logger
	reg     *prometheus.Registry
	metrics *metrics.Collectors

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	ws          workspace.Workspace
	comparisons []model.ScenarioComparison
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service reading from src.
func New(cfg Config, src Source, log *zap.Logger) *Service {
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 15s"
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8789"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Service{
		cfg:       cfg,
		src:       src,
		log:       log,
		reg:       reg,
		metrics:   metrics.New(reg),
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP routes.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/v1/status", s.handleStatus).Methods("GET")
	r.HandleFunc("/v1/scenarios", s.handleScenarios).Methods("GET")
	r.HandleFunc("/v1/scenarios/{id}/projections", s.handleProjections).Methods("GET")
	r.HandleFunc("/v1/scenarios/{id}/insights", s.handleInsights).Methods("GET")
	r.HandleFunc("/v1/events", s.handleEvents).Methods("GET")
	r.HandleFunc("/v1/stream", s.handleStream).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})).Methods("GET")
	return r
}

// Run starts HTTP endpoints and the recompute schedule until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	sched := cron.New()
	if _, err := sched.AddFunc(s.cfg.Schedule, s.recompute); err != nil {
		return fmt.Errorf("parsing schedule %q: %w", s.cfg.Schedule, err)
	}

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.recompute()
	sched.Start()
	s.log.Info("daemon started", zap.String("addr", s.cfg.Addr), zap.String("schedule", s.cfg.Schedule))

	defer func() { <-sched.Stop().Done() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("daemon http server: %w", err)
	}
}

func (s *Service) recompute() {
	start := time.Now()
	ws, updatedAt, err := s.src.LoadWorkspace()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = s.cfg.Now()
		s.pollCount++
		s.mu.Unlock()
		s.metrics.RecordRecompute("error", time.Since(start))
		if errors.Is(err, store.ErrNoWorkspace) {
			s.log.Warn("no workspace saved yet")
		} else {
			s.log.Error("loading workspace", zap.Error(err))
		}
		return
	}

	now := s.cfg.Now()
	months := s.cfg.Months
	if months <= 0 {
		months = ws.Months()
	}
	comparisons := engine.CompareScenariosFrom(now, ws.Inputs, ws.Scenarios, months)
	snap := snapshotFrom(ws, comparisons, months, updatedAt, now)
	s.metrics.Observe(comparisons)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.ws = ws
	s.comparisons = comparisons
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "metrics_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
		s.recordSnapshots(ev)
	}
	s.metrics.RecordRecompute("ok", time.Since(start))
}

// recordSnapshots stores history for the scenarios an event touched.
func (s *Service) recordSnapshots(ev Event) {
	touched := map[string]bool{}
	for _, d := range ev.Delta.Scenarios {
		touched[d.ID] = true
	}
	for _, sc := range ev.Snapshot.Scenarios {
		if ev.Type != "snapshot" && !touched[sc.ID] {
			continue
		}
		if err := s.src.RecordSnapshot(sc.ID, sc.Metrics, ev.Timestamp); err != nil {
			s.log.Error("recording snapshot", zap.String("scenario", sc.ID), zap.Error(err))
		}
	}
}

func snapshotFrom(ws workspace.Workspace, comparisons []model.ScenarioComparison, months int, updatedAt, at time.Time) Snapshot {
	snap := Snapshot{
		At:                 at,
		WorkspaceUpdatedAt: updatedAt,
		Company:            ws.Inputs.Company.Name,
		ActiveScenario:     ws.ActiveScenarioID,
		Months:             months,
		Scenarios:          make([]ScenarioSnapshot, 0, len(comparisons)),
	}
	base := map[string]bool{}
	for _, sc := range ws.Scenarios {
		base[sc.ID] = sc.IsBase
	}
	for _, c := range comparisons {
		ending := c.Metrics.CurrentCash
		if n := len(c.Projections); n > 0 {
			ending = c.Projections[n-1].CashBalance
		}
		snap.Scenarios = append(snap.Scenarios, ScenarioSnapshot{
			ID:            c.ScenarioID,
			Name:          c.Name,
			Color:         c.Color,
			IsBase:        base[c.ScenarioID],
			Metrics:       c.Metrics,
			EndingCash:    ending,
			ZeroCashMonth: engine.FindZeroCashMonth(c.Projections),
		})
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	before := make(map[string]ScenarioSnapshot, len(prev.Scenarios))
	for _, sc := range prev.Scenarios {
		before[sc.ID] = sc
	}

	var d Delta
	seen := map[string]bool{}
	for _, sc := range curr.Scenarios {
		seen[sc.ID] = true
		old, ok := before[sc.ID]
		if !ok {
			d.Scenarios = append(d.Scenarios, ScenarioDelta{
				ID:          sc.ID,
				Change:      "added",
				CurrentCash: sc.Metrics.CurrentCash,
				MonthlyBurn: sc.Metrics.MonthlyBurn,
				RiskScore:   sc.Metrics.RiskScore,
				Runway:      sc.Metrics.Runway,
			})
			continue
		}
		delta := ScenarioDelta{
			ID:          sc.ID,
			Change:      "changed",
			CurrentCash: sc.Metrics.CurrentCash - old.Metrics.CurrentCash,
			MonthlyBurn: sc.Metrics.MonthlyBurn - old.Metrics.MonthlyBurn,
			RiskScore:   sc.Metrics.RiskScore - old.Metrics.RiskScore,
		}
		if sc.Metrics.Runway != nil && old.Metrics.Runway != nil {
			r := *sc.Metrics.Runway - *old.Metrics.Runway
			delta.Runway = &r
		}
		runwayFlipped := (sc.Metrics.Runway == nil) != (old.Metrics.Runway == nil)
		if delta.CurrentCash != 0 || delta.MonthlyBurn != 0 || delta.RiskScore != 0 ||
			(delta.Runway != nil && *delta.Runway != 0) || runwayFlipped ||
			!sameMonth(sc.ZeroCashMonth, old.ZeroCashMonth) || sc.EndingCash != old.EndingCash {
			d.Scenarios = append(d.Scenarios, delta)
		}
	}
	for _, sc := range prev.Scenarios {
		if !seen[sc.ID] {
			d.Scenarios = append(d.Scenarios, ScenarioDelta{ID: sc.ID, Change: "removed"})
		}
	}
	return d
}

func sameMonth(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		Schedule:        s.cfg.Schedule,
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

// comparison returns the latest computed comparison for a scenario.
func (s *Service) comparison(id string) (model.ScenarioComparison, model.FinancialInputs, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.comparisons {
		if c.ScenarioID == id {
			return c, s.ws.Inputs, true
		}
	}
	return model.ScenarioComparison{}, model.FinancialInputs{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleScenarios(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	scenarios := append([]ScenarioSnapshot{}, s.snapshot.Scenarios...)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, scenarios)
}

func (s *Service) handleProjections(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	c, _, ok := s.comparison(id)
	if !ok {
		http.Error(w, fmt.Sprintf("scenario %q not found", id), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, c.Projections)
}

type insightsResponse struct {
	ScenarioID      string          `json:"scenario_id"`
	Insights        []model.Insight `json:"insights"`
	Recommendations []string        `json:"recommendations"`
}

func (s *Service) handleInsights(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	c, in, ok := s.comparison(id)
	if !ok {
		http.Error(w, fmt.Sprintf("scenario %q not found", id), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, insightsResponse{
		ScenarioID:      id,
		Insights:        engine.GenerateInsights(in, c.Metrics, c.Projections),
		Recommendations: engine.GenerateRecommendations(in, c.Metrics),
	})
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: s.cfg.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
