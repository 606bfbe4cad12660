// Package metrics exposes scenario metrics as Prometheus collectors.
package metrics

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/theirongolddev/runwise/internal/engine"
	"github.com/theirongolddev/runwise/internal/model"
)

// Collectors holds the gauges and counters the daemon updates on each
// recompute.
type Collectors struct {
	Runway          *prometheus.GaugeVec
	RiskScore       *prometheus.GaugeVec
	MonthlyBurn     *prometheus.GaugeVec
	EndingCash      *prometheus.GaugeVec
	ZeroCashMonth   *prometheus.GaugeVec
	Recomputes      *prometheus.CounterVec
	RecomputeTiming prometheus.Histogram
}

var scenarioLabels = []string{"scenario", "name"}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Collectors {
	f := promauto.With(reg)
	return &Collectors{
		Runway: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "runwise_runway_months",
			Help: "Static runway in months; +Inf when the scenario is not burning cash",
		}, scenarioLabels),
		RiskScore: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "runwise_risk_score",
			Help: "Risk score from 0 to 100",
		}, scenarioLabels),
		MonthlyBurn: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "runwise_monthly_burn",
			Help: "Month-0 net burn; negative means profitable",
		}, scenarioLabels),
		EndingCash: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "runwise_ending_cash",
			Help: "Projected cash balance in the last month of the horizon",
		}, scenarioLabels),
		ZeroCashMonth: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "runwise_zero_cash_month",
			Help: "First projected month with zero cash; -1 when cash lasts the horizon",
		}, scenarioLabels),
		Recomputes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "runwise_recomputes_total",
			Help: "Scheduled recomputes by outcome",
		}, []string{"outcome"}),
		RecomputeTiming: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "runwise_recompute_duration_seconds",
			Help:    "Time spent loading the workspace and recomputing all scenarios",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}

// Observe replaces the per-scenario gauges with the given comparisons.
// Scenarios that disappeared are dropped.
func (c *Collectors) Observe(comparisons []model.ScenarioComparison) {
	for _, g := range []*prometheus.GaugeVec{c.Runway, c.RiskScore, c.MonthlyBurn, c.EndingCash, c.ZeroCashMonth} {
		g.Reset()
	}
	for _, cmp := range comparisons {
		labels := prometheus.Labels{"scenario": cmp.ScenarioID, "name": cmp.Name}

		runway := math.Inf(1)
		if cmp.Metrics.Runway != nil {
			runway = *cmp.Metrics.Runway
		}
		c.Runway.With(labels).Set(runway)
		c.RiskScore.With(labels).Set(float64(cmp.Metrics.RiskScore))
		c.MonthlyBurn.With(labels).Set(cmp.Metrics.MonthlyBurn)

		ending := cmp.Metrics.CurrentCash
		if n := len(cmp.Projections); n > 0 {
			ending = cmp.Projections[n-1].CashBalance
		}
		c.EndingCash.With(labels).Set(ending)

		zero := -1.0
		if m := engine.FindZeroCashMonth(cmp.Projections); m != nil {
			zero = float64(*m)
		}
		c.ZeroCashMonth.With(labels).Set(zero)
	}
}

// RecordRecompute counts one recompute and its duration.
func (c *Collectors) RecordRecompute(outcome string, took time.Duration) {
	c.Recomputes.WithLabelValues(outcome).Inc()
	c.RecomputeTiming.Observe(took.Seconds())
}
