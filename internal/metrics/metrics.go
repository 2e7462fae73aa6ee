// Package metrics defines the Prometheus collectors for practice activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the counters recorded by the practice engine.
type Metrics struct {
	registry *prometheus.Registry

	SessionsStarted   *prometheus.CounterVec
	SessionsCompleted *prometheus.CounterVec
	SessionsAbandoned *prometheus.CounterVec
	CacheLookups      *prometheus.CounterVec
	FetchFailures     prometheus.Counter
	Achievements      *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparky",
			Name:      "sessions_started_total",
			Help:      "Quiz sessions started, by mode.",
		}, []string{"mode"}),
		SessionsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparky",
			Name:      "sessions_completed_total",
			Help:      "Quiz sessions completed, by mode.",
		}, []string{"mode"}),
		SessionsAbandoned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparky",
			Name:      "sessions_abandoned_total",
			Help:      "Quiz sessions abandoned before completion, by mode.",
		}, []string{"mode"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparky",
			Name:      "question_cache_lookups_total",
			Help:      "Question pool cache lookups, by result (hit or miss).",
		}, []string{"result"}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sparky",
			Name:      "question_fetch_failures_total",
			Help:      "Failed question pool fetches from the content generator.",
		}),
		Achievements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparky",
			Name:      "achievements_unlocked_total",
			Help:      "Achievements unlocked, by id.",
		}, []string{"id"}),
	}
	m.registry.MustRegister(
		m.SessionsStarted,
		m.SessionsCompleted,
		m.SessionsAbandoned,
		m.CacheLookups,
		m.FetchFailures,
		m.Achievements,
	)
	return m
}

// Registry exposes the registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CacheHit records a question cache lookup result. A nil Metrics is a no-op
// so callers can run without instrumentation.
func (m *Metrics) CacheHit(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		m.CacheLookups.WithLabelValues("miss").Inc()
	}
}

// FetchFailed records a failed pool fetch.
func (m *Metrics) FetchFailed() {
	if m == nil {
		return
	}
	m.FetchFailures.Inc()
}

// Started records a session start.
func (m *Metrics) Started(mode string) {
	if m == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(mode).Inc()
}

// Completed records a session completion.
func (m *Metrics) Completed(mode string) {
	if m == nil {
		return
	}
	m.SessionsCompleted.WithLabelValues(mode).Inc()
}

// Abandoned records an abandoned session.
func (m *Metrics) Abandoned(mode string) {
	if m == nil {
		return
	}
	m.SessionsAbandoned.WithLabelValues(mode).Inc()
}

// Unlocked records newly unlocked achievements.
func (m *Metrics) Unlocked(ids []string) {
	if m == nil {
		return
	}
	for _, id := range ids {
		m.Achievements.WithLabelValues(id).Inc()
	}
}
