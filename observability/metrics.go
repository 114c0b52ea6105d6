package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus instruments of the service
type Metrics struct {
	registry *prometheus.Registry

	settlementRuns      *prometheus.CounterVec
	predictionsSettled  *prometheus.CounterVec
	payoutAmount        prometheus.Counter
	settlementDuration  prometheus.Histogram
	standingsRecomputed prometheus.Counter
	eventsPublished     *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	defaultOnce    sync.Once
)

// Default returns the process-wide metrics instance
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = NewMetrics()
	})
	return defaultMetrics
}

// NewMetrics creates the instruments on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		settlementRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "settlement_runs_total",
			Help:      "Settlement runs by result",
		}, []string{LabelResult}),
		predictionsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "predictions_settled_total",
			Help:      "Predictions marked settled by payout mode",
		}, []string{LabelMode}),
		payoutAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "payout_amount_total",
			Help:      "Sum of pool payouts credited to wallets",
		}),
		settlementDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "settlement_duration_seconds",
			Help:      "Duration of a single match settlement including commit",
			Buckets:   prometheus.DefBuckets,
		}),
		standingsRecomputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "standings_recomputed_total",
			Help:      "Zone tables recomputed",
		}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemEvents,
			Name:      "published_total",
			Help:      "Domain events flushed after commit by type",
		}, []string{LabelEventType}),
	}

	registry.MustRegister(
		m.settlementRuns,
		m.predictionsSettled,
		m.payoutAmount,
		m.settlementDuration,
		m.standingsRecomputed,
		m.eventsPublished,
	)

	return m
}

// RecordSettlement records a committed settlement run
func (m *Metrics) RecordSettlement(mode string, settled int, paid float64, duration time.Duration) {
	result := ResultSuccess
	if settled == 0 {
		result = ResultNoop
	}
	m.settlementRuns.WithLabelValues(result).Inc()
	m.predictionsSettled.WithLabelValues(mode).Add(float64(settled))
	if paid > 0 {
		m.payoutAmount.Add(paid)
	}
	m.settlementDuration.Observe(duration.Seconds())
}

// RecordSettlementFailure records a settlement run that rolled back
func (m *Metrics) RecordSettlementFailure(duration time.Duration) {
	m.settlementRuns.WithLabelValues(ResultError).Inc()
	m.settlementDuration.Observe(duration.Seconds())
}

// RecordStandingsRecomputed counts a zone table replacement
func (m *Metrics) RecordStandingsRecomputed() {
	m.standingsRecomputed.Inc()
}

// RecordEventPublished counts an event flushed after commit
func (m *Metrics) RecordEventPublished(eventType string) {
	m.eventsPublished.WithLabelValues(eventType).Inc()
}

// Handler exposes the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
