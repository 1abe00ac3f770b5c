package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LeadMetrics exposes counters/histograms for lead capture.
// A nil *LeadMetrics is valid and records nothing.
type LeadMetrics struct {
	created        *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	webhookTotal   *prometheus.CounterVec
	webhookLatency prometheus.Histogram
	storeErrors    *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lead_crm",
			Subsystem: "leads",
			Name:      "created_total",
			Help:      "Leads persisted, by source",
		}, []string{"source"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lead_crm",
			Subsystem: "leads",
			Name:      "rejected_total",
			Help:      "Create requests that failed validation, by reason",
		}, []string{"reason"}),
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lead_crm",
			Subsystem: "webhook",
			Name:      "deliveries_total",
			Help:      "Webhook outcomes after lead creation",
		}, []string{"status"}),
		webhookLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lead_crm",
			Subsystem: "webhook",
			Name:      "latency_seconds",
			Help:      "Latency of outbound webhook calls",
			Buckets:   prometheus.DefBuckets,
		}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lead_crm",
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Lead store failures, by operation",
		}, []string{"op"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.created, m.rejected, m.webhookTotal, m.webhookLatency, m.storeErrors)
	return m
}

func (m *LeadMetrics) ObserveCreated(source string) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(source).Inc()
}

func (m *LeadMetrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *LeadMetrics) ObserveWebhook(status string) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(status).Inc()
}

// ObserveWebhookLatency records the duration of an attempted delivery.
func (m *LeadMetrics) ObserveWebhookLatency(seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.Observe(seconds)
}

func (m *LeadMetrics) ObserveStoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}

// Handler serves the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
