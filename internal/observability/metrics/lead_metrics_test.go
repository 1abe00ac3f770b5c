package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestLeadMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)

	m.ObserveCreated("Website")
	m.ObserveCreated("Website")
	m.ObserveRejected("invalid source")
	m.ObserveWebhook("Not Sent")
	m.ObserveWebhook("Success")
	m.ObserveWebhookLatency(0.2)
	m.ObserveStoreError("create")

	body := scrape(t, reg)
	assert.Contains(t, body, `lead_crm_leads_created_total{source="Website"} 2`)
	assert.Contains(t, body, `lead_crm_leads_rejected_total{reason="invalid source"} 1`)
	assert.Contains(t, body, `lead_crm_webhook_deliveries_total{status="Not Sent"} 1`)
	assert.Contains(t, body, `lead_crm_webhook_latency_seconds_count 1`)
	assert.Contains(t, body, `lead_crm_store_errors_total{op="create"} 1`)
}

func TestLeadMetrics_NilSafe(t *testing.T) {
	var m *LeadMetrics
	m.ObserveCreated("Website")
	m.ObserveRejected("name required")
	m.ObserveWebhook("Failed")
	m.ObserveWebhookLatency(1)
	m.ObserveStoreError("list")
}

func TestLeadMetrics_CustomRegistryIsolated(t *testing.T) {
	// two instances on separate registries must not collide
	NewLeadMetrics(prometheus.NewRegistry())
	NewLeadMetrics(prometheus.NewRegistry())
}
