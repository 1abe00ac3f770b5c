package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("API_PREFIX", "")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.False(t, cfg.UseMemoryStore())
	assert.Empty(t, cfg.WebhookURL)
	assert.Equal(t, 5*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, "", cfg.APIPrefix)
	assert.Equal(t, "leads", cfg.ESLeadsIndex)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("API_PREFIX", "/api/")
	t.Setenv("WEBHOOK_URL", "  https://hooks.example.com/lead  ")
	t.Setenv("WEBHOOK_TIMEOUT", "250ms")
	t.Setenv("LEAD_CREATE_RATE_LIMIT", "nope")
	t.Setenv("ELASTICSEARCH_ADDRS", "http://es1:9200, ,http://es2:9200")

	cfg := Load()

	assert.True(t, cfg.UseMemoryStore())
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "https://hooks.example.com/lead", cfg.WebhookURL)
	assert.Equal(t, 250*time.Millisecond, cfg.WebhookTimeout)
	assert.Equal(t, 30, cfg.LeadCreateRateLimit, "invalid int falls back to default")
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "leads", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/leads?sslmode=disable", cfg.PostgresDSN())
}
