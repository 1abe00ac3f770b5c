package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-lead-crm/internal/interface/middleware"
	"github.com/oksasatya/go-lead-crm/internal/observability/metrics"
)

// MetricsModule serves Prometheus metrics, rate-limited per IP except for
// private network scrapers.
type MetricsModule struct {
	Gatherer prometheus.Gatherer
	Redis    *redis.Client
}

func NewMetricsModule(g prometheus.Gatherer, rdb *redis.Client) *MetricsModule {
	return &MetricsModule{Gatherer: g, Redis: rdb}
}

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP(), nil)
	rg.GET("/metrics", rl, gin.WrapH(metrics.Handler(m.Gatherer)))
}
