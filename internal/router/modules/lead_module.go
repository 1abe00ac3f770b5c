package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-lead-crm/internal/interface/http"
	"github.com/oksasatya/go-lead-crm/internal/interface/middleware"
)

// LeadModule wires the lead handlers:
// GET /leads, POST /leads, GET /leads/stats, GET /leads/search, GET /leads/:id
type LeadModule struct {
	Handler *handlers.LeadHandler
	// CreateLimiter guards POST /leads; a no-op when Redis is not configured.
	CreateLimiter gin.HandlerFunc
}

// NewLeadModule limits lead creation to createPerMinute requests per client IP.
func NewLeadModule(h *handlers.LeadHandler, rdb *redis.Client, createPerMinute int, logger logrus.FieldLogger) *LeadModule {
	return &LeadModule{
		Handler:       h,
		CreateLimiter: middleware.RateLimit(rdb, createPerMinute, time.Minute, middleware.KeyByIPAndRoute(), nil, logger),
	}
}

func (m *LeadModule) Register(rg *gin.RouterGroup) {
	leads := rg.Group("/leads")
	leads.GET("", m.Handler.List)
	leads.POST("", m.CreateLimiter, m.Handler.Create)
	leads.GET("/stats", m.Handler.Stats)
	leads.GET("/search", m.Handler.Search)
	leads.GET("/:id", m.Handler.Get)
}
