package router

import (
	"github.com/oksasatya/go-lead-crm/internal/container"
	handlers "github.com/oksasatya/go-lead-crm/internal/interface/http"
	"github.com/oksasatya/go-lead-crm/internal/router/modules"
)

// InitModules builds every feature module from the container and adds it to the registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	leadHandler := handlers.NewLeadHandler(c.LeadService, c.Logger)
	r.Add(modules.NewLeadModule(leadHandler, c.Redis, c.Config.LeadCreateRateLimit, c.Logger))

	if c.MetricsRegistry != nil {
		r.Add(modules.NewMetricsModule(c.MetricsRegistry, c.Redis))
	}
}
