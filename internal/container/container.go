// Package container builds the application's components once at startup and
// hands them to the router. Nothing here is package-level state.
package container

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lead-crm/config"
	"github.com/oksasatya/go-lead-crm/internal/application"
	"github.com/oksasatya/go-lead-crm/internal/domain/repository"
	"github.com/oksasatya/go-lead-crm/internal/infrastructure/cache"
	"github.com/oksasatya/go-lead-crm/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-lead-crm/internal/infrastructure/postgres"
	"github.com/oksasatya/go-lead-crm/internal/infrastructure/search"
	"github.com/oksasatya/go-lead-crm/internal/infrastructure/webhook"
	"github.com/oksasatya/go-lead-crm/internal/observability/metrics"
	"github.com/oksasatya/go-lead-crm/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	// optional infrastructure, nil when not configured or unreachable
	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	// MetricsRegistry is nil when metrics are disabled.
	MetricsRegistry *prometheus.Registry
	LeadMetrics     *metrics.LeadMetrics

	LeadRepo    repository.LeadRepository
	LeadService *application.LeadService
}

// Build connects to everything cfg asks for. Postgres is required unless the
// memory store is selected; Redis, Elasticsearch and RabbitMQ are optional and
// only logged when unreachable.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if cfg.UseMemoryStore() {
		logger.Warn("using in-memory lead store; data is lost on restart")
		c.LeadRepo = memory.NewLeadRepository()
	} else {
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.PGPool = pool
		c.LeadRepo = pginfra.NewLeadRepository(pool)
	}

	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			helpers.LogWarn(logger, "redis unavailable, cache and rate limiting disabled", err, logrus.Fields{"addr": cfg.RedisAddr})
			_ = rdb.Close()
		} else {
			c.Redis = rdb
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			helpers.LogWarn(logger, "elasticsearch client init failed, search falls back to store", err, nil)
		} else {
			c.ES = es
			if err := search.NewLeadIndex(es, cfg.ESLeadsIndex).EnsureIndex(ctx); err != nil {
				helpers.LogWarn(logger, "ensure leads index failed", err, logrus.Fields{"index": cfg.ESLeadsIndex})
			}
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQLeadQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq unavailable, lead events disabled", err, nil)
		} else {
			c.RabbitPub = pub
		}
	}

	c.wire()
	return c, nil
}

// New builds a container around an existing repository without touching the
// network. Used by tests and tools that bring their own store.
func New(cfg *config.Config, logger *logrus.Logger, repo repository.LeadRepository) *Container {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	c := &Container{Config: cfg, Logger: logger, LeadRepo: repo}
	c.wire()
	return c
}

func (c *Container) wire() {
	cfg := c.Config
	if cfg.MetricsEnabled && c.MetricsRegistry == nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		c.MetricsRegistry = reg
		c.LeadMetrics = metrics.NewLeadMetrics(reg)
	}

	// interfaces stay nil rather than holding nil pointers
	var (
		leadCache application.LeadCache
		leadIndex application.LeadIndex
		events    application.EventPublisher
	)
	if c.Redis != nil {
		leadCache = cache.NewLeadCache(c.Redis, cfg.LeadCacheTTL)
	}
	if c.ES != nil {
		leadIndex = search.NewLeadIndex(c.ES, cfg.ESLeadsIndex)
	}
	if c.RabbitPub != nil {
		events = c.RabbitPub
	}

	c.LeadService = application.NewLeadService(
		c.LeadRepo,
		webhook.NewNotifier(cfg.WebhookURL, cfg.WebhookTimeout, c.Logger),
		leadCache,
		leadIndex,
		events,
		c.LeadMetrics,
		c.Logger,
	)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
