// Package cache keeps recently read leads in Redis. Leads never change after
// creation, so entries only expire by TTL.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
	"github.com/oksasatya/go-lead-crm/pkg/helpers"
)

const keyPrefix = "lead:"

type LeadCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewLeadCache(rdb redis.Cmdable, ttl time.Duration) *LeadCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &LeadCache{rdb: rdb, ttl: ttl}
}

func Key(id string) string { return keyPrefix + id }

// Get returns (nil, nil) on a miss.
func (c *LeadCache) Get(ctx context.Context, id string) (*entity.Lead, error) {
	var l entity.Lead
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, Key(id), &l)
	if err != nil || !ok {
		return nil, err
	}
	return &l, nil
}

func (c *LeadCache) Set(ctx context.Context, lead *entity.Lead) error {
	return helpers.RedisSetJSON(ctx, c.rdb, Key(lead.ID), lead, c.ttl)
}
