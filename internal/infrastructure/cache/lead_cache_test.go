package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
)

func TestLeadCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewLeadCache(rdb, time.Minute)
	ctx := context.Background()

	got, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	company := "Acme"
	lead := &entity.Lead{
		ID:        "abc",
		Name:      "Ann",
		Email:     "a@x.co",
		Company:   &company,
		Source:    entity.SourceReferral,
		CreatedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.Set(ctx, lead))
	assert.True(t, mr.Exists("lead:abc"))
	assert.Equal(t, time.Minute, mr.TTL("lead:abc"))

	got, err = c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, lead, got)
}

func TestLeadCache_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	c := NewLeadCache(rdb, time.Minute)
	_, err := c.Get(context.Background(), "abc")
	assert.Error(t, err)
}
