package container

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lead-crm/config"
	"github.com/oksasatya/go-lead-crm/internal/application"
	"github.com/oksasatya/go-lead-crm/internal/infrastructure/memory"
	"github.com/oksasatya/go-lead-crm/pkg/helpers"
)

func TestNew_OptionalDepsStayNil(t *testing.T) {
	cfg := &config.Config{MetricsEnabled: false}
	c := New(cfg, nil, memory.NewLeadRepository())

	require.NotNil(t, c.LeadService)
	assert.Nil(t, c.LeadService.Cache)
	assert.Nil(t, c.LeadService.Index)
	assert.Nil(t, c.LeadService.Events)
	assert.Nil(t, c.MetricsRegistry)
	assert.NotNil(t, c.LeadService.Webhook)
	c.Close()
}

func TestBuild_MemoryStoreWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		StoreDriver:    "memory",
		RedisAddr:      mr.Addr(),
		MetricsEnabled: true,
	}
	c, err := Build(context.Background(), cfg, helpers.NopLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.Nil(t, c.PGPool)
	require.NotNil(t, c.Redis)
	assert.NotNil(t, c.LeadService.Cache)
	assert.NotNil(t, c.MetricsRegistry)
	assert.NotNil(t, c.LeadMetrics)

	res, err := c.LeadService.CreateLead(context.Background(), application.CreateLeadInput{Name: "Ann", Email: "a@x.co"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("lead:"+res.Lead.ID), "created lead is cached")
}

func TestBuild_UnreachableRedisIsOptional(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c, err := Build(context.Background(), &config.Config{StoreDriver: "memory", RedisAddr: addr}, helpers.NopLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.LeadService.Cache)
}
