package redisreg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataworks/cata-api/internal/core"
	"github.com/cataworks/cata-api/internal/testutil"
)

func TestRegistryRecordAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	reg := NewRegistry(client, time.Hour)
	ctx := context.Background()

	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	err := reg.Record(ctx, core.JobRegistryEntry{
		JobID:     "job-abc",
		Products:  12,
		CreatedAt: created,
	})
	require.NoError(t, err)

	entry, err := reg.Get(ctx, "job-abc")
	require.NoError(t, err)
	assert.Equal(t, "job-abc", entry.JobID)
	assert.Equal(t, 12, entry.Products)
	assert.True(t, entry.CreatedAt.Equal(created))

	ttl, err := client.TTL(ctx, "cata:job:job-abc").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRegistryGetMissing(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	reg := NewRegistry(client, time.Hour)

	_, err := reg.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryCount(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	reg := NewRegistry(client, time.Hour)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, reg.Record(ctx, core.JobRegistryEntry{JobID: id, Products: 1}))
	}

	count, err := reg.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRegistryRecordRequiresID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	reg := NewRegistry(client, time.Hour)

	err := reg.Record(context.Background(), core.JobRegistryEntry{})
	require.Error(t, err)
}
