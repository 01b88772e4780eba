package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCacheRepositoryRoundTrip(t *testing.T) {
	mr, client := newMiniRedis(t)
	repo := NewCacheRepository(client, "careplan", nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "dashboard:u-1", map[string]int{"total": 3}, time.Minute))
	assert.True(t, mr.Exists("careplan:dashboard:u-1"))

	var got map[string]int
	require.NoError(t, repo.Get(ctx, "dashboard:u-1", &got))
	assert.Equal(t, 3, got["total"])

	mr.FastForward(2 * time.Minute)
	err := repo.Get(ctx, "dashboard:u-1", &got)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	mr, client := newMiniRedis(t)
	repo := NewCacheRepository(client, "careplan", nil)
	ctx := context.Background()

	for _, key := range []string{"dashboard:u-1:a", "dashboard:u-1:b", "dashboard:u-2:a", "history:u-1"} {
		require.NoError(t, repo.Set(ctx, key, "x", time.Minute))
	}

	require.NoError(t, repo.DeleteByPattern(ctx, "dashboard:u-1:*"))
	assert.False(t, mr.Exists("careplan:dashboard:u-1:a"))
	assert.False(t, mr.Exists("careplan:dashboard:u-1:b"))
	assert.True(t, mr.Exists("careplan:dashboard:u-2:a"))
	assert.True(t, mr.Exists("careplan:history:u-1"))
}

func TestCacheRepositoryNilClient(t *testing.T) {
	repo := NewCacheRepository(nil, "", nil)
	var dest string
	assert.ErrorIs(t, repo.Get(context.Background(), "k", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "k", "v", time.Minute))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "*"))
}
