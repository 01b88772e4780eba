package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries  map[string][]byte
	getErr   error
	setErr   error
	setTTL   time.Duration
	patterns []string
}

func (r *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if r.getErr != nil {
		return r.getErr
	}
	raw, ok := r.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (r *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.setErr != nil {
		return r.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if r.entries == nil {
		r.entries = map[string][]byte{}
	}
	r.entries[key] = raw
	r.setTTL = ttl
	return nil
}

func (r *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	r.patterns = append(r.patterns, pattern)
	return nil
}

type cachedCount struct {
	N int `json:"n"`
}

func TestCacheServiceRememberComputesThenHits(t *testing.T) {
	repo := &memoryCacheRepo{}
	svc := NewCacheService(repo, NewMetricsService(), time.Minute, nil, true)
	calls := 0
	compute := func(context.Context) (interface{}, error) {
		calls++
		return &cachedCount{N: 7}, nil
	}

	value, hit, err := svc.Remember(context.Background(), "k", &cachedCount{}, 0, compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 7, value.(*cachedCount).N)
	assert.Equal(t, time.Minute, repo.setTTL)

	value, hit, err = svc.Remember(context.Background(), "k", &cachedCount{}, 0, compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, value.(*cachedCount).N)
	assert.Equal(t, 1, calls)
}

func TestCacheServiceRememberSurvivesStoreFailures(t *testing.T) {
	repo := &memoryCacheRepo{getErr: errors.New("read timeout"), setErr: errors.New("oom")}
	svc := NewCacheService(repo, nil, 0, nil, true)

	value, hit, err := svc.Remember(context.Background(), "k", &cachedCount{}, time.Second, func(context.Context) (interface{}, error) {
		return &cachedCount{N: 1}, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, value.(*cachedCount).N)
}

func TestCacheServiceRememberPropagatesComputeError(t *testing.T) {
	svc := NewCacheService(&memoryCacheRepo{}, nil, 0, nil, true)
	_, _, err := svc.Remember(context.Background(), "k", &cachedCount{}, 0, func(context.Context) (interface{}, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := &memoryCacheRepo{}
	svc := NewCacheService(repo, nil, 0, nil, false)

	hit, err := svc.Get(context.Background(), "k", &cachedCount{})
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, svc.Set(context.Background(), "k", cachedCount{}, 0))
	require.NoError(t, svc.Invalidate(context.Background(), "dashboard:*"))
	assert.Empty(t, repo.entries)
	assert.Empty(t, repo.patterns)

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
}
