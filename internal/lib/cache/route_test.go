package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRedis implements the handful of commands RouteCache issues.
type memoryRedis struct {
	redis.Cmdable

	data     map[string]string
	ttls     map[string]time.Duration
	failDel  bool
	failIncr bool
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.data[key] = string(value.([]byte))
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	if m.failIncr {
		return redis.NewIntResult(0, errors.New("redis down"))
	}
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (m *memoryRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if m.failDel {
		return redis.NewIntResult(0, errors.New("redis down"))
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type listing struct {
	IDs []string `json:"ids"`
}

const listingPath = "/dashboard/invoices"

func TestRouteCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	rdb := newMemoryRedis()
	c := NewRouteCache(rdb, time.Minute)

	var got listing
	version, hit, err := c.Load(ctx, listingPath, &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(0), version)

	require.NoError(t, c.Store(ctx, listingPath, version, listing{IDs: []string{"a", "b"}}))
	assert.Equal(t, time.Minute, rdb.ttls["route:/dashboard/invoices"])

	_, hit, err = c.Load(ctx, listingPath, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, got.IDs)
}

func TestRouteCache_RevalidateDropsEntry(t *testing.T) {
	ctx := context.Background()
	rdb := newMemoryRedis()
	c := NewRouteCache(rdb, time.Minute)

	require.NoError(t, c.Store(ctx, listingPath, 0, listing{}))
	require.NoError(t, c.Revalidate(ctx, listingPath))

	version, hit, err := c.Load(ctx, listingPath, &listing{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(1), version)
}

func TestRouteCache_PayloadBuiltBeforeRevalidateIsNotServed(t *testing.T) {
	ctx := context.Background()
	c := NewRouteCache(newMemoryRedis(), time.Minute)

	version, hit, err := c.Load(ctx, listingPath, &listing{})
	require.NoError(t, err)
	require.False(t, hit)

	// A write commits and revalidates while the reader is still rebuilding.
	require.NoError(t, c.Revalidate(ctx, listingPath))
	require.NoError(t, c.Store(ctx, listingPath, version, listing{IDs: []string{"old"}}))

	current, hit, err := c.Load(ctx, listingPath, &listing{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, version+1, current)

	require.NoError(t, c.Store(ctx, listingPath, current, listing{IDs: []string{"old", "new"}}))

	var got listing
	_, hit, err = c.Load(ctx, listingPath, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"old", "new"}, got.IDs)
}

func TestRouteCache_RevalidateError(t *testing.T) {
	for name, rdb := range map[string]*memoryRedis{
		"incr": {data: map[string]string{}, failIncr: true},
		"del":  {data: map[string]string{}, failDel: true},
	} {
		t.Run(name, func(t *testing.T) {
			err := NewRouteCache(rdb, time.Minute).Revalidate(context.Background(), listingPath)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "redis down")
		})
	}
}

func TestRouteCache_CorruptEntry(t *testing.T) {
	rdb := newMemoryRedis()
	rdb.data[Key("/x")] = "{not json"

	_, _, err := NewRouteCache(rdb, time.Minute).Load(context.Background(), "/x", &listing{})

	require.Error(t, err)
}

func TestRouteCache_CorruptVersion(t *testing.T) {
	rdb := newMemoryRedis()
	rdb.data[VersionKey("/x")] = "abc"

	_, _, err := NewRouteCache(rdb, time.Minute).Load(context.Background(), "/x", &listing{})

	require.Error(t, err)
}
