// Package cache keeps rendered route payloads in Redis so that listing pages
// are served without hitting PostgreSQL until a mutation revalidates them.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	// KeyPrefix namespaces route payloads in Redis.
	KeyPrefix = "route:"
	// VersionKeyPrefix namespaces the revalidation counter of each route.
	VersionKeyPrefix = "route:version:"
)

// RouteCache stores JSON payloads per route path.
//
// Every path has a version that Revalidate increments. A payload is tagged
// with the version it was built at and only served while that version is
// current, so a payload built before a revalidation is never served after
// it, whenever it happens to be stored.
type RouteCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRouteCache(client redis.Cmdable, ttl time.Duration) *RouteCache {
	return &RouteCache{client: client, ttl: ttl}
}

// Key returns the Redis key of the payload of path.
func Key(path string) string {
	return KeyPrefix + path
}

// VersionKey returns the Redis key of the version of path.
func VersionKey(path string) string {
	return VersionKeyPrefix + path
}

type entry struct {
	Version int64           `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Load decodes the cached payload of path into dst. It returns the current
// version of path, which is what Store expects for a payload rebuilt after
// a miss, and reports false on a miss.
func (c *RouteCache) Load(ctx context.Context, path string, dst any) (int64, bool, error) {
	version, err := c.client.Get(ctx, VersionKey(path)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, false, errors.Wrapf(err, "load version of route %s", path)
	}

	raw, err := c.client.Get(ctx, Key(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return version, false, nil
	}
	if err != nil {
		return version, false, errors.Wrapf(err, "load cached route %s", path)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return version, false, errors.Wrapf(err, "decode cached route %s", path)
	}
	if e.Version != version {
		return version, false, nil
	}

	if err := json.Unmarshal(e.Data, dst); err != nil {
		return version, false, errors.Wrapf(err, "decode cached route %s", path)
	}
	return version, true, nil
}

// Store caches value as the payload of path, built at version.
func (c *RouteCache) Store(ctx context.Context, path string, version int64, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode route %s", path)
	}

	raw, err := json.Marshal(entry{Version: version, Data: data})
	if err != nil {
		return errors.Wrapf(err, "encode route %s", path)
	}

	if err := c.client.Set(ctx, Key(path), raw, c.ttl).Err(); err != nil {
		return errors.Wrapf(err, "store cached route %s", path)
	}
	return nil
}

// Revalidate moves path to a new version and drops its payload so the next
// read rebuilds it.
func (c *RouteCache) Revalidate(ctx context.Context, path string) error {
	if err := c.client.Incr(ctx, VersionKey(path)).Err(); err != nil {
		return errors.Wrapf(err, "revalidate route %s", path)
	}
	if err := c.client.Del(ctx, Key(path)).Err(); err != nil {
		return errors.Wrapf(err, "revalidate route %s", path)
	}
	return nil
}
