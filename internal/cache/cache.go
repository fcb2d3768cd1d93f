// Package cache stores explorer lookups in Redis as JSON.
//
// Snapshots, blocks and transactions never change once written, so they are
// kept for the long TTL. The latest snapshot moves and uses a short one.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "explorer:"

// Cache is a thin JSON layer over a Redis client.
type Cache struct {
	client redis.Cmdable
}

func New(client redis.Cmdable) *Cache {
	return &Cache{client: client}
}

// Get decodes the value at key into dest. It reports false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "cache get %s", key)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, errors.Wrapf(err, "cache decode %s", key)
	}
	return true, nil
}

// Set stores value at key for ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "cache encode %s", key)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return errors.Wrapf(err, "cache set %s", key)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "cache delete")
	}
	return nil
}

func SnapshotHashKey(hash string) string {
	return keyPrefix + "snapshot:hash:" + hash
}

func SnapshotHeightKey(height int64) string {
	return keyPrefix + "snapshot:height:" + strconv.FormatInt(height, 10)
}

// LatestSnapshotKey holds the newest snapshot.
const LatestSnapshotKey = keyPrefix + "snapshot:latest"

func BlockKey(hash string) string {
	return keyPrefix + "block:" + hash
}

func TransactionKey(hash string) string {
	return keyPrefix + "transaction:" + hash
}
