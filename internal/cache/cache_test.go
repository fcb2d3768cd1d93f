package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "explorer:snapshot:hash:abc", SnapshotHashKey("abc"))
	assert.Equal(t, "explorer:snapshot:height:42", SnapshotHeightKey(42))
	assert.Equal(t, "explorer:snapshot:latest", LatestSnapshotKey)
	assert.Equal(t, "explorer:block:b1", BlockKey("b1"))
	assert.Equal(t, "explorer:transaction:t1", TransactionKey("t1"))
}

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCacheSurfacesConnectionErrors(t *testing.T) {
	c := New(unreachableClient(t))
	ctx := context.Background()

	var dest map[string]string
	hit, err := c.Get(ctx, BlockKey("b1"), &dest)
	require.Error(t, err)
	assert.False(t, hit)
	assert.Contains(t, err.Error(), "cache get explorer:block:b1")

	err = c.Set(ctx, BlockKey("b1"), map[string]string{"hash": "b1"}, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache set explorer:block:b1")
}

func TestCacheRejectsUnencodableValues(t *testing.T) {
	c := New(unreachableClient(t))

	err := c.Set(context.Background(), "k", make(chan int), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache encode k")
}
