package youtube

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeContract(t *testing.T, store Store) {
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "pushups")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Add(ctx, "pushups", "vid-1"))
	videoID, ok, err := store.Get(ctx, "pushups")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "vid-1", videoID)

	// Entries are never replaced.
	require.NoError(t, store.Add(ctx, "pushups", "vid-2"))
	videoID, _, _ = store.Get(ctx, "pushups")
	assert.Equal(t, "vid-1", videoID)

	// Keys are raw query strings.
	_, ok, _ = store.Get(ctx, "Pushups")
	assert.False(t, ok)

	require.NoError(t, store.Add(ctx, "squats", "vid-3"))
	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	storeContract(t, store)
}

func TestMemoryStoreConcurrentAdds(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Add(ctx, "deadlift", "vid-dl")
			store.Get(ctx, "deadlift")
		}()
	}
	wg.Wait()

	n, _ := store.Len(ctx)
	assert.Equal(t, 1, n)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	storeContract(t, store)
	stored, _ := mr.Get(redisKeyPrefix + "pushups")
	assert.Equal(t, "vid-1", stored)
	assert.Zero(t, mr.TTL(redisKeyPrefix+"pushups"), "entries must not expire")
}

func TestNewStoreFallsBackToMemory(t *testing.T) {
	_, isMemory := NewStore("").(*MemoryStore)
	assert.True(t, isMemory)

	_, isMemory = NewStore("redis://127.0.0.1:1").(*MemoryStore)
	assert.True(t, isMemory)

	mr := miniredis.RunT(t)
	store := NewStore("redis://" + mr.Addr())
	defer store.Close()
	_, isRedis := store.(*RedisStore)
	assert.True(t, isRedis)
}
