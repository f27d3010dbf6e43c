package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_FetchOnce(t *testing.T) {
	cache := New(DefaultTTL)
	var fetches atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		fetches.Add(1)
		return "v1", nil
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		got, err := cache.Get(ctx, "k", fetch)
		require.NoError(t, err)
		assert.Equal(t, "v1", got)
	}
	assert.Equal(t, int32(1), fetches.Load())
}

func TestCache_InvalidateRefetches(t *testing.T) {
	cache := New(DefaultTTL)
	var fetches atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		return fetches.Add(1), nil
	}

	ctx := context.Background()
	got, err := cache.Get(ctx, "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(1), got)

	cache.Invalidate("k")

	got, err = cache.Get(ctx, "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), got, "a read after invalidation must not see the pre-mutation value")
}

func TestCache_InvalidatePrefix(t *testing.T) {
	cache := New(DefaultTTL)
	ctx := context.Background()
	keys := []string{"contacts", "contacts/page/1/25", "contacts/page/2/25", "contactsettings", "agents"}
	for _, key := range keys {
		key := key
		_, err := cache.Get(ctx, key, func(ctx context.Context) (any, error) { return key, nil })
		require.NoError(t, err)
	}

	cache.InvalidatePrefix("contacts")

	for _, key := range []string{"contacts", "contacts/page/1/25", "contacts/page/2/25"} {
		_, ok := cache.Peek(key)
		assert.False(t, ok, "%s should be dropped", key)
	}
	_, ok := cache.Peek("contactsettings")
	assert.True(t, ok, "a sibling key sharing a string prefix is untouched")
	_, ok = cache.Peek("agents")
	assert.True(t, ok)
}

func TestCache_InvalidateDuringInFlightFetch(t *testing.T) {
	cache := New(DefaultTTL)
	var fetches atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		if fetches.Add(1) == 1 {
			<-release
			return "pre-mutation", nil
		}
		return "post-mutation", nil
	}

	first := make(chan any, 1)
	go func() {
		got, _ := cache.Get(context.Background(), "agents", fetch)
		first <- got
	}()
	require.Eventually(t, func() bool { return fetches.Load() == 1 },
		time.Second, time.Millisecond, "first fetch running")

	// mutation lands and invalidates while the read is still in flight
	cache.Invalidate("agents")
	close(release)
	assert.Equal(t, "pre-mutation", <-first, "the caller that started before the mutation keeps its result")

	_, ok := cache.Peek("agents")
	assert.False(t, ok, "a result fetched before the invalidation is never stored")

	got, err := cache.Get(context.Background(), "agents", fetch)
	require.NoError(t, err)
	assert.Equal(t, "post-mutation", got, "the read after the invalidation refetches")
}

func TestCache_InvalidatePrefixDuringInFlightFetch(t *testing.T) {
	cache := New(DefaultTTL)
	var fetches atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		if fetches.Add(1) == 1 {
			<-release
			return "pre-mutation", nil
		}
		return "post-mutation", nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = cache.Get(context.Background(), "contacts/page/1/25", fetch)
	}()
	require.Eventually(t, func() bool { return fetches.Load() == 1 },
		time.Second, time.Millisecond)

	cache.InvalidatePrefix("contacts")
	close(release)
	<-done

	_, ok := cache.Peek("contacts/page/1/25")
	assert.False(t, ok, "prefix invalidation discards in-flight results under the prefix")

	got, err := cache.Get(context.Background(), "contacts/page/1/25", fetch)
	require.NoError(t, err)
	assert.Equal(t, "post-mutation", got)
}

func TestCache_ConcurrentGetsShareOneFetch(t *testing.T) {
	cache := New(DefaultTTL)
	var fetches atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		fetches.Add(1)
		close(started)
		<-release
		return "shared", nil
	}

	const readers = 10
	var wg sync.WaitGroup
	results := make([]any, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := cache.Get(context.Background(), "k", fetch)
			require.NoError(t, err)
			results[i] = got
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), fetches.Load(), "overlapping reads collapse to one fetch")
	for _, got := range results {
		assert.Equal(t, "shared", got)
	}
}

func TestCache_ErrorsNotCached(t *testing.T) {
	cache := New(DefaultTTL)
	var fetches atomic.Int32
	boom := errors.New("boom")
	fetch := func(ctx context.Context) (any, error) {
		if fetches.Add(1) == 1 {
			return nil, boom
		}
		return "ok", nil
	}

	ctx := context.Background()
	_, err := cache.Get(ctx, "k", fetch)
	require.ErrorIs(t, err, boom)

	got, err := cache.Get(ctx, "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, int32(2), fetches.Load())
}

func TestCache_AbandonedCallerDoesNotCancelSharedFetch(t *testing.T) {
	cache := New(DefaultTTL)
	release := make(chan struct{})
	fetched := make(chan error, 1)
	fetch := func(ctx context.Context) (any, error) {
		<-release
		fetched <- ctx.Err()
		return "late", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, "k", fetch)
		done <- err
	}()

	cancel()
	require.ErrorIs(t, <-done, context.Canceled, "the abandoning caller gets its context error")

	close(release)
	require.NoError(t, <-fetched, "the shared fetch keeps running uncancelled")

	require.Eventually(t, func() bool {
		_, ok := cache.Peek("k")
		return ok
	}, time.Second, 5*time.Millisecond, "the result is still stored for later readers")
}

func TestCache_TTLExpiry(t *testing.T) {
	cache := New(20 * time.Millisecond)
	var fetches atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		return fetches.Add(1), nil
	}

	ctx := context.Background()
	_, err := cache.Get(ctx, "k", fetch)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	got, err := cache.Get(ctx, "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), got, "a stale entry is refetched")
}

func TestCache_Clear(t *testing.T) {
	cache := New(DefaultTTL)
	ctx := context.Background()
	_, err := cache.Get(ctx, "a", func(ctx context.Context) (any, error) { return 1, nil })
	require.NoError(t, err)

	cache.Clear()

	_, ok := cache.Peek("a")
	assert.False(t, ok)
}

func TestTypedGet(t *testing.T) {
	cache := New(DefaultTTL)
	ctx := context.Background()

	got, err := Get(ctx, cache, "n", func(ctx context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	// same key read with the wrong type
	_, err = Get(ctx, cache, "n", func(ctx context.Context) (string, error) { return "", nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holds int")
}
