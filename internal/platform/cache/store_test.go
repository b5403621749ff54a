package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoadCachesValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	var loads atomic.Int32
	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "standings", nil
	}

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "k", loader)
		if err != nil {
			t.Fatalf("GetOrLoad error: %v", err)
		}
		if value != "standings" {
			t.Fatalf("unexpected value: %v", value)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected one load, got %d", got)
	}
}

func TestStore_ExpiredEntriesReload(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Nanosecond)
	ctx := context.Background()

	store.Set(ctx, "k", "old")
	time.Sleep(time.Millisecond)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to be evicted")
	}
}

func TestStore_ConcurrentLoadsCollapse(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	var loads atomic.Int32
	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.GetOrLoad(ctx, "k", loader); err != nil {
				t.Errorf("GetOrLoad error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected concurrent loads to collapse into one, got %d", got)
	}
}
