package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sourcegraph/conc"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var mismatches atomic.Int32
	var wg conc.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Go(func() {
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil || v != "value" {
				mismatches.Add(1)
			}
		})
	}

	close(start)
	wg.Wait()

	if got := mismatches.Load(); got != 0 {
		t.Fatalf("%d workers saw an unexpected result", got)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (int, error) {
		calls.Add(1)
		return 42, nil
	}

	for i := 0; i < 2; i++ {
		got, err := store.GetOrLoad(context.Background(), "k", loader)
		if err != nil {
			t.Fatalf("GetOrLoad #%d: %v", i, err)
		}
		if got != 42 {
			t.Fatalf("unexpected value: %d", got)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	boom := errors.New("boom")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "", boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("failed load must not be cached")
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "cards:a", "A")
	store.Set(context.Background(), "decks:b", "B")

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "cards:a"); ok {
		t.Fatalf("expected entry to expire")
	}

	store.DeletePrefix(context.Background(), "decks:")
	if store.Len() != 0 {
		t.Fatalf("expected prefix delete to clear entries, got %d", store.Len())
	}
}
