package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	ctx := context.Background()

	if _, ok := s.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}

	s.Set(ctx, "k", "v")
	got, ok := s.Get(ctx, "k")
	if !ok || got.(string) != "v" {
		t.Fatalf("unexpected cached value: %v ok=%v", got, ok)
	}

	s.Delete(ctx, "k")
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestStore_ExpiredEntryIsEvicted(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Nanosecond)
	ctx := context.Background()

	s.Set(ctx, "k", 1)
	time.Sleep(time.Millisecond)

	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestStore_GetOrLoadCachesLoaderResult(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	ctx := context.Background()

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		got, err := s.GetOrLoad(ctx, "k", loader)
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if got.(string) != "loaded" {
			t.Fatalf("unexpected value: %v", got)
		}
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
}

func TestStore_GetOrLoadDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	ctx := context.Background()

	loads := 0
	_, err := s.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		loads++
		return nil, fmt.Errorf("boom")
	})
	if err == nil {
		t.Fatalf("expected loader error")
	}

	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatalf("failed load must not populate the cache")
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
}
