package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"shipdate-policy-service/internal/domain"
)

func TestRedisDistanceCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisDistanceCache(mr.Addr(), 0)
	defer c.Close()

	ctx := context.Background()
	stored := domain.ResolvedMiles(42.5, "10 Elm St, Columbia, MD 21044, USA")

	if err := c.Put(ctx, "origin", "dest", stored); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, "origin", "dest")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.Miles == nil || *got.Miles != 42.5 {
		t.Fatalf("Miles = %v, want 42.5", got.Miles)
	}
	if got.ResolvedAddress != stored.ResolvedAddress {
		t.Fatalf("ResolvedAddress = %q", got.ResolvedAddress)
	}
}

func TestRedisDistanceCacheMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisDistanceCache(mr.Addr(), 0)
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "origin", "unknown")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestRedisDistanceCacheRejectsUnresolved(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisDistanceCache(mr.Addr(), 0)
	defer c.Close()

	err := c.Put(context.Background(), "origin", "dest", domain.DistanceResult{Note: domain.NoteNoValidCity})
	if err == nil {
		t.Fatal("unresolved results must be rejected")
	}
}

func TestRedisDistanceCacheValidatesKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisDistanceCache(mr.Addr(), 0)
	defer c.Close()

	if _, _, err := c.Get(context.Background(), "", "dest"); err == nil {
		t.Fatal("empty origin must be rejected")
	}
	if err := c.Put(context.Background(), "origin", "  ", domain.ResolvedMiles(1, "a, b, c")); err == nil {
		t.Fatal("blank destination must be rejected")
	}
}
