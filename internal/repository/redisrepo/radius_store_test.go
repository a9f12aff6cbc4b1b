package redisrepo

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *RadiusStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRadiusStore(client, 25, 25, 100)
}

func TestRadiusStoreDefaultsWhenUnset(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Errorf("radius = %d, want default 25", got)
	}
}

func TestRadiusStoreExpandCapsAtCeiling(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := []int{50, 75, 100, 100, 100}
	for i, expected := range want {
		got, err := store.Expand(ctx, 1)
		if err != nil {
			t.Fatalf("expand %d: unexpected error: %v", i, err)
		}
		if got != expected {
			t.Fatalf("expand %d: radius = %d, want %d", i, got, expected)
		}
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 100 {
		t.Errorf("stored radius = %d, want 100", got)
	}
}

func TestRadiusStorePerUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Expand(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Errorf("user 2 radius = %d, want untouched default 25", got)
	}
}

func TestRadiusStoreReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Expand(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Reset(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Errorf("radius after reset = %d, want default 25", got)
	}
}

func TestRadiusStoreIgnoresGarbageValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewRadiusStore(client, 25, 25, 100)

	mr.Set(radiusKey(1), "not-a-number")

	got, err := store.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Errorf("radius = %d, want default 25 for garbage value", got)
	}
}
