package redisrepo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/linkora-app/linkora-backend/internal/domain"
)

func newTestCache(t *testing.T) (*CandidateCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCandidateCache(client, 5*time.Minute), mr
}

func sampleCandidates() []domain.Candidate {
	a := domain.Candidate{MatchScore: 80}
	a.UserID = 2
	a.DisplayName = "Bob"
	b := domain.Candidate{MatchScore: 55}
	b.UserID = 3
	b.DisplayName = "Carol"
	return []domain.Candidate{a, b}
}

func TestCandidateCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	filters := domain.MatchmakingFilters{Industry: "fintech", Skills: []string{"go"}}

	if _, ok, err := cache.Get(ctx, 1, filters); err != nil || ok {
		t.Fatalf("cold cache: ok=%v err=%v, want miss", ok, err)
	}

	if err := cache.Set(ctx, 1, filters, sampleCandidates()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := cache.Get(ctx, 1, filters)
	if err != nil || !ok {
		t.Fatalf("warm cache: ok=%v err=%v, want hit", ok, err)
	}
	if len(got) != 2 || got[0].UserID != 2 || got[0].MatchScore != 80 {
		t.Errorf("got %+v, want cached candidates back", got)
	}
}

func TestCandidateCacheKeyedByFilters(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, 1, domain.MatchmakingFilters{Industry: "fintech"}, sampleCandidates()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, _ := cache.Get(ctx, 1, domain.MatchmakingFilters{Industry: "gamedev"}); ok {
		t.Error("different filters must not share a cache entry")
	}
	if _, ok, _ := cache.Get(ctx, 2, domain.MatchmakingFilters{Industry: "fintech"}); ok {
		t.Error("different users must not share a cache entry")
	}
}

func TestCandidateCacheSkillOrderIrrelevant(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, 1, domain.MatchmakingFilters{Skills: []string{"go", "sql"}}, sampleCandidates()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, _ := cache.Get(ctx, 1, domain.MatchmakingFilters{Skills: []string{"sql", "go"}}); !ok {
		t.Error("skill order should not change the cache key")
	}
}

func TestCandidateCacheExpiresByTTL(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	filters := domain.MatchmakingFilters{}

	if err := cache.Set(ctx, 1, filters, sampleCandidates()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(6 * time.Minute)

	if _, ok, _ := cache.Get(ctx, 1, filters); ok {
		t.Error("entry should expire after the TTL")
	}
}

func TestCandidateCacheCorruptEntryIsMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	filters := domain.MatchmakingFilters{}

	mr.Set(cacheKey(1, filters), "{not json")

	if _, ok, err := cache.Get(ctx, 1, filters); ok || err != nil {
		t.Errorf("corrupt entry: ok=%v err=%v, want silent miss", ok, err)
	}
}
