package redisrepo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkora-app/linkora-backend/internal/domain"
)

// CandidateCache holds scored candidate lists for a short TTL so repeated
// refreshes within the window skip the fetch strategies. Entries expire by
// TTL only.
type CandidateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCandidateCache(client *redis.Client, ttl time.Duration) *CandidateCache {
	return &CandidateCache{client: client, ttl: ttl}
}

func cacheKey(userID int, filters domain.MatchmakingFilters) string {
	skills := append([]string(nil), filters.Skills...)
	sort.Strings(skills)

	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%t|%s|%s",
		strings.ToLower(filters.Industry),
		strings.ToLower(strings.Join(skills, ",")),
		filters.RadiusKm,
		filters.UseLocation,
		filters.Goal,
		strings.ToLower(filters.ExperienceLevel),
	)
	return fmt.Sprintf("matchmaking:candidates:%d:%s", userID, hex.EncodeToString(h.Sum(nil))[:16])
}

func (c *CandidateCache) Get(ctx context.Context, userID int, filters domain.MatchmakingFilters) ([]domain.Candidate, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(userID, filters)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read candidate cache: %w", err)
	}

	var candidates []domain.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		// A corrupt entry behaves like a miss.
		return nil, false, nil
	}
	return candidates, true, nil
}

func (c *CandidateCache) Set(ctx context.Context, userID int, filters domain.MatchmakingFilters, candidates []domain.Candidate) error {
	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("encode candidates: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(userID, filters), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("store candidate cache: %w", err)
	}
	return nil
}
