package redisrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RadiusStore keeps the per-user proximity search radius. The radius starts
// at a default, grows in fixed increments, and never exceeds the ceiling.
type RadiusStore struct {
	client      *redis.Client
	defaultKm   int
	incrementKm int
	maxKm       int
}

func NewRadiusStore(client *redis.Client, defaultKm, incrementKm, maxKm int) *RadiusStore {
	return &RadiusStore{
		client:      client,
		defaultKm:   defaultKm,
		incrementKm: incrementKm,
		maxKm:       maxKm,
	}
}

func radiusKey(userID int) string {
	return fmt.Sprintf("matchmaking:radius:%d", userID)
}

func (s *RadiusStore) Get(ctx context.Context, userID int) (int, error) {
	val, err := s.client.Get(ctx, radiusKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return s.defaultKm, nil
		}
		return 0, fmt.Errorf("read search radius: %w", err)
	}

	radius, err := strconv.Atoi(val)
	if err != nil || radius <= 0 {
		return s.defaultKm, nil
	}
	if radius > s.maxKm {
		radius = s.maxKm
	}
	return radius, nil
}

// Expand grows the stored radius by one increment, capped at the ceiling, and
// returns the new value.
func (s *RadiusStore) Expand(ctx context.Context, userID int) (int, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return 0, err
	}

	next := current + s.incrementKm
	if next > s.maxKm {
		next = s.maxKm
	}

	if err := s.client.Set(ctx, radiusKey(userID), strconv.Itoa(next), 0).Err(); err != nil {
		return 0, fmt.Errorf("store search radius: %w", err)
	}
	return next, nil
}

func (s *RadiusStore) Reset(ctx context.Context, userID int) error {
	if err := s.client.Del(ctx, radiusKey(userID)).Err(); err != nil {
		return fmt.Errorf("reset search radius: %w", err)
	}
	return nil
}
