package repository

import (
	"context"

	"github.com/linkora-app/linkora-backend/internal/domain"
)

// CandidateFilter narrows the broad candidate fetch used by the attribute
// strategy. All fields optional.
type CandidateFilter struct {
	Industry        string
	Skills          []string
	ExcludeUserIDs  []int
	OnlyWithProfile bool
}

// NearbyProfile is a profile row annotated with the distance to the
// requesting user, as computed by the store.
type NearbyProfile struct {
	domain.Profile
	DistanceKm float64 `db:"distance_km"`
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	UpdateLocation(ctx context.Context, userID int, lat, lon float64) error
	UpdateAvatarKey(ctx context.Context, userID int, key string) error
	// SearchCandidates returns profiles excluding the requester, newest first.
	SearchCandidates(ctx context.Context, userID int, filter CandidateFilter, limit int) ([]*domain.Profile, error)
	// SearchNearby returns profiles within radiusKm of (lat, lon) ordered by
	// distance ascending. An empty result is not an error.
	SearchNearby(ctx context.Context, userID int, lat, lon, radiusKm float64, limit int) ([]*NearbyProfile, error)
}
