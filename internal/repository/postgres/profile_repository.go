package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/linkora-app/linkora-backend/internal/domain"
	"github.com/linkora-app/linkora-backend/internal/repository"
)

const profileColumns = `
	id, user_id, display_name, bio, industry, experience_level,
	skills, interests, goal, location_lat, location_lon, location_updated_at,
	avatar_key, created_at, updated_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func scanProfile(row sqlx.ColScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.Bio, &p.Industry, &p.ExperienceLevel,
		pq.Array(&p.Skills), pq.Array(&p.Interests), &p.Goal,
		&p.LocationLat, &p.LocationLon, &p.LocationUpdatedAt,
		&p.AvatarKey, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, display_name, bio, industry, experience_level,
			skills, interests, goal, location_lat, location_lon, location_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.DisplayName, profile.Bio, profile.Industry,
		profile.ExperienceLevel, pq.Array(profile.Skills), pq.Array(profile.Interests),
		profile.Goal, profile.LocationLat, profile.LocationLon, profile.LocationUpdatedAt,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	query := `SELECT` + profileColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := scanProfile(r.db.QueryRowxContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, bio = $2, industry = $3, experience_level = $4,
		    skills = $5, interests = $6, goal = $7,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $8
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.DisplayName, profile.Bio, profile.Industry, profile.ExperienceLevel,
		pq.Array(profile.Skills), pq.Array(profile.Interests), profile.Goal,
		profile.UserID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) UpdateLocation(ctx context.Context, userID int, lat, lon float64) error {
	query := `
		UPDATE profiles
		SET location_lat = $1, location_lon = $2, location_updated_at = CURRENT_TIMESTAMP,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, lat, lon, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) UpdateAvatarKey(ctx context.Context, userID int, key string) error {
	query := `
		UPDATE profiles
		SET avatar_key = $1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, key, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SearchCandidates(ctx context.Context, userID int, filter repository.CandidateFilter, limit int) ([]*domain.Profile, error) {
	query := `SELECT` + profileColumns + ` FROM profiles WHERE user_id <> $1`
	args := []interface{}{userID}
	argCount := 2

	if industry := strings.TrimSpace(filter.Industry); industry != "" {
		query += fmt.Sprintf(" AND LOWER(industry) = LOWER($%d)", argCount)
		args = append(args, industry)
		argCount++
	}

	if len(filter.Skills) > 0 {
		query += fmt.Sprintf(" AND skills && $%d", argCount)
		args = append(args, pq.Array(filter.Skills))
		argCount++
	}

	if len(filter.ExcludeUserIDs) > 0 {
		query += fmt.Sprintf(" AND user_id <> ALL($%d)", argCount)
		args = append(args, pq.Array(filter.ExcludeUserIDs))
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argCount)
	args = append(args, limit)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// SearchNearby uses the Haversine formula in SQL so the store both filters by
// radius and orders by distance.
func (r *profileRepository) SearchNearby(ctx context.Context, userID int, lat, lon, radiusKm float64, limit int) ([]*repository.NearbyProfile, error) {
	query := `
		SELECT * FROM (
			SELECT` + profileColumns + `,
			       6371 * 2 * ASIN(SQRT(
			           POWER(SIN(RADIANS(location_lat - $2) / 2), 2) +
			           COS(RADIANS($2)) * COS(RADIANS(location_lat)) *
			           POWER(SIN(RADIANS(location_lon - $3) / 2), 2)
			       )) AS distance_km
			FROM profiles
			WHERE user_id <> $1
			  AND location_lat IS NOT NULL
			  AND location_lon IS NOT NULL
		) nearby
		WHERE distance_km <= $4
		ORDER BY distance_km ASC
		LIMIT $5
	`

	rows, err := r.db.QueryxContext(ctx, query, userID, lat, lon, radiusKm, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*repository.NearbyProfile
	for rows.Next() {
		var np repository.NearbyProfile
		err := rows.Scan(
			&np.ID, &np.UserID, &np.DisplayName, &np.Bio, &np.Industry, &np.ExperienceLevel,
			pq.Array(&np.Skills), pq.Array(&np.Interests), &np.Goal,
			&np.LocationLat, &np.LocationLon, &np.LocationUpdatedAt,
			&np.AvatarKey, &np.CreatedAt, &np.UpdatedAt,
			&np.DistanceKm,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, &np)
	}
	return profiles, rows.Err()
}
