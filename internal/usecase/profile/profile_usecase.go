package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/linkora-app/linkora-backend/internal/domain"
	"github.com/linkora-app/linkora-backend/internal/repository"
	"github.com/linkora-app/linkora-backend/internal/usecase/matchmaking"
)

// AvatarStore persists avatar images under caller-chosen keys.
type AvatarStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

const maxAvatarBytes = 5 << 20 // 5 MB

var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type ProfileUseCase struct {
	profileRepo      repository.ProfileRepository
	notificationRepo repository.NotificationRepository
	avatars          AvatarStore
	log              *slog.Logger
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	notificationRepo repository.NotificationRepository,
	avatars AvatarStore,
	log *slog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		avatars:          avatars,
		log:              log,
	}
}

// UpdateProfileRequest represents profile update request
type UpdateProfileRequest struct {
	DisplayName     *string   `json:"display_name" binding:"omitempty,min=2,max=100"`
	Bio             *string   `json:"bio" binding:"omitempty,max=1000"`
	Industry        *string   `json:"industry" binding:"omitempty,max=100"`
	ExperienceLevel *string   `json:"experience_level" binding:"omitempty,max=50"`
	Skills          *[]string `json:"skills" binding:"omitempty,max=30"`
	Interests       *[]string `json:"interests" binding:"omitempty,max=30"`
	Goal            *string   `json:"goal"`
}

// ProfileResponse augments a profile with derived display fields.
type ProfileResponse struct {
	*domain.Profile
	Completeness int      `json:"completeness"`
	MatchScore   *int     `json:"match_score,omitempty"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
}

func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID int) (*ProfileResponse, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{
		Profile:      profile,
		Completeness: profile.Completeness(),
	}, nil
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*ProfileResponse, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Industry != nil {
		profile.Industry = req.Industry
	}
	if req.ExperienceLevel != nil {
		profile.ExperienceLevel = req.ExperienceLevel
	}
	if req.Skills != nil {
		profile.Skills = dedupe(*req.Skills)
	}
	if req.Interests != nil {
		profile.Interests = dedupe(*req.Interests)
	}
	if req.Goal != nil {
		goal, ok := domain.ParseGoal(*req.Goal)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		profile.Goal = goal
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return &ProfileResponse{
		Profile:      profile,
		Completeness: profile.Completeness(),
	}, nil
}

// GetProfileByUserID returns another user's profile with a viewer-relative
// match score, and leaves a profile-view notification for the owner. The
// notification is decoration and its failure is only logged.
func (uc *ProfileUseCase) GetProfileByUserID(ctx context.Context, targetUserID int, viewerUserID int) (*ProfileResponse, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	response := &ProfileResponse{
		Profile:      profile,
		Completeness: profile.Completeness(),
	}

	if viewerUserID == targetUserID {
		return response, nil
	}

	viewer, err := uc.profileRepo.GetByUserID(ctx, viewerUserID)
	if err == nil {
		score := matchmaking.MatchScore(viewer, profile)
		response.MatchScore = &score

		viewNote := &domain.Notification{
			UserID:    targetUserID,
			Type:      domain.NotificationView,
			Message:   fmt.Sprintf("%s viewed your profile", viewer.DisplayName),
			RelatedID: &viewerUserID,
		}
		if err := uc.notificationRepo.Create(ctx, viewNote); err != nil {
			uc.log.Warn("profile view notification failed", "user_id", targetUserID, "error", err)
		}
	}

	return response, nil
}

// UpdateLocation stores coordinates written opportunistically whenever the
// client obtains location access.
func (uc *ProfileUseCase) UpdateLocation(ctx context.Context, userID int, lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.ErrInvalidCoordinates
	}
	return uc.profileRepo.UpdateLocation(ctx, userID, lat, lon)
}

// UploadAvatar validates and stores an avatar image, then records its key on
// the profile. Keys are prefixed with the user id.
func (uc *ProfileUseCase) UploadAvatar(ctx context.Context, userID int, body io.Reader, size int64, contentType string) (string, error) {
	if uc.avatars == nil {
		return "", fmt.Errorf("avatar storage is not configured")
	}
	if size <= 0 || size > maxAvatarBytes {
		return "", domain.ErrInvalidInput
	}
	ext, ok := allowedAvatarTypes[strings.ToLower(contentType)]
	if !ok {
		return "", domain.ErrInvalidInput
	}

	key := fmt.Sprintf("%d/%s%s", userID, uuid.New().String(), ext)
	if err := uc.avatars.Put(ctx, key, body, size, contentType); err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	if err := uc.profileRepo.UpdateAvatarKey(ctx, userID, key); err != nil {
		return "", err
	}
	return key, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		lower := strings.ToLower(v)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, v)
	}
	return out
}
