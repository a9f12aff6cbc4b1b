package profile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/linkora-app/linkora-backend/internal/domain"
	"github.com/linkora-app/linkora-backend/internal/repository"
)

type stubProfileRepo struct {
	profiles map[int]*domain.Profile

	updated    *domain.Profile
	avatarKeys map[int]string
	location   *[2]float64
}

func newStubProfileRepo(profiles ...*domain.Profile) *stubProfileRepo {
	s := &stubProfileRepo{
		profiles:   make(map[int]*domain.Profile),
		avatarKeys: make(map[int]string),
	}
	for _, p := range profiles {
		s.profiles[p.UserID] = p
	}
	return s
}

func (s *stubProfileRepo) Create(ctx context.Context, p *domain.Profile) error { return nil }

func (s *stubProfileRepo) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	if p, ok := s.profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (s *stubProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	s.updated = p
	return nil
}

func (s *stubProfileRepo) UpdateLocation(ctx context.Context, userID int, lat, lon float64) error {
	s.location = &[2]float64{lat, lon}
	return nil
}

func (s *stubProfileRepo) UpdateAvatarKey(ctx context.Context, userID int, key string) error {
	s.avatarKeys[userID] = key
	return nil
}

func (s *stubProfileRepo) SearchCandidates(ctx context.Context, userID int, filter repository.CandidateFilter, limit int) ([]*domain.Profile, error) {
	return nil, nil
}

func (s *stubProfileRepo) SearchNearby(ctx context.Context, userID int, lat, lon, radiusKm float64, limit int) ([]*repository.NearbyProfile, error) {
	return nil, nil
}

type stubNotificationCreator struct {
	created []*domain.Notification
	err     error
}

func (s *stubNotificationCreator) Create(ctx context.Context, n *domain.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, n)
	return nil
}

type stubAvatarStore struct {
	keys []string
	err  error
}

func (s *stubAvatarStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if s.err != nil {
		return s.err
	}
	s.keys = append(s.keys, key)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// notificationRepo adapts the single-method creator stub to the full
// repository interface needed by the constructor.
type notificationRepo struct {
	repository.NotificationRepository
	creator *stubNotificationCreator
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return r.creator.Create(ctx, n)
}

func newTestUseCase(profiles *stubProfileRepo, creator *stubNotificationCreator, avatars AvatarStore) *ProfileUseCase {
	return NewProfileUseCase(profiles, &notificationRepo{creator: creator}, avatars, discardLogger())
}

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	bio := "original bio"
	existing := &domain.Profile{
		UserID:      1,
		DisplayName: "Alice",
		Bio:         &bio,
		Goal:        domain.GoalNetworking,
	}
	repo := newStubProfileRepo(existing)
	uc := newTestUseCase(repo, &stubNotificationCreator{}, nil)

	name := "Alicia"
	goal := "mentorship"
	resp, err := uc.UpdateProfile(context.Background(), 1, &UpdateProfileRequest{
		DisplayName: &name,
		Goal:        &goal,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.DisplayName != "Alicia" {
		t.Errorf("display name = %q, want Alicia", resp.DisplayName)
	}
	if resp.Goal != domain.GoalMentorship {
		t.Errorf("goal = %q, want mentorship", resp.Goal)
	}
	if resp.Bio == nil || *resp.Bio != "original bio" {
		t.Error("untouched fields must survive a partial update")
	}
	if repo.updated == nil {
		t.Error("update was never persisted")
	}
}

func TestUpdateProfileRejectsUnknownGoal(t *testing.T) {
	repo := newStubProfileRepo(&domain.Profile{UserID: 1})
	uc := newTestUseCase(repo, &stubNotificationCreator{}, nil)

	goal := "world-domination"
	_, err := uc.UpdateProfile(context.Background(), 1, &UpdateProfileRequest{Goal: &goal})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateProfileDedupesSkills(t *testing.T) {
	repo := newStubProfileRepo(&domain.Profile{UserID: 1})
	uc := newTestUseCase(repo, &stubNotificationCreator{}, nil)

	skills := []string{"Go", "go", " GO ", "SQL", ""}
	resp, err := uc.UpdateProfile(context.Background(), 1, &UpdateProfileRequest{Skills: &skills})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Skills) != 2 {
		t.Errorf("skills = %v, want 2 deduplicated entries", resp.Skills)
	}
}

func TestGetProfileByUserID(t *testing.T) {
	viewer := &domain.Profile{UserID: 1, DisplayName: "Alice", Skills: []string{"go"}}
	target := &domain.Profile{UserID: 2, DisplayName: "Bob", Skills: []string{"go"}}
	repo := newStubProfileRepo(viewer, target)
	creator := &stubNotificationCreator{}
	uc := newTestUseCase(repo, creator, nil)

	resp, err := uc.GetProfileByUserID(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.MatchScore == nil {
		t.Fatal("viewing another profile should attach a match score")
	}
	if len(creator.created) != 1 {
		t.Fatalf("created %d notifications, want 1 view notification", len(creator.created))
	}
	n := creator.created[0]
	if n.UserID != 2 || n.Type != domain.NotificationView {
		t.Errorf("notification = %+v, want a view notification for the owner", n)
	}
}

func TestGetOwnProfileSkipsScoreAndNotification(t *testing.T) {
	repo := newStubProfileRepo(&domain.Profile{UserID: 1, DisplayName: "Alice"})
	creator := &stubNotificationCreator{}
	uc := newTestUseCase(repo, creator, nil)

	resp, err := uc.GetProfileByUserID(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.MatchScore != nil {
		t.Error("own profile must not carry a self match score")
	}
	if len(creator.created) != 0 {
		t.Error("viewing your own profile must not notify anyone")
	}
}

func TestGetProfileNotificationFailureIsAbsorbed(t *testing.T) {
	viewer := &domain.Profile{UserID: 1, DisplayName: "Alice"}
	target := &domain.Profile{UserID: 2, DisplayName: "Bob"}
	repo := newStubProfileRepo(viewer, target)
	uc := newTestUseCase(repo, &stubNotificationCreator{err: errors.New("insert failed")}, nil)

	if _, err := uc.GetProfileByUserID(context.Background(), 2, 1); err != nil {
		t.Fatalf("view notification failure should not fail the read, got %v", err)
	}
}

func TestUpdateLocationValidatesRange(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantErr  bool
	}{
		{"valid", 55.75, 37.62, false},
		{"lat too high", 91, 0, true},
		{"lat too low", -91, 0, true},
		{"lon too high", 0, 181, true},
		{"lon too low", 0, -181, true},
		{"boundary", 90, -180, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubProfileRepo()
			uc := newTestUseCase(repo, &stubNotificationCreator{}, nil)

			err := uc.UpdateLocation(context.Background(), 1, tt.lat, tt.lon)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidCoordinates) {
					t.Errorf("err = %v, want ErrInvalidCoordinates", err)
				}
				if repo.location != nil {
					t.Error("invalid coordinates must not be stored")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUploadAvatar(t *testing.T) {
	repo := newStubProfileRepo(&domain.Profile{UserID: 1})
	store := &stubAvatarStore{}
	uc := newTestUseCase(repo, &stubNotificationCreator{}, store)

	body := bytes.NewReader([]byte("fake image bytes"))
	key, err := uc.UploadAvatar(context.Background(), 1, body, int64(body.Len()), "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(key, "1/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("key = %q, want user-prefixed .png key", key)
	}
	if repo.avatarKeys[1] != key {
		t.Error("avatar key was not recorded on the profile")
	}
	if len(store.keys) != 1 {
		t.Error("avatar bytes were never stored")
	}
}

func TestUploadAvatarRejectsBadInput(t *testing.T) {
	uc := newTestUseCase(newStubProfileRepo(), &stubNotificationCreator{}, &stubAvatarStore{})
	ctx := context.Background()
	body := bytes.NewReader([]byte("x"))

	if _, err := uc.UploadAvatar(ctx, 1, body, 1, "text/html"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad content type: err = %v, want ErrInvalidInput", err)
	}
	if _, err := uc.UploadAvatar(ctx, 1, body, maxAvatarBytes+1, "image/png"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("oversized upload: err = %v, want ErrInvalidInput", err)
	}
	if _, err := uc.UploadAvatar(ctx, 1, body, 0, "image/png"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty upload: err = %v, want ErrInvalidInput", err)
	}
}
