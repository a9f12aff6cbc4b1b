package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/linkora-app/linkora-backend/internal/domain"
	"github.com/linkora-app/linkora-backend/internal/repository"
)

type stubUserRepo struct {
	nextID  int
	byEmail map[string]*domain.User
	byID    map[int]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		nextID:  1,
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int]*domain.User),
	}
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return domain.ErrEmailAlreadyTaken
	}
	user.ID = s.nextID
	s.nextID++
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type stubProfileRepo struct {
	created []*domain.Profile
}

func (s *stubProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	s.created = append(s.created, p)
	return nil
}

func (s *stubProfileRepo) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}

func (s *stubProfileRepo) Update(ctx context.Context, p *domain.Profile) error { return nil }

func (s *stubProfileRepo) UpdateLocation(ctx context.Context, userID int, lat, lon float64) error {
	return nil
}

func (s *stubProfileRepo) UpdateAvatarKey(ctx context.Context, userID int, key string) error {
	return nil
}

func (s *stubProfileRepo) SearchCandidates(ctx context.Context, userID int, filter repository.CandidateFilter, limit int) ([]*domain.Profile, error) {
	return nil, nil
}

func (s *stubProfileRepo) SearchNearby(ctx context.Context, userID int, lat, lon, radiusKm float64, limit int) ([]*repository.NearbyProfile, error) {
	return nil, nil
}

const testSecret = "test-secret-key-that-is-long-enough-0"

func newTestUseCase() (*AuthUseCase, *stubUserRepo, *stubProfileRepo) {
	users := newStubUserRepo()
	profiles := &stubProfileRepo{}
	return NewAuthUseCase(users, profiles, testSecret, 60), users, profiles
}

func TestRegisterCreatesUserAndDefaultProfile(t *testing.T) {
	uc, _, profiles := newTestUseCase()

	resp, err := uc.Register(context.Background(), &RegisterRequest{
		Email:       "Alice@Example.com",
		Password:    "correct-horse",
		DisplayName: "  Alice  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Token == "" {
		t.Error("registration should issue a token")
	}
	if !resp.IsNewUser {
		t.Error("registration response should flag a new user")
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", resp.User.Email)
	}
	if resp.User.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}

	if len(profiles.created) != 1 {
		t.Fatalf("created %d profiles, want 1", len(profiles.created))
	}
	p := profiles.created[0]
	if p.UserID != resp.User.ID {
		t.Errorf("profile user_id = %d, want %d", p.UserID, resp.User.ID)
	}
	if p.DisplayName != "Alice" {
		t.Errorf("display name = %q, want trimmed %q", p.DisplayName, "Alice")
	}
	if p.Goal != domain.GoalNetworking {
		t.Errorf("default goal = %q, want networking", p.Goal)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _ := newTestUseCase()
	req := &RegisterRequest{Email: "alice@example.com", Password: "correct-horse", DisplayName: "Alice"}

	if _, err := uc.Register(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Register(context.Background(), req); !errors.Is(err, domain.ErrEmailAlreadyTaken) {
		t.Fatalf("err = %v, want ErrEmailAlreadyTaken", err)
	}
}

func TestLogin(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.Register(ctx, &RegisterRequest{Email: "alice@example.com", Password: "correct-horse", DisplayName: "Alice"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := uc.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("login should issue a token")
	}
	if resp.IsNewUser {
		t.Error("login response should not flag a new user")
	}

	if _, err := uc.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "wrong"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := uc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "correct-horse"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	uc, _, _ := newTestUseCase()

	resp, err := uc.Register(context.Background(), &RegisterRequest{Email: "alice@example.com", Password: "correct-horse", DisplayName: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := uc.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != resp.User.ID {
		t.Errorf("verified user id = %d, want %d", userID, resp.User.ID)
	}
}

func TestVerifyTokenRejectsTampered(t *testing.T) {
	uc, _, _ := newTestUseCase()

	resp, err := uc.Register(context.Background(), &RegisterRequest{Email: "alice@example.com", Password: "correct-horse", DisplayName: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewAuthUseCase(newStubUserRepo(), &stubProfileRepo{}, "another-secret-key-that-is-long-enough", 60)
	if _, err := other.VerifyToken(resp.Token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("foreign-secret token: err = %v, want ErrInvalidCredentials", err)
	}

	if _, err := uc.VerifyToken("not.a.token"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("garbage token: err = %v, want ErrInvalidCredentials", err)
	}
}
