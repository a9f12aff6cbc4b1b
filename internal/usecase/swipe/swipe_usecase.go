package swipe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/linkora-app/linkora-backend/internal/domain"
	"github.com/linkora-app/linkora-backend/internal/metrics"
	"github.com/linkora-app/linkora-backend/internal/repository"
)

// TxRunner runs a function within one database transaction.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// NotificationPublisher pushes committed notification rows to the realtime
// bus. Publishing is best-effort: the rows are already durable.
type NotificationPublisher interface {
	Publish(n *domain.Notification) error
}

// IntroSuggester generates opening messages for a fresh mutual match.
type IntroSuggester interface {
	GenerateIntroSuggestions(ctx context.Context, mySkills, theirSkills, sharedInterests []string) ([]string, error)
}

type SwipeUseCase struct {
	tx               TxRunner
	swipeRepo        repository.SwipeRepository
	notificationRepo repository.NotificationRepository
	profileRepo      repository.ProfileRepository
	publisher        NotificationPublisher
	suggester        IntroSuggester
	log              *slog.Logger
}

func NewSwipeUseCase(
	tx TxRunner,
	swipeRepo repository.SwipeRepository,
	notificationRepo repository.NotificationRepository,
	profileRepo repository.ProfileRepository,
	publisher NotificationPublisher,
	suggester IntroSuggester,
	log *slog.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		tx:               tx,
		swipeRepo:        swipeRepo,
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		publisher:        publisher,
		suggester:        suggester,
		log:              log,
	}
}

// SwipeRequest represents a swipe action
type SwipeRequest struct {
	TargetUserID int    `json:"target_user_id" binding:"required"`
	Action       string `json:"action" binding:"required"`
}

// SwipeResponse represents swipe result
type SwipeResponse struct {
	Mutual           bool                  `json:"mutual"`
	Decision         *domain.SwipeDecision `json:"decision"`
	MatchedProfile   *domain.Profile       `json:"matched_profile,omitempty"`
	IntroSuggestions []string              `json:"intro_suggestions,omitempty"`
}

// Record upserts the decision for (actor, target) and, for a like, checks for
// a reciprocal pending like. A detected mutual match promotes both rows to
// confirmed and inserts one match notification per party in a single
// transaction, so no half-applied state can persist.
func (uc *SwipeUseCase) Record(ctx context.Context, actorID int, req *SwipeRequest) (*SwipeResponse, error) {
	if actorID == req.TargetUserID {
		return nil, domain.ErrCannotSwipeSelf
	}

	action, ok := domain.ParseSwipeAction(req.Action)
	if !ok {
		return nil, domain.ErrInvalidSwipeAction
	}

	decision := &domain.SwipeDecision{
		ActorID:  actorID,
		TargetID: req.TargetUserID,
		Action:   action,
		Status:   action.Status(),
	}
	if err := uc.swipeRepo.Upsert(ctx, decision); err != nil {
		return nil, fmt.Errorf("record swipe: %w", err)
	}
	metrics.SwipesTotal.WithLabelValues(string(action)).Inc()

	response := &SwipeResponse{Decision: decision}
	if action != domain.ActionLike {
		return response, nil
	}

	reciprocal, err := uc.swipeRepo.GetByUsers(ctx, req.TargetUserID, actorID)
	if err != nil {
		// The like itself is stored; a failed reciprocity check reads as "no
		// match yet" and the next like will re-check.
		uc.log.Error("reciprocal like check failed", "actor_id", actorID, "target_id", req.TargetUserID, "error", err)
		return response, nil
	}
	if reciprocal == nil || reciprocal.Action != domain.ActionLike || reciprocal.Status != domain.StatusPending {
		return response, nil
	}

	if err := uc.promoteMutualMatch(ctx, actorID, req.TargetUserID); err != nil {
		return nil, fmt.Errorf("promote mutual match: %w", err)
	}
	metrics.MutualMatchesTotal.Inc()
	decision.Status = domain.StatusConfirmed
	response.Mutual = true

	uc.enrichResponse(ctx, actorID, req.TargetUserID, response)
	return response, nil
}

// promoteMutualMatch flips both decisions to confirmed and writes a match
// notification for each party, all in one transaction. The realtime publish
// happens only after commit.
func (uc *SwipeUseCase) promoteMutualMatch(ctx context.Context, actorID, targetID int) error {
	actorName := uc.displayName(ctx, actorID)
	targetName := uc.displayName(ctx, targetID)

	notifications := []*domain.Notification{
		{
			UserID:    actorID,
			Type:      domain.NotificationMatch,
			Message:   fmt.Sprintf("You and %s are now connected!", targetName),
			RelatedID: &targetID,
		},
		{
			UserID:    targetID,
			Type:      domain.NotificationMatch,
			Message:   fmt.Sprintf("You and %s are now connected!", actorName),
			RelatedID: &actorID,
		},
	}

	err := uc.tx.RunTx(ctx, func(tx *sqlx.Tx) error {
		if err := uc.swipeRepo.ConfirmPairTx(ctx, tx, actorID, targetID); err != nil {
			return err
		}
		for _, n := range notifications {
			if err := uc.notificationRepo.CreateTx(ctx, tx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if uc.publisher != nil {
		for _, n := range notifications {
			if err := uc.publisher.Publish(n); err != nil {
				uc.log.Warn("notification publish failed", "user_id", n.UserID, "error", err)
				continue
			}
			metrics.NotificationsPublished.Inc()
		}
	}
	return nil
}

// enrichResponse attaches the counterpart profile and optional AI intro
// suggestions. Both are decoration; failures leave the response as-is.
func (uc *SwipeUseCase) enrichResponse(ctx context.Context, actorID, targetID int, response *SwipeResponse) {
	matched, err := uc.profileRepo.GetByUserID(ctx, targetID)
	if err != nil {
		uc.log.Warn("matched profile lookup failed", "user_id", targetID, "error", err)
		return
	}
	response.MatchedProfile = matched

	if uc.suggester == nil {
		return
	}

	actor, err := uc.profileRepo.GetByUserID(ctx, actorID)
	if err != nil {
		return
	}

	suggestCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	suggestions, err := uc.suggester.GenerateIntroSuggestions(
		suggestCtx, actor.Skills, matched.Skills, sharedInterests(actor.Interests, matched.Interests),
	)
	if err != nil {
		uc.log.Warn("intro suggestions failed", "error", err)
		return
	}
	response.IntroSuggestions = suggestions
}

func (uc *SwipeUseCase) displayName(ctx context.Context, userID int) string {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil || strings.TrimSpace(profile.DisplayName) == "" {
		return "a new connection"
	}
	return profile.DisplayName
}

func sharedInterests(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	var shared []string
	for _, v := range b {
		if _, ok := set[strings.ToLower(strings.TrimSpace(v))]; ok {
			shared = append(shared, v)
		}
	}
	return shared
}

// GetSaved returns profiles the user bookmarked with the save action.
func (uc *SwipeUseCase) GetSaved(ctx context.Context, userID int, limit, offset int) ([]*domain.Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	decisions, err := uc.swipeRepo.GetSavedTargets(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("load saved targets: %w", err)
	}

	profiles := make([]*domain.Profile, 0, len(decisions))
	for _, d := range decisions {
		profile, err := uc.profileRepo.GetByUserID(ctx, d.TargetID)
		if err != nil {
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
