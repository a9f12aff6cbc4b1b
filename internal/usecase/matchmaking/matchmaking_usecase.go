package matchmaking

import (
	"context"
	"log/slog"
	"time"

	"github.com/linkora-app/linkora-backend/internal/config"
	"github.com/linkora-app/linkora-backend/internal/domain"
	"github.com/linkora-app/linkora-backend/internal/metrics"
	"github.com/linkora-app/linkora-backend/internal/repository"
)

const (
	StrategyProximity = "proximity"
	StrategyAttribute = "attribute"
)

// RadiusStore holds the per-user proximity search radius.
type RadiusStore interface {
	Get(ctx context.Context, userID int) (int, error)
	Expand(ctx context.Context, userID int) (int, error)
}

// CandidateCache holds recently computed candidate lists.
type CandidateCache interface {
	Get(ctx context.Context, userID int, filters domain.MatchmakingFilters) ([]domain.Candidate, bool, error)
	Set(ctx context.Context, userID int, filters domain.MatchmakingFilters, candidates []domain.Candidate) error
}

// MatchResult is what a matchmaking request resolves to. An empty candidate
// list with a message is a normal outcome, not an error: fetch failures are
// absorbed and explained rather than propagated.
type MatchResult struct {
	Candidates []domain.Candidate `json:"candidates"`
	Strategy   string             `json:"strategy"`
	RadiusKm   int                `json:"radius_km"`
	Message    string             `json:"message,omitempty"`
}

type MatchmakingUseCase struct {
	profileRepo repository.ProfileRepository
	swipeRepo   repository.SwipeRepository
	radiusStore RadiusStore
	cache       CandidateCache
	cfg         config.MatchmakingConfig
	log         *slog.Logger
}

func NewMatchmakingUseCase(
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
	radiusStore RadiusStore,
	cache CandidateCache,
	cfg config.MatchmakingConfig,
	log *slog.Logger,
) *MatchmakingUseCase {
	return &MatchmakingUseCase{
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
		radiusStore: radiusStore,
		cache:       cache,
		cfg:         cfg,
		log:         log,
	}
}

// FindMatches runs the full candidate pipeline: strategy selection, fetch,
// filter, rank. The request is bounded by a deadline so a stalled upstream
// call cannot hang the caller.
func (uc *MatchmakingUseCase) FindMatches(ctx context.Context, userID int, filters domain.MatchmakingFilters) (*MatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.RequestTimeout)
	defer cancel()

	started := time.Now()
	defer func() {
		metrics.MatchRequestDuration.Observe(time.Since(started).Seconds())
	}()

	viewer, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		// Missing requester profile is the one hard failure.
		return nil, err
	}

	if filters.RadiusKm <= 0 {
		filters.RadiusKm = uc.radius(ctx, userID)
	}
	if filters.RadiusKm > uc.cfg.MaxRadiusKm {
		filters.RadiusKm = uc.cfg.MaxRadiusKm
	}

	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, userID, filters)
		if err != nil {
			uc.log.Warn("candidate cache read failed", "user_id", userID, "error", err)
		} else if ok {
			return uc.finish(userID, filters, cached, uc.strategyFor(viewer, filters)), nil
		}
	}

	strategy := uc.strategyFor(viewer, filters)

	var candidates []domain.Candidate
	var fetchFailed bool
	switch strategy {
	case StrategyProximity:
		candidates, fetchFailed = uc.fetchProximity(ctx, viewer, filters.RadiusKm)
	default:
		candidates, fetchFailed = uc.fetchAttribute(ctx, viewer)
	}

	candidates = ApplyFilters(candidates, filters)
	SortByScore(candidates)

	if uc.cache != nil && !fetchFailed {
		if err := uc.cache.Set(ctx, userID, filters, candidates); err != nil {
			uc.log.Warn("candidate cache write failed", "user_id", userID, "error", err)
		}
	}

	result := uc.finish(userID, filters, candidates, strategy)
	if fetchFailed {
		result.Message = "We couldn't load matches right now. Pull to refresh and try again."
	}
	return result, nil
}

func (uc *MatchmakingUseCase) finish(userID int, filters domain.MatchmakingFilters, candidates []domain.Candidate, strategy string) *MatchResult {
	metrics.MatchRequestsTotal.WithLabelValues(strategy).Inc()

	result := &MatchResult{
		Candidates: candidates,
		Strategy:   strategy,
		RadiusKm:   filters.RadiusKm,
	}
	if len(candidates) == 0 {
		if strategy == StrategyProximity {
			result.Message = "No matches in range. Try expanding your search radius."
		} else {
			result.Message = "No matches for your filters yet. Try broadening them."
		}
	}
	return result
}

// strategyFor picks proximity only when the request asks for it and the
// requester has stored coordinates; everything else falls back to attributes.
func (uc *MatchmakingUseCase) strategyFor(viewer *domain.Profile, filters domain.MatchmakingFilters) string {
	if filters.UseLocation && viewer.HasLocation() {
		return StrategyProximity
	}
	return StrategyAttribute
}

// fetchProximity returns candidates within the radius, nearest first. A
// requester without coordinates gets an empty list, never an error.
func (uc *MatchmakingUseCase) fetchProximity(ctx context.Context, viewer *domain.Profile, radiusKm int) ([]domain.Candidate, bool) {
	if !viewer.HasLocation() {
		return nil, false
	}

	exclude := uc.swipedTargets(ctx, viewer.UserID)

	rows, err := uc.profileRepo.SearchNearby(ctx, viewer.UserID, *viewer.LocationLat, *viewer.LocationLon, float64(radiusKm), uc.cfg.CandidateLimit)
	if err != nil {
		uc.log.Error("proximity fetch failed", "user_id", viewer.UserID, "error", err)
		return nil, true
	}

	candidates := make([]domain.Candidate, 0, len(rows))
	for _, row := range rows {
		if _, skip := exclude[row.UserID]; skip {
			continue
		}
		distance := row.DistanceKm
		candidates = append(candidates, domain.Candidate{
			Profile:    row.Profile,
			MatchScore: MatchScore(viewer, &row.Profile),
			DistanceKm: &distance,
		})
	}
	return candidates, false
}

func (uc *MatchmakingUseCase) fetchAttribute(ctx context.Context, viewer *domain.Profile) ([]domain.Candidate, bool) {
	exclude := uc.swipedTargets(ctx, viewer.UserID)

	rows, err := uc.profileRepo.SearchCandidates(ctx, viewer.UserID, repository.CandidateFilter{}, uc.cfg.CandidateLimit)
	if err != nil {
		uc.log.Error("attribute fetch failed", "user_id", viewer.UserID, "error", err)
		return nil, true
	}

	candidates := make([]domain.Candidate, 0, len(rows))
	for _, row := range rows {
		if _, skip := exclude[row.UserID]; skip {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Profile:    *row,
			MatchScore: MatchScore(viewer, row),
		})
	}
	return candidates, false
}

// swipedTargets returns user ids already acted on, keeping saved profiles in
// the feed. A read failure only widens the feed, so it is absorbed.
func (uc *MatchmakingUseCase) swipedTargets(ctx context.Context, userID int) map[int]struct{} {
	ids, err := uc.swipeRepo.SwipedTargetIDs(ctx, userID, false)
	if err != nil {
		uc.log.Warn("swiped targets lookup failed", "user_id", userID, "error", err)
		return nil
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (uc *MatchmakingUseCase) radius(ctx context.Context, userID int) int {
	if uc.radiusStore == nil {
		return uc.cfg.DefaultRadiusKm
	}
	radius, err := uc.radiusStore.Get(ctx, userID)
	if err != nil {
		uc.log.Warn("radius read failed", "user_id", userID, "error", err)
		return uc.cfg.DefaultRadiusKm
	}
	return radius
}

// ExpandRadius widens the stored proximity radius by one increment up to the
// ceiling. It does not itself refetch matches.
func (uc *MatchmakingUseCase) ExpandRadius(ctx context.Context, userID int) (int, error) {
	return uc.radiusStore.Expand(ctx, userID)
}

// CurrentRadius reports the radius the next proximity request will use.
func (uc *MatchmakingUseCase) CurrentRadius(ctx context.Context, userID int) int {
	return uc.radius(ctx, userID)
}
