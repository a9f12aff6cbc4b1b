package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linkora-app/linkora-backend/internal/domain"
	"github.com/linkora-app/linkora-backend/internal/usecase/matchmaking"
)

type MatchmakingHandler struct {
	matchmakingUseCase *matchmaking.MatchmakingUseCase
}

func NewMatchmakingHandler(matchmakingUseCase *matchmaking.MatchmakingUseCase) *MatchmakingHandler {
	return &MatchmakingHandler{matchmakingUseCase: matchmakingUseCase}
}

// GetMatches handles GET /matchmaking/matches
// @Summary Get ranked match candidates
// @Description Runs the candidate pipeline with the query filters
// @Tags matchmaking
// @Security BearerAuth
// @Produce json
// @Param industry query string false "Industry equality filter"
// @Param skills query string false "Comma-separated skills filter"
// @Param experience_level query string false "Experience level filter"
// @Param goal query string false "Relationship goal filter"
// @Param use_location query bool false "Prefer the proximity strategy"
// @Param radius_km query int false "Override search radius"
// @Success 200 {object} matchmaking.MatchResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matchmaking/matches [get]
func (h *MatchmakingHandler) GetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	filters := domain.MatchmakingFilters{
		Industry:        strings.TrimSpace(c.Query("industry")),
		ExperienceLevel: strings.TrimSpace(c.Query("experience_level")),
		UseLocation:     c.Query("use_location") == "true",
	}

	if raw := strings.TrimSpace(c.Query("skills")); raw != "" {
		for _, skill := range strings.Split(raw, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				filters.Skills = append(filters.Skills, skill)
			}
		}
	}

	if raw := strings.TrimSpace(c.Query("goal")); raw != "" {
		goal, ok := domain.ParseGoal(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid goal"})
			return
		}
		filters.Goal = goal
	}

	if raw := c.Query("radius_km"); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil || radius <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid radius_km"})
			return
		}
		filters.RadiusKm = radius
	}

	result, err := h.matchmakingUseCase.FindMatches(c.Request.Context(), userID, filters)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "complete your profile first"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to find matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExpandRadius handles POST /matchmaking/expand-radius
// @Summary Expand the proximity search radius
// @Description Widens the stored radius by one increment, capped at the ceiling
// @Tags matchmaking
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 401 {object} ErrorResponse
// @Router /matchmaking/expand-radius [post]
func (h *MatchmakingHandler) ExpandRadius(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	radius, err := h.matchmakingUseCase.ExpandRadius(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to expand radius"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"radius_km": radius})
}

// GetRadius handles GET /matchmaking/radius
// @Summary Current proximity search radius
// @Tags matchmaking
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 401 {object} ErrorResponse
// @Router /matchmaking/radius [get]
func (h *MatchmakingHandler) GetRadius(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"radius_km": h.matchmakingUseCase.CurrentRadius(c.Request.Context(), userID)})
}
