package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/linkora-app/linkora-backend/internal/domain"
	"github.com/linkora-app/linkora-backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase) *SwipeHandler {
	return &SwipeHandler{swipeUseCase: swipeUseCase}
}

// Record handles POST /swipes
// @Summary Record a swipe decision
// @Description Upserts a like/pass/save decision and reports mutual matches
// @Tags swipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body swipe.SwipeRequest true "Swipe data"
// @Success 200 {object} swipe.SwipeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /swipes [post]
func (h *SwipeHandler) Record(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.swipeUseCase.Record(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCannotSwipeSelf):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot swipe yourself"})
		case errors.Is(err, domain.ErrInvalidSwipeAction):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "action must be like, pass or save"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to record swipe"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetSaved handles GET /swipes/saved
// @Summary List saved profiles
// @Tags swipes
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Router /swipes/saved [get]
func (h *SwipeHandler) GetSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	profiles, err := h.swipeUseCase.GetSaved(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load saved profiles"})
		return
	}

	c.JSON(http.StatusOK, profiles)
}
