package http

import (
	"github.com/gin-gonic/gin"

	"github.com/linkora-app/linkora-backend/internal/delivery/http/handler"
	"github.com/linkora-app/linkora-backend/internal/delivery/http/middleware"
	"github.com/linkora-app/linkora-backend/internal/metrics"
)

type Router struct {
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	matchmakingHandler  *handler.MatchmakingHandler
	swipeHandler        *handler.SwipeHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	matchmakingHandler *handler.MatchmakingHandler,
	swipeHandler *handler.SwipeHandler,
	notificationHandler *handler.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		matchmakingHandler:  matchmakingHandler,
		swipeHandler:        swipeHandler,
		notificationHandler: notificationHandler,
		authMiddleware:      authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.PUT("/me/location", r.profileHandler.UpdateLocation)
				profile.POST("/me/avatar", r.profileHandler.UploadAvatar)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			// Matchmaking routes
			matchmaking := protected.Group("/matchmaking")
			{
				matchmaking.GET("/matches", r.matchmakingHandler.GetMatches)
				matchmaking.GET("/radius", r.matchmakingHandler.GetRadius)
				matchmaking.POST("/expand-radius", r.matchmakingHandler.ExpandRadius)
			}

			// Swipe routes
			swipes := protected.Group("/swipes")
			{
				swipes.POST("", r.swipeHandler.Record)
				swipes.GET("/saved", r.swipeHandler.GetSaved)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", r.notificationHandler.List)
				notifications.GET("/unread-count", r.notificationHandler.CountUnread)
				notifications.GET("/stream", r.notificationHandler.Stream)
				notifications.POST("/read-all", r.notificationHandler.MarkAllRead)
				notifications.POST("/:id/read", r.notificationHandler.MarkRead)
				notifications.DELETE("/:id", r.notificationHandler.Delete)
			}
		}
	}

	return router
}
