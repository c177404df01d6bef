package http

import (
	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	authHandler       *handler.AuthHandler
	onboardingHandler *handler.OnboardingHandler
	profileHandler    *handler.ProfileHandler
	poolHandler       *handler.PoolHandler
	interestHandler   *handler.InterestHandler
	connectionHandler *handler.ConnectionHandler
	tagHandler        *handler.TagHandler
	healthHandler     *handler.HealthHandler
	authMiddleware    *middleware.AuthMiddleware
	logger            *zap.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	onboardingHandler *handler.OnboardingHandler,
	profileHandler *handler.ProfileHandler,
	poolHandler *handler.PoolHandler,
	interestHandler *handler.InterestHandler,
	connectionHandler *handler.ConnectionHandler,
	tagHandler *handler.TagHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:       authHandler,
		onboardingHandler: onboardingHandler,
		profileHandler:    profileHandler,
		poolHandler:       poolHandler,
		interestHandler:   interestHandler,
		connectionHandler: connectionHandler,
		tagHandler:        tagHandler,
		healthHandler:     healthHandler,
		authMiddleware:    authMiddleware,
		logger:            logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.logger))

	// Health check (supports both GET and HEAD)
	router.GET("/health", r.healthHandler.Live)
	router.HEAD("/health", r.healthHandler.Live)
	router.GET("/ready", r.healthHandler.Ready)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			tags := protected.Group("/tags")
			{
				tags.GET("", r.tagHandler.List)
				tags.POST("", r.tagHandler.Create)
			}

			onboarding := protected.Group("/onboarding")
			{
				onboarding.GET("", r.onboardingHandler.GetDraft)
				onboarding.GET("/steps/:step", r.onboardingHandler.GetStep)
				onboarding.PUT("/steps/:step", r.onboardingHandler.SaveStep)
				onboarding.POST("/complete", r.onboardingHandler.Complete)
			}

			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.POST("/bio-suggestions", r.profileHandler.SuggestBios)
				profile.GET("/:id", r.profileHandler.GetProfile)
			}

			protected.GET("/pool", r.poolHandler.Browse)

			interests := protected.Group("/interests")
			{
				interests.POST("", r.interestHandler.Send)
				interests.GET("/received", r.interestHandler.ListReceived)
				interests.GET("/sent", r.interestHandler.ListSent)
				interests.POST("/:id/respond", r.interestHandler.Respond)
			}

			connections := protected.Group("/connections")
			{
				connections.GET("", r.connectionHandler.List)
				connections.PUT("/:id/stage", r.connectionHandler.UpdateStage)
				connections.POST("/:id/archive", r.connectionHandler.Archive)
			}
		}
	}

	return router
}
