package main

import (
	"github.com/gin-gonic/gin"
	"github.com/iffypixy/metaorta/internal/handlers"
	"github.com/iffypixy/metaorta/internal/middleware"
	"github.com/iffypixy/metaorta/internal/models"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger("/api/events"), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	db := models.GetDB()

	// Rate limiter for the public auth routes
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	healthHandler := handlers.NewHealthHandler(svc.notifier)
	r.GET("/health", healthHandler.CheckHealth)

	authHandler := handlers.NewAuthHandler(db, svc.cfg)
	userHandler := handlers.NewUserHandler(db,
		services.NewAuthService(db, &svc.cfg.JWT),
		services.NewProjectService(db, svc.cfg.Projects.InitialSlots))
	projectHandler := handlers.NewProjectHandler(db, svc.cfg, svc.notifier)
	requestHandler := handlers.NewRequestHandler(db, svc.notifier)
	memberHandler := handlers.NewMemberHandler(db, svc.notifier)
	taskHandler := handlers.NewTaskHandler(db, svc.notifier)
	reviewHandler := handlers.NewReviewHandler(db, svc.notifier)
	friendHandler := handlers.NewFriendHandler(db, svc.notifier)
	sseHandler := handlers.NewSSEHandler(services.GetHub())

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// SSE events (public route with internal token validation)
		api.GET("/events", sseHandler.StreamEvents)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", authHandler.GetCurrentUser)

			// Users
			protected.GET("/users/:id", userHandler.GetByID)
			protected.GET("/users/:id/history", userHandler.GetHistory)
			protected.GET("/users/:id/projects", userHandler.GetProjects)

			// Projects
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/:id", projectHandler.GetByID)
			protected.POST("/projects", projectHandler.Create)
			protected.PUT("/projects/:id", projectHandler.Update)
			protected.POST("/projects/:id/slots", projectHandler.OpenSlot)
			protected.GET("/projects/:id/members", projectHandler.ListMembers)

			// Cards
			protected.POST("/cards/:id/slots", projectHandler.AddCapacity)

			// Membership requests
			protected.POST("/members/:id/requests", requestHandler.Send)
			protected.GET("/projects/:id/requests", requestHandler.List)
			protected.PUT("/projects/:id/requests/:requestId/accept", requestHandler.Accept)
			protected.PUT("/projects/:id/requests/:requestId/decline", requestHandler.Decline)

			// Membership
			protected.DELETE("/projects/:id/members/:memberId", memberHandler.Remove)
			protected.POST("/projects/:id/leave", memberHandler.Leave)

			// Tasks
			protected.POST("/members/:id/tasks", taskHandler.Create)
			protected.GET("/members/:id/tasks", taskHandler.ListByMember)
			protected.PUT("/tasks/:id/status", taskHandler.ChangeStatus)
			protected.DELETE("/tasks/:id", taskHandler.Archive)

			// Reviews
			protected.POST("/members/:id/reviews", reviewHandler.Create)
			protected.GET("/members/:id/reviews", reviewHandler.ListByMember)

			// Friends
			protected.GET("/friends", friendHandler.List)
			protected.POST("/friends/requests", friendHandler.Send)
			protected.GET("/friends/requests", friendHandler.ListIncoming)
			protected.PUT("/friends/requests/:id/accept", friendHandler.Accept)
			protected.PUT("/friends/requests/:id/decline", friendHandler.Decline)
		}
	}
}
