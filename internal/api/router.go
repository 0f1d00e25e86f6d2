package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staffdesk/staffdesk/config"
	"github.com/staffdesk/staffdesk/internal/api/handlers"
	"github.com/staffdesk/staffdesk/internal/api/middleware"
)

type Router struct {
	engine            *gin.Engine
	config            *config.Config
	logger            *logrus.Logger
	sessionMiddleware *middleware.SessionMiddleware
	authHandler       *handlers.AuthHandler
	jobSeekerHandler  *handlers.JobSeekerHandler
	taskHandler       *handlers.TaskHandler
	documentHandler   *handlers.DocumentHandler
	onboardingHandler *handlers.OnboardingHandler
	lookupHandler     *handlers.LookupHandler
	viewHandler       *handlers.ViewHandler
	adminHandler      *handlers.AdminHandler
}

func NewRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	sessionMiddleware *middleware.SessionMiddleware,
	authHandler *handlers.AuthHandler,
	jobSeekerHandler *handlers.JobSeekerHandler,
	taskHandler *handlers.TaskHandler,
	documentHandler *handlers.DocumentHandler,
	onboardingHandler *handlers.OnboardingHandler,
	lookupHandler *handlers.LookupHandler,
	viewHandler *handlers.ViewHandler,
	adminHandler *handlers.AdminHandler,
) *Router {
	return &Router{
		config:            cfg,
		logger:            logger,
		sessionMiddleware: sessionMiddleware,
		authHandler:       authHandler,
		jobSeekerHandler:  jobSeekerHandler,
		taskHandler:       taskHandler,
		documentHandler:   documentHandler,
		onboardingHandler: onboardingHandler,
		lookupHandler:     lookupHandler,
		viewHandler:       viewHandler,
		adminHandler:      adminHandler,
	}
}

func (r *Router) Setup(mode string) *gin.Engine {
	gin.SetMode(mode)
	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestLogger(r.logger))
	r.engine.Use(cors.New(cors.Config{
		AllowOrigins:     r.config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.setupRoutes()
	return r.engine
}

func (r *Router) setupRoutes() {
	api := r.engine.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/logout", r.authHandler.Logout)
	}

	// Everything else requires a valid session
	protected := api.Group("")
	protected.Use(r.sessionMiddleware.Authenticate())
	{
		protected.GET("/auth/me", r.authHandler.Me)

		jobSeekers := protected.Group("/job-seekers")
		{
			jobSeekers.GET("", r.jobSeekerHandler.List)
			jobSeekers.POST("/bulk-delete", r.jobSeekerHandler.BulkDelete)
			jobSeekers.POST("/bulk-owner", r.jobSeekerHandler.BulkChangeOwner)
			jobSeekers.POST("/bulk-status", r.jobSeekerHandler.BulkChangeStatus)
			jobSeekers.GET("/:id", r.jobSeekerHandler.Get)
			jobSeekers.POST("/:id", r.jobSeekerHandler.Update)
			jobSeekers.DELETE("/:id", r.jobSeekerHandler.Delete)
			jobSeekers.GET("/:id/notes", r.jobSeekerHandler.Subresource("notes"))
			jobSeekers.POST("/:id/notes", r.jobSeekerHandler.CreateNote)
			jobSeekers.GET("/:id/history", r.jobSeekerHandler.Subresource("history"))
			jobSeekers.GET("/:id/documents", r.jobSeekerHandler.Subresource("documents"))
			jobSeekers.GET("/:id/references", r.jobSeekerHandler.Subresource("references"))
			jobSeekers.GET("/:id/applications", r.jobSeekerHandler.Subresource("applications"))
			jobSeekers.POST("/:id/delete-request", r.jobSeekerHandler.RequestDelete)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", r.taskHandler.List)
			tasks.PUT("/:id", r.taskHandler.Update)
		}

		documents := protected.Group("/template-documents")
		{
			documents.GET("", r.documentHandler.List)
			documents.POST("", r.documentHandler.Create)
		}

		onboarding := protected.Group("/onboarding")
		{
			onboarding.POST("/send", r.onboardingHandler.Send)
			onboarding.GET("/job-seekers/:id", r.onboardingHandler.GetForJobSeeker)
			onboarding.POST("/job-seekers/:id", r.onboardingHandler.UpdateForJobSeeker)
			onboarding.GET("/items/:itemId", r.onboardingHandler.GetItem)
			onboarding.POST("/items/:itemId/admin-approve", r.onboardingHandler.ApproveItem)
			onboarding.POST("/items/:itemId/reject", r.onboardingHandler.RejectItem)
		}

		protected.GET("/packets", r.onboardingHandler.ListPackets)
		protected.GET("/jobs", r.lookupHandler.ListJobs)
		protected.GET("/users/active", r.lookupHandler.ListActiveUsers)

		// Per-entity table presentation state
		views := protected.Group("/views/:entity")
		{
			views.GET("/catalog", r.viewHandler.GetCatalog)
			views.GET("/layout", r.viewHandler.GetLayout)
			views.PUT("/layout", r.viewHandler.SetLayout)
			views.POST("/layout/toggle", r.viewHandler.ToggleColumn)
			views.POST("/layout/reorder", r.viewHandler.ReorderColumns)
			views.POST("/layout/reset", r.viewHandler.ResetLayout)
			views.GET("/favorites", r.viewHandler.ListFavorites)
			views.POST("/favorites", r.viewHandler.SaveFavorite)
			views.DELETE("/favorites/:id", r.viewHandler.DeleteFavorite)
			views.POST("/favorites/:id/apply", r.viewHandler.ApplyFavorite)
		}

		admin := protected.Group("/admin")
		{
			admin.GET("/field-management/:entity", r.adminHandler.FieldManagement)
			admin.GET("/data-downloader", r.adminHandler.DataDownloader)
		}
	}
}
