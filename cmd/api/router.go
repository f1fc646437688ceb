package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"consulting-backend/internal/infrastructure/metrics"
	"consulting-backend/internal/shared/middleware"
	"consulting-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		metrics.Middleware(),
	)

	router.GET("/metrics", metrics.Handler())
	// local uploads are served by the API unless a CDN URL is configured
	if c.Config.Storage.Driver == "local" && strings.HasPrefix(c.Config.Storage.PublicURL, "/") {
		router.Static(c.Config.Storage.PublicURL, c.Config.Storage.UploadDir)
	}

	limiter := middleware.NewRateLimiter(c.Config.RateLimit.PerMinute, c.Config.RateLimit.Burst)
	limited := limiter.Middleware()
	adminOnly := []gin.HandlerFunc{middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware()}

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler)
		api.GET("/health/ready", readyCheckHandler(c))

		setupPublicRoutes(api, c, limited)
		setupManagedRoutes(api.Group("", adminOnly...), c)
		setupAdminRoutes(api.Group("/admin"), c, limited, adminOnly)
	}

	return router
}

// ========================================
// PUBLIC ROUTES
// ========================================
func setupPublicRoutes(api *gin.RouterGroup, c *container.Container, limited gin.HandlerFunc) {
	api.POST("/contact", limited, c.LeadHandler.Submit)
	api.POST("/chat", limited, c.ChatHandler.Chat)
	api.POST("/careers/apply", limited, c.ApplicationHandler.Apply)

	newsletter := api.Group("/newsletter")
	{
		newsletter.POST("/subscribe", limited, c.NewsletterHandler.Subscribe)
		newsletter.POST("/unsubscribe", limited, c.NewsletterHandler.Unsubscribe)
	}

	blog := api.Group("/blog")
	{
		blog.GET("", c.BlogHandler.ListPosts)
		blog.GET("/tags", c.BlogHandler.Tags)
		blog.GET("/slug/:slug", c.BlogHandler.GetBySlug)
		blog.GET("/:id", c.BlogHandler.Get)
	}

	jobs := api.Group("/jobs")
	{
		jobs.GET("", c.JobHandler.List)
		jobs.GET("/:id", c.JobHandler.Get)
		jobs.POST("/:id/view", c.JobHandler.RecordView)
	}

	api.GET("/testimonials", c.TestimonialHandler.List)
	api.GET("/testimonials/:id", c.TestimonialHandler.Get)
	api.GET("/services", c.OfferingHandler.List)
	api.GET("/services/:id", c.OfferingHandler.Get)
	api.GET("/team", c.TeamHandler.List)
	api.GET("/team/:id", c.TeamHandler.Get)
	api.GET("/contact-info", c.ContactInfoHandler.List)
	api.GET("/contact-info/:id", c.ContactInfoHandler.Get)
}

// ========================================
// ADMIN-PROTECTED RESOURCE ROUTES
// ========================================
// Writes on every resource plus the admin-only reads.
func setupManagedRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/contact", c.LeadHandler.ListAll)
	api.GET("/contact/:id", c.LeadHandler.Get)
	api.PUT("/contact/:id", c.LeadHandler.Update)
	api.DELETE("/contact/:id", c.LeadHandler.Delete)

	newsletter := api.Group("/newsletter")
	{
		newsletter.GET("/subscribers", c.NewsletterHandler.ListSubscribers)
		newsletter.POST("/subscribers", c.NewsletterHandler.Create)
		newsletter.GET("/subscribers/:id", c.NewsletterHandler.Get)
		newsletter.PUT("/subscribers/:id", c.NewsletterHandler.Update)
		newsletter.DELETE("/subscribers/:id", c.NewsletterHandler.Delete)
		newsletter.POST("/send-newsletter", c.NewsletterHandler.SendNewsletter)
	}

	blog := api.Group("/blog")
	{
		blog.POST("", c.BlogHandler.Create)
		blog.PUT("/:id", c.BlogHandler.Update)
		blog.DELETE("/:id", c.BlogHandler.Delete)
		blog.POST("/:id/publish", c.BlogHandler.Publish)
		blog.POST("/:id/unpublish", c.BlogHandler.Unpublish)
	}

	jobs := api.Group("/jobs")
	{
		jobs.POST("", c.JobHandler.Create)
		jobs.PUT("/:id", c.JobHandler.Update)
		jobs.DELETE("/:id", c.JobHandler.Delete)
	}

	applications := api.Group("/applications")
	{
		applications.GET("", c.ApplicationHandler.ListAll)
		applications.GET("/:id", c.ApplicationHandler.Get)
		applications.PUT("/:id", c.ApplicationHandler.Update)
		applications.PUT("/:id/status", c.ApplicationHandler.UpdateStatus)
		applications.DELETE("/:id", c.ApplicationHandler.Delete)
	}

	testimonials := api.Group("/testimonials")
	{
		testimonials.POST("", c.TestimonialHandler.Create)
		testimonials.PUT("/:id", c.TestimonialHandler.Update)
		testimonials.DELETE("/:id", c.TestimonialHandler.Delete)
		testimonials.POST("/:id/image", c.TestimonialHandler.UploadImage)
	}

	for path, h := range map[string]interface {
		Create(*gin.Context)
		Update(*gin.Context)
		Delete(*gin.Context)
	}{
		"/services":     c.OfferingHandler,
		"/team":         c.TeamHandler,
		"/contact-info": c.ContactInfoHandler,
	} {
		api.POST(path, h.Create)
		api.PUT(path+"/:id", h.Update)
		api.DELETE(path+"/:id", h.Delete)
	}
}

// ========================================
// ADMIN SHELL ROUTES
// ========================================
func setupAdminRoutes(admin *gin.RouterGroup, c *container.Container, limited gin.HandlerFunc, adminOnly []gin.HandlerFunc) {
	admin.POST("/login", limited, c.AdminHandler.Login)
	admin.POST("/refresh", limited, c.AdminHandler.Refresh)

	protected := admin.Group("", adminOnly...)
	{
		protected.GET("/me", c.AdminHandler.Me)
		protected.GET("/dashboard", c.DashboardHandler.GetSnapshot)
		protected.GET("/schemas", c.AdminHandler.ListSchemas)
		protected.GET("/schemas/:resource", c.AdminHandler.GetSchema)
		protected.GET("/export/:resource", c.AdminHandler.Export)

		// unfiltered lists for the content manager tabs
		protected.GET("/contact", c.LeadHandler.ListAll)
		protected.GET("/blog", c.BlogHandler.ListAll)
		protected.GET("/jobs", c.JobHandler.ListAll)
		protected.GET("/testimonials", c.TestimonialHandler.ListAll)
		protected.GET("/services", c.OfferingHandler.ListAll)
		protected.GET("/team", c.TeamHandler.ListAll)
		protected.GET("/contact-info", c.ContactInfoHandler.ListAll)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		checks, ok := appCtx.Ready(ctx)
		status, code := "ready", http.StatusOK
		if !ok {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": appCtx.Config.App.Version,
			"checks":  checks,
		})
	}
}
