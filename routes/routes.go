package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vassimdr/dr-sahin-durmus-backend/config"
	"github.com/vassimdr/dr-sahin-durmus-backend/database"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/adminauth"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/blog"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/callback"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/gallery"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/media"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/notification"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/reports"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/review"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/security"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/video"
	"github.com/vassimdr/dr-sahin-durmus-backend/middleware"

	_ "github.com/vassimdr/dr-sahin-durmus-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps carries the security primitives main.go assembles (backends differ
// between local dev and production).
type Deps struct {
	Events   *auditlog.Logger
	Sessions *security.SessionStore
	Limiter  *security.LoginLimiter
	Pusher   notification.Pusher
}

func Setup(r *gin.Engine, cfg *config.Config, deps Deps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())     // Global rate limit per IP
	api.Use(middleware.AuditMiddleware()) // Capture client IP

	// ========== Audit Log Module ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo, deps.Events)
	auditHandler := auditlog.NewHandler(auditSvc, deps.Events)

	// ========== Notifications ==========
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo, deps.Pusher, cfg)
	notifHandler := notification.NewHandler(notifSvc)

	// ========== Admin Auth ==========
	authSvc := adminauth.NewService(cfg, deps.Limiter, deps.Sessions, deps.Events)
	authHandler := adminauth.NewHandler(authSvc)

	authGroup := api.Group("/admin/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/session", authHandler.Session)
		authGroup.POST("/activity", authHandler.Activity)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// ========== Callback Requests ==========
	callbackRepo := callback.NewRepository(database.DB)
	callbackSvc := callback.NewService(callbackRepo, auditSvc, notifSvc)
	callbackHandler := callback.NewHandler(callbackSvc)

	// ========== Content Modules ==========
	blogRepo := blog.NewRepository(database.DB)
	blogSvc := blog.NewService(blogRepo, auditSvc)
	blogHandler := blog.NewHandler(blogSvc)

	galleryRepo := gallery.NewRepository(database.DB)
	gallerySvc := gallery.NewService(galleryRepo, auditSvc)
	galleryHandler := gallery.NewHandler(gallerySvc)

	videoRepo := video.NewRepository(database.DB)
	videoSvc := video.NewService(videoRepo, auditSvc)
	videoHandler := video.NewHandler(videoSvc)

	mediaRepo := media.NewRepository(database.DB)
	mediaSvc := media.NewService(mediaRepo, auditSvc)
	mediaHandler := media.NewHandler(mediaSvc)

	reviewRepo := review.NewRepository(database.DB)
	reviewSvc := review.NewService(reviewRepo, auditSvc, notifSvc)
	reviewHandler := review.NewHandler(reviewSvc)

	// ========== Public Site ==========
	{
		api.POST("/callback-requests", callbackHandler.Create)

		api.GET("/blog", blogHandler.ListPublished)
		api.GET("/blog/categories", blogHandler.Categories)
		api.GET("/blog/:slug", blogHandler.GetBySlug)

		api.GET("/gallery", galleryHandler.ListActive)
		api.GET("/gallery/categories", galleryHandler.Categories)

		api.GET("/videos", videoHandler.ListActive)
		api.GET("/videos/categories", videoHandler.Categories)
		api.GET("/videos/:id", videoHandler.GetActive)

		api.GET("/media", mediaHandler.ListActive)
		api.GET("/media/types", mediaHandler.Types)

		api.GET("/reviews", reviewHandler.ListApproved)
		api.GET("/reviews/summary", reviewHandler.Summary)
		api.POST("/reviews", reviewHandler.Submit)
	}

	// ========== Admin Back-Office ==========
	admin := api.Group("/admin")
	admin.Use(middleware.AdminGate(func(c *gin.Context, token, ip string) (string, bool) {
		return authSvc.ValidateRequestToken(c.Request.Context(), token, ip)
	}, deps.Events))
	{
		admin.GET("/callback-requests", callbackHandler.List)
		admin.GET("/callback-requests/:id", callbackHandler.Get)
		admin.PATCH("/callback-requests/:id", callbackHandler.Update)
		admin.DELETE("/callback-requests/:id", callbackHandler.Delete)

		admin.GET("/blog", blogHandler.ListAll)
		admin.POST("/blog", blogHandler.Create)
		admin.PATCH("/blog/:id", blogHandler.Update)
		admin.DELETE("/blog/:id", blogHandler.Delete)

		admin.GET("/gallery", galleryHandler.ListAll)
		admin.POST("/gallery", galleryHandler.Create)
		admin.PATCH("/gallery/:id", galleryHandler.Update)
		admin.DELETE("/gallery/:id", galleryHandler.Delete)

		admin.GET("/videos", videoHandler.ListAll)
		admin.POST("/videos", videoHandler.Create)
		admin.PATCH("/videos/:id", videoHandler.Update)
		admin.DELETE("/videos/:id", videoHandler.Delete)

		admin.GET("/media", mediaHandler.ListAll)
		admin.POST("/media", mediaHandler.Create)
		admin.PATCH("/media/:id", mediaHandler.Update)
		admin.DELETE("/media/:id", mediaHandler.Delete)

		admin.GET("/reviews", reviewHandler.ListAll)
		admin.PATCH("/reviews/:id", reviewHandler.Moderate)
		admin.DELETE("/reviews/:id", reviewHandler.Delete)

		// ========== Audit Viewer ==========
		auditRoutes := admin.Group("/audit")
		{
			auditRoutes.GET("/actions", auditHandler.GetActions)
			auditRoutes.GET("/actions/:id", auditHandler.GetActionByID)
			auditRoutes.GET("/events", auditHandler.GetEvents)
			auditRoutes.GET("/events/stats", auditHandler.GetEventStats)
			auditRoutes.GET("/events/export", auditHandler.ExportEvents)
			auditRoutes.DELETE("/events", auditHandler.ClearEvents)
		}

		// ========== Reports ==========
		reportsExporter := reports.NewExporter()
		reportsSvc := reports.NewService(callbackRepo, auditRepo, reportsExporter)
		reportsHandler := reports.NewHandler(reportsSvc)

		admin.GET("/reports/callbacks", reportsHandler.CallbackReport)
		admin.GET("/reports/actions", reportsHandler.AdminActionReport)

		// ========== Push Device Registry ==========
		admin.POST("/notifications/tokens", notifHandler.RegisterToken)
		admin.DELETE("/notifications/tokens", notifHandler.UnregisterToken)
		admin.GET("/notifications/logs", notifHandler.ListLogs)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}
