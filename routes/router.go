package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jansuvidha/noticeboard/analytics"
	"github.com/jansuvidha/noticeboard/config"
	"github.com/jansuvidha/noticeboard/controllers"
	"github.com/jansuvidha/noticeboard/middleware"
	"github.com/jansuvidha/noticeboard/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, tracker *analytics.Tracker, reporter *analytics.Reporter, sweeper *analytics.Sweeper) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())

	// Request logging goes to its own rolling file so the app log stays readable.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	listingController := controllers.NewListingController(db)
	serviceController := controllers.NewServiceController(db)
	analyticsController := controllers.NewAnalyticsController(reporter, sweeper)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public board. Every successful GET here counts as a visit; the detail
	// page additionally counts a view of that listing. Both are recorded in
	// the background after the response.
	public := api.Group("")
	public.Use(middleware.TrackVisits(tracker))
	public.GET("/listings", listingController.ListListings)
	public.GET("/listings/expired", listingController.ListExpiredListings)
	public.GET("/listings/:id", middleware.TrackListingViews(tracker), listingController.GetListing)
	public.GET("/services", serviceController.ListServices)
	public.GET("/services/:id", serviceController.GetService)

	// Admin panel.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired())
	admin.GET("/listings", listingController.AdminListListings)
	admin.GET("/listings/:id", listingController.AdminGetListing)
	admin.POST("/listings", listingController.CreateListing)
	admin.PUT("/listings/:id", listingController.UpdateListing)
	admin.DELETE("/listings/:id", listingController.DeleteListing)
	admin.POST("/services", serviceController.CreateService)
	admin.PUT("/services/:id", serviceController.UpdateService)
	admin.DELETE("/services/:id", serviceController.DeleteService)
	admin.GET("/analytics/summary", analyticsController.GetSummary)

	// On-demand trigger of the same sweep the daily timer runs.
	maintenance := api.Group("/maintenance")
	maintenance.Use(middleware.RateLimitMiddleware())
	maintenance.POST("/sweep-expired", analyticsController.SweepExpired)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
