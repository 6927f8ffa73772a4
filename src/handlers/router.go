package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/backend"
	"github.com/khabaroff/missing-persons-portal/src/middleware"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/screens"
	"github.com/khabaroff/missing-persons-portal/src/session"
)

// RouterConfig carries everything the routes need
type RouterConfig struct {
	Registry      *screens.Registry
	Storage       session.Storage
	API           *backend.Client
	Identity      *middleware.ClientIdentity
	Version       string
	AuthRateLimit int // login/sign-up requests per minute per IP
}

// SetupRoutes registers health probes and the screen endpoints on router
func SetupRoutes(router *gin.Engine, cfg RouterConfig) {
	healthHandler := NewHealthHandler(cfg.Storage, cfg.API, cfg.Version)
	authHandler := NewAuthHandler(cfg.Registry)
	reportHandler := NewReportHandler(cfg.Registry)
	homeHandler := NewHomeHandler(cfg.Registry)
	dashboardHandler := NewDashboardHandler(cfg.Registry)

	// Health check endpoints
	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/ready", healthHandler.HandleReady)
	router.GET("/info", healthHandler.HandleInfo)

	app := router.Group("/")
	app.Use(cfg.Identity.Middleware())
	app.Use(middleware.NewClientRateLimitingMiddleware(middleware.RateLimitConfig{}))

	app.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, models.PathRegister)
	})

	// Login and sign-up with per-IP rate limiting
	auth := app.Group("/")
	auth.Use(middleware.AuthRateLimitMiddleware(cfg.AuthRateLimit))
	{
		auth.POST(models.PathRegister, authHandler.HandleLogin)
		auth.POST(models.PathSignUp, authHandler.HandleSignUp)
		auth.POST(models.PathAdminLogin, authHandler.HandleAdminLogin)
	}
	app.POST(models.PathRegister+"/guest", authHandler.HandleGuest)

	app.POST(models.PathRegistrationDetails, reportHandler.HandleSubmit)

	home := app.Group(models.PathHome)
	{
		home.GET("", homeHandler.HandleMount)
		home.GET("/search", homeHandler.HandleSearch)
		home.GET("/reports/:id", homeHandler.HandleSelect)
		home.DELETE("/selection", homeHandler.HandleCloseSelection)
		home.POST("/reports/:id/info-modal", homeHandler.HandleOpenInfo)
		home.DELETE("/info-modal", homeHandler.HandleCloseInfo)
		home.POST("/reports/:id/info", homeHandler.HandleSubmitInfo)
		home.POST("/logout", homeHandler.HandleLogout)
	}

	// Mount handles the missing session itself and answers with a redirect
	app.GET(models.PathAdminDashboard, dashboardHandler.HandleMount)

	dashboard := app.Group(models.PathAdminDashboard)
	dashboard.Use(middleware.RequireAdmin(cfg.Storage))
	{
		dashboard.POST("/refresh", dashboardHandler.HandleRefresh)
		dashboard.POST("/reports/:id/approve", dashboardHandler.HandleApproveReport)
		dashboard.POST("/reports/:id/reject", dashboardHandler.HandleRejectReport)
		dashboard.PUT("/reports/:id", dashboardHandler.HandleUpdateReport)
		dashboard.DELETE("/reports/:id", dashboardHandler.HandleDeleteReport)
		dashboard.POST("/reports/:id/info", dashboardHandler.HandleAddInfo)
		dashboard.POST("/info/:id/approve", dashboardHandler.HandleApproveInfo)
		dashboard.POST("/info/:id/reject", dashboardHandler.HandleRejectInfo)
		dashboard.DELETE("/info/:id", dashboardHandler.HandleDeleteInfo)
		dashboard.POST("/logout", dashboardHandler.HandleLogout)
	}
}
