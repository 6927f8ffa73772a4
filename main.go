package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/backend"
	"github.com/khabaroff/missing-persons-portal/src/config"
	"github.com/khabaroff/missing-persons-portal/src/database"
	"github.com/khabaroff/missing-persons-portal/src/handlers"
	"github.com/khabaroff/missing-persons-portal/src/logging"
	"github.com/khabaroff/missing-persons-portal/src/middleware"
	"github.com/khabaroff/missing-persons-portal/src/screens"
	"github.com/khabaroff/missing-persons-portal/src/services"
	"github.com/khabaroff/missing-persons-portal/src/session"
	"github.com/khabaroff/missing-persons-portal/src/templates"
	"github.com/rs/zerolog/log"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Str("api_base_url", cfg.APIBaseURL).
		Str("auth_mode", cfg.AuthMode).
		Str("version", version).
		Msg("starting server")

	// Session storage
	storage, db := setupStorage(cfg)
	if db != nil {
		defer db.Close()
	}

	// Analytics
	analyticsService, err := services.NewAnalyticsService(services.AnalyticsConfig{
		PostHogAPIKey: cfg.PostHogAPIKey,
		PostHogHost:   cfg.PostHogHost,
		Enabled:       cfg.PostHogEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize analytics service")
	}
	defer analyticsService.Close()

	if cfg.PostHogEnabled {
		log.Info().Str("host", cfg.PostHogHost).Msg("PostHog analytics enabled")
	} else {
		log.Info().Msg("PostHog analytics disabled")
	}

	// Remote API and screens
	apiClient := backend.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	messages := templates.Default()
	authService := services.NewAuthService(apiClient, cfg.AuthMode, messages, analyticsService)
	registry := screens.NewRegistry(screens.Deps{
		API:       apiClient,
		Auth:      authService,
		Analytics: analyticsService,
		Messages:  messages,
	}, storage, cfg.ScreenCacheSize, cfg.ScreenIdleTTL)

	identity, err := middleware.NewClientIdentity(cfg.JWTSecret, cfg.CookieSecure)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize client identity")
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.Recovery())

	// The browser shell runs on its own origin and sends the identity cookie
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.ClientHeaderName},
		ExposeHeaders:    []string{"Content-Length", middleware.ClientHeaderName, "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.SetupRoutes(router, handlers.RouterConfig{
		Registry:      registry,
		Storage:       storage,
		API:           apiClient,
		Identity:      identity,
		Version:       version,
		AuthRateLimit: cfg.AuthRateLimit,
	})

	// Create HTTP server with timeouts (G112: protect from Slowloris attack)
	srv := &http.Server{
		Addr:              ":" + formatPort(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.APITimeout + 30*time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
}

// setupStorage picks the session backend. The database is returned so the
// caller can close it; it is nil for the in-memory backend.
func setupStorage(cfg *config.Config) (session.Storage, *database.Database) {
	if cfg.SessionBackend != config.SessionBackendPostgres {
		log.Info().Msg("session storage: memory")
		return session.NewMemoryStorage(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	log.Info().Msg("database connected")

	// Initialize encryption (optional, empty key disables)
	encryptor, err := session.NewEncryptor(cfg.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize encryption")
	}
	if encryptor != nil {
		log.Info().Msg("session encryption enabled (XChaCha20-Poly1305)")
	} else {
		log.Info().Msg("session encryption disabled (ENCRYPTION_KEY not set)")
	}

	log.Info().Msg("session storage: postgres")
	return session.NewPostgresStorage(db, encryptor), db
}

func formatPort(port int) string {
	return fmt.Sprintf("%d", port)
}
