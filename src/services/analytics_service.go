package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/posthog/posthog-go"
	"github.com/rs/zerolog/log"
)

// HashUserID returns a hex-encoded SHA-256 hash of a user id for use as PostHog distinct ID
func HashUserID(userID string) string {
	h := sha256.Sum256([]byte(userID))
	return fmt.Sprintf("%x", h)
}

// AnalyticsService handles all product analytics tracking
type AnalyticsService struct {
	client  posthog.Client
	enabled bool
}

type posthogLogger struct{}

func (l posthogLogger) Success(m posthog.APIMessage) {
	log.Info().Str("type", fmt.Sprintf("%T", m)).Msg("PostHog event delivered")
}

func (l posthogLogger) Failure(m posthog.APIMessage, err error) {
	log.Error().Err(err).Str("type", fmt.Sprintf("%T", m)).Msg("PostHog delivery failed")
}

// AnalyticsConfig holds analytics configuration
type AnalyticsConfig struct {
	PostHogAPIKey string
	PostHogHost   string
	Enabled       bool
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(cfg AnalyticsConfig) (*AnalyticsService, error) {
	if !cfg.Enabled {
		return &AnalyticsService{enabled: false}, nil
	}

	if cfg.PostHogAPIKey == "" {
		return &AnalyticsService{enabled: false}, nil
	}

	client, err := posthog.NewWithConfig(
		cfg.PostHogAPIKey,
		posthog.Config{
			Endpoint:  cfg.PostHogHost,
			Interval:  30 * time.Second,
			BatchSize: 100,
			Callback:  posthogLogger{},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostHog client: %w", err)
	}

	return &AnalyticsService{
		client:  client,
		enabled: true,
	}, nil
}

// Close flushes pending events and closes client
func (s *AnalyticsService) Close() error {
	if s == nil || !s.enabled {
		return nil
	}
	return s.client.Close()
}

// getEnvironment returns current environment (production, staging, development)
func getEnvironment() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "production"
	}
	return env
}

// TrackEvent captures a generic event
func (s *AnalyticsService) TrackEvent(ctx context.Context, distinctID, event string, properties map[string]interface{}) {
	if s == nil || !s.enabled {
		return
	}

	// Add common properties
	if properties == nil {
		properties = make(map[string]interface{})
	}
	properties["timestamp"] = time.Now().Unix()
	properties["environment"] = getEnvironment()

	if err := s.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		log.Error().Err(err).Str("event", event).Msg("PostHog enqueue failed")
	} else {
		log.Info().Str("event", event).Str("distinct_id", distinctID).Msg("PostHog event enqueued")
	}
}

// TrackLogin tracks a successful login on either login screen
func (s *AnalyticsService) TrackLogin(ctx context.Context, userID string, role models.Role) {
	s.TrackEvent(ctx, "user_"+HashUserID(userID), "login", map[string]interface{}{
		"role": string(role),
	})
}

// TrackSignUp tracks a created account
func (s *AnalyticsService) TrackSignUp(ctx context.Context, userID string) {
	s.TrackEvent(ctx, "user_"+HashUserID(userID), "signup", nil)
}

// TrackReportSubmitted tracks a filed missing-person report
func (s *AnalyticsService) TrackReportSubmitted(ctx context.Context, userID string, withPhoto bool) {
	s.TrackEvent(ctx, "user_"+HashUserID(userID), "report_submitted", map[string]interface{}{
		"with_photo": withPhoto,
	})
}

// TrackInfoSubmitted tracks an information update sent for moderation
func (s *AnalyticsService) TrackInfoSubmitted(ctx context.Context, userID string, reportID int64) {
	s.TrackEvent(ctx, "user_"+HashUserID(userID), "info_submitted", map[string]interface{}{
		"report_id": reportID,
	})
}

// TrackModeration tracks a dashboard action such as "report_approved"
func (s *AnalyticsService) TrackModeration(ctx context.Context, adminID, action string, targetID int64) {
	s.TrackEvent(ctx, "admin_"+HashUserID(adminID), action, map[string]interface{}{
		"target_id": targetID,
	})
}
