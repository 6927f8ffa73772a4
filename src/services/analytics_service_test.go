package services

import (
	"context"
	"testing"

	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalyticsService_DisabledWithoutKey(t *testing.T) {
	svc, err := NewAnalyticsService(AnalyticsConfig{Enabled: true})
	require.NoError(t, err)
	assert.False(t, svc.enabled)
	assert.NoError(t, svc.Close())
}

func TestAnalyticsService_NilIsNoop(t *testing.T) {
	var svc *AnalyticsService
	ctx := context.Background()

	svc.TrackLogin(ctx, "alice", models.RoleUser)
	svc.TrackSignUp(ctx, "alice")
	svc.TrackModeration(ctx, "admin", "report_approved", 7)
	assert.NoError(t, svc.Close())
}

func TestHashUserID(t *testing.T) {
	assert.Len(t, HashUserID("alice"), 64)
	assert.Equal(t, HashUserID("alice"), HashUserID("alice"))
	assert.NotEqual(t, HashUserID("alice"), HashUserID("bob"))
}
