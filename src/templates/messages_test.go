package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMessages(t *testing.T) {
	m, err := LoadMessages()
	require.NoError(t, err)

	assert.Equal(t, "Passwords don't match", m.Auth.PasswordsMismatch)
	assert.Equal(t, "Phone number must be at least 10 digits", m.Auth.PhoneTooShort)
	assert.Equal(t, "Report submitted successfully! Redirecting...", m.Report.Submitted)
	assert.Equal(t, "Are you sure you want to delete this report? This cannot be undone.", m.Confirm.DeleteReport)
	assert.Equal(t, 2*time.Second, m.RedirectDelay())
	assert.Equal(t, 3*time.Second, m.BannerTTL())
}

func TestParseMessages_Invalid(t *testing.T) {
	_, err := parseMessages([]byte("auth: [unclosed"))
	assert.Error(t, err)
}

func TestDefault_IsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}
