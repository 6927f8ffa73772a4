package screens

import (
	"context"
	"testing"

	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() models.ReportSubmission {
	return models.ReportSubmission{
		PersonName: "John Doe",
		Age:        "25",
		Height:     "180",
		LastSeen:   "2024-01-01",
		Place:      "New York",
	}
}

func TestSubmission_RequiresLogin(t *testing.T) {
	f := newFixture(t)

	view, err := f.client("c1").Submission.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, "Please login first", view.Error)
	assert.False(t, view.Success)
	assert.Empty(t, f.api.Calls())
}

func TestSubmission_MissingField(t *testing.T) {
	f := newFixture(t)
	c := f.client("c1")
	f.loginUser(t, c, "alice")

	sub := validSubmission()
	sub.Place = ""
	view, err := c.Submission.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "All fields are required", view.Error)
	assert.Empty(t, f.api.Calls())
}

func TestSubmission_Success(t *testing.T) {
	f := newFixture(t)
	c := f.client("c1")
	f.loginUser(t, c, "alice")

	view, err := c.Submission.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.True(t, view.Success)
	assert.Equal(t, "Report submitted successfully! Redirecting...", view.Message)
	assert.Equal(t, models.PathHome, view.Redirect)
	assert.Equal(t, 2000, view.RedirectAfterMs)

	pending := f.api.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "alice", pending[0].SubmittedBy)
}

func TestSubmission_ServerError(t *testing.T) {
	f := newFixture(t)
	c := f.client("c1")
	f.loginUser(t, c, "alice")
	f.api.Fail("POST", "/api/reports/submit", 400, "Invalid file type")

	view, err := c.Submission.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, "Invalid file type", view.Error)
	assert.False(t, view.Success)
}
