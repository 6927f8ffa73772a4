package screens

import (
	"context"
	"net/http"
	"testing"

	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedListing(f *fixture) {
	f.api.AddApprovedReport(models.Report{ID: 1, Name: "John Doe", Age: 25, Location: "New York"})
	f.api.AddApprovedReport(models.Report{ID: 2, Name: "Jane Smith", Age: 31, Location: "Los Angeles"})
}

func TestHome_SearchMatchesNameOrLocation(t *testing.T) {
	f := newFixture(t)
	seedListing(f)
	home := f.client("c1").Home

	view, err := home.Mount(context.Background())
	require.NoError(t, err)
	assert.Len(t, view.Reports, 2)
	assert.Nil(t, view.User)
	assert.False(t, view.CanFileReport)

	view = home.Search("new")
	require.Len(t, view.Reports, 1)
	assert.Equal(t, "John Doe", view.Reports[0].Name)

	view = home.Search("SMITH")
	require.Len(t, view.Reports, 1)
	assert.Equal(t, "Jane Smith", view.Reports[0].Name)

	view = home.Search("")
	assert.Len(t, view.Reports, 2)
}

func TestFilterReports(t *testing.T) {
	reports := []models.Report{
		{ID: 1, Name: "John Doe", Location: "New York"},
		{ID: 2, Name: "Jane Smith", Location: "Los Angeles"},
	}
	assert.Len(t, FilterReports(reports, "an"), 1)
	assert.Len(t, FilterReports(reports, "o"), 2)
	assert.Empty(t, FilterReports(reports, "zzz"))
	assert.NotNil(t, FilterReports(nil, ""))
}

func TestHome_EnvelopeResponse(t *testing.T) {
	f := newFixture(t)
	f.api.Envelope = true
	seedListing(f)

	view, err := f.client("c1").Home.Mount(context.Background())
	require.NoError(t, err)
	assert.Len(t, view.Reports, 2)
}

func TestHome_FetchFailureUsesCachedList(t *testing.T) {
	f := newFixture(t)
	f.api.Fail(http.MethodGet, "/api/reports", http.StatusInternalServerError, "")

	view, err := f.client("c1").Home.Mount(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, view.Reports)
	assert.Empty(t, view.Reports)
}

func TestHome_SelectLoadsInfoInServerOrder(t *testing.T) {
	f := newFixture(t)
	seedListing(f)
	f.api.AddApprovedInfo(models.ReportInfo{ID: 10, ReportID: 1, Info: "first"})
	f.api.AddApprovedInfo(models.ReportInfo{ID: 11, ReportID: 2, Info: "other"})
	f.api.AddApprovedInfo(models.ReportInfo{ID: 12, ReportID: 1, Info: "second"})
	home := f.client("c1").Home
	ctx := context.Background()

	_, err := home.Mount(ctx)
	require.NoError(t, err)

	view, err := home.Select(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, view.Selected)
	assert.Equal(t, "John Doe", view.Selected.Name)
	require.Len(t, view.SelectedInfo, 2)
	assert.Equal(t, "first", view.SelectedInfo[0].Info)
	assert.Equal(t, "second", view.SelectedInfo[1].Info)

	_, err = home.Select(ctx, 99)
	assert.ErrorIs(t, err, ErrReportNotFound)

	view = home.CloseSelection()
	assert.Nil(t, view.Selected)
	assert.Empty(t, view.SelectedInfo)
}

func TestHome_GuestReportInfoRedirects(t *testing.T) {
	f := newFixture(t)
	seedListing(f)
	home := f.client("c1").Home
	ctx := context.Background()
	_, err := home.Mount(ctx)
	require.NoError(t, err)

	view, err := home.OpenInfoModal(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PathRegister, view.Redirect)
	assert.Equal(t, "Please login to report information", view.Message)
	assert.False(t, view.InfoModal.Open)

	view, err = home.SubmitInfo(ctx, 1, "seen")
	require.NoError(t, err)
	assert.Equal(t, models.PathRegister, view.Redirect)
	assert.Equal(t, "Please login to report information", view.Message)
	assert.Empty(t, f.api.PendingInfo())
}

func TestHome_OpenInfoModalRereadsSession(t *testing.T) {
	f := newFixture(t)
	seedListing(f)
	c := f.client("c1")
	f.loginUser(t, c, "alice")
	ctx := context.Background()

	view, err := c.Home.Mount(ctx)
	require.NoError(t, err)
	require.True(t, view.CanFileReport)

	// logged out from another tab after the listing was mounted
	require.NoError(t, c.Session.ClearUser(ctx))

	view, err = c.Home.OpenInfoModal(ctx, 1)
	require.NoError(t, err)
	assert.False(t, view.InfoModal.Open)
	assert.False(t, view.CanFileReport)
	assert.Nil(t, view.User)
	assert.Equal(t, models.PathRegister, view.Redirect)
}

func TestHome_SelectingAnotherReportResetsInfo(t *testing.T) {
	f := newFixture(t)
	seedListing(f)
	f.api.AddApprovedInfo(models.ReportInfo{ID: 10, ReportID: 1, Info: "seen at the station"})
	f.api.Fail(http.MethodGet, "/api/report-info/2", http.StatusInternalServerError, "")
	home := f.client("c1").Home
	ctx := context.Background()

	_, err := home.Mount(ctx)
	require.NoError(t, err)

	view, err := home.Select(ctx, 1)
	require.NoError(t, err)
	require.Len(t, view.SelectedInfo, 1)

	view, err = home.Select(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, view.Selected)
	assert.Equal(t, int64(2), view.Selected.ID)
	assert.Empty(t, view.SelectedInfo)
}

func TestHome_SubmitInfo(t *testing.T) {
	f := newFixture(t)
	seedListing(f)
	c := f.client("c1")
	f.loginUser(t, c, "alice")
	ctx := context.Background()

	view, err := c.Home.Mount(ctx)
	require.NoError(t, err)
	assert.True(t, view.CanFileReport)

	_, err = c.Home.Select(ctx, 1)
	require.NoError(t, err)

	view, err = c.Home.OpenInfoModal(ctx, 1)
	require.NoError(t, err)
	assert.True(t, view.InfoModal.Open)
	assert.Equal(t, "John Doe", view.InfoModal.ReportName)

	view, err = c.Home.SubmitInfo(ctx, 1, "   ")
	require.NoError(t, err)
	assert.True(t, view.InfoModal.Open)
	assert.Equal(t, "Please enter some information", view.InfoModal.Error)

	view, err = c.Home.SubmitInfo(ctx, 1, "  seen at the station  ")
	require.NoError(t, err)
	assert.False(t, view.InfoModal.Open)

	pending := f.api.PendingInfo()
	require.Len(t, pending, 1)
	assert.Equal(t, "seen at the station", pending[0].Info)
	assert.Equal(t, "alice", pending[0].SubmittedBy)

	// the detail list was fetched again after the submission
	assert.Equal(t, 2, f.api.CallCount(http.MethodGet, "/api/report-info/1"))
}

func TestHome_SubmitInfoFailureKeepsModalOpen(t *testing.T) {
	f := newFixture(t)
	seedListing(f)
	c := f.client("c1")
	f.loginUser(t, c, "alice")
	f.api.Fail(http.MethodPost, "/api/report-info/submit", http.StatusInternalServerError, "")
	ctx := context.Background()

	_, err := c.Home.Mount(ctx)
	require.NoError(t, err)

	view, err := c.Home.SubmitInfo(ctx, 2, "seen")
	require.NoError(t, err)
	assert.True(t, view.InfoModal.Open)
	assert.Equal(t, "Failed to submit information", view.InfoModal.Error)
}

func TestHome_Logout(t *testing.T) {
	f := newFixture(t)
	c := f.client("c1")
	f.loginUser(t, c, "alice")
	ctx := context.Background()

	_, err := c.Home.Mount(ctx)
	require.NoError(t, err)

	view, err := c.Home.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PathRegister, view.Redirect)
	assert.Nil(t, view.User)

	user, err := c.Session.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}
