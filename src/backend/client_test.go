package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/khabaroff/missing-persons-portal/src/backend"
	"github.com/khabaroff/missing-persons-portal/src/backend/mock"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*backend.Client, *mock.Server) {
	t.Helper()
	api := mock.NewServer()
	t.Cleanup(api.Close)
	return backend.NewClient(api.URL(), 5*time.Second), api
}

func TestListReports_BareArray(t *testing.T) {
	client, api := newClient(t)
	api.AddApprovedReport(models.Report{ID: 1, Name: "John Doe", Location: "New York"})

	reports, err := client.ListReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "John Doe", reports[0].Name)
	assert.Equal(t, models.StatusApproved, reports[0].Status)
}

func TestListReports_Envelope(t *testing.T) {
	client, api := newClient(t)
	api.Envelope = true
	api.AddApprovedReport(models.Report{ID: 1, Name: "John Doe", Location: "New York"})
	api.AddApprovedReport(models.Report{ID: 2, Name: "Jane Smith", Location: "Los Angeles"})

	reports, err := client.ListReports(context.Background())
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestListReports_UnknownObjectIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [{"id": 1}]}`))
	}))
	defer srv.Close()

	reports, err := backend.NewClient(srv.URL, time.Second).ListReports(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}

func TestListReports_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "nope"`))
	}))
	defer srv.Close()

	_, err := backend.NewClient(srv.URL, time.Second).ListReports(context.Background())
	var decodeErr *backend.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "fallback", backend.Message(err, "fallback"))
}

func TestLogin_ErrorCarriesServerMessage(t *testing.T) {
	client, _ := newClient(t)

	_, err := client.Login(context.Background(), models.Credentials{UserID: "ghost", Password: "x"})
	require.Error(t, err)

	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Equal(t, "Invalid credentials", backend.Message(err, "Login failed"))
}

func TestAdminLogin_Success(t *testing.T) {
	client, _ := newClient(t)

	resp, err := client.AdminLogin(context.Background(), models.Credentials{UserID: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.Equal(t, "admin", resp.UserID)
}

func TestAPIError_WithoutMessageUsesFallback(t *testing.T) {
	client, api := newClient(t)
	api.Fail(http.MethodPost, "/api/reports/approve/7", http.StatusInternalServerError, "")

	err := client.ApproveReport(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, backend.IsAPIError(err))
	assert.Equal(t, "Failed to approve report", backend.Message(err, "Failed to approve report"))
	assert.Contains(t, err.Error(), "Internal Server Error")
}

func TestTransportError(t *testing.T) {
	client := backend.NewClient("http://127.0.0.1:1", time.Second)

	_, err := client.PendingReports(context.Background())
	require.Error(t, err)

	var transportErr *backend.TransportError
	assert.True(t, errors.As(err, &transportErr))
	assert.False(t, backend.IsAPIError(err))
	assert.Equal(t, "Failed to load data", backend.Message(err, "Failed to load data"))
}

func TestSubmitReport_Multipart(t *testing.T) {
	client, api := newClient(t)

	resp, err := client.SubmitReport(context.Background(), models.ReportSubmission{
		PersonName: "John Doe",
		Age:        "25",
		Height:     "180",
		LastSeen:   "2024-01-01",
		Place:      "New York",
		Photo:      &models.Upload{Filename: "john.png", ContentType: "image/png", Data: []byte("png-bytes")},
	}, "alice")
	require.NoError(t, err)
	assert.NotZero(t, resp.ReportID)

	pending := api.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "John Doe", pending[0].Name)
	assert.Equal(t, 25, pending[0].Age)
	assert.Equal(t, 180, pending[0].Height)
	assert.Equal(t, "New York", pending[0].Location)
	assert.Equal(t, "alice", pending[0].SubmittedBy)
	assert.True(t, strings.HasPrefix(pending[0].Image, "data:image/png;base64,"))
}

func TestSubmitReport_MissingFieldSurfacesServerError(t *testing.T) {
	client, _ := newClient(t)

	_, err := client.SubmitReport(context.Background(), models.ReportSubmission{PersonName: "X"}, "alice")
	assert.Equal(t, "All fields are required", backend.Message(err, "Failed to submit report"))
}

func TestInfoLifecycle(t *testing.T) {
	client, api := newClient(t)
	ctx := context.Background()
	api.AddApprovedReport(models.Report{ID: 5, Name: "John Doe"})

	created, err := client.SubmitInfo(ctx, models.InfoSubmission{ReportID: 5, Info: "seen at the station", SubmittedBy: "alice"})
	require.NoError(t, err)

	pending, err := client.PendingInfo(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	require.NoError(t, client.ApproveInfo(ctx, created.ID))

	info, err := client.ReportInfo(ctx, 5)
	require.NoError(t, err)
	require.Len(t, info, 1)
	assert.Equal(t, models.StatusApproved, info[0].Status)

	require.NoError(t, client.DeleteInfo(ctx, created.ID))
	info, err = client.ReportInfo(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, info)
}

func TestAddInfo_AdminAuthored(t *testing.T) {
	client, api := newClient(t)

	_, err := client.AddInfo(context.Background(), models.AdminInfo{ReportID: 5, Info: "confirmed", AdminID: "admin"})
	require.NoError(t, err)

	approved := api.ApprovedInfo()
	require.Len(t, approved, 1)
	assert.Equal(t, "[ADMIN] admin", approved[0].SubmittedBy)
}

func TestUpdateReport(t *testing.T) {
	client, api := newClient(t)
	api.AddApprovedReport(models.Report{ID: 9, Name: "Old", Location: "Chicago"})

	name := "New Name"
	report, err := client.UpdateReport(context.Background(), 9, models.ReportUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", report.Name)
	assert.Equal(t, "Chicago", report.Location)
	assert.NotEmpty(t, report.UpdatedAt)
}

func TestModerationCalls(t *testing.T) {
	client, api := newClient(t)
	ctx := context.Background()
	api.AddPendingReport(models.Report{ID: 1, Name: "A"})
	api.AddPendingReport(models.Report{ID: 2, Name: "B"})

	require.NoError(t, client.ApproveReport(ctx, 1))
	require.NoError(t, client.RejectReport(ctx, 2))

	approved, err := client.AdminReports(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, int64(1), approved[0].ID)

	pending, err := client.PendingReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, client.DeleteReport(ctx, 1))
	err = client.DeleteReport(ctx, 1)
	assert.Equal(t, "Report not found", backend.Message(err, ""))
}

func TestPing(t *testing.T) {
	client, _ := newClient(t)
	assert.NoError(t, client.Ping(context.Background()))

	assert.Error(t, backend.NewClient("http://127.0.0.1:1", time.Second).Ping(context.Background()))
}

func TestIsRemoteError(t *testing.T) {
	assert.True(t, backend.IsRemoteError(&backend.APIError{Status: http.StatusNotFound}))
	assert.True(t, backend.IsRemoteError(&backend.TransportError{Method: "GET", Path: "/", Err: errors.New("refused")}))
	assert.True(t, backend.IsRemoteError(&backend.DecodeError{Path: "/", Err: errors.New("eof")}))
	assert.False(t, backend.IsRemoteError(errors.New("storage down")))
	assert.False(t, backend.IsRemoteError(nil))
}
