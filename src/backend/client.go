package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/khabaroff/missing-persons-portal/src/logging"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/rs/zerolog"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 32 << 20

// Client talks to the remote missing-persons API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new API client. A zero timeout means requests are only
// bounded by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logging.NewLogger("backend"),
	}
}

// BaseURL returns the origin requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AdminLogin authenticates against the admin endpoint
func (c *Client) AdminLogin(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.postJSON(ctx, "/api/auth/admin-login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates against the regular user endpoint
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.postJSON(ctx, "/api/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignUp creates a new user account
func (c *Client) SignUp(ctx context.Context, form models.SignUpForm) (*models.CreatedResponse, error) {
	var resp models.CreatedResponse
	if err := c.postJSON(ctx, "/api/auth/signup", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListReports returns the approved reports shown on the public page.
// The endpoint answers either a bare array or a {"reports": [...]} envelope;
// both are normalised here.
func (c *Client) ListReports(ctx context.Context) ([]models.Report, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/reports", nil, "", &raw); err != nil {
		return nil, err
	}
	return decodeReportList(raw)
}

func decodeReportList(raw json.RawMessage) ([]models.Report, error) {
	raw = bytes.TrimSpace(raw)
	reports := []models.Report{}
	if len(raw) == 0 {
		return reports, nil
	}

	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &reports); err != nil {
			return nil, &DecodeError{Path: "/api/reports", Err: err}
		}
	case '{':
		var envelope struct {
			Reports []models.Report `json:"reports"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, &DecodeError{Path: "/api/reports", Err: err}
		}
		if envelope.Reports != nil {
			reports = envelope.Reports
		}
	}
	return reports, nil
}

// SubmitReport uploads a new missing-person report as multipart form data
func (c *Client) SubmitReport(ctx context.Context, sub models.ReportSubmission, submittedBy string) (*models.CreatedResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"personName", sub.PersonName},
		{"age", sub.Age},
		{"height", sub.Height},
		{"lastSeen", sub.LastSeen},
		{"place", sub.Place},
		{"submitted_by", submittedBy},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", f.name, err)
		}
	}

	if sub.Photo != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, sub.Photo.Filename))
		contentType := sub.Photo.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("failed to create photo part: %w", err)
		}
		if _, err := part.Write(sub.Photo.Data); err != nil {
			return nil, fmt.Errorf("failed to write photo: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	var resp models.CreatedResponse
	if err := c.do(ctx, http.MethodPost, "/api/reports/submit", &buf, w.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PendingReports returns reports awaiting moderation
func (c *Client) PendingReports(ctx context.Context) ([]models.Report, error) {
	reports := []models.Report{}
	if err := c.do(ctx, http.MethodGet, "/api/reports/pending", nil, "", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// AdminReports returns approved reports for the moderation view
func (c *Client) AdminReports(ctx context.Context) ([]models.Report, error) {
	reports := []models.Report{}
	if err := c.do(ctx, http.MethodGet, "/api/admin/reports", nil, "", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// ApproveReport moves a pending report to approved
func (c *Client) ApproveReport(ctx context.Context, reportID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/reports/approve/%d", reportID), nil, "", nil)
}

// RejectReport drops a pending report
func (c *Client) RejectReport(ctx context.Context, reportID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/reports/reject/%d", reportID), nil, "", nil)
}

// DeleteReport removes an approved report and its information updates
func (c *Client) DeleteReport(ctx context.Context, reportID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/reports/%d", reportID), nil, "", nil)
}

// UpdateReport edits an approved report and returns the stored version
func (c *Client) UpdateReport(ctx context.Context, reportID int64, update models.ReportUpdate) (*models.Report, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report update: %w", err)
	}

	var resp struct {
		Report models.Report `json:"report"`
	}
	path := fmt.Sprintf("/api/admin/reports/%d", reportID)
	if err := c.do(ctx, http.MethodPut, path, bytes.NewReader(body), "application/json", &resp); err != nil {
		return nil, err
	}
	return &resp.Report, nil
}

// ReportInfo returns the approved information updates of one report, in server order
func (c *Client) ReportInfo(ctx context.Context, reportID int64) ([]models.ReportInfo, error) {
	info := []models.ReportInfo{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/report-info/%d", reportID), nil, "", &info); err != nil {
		return nil, err
	}
	return info, nil
}

// SubmitInfo files a pending information update for a report
func (c *Client) SubmitInfo(ctx context.Context, sub models.InfoSubmission) (*models.CreatedResponse, error) {
	var resp models.CreatedResponse
	if err := c.postJSON(ctx, "/api/report-info/submit", sub, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PendingInfo returns information updates awaiting moderation
func (c *Client) PendingInfo(ctx context.Context) ([]models.ReportInfo, error) {
	info := []models.ReportInfo{}
	if err := c.do(ctx, http.MethodGet, "/api/pending-info", nil, "", &info); err != nil {
		return nil, err
	}
	return info, nil
}

// ApproveInfo publishes a pending information update
func (c *Client) ApproveInfo(ctx context.Context, infoID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/report-info/approve/%d", infoID), nil, "", nil)
}

// DeleteInfo removes an information update
func (c *Client) DeleteInfo(ctx context.Context, infoID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/report-info/%d", infoID), nil, "", nil)
}

// AddInfo files an admin-authored information update
func (c *Client) AddInfo(ctx context.Context, info models.AdminInfo) (*models.CreatedResponse, error) {
	var resp models.CreatedResponse
	if err := c.postJSON(ctx, "/api/admin/report-info/add", info, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping checks that the remote service answers at all
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/reports", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: http.MethodGet, Path: "/api/reports", Err: err}
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", out)
}

// do performs one request. Non-2xx answers become *APIError, network failures
// *TransportError and undecodable bodies *DecodeError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, data)
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("error", apiErr.Message).
			Msg("api returned error status")
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}
