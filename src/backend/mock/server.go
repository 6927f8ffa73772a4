package mock

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/models"
)

type failure struct {
	status  int
	message string
}

// Server is an in-process stand-in for the remote missing-persons API.
// It keeps everything in memory and records every call it receives.
type Server struct {
	mu sync.Mutex

	users        map[string]string // user_id -> password
	admins       map[string]string
	pending      []models.Report
	approved     []models.Report
	pendingInfo  []models.ReportInfo
	approvedInfo []models.ReportInfo
	failures     map[string]failure
	calls        []string
	nextID       int64

	// Envelope wraps GET /api/reports as {"reports": [...]}
	Envelope bool
	// UnifiedRoles makes /api/auth/login accept admin credentials and answer with a role
	UnifiedRoles bool

	srv *httptest.Server
}

// NewServer starts a fake API seeded with the two demo admin accounts
func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		users:    make(map[string]string),
		admins:   map[string]string{"admin": "admin123", "admin1": "password123"},
		failures: make(map[string]failure),
		nextID:   1000,
	}
	s.srv = httptest.NewServer(s.routes())
	return s
}

// URL returns the base URL of the fake API
func (s *Server) URL() string {
	return s.srv.URL
}

// Close shuts the fake API down
func (s *Server) Close() {
	s.srv.Close()
}

// AddUser registers a regular account
func (s *Server) AddUser(userID, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = password
}

// AddPendingReport seeds a report awaiting moderation
func (s *Server) AddPendingReport(r models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Status = models.StatusPending
	s.pending = append(s.pending, r)
}

// AddApprovedReport seeds a published report
func (s *Server) AddApprovedReport(r models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Status = models.StatusApproved
	s.approved = append(s.approved, r)
}

// AddPendingInfo seeds an information update awaiting moderation
func (s *Server) AddPendingInfo(i models.ReportInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i.Status = models.StatusPending
	s.pendingInfo = append(s.pendingInfo, i)
}

// AddApprovedInfo seeds a published information update
func (s *Server) AddApprovedInfo(i models.ReportInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i.Status = models.StatusApproved
	s.approvedInfo = append(s.approvedInfo, i)
}

// Fail makes every later call to method+path answer status with message.
// A status of 0 means the connection is dropped without an answer.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// Recover removes an injected failure
func (s *Server) Recover(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method+" "+path)
}

// Calls returns every "METHOD path" received so far
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CallCount counts calls to method+path
func (s *Server) CallCount(method, path string) int {
	key := method + " " + path
	n := 0
	for _, call := range s.Calls() {
		if call == key {
			n++
		}
	}
	return n
}

// Pending returns a copy of the pending reports
func (s *Server) Pending() []models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Report(nil), s.pending...)
}

// Approved returns a copy of the approved reports
func (s *Server) Approved() []models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Report(nil), s.approved...)
}

// PendingInfo returns a copy of the pending information updates
func (s *Server) PendingInfo() []models.ReportInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ReportInfo(nil), s.pendingInfo...)
}

// ApprovedInfo returns a copy of the published information updates
func (s *Server) ApprovedInfo() []models.ReportInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ReportInfo(nil), s.approvedInfo...)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.record)

	api := r.Group("/api")
	api.POST("/auth/admin-login", s.handleAdminLogin)
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/signup", s.handleSignUp)

	api.GET("/reports", s.handleListReports)
	api.POST("/reports/submit", s.handleSubmitReport)
	api.GET("/reports/pending", s.handlePendingReports)
	api.POST("/reports/approve/:id", s.handleApproveReport)
	api.POST("/reports/reject/:id", s.handleRejectReport)

	api.GET("/admin/reports", s.handleAdminReports)
	api.PUT("/admin/reports/:id", s.handleUpdateReport)
	api.DELETE("/admin/reports/:id", s.handleDeleteReport)
	api.POST("/admin/report-info/add", s.handleAddInfo)
	api.DELETE("/admin/report-info/:id", s.handleDeleteInfo)

	api.GET("/report-info/:id", s.handleReportInfo)
	api.POST("/report-info/submit", s.handleSubmitInfo)
	api.POST("/report-info/approve/:id", s.handleApproveInfo)
	api.GET("/pending-info", s.handlePendingInfo)

	return r
}

func (s *Server) record(c *gin.Context) {
	key := c.Request.Method + " " + c.Request.URL.Path

	s.mu.Lock()
	s.calls = append(s.calls, key)
	f, failing := s.failures[key]
	s.mu.Unlock()

	if !failing {
		c.Next()
		return
	}

	if f.status == 0 {
		if hj, ok := c.Writer.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				_ = conn.Close()
			}
		}
		c.Abort()
		return
	}

	if f.message != "" {
		c.AbortWithStatusJSON(f.status, gin.H{"error": f.message})
	} else {
		c.AbortWithStatus(f.status)
	}
}

func (s *Server) newID() int64 {
	s.nextID++
	return s.nextID
}

func now() string {
	return time.Now().Format("2006-01-02T15:04:05.000000")
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleAdminLogin(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil || creds.UserID == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and password are required"})
		return
	}

	s.mu.Lock()
	password, ok := s.admins[creds.UserID]
	s.mu.Unlock()
	if !ok || password != creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin login successful", "user_id": creds.UserID, "isAdmin": true})
}

func (s *Server) handleLogin(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil || creds.UserID == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and password are required"})
		return
	}

	s.mu.Lock()
	userPassword, isUser := s.users[creds.UserID]
	adminPassword, isAdmin := s.admins[creds.UserID]
	unified := s.UnifiedRoles
	s.mu.Unlock()

	if unified && isAdmin && adminPassword == creds.Password {
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user_id": creds.UserID, "isAdmin": true, "role": "admin"})
		return
	}
	if !isUser || userPassword != creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	resp := gin.H{"message": "Login successful", "user_id": creds.UserID, "isLoggedIn": true}
	if unified {
		resp["role"] = "user"
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSignUp(c *gin.Context) {
	var form models.SignUpForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	if form.Phone == "" || form.UserID == "" || form.Password == "" || form.ConfirmPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	if form.Password != form.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[form.UserID]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID already exists"})
		return
	}
	s.users[form.UserID] = form.Password

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user_id": form.UserID})
}

func (s *Server) handleListReports(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))

	s.mu.Lock()
	reports := []models.Report{}
	for _, r := range s.approved {
		if search == "" || strings.Contains(strings.ToLower(r.Name), search) || strings.Contains(strings.ToLower(r.Location), search) {
			reports = append(reports, r)
		}
	}
	envelope := s.Envelope
	s.mu.Unlock()

	if envelope {
		c.JSON(http.StatusOK, gin.H{"reports": reports})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (s *Server) handleSubmitReport(c *gin.Context) {
	name := c.PostForm("personName")
	age := c.PostForm("age")
	height := c.PostForm("height")
	lastSeen := c.PostForm("lastSeen")
	place := c.PostForm("place")
	submittedBy := c.PostForm("submitted_by")
	if name == "" || age == "" || height == "" || lastSeen == "" || place == "" || submittedBy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	ageInt, err := strconv.Atoi(age)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("invalid literal for int(): %q", age)})
		return
	}
	heightInt, err := strconv.Atoi(height)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("invalid literal for int(): %q", height)})
		return
	}

	image := ""
	if file, header, err := c.Request.FormFile("photo"); err == nil {
		data, _ := io.ReadAll(file)
		_ = file.Close()
		ext := strings.TrimPrefix(filepath.Ext(header.Filename), ".")
		image = fmt.Sprintf("data:image/%s;base64,%s", ext, base64.StdEncoding.EncodeToString(data))
	}

	s.mu.Lock()
	report := models.Report{
		ID:          s.newID(),
		Name:        name,
		Age:         ageInt,
		Height:      heightInt,
		LastSeen:    lastSeen,
		Location:    place,
		Image:       image,
		SubmittedBy: submittedBy,
		Status:      models.StatusPending,
		SubmittedAt: now(),
	}
	s.pending = append(s.pending, report)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"message": "Report submitted successfully", "report_id": report.ID})
}

func (s *Server) handlePendingReports(c *gin.Context) {
	reports := s.Pending()
	if reports == nil {
		reports = []models.Report{}
	}
	c.JSON(http.StatusOK, reports)
}

func (s *Server) handleAdminReports(c *gin.Context) {
	reports := s.Approved()
	if reports == nil {
		reports = []models.Report{}
	}
	c.JSON(http.StatusOK, reports)
}

func (s *Server) handleApproveReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.pending {
		if r.ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			r.Status = models.StatusApproved
			r.ApprovedAt = now()
			s.approved = append(s.approved, r)
			c.JSON(http.StatusOK, gin.H{"message": "Report approved successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
}

func (s *Server) handleRejectReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.pending {
		if r.ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Report rejected successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
}

func (s *Server) handleUpdateReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var update models.ReportUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.approved {
		r := &s.approved[i]
		if r.ID != id {
			continue
		}
		if update.Name != nil {
			r.Name = *update.Name
		}
		if update.Age != nil {
			r.Age = *update.Age
		}
		if update.Height != nil {
			r.Height = *update.Height
		}
		if update.Location != nil {
			r.Location = *update.Location
		}
		if update.LastSeen != nil {
			r.LastSeen = *update.LastSeen
		}
		r.UpdatedAt = now()
		c.JSON(http.StatusOK, gin.H{"message": "Report updated successfully", "report": *r})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
}

func (s *Server) handleDeleteReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.approved {
		if r.ID == id {
			s.approved = append(s.approved[:i], s.approved[i+1:]...)
			kept := s.approvedInfo[:0]
			for _, info := range s.approvedInfo {
				if info.ReportID != id {
					kept = append(kept, info)
				}
			}
			s.approvedInfo = kept
			c.JSON(http.StatusOK, gin.H{"message": "Report and associated information deleted successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
}

func (s *Server) handleReportInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	info := []models.ReportInfo{}
	for _, i := range s.approvedInfo {
		if i.ReportID == id {
			info = append(info, i)
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, info)
}

func (s *Server) handleSubmitInfo(c *gin.Context) {
	var sub models.InfoSubmission
	if err := c.ShouldBindJSON(&sub); err != nil || sub.ReportID == 0 || sub.Info == "" || sub.SubmittedBy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	s.mu.Lock()
	info := models.ReportInfo{
		ID:          s.newID(),
		ReportID:    sub.ReportID,
		Info:        sub.Info,
		SubmittedBy: sub.SubmittedBy,
		Status:      models.StatusPending,
		SubmittedAt: now(),
	}
	s.pendingInfo = append(s.pendingInfo, info)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"message": "Information submitted for review", "id": info.ID})
}

func (s *Server) handlePendingInfo(c *gin.Context) {
	info := s.PendingInfo()
	if info == nil {
		info = []models.ReportInfo{}
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleApproveInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, info := range s.pendingInfo {
		if info.ID == id {
			s.pendingInfo = append(s.pendingInfo[:i], s.pendingInfo[i+1:]...)
			info.Status = models.StatusApproved
			info.ApprovedAt = now()
			s.approvedInfo = append(s.approvedInfo, info)
			c.JSON(http.StatusOK, gin.H{"message": "Information approved successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Info not found"})
}

// handleDeleteInfo removes the entry from either list so deletions of
// pending entries succeed as well.
func (s *Server) handleDeleteInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, info := range s.approvedInfo {
		if info.ID == id {
			s.approvedInfo = append(s.approvedInfo[:i], s.approvedInfo[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Information deleted successfully"})
			return
		}
	}
	for i, info := range s.pendingInfo {
		if info.ID == id {
			s.pendingInfo = append(s.pendingInfo[:i], s.pendingInfo[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Information deleted successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Information not found"})
}

func (s *Server) handleAddInfo(c *gin.Context) {
	var body models.AdminInfo
	if err := c.ShouldBindJSON(&body); err != nil || body.ReportID == 0 || body.Info == "" || body.AdminID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	s.mu.Lock()
	ts := now()
	info := models.ReportInfo{
		ID:          s.newID(),
		ReportID:    body.ReportID,
		Info:        body.Info,
		SubmittedBy: "[ADMIN] " + body.AdminID,
		Status:      models.StatusApproved,
		SubmittedAt: ts,
		ApprovedAt:  ts,
	}
	s.approvedInfo = append(s.approvedInfo, info)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"message": "Information added successfully", "id": info.ID})
}
