package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/screens"
)

// DashboardHandler serves the admin moderation dashboard.
// HandleMount is unguarded and answers a missing admin session with a
// redirect to the admin login; the other routes sit behind middleware.RequireAdmin.
type DashboardHandler struct {
	registry *screens.Registry
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(registry *screens.Registry) *DashboardHandler {
	return &DashboardHandler{registry: registry}
}

func (h *DashboardHandler) dashboard(c *gin.Context) *screens.Dashboard {
	return screensOf(c, h.registry).Dashboard
}

// HandleMount handles GET /admin-dashboard
func (h *DashboardHandler) HandleMount(c *gin.Context) {
	view, err := h.dashboard(c).Mount(c.Request.Context())
	if err != nil {
		respondError(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleRefresh handles POST /admin-dashboard/refresh
func (h *DashboardHandler) HandleRefresh(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard(c).Refresh(c.Request.Context()))
}

// HandleApproveReport handles POST /admin-dashboard/reports/:id/approve
func (h *DashboardHandler) HandleApproveReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.dashboard(c).ApproveReport(c.Request.Context(), id))
}

// HandleRejectReport handles POST /admin-dashboard/reports/:id/reject
func (h *DashboardHandler) HandleRejectReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.dashboard(c).RejectReport(c.Request.Context(), id))
}

// HandleUpdateReport handles PUT /admin-dashboard/reports/:id
func (h *DashboardHandler) HandleUpdateReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var update models.ReportUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if update.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	c.JSON(http.StatusOK, h.dashboard(c).UpdateReport(c.Request.Context(), id, update))
}

// HandleDeleteReport handles DELETE /admin-dashboard/reports/:id?confirm=true
func (h *DashboardHandler) HandleDeleteReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	view, err := h.dashboard(c).DeleteReport(c.Request.Context(), id, c.Query("confirm") == "true")
	if err != nil {
		respondError(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleApproveInfo handles POST /admin-dashboard/info/:id/approve
func (h *DashboardHandler) HandleApproveInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.dashboard(c).ApproveInfo(c.Request.Context(), id))
}

// HandleRejectInfo handles POST /admin-dashboard/info/:id/reject
func (h *DashboardHandler) HandleRejectInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.dashboard(c).RejectInfo(c.Request.Context(), id))
}

// HandleDeleteInfo handles DELETE /admin-dashboard/info/:id?confirm=true
func (h *DashboardHandler) HandleDeleteInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	view, err := h.dashboard(c).DeleteInfo(c.Request.Context(), id, c.Query("confirm") == "true")
	if err != nil {
		respondError(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleAddInfo handles POST /admin-dashboard/reports/:id/info
func (h *DashboardHandler) HandleAddInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req InfoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.dashboard(c).AddInfo(c.Request.Context(), id, req.Info)
	if err != nil {
		respondError(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleLogout handles POST /admin-dashboard/logout
func (h *DashboardHandler) HandleLogout(c *gin.Context) {
	view, err := h.dashboard(c).Logout(c.Request.Context())
	if err != nil {
		respondError(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, view)
}
