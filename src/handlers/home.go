package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/screens"
)

// HomeHandler serves the public listing
type HomeHandler struct {
	registry *screens.Registry
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(registry *screens.Registry) *HomeHandler {
	return &HomeHandler{registry: registry}
}

// InfoRequest is the body of an information update
type InfoRequest struct {
	Info string `json:"info" form:"info"`
}

// HandleMount handles GET /home
func (h *HomeHandler) HandleMount(c *gin.Context) {
	view, err := screensOf(c, h.registry).Home.Mount(c.Request.Context())
	if err != nil {
		respondError(c, "home", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleSearch handles GET /home/search?q=
func (h *HomeHandler) HandleSearch(c *gin.Context) {
	c.JSON(http.StatusOK, screensOf(c, h.registry).Home.Search(c.Query("q")))
}

// HandleSelect handles GET /home/reports/:id
func (h *HomeHandler) HandleSelect(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	view, err := screensOf(c, h.registry).Home.Select(c.Request.Context(), id)
	if err != nil {
		respondError(c, "home", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleCloseSelection handles DELETE /home/selection
func (h *HomeHandler) HandleCloseSelection(c *gin.Context) {
	c.JSON(http.StatusOK, screensOf(c, h.registry).Home.CloseSelection())
}

// HandleOpenInfo handles POST /home/reports/:id/info-modal
func (h *HomeHandler) HandleOpenInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	view, err := screensOf(c, h.registry).Home.OpenInfoModal(c.Request.Context(), id)
	if err != nil {
		respondError(c, "home", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleCloseInfo handles DELETE /home/info-modal
func (h *HomeHandler) HandleCloseInfo(c *gin.Context) {
	c.JSON(http.StatusOK, screensOf(c, h.registry).Home.CloseInfoModal())
}

// HandleSubmitInfo handles POST /home/reports/:id/info
func (h *HomeHandler) HandleSubmitInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req InfoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := screensOf(c, h.registry).Home.SubmitInfo(c.Request.Context(), id, req.Info)
	if err != nil {
		respondError(c, "home", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleLogout handles POST /home/logout
func (h *HomeHandler) HandleLogout(c *gin.Context) {
	view, err := screensOf(c, h.registry).Home.Logout(c.Request.Context())
	if err != nil {
		respondError(c, "home", err)
		return
	}
	c.JSON(http.StatusOK, view)
}
