package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/screens"
)

// AuthHandler serves the login, guest, sign-up and admin login screens
type AuthHandler struct {
	registry *screens.Registry
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(registry *screens.Registry) *AuthHandler {
	return &AuthHandler{registry: registry}
}

// HandleLogin handles POST /register - combined user/admin login
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := screensOf(c, h.registry).Login.Submit(c.Request.Context(), creds)
	if err != nil {
		respondError(c, "auth", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleGuest handles POST /register/guest - continue without an account
func (h *AuthHandler) HandleGuest(c *gin.Context) {
	c.JSON(http.StatusOK, screensOf(c, h.registry).Login.Guest())
}

// HandleSignUp handles POST /signup
func (h *AuthHandler) HandleSignUp(c *gin.Context) {
	var form models.SignUpForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := screensOf(c, h.registry).SignUp.Submit(c.Request.Context(), form)
	if err != nil {
		respondError(c, "auth", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleAdminLogin handles POST /admin-login
func (h *AuthHandler) HandleAdminLogin(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := screensOf(c, h.registry).AdminLogin.Submit(c.Request.Context(), creds)
	if err != nil {
		respondError(c, "auth", err)
		return
	}
	c.JSON(http.StatusOK, view)
}
