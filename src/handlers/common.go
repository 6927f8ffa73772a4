package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/middleware"
	"github.com/khabaroff/missing-persons-portal/src/screens"
	"github.com/khabaroff/missing-persons-portal/src/services"
)

// screensOf returns the screens of the requesting browser
func screensOf(c *gin.Context, registry *screens.Registry) *screens.Client {
	return registry.Get(middleware.GetClientID(c))
}

// idParam parses the numeric :id path parameter, answering 400 when it is not a number
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps screen errors to HTTP answers. Anything unexpected is
// logged and answered with 500.
func respondError(c *gin.Context, component string, err error) {
	var confirmErr *screens.ConfirmationError
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &confirmErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":                 "confirmation required",
			"confirm":               confirmErr.Prompt,
			"confirmation_required": true,
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.Is(err, screens.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	case errors.Is(err, services.ErrNotAdmin):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin session required"})
	default:
		logger := middleware.Logger(c, component)
		logger.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
