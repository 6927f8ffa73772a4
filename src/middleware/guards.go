package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/session"
	"github.com/rs/zerolog/log"
)

// RequireAdmin lets a request through only when the browser holds an admin
// session; otherwise it answers 401 with the admin login as redirect target.
func RequireAdmin(storage session.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := session.For(storage, GetClientID(c)).Admin(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("failed to read admin session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to read session"})
			return
		}
		if admin == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "admin session required",
				"redirect": models.PathAdminLogin,
			})
			return
		}

		c.Next()
	}
}
