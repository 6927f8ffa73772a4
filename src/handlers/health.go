package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/backend"
	"github.com/khabaroff/missing-persons-portal/src/session"
)

var startTime = time.Now()

// HealthHandler handles health check requests
type HealthHandler struct {
	storage session.Storage
	api     *backend.Client
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage session.Storage, api *backend.Client, version string) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		api:     api,
		version: version,
	}
}

// HandleHealth reports session storage and remote API reachability
func (hh *HealthHandler) HandleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	storageErr := hh.storage.Health(ctx)
	storageLatency := time.Since(start)

	start = time.Now()
	apiErr := hh.api.Ping(ctx)
	apiLatency := time.Since(start)

	body := gin.H{
		"status":          "ok",
		"storage":         "connected",
		"storage_latency": storageLatency.String(),
		"api":             "reachable",
		"api_latency":     apiLatency.String(),
		"uptime":          time.Since(startTime).String(),
	}
	status := http.StatusOK

	if storageErr != nil {
		body["status"] = "unhealthy"
		body["storage"] = "disconnected"
		body["storage_error"] = storageErr.Error()
		status = http.StatusServiceUnavailable
	}
	// API outages only degrade the status
	if apiErr != nil {
		if status == http.StatusOK {
			body["status"] = "degraded"
		}
		body["api"] = "unreachable"
		body["api_error"] = apiErr.Error()
	}

	c.JSON(status, body)
}

// HandleInfo returns service information
func (hh *HealthHandler) HandleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":  "missing-persons-portal",
		"version":  hh.version,
		"status":   "running",
		"api_base": hh.api.BaseURL(),
		"uptime":   time.Since(startTime).String(),
	})
}

// HandleReady returns readiness status (for load balancers)
func (hh *HealthHandler) HandleReady(c *gin.Context) {
	if err := hh.storage.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"ready": false,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ready": true,
	})
}
