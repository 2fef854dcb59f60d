package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() bool

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    HealthChecker
	cacheHealthChecker HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker, cacheHealthChecker HealthChecker) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		cacheHealthChecker: cacheHealthChecker,
	}
}

// Check handles GET /health requests.
// The status is "degraded" with a 503 when a dependency is down.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := connectionStatus(h.dbHealthChecker)
	cacheStatus := connectionStatus(h.cacheHealthChecker)

	status, code := "ok", http.StatusOK
	if dbStatus != "connected" || cacheStatus != "connected" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Cache:     cacheStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func connectionStatus(check HealthChecker) string {
	if check != nil && check() {
		return "connected"
	}
	return "disconnected"
}
