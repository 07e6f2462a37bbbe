// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/forecasting/internal/integration/cache"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	cacheHealthChecker func() bool
	cacheStats         func() cache.Stats
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string       `json:"status"`
	Database   string       `json:"database"`
	Cache      string       `json:"cache"`
	CacheStats *cache.Stats `json:"cache_stats,omitempty"`
	Timestamp  string       `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// cacheHealthChecker is nil when forecast caching is disabled.
func NewHealthController(dbHealthChecker, cacheHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		cacheHealthChecker: cacheHealthChecker,
	}
}

// WithCacheStats reports the forecast cache counters in health responses.
func (h *HealthController) WithCacheStats(stats func() cache.Stats) *HealthController {
	h.cacheStats = stats
	return h
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	cacheStatus := "disabled"
	if h.cacheHealthChecker != nil {
		cacheStatus = "disconnected"
		if h.cacheHealthChecker() {
			cacheStatus = "connected"
		}
	}

	response := HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Cache:     cacheStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.cacheStats != nil {
		stats := h.cacheStats()
		response.CacheStats = &stats
	}

	c.JSON(http.StatusOK, response)
}
