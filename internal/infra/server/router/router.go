// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	forecastController  *controller.ForecastController
	billController      *controller.BillController
	forecastRateLimiter *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	forecastController *controller.ForecastController,
	billController *controller.BillController,
	forecastRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		forecastController:  forecastController,
		billController:      billController,
		forecastRateLimiter: forecastRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Forecast routes (require authentication, rate limited per user)
		if r.forecastController != nil && r.authMiddleware != nil {
			forecasts := v1.Group("/forecast")
			forecasts.Use(r.authMiddleware.Authenticate())
			if r.forecastRateLimiter != nil {
				forecasts.Use(r.forecastRateLimiter.Middleware())
			}
			{
				forecasts.GET("", r.forecastController.Get)
				forecasts.GET("/accounts", r.forecastController.ListAccounts)
				forecasts.POST("/scenarios", r.forecastController.RunScenarios)
				forecasts.GET("/recurring", r.forecastController.Recurring)
			}
		}

		// Bill routes (require authentication)
		if r.billController != nil && r.authMiddleware != nil {
			bills := v1.Group("/bills")
			bills.Use(r.authMiddleware.Authenticate())
			{
				bills.GET("/upcoming", r.billController.Upcoming)
				bills.POST("/:id/pay", r.billController.MarkPaid)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
