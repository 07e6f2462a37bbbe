// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/forecasting/config"
	"github.com/finance-tracker/forecasting/internal/application/adapter"
	"github.com/finance-tracker/forecasting/internal/application/usecase/bill"
	"github.com/finance-tracker/forecasting/internal/application/usecase/forecast"
	"github.com/finance-tracker/forecasting/internal/application/usecase/recurring"
	"github.com/finance-tracker/forecasting/internal/domain/valueobject"
	"github.com/finance-tracker/forecasting/internal/infra/server/router"
	"github.com/finance-tracker/forecasting/internal/integration/adapters"
	"github.com/finance-tracker/forecasting/internal/integration/cache"
	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/forecasting/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Router      *router.Router
	RateLimiter *middleware.RateLimiter
}

// Option customizes the injector.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces the clock used to resolve a missing as_of date.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case forecasts are not cached.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts ...Option) *Injector {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Create repositories
	forecastRepo := persistence.NewForecastRepository(db)
	billRepo := persistence.NewBillRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	var forecastCache adapter.ForecastCache
	var cacheHealthChecker func() bool
	var cacheStats func() cache.Stats
	if redisClient != nil {
		redisCache := cache.NewRedisForecastCache(redisClient)
		forecastCache = redisCache
		cacheStats = redisCache.Stats
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}

	// Create engines
	engine := forecast.NewEngine()
	detector := recurring.NewDetector(valueobject.DefaultRecurrenceConfig())
	scheduler := bill.NewScheduler(bill.ParseDayRollover(cfg.Bill.DayRollover))

	// Create forecast use cases
	generateForecastUseCase := forecast.NewGenerateForecastUseCase(forecastRepo, forecastCache, cfg.Forecast.CacheTTL, engine)
	accountForecastsUseCase := forecast.NewGenerateAccountForecastsUseCase(forecastRepo, engine)
	runScenariosUseCase := forecast.NewRunScenariosUseCase(engine)
	detectRecurringUseCase := recurring.NewDetectRecurringPatternsUseCase(forecastRepo, detector)

	// Create bill use cases
	listUpcomingBillsUseCase := bill.NewListUpcomingBillsUseCase(billRepo, scheduler)
	markBillPaidUseCase := bill.NewMarkBillPaidUseCase(billRepo, scheduler)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker).WithCacheStats(cacheStats)

	forecastController := controller.NewForecastController(
		generateForecastUseCase,
		accountForecastsUseCase,
		runScenariosUseCase,
		detectRecurringUseCase,
		controller.ForecastDefaults{
			HorizonMonths: cfg.Forecast.DefaultHorizonMonths,
			BasedOnMonths: cfg.Forecast.DefaultBasedOnMonths,
		},
		o.now,
	)

	billController := controller.NewBillController(
		listUpcomingBillsUseCase,
		markBillPaidUseCase,
		cfg.Bill.DefaultWithinDays,
		o.now,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		rateLimiter = middleware.NewRateLimiterWithConfig(cfg.Forecast.RateLimitRequests, cfg.Forecast.RateLimitWindow)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, forecastController, billController, rateLimiter, authMiddleware)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Router:      r,
		RateLimiter: rateLimiter,
	}
}
