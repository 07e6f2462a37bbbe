// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/forecasting/internal/application/adapter"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
)

const (
	// MaxHorizonMonths is the furthest a forecast may project.
	MaxHorizonMonths = 60
	// MaxBasedOnMonths is the longest history window a forecast may read.
	MaxBasedOnMonths = 60
)

// GenerateForecastInput represents the input for generating a forecast.
type GenerateForecastInput struct {
	UserID        uuid.UUID
	AccountID     *uuid.UUID
	HorizonMonths int
	BasedOnMonths int
	AsOf          time.Time
}

// GenerateForecastOutput represents the output of generating a forecast.
type GenerateForecastOutput struct {
	Forecast *entity.ForecastResult
	Cached   bool
}

// GenerateForecastUseCase handles forecasting one account or all accounts combined.
type GenerateForecastUseCase struct {
	forecastRepo adapter.ForecastRepository
	cache        adapter.ForecastCache
	cacheTTL     time.Duration
	engine       *Engine
}

// NewGenerateForecastUseCase creates a new GenerateForecastUseCase instance.
// cache may be nil, in which case every request is computed.
func NewGenerateForecastUseCase(
	forecastRepo adapter.ForecastRepository,
	cache adapter.ForecastCache,
	cacheTTL time.Duration,
	engine *Engine,
) *GenerateForecastUseCase {
	return &GenerateForecastUseCase{
		forecastRepo: forecastRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		engine:       engine,
	}
}

// Execute loads a snapshot once and runs the forecast engine over it.
func (uc *GenerateForecastUseCase) Execute(ctx context.Context, input GenerateForecastInput) (*GenerateForecastOutput, error) {
	if err := validateForecastParams(input.HorizonMonths, input.BasedOnMonths, input.AsOf); err != nil {
		return nil, err
	}

	key := CacheKey(input)
	if cached := uc.lookupCache(ctx, key); cached != nil {
		return &GenerateForecastOutput{Forecast: cached, Cached: true}, nil
	}

	snapshot, err := uc.forecastRepo.GetSnapshot(ctx, input.UserID, HistoryWindow(input.AsOf, input.BasedOnMonths))
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast snapshot: %w", err)
	}

	result, err := uc.engine.Forecast(ctx, snapshot, Request{
		AccountID:     input.AccountID,
		AsOf:          input.AsOf,
		HorizonMonths: input.HorizonMonths,
		BasedOnMonths: input.BasedOnMonths,
	})
	if err != nil {
		return nil, err
	}

	uc.storeCache(ctx, key, result)

	return &GenerateForecastOutput{Forecast: result}, nil
}

func (uc *GenerateForecastUseCase) lookupCache(ctx context.Context, key string) *entity.ForecastResult {
	if uc.cache == nil {
		return nil
	}
	cached, err := uc.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Forecast cache read failed", "key", key, "error", err)
		return nil
	}
	return cached
}

func (uc *GenerateForecastUseCase) storeCache(ctx context.Context, key string, result *entity.ForecastResult) {
	if uc.cache == nil || uc.cacheTTL <= 0 {
		return
	}
	if err := uc.cache.Set(ctx, key, result, uc.cacheTTL); err != nil {
		slog.Warn("Forecast cache write failed", "key", key, "error", err)
	}
}

// CacheKey identifies a forecast by everything that determines its output.
func CacheKey(input GenerateForecastInput) string {
	account := "all"
	if input.AccountID != nil {
		account = input.AccountID.String()
	}
	return fmt.Sprintf("%s:%s:h%d:b%d:%s",
		input.UserID,
		account,
		input.HorizonMonths,
		input.BasedOnMonths,
		input.AsOf.UTC().Format("2006-01-02"),
	)
}

// validateForecastParams checks the horizon, history window and anchor date.
func validateForecastParams(horizonMonths, basedOnMonths int, asOf time.Time) error {
	if horizonMonths < 1 || horizonMonths > MaxHorizonMonths {
		return domainerror.NewForecastError(
			domainerror.ErrCodeInvalidHorizon,
			"horizon must be between 1 and 60 months",
			domainerror.ErrInvalidHorizon,
		)
	}
	if basedOnMonths < 1 || basedOnMonths > MaxBasedOnMonths {
		return domainerror.NewForecastError(
			domainerror.ErrCodeInvalidBasedOnMonths,
			"based_on must be between 1 and 60 months",
			domainerror.ErrInvalidBasedOnMonths,
		)
	}
	if asOf.IsZero() {
		return domainerror.NewForecastError(
			domainerror.ErrCodeInvalidAsOfDate,
			"as_of date is required",
			domainerror.ErrInvalidAsOfDate,
		)
	}
	return nil
}
