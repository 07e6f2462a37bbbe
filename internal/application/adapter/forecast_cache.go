// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// ForecastCache stores computed forecasts for reuse.
type ForecastCache interface {
	// Get returns the cached forecast for key, or nil when there is none.
	Get(ctx context.Context, key string) (*entity.ForecastResult, error)

	// Set stores a forecast under key for the given TTL.
	Set(ctx context.Context, key string, result *entity.ForecastResult, ttl time.Duration) error
}
