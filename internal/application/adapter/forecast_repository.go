// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// ForecastRepository defines the read-only data access used by forecasts.
type ForecastRepository interface {
	// GetSnapshot loads the user's accounts, categories, goals and the
	// transactions inside window as one consistent read.
	GetSnapshot(ctx context.Context, userID uuid.UUID, window entity.DateWindow) (*entity.ForecastSnapshot, error)

	// GetTransactions retrieves the user's transactions inside window, ordered by date.
	GetTransactions(ctx context.Context, userID uuid.UUID, window entity.DateWindow) ([]entity.TransactionRecord, error)
}
