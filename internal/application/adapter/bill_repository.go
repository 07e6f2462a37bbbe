// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// BillRepository defines the interface for bill persistence operations.
type BillRepository interface {
	// FindByUserID retrieves all bills for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Bill, error)

	// FindByID retrieves a bill by its ID, scoped to the owning user.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Bill, error)

	// Update updates an existing bill in the database.
	Update(ctx context.Context, bill *entity.Bill) error
}
