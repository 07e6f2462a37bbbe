// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/forecasting/internal/application/adapter"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
	"github.com/finance-tracker/forecasting/internal/integration/persistence/model"
)

// billRepository implements the adapter.BillRepository interface.
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository instance.
func NewBillRepository(db *gorm.DB) adapter.BillRepository {
	return &billRepository{
		db: db,
	}
}

// FindByUserID retrieves all bills for a given user.
func (r *billRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Bill, error) {
	var billModels []model.BillModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}

	bills := make([]*entity.Bill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToEntity()
	}
	return bills, nil
}

// FindByID retrieves a bill by its ID, scoped to its owner.
func (r *billRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Bill, error) {
	var billModel model.BillModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBillNotFound
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// Update persists the bill's payment and schedule fields.
func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	result := r.db.WithContext(ctx).
		Model(&model.BillModel{}).
		Where("id = ? AND user_id = ?", bill.ID, bill.UserID).
		Updates(map[string]any{
			"last_paid_date": bill.Schedule.LastPaidDate,
			"next_due_date":  bill.Schedule.NextDueDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBillNotFound
	}
	return nil
}
