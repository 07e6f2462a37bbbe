// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/forecasting/internal/application/adapter"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
	"github.com/finance-tracker/forecasting/internal/integration/persistence/model"
)

// forecastRepository implements the adapter.ForecastRepository interface.
type forecastRepository struct {
	db *gorm.DB
}

// NewForecastRepository creates a new forecast repository instance.
func NewForecastRepository(db *gorm.DB) adapter.ForecastRepository {
	return &forecastRepository{
		db: db,
	}
}

// GetSnapshot reads accounts, categories, goals and windowed transactions
// inside a single database transaction.
func (r *forecastRepository) GetSnapshot(ctx context.Context, userID uuid.UUID, window entity.DateWindow) (*entity.ForecastSnapshot, error) {
	snapshot := &entity.ForecastSnapshot{
		UserID: userID,
		Window: window,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var accountModels []model.AccountModel
		if err := tx.Where("user_id = ?", userID).
			Order("name ASC, id ASC").
			Find(&accountModels).Error; err != nil {
			return fmt.Errorf("failed to load accounts: %w", err)
		}

		var categoryModels []model.CategoryModel
		if err := tx.Where("owner_id = ?", userID).
			Order("name ASC").
			Find(&categoryModels).Error; err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}

		var goalModels []model.GoalModel
		if err := tx.Where("user_id = ?", userID).
			Find(&goalModels).Error; err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}

		transactions, err := findTransactions(tx, userID, window)
		if err != nil {
			return err
		}

		snapshot.Accounts = make([]entity.Account, len(accountModels))
		for i := range accountModels {
			snapshot.Accounts[i] = accountModels[i].ToEntity()
		}
		snapshot.Categories = make([]entity.Category, len(categoryModels))
		for i := range categoryModels {
			snapshot.Categories[i] = categoryModels[i].ToEntity()
		}
		snapshot.Goals = make([]entity.Goal, len(goalModels))
		for i := range goalModels {
			snapshot.Goals[i] = goalModels[i].ToEntity()
		}
		snapshot.Transactions = transactions

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// GetTransactions retrieves the user's transactions inside window, oldest first.
func (r *forecastRepository) GetTransactions(ctx context.Context, userID uuid.UUID, window entity.DateWindow) ([]entity.TransactionRecord, error) {
	return findTransactions(r.db.WithContext(ctx), userID, window)
}

func findTransactions(db *gorm.DB, userID uuid.UUID, window entity.DateWindow) ([]entity.TransactionRecord, error) {
	query := db.Model(&model.TransactionModel{}).Where("user_id = ?", userID)
	if !window.Start.IsZero() {
		query = query.Where("date >= ?", window.Start)
	}
	if !window.End.IsZero() {
		query = query.Where("date < ?", window.End)
	}

	var transactionModels []model.TransactionModel
	if err := query.Order("date ASC, id ASC").Find(&transactionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	transactions := make([]entity.TransactionRecord, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}
