// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Vendor      *string         `gorm:"type:varchar(255)"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Direction   string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain TransactionRecord.
func (m *TransactionModel) ToEntity() entity.TransactionRecord {
	return entity.TransactionRecord{
		ID:          m.ID,
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		CategoryID:  m.CategoryID,
		Date:        m.Date.UTC(),
		Description: m.Description,
		Vendor:      m.Vendor,
		Amount:      m.Amount,
		Direction:   entity.Direction(m.Direction),
	}
}

// TransactionFromEntity creates a TransactionModel from a domain TransactionRecord.
func TransactionFromEntity(transaction entity.TransactionRecord) *TransactionModel {
	return &TransactionModel{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		AccountID:   transaction.AccountID,
		CategoryID:  transaction.CategoryID,
		Date:        transaction.Date,
		Description: transaction.Description,
		Vendor:      transaction.Vendor,
		Amount:      transaction.Amount,
		Direction:   string(transaction.Direction),
	}
}
