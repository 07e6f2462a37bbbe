// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// BillModel represents the bills table in the database.
type BillModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(100);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	Frequency    string          `gorm:"type:varchar(20);not null;default:'monthly'"`
	DueDay       int             `gorm:"type:integer;not null"`
	DueMonth     *int            `gorm:"type:integer"`
	LastPaidDate *time.Time      `gorm:"type:date"`
	NextDueDate  *time.Time      `gorm:"type:date;index"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the BillModel.
func (BillModel) TableName() string {
	return "bills"
}

// ToEntity converts a BillModel to a domain Bill entity.
func (m *BillModel) ToEntity() *entity.Bill {
	return &entity.Bill{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		Amount:     m.Amount,
		CategoryID: m.CategoryID,
		Schedule: entity.BillSchedule{
			Frequency:    entity.BillFrequency(m.Frequency),
			DueDay:       m.DueDay,
			DueMonth:     m.DueMonth,
			LastPaidDate: utcDate(m.LastPaidDate),
			NextDueDate:  utcDate(m.NextDueDate),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BillFromEntity creates a BillModel from a domain Bill entity.
func BillFromEntity(bill *entity.Bill) *BillModel {
	return &BillModel{
		ID:           bill.ID,
		UserID:       bill.UserID,
		Name:         bill.Name,
		Amount:       bill.Amount,
		CategoryID:   bill.CategoryID,
		Frequency:    string(bill.Schedule.Frequency),
		DueDay:       bill.Schedule.DueDay,
		DueMonth:     bill.Schedule.DueMonth,
		LastPaidDate: bill.Schedule.LastPaidDate,
		NextDueDate:  bill.Schedule.NextDueDate,
		CreatedAt:    bill.CreatedAt,
		UpdatedAt:    bill.UpdatedAt,
	}
}

func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
