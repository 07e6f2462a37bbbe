// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillFrequency represents how often a bill is due.
type BillFrequency string

const (
	BillFrequencyWeekly    BillFrequency = "weekly"
	BillFrequencyMonthly   BillFrequency = "monthly"
	BillFrequencyQuarterly BillFrequency = "quarterly"
	BillFrequencyYearly    BillFrequency = "yearly"
)

// IsValid reports whether the frequency is a known value.
func (f BillFrequency) IsValid() bool {
	switch f {
	case BillFrequencyWeekly, BillFrequencyMonthly, BillFrequencyQuarterly, BillFrequencyYearly:
		return true
	}
	return false
}

// BillSchedule describes when a bill falls due.
// DueDay is a day-of-month (1-31) except for weekly bills, where it is an
// ISO weekday (1 = Monday ... 7 = Sunday). DueMonth is only used by yearly bills.
type BillSchedule struct {
	Frequency    BillFrequency
	DueDay       int
	DueMonth     *int
	LastPaidDate *time.Time
	NextDueDate  *time.Time
}

// Bill is a recurring obligation tracked by the user.
type Bill struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Amount     decimal.Decimal
	CategoryID *uuid.UUID
	Schedule   BillSchedule
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
