// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction represents whether money flows into or out of an account.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// IsValid reports whether the direction is a known value.
func (d Direction) IsValid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// TransactionRecord is a read-only historical transaction used as forecast input.
// Amount is always a non-negative magnitude; Direction carries the sign.
type TransactionRecord struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Date        time.Time
	Description string
	Vendor      *string
	Amount      decimal.Decimal
	Direction   Direction
}

// IsCredit reports whether the transaction is an inflow.
func (t TransactionRecord) IsCredit() bool {
	return t.Direction == DirectionCredit
}

// DateWindow is a half-open [Start, End) time range.
// A zero Start or End leaves that side unbounded.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w DateWindow) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && !t.Before(w.End) {
		return false
	}
	return true
}
