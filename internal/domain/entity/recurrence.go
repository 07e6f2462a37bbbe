// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceFrequency is the cadence assigned to a group of repeated transactions.
type RecurrenceFrequency string

const (
	RecurrenceWeekly  RecurrenceFrequency = "weekly"
	RecurrenceMonthly RecurrenceFrequency = "monthly"
	RecurrenceNone    RecurrenceFrequency = "none"
)

// RecurrencePattern is a cluster of transactions sharing a description and
// amount that repeat at a regular interval.
type RecurrencePattern struct {
	Description         string
	Amount              decimal.Decimal
	Direction           Direction
	Frequency           RecurrenceFrequency
	Occurrences         []time.Time
	AverageIntervalDays float64
	Confidence          float64
	SuggestedSchedule   *BillSchedule
	NextExpectedDate    *time.Time
}

// NewRecurrencePattern builds a pattern, keeping confidence within [0, 1].
func NewRecurrencePattern(
	description string,
	amount decimal.Decimal,
	direction Direction,
	frequency RecurrenceFrequency,
	occurrences []time.Time,
	averageIntervalDays float64,
	confidence float64,
) RecurrencePattern {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return RecurrencePattern{
		Description:         description,
		Amount:              amount,
		Direction:           direction,
		Frequency:           frequency,
		Occurrences:         occurrences,
		AverageIntervalDays: averageIntervalDays,
		Confidence:          confidence,
	}
}

// Fingerprint returns the grouping key of the pattern.
func (p RecurrencePattern) Fingerprint() string {
	return Fingerprint(p.Description, p.Amount)
}

// Fingerprint builds the recurrence grouping key from an exact description
// and amount. Amounts are compared by value, so 100.00 and 100 match.
func Fingerprint(description string, amount decimal.Decimal) string {
	return description + "|" + amount.String()
}
