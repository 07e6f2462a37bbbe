// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoalPeriod represents the period type for a spending goal.
type GoalPeriod string

const (
	GoalPeriodMonthly GoalPeriod = "monthly"
	GoalPeriodWeekly  GoalPeriod = "weekly"
	GoalPeriodYearly  GoalPeriod = "yearly"
)

// Goal represents a spending limit for a category. Forecasts compare
// projected category spend against it.
type Goal struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	LimitAmount float64
	Period      GoalPeriod
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// MonthlyLimit normalizes the goal limit to a per-month amount.
func (g Goal) MonthlyLimit() float64 {
	switch g.Period {
	case GoalPeriodWeekly:
		return g.LimitAmount * 52 / 12
	case GoalPeriodYearly:
		return g.LimitAmount / 12
	default:
		return g.LimitAmount
	}
}
