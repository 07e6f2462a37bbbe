// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodAggregate holds the inflow and outflow totals of one calendar month.
type PeriodAggregate struct {
	PeriodKey        string // YYYY-MM
	Year             int
	Month            time.Month
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	TransactionCount int
}

// ForecastAssumptions are the statistics a projection is built from.
type ForecastAssumptions struct {
	AverageIncome      float64
	AverageExpenses    float64
	IncomeTrend        float64
	ExpenseTrend       float64
	IncomeVolatility   float64
	ExpenseVolatility  float64
	SeasonalityApplied bool
}

// MonthlyProjection is the projected cash flow of a single future month.
type MonthlyProjection struct {
	Month             string // YYYY-MM
	ProjectedIncome   decimal.Decimal
	ProjectedExpenses decimal.Decimal
	NetChange         decimal.Decimal
	EndingBalance     decimal.Decimal
	Confidence        float64
}

// CategoryMonthProjection is the projected spend of a category in one month.
type CategoryMonthProjection struct {
	Month  string
	Amount decimal.Decimal
}

// CategoryForecast projects spending for a single category.
// BudgetLimit and BudgetUtilization are set only when a goal exists for the category.
type CategoryForecast struct {
	CategoryID        uuid.UUID
	CategoryName      string
	AverageMonthly    decimal.Decimal
	Trend             float64
	Projections       []CategoryMonthProjection
	BudgetLimit       *decimal.Decimal
	BudgetUtilization *float64
}

// ScenarioResult is the projection produced under one named scenario.
type ScenarioResult struct {
	Name               string
	IncomeFactor       float64
	ExpenseFactor      float64
	MonthlyProjections []MonthlyProjection
	EndingBalance      decimal.Decimal
}

// ForecastResult is the full output of a forecast invocation.
type ForecastResult struct {
	AccountID          *uuid.UUID
	AsOf               time.Time
	HorizonMonths      int
	BasedOnMonths      int
	CurrentBalance     decimal.Decimal
	MonthsOfData       int
	TransactionCount   int
	Assumptions        ForecastAssumptions
	MonthlyProjections []MonthlyProjection
	CategoryForecasts  []CategoryForecast
	Confidence         float64
	Scenarios          []ScenarioResult
}

// ForecastSnapshot is the read-only data a forecast is computed from.
// It is fetched once per request and never re-queried.
type ForecastSnapshot struct {
	UserID       uuid.UUID
	Window       DateWindow
	Accounts     []Account
	Transactions []TransactionRecord
	Categories   []Category
	Goals        []Goal
}

// FindAccount returns the account with the given ID, if present.
func (s *ForecastSnapshot) FindAccount(id uuid.UUID) (*Account, bool) {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return &s.Accounts[i], true
		}
	}
	return nil, false
}
