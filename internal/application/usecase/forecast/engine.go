// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
	"github.com/finance-tracker/forecasting/internal/domain/valueobject"
)

// Request describes a single forecast run over a snapshot.
// A nil AccountID forecasts all accounts combined.
type Request struct {
	AccountID     *uuid.UUID
	AsOf          time.Time
	HorizonMonths int
	BasedOnMonths int
}

// Engine turns a data snapshot into a ForecastResult. It holds no mutable
// state, so a single Engine can serve concurrent forecasts.
type Engine struct {
	projection valueobject.ProjectionConfig
	scenarios  []valueobject.ScenarioDefinition
}

// NewEngine creates an engine with the default projection config and scenarios.
func NewEngine() *Engine {
	return NewEngineWithConfig(valueobject.DefaultProjectionConfig(), valueobject.DefaultScenarios())
}

// NewEngineWithConfig creates an engine with custom settings.
func NewEngineWithConfig(projection valueobject.ProjectionConfig, scenarios []valueobject.ScenarioDefinition) *Engine {
	return &Engine{
		projection: projection,
		scenarios:  scenarios,
	}
}

// Forecast runs the full pipeline: aggregation, trend, volatility,
// seasonality, confidence, projection, scenarios and category forecasts.
func (e *Engine) Forecast(ctx context.Context, snapshot *entity.ForecastSnapshot, req Request) (*entity.ForecastResult, error) {
	balance, transactions, err := scopeSnapshot(snapshot, req.AccountID)
	if err != nil {
		return nil, err
	}

	window := HistoryWindow(req.AsOf, req.BasedOnMonths)
	periods, err := Aggregate(ctx, transactions, window)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	assumptions, transactionCount := BuildAssumptions(periods, balance)

	result := &entity.ForecastResult{
		AccountID:          req.AccountID,
		AsOf:               req.AsOf,
		HorizonMonths:      req.HorizonMonths,
		BasedOnMonths:      req.BasedOnMonths,
		CurrentBalance:     balance,
		MonthsOfData:       len(periods),
		TransactionCount:   transactionCount,
		Assumptions:        assumptions.ToEntity(),
		MonthlyProjections: project(assumptions, req.AsOf, req.HorizonMonths, e.projection),
		Confidence:         roundTo(assumptions.BaseConfidence, 1),
		Scenarios:          runScenarios(assumptions, req.AsOf, req.HorizonMonths, e.scenarios, e.projection),
	}

	series := AggregateByCategory(periods, transactions, window)
	result.CategoryForecasts = forecastCategories(
		series,
		NewCategoryNames(snapshot.Categories),
		snapshot.Goals,
		req.AsOf,
		req.HorizonMonths,
	)

	return result, nil
}

// BuildAssumptions derives the projection baseline from monthly aggregates.
// Averages and volatility cover observed months only. Trends are fitted
// against calendar month positions, so gaps keep their true spacing.
// It also returns the number of transactions the aggregates cover.
func BuildAssumptions(periods []entity.PeriodAggregate, startingBalance decimal.Decimal) (Assumptions, int) {
	incomes := make([]float64, len(periods))
	expenses := make([]float64, len(periods))
	positions := monthPositions(periods)
	transactionCount := 0
	for i, p := range periods {
		incomes[i] = p.Income.InexactFloat64()
		expenses[i] = p.Expenses.InexactFloat64()
		transactionCount += p.TransactionCount
	}

	seasonality := NeutralSeasonalIndex()
	if len(periods) >= MinSeasonalityMonths {
		seasonality = ComputeSeasonality(periods)
	}

	a := Assumptions{
		StartingBalance:   startingBalance,
		AverageIncome:     mean(incomes),
		AverageExpenses:   mean(expenses),
		IncomeTrend:       EstimateTrendAt(positions, incomes),
		ExpenseTrend:      EstimateTrendAt(positions, expenses),
		IncomeVolatility:  EstimateVolatility(incomes),
		ExpenseVolatility: EstimateVolatility(expenses),
		Seasonality:       seasonality,
	}
	a.BaseConfidence = ScoreConfidence(len(periods), transactionCount, a.IncomeVolatility, a.AverageIncome)

	return a, transactionCount
}

// monthPositions places each period on a calendar month axis starting at 1
// for the earliest period.
func monthPositions(periods []entity.PeriodAggregate) []float64 {
	positions := make([]float64, len(periods))
	if len(periods) == 0 {
		return positions
	}
	first := periods[0].Year*12 + int(periods[0].Month)
	for i, p := range periods {
		positions[i] = float64(p.Year*12+int(p.Month)-first) + 1
	}
	return positions
}

// scopeSnapshot returns the starting balance and transactions for the
// requested account, or for all accounts combined when accountID is nil.
func scopeSnapshot(snapshot *entity.ForecastSnapshot, accountID *uuid.UUID) (decimal.Decimal, []entity.TransactionRecord, error) {
	if accountID == nil {
		total := decimal.Zero
		for _, a := range snapshot.Accounts {
			total = total.Add(a.Balance)
		}
		return total, snapshot.Transactions, nil
	}

	account, ok := snapshot.FindAccount(*accountID)
	if !ok {
		return decimal.Zero, nil, domainerror.NewForecastError(
			domainerror.ErrCodeAccountNotFound,
			fmt.Sprintf("account %s not found", accountID),
			domainerror.ErrAccountNotFound,
		)
	}

	transactions := make([]entity.TransactionRecord, 0, len(snapshot.Transactions))
	for _, txn := range snapshot.Transactions {
		if txn.AccountID == account.ID {
			transactions = append(transactions, txn)
		}
	}

	return account.Balance, transactions, nil
}
