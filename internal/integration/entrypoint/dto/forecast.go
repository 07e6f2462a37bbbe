// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finance-tracker/forecasting/internal/application/usecase/forecast"
	"github.com/finance-tracker/forecasting/internal/application/usecase/recurring"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// RunScenariosRequest represents the request body for a what-if scenario run.
type RunScenariosRequest struct {
	StartingBalance   string               `json:"starting_balance" binding:"required"`
	AverageIncome     float64              `json:"average_income" binding:"gte=0"`
	AverageExpenses   float64              `json:"average_expenses" binding:"gte=0"`
	IncomeTrend       float64              `json:"income_trend"`
	ExpenseTrend      float64              `json:"expense_trend"`
	IncomeVolatility  float64              `json:"income_volatility" binding:"gte=0"`
	ExpenseVolatility float64              `json:"expense_volatility" binding:"gte=0"`
	HorizonMonths     int                  `json:"horizon_months" binding:"required"`
	AsOf              string               `json:"as_of,omitempty"`
	Scenarios         []ScenarioDefinition `json:"scenarios,omitempty" binding:"omitempty,dive"`
}

// ScenarioDefinition is a named pair of income and expense multipliers.
type ScenarioDefinition struct {
	Name          string  `json:"name" binding:"required"`
	IncomeFactor  float64 `json:"income_factor" binding:"gte=0"`
	ExpenseFactor float64 `json:"expense_factor" binding:"gte=0"`
}

// AssumptionsResponse represents the statistics a forecast was built from.
type AssumptionsResponse struct {
	AverageIncome      float64 `json:"average_income"`
	AverageExpenses    float64 `json:"average_expenses"`
	IncomeTrend        float64 `json:"income_trend"`
	ExpenseTrend       float64 `json:"expense_trend"`
	IncomeVolatility   float64 `json:"income_volatility"`
	ExpenseVolatility  float64 `json:"expense_volatility"`
	SeasonalityApplied bool    `json:"seasonality_applied"`
}

// MonthlyProjectionResponse represents one projected month.
type MonthlyProjectionResponse struct {
	Month             string  `json:"month"`
	ProjectedIncome   string  `json:"projected_income"`
	ProjectedExpenses string  `json:"projected_expenses"`
	NetChange         string  `json:"net_change"`
	EndingBalance     string  `json:"ending_balance"`
	Confidence        float64 `json:"confidence"`
}

// CategoryMonthResponse represents one projected month of category spend.
type CategoryMonthResponse struct {
	Month  string `json:"month"`
	Amount string `json:"amount"`
}

// CategoryForecastResponse represents the forecast of a single category.
type CategoryForecastResponse struct {
	CategoryID        string                  `json:"category_id"`
	CategoryName      string                  `json:"category_name"`
	AverageMonthly    string                  `json:"average_monthly"`
	Trend             float64                 `json:"trend"`
	Projections       []CategoryMonthResponse `json:"projections"`
	BudgetLimit       *string                 `json:"budget_limit,omitempty"`
	BudgetUtilization *float64                `json:"budget_utilization,omitempty"`
}

// ScenarioResponse represents the outcome of one scenario.
type ScenarioResponse struct {
	Name               string                      `json:"name"`
	IncomeFactor       float64                     `json:"income_factor"`
	ExpenseFactor      float64                     `json:"expense_factor"`
	EndingBalance      string                      `json:"ending_balance"`
	MonthlyProjections []MonthlyProjectionResponse `json:"monthly_projections"`
}

// ForecastResponse represents a full forecast.
type ForecastResponse struct {
	AccountID          *string                     `json:"account_id,omitempty"`
	AsOf               string                      `json:"as_of"`
	HorizonMonths      int                         `json:"horizon_months"`
	BasedOnMonths      int                         `json:"based_on_months"`
	CurrentBalance     string                      `json:"current_balance"`
	MonthsOfData       int                         `json:"months_of_data"`
	TransactionCount   int                         `json:"transaction_count"`
	Confidence         float64                     `json:"confidence"`
	Assumptions        AssumptionsResponse         `json:"assumptions"`
	MonthlyProjections []MonthlyProjectionResponse `json:"monthly_projections"`
	CategoryForecasts  []CategoryForecastResponse  `json:"category_forecasts"`
	Scenarios          []ScenarioResponse          `json:"scenarios"`
	Cached             bool                        `json:"cached"`
}

// AccountForecastResponse pairs an account with its forecast.
type AccountForecastResponse struct {
	AccountID   string           `json:"account_id"`
	AccountName string           `json:"account_name"`
	Forecast    ForecastResponse `json:"forecast"`
}

// AccountForecastListResponse represents the per-account forecasts.
type AccountForecastListResponse struct {
	Accounts []AccountForecastResponse `json:"accounts"`
}

// ScenarioRunResponse represents the result of a what-if scenario run.
type ScenarioRunResponse struct {
	Confidence float64            `json:"confidence"`
	Scenarios  []ScenarioResponse `json:"scenarios"`
}

// RecurringPatternResponse represents one detected recurring transaction.
type RecurringPatternResponse struct {
	Description         string                `json:"description"`
	Amount              string                `json:"amount"`
	Direction           string                `json:"direction"`
	Frequency           string                `json:"frequency"`
	Occurrences         []string              `json:"occurrences"`
	AverageIntervalDays float64               `json:"average_interval_days"`
	Confidence          float64               `json:"confidence"`
	SuggestedSchedule   *BillScheduleResponse `json:"suggested_schedule,omitempty"`
	NextExpectedDate    *string               `json:"next_expected_date,omitempty"`
}

// RecurringPatternListResponse represents the detected recurring transactions.
type RecurringPatternListResponse struct {
	Patterns         []RecurringPatternResponse `json:"patterns"`
	TransactionCount int                        `json:"transaction_count"`
	From             string                     `json:"from"`
	To               string                     `json:"to"`
}

// ToForecastResponse converts a forecast use case output to a ForecastResponse DTO.
func ToForecastResponse(output *forecast.GenerateForecastOutput) ForecastResponse {
	response := toForecastResponse(output.Forecast)
	response.Cached = output.Cached
	return response
}

func toForecastResponse(f *entity.ForecastResult) ForecastResponse {
	response := ForecastResponse{
		AsOf:             formatDate(f.AsOf),
		HorizonMonths:    f.HorizonMonths,
		BasedOnMonths:    f.BasedOnMonths,
		CurrentBalance:   money(f.CurrentBalance),
		MonthsOfData:     f.MonthsOfData,
		TransactionCount: f.TransactionCount,
		Confidence:       f.Confidence,
		Assumptions: AssumptionsResponse{
			AverageIncome:      f.Assumptions.AverageIncome,
			AverageExpenses:    f.Assumptions.AverageExpenses,
			IncomeTrend:        f.Assumptions.IncomeTrend,
			ExpenseTrend:       f.Assumptions.ExpenseTrend,
			IncomeVolatility:   f.Assumptions.IncomeVolatility,
			ExpenseVolatility:  f.Assumptions.ExpenseVolatility,
			SeasonalityApplied: f.Assumptions.SeasonalityApplied,
		},
		MonthlyProjections: toMonthlyProjectionResponses(f.MonthlyProjections),
		CategoryForecasts:  make([]CategoryForecastResponse, 0, len(f.CategoryForecasts)),
		Scenarios:          toScenarioResponses(f.Scenarios),
	}

	if f.AccountID != nil {
		id := f.AccountID.String()
		response.AccountID = &id
	}

	for _, cf := range f.CategoryForecasts {
		item := CategoryForecastResponse{
			CategoryID:        cf.CategoryID.String(),
			CategoryName:      cf.CategoryName,
			AverageMonthly:    money(cf.AverageMonthly),
			Trend:             cf.Trend,
			Projections:       make([]CategoryMonthResponse, len(cf.Projections)),
			BudgetUtilization: cf.BudgetUtilization,
		}
		for i, p := range cf.Projections {
			item.Projections[i] = CategoryMonthResponse{Month: p.Month, Amount: money(p.Amount)}
		}
		if cf.BudgetLimit != nil {
			limit := money(*cf.BudgetLimit)
			item.BudgetLimit = &limit
		}
		response.CategoryForecasts = append(response.CategoryForecasts, item)
	}

	return response
}

// ToAccountForecastListResponse converts per-account forecasts to a response DTO.
func ToAccountForecastListResponse(output *forecast.GenerateAccountForecastsOutput) AccountForecastListResponse {
	response := AccountForecastListResponse{
		Accounts: make([]AccountForecastResponse, len(output.Accounts)),
	}
	for i, af := range output.Accounts {
		response.Accounts[i] = AccountForecastResponse{
			AccountID:   af.Account.ID.String(),
			AccountName: af.Account.Name,
			Forecast:    toForecastResponse(af.Forecast),
		}
	}
	return response
}

// ToScenarioRunResponse converts a scenario run output to a response DTO.
func ToScenarioRunResponse(output *forecast.RunScenariosOutput) ScenarioRunResponse {
	return ScenarioRunResponse{
		Confidence: output.Confidence,
		Scenarios:  toScenarioResponses(output.Scenarios),
	}
}

// ToRecurringPatternListResponse converts detected patterns to a response DTO.
func ToRecurringPatternListResponse(output *recurring.DetectRecurringPatternsOutput) RecurringPatternListResponse {
	response := RecurringPatternListResponse{
		Patterns:         make([]RecurringPatternResponse, len(output.Patterns)),
		TransactionCount: output.TransactionCount,
		From:             formatDate(output.Window.Start),
		To:               formatDate(output.Window.End.AddDate(0, 0, -1)),
	}

	for i, p := range output.Patterns {
		item := RecurringPatternResponse{
			Description:         p.Description,
			Amount:              money(p.Amount),
			Direction:           string(p.Direction),
			Frequency:           string(p.Frequency),
			Occurrences:         make([]string, len(p.Occurrences)),
			AverageIntervalDays: roundFloat(p.AverageIntervalDays, 2),
			Confidence:          roundFloat(p.Confidence, 3),
		}
		for j, when := range p.Occurrences {
			item.Occurrences[j] = formatDate(when)
		}
		if p.SuggestedSchedule != nil {
			schedule := toBillScheduleResponse(*p.SuggestedSchedule)
			item.SuggestedSchedule = &schedule
		}
		if p.NextExpectedDate != nil {
			next := formatDate(*p.NextExpectedDate)
			item.NextExpectedDate = &next
		}
		response.Patterns[i] = item
	}

	return response
}

func toMonthlyProjectionResponses(projections []entity.MonthlyProjection) []MonthlyProjectionResponse {
	responses := make([]MonthlyProjectionResponse, len(projections))
	for i, p := range projections {
		responses[i] = MonthlyProjectionResponse{
			Month:             p.Month,
			ProjectedIncome:   money(p.ProjectedIncome),
			ProjectedExpenses: money(p.ProjectedExpenses),
			NetChange:         money(p.NetChange),
			EndingBalance:     money(p.EndingBalance),
			Confidence:        p.Confidence,
		}
	}
	return responses
}

func toScenarioResponses(scenarios []entity.ScenarioResult) []ScenarioResponse {
	responses := make([]ScenarioResponse, len(scenarios))
	for i, s := range scenarios {
		responses[i] = ScenarioResponse{
			Name:               s.Name,
			IncomeFactor:       s.IncomeFactor,
			ExpenseFactor:      s.ExpenseFactor,
			EndingBalance:      money(s.EndingBalance),
			MonthlyProjections: toMonthlyProjectionResponses(s.MonthlyProjections),
		}
	}
	return responses
}
