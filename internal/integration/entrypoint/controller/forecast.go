// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/forecasting/internal/application/usecase/forecast"
	"github.com/finance-tracker/forecasting/internal/application/usecase/recurring"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
	"github.com/finance-tracker/forecasting/internal/domain/valueobject"
	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/middleware"
)

// ForecastDefaults holds the values used when query parameters are omitted.
type ForecastDefaults struct {
	HorizonMonths int
	BasedOnMonths int
}

// ForecastController handles forecast endpoints.
type ForecastController struct {
	generateUseCase        *forecast.GenerateForecastUseCase
	accountForecastUseCase *forecast.GenerateAccountForecastsUseCase
	scenariosUseCase       *forecast.RunScenariosUseCase
	recurringUseCase       *recurring.DetectRecurringPatternsUseCase
	defaults               ForecastDefaults
	now                    func() time.Time
}

// NewForecastController creates a new forecast controller instance.
func NewForecastController(
	generateUseCase *forecast.GenerateForecastUseCase,
	accountForecastUseCase *forecast.GenerateAccountForecastsUseCase,
	scenariosUseCase *forecast.RunScenariosUseCase,
	recurringUseCase *recurring.DetectRecurringPatternsUseCase,
	defaults ForecastDefaults,
	now func() time.Time,
) *ForecastController {
	if now == nil {
		now = time.Now
	}
	return &ForecastController{
		generateUseCase:        generateUseCase,
		accountForecastUseCase: accountForecastUseCase,
		scenariosUseCase:       scenariosUseCase,
		recurringUseCase:       recurringUseCase,
		defaults:               defaults,
		now:                    now,
	}
}

// Get handles GET /forecast requests.
func (c *ForecastController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	horizon, basedOn, asOf, ok := c.parseForecastQuery(ctx)
	if !ok {
		return
	}

	input := forecast.GenerateForecastInput{
		UserID:        userID,
		HorizonMonths: horizon,
		BasedOnMonths: basedOn,
		AsOf:          asOf,
	}

	if accountIDStr := ctx.Query("account_id"); accountIDStr != "" {
		accountID, err := uuid.Parse(accountIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid account ID format",
				Code:  string(domainerror.ErrCodeInvalidForecastRequest),
			})
			return
		}
		input.AccountID = &accountID
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToForecastResponse(output))
}

// ListAccounts handles GET /forecast/accounts requests.
func (c *ForecastController) ListAccounts(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	horizon, basedOn, asOf, ok := c.parseForecastQuery(ctx)
	if !ok {
		return
	}

	output, err := c.accountForecastUseCase.Execute(ctx.Request.Context(), forecast.GenerateAccountForecastsInput{
		UserID:        userID,
		HorizonMonths: horizon,
		BasedOnMonths: basedOn,
		AsOf:          asOf,
	})
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountForecastListResponse(output))
}

// RunScenarios handles POST /forecast/scenarios requests.
func (c *ForecastController) RunScenarios(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.RunScenariosRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidForecastRequest),
		})
		return
	}

	startingBalance, err := decimal.NewFromString(req.StartingBalance)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid starting_balance, expected a decimal amount",
			Code:  string(domainerror.ErrCodeInvalidForecastRequest),
		})
		return
	}

	asOf, ok := c.parseAsOf(ctx, req.AsOf)
	if !ok {
		return
	}

	input := forecast.RunScenariosInput{
		StartingBalance:   startingBalance,
		AverageIncome:     req.AverageIncome,
		AverageExpenses:   req.AverageExpenses,
		IncomeTrend:       req.IncomeTrend,
		ExpenseTrend:      req.ExpenseTrend,
		IncomeVolatility:  req.IncomeVolatility,
		ExpenseVolatility: req.ExpenseVolatility,
		HorizonMonths:     req.HorizonMonths,
		AsOf:              asOf,
	}
	for _, s := range req.Scenarios {
		input.Scenarios = append(input.Scenarios, valueobject.ScenarioDefinition{
			Name:          s.Name,
			IncomeFactor:  s.IncomeFactor,
			ExpenseFactor: s.ExpenseFactor,
		})
	}

	output, err := c.scenariosUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScenarioRunResponse(output))
}

// Recurring handles GET /forecast/recurring requests.
func (c *ForecastController) Recurring(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	months := recurring.DefaultLookbackMonths
	if monthsStr := ctx.Query("months"); monthsStr != "" {
		parsed, err := strconv.Atoi(monthsStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "months must be an integer",
				Code:  string(domainerror.ErrCodeInvalidBasedOnMonths),
			})
			return
		}
		months = parsed
	}

	asOf, ok := c.parseAsOf(ctx, ctx.Query("as_of"))
	if !ok {
		return
	}

	output, err := c.recurringUseCase.Execute(ctx.Request.Context(), recurring.DetectRecurringPatternsInput{
		UserID: userID,
		Months: months,
		AsOf:   asOf,
	})
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringPatternListResponse(output))
}

// parseForecastQuery reads horizon, based_on and as_of, writing a 400 response on failure.
func (c *ForecastController) parseForecastQuery(ctx *gin.Context) (int, int, time.Time, bool) {
	horizon, ok := parseIntQuery(ctx, "horizon", c.defaults.HorizonMonths, domainerror.ErrCodeInvalidHorizon)
	if !ok {
		return 0, 0, time.Time{}, false
	}

	basedOn, ok := parseIntQuery(ctx, "based_on", c.defaults.BasedOnMonths, domainerror.ErrCodeInvalidBasedOnMonths)
	if !ok {
		return 0, 0, time.Time{}, false
	}

	asOf, ok := c.parseAsOf(ctx, ctx.Query("as_of"))
	if !ok {
		return 0, 0, time.Time{}, false
	}

	return horizon, basedOn, asOf, true
}

// parseAsOf parses a YYYY-MM-DD date, defaulting to the current UTC date.
func (c *ForecastController) parseAsOf(ctx *gin.Context, value string) (time.Time, bool) {
	asOf, err := parseDateOrToday(value, c.now)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid as_of format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidAsOfDate),
		})
		return time.Time{}, false
	}
	return asOf, true
}

// handleForecastError handles forecast errors and returns appropriate HTTP responses.
func (c *ForecastController) handleForecastError(ctx *gin.Context, err error) {
	var forecastErr *domainerror.ForecastError
	if errors.As(err, &forecastErr) {
		statusCode := c.getStatusCodeForForecastError(forecastErr.Code)
		if statusCode == http.StatusInternalServerError {
			slog.Error("Forecast request failed", "code", forecastErr.Code, "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: forecastErr.Message,
			Code:  string(forecastErr.Code),
		})
		return
	}

	slog.Error("Forecast request failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeForecastInternalError),
	})
}

// getStatusCodeForForecastError maps forecast error codes to HTTP status codes.
func (c *ForecastController) getStatusCodeForForecastError(code domainerror.ForecastErrorCode) int {
	switch {
	case strings.HasPrefix(string(code), "FCT-01"):
		return http.StatusBadRequest
	case strings.HasPrefix(string(code), "FCT-02"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// parseIntQuery reads an integer query parameter, writing a 400 response when it is malformed.
func parseIntQuery[C ~string](ctx *gin.Context, name string, defaultValue int, code C) (int, bool) {
	value := ctx.Query(name)
	if value == "" {
		return defaultValue, true
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: name + " must be an integer",
			Code:  string(code),
		})
		return 0, false
	}
	return parsed, true
}

func parseDateOrToday(value string, now func() time.Time) (time.Time, error) {
	if value == "" {
		t := now().UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dto.DateLayout, value)
}
