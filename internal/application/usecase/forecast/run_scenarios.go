// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
	"github.com/finance-tracker/forecasting/internal/domain/valueobject"
)

// RunScenariosInput represents caller-supplied baseline assumptions for a what-if run.
// When Scenarios is empty the default scenarios are used.
type RunScenariosInput struct {
	StartingBalance   decimal.Decimal
	AverageIncome     float64
	AverageExpenses   float64
	IncomeTrend       float64
	ExpenseTrend      float64
	IncomeVolatility  float64
	ExpenseVolatility float64
	HorizonMonths     int
	AsOf              time.Time
	Scenarios         []valueobject.ScenarioDefinition
}

// RunScenariosOutput represents the output of a what-if run.
type RunScenariosOutput struct {
	Confidence float64
	Scenarios  []entity.ScenarioResult
}

// RunScenariosUseCase projects explicit assumptions under named scenarios.
type RunScenariosUseCase struct {
	engine *Engine
}

// NewRunScenariosUseCase creates a new RunScenariosUseCase instance.
func NewRunScenariosUseCase(engine *Engine) *RunScenariosUseCase {
	return &RunScenariosUseCase{
		engine: engine,
	}
}

// Execute validates the assumptions and runs every scenario.
func (uc *RunScenariosUseCase) Execute(_ context.Context, input RunScenariosInput) (*RunScenariosOutput, error) {
	if err := validateForecastParams(input.HorizonMonths, 1, input.AsOf); err != nil {
		return nil, err
	}
	if input.AverageIncome < 0 || input.AverageExpenses < 0 {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeInvalidForecastRequest,
			"average income and expenses must not be negative",
			domainerror.ErrNegativeAmount,
		)
	}

	definitions := input.Scenarios
	if len(definitions) == 0 {
		definitions = uc.engine.scenarios
	}
	if err := ValidateScenarios(definitions); err != nil {
		return nil, err
	}

	base := Assumptions{
		StartingBalance:   input.StartingBalance,
		AverageIncome:     input.AverageIncome,
		AverageExpenses:   input.AverageExpenses,
		IncomeTrend:       input.IncomeTrend,
		ExpenseTrend:      input.ExpenseTrend,
		IncomeVolatility:  input.IncomeVolatility,
		ExpenseVolatility: input.ExpenseVolatility,
		Seasonality:       NeutralSeasonalIndex(),
	}
	base.BaseConfidence = ScoreConfidence(0, 0, base.IncomeVolatility, base.AverageIncome)

	return &RunScenariosOutput{
		Confidence: roundTo(base.BaseConfidence, 1),
		Scenarios:  runScenarios(base, input.AsOf, input.HorizonMonths, definitions, uc.engine.projection),
	}, nil
}
