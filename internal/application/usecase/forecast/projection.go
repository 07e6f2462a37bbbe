// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
	"github.com/finance-tracker/forecasting/internal/domain/valueobject"
)

// Assumptions are the baseline statistics a projection is run from.
type Assumptions struct {
	StartingBalance   decimal.Decimal
	AverageIncome     float64
	AverageExpenses   float64
	IncomeTrend       float64
	ExpenseTrend      float64
	IncomeVolatility  float64
	ExpenseVolatility float64
	BaseConfidence    float64
	Seasonality       SeasonalIndex
}

// Scaled returns a copy with average income and expenses multiplied by the given factors.
func (a Assumptions) Scaled(incomeFactor, expenseFactor float64) Assumptions {
	scaled := a
	scaled.AverageIncome = a.AverageIncome * incomeFactor
	scaled.AverageExpenses = a.AverageExpenses * expenseFactor
	return scaled
}

// RelativeVolatility returns combined volatility relative to combined flow,
// or 0 when there is no flow.
func (a Assumptions) RelativeVolatility() float64 {
	flow := a.AverageIncome + a.AverageExpenses
	if flow <= 0 {
		return 0
	}
	return (a.IncomeVolatility + a.ExpenseVolatility) / flow
}

// ToEntity converts the assumptions to their reported form.
func (a Assumptions) ToEntity() entity.ForecastAssumptions {
	return entity.ForecastAssumptions{
		AverageIncome:      roundTo(a.AverageIncome, 2),
		AverageExpenses:    roundTo(a.AverageExpenses, 2),
		IncomeTrend:        roundTo(a.IncomeTrend, 2),
		ExpenseTrend:       roundTo(a.ExpenseTrend, 2),
		IncomeVolatility:   roundTo(a.IncomeVolatility, 2),
		ExpenseVolatility:  roundTo(a.ExpenseVolatility, 2),
		SeasonalityApplied: a.Seasonality.Applied(),
	}
}

// Project runs the balance projection with the default configuration.
func Project(a Assumptions, anchor time.Time, horizonMonths int) []entity.MonthlyProjection {
	return project(a, anchor, horizonMonths, valueobject.DefaultProjectionConfig())
}

// project computes horizonMonths monthly projections starting the month after
// the anchor's month. Income and expenses follow average + trend x i, floored
// at zero and scaled by the seasonal factor of the projected month.
func project(a Assumptions, anchor time.Time, horizonMonths int, cfg valueobject.ProjectionConfig) []entity.MonthlyProjection {
	if horizonMonths < 0 {
		horizonMonths = 0
	}
	projections := make([]entity.MonthlyProjection, 0, horizonMonths)

	balance := a.StartingBalance
	relativeVolatility := a.RelativeVolatility()

	for i := 1; i <= horizonMonths; i++ {
		month := ProjectionMonth(anchor, i)
		factor := a.Seasonality.Factor(month.Month())
		step := float64(i)

		income := math.Max(0, a.AverageIncome+a.IncomeTrend*step) * factor
		expenses := math.Max(0, a.AverageExpenses+a.ExpenseTrend*step) * factor

		projectedIncome := decimal.NewFromFloat(income).Round(2)
		projectedExpenses := decimal.NewFromFloat(expenses).Round(2)
		netChange := projectedIncome.Sub(projectedExpenses)
		balance = balance.Add(netChange)

		projections = append(projections, entity.MonthlyProjection{
			Month:             PeriodKey(month),
			ProjectedIncome:   projectedIncome,
			ProjectedExpenses: projectedExpenses,
			NetChange:         netChange,
			EndingBalance:     balance,
			Confidence:        roundTo(cfg.MonthConfidence(a.BaseConfidence, relativeVolatility, i), 1),
		})
	}

	return projections
}
