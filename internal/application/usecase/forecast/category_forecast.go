// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// CategoryLookup resolves category IDs to display names.
type CategoryLookup interface {
	CategoryName(id uuid.UUID) (string, bool)
}

// CategoryNames is a pre-resolved CategoryLookup.
type CategoryNames map[uuid.UUID]string

// NewCategoryNames indexes the given categories by ID. Soft-deleted categories are left out.
func NewCategoryNames(categories []entity.Category) CategoryNames {
	names := make(CategoryNames, len(categories))
	for _, c := range categories {
		if c.DeletedAt != nil {
			continue
		}
		names[c.ID] = c.Name
	}
	return names
}

// CategoryName implements CategoryLookup.
func (n CategoryNames) CategoryName(id uuid.UUID) (string, bool) {
	name, ok := n[id]
	return name, ok && name != ""
}

// forecastCategory projects one category series forward. It reports false
// when the category cannot be resolved to a name.
func forecastCategory(
	series CategorySeries,
	lookup CategoryLookup,
	monthlyLimits map[uuid.UUID]float64,
	anchor time.Time,
	horizonMonths int,
) (entity.CategoryForecast, bool) {
	name, ok := lookup.CategoryName(series.CategoryID)
	if !ok {
		return entity.CategoryForecast{}, false
	}

	avg := mean(series.Values)
	trend := EstimateTrendAt(series.Positions, series.Values)

	projections := make([]entity.CategoryMonthProjection, 0, horizonMonths)
	var projectedTotal float64
	for i := 1; i <= horizonMonths; i++ {
		amount := math.Max(0, avg+trend*float64(i))
		projectedTotal += amount
		projections = append(projections, entity.CategoryMonthProjection{
			Month:  PeriodKey(ProjectionMonth(anchor, i)),
			Amount: decimal.NewFromFloat(amount).Round(2),
		})
	}

	forecast := entity.CategoryForecast{
		CategoryID:     series.CategoryID,
		CategoryName:   name,
		AverageMonthly: decimal.NewFromFloat(avg).Round(2),
		Trend:          roundTo(trend, 2),
		Projections:    projections,
	}

	if limit, ok := monthlyLimits[series.CategoryID]; ok && limit > 0 {
		budget := decimal.NewFromFloat(limit).Round(2)
		forecast.BudgetLimit = &budget
		if horizonMonths > 0 {
			utilization := roundTo(projectedTotal/float64(horizonMonths)/limit, 4)
			forecast.BudgetUtilization = &utilization
		}
	}

	return forecast, true
}

// forecastCategories projects every category series, dropping categories
// that cannot be resolved.
func forecastCategories(
	series []CategorySeries,
	lookup CategoryLookup,
	goals []entity.Goal,
	anchor time.Time,
	horizonMonths int,
) []entity.CategoryForecast {
	monthlyLimits := make(map[uuid.UUID]float64, len(goals))
	for _, g := range goals {
		if g.DeletedAt != nil {
			continue
		}
		monthlyLimits[g.CategoryID] += g.MonthlyLimit()
	}

	forecasts := make([]entity.CategoryForecast, 0, len(series))
	for _, s := range series {
		forecast, ok := forecastCategory(s, lookup, monthlyLimits, anchor, horizonMonths)
		if !ok {
			slog.Warn("Skipping category forecast, category not found",
				"category_id", s.CategoryID,
			)
			continue
		}
		forecasts = append(forecasts, forecast)
	}

	return forecasts
}
