// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import (
	"fmt"
	"time"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
	"github.com/finance-tracker/forecasting/internal/domain/valueobject"
)

// RunScenarios projects the base assumptions once per scenario definition,
// scaling average income and expenses by the scenario factors. Results keep
// the order of definitions.
func RunScenarios(base Assumptions, anchor time.Time, horizonMonths int, definitions []valueobject.ScenarioDefinition) []entity.ScenarioResult {
	return runScenarios(base, anchor, horizonMonths, definitions, valueobject.DefaultProjectionConfig())
}

func runScenarios(base Assumptions, anchor time.Time, horizonMonths int, definitions []valueobject.ScenarioDefinition, cfg valueobject.ProjectionConfig) []entity.ScenarioResult {
	results := make([]entity.ScenarioResult, 0, len(definitions))

	for _, def := range definitions {
		projections := project(base.Scaled(def.IncomeFactor, def.ExpenseFactor), anchor, horizonMonths, cfg)

		ending := base.StartingBalance
		if len(projections) > 0 {
			ending = projections[len(projections)-1].EndingBalance
		}

		results = append(results, entity.ScenarioResult{
			Name:               def.Name,
			IncomeFactor:       def.IncomeFactor,
			ExpenseFactor:      def.ExpenseFactor,
			MonthlyProjections: projections,
			EndingBalance:      ending,
		})
	}

	return results
}

// ValidateScenarios checks that every definition is usable and names are unique.
func ValidateScenarios(definitions []valueobject.ScenarioDefinition) error {
	seen := make(map[string]bool, len(definitions))
	for _, def := range definitions {
		if !def.IsValid() || seen[def.Name] {
			return domainerror.NewForecastError(
				domainerror.ErrCodeInvalidScenario,
				fmt.Sprintf("invalid scenario %q", def.Name),
				domainerror.ErrInvalidScenario,
			)
		}
		seen[def.Name] = true
	}
	return nil
}
