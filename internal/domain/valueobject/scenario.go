// Package valueobject contains domain value objects for the forecasting service.
package valueobject

// Scenario names.
const (
	ScenarioBase         = "base"
	ScenarioConservative = "conservative"
	ScenarioOptimistic   = "optimistic"
	ScenarioRecession    = "recession"
)

// ScenarioDefinition is a named pair of multiplicative adjustments applied to
// baseline income and expense assumptions.
type ScenarioDefinition struct {
	Name          string
	IncomeFactor  float64
	ExpenseFactor float64
}

// DefaultScenarios returns the predefined scenarios in presentation order.
func DefaultScenarios() []ScenarioDefinition {
	return []ScenarioDefinition{
		{Name: ScenarioBase, IncomeFactor: 1.0, ExpenseFactor: 1.0},
		{Name: ScenarioConservative, IncomeFactor: 0.8, ExpenseFactor: 1.1},
		{Name: ScenarioOptimistic, IncomeFactor: 1.1, ExpenseFactor: 0.95},
		{Name: ScenarioRecession, IncomeFactor: 0.7, ExpenseFactor: 1.2},
	}
}

// IsValid reports whether the factors are usable.
func (d ScenarioDefinition) IsValid() bool {
	return d.Name != "" && d.IncomeFactor >= 0 && d.ExpenseFactor >= 0
}
