package forecast

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
	"github.com/finance-tracker/forecasting/internal/domain/valueobject"
)

func TestRunScenarios(t *testing.T) {
	base := Assumptions{
		StartingBalance: decimal.NewFromInt(1000),
		AverageIncome:   2000,
		AverageExpenses: 1000,
	}
	defs := []valueobject.ScenarioDefinition{
		{Name: "flat", IncomeFactor: 1, ExpenseFactor: 1},
		{Name: "no income", IncomeFactor: 0, ExpenseFactor: 1},
	}

	results := RunScenarios(base, testAnchor, 2, defs)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].EndingBalance.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected flat ending balance 3000, got %s", results[0].EndingBalance)
	}
	if !results[1].EndingBalance.Equal(decimal.NewFromInt(-1000)) {
		t.Errorf("expected no-income ending balance -1000, got %s", results[1].EndingBalance)
	}

	t.Run("zero horizon keeps starting balance", func(t *testing.T) {
		results := RunScenarios(base, testAnchor, 0, defs)
		if !results[0].EndingBalance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected 1000, got %s", results[0].EndingBalance)
		}
	})
}

func TestValidateScenarios(t *testing.T) {
	tests := []struct {
		name    string
		defs    []valueobject.ScenarioDefinition
		wantErr bool
	}{
		{name: "defaults", defs: valueobject.DefaultScenarios()},
		{name: "duplicate name", defs: []valueobject.ScenarioDefinition{{Name: "a", IncomeFactor: 1, ExpenseFactor: 1}, {Name: "a", IncomeFactor: 2, ExpenseFactor: 1}}, wantErr: true},
		{name: "negative factor", defs: []valueobject.ScenarioDefinition{{Name: "a", IncomeFactor: -1, ExpenseFactor: 1}}, wantErr: true},
		{name: "missing name", defs: []valueobject.ScenarioDefinition{{IncomeFactor: 1, ExpenseFactor: 1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScenarios(tt.defs)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, domainerror.ErrInvalidScenario) {
				t.Errorf("expected ErrInvalidScenario, got %v", err)
			}
		})
	}
}

func TestRunScenariosUseCase_Execute(t *testing.T) {
	uc := NewRunScenariosUseCase(NewEngine())

	t.Run("uses default scenarios", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), RunScenariosInput{
			StartingBalance: decimal.NewFromInt(10000),
			AverageIncome:   5000,
			AverageExpenses: 3500,
			HorizonMonths:   1,
			AsOf:            testAnchor,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Scenarios) != 4 {
			t.Fatalf("expected 4 scenarios, got %d", len(output.Scenarios))
		}
		optimistic := output.Scenarios[2]
		// 5000 x 1.1 - 3500 x 0.95 = 2175
		if !optimistic.EndingBalance.Equal(decimal.NewFromInt(12175)) {
			t.Errorf("expected optimistic balance 12175, got %s", optimistic.EndingBalance)
		}
		if output.Confidence != 60 {
			t.Errorf("expected confidence 60, got %v", output.Confidence)
		}
	})

	t.Run("rejects negative averages", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), RunScenariosInput{
			AverageIncome: -1,
			HorizonMonths: 1,
			AsOf:          testAnchor,
		})
		var forecastErr *domainerror.ForecastError
		if !errors.As(err, &forecastErr) || forecastErr.Code != domainerror.ErrCodeInvalidForecastRequest {
			t.Errorf("expected invalid request error, got %v", err)
		}
	})
}
