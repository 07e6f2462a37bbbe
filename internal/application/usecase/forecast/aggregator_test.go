package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
)

func txn(date time.Time, amount string, direction entity.Direction) entity.TransactionRecord {
	return entity.TransactionRecord{
		ID:          uuid.New(),
		AccountID:   uuid.New(),
		Date:        date,
		Description: "test",
		Amount:      decimal.RequireFromString(amount),
		Direction:   direction,
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()
	window := entity.DateWindow{Start: day(2024, time.January, 1), End: day(2024, time.April, 1)}

	t.Run("groups by month and direction", func(t *testing.T) {
		transactions := []entity.TransactionRecord{
			txn(day(2024, time.March, 3), "100.50", entity.DirectionDebit),
			txn(day(2024, time.January, 5), "5000", entity.DirectionCredit),
			txn(day(2024, time.January, 20), "1200", entity.DirectionDebit),
			txn(day(2024, time.January, 25), "300", entity.DirectionDebit),
			txn(day(2024, time.March, 1), "5000", entity.DirectionCredit),
		}

		periods, err := Aggregate(ctx, transactions, window)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(periods) != 2 {
			t.Fatalf("expected 2 periods, got %d", len(periods))
		}

		if periods[0].PeriodKey != "2024-01" || periods[1].PeriodKey != "2024-03" {
			t.Errorf("expected periods sorted ascending, got %s, %s", periods[0].PeriodKey, periods[1].PeriodKey)
		}
		if !periods[0].Income.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected january income 5000, got %s", periods[0].Income)
		}
		if !periods[0].Expenses.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected january expenses 1500, got %s", periods[0].Expenses)
		}
		if periods[0].TransactionCount != 3 {
			t.Errorf("expected 3 january transactions, got %d", periods[0].TransactionCount)
		}
		if !periods[1].Expenses.Equal(decimal.RequireFromString("100.50")) {
			t.Errorf("expected march expenses 100.50, got %s", periods[1].Expenses)
		}
	})

	t.Run("excludes transactions outside the window", func(t *testing.T) {
		transactions := []entity.TransactionRecord{
			txn(day(2023, time.December, 31), "10", entity.DirectionDebit),
			txn(day(2024, time.April, 1), "10", entity.DirectionDebit),
			txn(day(2024, time.February, 10), "10", entity.DirectionDebit),
		}

		periods, err := Aggregate(ctx, transactions, window)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(periods) != 1 || periods[0].PeriodKey != "2024-02" {
			t.Errorf("expected only 2024-02, got %+v", periods)
		}
	})

	t.Run("empty input yields no periods", func(t *testing.T) {
		periods, err := Aggregate(ctx, nil, window)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(periods) != 0 {
			t.Errorf("expected no periods, got %d", len(periods))
		}
	})

	t.Run("rejects invalid records", func(t *testing.T) {
		badDirection := txn(day(2024, time.January, 2), "10", entity.Direction("transfer"))
		noDate := txn(time.Time{}, "10", entity.DirectionDebit)

		tests := []struct {
			name     string
			record   entity.TransactionRecord
			code     domainerror.ForecastErrorCode
			sentinel error
		}{
			{name: "negative amount", record: txn(day(2024, time.January, 2), "-5", entity.DirectionDebit), code: domainerror.ErrCodeNegativeAmount, sentinel: domainerror.ErrNegativeAmount},
			{name: "unknown direction", record: badDirection, code: domainerror.ErrCodeInvalidDirection, sentinel: domainerror.ErrInvalidDirection},
			{name: "missing date", record: noDate, code: domainerror.ErrCodeMissingTransactionDate, sentinel: domainerror.ErrMissingTransactionDate},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Aggregate(ctx, []entity.TransactionRecord{tt.record}, window)
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var forecastErr *domainerror.ForecastError
				if !errors.As(err, &forecastErr) {
					t.Fatalf("expected ForecastError, got %T", err)
				}
				if forecastErr.Code != tt.code {
					t.Errorf("expected code %s, got %s", tt.code, forecastErr.Code)
				}
				if !errors.Is(err, tt.sentinel) {
					t.Errorf("expected error to wrap %v", tt.sentinel)
				}
			})
		}
	})

	t.Run("honors cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		transactions := []entity.TransactionRecord{txn(day(2024, time.January, 2), "10", entity.DirectionDebit)}
		_, err := Aggregate(cancelled, transactions, window)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestAggregateByCategory(t *testing.T) {
	ctx := context.Background()
	window := entity.DateWindow{Start: day(2024, time.January, 1), End: day(2024, time.April, 1)}
	groceries := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	rent := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	withCategory := func(r entity.TransactionRecord, id uuid.UUID) entity.TransactionRecord {
		r.CategoryID = &id
		return r
	}

	transactions := []entity.TransactionRecord{
		withCategory(txn(day(2024, time.January, 3), "1000", entity.DirectionDebit), rent),
		withCategory(txn(day(2024, time.February, 3), "1000", entity.DirectionDebit), rent),
		withCategory(txn(day(2024, time.March, 3), "1000", entity.DirectionDebit), rent),
		withCategory(txn(day(2024, time.February, 9), "250", entity.DirectionDebit), groceries),
		withCategory(txn(day(2024, time.February, 19), "50", entity.DirectionDebit), groceries),
		withCategory(txn(day(2024, time.March, 1), "5000", entity.DirectionCredit), groceries),
		txn(day(2024, time.January, 7), "80", entity.DirectionDebit),
	}

	periods, err := Aggregate(ctx, transactions, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	series := AggregateByCategory(periods, transactions, window)
	if len(series) != 2 {
		t.Fatalf("expected 2 category series, got %d", len(series))
	}

	if series[0].CategoryID != groceries {
		t.Errorf("expected groceries first, got %s", series[0].CategoryID)
	}
	expectedGroceries := []float64{0, 300, 0}
	for i, v := range expectedGroceries {
		if series[0].Values[i] != v {
			t.Errorf("groceries[%d]: expected %v, got %v", i, v, series[0].Values[i])
		}
	}
	for i, v := range series[1].Values {
		if v != 1000 {
			t.Errorf("rent[%d]: expected 1000, got %v", i, v)
		}
	}
	for i, want := range []float64{1, 2, 3} {
		if series[1].Positions[i] != want {
			t.Errorf("rent position %d: expected %v, got %v", i, want, series[1].Positions[i])
		}
	}

	t.Run("positions skip unobserved months", func(t *testing.T) {
		sparse := []entity.TransactionRecord{
			withCategory(txn(day(2024, time.January, 3), "100", entity.DirectionDebit), rent),
			withCategory(txn(day(2024, time.March, 3), "300", entity.DirectionDebit), rent),
		}
		sparsePeriods, err := Aggregate(ctx, sparse, window)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := AggregateByCategory(sparsePeriods, sparse, window)
		if len(got) != 1 || len(got[0].Positions) != 2 {
			t.Fatalf("expected one series with two points, got %+v", got)
		}
		if got[0].Positions[0] != 1 || got[0].Positions[1] != 3 {
			t.Errorf("expected positions [1 3], got %v", got[0].Positions)
		}
		if trend := EstimateTrendAt(got[0].Positions, got[0].Values); trend != 100 {
			t.Errorf("expected trend 100 per month, got %v", trend)
		}
	})

	if got := AggregateByCategory(nil, transactions, window); got != nil {
		t.Errorf("expected nil series without periods, got %v", got)
	}
}
