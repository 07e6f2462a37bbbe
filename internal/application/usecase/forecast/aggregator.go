// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
)

// cancellationCheckInterval is how many records are processed between context checks.
const cancellationCheckInterval = 256

// Aggregate groups transactions into per-month income and expense totals.
// Only months with at least one transaction inside the window are returned,
// sorted ascending by period key. Records with a negative amount, an unknown
// direction or no date fail the whole aggregation.
func Aggregate(ctx context.Context, transactions []entity.TransactionRecord, window entity.DateWindow) ([]entity.PeriodAggregate, error) {
	byKey := make(map[string]*entity.PeriodAggregate)

	for i, txn := range transactions {
		if i%cancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("aggregation cancelled: %w", err)
			}
		}

		if err := ValidateTransaction(txn); err != nil {
			return nil, err
		}

		if !window.Contains(txn.Date) {
			continue
		}

		key := PeriodKey(txn.Date)
		agg, ok := byKey[key]
		if !ok {
			date := txn.Date.UTC()
			agg = &entity.PeriodAggregate{
				PeriodKey: key,
				Year:      date.Year(),
				Month:     date.Month(),
				Income:    decimal.Zero,
				Expenses:  decimal.Zero,
			}
			byKey[key] = agg
		}

		if txn.IsCredit() {
			agg.Income = agg.Income.Add(txn.Amount)
		} else {
			agg.Expenses = agg.Expenses.Add(txn.Amount)
		}
		agg.TransactionCount++
	}

	periods := make([]entity.PeriodAggregate, 0, len(byKey))
	for _, agg := range byKey {
		periods = append(periods, *agg)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].PeriodKey < periods[j].PeriodKey
	})

	return periods, nil
}

// ValidateTransaction checks the invariants of a single transaction record.
func ValidateTransaction(txn entity.TransactionRecord) error {
	if txn.Date.IsZero() {
		return domainerror.NewForecastError(
			domainerror.ErrCodeMissingTransactionDate,
			fmt.Sprintf("transaction %s has no date", txn.ID),
			domainerror.ErrMissingTransactionDate,
		)
	}
	if txn.Amount.IsNegative() {
		return domainerror.NewForecastError(
			domainerror.ErrCodeNegativeAmount,
			fmt.Sprintf("transaction %s has amount %s", txn.ID, txn.Amount.String()),
			domainerror.ErrNegativeAmount,
		)
	}
	if !txn.Direction.IsValid() {
		return domainerror.NewForecastError(
			domainerror.ErrCodeInvalidDirection,
			fmt.Sprintf("transaction %s has direction %q", txn.ID, txn.Direction),
			domainerror.ErrInvalidDirection,
		)
	}
	return nil
}

// CategorySeries is the monthly expense series of one category, aligned to
// the periods it was built from. Months without spending hold zero.
// Positions holds the calendar month position of each value.
type CategorySeries struct {
	CategoryID uuid.UUID
	Values     []float64
	Positions  []float64
}

// AggregateByCategory builds one expense series per category over the given
// periods. Uncategorized transactions and credits are ignored. The result is
// sorted by category ID. Transactions are assumed to be validated already.
func AggregateByCategory(periods []entity.PeriodAggregate, transactions []entity.TransactionRecord, window entity.DateWindow) []CategorySeries {
	if len(periods) == 0 {
		return nil
	}

	index := make(map[string]int, len(periods))
	for i, p := range periods {
		index[p.PeriodKey] = i
	}

	byCategory := make(map[uuid.UUID][]decimal.Decimal)
	for _, txn := range transactions {
		if txn.CategoryID == nil || txn.IsCredit() || !window.Contains(txn.Date) {
			continue
		}
		pos, ok := index[PeriodKey(txn.Date)]
		if !ok {
			continue
		}
		sums, ok := byCategory[*txn.CategoryID]
		if !ok {
			sums = make([]decimal.Decimal, len(periods))
			byCategory[*txn.CategoryID] = sums
		}
		sums[pos] = sums[pos].Add(txn.Amount)
	}

	positions := monthPositions(periods)
	series := make([]CategorySeries, 0, len(byCategory))
	for categoryID, sums := range byCategory {
		values := make([]float64, len(sums))
		for i, s := range sums {
			values[i] = s.InexactFloat64()
		}
		series = append(series, CategorySeries{CategoryID: categoryID, Values: values, Positions: positions})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].CategoryID.String() < series[j].CategoryID.String()
	})

	return series
}
