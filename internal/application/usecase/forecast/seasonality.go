// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import (
	"time"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// MinSeasonalityMonths is the number of distinct months required before
// seasonal indices are computed.
const MinSeasonalityMonths = 12

// SeasonalIndex maps each calendar month to a multiplicative factor.
// The zero value is neutral: every month has factor 1.0.
type SeasonalIndex struct {
	factors [12]float64
	applied bool
}

// NeutralSeasonalIndex returns an index with factor 1.0 for every month.
func NeutralSeasonalIndex() SeasonalIndex {
	var idx SeasonalIndex
	for i := range idx.factors {
		idx.factors[i] = 1.0
	}
	return idx
}

// Factor returns the index of the given calendar month.
func (s SeasonalIndex) Factor(month time.Month) float64 {
	if !s.applied || month < time.January || month > time.December {
		return 1.0
	}
	return s.factors[month-1]
}

// Applied reports whether the index was computed from data.
func (s SeasonalIndex) Applied() bool {
	return s.applied
}

// Factors returns the twelve monthly factors, January first.
func (s SeasonalIndex) Factors() [12]float64 {
	if !s.applied {
		return NeutralSeasonalIndex().factors
	}
	return s.factors
}

// ComputeSeasonality derives a per-calendar-month expense index from the
// given periods: the average expense of each calendar month divided by the
// average expense over all periods. Months without observations stay at 1.0.
// With fewer than MinSeasonalityMonths periods, or no spending at all, the
// neutral index is returned.
func ComputeSeasonality(periods []entity.PeriodAggregate) SeasonalIndex {
	if len(periods) < MinSeasonalityMonths {
		return NeutralSeasonalIndex()
	}

	var sums [12]float64
	var counts [12]int
	var total float64
	for _, p := range periods {
		expenses := p.Expenses.InexactFloat64()
		sums[p.Month-1] += expenses
		counts[p.Month-1]++
		total += expenses
	}

	overall := total / float64(len(periods))
	if overall == 0 {
		return NeutralSeasonalIndex()
	}

	idx := NeutralSeasonalIndex()
	idx.applied = true
	for m := 0; m < 12; m++ {
		if counts[m] == 0 {
			continue
		}
		idx.factors[m] = (sums[m] / float64(counts[m])) / overall
	}

	return idx
}
