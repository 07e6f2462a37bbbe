// Package recurring detects repeating transactions in a user's history.
package recurring

import (
	"sort"
	"time"

	"github.com/finance-tracker/forecasting/internal/application/usecase/bill"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
	"github.com/finance-tracker/forecasting/internal/domain/valueobject"
)

// Detector groups transactions by fingerprint and classifies their cadence.
type Detector struct {
	config valueobject.RecurrenceConfig
}

// NewDetector creates a detector with the given interval bands.
func NewDetector(config valueobject.RecurrenceConfig) *Detector {
	return &Detector{config: config}
}

// DetectPatterns runs detection with the default configuration.
func DetectPatterns(transactions []entity.TransactionRecord) []entity.RecurrencePattern {
	return NewDetector(valueobject.DefaultRecurrenceConfig()).Detect(transactions)
}

// Detect returns the recurring patterns found in transactions, most confident first.
func (d *Detector) Detect(transactions []entity.TransactionRecord) []entity.RecurrencePattern {
	groups := make(map[string][]entity.TransactionRecord)
	for _, txn := range transactions {
		key := entity.Fingerprint(txn.Description, txn.Amount)
		groups[key] = append(groups[key], txn)
	}

	patterns := make([]entity.RecurrencePattern, 0)
	for _, group := range groups {
		if len(group) < d.config.MinOccurrences {
			continue
		}
		if pattern, ok := d.classify(group); ok {
			patterns = append(patterns, pattern)
		}
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Confidence != patterns[j].Confidence {
			return patterns[i].Confidence > patterns[j].Confidence
		}
		if patterns[i].Description != patterns[j].Description {
			return patterns[i].Description < patterns[j].Description
		}
		return patterns[i].Amount.LessThan(patterns[j].Amount)
	})

	return patterns
}

func (d *Detector) classify(group []entity.TransactionRecord) (entity.RecurrencePattern, bool) {
	sorted := make([]entity.TransactionRecord, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	occurrences := make([]time.Time, len(sorted))
	for i, txn := range sorted {
		occurrences[i] = txn.Date
	}

	avgInterval := averageIntervalDays(occurrences)
	frequency := d.frequencyFor(avgInterval)
	if frequency == entity.RecurrenceNone {
		return entity.RecurrencePattern{}, false
	}

	confidence := float64(len(sorted)) / d.config.SaturationCount
	first := sorted[0]

	pattern := entity.NewRecurrencePattern(
		first.Description,
		first.Amount,
		majorityDirection(sorted),
		frequency,
		occurrences,
		avgInterval,
		confidence,
	)

	last := occurrences[len(occurrences)-1]
	schedule := suggestSchedule(frequency, last)
	if next, err := bill.NextDueDate(schedule, last); err == nil {
		pattern.SuggestedSchedule = &schedule
		pattern.NextExpectedDate = &next
	}

	return pattern, true
}

// majorityDirection returns the direction most records in the group share.
// Fingerprints ignore direction, so a group may mix credits and debits.
// A tie goes to the earliest record.
func majorityDirection(sorted []entity.TransactionRecord) entity.Direction {
	credits := 0
	for _, txn := range sorted {
		if txn.IsCredit() {
			credits++
		}
	}
	debits := len(sorted) - credits
	switch {
	case credits > debits:
		return entity.DirectionCredit
	case debits > credits:
		return entity.DirectionDebit
	default:
		return sorted[0].Direction
	}
}

// frequencyFor checks the monthly band before the weekly one.
func (d *Detector) frequencyFor(avgIntervalDays float64) entity.RecurrenceFrequency {
	switch {
	case avgIntervalDays >= d.config.MonthlyMinDays && avgIntervalDays <= d.config.MonthlyMaxDays:
		return entity.RecurrenceMonthly
	case avgIntervalDays >= d.config.WeeklyMinDays && avgIntervalDays <= d.config.WeeklyMaxDays:
		return entity.RecurrenceWeekly
	default:
		return entity.RecurrenceNone
	}
}

func averageIntervalDays(dates []time.Time) float64 {
	if len(dates) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(dates); i++ {
		total += dates[i].Sub(dates[i-1]).Hours() / 24
	}
	return total / float64(len(dates)-1)
}

func suggestSchedule(frequency entity.RecurrenceFrequency, last time.Time) entity.BillSchedule {
	last = last.UTC()
	if frequency == entity.RecurrenceWeekly {
		return entity.BillSchedule{
			Frequency: entity.BillFrequencyWeekly,
			DueDay:    bill.ISOWeekday(last),
		}
	}
	return entity.BillSchedule{
		Frequency: entity.BillFrequencyMonthly,
		DueDay:    last.Day(),
	}
}
