// Package bill contains bill scheduling logic and bill-related use cases.
package bill

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
)

// DayRollover decides which day a due day beyond the end of a short month falls on.
type DayRollover string

const (
	// RolloverEndOfMonth moves days past the month end to the last day of the month.
	RolloverEndOfMonth DayRollover = "end_of_month"
	// RolloverClamp28 caps every due day at the 28th.
	RolloverClamp28 DayRollover = "clamp_28"
)

// ParseDayRollover converts a config value to a DayRollover, defaulting to end of month.
func ParseDayRollover(value string) DayRollover {
	if DayRollover(value) == RolloverClamp28 {
		return RolloverClamp28
	}
	return RolloverEndOfMonth
}

var (
	weeksPerYear     = decimal.NewFromInt(52)
	monthsPerYear    = decimal.NewFromInt(12)
	monthsPerQuarter = decimal.NewFromInt(3)
)

// Scheduler computes bill due dates.
type Scheduler struct {
	rollover DayRollover
}

// NewScheduler creates a scheduler with the given day rollover policy.
func NewScheduler(rollover DayRollover) *Scheduler {
	return &Scheduler{rollover: rollover}
}

var defaultScheduler = NewScheduler(RolloverEndOfMonth)

// NextDueDate returns the first due date strictly after anchor using the default policy.
func NextDueDate(schedule entity.BillSchedule, anchor time.Time) (time.Time, error) {
	return defaultScheduler.NextDueDate(schedule, anchor)
}

// NextDueDate returns the first due date strictly after anchor.
// The result is a UTC date at midnight.
func (s *Scheduler) NextDueDate(schedule entity.BillSchedule, anchor time.Time) (time.Time, error) {
	if err := ValidateSchedule(schedule); err != nil {
		return time.Time{}, err
	}

	day := truncateToDay(anchor)

	switch schedule.Frequency {
	case entity.BillFrequencyWeekly:
		return nextWeekday(day, schedule.DueDay), nil
	case entity.BillFrequencyMonthly:
		return s.nextMonthDay(day, schedule.DueDay, 1), nil
	case entity.BillFrequencyQuarterly:
		return s.nextMonthDay(day, schedule.DueDay, 3), nil
	default:
		return s.nextYearDay(day, time.Month(*schedule.DueMonth), schedule.DueDay), nil
	}
}

// UpcomingDueDate returns the first due date strictly after asOf that is not
// already covered by the last payment.
// Quarterly bills keep the phase set by the last payment: the first due date
// after it is stepped forward a quarter at a time until it passes asOf.
func (s *Scheduler) UpcomingDueDate(schedule entity.BillSchedule, asOf time.Time) (time.Time, error) {
	anchor := truncateToDay(asOf)
	if schedule.LastPaidDate == nil {
		return s.NextDueDate(schedule, anchor)
	}

	paid := truncateToDay(*schedule.LastPaidDate)
	if schedule.Frequency != entity.BillFrequencyQuarterly {
		if paid.After(anchor) {
			anchor = paid
		}
		return s.NextDueDate(schedule, anchor)
	}

	if err := ValidateSchedule(schedule); err != nil {
		return time.Time{}, err
	}
	for offset := 0; ; offset += 3 {
		due := s.dateIn(paid.Year(), paid.Month()+time.Month(offset), schedule.DueDay)
		if due.After(paid) && due.After(anchor) {
			return due, nil
		}
	}
}

// MonthlyEquivalent normalizes a bill amount to a per-month figure.
func MonthlyEquivalent(schedule entity.BillSchedule, amount decimal.Decimal) (decimal.Decimal, error) {
	switch schedule.Frequency {
	case entity.BillFrequencyWeekly:
		return amount.Mul(weeksPerYear).Div(monthsPerYear), nil
	case entity.BillFrequencyMonthly:
		return amount, nil
	case entity.BillFrequencyQuarterly:
		return amount.Div(monthsPerQuarter), nil
	case entity.BillFrequencyYearly:
		return amount.Div(monthsPerYear), nil
	default:
		return decimal.Zero, invalidFrequency(schedule.Frequency)
	}
}

// ValidateSchedule checks the frequency, due day and due month of a schedule.
func ValidateSchedule(schedule entity.BillSchedule) error {
	if !schedule.Frequency.IsValid() {
		return invalidFrequency(schedule.Frequency)
	}

	maxDay := 31
	if schedule.Frequency == entity.BillFrequencyWeekly {
		maxDay = 7
	}
	if schedule.DueDay < 1 || schedule.DueDay > maxDay {
		return domainerror.NewBillError(
			domainerror.ErrCodeInvalidDueDay,
			"due day is out of range for the bill frequency",
			domainerror.ErrInvalidDueDay,
		)
	}

	if schedule.Frequency == entity.BillFrequencyYearly {
		if schedule.DueMonth == nil || *schedule.DueMonth < 1 || *schedule.DueMonth > 12 {
			return domainerror.NewBillError(
				domainerror.ErrCodeInvalidDueMonth,
				"due month must be between 1 and 12 for yearly bills",
				domainerror.ErrInvalidDueMonth,
			)
		}
	}

	return nil
}

func invalidFrequency(frequency entity.BillFrequency) error {
	return domainerror.NewBillError(
		domainerror.ErrCodeInvalidBillFrequency,
		"unsupported bill frequency "+string(frequency),
		domainerror.ErrInvalidBillFrequency,
	)
}

// nextMonthDay walks forward stepMonths at a time from the anchor's month
// until the due day lands strictly after the anchor.
func (s *Scheduler) nextMonthDay(anchor time.Time, dueDay, stepMonths int) time.Time {
	for offset := 0; ; offset += stepMonths {
		candidate := s.dateIn(anchor.Year(), anchor.Month()+time.Month(offset), dueDay)
		if candidate.After(anchor) {
			return candidate
		}
	}
}

func (s *Scheduler) nextYearDay(anchor time.Time, dueMonth time.Month, dueDay int) time.Time {
	candidate := s.dateIn(anchor.Year(), dueMonth, dueDay)
	if candidate.After(anchor) {
		return candidate
	}
	return s.dateIn(anchor.Year()+1, dueMonth, dueDay)
}

// dateIn builds the due date in the given month, applying the rollover policy.
// Month values outside 1-12 are normalized into the following years.
func (s *Scheduler) dateIn(year int, month time.Month, day int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	switch s.rollover {
	case RolloverClamp28:
		if day > 28 {
			day = 28
		}
	default:
		if last := first.AddDate(0, 1, -1).Day(); day > last {
			day = last
		}
	}

	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// nextWeekday returns the next date after anchor falling on the ISO weekday
// (1 = Monday ... 7 = Sunday). A same-day match advances a full week.
func nextWeekday(anchor time.Time, isoWeekday int) time.Time {
	diff := (isoWeekday - ISOWeekday(anchor) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return anchor.AddDate(0, 0, diff)
}

// ISOWeekday returns the ISO weekday of t, with Monday as 1 and Sunday as 7.
func ISOWeekday(t time.Time) int {
	weekday := int(t.Weekday())
	if weekday == 0 {
		return 7
	}
	return weekday
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
