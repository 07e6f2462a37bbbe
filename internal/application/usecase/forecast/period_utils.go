// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import (
	"math"
	"time"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// periodKeyLayout formats a month as YYYY-MM.
const periodKeyLayout = "2006-01"

// MonthStart returns midnight UTC on the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodKey returns the YYYY-MM key of the month containing t.
func PeriodKey(t time.Time) string {
	return t.UTC().Format(periodKeyLayout)
}

// HistoryWindow returns the window covering the basedOnMonths complete
// months before the month of anchor. The anchor's own month is excluded.
func HistoryWindow(anchor time.Time, basedOnMonths int) entity.DateWindow {
	end := MonthStart(anchor)
	return entity.DateWindow{
		Start: end.AddDate(0, -basedOnMonths, 0),
		End:   end,
	}
}

// ProjectionMonth returns the first day of the month i months after the anchor's month.
func ProjectionMonth(anchor time.Time, i int) time.Time {
	return MonthStart(anchor).AddDate(0, i, 0)
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
