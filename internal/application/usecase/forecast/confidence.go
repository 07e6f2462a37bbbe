// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import "math"

const (
	baseConfidenceScore   = 50.0
	maxMonthsContribution = 25.0
	maxVolumeContribution = 15.0
	maxVolatilityBonus    = 10.0

	// relativeVolatilityCeiling is the income volatility/average ratio at
	// which the volatility bonus reaches zero.
	relativeVolatilityCeiling = 0.5
)

// ScoreConfidence combines data volume and income stability into a bounded
// 0-100 quality indicator. It is a heuristic, not a statistical interval.
func ScoreConfidence(monthsOfData, transactionCount int, volatility, avgIncome float64) float64 {
	months := math.Max(0, float64(monthsOfData))
	count := math.Max(0, float64(transactionCount))

	score := baseConfidenceScore +
		math.Min(months*2, maxMonthsContribution) +
		math.Min(count/10, maxVolumeContribution) +
		volatilityBonus(volatility, avgIncome)

	return clamp(score, 0, 100)
}

// volatilityBonus rewards low income volatility relative to average income.
func volatilityBonus(volatility, avgIncome float64) float64 {
	if !isFinite(avgIncome) || avgIncome <= 0 {
		return 0
	}
	if math.IsNaN(volatility) || volatility < 0 {
		volatility = 0
	}

	relative := volatility / avgIncome
	return maxVolatilityBonus * (1 - math.Min(relative/relativeVolatilityCeiling, 1))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
