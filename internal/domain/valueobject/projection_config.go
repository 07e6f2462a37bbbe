// Package valueobject contains domain value objects for the forecasting service.
package valueobject

// ProjectionConfig contains the tuning constants for balance projections.
type ProjectionConfig struct {
	// Per-month confidence decay
	TimeDecayPerMonth float64 // 2.5 points per month ahead

	// Volatility penalty: relative volatility x scale, capped
	VolatilityPenaltyScale float64 // 20
	MaxVolatilityPenalty   float64 // 20 points

	// Floor so confidence never reaches zero
	MinConfidence float64 // 5
}

// DefaultProjectionConfig returns the default projection configuration.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		TimeDecayPerMonth:      2.5,
		VolatilityPenaltyScale: 20,
		MaxVolatilityPenalty:   20,
		MinConfidence:          5,
	}
}

// VolatilityPenalty returns the confidence penalty for the given relative volatility.
func (c ProjectionConfig) VolatilityPenalty(relativeVolatility float64) float64 {
	if relativeVolatility <= 0 {
		return 0
	}
	penalty := relativeVolatility * c.VolatilityPenaltyScale
	if penalty > c.MaxVolatilityPenalty {
		return c.MaxVolatilityPenalty
	}
	return penalty
}

// MonthConfidence returns the confidence of the projection i months ahead.
func (c ProjectionConfig) MonthConfidence(base, relativeVolatility float64, monthsAhead int) float64 {
	confidence := base - c.VolatilityPenalty(relativeVolatility) - c.TimeDecayPerMonth*float64(monthsAhead)
	if confidence < c.MinConfidence {
		return c.MinConfidence
	}
	return confidence
}

// RecurrenceConfig contains the interval bands used to classify recurring transactions.
type RecurrenceConfig struct {
	// Minimum occurrences before a group is classified
	MinOccurrences int // 3

	// Interval bands in days, inclusive
	MonthlyMinDays float64 // 25
	MonthlyMaxDays float64 // 35
	WeeklyMinDays  float64 // 6
	WeeklyMaxDays  float64 // 8

	// Occurrences at which confidence saturates
	SaturationCount float64 // 6
}

// DefaultRecurrenceConfig returns the default recurrence configuration.
func DefaultRecurrenceConfig() RecurrenceConfig {
	return RecurrenceConfig{
		MinOccurrences:  3,
		MonthlyMinDays:  25,
		MonthlyMaxDays:  35,
		WeeklyMinDays:   6,
		WeeklyMaxDays:   8,
		SaturationCount: 6,
	}
}
