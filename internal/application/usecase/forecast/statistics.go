// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import "math"

// EstimateTrend returns the ordinary least-squares slope of values indexed 1..N.
// Fewer than two values have no defined slope and yield 0.
func EstimateTrend(values []float64) float64 {
	positions := make([]float64, len(values))
	for i := range values {
		positions[i] = float64(i + 1)
	}
	return EstimateTrendAt(positions, values)
}

// EstimateTrendAt returns the ordinary least-squares slope of values placed at
// the given x positions. Mismatched lengths, fewer than two points or a zero
// spread of positions yield 0.
func EstimateTrendAt(positions, values []float64) float64 {
	n := len(values)
	if n < 2 || len(positions) != n {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := positions[i]
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	count := float64(n)
	denominator := count*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0
	}

	return (count*sumXY - sumX*sumY) / denominator
}

// EstimateVolatility returns the population standard deviation of values.
// A single value or an empty sequence yields 0.
func EstimateVolatility(values []float64) float64 {
	n := len(values)
	if n <= 1 {
		return 0
	}

	avg := mean(values)
	var sumSquares float64
	for _, v := range values {
		d := v - avg
		sumSquares += d * d
	}

	return math.Sqrt(sumSquares / float64(n))
}

// mean returns the arithmetic mean, or 0 for an empty sequence.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
