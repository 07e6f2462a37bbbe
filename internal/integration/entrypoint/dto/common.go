// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the date format used by query parameters and responses.
const DateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func roundFloat(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
