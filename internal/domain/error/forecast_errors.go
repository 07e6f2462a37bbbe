// Package error defines domain-specific errors for the forecasting service.
package error

import "errors"

// Forecast domain errors.
var (
	// ErrNegativeAmount is returned when a transaction carries a negative amount.
	ErrNegativeAmount = errors.New("transaction amount must not be negative")

	// ErrInvalidDirection is returned when a transaction direction is not credit or debit.
	ErrInvalidDirection = errors.New("transaction direction must be: credit or debit")

	// ErrMissingTransactionDate is returned when a transaction has no date.
	ErrMissingTransactionDate = errors.New("transaction date is required")

	// ErrInvalidHorizon is returned when the forecast horizon is out of range.
	ErrInvalidHorizon = errors.New("horizon must be between 1 and 60 months")

	// ErrInvalidBasedOnMonths is returned when the history window is out of range.
	ErrInvalidBasedOnMonths = errors.New("based_on must be between 1 and 60 months")

	// ErrInvalidScenario is returned when a scenario definition is malformed.
	ErrInvalidScenario = errors.New("scenario factors must be non-negative and names unique")

	// ErrInvalidAsOfDate is returned when the anchor date is missing or malformed.
	ErrInvalidAsOfDate = errors.New("invalid as_of date, expected YYYY-MM-DD")

	// ErrAccountNotFound is returned when the requested account does not belong to the user.
	ErrAccountNotFound = errors.New("account not found")
)

// ForecastErrorCode defines error codes for forecast errors.
// Format: FCT-XXYYYY where XX is category and YYYY is specific error.
type ForecastErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeNegativeAmount         ForecastErrorCode = "FCT-010001"
	ErrCodeInvalidDirection       ForecastErrorCode = "FCT-010002"
	ErrCodeMissingTransactionDate ForecastErrorCode = "FCT-010003"
	ErrCodeInvalidHorizon         ForecastErrorCode = "FCT-010004"
	ErrCodeInvalidBasedOnMonths   ForecastErrorCode = "FCT-010005"
	ErrCodeInvalidScenario        ForecastErrorCode = "FCT-010006"
	ErrCodeInvalidAsOfDate        ForecastErrorCode = "FCT-010007"
	ErrCodeInvalidForecastRequest ForecastErrorCode = "FCT-010008"

	// Not found errors (02XXXX)
	ErrCodeAccountNotFound ForecastErrorCode = "FCT-020001"

	// Internal errors (99XXXX)
	ErrCodeForecastInternalError ForecastErrorCode = "FCT-990001"
)

// ForecastError represents a forecast error with code and message.
type ForecastError struct {
	Code    ForecastErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ForecastError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ForecastError) Unwrap() error {
	return e.Err
}

// NewForecastError creates a new ForecastError with the given code and message.
func NewForecastError(code ForecastErrorCode, message string, err error) *ForecastError {
	return &ForecastError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
