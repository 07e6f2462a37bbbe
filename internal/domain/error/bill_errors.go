// Package error defines domain-specific errors for the forecasting service.
package error

import "errors"

// Bill domain errors.
var (
	// ErrInvalidBillFrequency is returned when the frequency is not supported.
	ErrInvalidBillFrequency = errors.New("frequency must be: weekly, monthly, quarterly, or yearly")

	// ErrInvalidDueDay is returned when the due day is out of range for the frequency.
	ErrInvalidDueDay = errors.New("due day is out of range for the bill frequency")

	// ErrInvalidDueMonth is returned when a yearly bill has no valid due month.
	ErrInvalidDueMonth = errors.New("due month must be between 1 and 12 for yearly bills")

	// ErrInvalidPaidDate is returned when the paid date is missing or malformed.
	ErrInvalidPaidDate = errors.New("invalid paid_date, expected YYYY-MM-DD")

	// ErrBillNotFound is returned when a bill is not found.
	ErrBillNotFound = errors.New("bill not found")
)

// BillErrorCode defines error codes for bill errors.
// Format: BIL-XXYYYY where XX is category and YYYY is specific error.
type BillErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBillFrequency BillErrorCode = "BIL-010001"
	ErrCodeInvalidDueDay        BillErrorCode = "BIL-010002"
	ErrCodeInvalidDueMonth      BillErrorCode = "BIL-010003"
	ErrCodeInvalidPaidDate      BillErrorCode = "BIL-010004"
	ErrCodeInvalidBillID        BillErrorCode = "BIL-010005"
	ErrCodeInvalidBillRequest   BillErrorCode = "BIL-010006"

	// Not found errors (02XXXX)
	ErrCodeBillNotFound BillErrorCode = "BIL-020001"

	// Internal errors (99XXXX)
	ErrCodeBillInternalError BillErrorCode = "BIL-990001"
)

// BillError represents a bill error with code and message.
type BillError struct {
	Code    BillErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillError) Unwrap() error {
	return e.Err
}

// NewBillError creates a new BillError with the given code and message.
func NewBillError(code BillErrorCode, message string, err error) *BillError {
	return &BillError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
