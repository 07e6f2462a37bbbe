// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finance-tracker/forecasting/internal/application/usecase/bill"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// MarkBillPaidRequest represents the request body for recording a bill payment.
type MarkBillPaidRequest struct {
	PaidDate string `json:"paid_date" binding:"required"`
}

// BillScheduleResponse represents when a bill falls due.
type BillScheduleResponse struct {
	Frequency    string  `json:"frequency"`
	DueDay       int     `json:"due_day"`
	DueMonth     *int    `json:"due_month,omitempty"`
	LastPaidDate *string `json:"last_paid_date,omitempty"`
	NextDueDate  *string `json:"next_due_date,omitempty"`
}

// BillResponse represents a single bill in API responses.
type BillResponse struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Amount     string               `json:"amount"`
	CategoryID *string              `json:"category_id,omitempty"`
	Schedule   BillScheduleResponse `json:"schedule"`
}

// UpcomingBillResponse represents a bill with its next due date.
type UpcomingBillResponse struct {
	BillResponse
	DueDate           string `json:"due_date"`
	DaysUntilDue      int    `json:"days_until_due"`
	MonthlyEquivalent string `json:"monthly_equivalent"`
}

// UpcomingBillListResponse represents the bills due in the requested window.
type UpcomingBillListResponse struct {
	Bills                  []UpcomingBillResponse `json:"bills"`
	TotalDue               string                 `json:"total_due"`
	TotalMonthlyEquivalent string                 `json:"total_monthly_equivalent"`
}

// ToBillResponse converts a domain Bill entity to a BillResponse DTO.
func ToBillResponse(b *entity.Bill) BillResponse {
	response := BillResponse{
		ID:       b.ID.String(),
		Name:     b.Name,
		Amount:   money(b.Amount),
		Schedule: toBillScheduleResponse(b.Schedule),
	}
	if b.CategoryID != nil {
		id := b.CategoryID.String()
		response.CategoryID = &id
	}
	return response
}

// ToUpcomingBillListResponse converts the upcoming bills output to a response DTO.
func ToUpcomingBillListResponse(output *bill.ListUpcomingBillsOutput) UpcomingBillListResponse {
	response := UpcomingBillListResponse{
		Bills:                  make([]UpcomingBillResponse, len(output.Bills)),
		TotalDue:               money(output.TotalDue),
		TotalMonthlyEquivalent: money(output.TotalMonthlyEquivalent),
	}
	for i, upcoming := range output.Bills {
		response.Bills[i] = UpcomingBillResponse{
			BillResponse:      ToBillResponse(upcoming.Bill),
			DueDate:           formatDate(upcoming.NextDueDate),
			DaysUntilDue:      upcoming.DaysUntilDue,
			MonthlyEquivalent: money(upcoming.MonthlyEquivalent),
		}
	}
	return response
}

func toBillScheduleResponse(s entity.BillSchedule) BillScheduleResponse {
	response := BillScheduleResponse{
		Frequency: string(s.Frequency),
		DueDay:    s.DueDay,
		DueMonth:  s.DueMonth,
	}
	if s.LastPaidDate != nil {
		paid := formatDate(*s.LastPaidDate)
		response.LastPaidDate = &paid
	}
	if s.NextDueDate != nil {
		next := formatDate(*s.NextDueDate)
		response.NextDueDate = &next
	}
	return response
}
