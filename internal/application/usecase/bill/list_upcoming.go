package bill

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/forecasting/internal/application/adapter"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
)

// MaxWithinDays is the widest upcoming window accepted.
const MaxWithinDays = 366

// ListUpcomingBillsInput represents the input for listing upcoming bills.
type ListUpcomingBillsInput struct {
	UserID     uuid.UUID
	AsOf       time.Time
	WithinDays int
}

// UpcomingBill is a bill with its next computed due date.
type UpcomingBill struct {
	Bill              *entity.Bill
	NextDueDate       time.Time
	DaysUntilDue      int
	MonthlyEquivalent decimal.Decimal
}

// ListUpcomingBillsOutput represents the output of listing upcoming bills.
type ListUpcomingBillsOutput struct {
	Bills                  []UpcomingBill
	TotalDue               decimal.Decimal
	TotalMonthlyEquivalent decimal.Decimal
}

// ListUpcomingBillsUseCase handles listing the bills due soon.
type ListUpcomingBillsUseCase struct {
	billRepo  adapter.BillRepository
	scheduler *Scheduler
}

// NewListUpcomingBillsUseCase creates a new ListUpcomingBillsUseCase instance.
func NewListUpcomingBillsUseCase(billRepo adapter.BillRepository, scheduler *Scheduler) *ListUpcomingBillsUseCase {
	if scheduler == nil {
		scheduler = defaultScheduler
	}
	return &ListUpcomingBillsUseCase{
		billRepo:  billRepo,
		scheduler: scheduler,
	}
}

// Execute lists the user's bills falling due within the window after AsOf.
func (uc *ListUpcomingBillsUseCase) Execute(ctx context.Context, input ListUpcomingBillsInput) (*ListUpcomingBillsOutput, error) {
	if input.AsOf.IsZero() {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeInvalidBillRequest,
			"as_of date is required",
			nil,
		)
	}
	if input.WithinDays < 1 || input.WithinDays > MaxWithinDays {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeInvalidBillRequest,
			fmt.Sprintf("within_days must be between 1 and %d", MaxWithinDays),
			nil,
		)
	}

	bills, err := uc.billRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	asOf := truncateToDay(input.AsOf)
	windowEnd := asOf.AddDate(0, 0, input.WithinDays)

	output := &ListUpcomingBillsOutput{
		Bills:                  []UpcomingBill{},
		TotalDue:               decimal.Zero,
		TotalMonthlyEquivalent: decimal.Zero,
	}

	for _, bill := range bills {
		due, err := uc.scheduler.UpcomingDueDate(bill.Schedule, asOf)
		if err != nil {
			slog.Warn("Skipping bill with invalid schedule",
				"bill_id", bill.ID,
				"error", err,
			)
			continue
		}

		monthly, err := MonthlyEquivalent(bill.Schedule, bill.Amount)
		if err != nil {
			continue
		}
		output.TotalMonthlyEquivalent = output.TotalMonthlyEquivalent.Add(monthly)

		if due.After(windowEnd) {
			continue
		}

		output.Bills = append(output.Bills, UpcomingBill{
			Bill:              bill,
			NextDueDate:       due,
			DaysUntilDue:      int(due.Sub(asOf).Hours() / 24),
			MonthlyEquivalent: monthly.Round(2),
		})
		output.TotalDue = output.TotalDue.Add(bill.Amount)
	}

	sort.SliceStable(output.Bills, func(i, j int) bool {
		if !output.Bills[i].NextDueDate.Equal(output.Bills[j].NextDueDate) {
			return output.Bills[i].NextDueDate.Before(output.Bills[j].NextDueDate)
		}
		return output.Bills[i].Bill.Name < output.Bills[j].Bill.Name
	})

	output.TotalMonthlyEquivalent = output.TotalMonthlyEquivalent.Round(2)

	return output, nil
}
