package bill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/forecasting/internal/application/adapter"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
)

// MarkBillPaidInput represents the input for marking a bill as paid.
type MarkBillPaidInput struct {
	UserID   uuid.UUID
	BillID   uuid.UUID
	PaidDate time.Time
}

// MarkBillPaidOutput represents the output of marking a bill as paid.
type MarkBillPaidOutput struct {
	Bill *entity.Bill
}

// MarkBillPaidUseCase handles recording a bill payment.
type MarkBillPaidUseCase struct {
	billRepo  adapter.BillRepository
	scheduler *Scheduler
}

// NewMarkBillPaidUseCase creates a new MarkBillPaidUseCase instance.
func NewMarkBillPaidUseCase(billRepo adapter.BillRepository, scheduler *Scheduler) *MarkBillPaidUseCase {
	if scheduler == nil {
		scheduler = defaultScheduler
	}
	return &MarkBillPaidUseCase{
		billRepo:  billRepo,
		scheduler: scheduler,
	}
}

// Execute records the payment and advances the next due date from the paid date.
func (uc *MarkBillPaidUseCase) Execute(ctx context.Context, input MarkBillPaidInput) (*MarkBillPaidOutput, error) {
	if input.PaidDate.IsZero() {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeInvalidPaidDate,
			"paid date is required",
			domainerror.ErrInvalidPaidDate,
		)
	}

	bill, err := uc.billRepo.FindByID(ctx, input.BillID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillNotFound) {
			return nil, domainerror.NewBillError(
				domainerror.ErrCodeBillNotFound,
				"bill not found",
				domainerror.ErrBillNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}

	paid := truncateToDay(input.PaidDate)
	next, err := uc.scheduler.NextDueDate(bill.Schedule, paid)
	if err != nil {
		return nil, err
	}

	bill.Schedule.LastPaidDate = &paid
	bill.Schedule.NextDueDate = &next

	if err := uc.billRepo.Update(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	return &MarkBillPaidOutput{Bill: bill}, nil
}
