package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/forecasting/internal/application/adapter"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
	"github.com/finance-tracker/forecasting/internal/domain/valueobject"
)

const (
	// DefaultLookbackMonths is used when the caller does not choose a lookback.
	DefaultLookbackMonths = 12
	// MaxLookbackMonths bounds the history scanned for patterns.
	MaxLookbackMonths = 60
)

// DetectRecurringPatternsInput represents the input for recurring pattern detection.
type DetectRecurringPatternsInput struct {
	UserID uuid.UUID
	Months int
	AsOf   time.Time
}

// DetectRecurringPatternsOutput represents the output of recurring pattern detection.
type DetectRecurringPatternsOutput struct {
	Patterns         []entity.RecurrencePattern
	TransactionCount int
	Window           entity.DateWindow
}

// DetectRecurringPatternsUseCase handles recurring pattern detection over recent history.
type DetectRecurringPatternsUseCase struct {
	forecastRepo adapter.ForecastRepository
	detector     *Detector
}

// NewDetectRecurringPatternsUseCase creates a new DetectRecurringPatternsUseCase instance.
func NewDetectRecurringPatternsUseCase(forecastRepo adapter.ForecastRepository, detector *Detector) *DetectRecurringPatternsUseCase {
	if detector == nil {
		detector = NewDetector(valueobject.DefaultRecurrenceConfig())
	}
	return &DetectRecurringPatternsUseCase{
		forecastRepo: forecastRepo,
		detector:     detector,
	}
}

// Execute scans the months before AsOf, including AsOf itself, for recurring transactions.
func (uc *DetectRecurringPatternsUseCase) Execute(ctx context.Context, input DetectRecurringPatternsInput) (*DetectRecurringPatternsOutput, error) {
	if input.AsOf.IsZero() {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeInvalidAsOfDate,
			"as_of date is required",
			domainerror.ErrInvalidAsOfDate,
		)
	}

	months := input.Months
	if months == 0 {
		months = DefaultLookbackMonths
	}
	if months < 1 || months > MaxLookbackMonths {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeInvalidBasedOnMonths,
			fmt.Sprintf("months must be between 1 and %d", MaxLookbackMonths),
			domainerror.ErrInvalidBasedOnMonths,
		)
	}

	asOf := input.AsOf.UTC()
	today := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	window := entity.DateWindow{
		Start: today.AddDate(0, -months, 0),
		End:   today.AddDate(0, 0, 1),
	}

	transactions, err := uc.forecastRepo.GetTransactions(ctx, input.UserID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return &DetectRecurringPatternsOutput{
		Patterns:         uc.detector.Detect(transactions),
		TransactionCount: len(transactions),
		Window:           window,
	}, nil
}
