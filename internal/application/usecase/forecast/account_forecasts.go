// Package forecast contains the cash-flow forecasting engine and its use cases.
package forecast

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/forecasting/internal/application/adapter"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

// maxParallelForecasts bounds the number of account forecasts computed at once.
const maxParallelForecasts = 4

// GenerateAccountForecastsInput represents the input for forecasting every account.
type GenerateAccountForecastsInput struct {
	UserID        uuid.UUID
	HorizonMonths int
	BasedOnMonths int
	AsOf          time.Time
}

// AccountForecast pairs an account with its forecast.
type AccountForecast struct {
	Account  entity.Account
	Forecast *entity.ForecastResult
}

// GenerateAccountForecastsOutput represents the output of forecasting every account.
type GenerateAccountForecastsOutput struct {
	Accounts []AccountForecast
}

// GenerateAccountForecastsUseCase forecasts each of a user's accounts separately.
type GenerateAccountForecastsUseCase struct {
	forecastRepo adapter.ForecastRepository
	engine       *Engine
}

// NewGenerateAccountForecastsUseCase creates a new GenerateAccountForecastsUseCase instance.
func NewGenerateAccountForecastsUseCase(forecastRepo adapter.ForecastRepository, engine *Engine) *GenerateAccountForecastsUseCase {
	return &GenerateAccountForecastsUseCase{
		forecastRepo: forecastRepo,
		engine:       engine,
	}
}

// Execute loads one snapshot and forecasts every account from it in parallel.
// Results are ordered by account name.
func (uc *GenerateAccountForecastsUseCase) Execute(ctx context.Context, input GenerateAccountForecastsInput) (*GenerateAccountForecastsOutput, error) {
	if err := validateForecastParams(input.HorizonMonths, input.BasedOnMonths, input.AsOf); err != nil {
		return nil, err
	}

	snapshot, err := uc.forecastRepo.GetSnapshot(ctx, input.UserID, HistoryWindow(input.AsOf, input.BasedOnMonths))
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast snapshot: %w", err)
	}

	accounts := make([]entity.Account, len(snapshot.Accounts))
	copy(accounts, snapshot.Accounts)
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Name != accounts[j].Name {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].ID.String() < accounts[j].ID.String()
	})

	results := make([]AccountForecast, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelForecasts)

	for i := range accounts {
		i := i
		accountID := accounts[i].ID
		g.Go(func() error {
			result, err := uc.engine.Forecast(gctx, snapshot, Request{
				AccountID:     &accountID,
				AsOf:          input.AsOf,
				HorizonMonths: input.HorizonMonths,
				BasedOnMonths: input.BasedOnMonths,
			})
			if err != nil {
				return fmt.Errorf("failed to forecast account %s: %w", accountID, err)
			}
			results[i] = AccountForecast{Account: accounts[i], Forecast: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GenerateAccountForecastsOutput{Accounts: results}, nil
}
