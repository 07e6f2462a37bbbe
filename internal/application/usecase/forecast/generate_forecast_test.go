package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
)

type fakeForecastRepository struct {
	snapshot      *entity.ForecastSnapshot
	err           error
	snapshotCalls int
	lastWindow    entity.DateWindow
}

func (r *fakeForecastRepository) GetSnapshot(_ context.Context, _ uuid.UUID, window entity.DateWindow) (*entity.ForecastSnapshot, error) {
	r.snapshotCalls++
	r.lastWindow = window
	if r.err != nil {
		return nil, r.err
	}
	return r.snapshot, nil
}

func (r *fakeForecastRepository) GetTransactions(_ context.Context, _ uuid.UUID, _ entity.DateWindow) ([]entity.TransactionRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.snapshot.Transactions, nil
}

type fakeForecastCache struct {
	entries  map[string]*entity.ForecastResult
	getErr   error
	setErr   error
	setCalls int
}

func newFakeForecastCache() *fakeForecastCache {
	return &fakeForecastCache{entries: make(map[string]*entity.ForecastResult)}
}

func (c *fakeForecastCache) Get(_ context.Context, key string) (*entity.ForecastResult, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *fakeForecastCache) Set(_ context.Context, key string, result *entity.ForecastResult, _ time.Duration) error {
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = result
	return nil
}

func validForecastInput() GenerateForecastInput {
	return GenerateForecastInput{
		UserID:        testUserID,
		HorizonMonths: 6,
		BasedOnMonths: 6,
		AsOf:          testAnchor,
	}
}

func TestGenerateForecastUseCase_Validation(t *testing.T) {
	uc := NewGenerateForecastUseCase(&fakeForecastRepository{snapshot: flatSnapshot()}, nil, 0, NewEngine())

	tests := []struct {
		name   string
		modify func(*GenerateForecastInput)
		code   domainerror.ForecastErrorCode
	}{
		{name: "zero horizon", modify: func(in *GenerateForecastInput) { in.HorizonMonths = 0 }, code: domainerror.ErrCodeInvalidHorizon},
		{name: "horizon too long", modify: func(in *GenerateForecastInput) { in.HorizonMonths = 61 }, code: domainerror.ErrCodeInvalidHorizon},
		{name: "zero history", modify: func(in *GenerateForecastInput) { in.BasedOnMonths = 0 }, code: domainerror.ErrCodeInvalidBasedOnMonths},
		{name: "missing anchor", modify: func(in *GenerateForecastInput) { in.AsOf = time.Time{} }, code: domainerror.ErrCodeInvalidAsOfDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validForecastInput()
			tt.modify(&input)

			_, err := uc.Execute(context.Background(), input)
			var forecastErr *domainerror.ForecastError
			if !errors.As(err, &forecastErr) {
				t.Fatalf("expected ForecastError, got %v", err)
			}
			if forecastErr.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, forecastErr.Code)
			}
		})
	}
}

func TestGenerateForecastUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("computes and caches on miss", func(t *testing.T) {
		repo := &fakeForecastRepository{snapshot: flatSnapshot()}
		cache := newFakeForecastCache()
		uc := NewGenerateForecastUseCase(repo, cache, time.Hour, NewEngine())

		output, err := uc.Execute(ctx, validForecastInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Cached {
			t.Error("expected fresh result on cache miss")
		}
		if repo.snapshotCalls != 1 {
			t.Errorf("expected 1 snapshot fetch, got %d", repo.snapshotCalls)
		}
		if cache.setCalls != 1 {
			t.Errorf("expected 1 cache write, got %d", cache.setCalls)
		}

		expectedWindow := entity.DateWindow{
			Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		}
		if !repo.lastWindow.Start.Equal(expectedWindow.Start) || !repo.lastWindow.End.Equal(expectedWindow.End) {
			t.Errorf("expected window %v, got %v", expectedWindow, repo.lastWindow)
		}
	})

	t.Run("serves cached result without loading data", func(t *testing.T) {
		repo := &fakeForecastRepository{snapshot: flatSnapshot()}
		cache := newFakeForecastCache()
		cached := &entity.ForecastResult{CurrentBalance: decimal.NewFromInt(1)}
		cache.entries[CacheKey(validForecastInput())] = cached
		uc := NewGenerateForecastUseCase(repo, cache, time.Hour, NewEngine())

		output, err := uc.Execute(ctx, validForecastInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Cached || output.Forecast != cached {
			t.Error("expected cached forecast")
		}
		if repo.snapshotCalls != 0 {
			t.Errorf("expected no snapshot fetch, got %d", repo.snapshotCalls)
		}
	})

	t.Run("cache failures are not fatal", func(t *testing.T) {
		repo := &fakeForecastRepository{snapshot: flatSnapshot()}
		cache := newFakeForecastCache()
		cache.getErr = errors.New("connection refused")
		cache.setErr = errors.New("connection refused")
		uc := NewGenerateForecastUseCase(repo, cache, time.Hour, NewEngine())

		output, err := uc.Execute(ctx, validForecastInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Forecast == nil {
			t.Fatal("expected a forecast")
		}
	})

	t.Run("repository errors are wrapped", func(t *testing.T) {
		dbErr := errors.New("db down")
		uc := NewGenerateForecastUseCase(&fakeForecastRepository{err: dbErr}, nil, 0, NewEngine())

		_, err := uc.Execute(ctx, validForecastInput())
		if !errors.Is(err, dbErr) {
			t.Errorf("expected wrapped db error, got %v", err)
		}
	})
}

func TestCacheKey(t *testing.T) {
	input := validForecastInput()
	all := CacheKey(input)

	account := checkingID
	input.AccountID = &account
	scoped := CacheKey(input)

	if all == scoped {
		t.Error("expected account-scoped key to differ from combined key")
	}

	input.AsOf = input.AsOf.Add(2 * time.Hour)
	if CacheKey(input) != scoped {
		t.Error("expected key to depend only on the anchor date")
	}
}

func TestGenerateAccountForecastsUseCase_Execute(t *testing.T) {
	snapshot := flatSnapshot()
	snapshot.Accounts = append(snapshot.Accounts, entity.Account{
		ID: savingsID, UserID: testUserID, Name: "Brokerage", Balance: decimal.NewFromInt(700),
	})
	repo := &fakeForecastRepository{snapshot: snapshot}
	uc := NewGenerateAccountForecastsUseCase(repo, NewEngine())

	output, err := uc.Execute(context.Background(), GenerateAccountForecastsInput{
		UserID:        testUserID,
		HorizonMonths: 3,
		BasedOnMonths: 6,
		AsOf:          testAnchor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.snapshotCalls != 1 {
		t.Errorf("expected a single snapshot fetch, got %d", repo.snapshotCalls)
	}
	if len(output.Accounts) != 2 {
		t.Fatalf("expected 2 account forecasts, got %d", len(output.Accounts))
	}
	if output.Accounts[0].Account.Name != "Brokerage" || output.Accounts[1].Account.Name != "Checking" {
		t.Errorf("expected accounts ordered by name, got %s, %s", output.Accounts[0].Account.Name, output.Accounts[1].Account.Name)
	}
	for _, af := range output.Accounts {
		if af.Forecast.AccountID == nil || *af.Forecast.AccountID != af.Account.ID {
			t.Errorf("forecast for %s carries the wrong account", af.Account.Name)
		}
	}
	if !output.Accounts[1].Forecast.MonthlyProjections[0].EndingBalance.Equal(decimal.NewFromInt(11500)) {
		t.Errorf("expected checking month 1 balance 11500, got %s", output.Accounts[1].Forecast.MonthlyProjections[0].EndingBalance)
	}
}
