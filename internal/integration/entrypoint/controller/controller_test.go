package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/forecasting/internal/application/usecase/bill"
	"github.com/finance-tracker/forecasting/internal/application/usecase/forecast"
	"github.com/finance-tracker/forecasting/internal/application/usecase/recurring"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	testUserID    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testAccountID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	fixedNow      = time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)
)

type fakeForecastRepository struct {
	snapshot *entity.ForecastSnapshot
	err      error
	window   entity.DateWindow
}

func (r *fakeForecastRepository) GetSnapshot(_ context.Context, userID uuid.UUID, window entity.DateWindow) (*entity.ForecastSnapshot, error) {
	r.window = window
	if r.err != nil {
		return nil, r.err
	}
	s := *r.snapshot
	s.UserID = userID
	s.Window = window
	return &s, nil
}

func (r *fakeForecastRepository) GetTransactions(_ context.Context, _ uuid.UUID, window entity.DateWindow) ([]entity.TransactionRecord, error) {
	r.window = window
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.TransactionRecord
	for _, txn := range r.snapshot.Transactions {
		if window.Contains(txn.Date) {
			out = append(out, txn)
		}
	}
	return out, nil
}

type fakeBillRepository struct {
	bills   []*entity.Bill
	err     error
	updated *entity.Bill
}

func (r *fakeBillRepository) FindByUserID(_ context.Context, _ uuid.UUID) ([]*entity.Bill, error) {
	return r.bills, r.err
}

func (r *fakeBillRepository) FindByID(_ context.Context, id, _ uuid.UUID) (*entity.Bill, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, b := range r.bills {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, domainerror.ErrBillNotFound
}

func (r *fakeBillRepository) Update(_ context.Context, b *entity.Bill) error {
	r.updated = b
	return nil
}

func salarySnapshot() *entity.ForecastSnapshot {
	snapshot := &entity.ForecastSnapshot{
		Accounts: []entity.Account{
			{ID: testAccountID, UserID: testUserID, Name: "Checking", Balance: decimal.NewFromInt(1000)},
		},
	}
	for m := time.January; m <= time.May; m++ {
		snapshot.Transactions = append(snapshot.Transactions,
			entity.TransactionRecord{
				ID:          uuid.New(),
				UserID:      testUserID,
				AccountID:   testAccountID,
				Date:        time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC),
				Description: "Salary",
				Amount:      decimal.NewFromInt(3000),
				Direction:   entity.DirectionCredit,
			},
			entity.TransactionRecord{
				ID:          uuid.New(),
				UserID:      testUserID,
				AccountID:   testAccountID,
				Date:        time.Date(2024, m, 5, 0, 0, 0, 0, time.UTC),
				Description: "Rent",
				Amount:      decimal.NewFromInt(1200),
				Direction:   entity.DirectionDebit,
			},
		)
	}
	return snapshot
}

func newTestRouter(repo *fakeForecastRepository, billRepo *fakeBillRepository, authenticated bool) *gin.Engine {
	engine := forecast.NewEngine()
	forecastController := NewForecastController(
		forecast.NewGenerateForecastUseCase(repo, nil, 0, engine),
		forecast.NewGenerateAccountForecastsUseCase(repo, engine),
		forecast.NewRunScenariosUseCase(engine),
		recurring.NewDetectRecurringPatternsUseCase(repo, nil),
		ForecastDefaults{HorizonMonths: 6, BasedOnMonths: 6},
		func() time.Time { return fixedNow },
	)
	billController := NewBillController(
		bill.NewListUpcomingBillsUseCase(billRepo, nil),
		bill.NewMarkBillPaidUseCase(billRepo, nil),
		30,
		func() time.Time { return fixedNow },
	)

	r := gin.New()
	if authenticated {
		r.Use(func(c *gin.Context) {
			c.Set(string(middleware.UserIDKey), testUserID)
			c.Next()
		})
	}
	r.GET("/forecast", forecastController.Get)
	r.GET("/forecast/accounts", forecastController.ListAccounts)
	r.POST("/forecast/scenarios", forecastController.RunScenarios)
	r.GET("/forecast/recurring", forecastController.Recurring)
	r.GET("/bills/upcoming", billController.Upcoming)
	r.POST("/bills/:id/pay", billController.MarkPaid)
	return r
}

func serve(r *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestForecastController_Get(t *testing.T) {
	repo := &fakeForecastRepository{snapshot: salarySnapshot()}
	r := newTestRouter(repo, &fakeBillRepository{}, true)

	rec := serve(r, http.MethodGet, "/forecast?horizon=3&based_on=6&as_of=2024-06-15", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.ForecastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-06-15", resp.AsOf)
	assert.Equal(t, 3, resp.HorizonMonths)
	assert.Equal(t, "1000.00", resp.CurrentBalance)
	assert.Equal(t, 10, resp.TransactionCount)
	require.Len(t, resp.MonthlyProjections, 3)
	assert.Equal(t, "2024-07", resp.MonthlyProjections[0].Month)
	assert.False(t, resp.Cached)
	assert.Nil(t, resp.AccountID)
}

func TestForecastController_GetDefaults(t *testing.T) {
	repo := &fakeForecastRepository{snapshot: salarySnapshot()}
	r := newTestRouter(repo, &fakeBillRepository{}, true)

	rec := serve(r, http.MethodGet, "/forecast", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.ForecastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-06-15", resp.AsOf)
	assert.Equal(t, 6, resp.HorizonMonths)
	assert.Equal(t, 6, resp.BasedOnMonths)
	assert.Len(t, resp.MonthlyProjections, 6)
}

func TestForecastController_GetErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		repoErr    error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "non-numeric horizon",
			target:     "/forecast?horizon=abc",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidHorizon),
		},
		{
			name:       "horizon out of range",
			target:     "/forecast?horizon=0",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidHorizon),
		},
		{
			name:       "based_on out of range",
			target:     "/forecast?based_on=61",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidBasedOnMonths),
		},
		{
			name:       "malformed as_of",
			target:     "/forecast?as_of=15/06/2024",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidAsOfDate),
		},
		{
			name:       "malformed account id",
			target:     "/forecast?account_id=nope",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidForecastRequest),
		},
		{
			name:       "unknown account",
			target:     "/forecast?account_id=" + uuid.NewString(),
			wantStatus: http.StatusNotFound,
			wantCode:   string(domainerror.ErrCodeAccountNotFound),
		},
		{
			name:       "repository failure",
			target:     "/forecast",
			repoErr:    errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   string(domainerror.ErrCodeForecastInternalError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeForecastRepository{snapshot: salarySnapshot(), err: tt.repoErr}
			r := newTestRouter(repo, &fakeBillRepository{}, true)

			rec := serve(r, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestForecastController_Unauthenticated(t *testing.T) {
	repo := &fakeForecastRepository{snapshot: salarySnapshot()}
	r := newTestRouter(repo, &fakeBillRepository{}, false)

	for _, target := range []string{"/forecast", "/forecast/accounts", "/forecast/recurring", "/bills/upcoming"} {
		rec := serve(r, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Equal(t, string(domainerror.ErrCodeMissingToken), decodeError(t, rec).Code, target)
	}
}

func TestForecastController_ListAccounts(t *testing.T) {
	snapshot := salarySnapshot()
	snapshot.Accounts = append(snapshot.Accounts, entity.Account{
		ID:      uuid.New(),
		UserID:  testUserID,
		Name:    "Savings",
		Balance: decimal.NewFromInt(5000),
	})
	r := newTestRouter(&fakeForecastRepository{snapshot: snapshot}, &fakeBillRepository{}, true)

	rec := serve(r, http.MethodGet, "/forecast/accounts?horizon=2&as_of=2024-06-15", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.AccountForecastListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Accounts, 2)

	byName := map[string]dto.AccountForecastResponse{}
	for _, a := range resp.Accounts {
		byName[a.AccountName] = a
	}
	assert.Equal(t, "1000.00", byName["Checking"].Forecast.CurrentBalance)
	assert.Equal(t, 10, byName["Checking"].Forecast.TransactionCount)
	assert.Equal(t, "5000.00", byName["Savings"].Forecast.CurrentBalance)
	assert.Equal(t, 0, byName["Savings"].Forecast.TransactionCount)
	assert.Len(t, byName["Savings"].Forecast.MonthlyProjections, 2)
}

func TestForecastController_RunScenarios(t *testing.T) {
	r := newTestRouter(&fakeForecastRepository{snapshot: salarySnapshot()}, &fakeBillRepository{}, true)

	body, err := json.Marshal(dto.RunScenariosRequest{
		StartingBalance: "1000",
		AverageIncome:   3000,
		AverageExpenses: 2000,
		HorizonMonths:   2,
		AsOf:            "2024-06-15",
		Scenarios: []dto.ScenarioDefinition{
			{Name: "steady", IncomeFactor: 1, ExpenseFactor: 1},
		},
	})
	require.NoError(t, err)

	rec := serve(r, http.MethodPost, "/forecast/scenarios", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.ScenarioRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Scenarios, 1)
	assert.Equal(t, "steady", resp.Scenarios[0].Name)
	require.Len(t, resp.Scenarios[0].MonthlyProjections, 2)
	assert.Equal(t, "2024-07", resp.Scenarios[0].MonthlyProjections[0].Month)
	assert.Equal(t, "3000.00", resp.Scenarios[0].EndingBalance)
}

func TestForecastController_RunScenariosErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{
			name:     "malformed json",
			body:     `{"starting_balance":`,
			wantCode: string(domainerror.ErrCodeInvalidForecastRequest),
		},
		{
			name:     "missing horizon",
			body:     `{"starting_balance":"100"}`,
			wantCode: string(domainerror.ErrCodeInvalidForecastRequest),
		},
		{
			name:     "non-decimal starting balance",
			body:     `{"starting_balance":"lots","horizon_months":3}`,
			wantCode: string(domainerror.ErrCodeInvalidForecastRequest),
		},
		{
			name:     "malformed as_of",
			body:     `{"starting_balance":"100","horizon_months":3,"as_of":"June"}`,
			wantCode: string(domainerror.ErrCodeInvalidAsOfDate),
		},
		{
			name:     "horizon too long",
			body:     `{"starting_balance":"100","horizon_months":61}`,
			wantCode: string(domainerror.ErrCodeInvalidHorizon),
		},
		{
			name:     "duplicate scenario names",
			body:     `{"starting_balance":"100","horizon_months":3,"scenarios":[{"name":"a","income_factor":1,"expense_factor":1},{"name":"a","income_factor":1,"expense_factor":1}]}`,
			wantCode: string(domainerror.ErrCodeInvalidScenario),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeForecastRepository{snapshot: salarySnapshot()}, &fakeBillRepository{}, true)

			rec := serve(r, http.MethodPost, "/forecast/scenarios", []byte(tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestForecastController_Recurring(t *testing.T) {
	repo := &fakeForecastRepository{snapshot: salarySnapshot()}
	r := newTestRouter(repo, &fakeBillRepository{}, true)

	rec := serve(r, http.MethodGet, "/forecast/recurring?months=6&as_of=2024-06-15", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.RecurringPatternListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.TransactionCount)
	assert.Equal(t, "2023-12-15", resp.From)
	require.Len(t, resp.Patterns, 2)
	for _, p := range resp.Patterns {
		assert.Equal(t, "monthly", p.Frequency)
		assert.Len(t, p.Occurrences, 5)
	}

	rec = serve(r, http.MethodGet, "/forecast/recurring?months=many", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(domainerror.ErrCodeInvalidBasedOnMonths), decodeError(t, rec).Code)
}

func TestBillController_Upcoming(t *testing.T) {
	billRepo := &fakeBillRepository{bills: []*entity.Bill{
		{
			ID:       uuid.New(),
			UserID:   testUserID,
			Name:     "Rent",
			Amount:   decimal.NewFromInt(1200),
			Schedule: entity.BillSchedule{Frequency: entity.BillFrequencyMonthly, DueDay: 1},
		},
		{
			ID:       uuid.New(),
			UserID:   testUserID,
			Name:     "Phone",
			Amount:   decimal.NewFromInt(50),
			Schedule: entity.BillSchedule{Frequency: entity.BillFrequencyMonthly, DueDay: 20},
		},
	}}
	r := newTestRouter(&fakeForecastRepository{snapshot: salarySnapshot()}, billRepo, true)

	rec := serve(r, http.MethodGet, "/bills/upcoming", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.UpcomingBillListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Bills, 2)
	assert.Equal(t, "Phone", resp.Bills[0].Name)
	assert.Equal(t, "2024-06-20", resp.Bills[0].DueDate)
	assert.Equal(t, 5, resp.Bills[0].DaysUntilDue)
	assert.Equal(t, "Rent", resp.Bills[1].Name)
	assert.Equal(t, "2024-07-01", resp.Bills[1].DueDate)
	assert.Equal(t, "1250.00", resp.TotalDue)

	rec = serve(r, http.MethodGet, "/bills/upcoming?within_days=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Bills, 1)
	assert.Equal(t, "Phone", resp.Bills[0].Name)

	rec = serve(r, http.MethodGet, "/bills/upcoming?within_days=400", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(domainerror.ErrCodeInvalidBillRequest), decodeError(t, rec).Code)
}

func TestBillController_MarkPaid(t *testing.T) {
	billID := uuid.New()
	newRepo := func() *fakeBillRepository {
		return &fakeBillRepository{bills: []*entity.Bill{{
			ID:       billID,
			UserID:   testUserID,
			Name:     "Rent",
			Amount:   decimal.NewFromInt(1200),
			Schedule: entity.BillSchedule{Frequency: entity.BillFrequencyMonthly, DueDay: 1},
		}}}
	}

	t.Run("success", func(t *testing.T) {
		billRepo := newRepo()
		r := newTestRouter(&fakeForecastRepository{snapshot: salarySnapshot()}, billRepo, true)

		rec := serve(r, http.MethodPost, "/bills/"+billID.String()+"/pay", []byte(`{"paid_date":"2024-06-01"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp dto.BillResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Schedule.LastPaidDate)
		require.NotNil(t, resp.Schedule.NextDueDate)
		assert.Equal(t, "2024-06-01", *resp.Schedule.LastPaidDate)
		assert.Equal(t, "2024-07-01", *resp.Schedule.NextDueDate)
		require.NotNil(t, billRepo.updated)
	})

	errorTests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid id",
			path:       "/bills/not-a-uuid/pay",
			body:       `{"paid_date":"2024-06-01"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidBillID),
		},
		{
			name:       "missing paid date",
			path:       "/bills/" + billID.String() + "/pay",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidBillRequest),
		},
		{
			name:       "malformed paid date",
			path:       "/bills/" + billID.String() + "/pay",
			body:       `{"paid_date":"01.06.2024"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidPaidDate),
		},
		{
			name:       "unknown bill",
			path:       "/bills/" + uuid.NewString() + "/pay",
			body:       `{"paid_date":"2024-06-01"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   string(domainerror.ErrCodeBillNotFound),
		},
	}

	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeForecastRepository{snapshot: salarySnapshot()}, newRepo(), true)

			rec := serve(r, http.MethodPost, tt.path, []byte(tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}
