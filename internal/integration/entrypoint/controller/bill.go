// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/forecasting/internal/application/usecase/bill"
	domainerror "github.com/finance-tracker/forecasting/internal/domain/error"
	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/middleware"
)

// BillController handles bill endpoints.
type BillController struct {
	listUpcomingUseCase *bill.ListUpcomingBillsUseCase
	markPaidUseCase     *bill.MarkBillPaidUseCase
	defaultWithinDays   int
	now                 func() time.Time
}

// NewBillController creates a new bill controller instance.
func NewBillController(
	listUpcomingUseCase *bill.ListUpcomingBillsUseCase,
	markPaidUseCase *bill.MarkBillPaidUseCase,
	defaultWithinDays int,
	now func() time.Time,
) *BillController {
	if now == nil {
		now = time.Now
	}
	return &BillController{
		listUpcomingUseCase: listUpcomingUseCase,
		markPaidUseCase:     markPaidUseCase,
		defaultWithinDays:   defaultWithinDays,
		now:                 now,
	}
}

// Upcoming handles GET /bills/upcoming requests.
func (c *BillController) Upcoming(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	withinDays, ok := parseIntQuery(ctx, "within_days", c.defaultWithinDays, domainerror.ErrCodeInvalidBillRequest)
	if !ok {
		return
	}

	asOf, err := parseDateOrToday(ctx.Query("as_of"), c.now)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid as_of format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidBillRequest),
		})
		return
	}

	output, err := c.listUpcomingUseCase.Execute(ctx.Request.Context(), bill.ListUpcomingBillsInput{
		UserID:     userID,
		AsOf:       asOf,
		WithinDays: withinDays,
	})
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpcomingBillListResponse(output))
}

// MarkPaid handles POST /bills/:id/pay requests.
func (c *BillController) MarkPaid(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	billID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid bill ID format",
			Code:  string(domainerror.ErrCodeInvalidBillID),
		})
		return
	}

	var req dto.MarkBillPaidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidBillRequest),
		})
		return
	}

	paidDate, err := time.Parse(dto.DateLayout, req.PaidDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: domainerror.ErrInvalidPaidDate.Error(),
			Code:  string(domainerror.ErrCodeInvalidPaidDate),
		})
		return
	}

	output, err := c.markPaidUseCase.Execute(ctx.Request.Context(), bill.MarkBillPaidInput{
		UserID:   userID,
		BillID:   billID,
		PaidDate: paidDate,
	})
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillResponse(output.Bill))
}

// handleBillError handles bill errors and returns appropriate HTTP responses.
func (c *BillController) handleBillError(ctx *gin.Context, err error) {
	var billErr *domainerror.BillError
	if errors.As(err, &billErr) {
		statusCode := c.getStatusCodeForBillError(billErr.Code)
		if statusCode == http.StatusInternalServerError {
			slog.Error("Bill request failed", "code", billErr.Code, "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: billErr.Message,
			Code:  string(billErr.Code),
		})
		return
	}

	slog.Error("Bill request failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeBillInternalError),
	})
}

// getStatusCodeForBillError maps bill error codes to HTTP status codes.
func (c *BillController) getStatusCodeForBillError(code domainerror.BillErrorCode) int {
	switch {
	case strings.HasPrefix(string(code), "BIL-01"):
		return http.StatusBadRequest
	case strings.HasPrefix(string(code), "BIL-02"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
