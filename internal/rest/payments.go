package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"shopmate/domain"
	"shopmate/pkg/logger"
	"shopmate/pkg/response"
)

type PaymentsService interface {
	GetPayments(ctx context.Context, userID uint) ([]domain.PaymentWithOrder, error)
}

type PaymentsHandler struct {
	paymentsService PaymentsService
	timeout         time.Duration
}

func NewPaymentsHandler(paymentsService PaymentsService) *PaymentsHandler {
	return &PaymentsHandler{
		paymentsService: paymentsService,
		timeout:         10 * time.Second,
	}
}

// GetPayments serves GET /api/app/payments: the caller's payments joined to
// their orders. Data is a bare array.
func (h *PaymentsHandler) GetPayments(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "User not authenticated", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	payments, err := h.paymentsService.GetPayments(ctx, userID)
	if err != nil {
		logger.Error("Failed to get payments", err)
		return c.JSON(http.StatusInternalServerError, response.Error("INTERNAL_ERROR", "Failed to retrieve payment status", nil))
	}

	if payments == nil {
		payments = []domain.PaymentWithOrder{}
	}

	return c.JSON(http.StatusOK, response.Success("Payment status retrieved successfully", payments))
}
