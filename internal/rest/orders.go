package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"shopmate/business/orders"
	"shopmate/pkg/logger"
	"shopmate/pkg/response"
)

type OrdersService interface {
	GetOrders(ctx context.Context, userID uint, query orders.Query) (orders.Result, error)
}

type OrdersHandler struct {
	ordersService OrdersService
	timeout       time.Duration
}

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
		timeout:       30 * time.Second,
	}
}

// GetOrders serves GET /api/app/orders. A free-text message takes precedence
// over explicit status/startDate/endDate parameters.
func (h *OrdersHandler) GetOrders(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "User not authenticated", nil))
	}

	query := orders.Query{
		Message: c.QueryParam("message"),
	}

	if query.Message == "" {
		query.Status = c.QueryParam("status")

		if raw := c.QueryParam("startDate"); raw != "" {
			startDate, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, response.Error(
					"VALIDATION_ERROR", "Invalid startDate format. Use YYYY-MM-DD", nil,
				))
			}
			query.StartDate = &startDate
		}

		if raw := c.QueryParam("endDate"); raw != "" {
			endDate, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, response.Error(
					"VALIDATION_ERROR", "Invalid endDate format. Use YYYY-MM-DD", nil,
				))
			}
			query.EndDate = &endDate
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.ordersService.GetOrders(ctx, userID, query)
	if err != nil {
		logger.Error("Failed to get orders", err)
		return c.JSON(http.StatusInternalServerError, response.Error("INTERNAL_ERROR", "Failed to retrieve orders", nil))
	}

	data := map[string]interface{}{
		"orders": result.Orders,
	}
	if result.OrderFilters != nil {
		data["order_filters"] = result.OrderFilters
	}
	if result.RecentOnly {
		data["recent_only"] = true
	}

	return c.JSON(http.StatusOK, response.Success(result.Message, data))
}
