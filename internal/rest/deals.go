package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"shopmate/business/deals"
	"shopmate/pkg/logger"
	"shopmate/pkg/response"
)

type DealsService interface {
	GetDeals(ctx context.Context, query deals.Query) (deals.Result, error)
}

type DealsHandler struct {
	dealsService DealsService
	timeout      time.Duration
}

func NewDealsHandler(dealsService DealsService) *DealsHandler {
	return &DealsHandler{
		dealsService: dealsService,
		timeout:      30 * time.Second,
	}
}

// GetDeals serves GET /api/app/deals. A free-text message takes precedence
// over explicit minPrice/maxPrice parameters.
func (h *DealsHandler) GetDeals(c echo.Context) error {
	query := deals.Query{
		Message: c.QueryParam("message"),
	}

	if query.Message == "" {
		if raw := c.QueryParam("minPrice"); raw != "" {
			minPrice, err := strconv.ParseFloat(raw, 64)
			if err != nil || minPrice < 0 {
				return c.JSON(http.StatusBadRequest, response.Error(
					"VALIDATION_ERROR", "Invalid minPrice. Must be a valid positive number.", nil,
				))
			}
			query.MinPrice = &minPrice
		}

		if raw := c.QueryParam("maxPrice"); raw != "" {
			maxPrice, err := strconv.ParseFloat(raw, 64)
			if err != nil || maxPrice < 0 {
				return c.JSON(http.StatusBadRequest, response.Error(
					"VALIDATION_ERROR", "Invalid maxPrice. Must be a valid positive number.", nil,
				))
			}
			query.MaxPrice = &maxPrice
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.dealsService.GetDeals(ctx, query)
	if err != nil {
		logger.Error("Failed to get deals", err)
		return c.JSON(http.StatusInternalServerError, response.Error("INTERNAL_ERROR", "Failed to retrieve deals", nil))
	}

	data := map[string]interface{}{
		"deals": result.Deals,
	}
	if result.PriceRange != nil {
		data["price_range"] = result.PriceRange
	}

	return c.JSON(http.StatusOK, response.Success(result.Message, data))
}
