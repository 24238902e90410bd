package orders

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"shopmate/domain"
	"shopmate/pkg/logger"
)

type OrdersRepository interface {
	FindFiltered(ctx context.Context, userID uint, status *string, startDate, endDate *time.Time, limit int) ([]domain.Orders, error)
}

type FilterExtractor interface {
	ExtractOrderFilters(ctx context.Context, message string) *domain.OrderFilters
}

type (
	// Query carries either a free-text message or explicit filters from query
	// parameters. StartDate/EndDate are already parsed to day precision.
	Query struct {
		Message   string
		Status    string
		StartDate *time.Time
		EndDate   *time.Time
	}

	Result struct {
		Orders       []domain.Orders
		OrderFilters *domain.OrderFilters
		RecentOnly   bool
		Message      string
	}
)

type OrdersService struct {
	ordersRepo OrdersRepository
	extractor  FilterExtractor
	// now is swappable so the "this month" window is testable
	now func() time.Time
}

func NewOrdersService(ordersRepo OrdersRepository, extractor FilterExtractor) *OrdersService {
	return &OrdersService{
		ordersRepo: ordersRepo,
		extractor:  extractor,
		now:        time.Now,
	}
}

var statusWordPattern = regexp.MustCompile(`\b(shipped|cancelled|canceled|pending|delivered|confirmed)\b`)

// NormalizeStatus lowercases, maps the US spelling "canceled" onto the stored
// "cancelled", and drops anything outside the five-value vocabulary.
func NormalizeStatus(raw string) *string {
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "canceled" {
		status = domain.OrderStatusCancelled
	}

	if !domain.ValidOrderStatuses[status] {
		return nil
	}

	return &status
}

func (s *OrdersService) GetOrders(ctx context.Context, userID uint, query Query) (Result, error) {
	var (
		status       *string
		startDate    *time.Time
		endDate      *time.Time
		recentOnly   bool
		orderFilters *domain.OrderFilters
	)

	if query.Message != "" {
		orderFilters = s.extractor.ExtractOrderFilters(ctx, query.Message)
		if orderFilters != nil {
			if orderFilters.Status != nil {
				status = NormalizeStatus(*orderFilters.Status)
			}
			if orderFilters.RecentOnly != nil && *orderFilters.RecentOnly {
				recentOnly = true
			}
			if orderFilters.ThisMonthOnly != nil && *orderFilters.ThisMonthOnly {
				startDate, endDate = s.currentMonthWindow()
			}
		}

		// The extractor is best effort: fall back to a plain keyword scan so
		// an unreachable provider still honors obvious filters.
		lowerMessage := strings.ToLower(query.Message)
		if status == nil {
			if match := statusWordPattern.FindString(lowerMessage); match != "" {
				status = NormalizeStatus(match)
			}
		}
		if startDate == nil && strings.Contains(lowerMessage, "this month") {
			startDate, endDate = s.currentMonthWindow()
		}
	} else {
		if query.Status != "" {
			status = NormalizeStatus(query.Status)
		}
		startDate = query.StartDate
		endDate = query.EndDate
	}

	if startDate != nil {
		d := startOfDay(*startDate)
		startDate = &d
	}
	if endDate != nil {
		d := endOfDay(*endDate)
		endDate = &d
	}

	limit := 0
	if recentOnly {
		limit = 1
	}

	orders, err := s.ordersRepo.FindFiltered(ctx, userID, status, startDate, endDate, limit)
	if err != nil {
		logger.Error("Failed to fetch orders", err)
		return Result{}, err
	}

	return Result{
		Orders:       orders,
		OrderFilters: orderFilters,
		RecentOnly:   recentOnly,
		Message:      renderOrdersMessage(orders, status, startDate, endDate, recentOnly),
	}, nil
}

func (s *OrdersService) currentMonthWindow() (*time.Time, *time.Time) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	return &start, &end
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func renderOrdersMessage(orders []domain.Orders, status *string, startDate, endDate *time.Time, recentOnly bool) string {
	hasWindow := startDate != nil && endDate != nil

	if len(orders) == 0 {
		switch {
		case status != nil && hasWindow:
			return fmt.Sprintf("You don't have any %s orders this month. Would you like to browse our deals?", *status)
		case status != nil:
			return fmt.Sprintf("You don't have any %s orders at the moment. Would you like to browse our deals?", *status)
		case hasWindow:
			return "You don't have any orders this month. Would you like to browse our deals?"
		default:
			return "You don't have any orders yet. Would you like to browse our deals?"
		}
	}

	var header string
	switch {
	case recentOnly:
		header = "Here is your most recent order:"
	case status != nil && hasWindow:
		header = fmt.Sprintf("Here are your %s orders from this month:", *status)
	case status != nil:
		header = fmt.Sprintf("Here are your %s orders:", *status)
	case hasWindow:
		header = "Here are your orders from this month:"
	default:
		header = "Here are your orders:"
	}

	lines := make([]string, 0, len(orders))
	for _, order := range orders {
		lines = append(lines, fmt.Sprintf("• %s - Status: %s\n Date: %s",
			order.ProductName, order.Status, order.CreatedAt.Format("02/01/2006")))
	}

	return header + "\n\n" + strings.Join(lines, "\n\n")
}
