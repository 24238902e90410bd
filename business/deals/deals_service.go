package deals

import (
	"context"
	"fmt"
	"strings"

	"shopmate/domain"
	"shopmate/pkg/logger"
)

type DealsRepository interface {
	FindByPriceRange(ctx context.Context, minPrice, maxPrice *float64) ([]domain.Deal, error)
}

type PriceExtractor interface {
	ExtractPriceRange(ctx context.Context, message string) *domain.PriceRange
}

type (
	// Query carries either a free-text message (slots extracted via the LLM)
	// or explicit bounds from query parameters, never both.
	Query struct {
		Message  string
		MinPrice *float64
		MaxPrice *float64
	}

	Result struct {
		Deals []domain.Deal
		// PriceRange echoes the extracted slots when the query came from a
		// chat message.
		PriceRange *domain.PriceRange
		Message    string
	}
)

type DealsService struct {
	dealsRepo DealsRepository
	extractor PriceExtractor
}

func NewDealsService(dealsRepo DealsRepository, extractor PriceExtractor) *DealsService {
	return &DealsService{
		dealsRepo: dealsRepo,
		extractor: extractor,
	}
}

func (s *DealsService) GetDeals(ctx context.Context, query Query) (Result, error) {
	minPrice := query.MinPrice
	maxPrice := query.MaxPrice

	var priceRange *domain.PriceRange
	if query.Message != "" {
		priceRange = s.extractor.ExtractPriceRange(ctx, query.Message)
		if priceRange != nil {
			minPrice = priceRange.MinPrice
			maxPrice = priceRange.MaxPrice
		} else {
			// Extraction found nothing: show the full catalog.
			minPrice = nil
			maxPrice = nil
		}
	}

	deals, err := s.dealsRepo.FindByPriceRange(ctx, minPrice, maxPrice)
	if err != nil {
		logger.Error("Failed to fetch deals", err)
		return Result{}, err
	}

	return Result{
		Deals:      deals,
		PriceRange: priceRange,
		Message:    renderDealsMessage(deals, minPrice, maxPrice),
	}, nil
}

func renderDealsMessage(deals []domain.Deal, minPrice, maxPrice *float64) string {
	if len(deals) == 0 {
		switch {
		case minPrice != nil && maxPrice != nil:
			return fmt.Sprintf("No deals found in the price range ₹%v - ₹%v.", *minPrice, *maxPrice)
		case minPrice != nil:
			return fmt.Sprintf("No deals found above ₹%v.", *minPrice)
		case maxPrice != nil:
			return fmt.Sprintf("No deals found under ₹%v.", *maxPrice)
		default:
			return "No deals available at the moment."
		}
	}

	header := "Here are our latest deals! 🎉"
	switch {
	case minPrice != nil && maxPrice != nil:
		header = fmt.Sprintf("Here are deals in the price range ₹%v - ₹%v! 🎉", *minPrice, *maxPrice)
	case minPrice != nil:
		header = fmt.Sprintf("Here are deals above ₹%v! 🎉", *minPrice)
	case maxPrice != nil:
		header = fmt.Sprintf("Here are deals under ₹%v! 🎉", *maxPrice)
	}

	lines := make([]string, 0, len(deals))
	for _, deal := range deals {
		lines = append(lines, fmt.Sprintf("• %s - ₹%v\n  %s", deal.Title, deal.Price, deal.Description))
	}

	return header + "\n\n" + strings.Join(lines, "\n\n")
}
