package postgres

import (
	"context"

	"gorm.io/gorm"

	"shopmate/domain"
)

type DealRepository struct {
	DB *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{
		DB: db,
	}
}

// FindByPriceRange returns deals inside the inclusive window, newest first.
// Nil bounds are open ends.
func (r *DealRepository) FindByPriceRange(ctx context.Context, minPrice, maxPrice *float64) ([]domain.Deal, error) {
	query := r.DB.WithContext(ctx).Model(&domain.Deal{})

	if minPrice != nil {
		query = query.Where("price >= ?", *minPrice)
	}
	if maxPrice != nil {
		query = query.Where("price <= ?", *maxPrice)
	}

	var deals []domain.Deal
	if err := query.Order("created_at DESC").Find(&deals).Error; err != nil {
		return nil, err
	}

	return deals, nil
}
