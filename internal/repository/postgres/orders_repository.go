package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shopmate/domain"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// FindFiltered returns the user's orders newest first. Status and the date
// window are optional; limit <= 0 means no limit.
func (r *OrdersRepository) FindFiltered(ctx context.Context, userID uint, status *string, startDate, endDate *time.Time, limit int) ([]domain.Orders, error) {
	query := r.DB.WithContext(ctx).Model(&domain.Orders{}).Where("user_id = ?", userID)

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var orders []domain.Orders
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}
