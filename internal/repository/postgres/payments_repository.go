package postgres

import (
	"context"

	"gorm.io/gorm"

	"shopmate/domain"
)

type PaymentsRepository struct {
	DB *gorm.DB
}

func NewPaymentsRepository(db *gorm.DB) *PaymentsRepository {
	return &PaymentsRepository{
		DB: db,
	}
}

// FindByUser joins payments to their order and scopes the result to orders
// owned by the given user, newest payment first.
func (r *PaymentsRepository) FindByUser(ctx context.Context, userID uint) ([]domain.PaymentWithOrder, error) {
	var rows []domain.PaymentWithOrder

	err := r.DB.WithContext(ctx).
		Table("payments").
		Select(`payments.id, payments.order_id, payments.amount_paid, payments.pending_amount, payments.created_at,
			orders.product_name, orders.image_url, orders.status AS order_status`).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.user_id = ?", userID).
		Order("payments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
