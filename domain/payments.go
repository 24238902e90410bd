package domain

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

type (
	Payments struct {
		ID            uint      `json:"payment_id" gorm:"primaryKey"`
		OrderID       uint      `json:"order_id" gorm:"column:order_id;not null;index"`
		AmountPaid    float64   `json:"amount_paid" gorm:"column:amount_paid;not null;default:0"`
		PendingAmount float64   `json:"pending_amount" gorm:"column:pending_amount;not null;default:0"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"-"`
	}

	// PaymentWithOrder is a payment joined to its order, with the derived
	// paid/pending status computed at read time.
	PaymentWithOrder struct {
		ID            uint      `json:"payment_id"`
		OrderID       uint      `json:"order_id"`
		ProductName   string    `json:"product_name"`
		ImageURL      string    `json:"image_url"`
		OrderStatus   string    `json:"order_status"`
		AmountPaid    float64   `json:"amount_paid"`
		PendingAmount float64   `json:"pending_amount"`
		Status        string    `json:"status"`
		CreatedAt     time.Time `json:"created_at"`
	}
)

func (Payments) TableName() string {
	return "payments"
}

// DerivedStatus reports completed once nothing remains outstanding.
func (p Payments) DerivedStatus() string {
	if p.PendingAmount > 0 {
		return PaymentStatusPending
	}
	return PaymentStatusCompleted
}
