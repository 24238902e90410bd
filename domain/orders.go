package domain

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatuses is the closed status vocabulary. Anything outside it is
// treated as "no status filter", never rejected.
var ValidOrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusConfirmed: true,
	OrderStatusShipped:   true,
	OrderStatusDelivered: true,
	OrderStatusCancelled: true,
}

type Orders struct {
	ID          uint      `json:"order_id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"column:user_id;not null;index"`
	ProductName string    `json:"product_name" gorm:"column:product_name;not null"`
	ImageURL    string    `json:"image_url" gorm:"column:image_url;not null"`
	Status      string    `json:"status" gorm:"column:status;not null;default:pending"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

func (Orders) TableName() string {
	return "orders"
}

// OrderFilters is the slot set extracted from a chat message. Nil fields mean
// the extractor found nothing for that slot.
type OrderFilters struct {
	Status        *string `json:"status"`
	ThisMonthOnly *bool   `json:"this_month_only"`
	RecentOnly    *bool   `json:"recent_only"`
}
