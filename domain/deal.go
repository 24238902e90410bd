package domain

import "time"

type Deal struct {
	ID          uint      `json:"deal_id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"column:title;not null"`
	Description string    `json:"description" gorm:"column:description;not null"`
	Price       float64   `json:"price" gorm:"column:price;not null"`
	ImageURL    string    `json:"image_url" gorm:"column:image_url;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

func (Deal) TableName() string {
	return "deals"
}

// PriceRange is an inclusive price window extracted from a chat message.
// A nil bound means "no bound".
type PriceRange struct {
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}
