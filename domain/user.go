package domain

import "time"

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"column:name;not null"`
	Phone     string    `json:"phone" gorm:"column:phone;unique;not null"`
	Address   string    `json:"address" gorm:"column:address;not null"`
	Email     string    `json:"email" gorm:"column:email;unique;not null"`
	Password  string    `json:"-" gorm:"column:password;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
