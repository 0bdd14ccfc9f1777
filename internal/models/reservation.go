package models

import "time"

// Reservation records a customer's hold on a quantity of an item.
type Reservation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	RsvNo      string    `json:"rsv_no" gorm:"uniqueIndex;type:varchar(20);not null"`
	ReservedBy string    `json:"reserved_by"`
	Email      string    `json:"email"`
	Date       string    `json:"date"`
	Quantity   int       `json:"quantity"`
	StoreNo    string    `json:"store_no"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
}
