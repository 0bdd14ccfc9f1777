package models

import (
	"time"

	"gorm.io/datatypes"
)

// Item is a single stock entry of a store.
type Item struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	StoreNo     string         `json:"store_no" gorm:"index;type:varchar(100)"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Quantity    int            `json:"quantity"`
	Gallery     datatypes.JSON `json:"gallery"`
	Views       int            `json:"views"`
	CreatedAt   time.Time      `json:"created_at"`
}
