package models

import "time"

// Product represents a catalog product. The ID is the caller-supplied
// business key, distinct from any store-internal identifier.
type Product struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name      string    `json:"name"`
	Reference string    `json:"reference" gorm:"index;type:varchar(100)"`
	UnitPrice float64   `json:"unitPrice"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
