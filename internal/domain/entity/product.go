package entity

import "time"

// DefaultSizes is the size range assigned when a product is created without
// an explicit size list.
var DefaultSizes = []string{"S", "M", "L", "XL", "XXL"}

// Product is a catalog entry. IDs are sequential, assigned by the store, and
// never reused after deletion.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	NewPrice    float64   `json:"new_price"`
	OldPrice    float64   `json:"old_price"`
	Description string    `json:"description"`
	Sizes       []string  `json:"sizes"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}
