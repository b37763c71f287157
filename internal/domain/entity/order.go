package entity

import "time"

// Order records a completed checkout: the payment provider's transaction
// reference and the shipping address. There is no update or cancel
// lifecycle.
type Order struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PaymentRef string    `json:"payment_ref"`
	Address    string    `json:"address"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}
