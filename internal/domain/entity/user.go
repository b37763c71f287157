package entity

import (
	"strconv"
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash, never the clear text.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	Cart      Cart
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cart maps a product id (rendered as a decimal string, since it is a JSON
// object key) to a size label to a quantity. The mapping is sparse: a key
// that is absent reads as quantity zero.
type Cart map[string]map[string]int

// ItemKey renders a product id as a cart key.
func ItemKey(productID int64) string {
	return strconv.FormatInt(productID, 10)
}

// Quantity returns the quantity for (productID, size); absent keys read as 0.
func (c Cart) Quantity(productID int64, size string) int {
	if c == nil {
		return 0
	}
	return c[ItemKey(productID)][size]
}

// Increment bumps the quantity for (productID, size) by one, creating the
// nested entry when absent.
func (c Cart) Increment(productID int64, size string) {
	key := ItemKey(productID)
	sizes := c[key]
	if sizes == nil {
		sizes = make(map[string]int)
		c[key] = sizes
	}
	sizes[size]++
}

// Decrement lowers the quantity for (productID, size) by one, clamped at
// zero. Decrementing an absent entry is a no-op.
func (c Cart) Decrement(productID int64, size string) {
	sizes := c[ItemKey(productID)]
	if sizes == nil {
		return
	}
	if sizes[size] > 0 {
		sizes[size]--
	}
}
