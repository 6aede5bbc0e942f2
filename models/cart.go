package models

import "time"

// CartItem is a single line in a user's cart. Prices arrive from the store
// as decimal strings and are kept that way until totals are computed.
type CartItem struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Image     string `json:"image,omitempty"`
}

// Cart holds all line items for one user. At most one entry per product id.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UpdateQuantityRequest is the payload for setting a line quantity.
// A quantity of zero or less removes the line.
type UpdateQuantityRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// CartSummary is the cart plus its derived totals.
type CartSummary struct {
	Cart       *Cart  `json:"cart"`
	TotalItems int    `json:"total_items"`
	TotalPrice string `json:"total_price"`
}
