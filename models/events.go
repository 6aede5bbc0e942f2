package models

import "time"

// OrderEvent is published to Kafka when a checkout places an order or a
// payment settles. Best-effort only; the order of record lives in the store.
type OrderEvent struct {
	Event     string     `json:"event"` // e.g. "order.placed", "order.paid"
	UserID    string     `json:"user_id"`
	OrderID   int64      `json:"order_id"`
	Channel   string     `json:"channel"`
	Total     string     `json:"total"`
	Items     []CartItem `json:"items,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
