package models

import "time"

// CheckoutState is the current step of the checkout wizard.
type CheckoutState string

const (
	StateNeedsDelivery   CheckoutState = "needs_delivery"
	StateNeedsShipping   CheckoutState = "needs_shipping"
	StateReadyToOrder    CheckoutState = "ready_to_order"
	StateAwaitingPayment CheckoutState = "awaiting_payment"
	StateComplete        CheckoutState = "complete"
)

// DeliveryDetails is the address and contact data collected in the first
// checkout step.
type DeliveryDetails struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

// CheckoutSession is the per-user wizard state. It lives in Redis for the
// duration of a checkout and is discarded afterwards.
type CheckoutSession struct {
	UserID          string           `json:"user_id"`
	State           CheckoutState    `json:"state"`
	CustomerID      int64            `json:"customer_id,omitempty"`
	Delivery        *DeliveryDetails `json:"delivery,omitempty"`
	ShippingMethod  string           `json:"shipping_method,omitempty"`
	ShippingCost    string           `json:"shipping_cost,omitempty"`
	ShippingTax     string           `json:"shipping_tax,omitempty"`
	CouponCode      string           `json:"coupon_code,omitempty"`
	Discount        string           `json:"discount,omitempty"`
	OrderID         int64            `json:"order_id,omitempty"`
	PaymentIntentID string           `json:"payment_intent_id,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// SetShippingRequest selects a shipping method for the session.
type SetShippingRequest struct {
	MethodID string `json:"method_id" binding:"required"`
}

// ApplyCouponRequest applies a coupon code to the session.
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// PlaceOrderResponse is returned once the remote order exists and a payment
// intent has been opened for it.
type PlaceOrderResponse struct {
	OrderID         int64         `json:"order_id"`
	PaymentIntentID string        `json:"payment_intent_id"`
	Total           string        `json:"total"`
	State           CheckoutState `json:"state"`
}
