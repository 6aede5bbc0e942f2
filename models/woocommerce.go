package models

import "time"

// Product is a WooCommerce catalog product. Prices are decimal strings on
// the wire.
type Product struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	SKU           string         `json:"sku"`
	Status        string         `json:"status"`
	Price         string         `json:"price"`
	RegularPrice  string         `json:"regular_price"`
	SalePrice     string         `json:"sale_price"`
	StockQuantity *int           `json:"stock_quantity"`
	StockStatus   string         `json:"stock_status"`
	Categories    []Category     `json:"categories"`
	Images        []ProductImage `json:"images"`
	Weight        string         `json:"weight"`
	DateCreated   time.Time      `json:"date_created"`
}

// ProductImage is one image attached to a product.
type ProductImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Category is a WooCommerce product category.
type Category struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent int64  `json:"parent"`
	Count  int    `json:"count"`
}

// Collection is a merchandising grouping of products served by the bespoke
// store endpoints (not a WooCommerce native concept).
type Collection struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ProductIDs  []int64 `json:"product_ids"`
}

// OrderLineItem is a line on a WooCommerce order.
type OrderLineItem struct {
	ID        int64  `json:"id,omitempty"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal,omitempty"`
	Total     string `json:"total,omitempty"`
}

// OrderAddress is the billing or shipping block on an order.
type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// OrderShippingLine carries the selected shipping method and its cost.
type OrderShippingLine struct {
	MethodID    string `json:"method_id"`
	MethodTitle string `json:"method_title"`
	Total       string `json:"total"`
	TotalTax    string `json:"total_tax,omitempty"`
}

// Order is a WooCommerce order.
type Order struct {
	ID            int64               `json:"id"`
	Number        string              `json:"number"`
	Status        string              `json:"status"`
	Currency      string              `json:"currency"`
	CustomerID    int64               `json:"customer_id"`
	Total         string              `json:"total"`
	TotalTax      string              `json:"total_tax"`
	ShippingTotal string              `json:"shipping_total"`
	DiscountTotal string              `json:"discount_total"`
	PaymentMethod string              `json:"payment_method"`
	SalesChannel  string              `json:"sales_channel,omitempty"`
	Billing       OrderAddress        `json:"billing"`
	Shipping      OrderAddress        `json:"shipping"`
	LineItems     []OrderLineItem     `json:"line_items"`
	ShippingLines []OrderShippingLine `json:"shipping_lines"`
	CouponLines   []OrderCouponLine   `json:"coupon_lines,omitempty"`
	DateCreated   time.Time           `json:"date_created"`
}

// OrderCouponLine records a coupon applied to an order.
type OrderCouponLine struct {
	Code     string `json:"code"`
	Discount string `json:"discount,omitempty"`
}

// CreateOrderRequest is the payload sent to the WooCommerce orders API.
type CreateOrderRequest struct {
	CustomerID    int64               `json:"customer_id,omitempty"`
	PaymentMethod string              `json:"payment_method"`
	SetPaid       bool                `json:"set_paid"`
	Status        string              `json:"status,omitempty"`
	SalesChannel  string              `json:"sales_channel,omitempty"`
	Billing       OrderAddress        `json:"billing"`
	Shipping      OrderAddress        `json:"shipping"`
	LineItems     []OrderLineItem     `json:"line_items"`
	ShippingLines []OrderShippingLine `json:"shipping_lines,omitempty"`
	CouponLines   []OrderCouponLine   `json:"coupon_lines,omitempty"`
}

// Customer is a WooCommerce customer record.
type Customer struct {
	ID        int64        `json:"id"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Username  string       `json:"username"`
	Billing   OrderAddress `json:"billing"`
	Shipping  OrderAddress `json:"shipping"`
}

// Coupon is a WooCommerce coupon.
type Coupon struct {
	ID            int64      `json:"id"`
	Code          string     `json:"code"`
	DiscountType  string     `json:"discount_type"` // percent, fixed_cart, fixed_product
	Amount        string     `json:"amount"`
	MinimumAmount string     `json:"minimum_amount"`
	UsageLimit    int        `json:"usage_limit"`
	UsageCount    int        `json:"usage_count"`
	DateExpires   *time.Time `json:"date_expires"`
}

// ShippingZone is one zone from the bespoke shipping-zones endpoint.
type ShippingZone struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name"`
	Regions []string         `json:"regions"`
	Methods []ShippingMethod `json:"methods"`
}

// ShippingMethod is a shipping method offered within a zone.
type ShippingMethod struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cost  string `json:"cost"`
}

// ShippingCostRequest asks the store to price shipping for a destination.
type ShippingCostRequest struct {
	MethodID   string `json:"method_id"`
	Country    string `json:"country"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	CartTotal  string `json:"cart_total"`
	WeightKg   string `json:"weight_kg,omitempty"`
}

// ShippingCostResponse is the priced shipping method.
type ShippingCostResponse struct {
	MethodID    string `json:"method_id"`
	MethodTitle string `json:"method_title"`
	Cost        string `json:"cost"`
	Tax         string `json:"tax"`
}

// GuestCheckoutRequest creates (or reuses) a customer record for an
// anonymous checkout.
type GuestCheckoutRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// GuestCheckoutResponse carries the customer id the order will be placed
// under.
type GuestCheckoutResponse struct {
	CustomerID int64 `json:"customer_id"`
	Existing   bool  `json:"existing"`
}

// DashboardMetrics is the summary block for the back-office dashboard.
type DashboardMetrics struct {
	TotalSales     string `json:"total_sales"`
	OrdersToday    int    `json:"orders_today"`
	OrdersPending  int    `json:"orders_pending"`
	LowStockCount  int    `json:"low_stock_count"`
	CustomersTotal int    `json:"customers_total"`
}

// AnalyticsPoint is one bucket in the analytics time series.
type AnalyticsPoint struct {
	Date   string `json:"date"`
	Sales  string `json:"sales"`
	Orders int    `json:"orders"`
}

// Analytics is the dashboard analytics series plus channel breakdown.
type Analytics struct {
	Series    []AnalyticsPoint  `json:"series"`
	ByChannel map[string]string `json:"by_channel"`
}

// Page describes pagination state reported by the store via the
// X-WP-Total / X-WP-TotalPages response headers.
type Page struct {
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
}
