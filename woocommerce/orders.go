package woocommerce

import (
	"context"
	"fmt"
	"net/http"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/models"
)

var errCouponNotFound = apperrors.ErrNotFound.Wrap(fmt.Errorf("coupon not found"))

// CreateOrder creates an order in the store.
func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if _, err := c.do(ctx, http.MethodPost, "/wc/v3/orders", nil, "", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder returns a single order by id.
func (c *Client) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/wc/v3/orders/%d", id), nil, "", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns a page of orders.
func (c *Client) ListOrders(ctx context.Context, opts ListOptions) ([]models.Order, *models.Page, error) {
	var orders []models.Order
	page, err := c.do(ctx, http.MethodGet, "/wc/v3/orders", opts.values(), "", nil, &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, page, nil
}

// UpdateOrderStatus moves an order to a new status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	payload := map[string]string{"status": status}
	var order models.Order
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/wc/v3/orders/%d", id), nil, "", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListCustomers returns a page of customers.
func (c *Client) ListCustomers(ctx context.Context, opts ListOptions) ([]models.Customer, *models.Page, error) {
	var customers []models.Customer
	page, err := c.do(ctx, http.MethodGet, "/wc/v3/customers", opts.values(), "", nil, &customers)
	if err != nil {
		return nil, nil, err
	}
	return customers, page, nil
}

// GetCustomer returns a single customer by id.
func (c *Client) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/wc/v3/customers/%d", id), nil, "", nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomer updates a customer record.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, customer *models.Customer) (*models.Customer, error) {
	var updated models.Customer
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/wc/v3/customers/%d", id), nil, "", customer, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetCoupon looks a coupon up by its code.
func (c *Client) GetCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	q := ListOptions{}.values()
	q.Set("code", code)
	var coupons []models.Coupon
	if _, err := c.do(ctx, http.MethodGet, "/wc/v3/coupons", q, "", nil, &coupons); err != nil {
		return nil, err
	}
	if len(coupons) == 0 {
		return nil, errCouponNotFound
	}
	return &coupons[0], nil
}
