package woocommerce

import (
	"context"
	"net/http"
	"net/url"

	"github.com/toyfront/storefront-gateway/models"
)

// Login authenticates against the custom WordPress login endpoint and
// returns the store token plus the user profile.
func (c *Client) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/custom/v1/login", nil, "", payload, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.User, nil
}

// Me returns the profile behind a store token.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	q := url.Values{}
	q.Set("context", "edit")
	if _, err := c.do(ctx, http.MethodGet, "/wp/v2/users/me", q, token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GuestCheckout obtains a customer id for an anonymous checkout.
func (c *Client) GuestCheckout(ctx context.Context, req *models.GuestCheckoutRequest) (*models.GuestCheckoutResponse, error) {
	var resp models.GuestCheckoutResponse
	if _, err := c.do(ctx, http.MethodPost, "/toyfront/v1/guest-checkout", nil, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ShippingCost prices a shipping method for a destination and cart.
func (c *Client) ShippingCost(ctx context.Context, req *models.ShippingCostRequest) (*models.ShippingCostResponse, error) {
	var resp models.ShippingCostResponse
	if _, err := c.do(ctx, http.MethodPost, "/toyfront/v1/shipping-cost", nil, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ShippingZones returns the configured shipping zones and their methods.
func (c *Client) ShippingZones(ctx context.Context) ([]models.ShippingZone, error) {
	var zones []models.ShippingZone
	if _, err := c.do(ctx, http.MethodGet, "/toyfront/v1/shipping-zones", nil, "", nil, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// DashboardMetrics returns the back-office summary block.
func (c *Client) DashboardMetrics(ctx context.Context, token string) (*models.DashboardMetrics, error) {
	var metrics models.DashboardMetrics
	if _, err := c.do(ctx, http.MethodGet, "/toyfront/v1/dashboard-metrics", nil, token, nil, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// Analytics returns the sales time series for a date range.
func (c *Client) Analytics(ctx context.Context, token, from, to string) (*models.Analytics, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	var analytics models.Analytics
	if _, err := c.do(ctx, http.MethodGet, "/toyfront/v1/analytics", q, token, nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// SubmitPOSOrder submits a point-of-sale order to the store.
func (c *Client) SubmitPOSOrder(ctx context.Context, token string, req *models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if _, err := c.do(ctx, http.MethodPost, "/toyfront/v1/pos/orders", nil, token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListPOSOrders returns orders placed through the POS channel.
func (c *Client) ListPOSOrders(ctx context.Context, token string, opts ListOptions) ([]models.Order, *models.Page, error) {
	var orders []models.Order
	page, err := c.do(ctx, http.MethodGet, "/toyfront/v1/pos/orders", opts.values(), token, nil, &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, page, nil
}
