package woocommerce

import (
	"context"
	"fmt"
	"net/http"

	"github.com/toyfront/storefront-gateway/models"
)

// ListProducts returns a page of catalog products.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) ([]models.Product, *models.Page, error) {
	var products []models.Product
	page, err := c.do(ctx, http.MethodGet, "/wc/v3/products", opts.values(), "", nil, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, page, nil
}

// GetProduct returns a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/wc/v3/products/%d", id), nil, "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a catalog product.
func (c *Client) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	var created models.Product
	if _, err := c.do(ctx, http.MethodPost, "/wc/v3/products", nil, "", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct updates a catalog product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error) {
	var updated models.Product
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/wc/v3/products/%d", id), nil, "", product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStock sets a product's stock quantity; used by inventory management.
func (c *Client) UpdateStock(ctx context.Context, id int64, quantity int) (*models.Product, error) {
	payload := map[string]interface{}{
		"stock_quantity": quantity,
		"manage_stock":   true,
	}
	var updated models.Product
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/wc/v3/products/%d", id), nil, "", payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct deletes a catalog product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/wc/v3/products/%d", id), nil, "", nil, nil)
	return err
}

// ListCategories returns a page of product categories.
func (c *Client) ListCategories(ctx context.Context, opts ListOptions) ([]models.Category, *models.Page, error) {
	var categories []models.Category
	page, err := c.do(ctx, http.MethodGet, "/wc/v3/products/categories", opts.values(), "", nil, &categories)
	if err != nil {
		return nil, nil, err
	}
	return categories, page, nil
}

// ListCollections returns the merchandising collections from the bespoke
// endpoint.
func (c *Client) ListCollections(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	if _, err := c.do(ctx, http.MethodGet, "/toyfront/v1/collections", nil, "", nil, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}
