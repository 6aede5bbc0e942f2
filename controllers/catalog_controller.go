package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/models"
	"github.com/toyfront/storefront-gateway/woocommerce"
)

// CatalogController fronts the store's product, category, order and
// customer APIs for the storefront and back office.
type CatalogController struct {
	store *woocommerce.Client
}

func NewCatalogController(store *woocommerce.Client) *CatalogController {
	return &CatalogController{store: store}
}

func listOptions(c *gin.Context) woocommerce.ListOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))
	return woocommerce.ListOptions{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		OrderBy: c.Query("orderby"),
		Order:   c.Query("order"),
	}
}

// writePage forwards pagination state to the response headers the same way
// the store reports it.
func writePage(c *gin.Context, page *models.Page) {
	if page == nil {
		return
	}
	c.Header("X-WP-Total", strconv.Itoa(page.Total))
	c.Header("X-WP-TotalPages", strconv.Itoa(page.TotalPages))
}

// ListProducts returns a page of products.
func (cc *CatalogController) ListProducts(c *gin.Context) {
	products, page, err := cc.store.ListProducts(c.Request.Context(), listOptions(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	writePage(c, page)
	c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product.
func (cc *CatalogController) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	product, err := cc.store.GetProduct(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a catalog product.
func (cc *CatalogController) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	created, err := cc.store.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProduct updates a catalog product.
func (cc *CatalogController) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	updated, err := cc.store.UpdateProduct(c.Request.Context(), id, &product)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateStock sets a product's stock quantity.
func (cc *CatalogController) UpdateStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req struct {
		Quantity int `json:"quantity" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	updated, err := cc.store.UpdateStock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProduct deletes a catalog product.
func (cc *CatalogController) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	if err := cc.store.DeleteProduct(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// ListCategories returns a page of product categories.
func (cc *CatalogController) ListCategories(c *gin.Context) {
	categories, page, err := cc.store.ListCategories(c.Request.Context(), listOptions(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	writePage(c, page)
	c.JSON(http.StatusOK, categories)
}

// ListCollections returns the merchandising collections.
func (cc *CatalogController) ListCollections(c *gin.Context) {
	collections, err := cc.store.ListCollections(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, collections)
}

// ListOrders returns a page of orders for the back office.
func (cc *CatalogController) ListOrders(c *gin.Context) {
	orders, page, err := cc.store.ListOrders(c.Request.Context(), listOptions(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	writePage(c, page)
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns a single order.
func (cc *CatalogController) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	order, err := cc.store.GetOrder(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order to a new status.
func (cc *CatalogController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	order, err := cc.store.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListCustomers returns a page of customers.
func (cc *CatalogController) ListCustomers(c *gin.Context) {
	customers, page, err := cc.store.ListCustomers(c.Request.Context(), listOptions(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	writePage(c, page)
	c.JSON(http.StatusOK, customers)
}

// UpdateCustomer updates a customer record.
func (cc *CatalogController) UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	updated, err := cc.store.UpdateCustomer(c.Request.Context(), id, &customer)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetCustomer returns a single customer.
func (cc *CatalogController) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	customer, err := cc.store.GetCustomer(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
