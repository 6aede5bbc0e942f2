package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/middleware"
	"github.com/toyfront/storefront-gateway/models"
	"github.com/toyfront/storefront-gateway/services"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// GetCart returns the current cart and totals for the user.
func (cc *CartController) GetCart(c *gin.Context) {
	summary, err := cc.cart.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AddItem adds an item, merging quantity into an existing line for the same
// product.
func (cc *CartController) AddItem(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	summary, err := cc.cart.AddItem(c.Request.Context(), middleware.CurrentUserID(c), item)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RemoveItem removes the line for a product id.
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	summary, err := cc.cart.RemoveItem(c.Request.Context(), middleware.CurrentUserID(c), productID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpdateQuantity sets a line quantity; zero or negative removes the line.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	summary, err := cc.cart.UpdateQuantity(c.Request.Context(), middleware.CurrentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ClearCart removes all items from the cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.cart.Clear(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
