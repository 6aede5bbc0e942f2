package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/middleware"
	"github.com/toyfront/storefront-gateway/models"
	"github.com/toyfront/storefront-gateway/services"
	"github.com/toyfront/storefront-gateway/woocommerce"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	store    *woocommerce.Client
}

func NewCheckoutController(checkout *services.CheckoutService, store *woocommerce.Client) *CheckoutController {
	return &CheckoutController{checkout: checkout, store: store}
}

// GetSession returns the current wizard state for the user.
func (cc *CheckoutController) GetSession(c *gin.Context) {
	session, err := cc.checkout.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SavedAddress returns the cached delivery address for form prefill.
func (cc *CheckoutController) SavedAddress(c *gin.Context) {
	address, err := cc.checkout.SavedAddress(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if address == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no saved address"})
		return
	}
	c.JSON(http.StatusOK, address)
}

// SetDelivery records delivery details and advances the wizard.
func (cc *CheckoutController) SetDelivery(c *gin.Context) {
	var delivery models.DeliveryDetails
	if err := c.ShouldBindJSON(&delivery); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	session, err := cc.checkout.SetDelivery(c.Request.Context(), middleware.CurrentUserID(c), &delivery)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetShipping prices and selects a shipping method.
func (cc *CheckoutController) SetShipping(c *gin.Context) {
	var req models.SetShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	session, err := cc.checkout.SetShipping(c.Request.Context(), middleware.CurrentUserID(c), req.MethodID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ApplyCoupon applies a coupon code to the session.
func (cc *CheckoutController) ApplyCoupon(c *gin.Context) {
	var req models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	session, err := cc.checkout.ApplyCoupon(c.Request.Context(), middleware.CurrentUserID(c), req.Code)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// PlaceOrder creates the remote order and opens the payment intent.
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	resp, err := cc.checkout.PlaceOrder(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ShippingZones lists the store's shipping zones and methods for the
// shipping step.
func (cc *CheckoutController) ShippingZones(c *gin.Context) {
	zones, err := cc.store.ShippingZones(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, zones)
}
