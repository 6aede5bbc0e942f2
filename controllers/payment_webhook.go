package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/toyfront/storefront-gateway/payments"
	"github.com/toyfront/storefront-gateway/services"
)

// PaymentWebhookController receives Stripe webhook events and feeds payment
// outcomes back into the checkout wizard.
type PaymentWebhookController struct {
	stripeSvc *payments.StripeService
	checkout  *services.CheckoutService
	logger    *zap.Logger
}

func NewPaymentWebhookController(stripeSvc *payments.StripeService, checkout *services.CheckoutService, logger *zap.Logger) *PaymentWebhookController {
	return &PaymentWebhookController{stripeSvc: stripeSvc, checkout: checkout, logger: logger}
}

// Handle verifies the webhook signature and dispatches payment intent
// events. Unrecognized event types are acknowledged and ignored.
func (pc *PaymentWebhookController) Handle(c *gin.Context) {
	event, err := pc.stripeSvc.ParseWebhook(c.Request)
	if err != nil {
		pc.logger.Warn("Invalid webhook signature", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	intentID := paymentIntentID(event)
	if intentID == "" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	ctx := c.Request.Context()
	switch event.Type {
	case "payment_intent.succeeded":
		err = pc.checkout.HandlePaymentSucceeded(ctx, intentID)
	case "payment_intent.payment_failed":
		err = pc.checkout.HandlePaymentFailed(ctx, intentID)
	}
	if err != nil {
		pc.logger.Error("Webhook handling failed",
			zap.String("type", string(event.Type)), zap.String("intent_id", intentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func paymentIntentID(event stripe.Event) string {
	if id, ok := event.Data.Object["id"].(string); ok {
		return id
	}
	return ""
}
