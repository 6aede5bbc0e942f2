package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/kafka"
	"github.com/toyfront/storefront-gateway/models"
	"github.com/toyfront/storefront-gateway/repository"
)

// CheckoutRepository is the persistence boundary for wizard sessions.
type CheckoutRepository interface {
	GetSession(ctx context.Context, userID string) (*models.CheckoutSession, error)
	SaveSession(ctx context.Context, session *models.CheckoutSession) error
	DeleteSession(ctx context.Context, userID string) error
	IndexPaymentIntent(ctx context.Context, intentID, userID string) error
	UserByPaymentIntent(ctx context.Context, intentID string) (string, error)
}

// StoreClient is the slice of the WooCommerce client the checkout needs.
type StoreClient interface {
	GuestCheckout(ctx context.Context, req *models.GuestCheckoutRequest) (*models.GuestCheckoutResponse, error)
	ShippingCost(ctx context.Context, req *models.ShippingCostRequest) (*models.ShippingCostResponse, error)
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error)
	GetCoupon(ctx context.Context, code string) (*models.Coupon, error)
}

// PaymentGateway opens payment intents for placed orders.
type PaymentGateway interface {
	CreatePaymentIntent(amount int64, currency string, orderID string) (string, error)
}

// CheckoutService drives the four-step checkout wizard:
// needs_delivery -> needs_shipping -> ready_to_order -> awaiting_payment -> complete.
// An order cannot be placed until both delivery details and a shipping
// method are present. Remote failures surface once and leave the session
// where it was; there is no retry or compensation.
type CheckoutService struct {
	sessions  CheckoutRepository
	cart      *CartService
	addresses repository.AddressRepository
	store     StoreClient
	payments  PaymentGateway
	producer  *kafka.Producer
	currency  string
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	sessions CheckoutRepository,
	cart *CartService,
	addresses repository.AddressRepository,
	store StoreClient,
	payments PaymentGateway,
	producer *kafka.Producer,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		sessions:  sessions,
		cart:      cart,
		addresses: addresses,
		store:     store,
		payments:  payments,
		producer:  producer,
		currency:  "usd",
		logger:    logger,
	}
}

// Get returns the user's wizard session, starting a fresh one at the
// delivery step if none exists.
func (s *CheckoutService) Get(ctx context.Context, userID string) (*models.CheckoutSession, error) {
	session, err := s.sessions.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &models.CheckoutSession{UserID: userID, State: models.StateNeedsDelivery}
	}
	return session, nil
}

// SavedAddress returns the cached delivery address for prefilling the
// delivery form, or nil when none is cached.
func (s *CheckoutService) SavedAddress(ctx context.Context, userID string) (*models.DeliveryDetails, error) {
	address, err := s.addresses.FindByUserID(ctx, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return address.Delivery(), nil
}

// SetDelivery records delivery details and advances to the shipping step.
// A session without a customer id obtains one through the guest-checkout
// endpoint. The address is cached locally, best effort.
func (s *CheckoutService) SetDelivery(ctx context.Context, userID string, delivery *models.DeliveryDetails) (*models.CheckoutSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if session.CustomerID == 0 {
		guest, err := s.store.GuestCheckout(ctx, &models.GuestCheckoutRequest{
			Email:     delivery.Email,
			FirstName: delivery.FirstName,
			LastName:  delivery.LastName,
			Phone:     delivery.Phone,
		})
		if err != nil {
			return nil, err
		}
		session.CustomerID = guest.CustomerID
	}

	session.Delivery = delivery
	if session.State == models.StateNeedsDelivery {
		session.State = models.StateNeedsShipping
	}
	// Changing the address invalidates any previously priced shipping.
	session.ShippingMethod = ""
	session.ShippingCost = ""
	session.ShippingTax = ""
	if session.State == models.StateReadyToOrder {
		session.State = models.StateNeedsShipping
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	cached := &models.SavedAddress{}
	cached.FromDelivery(userID, delivery)
	if err := s.addresses.Save(ctx, cached); err != nil {
		s.logger.Warn("Failed to cache delivery address", zap.String("user_id", userID), zap.Error(err))
	}

	return session, nil
}

// SetShipping prices the chosen method for the session's delivery address
// and advances to the review step. Requires delivery details.
func (s *CheckoutService) SetShipping(ctx context.Context, userID, methodID string) (*models.CheckoutSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Delivery == nil {
		return nil, apperrors.ErrCheckoutIncomplete
	}

	summary, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cost, err := s.store.ShippingCost(ctx, &models.ShippingCostRequest{
		MethodID:   methodID,
		Country:    session.Delivery.Country,
		State:      session.Delivery.State,
		PostalCode: session.Delivery.PostalCode,
		CartTotal:  summary.TotalPrice,
	})
	if err != nil {
		return nil, err
	}

	session.ShippingMethod = cost.MethodID
	session.ShippingCost = cost.Cost
	session.ShippingTax = cost.Tax
	session.State = models.StateReadyToOrder

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ApplyCoupon validates a store coupon against the cart total and records
// the discount on the session.
func (s *CheckoutService) ApplyCoupon(ctx context.Context, userID, code string) (*models.CheckoutSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	coupon, err := s.store.GetCoupon(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon.DateExpires != nil && time.Now().After(*coupon.DateExpires) {
		return nil, apperrors.ErrValidation.Wrap(fmt.Errorf("coupon %s has expired", code))
	}
	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return nil, apperrors.ErrValidation.Wrap(fmt.Errorf("coupon %s usage limit reached", code))
	}

	summary, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cartTotal, _ := decimal.NewFromString(summary.TotalPrice)

	if min, err := decimal.NewFromString(coupon.MinimumAmount); err == nil && cartTotal.LessThan(min) {
		return nil, apperrors.ErrValidation.Wrap(fmt.Errorf("minimum order value of %s required", coupon.MinimumAmount))
	}

	amount, err := decimal.NewFromString(coupon.Amount)
	if err != nil {
		return nil, apperrors.ErrUpstream.Wrap(fmt.Errorf("coupon %s has a malformed amount", code))
	}

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case "percent":
		discount = cartTotal.Mul(amount).Div(decimal.NewFromInt(100))
	case "fixed_cart":
		discount = amount
		if discount.GreaterThan(cartTotal) {
			discount = cartTotal
		}
	default:
		return nil, apperrors.ErrValidation.Wrap(fmt.Errorf("unsupported coupon type %q", coupon.DiscountType))
	}

	session.CouponCode = coupon.Code
	session.Discount = discount.String()

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// PlaceOrder creates the remote order and opens a payment intent for the
// grand total, advancing the session to awaiting_payment. Refused unless
// both delivery details and a shipping method have been set.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string) (*models.PlaceOrderResponse, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.State == models.StateAwaitingPayment || session.State == models.StateComplete {
		return nil, apperrors.ErrConflict.Wrap(fmt.Errorf("order %d already placed", session.OrderID))
	}
	if session.Delivery == nil || session.ShippingMethod == "" {
		return nil, apperrors.ErrCheckoutIncomplete
	}

	summary, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summary.Cart.Items) == 0 {
		return nil, apperrors.ErrCartNotFound
	}

	order, err := s.store.CreateOrder(ctx, s.buildOrderRequest(session, summary.Cart))
	if err != nil {
		// Session state is left untouched; the user stays on the review
		// step with the error surfaced once.
		return nil, err
	}
	session.OrderID = order.ID

	total := s.grandTotal(summary, session)
	intentID, err := s.payments.CreatePaymentIntent(toMinorUnits(total), s.currency, fmt.Sprintf("%d", order.ID))
	if err != nil {
		// The remote order exists in whatever status the store left it;
		// there is no compensating cancel.
		s.logger.Error("Payment intent creation failed after order create",
			zap.String("user_id", userID), zap.Int64("order_id", order.ID), zap.Error(err))
		_ = s.sessions.SaveSession(ctx, session)
		return nil, apperrors.ErrPaymentFailed.Wrap(err)
	}

	session.PaymentIntentID = intentID
	session.State = models.StateAwaitingPayment
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	if err := s.sessions.IndexPaymentIntent(ctx, intentID, userID); err != nil {
		s.logger.Warn("Failed to index payment intent", zap.String("intent_id", intentID), zap.Error(err))
	}

	s.emit(ctx, models.OrderEvent{
		Event:     "order.placed",
		UserID:    userID,
		OrderID:   order.ID,
		Channel:   models.ChannelWebsite,
		Total:     total.String(),
		Items:     summary.Cart.Items,
		Timestamp: time.Now(),
	})

	return &models.PlaceOrderResponse{
		OrderID:         order.ID,
		PaymentIntentID: intentID,
		Total:           total.String(),
		State:           session.State,
	}, nil
}

// HandlePaymentSucceeded completes the checkout behind a settled payment
// intent: the cart is cleared, the remote order is moved to processing and
// the session is discarded, so the next checkout starts a fresh wizard.
func (s *CheckoutService) HandlePaymentSucceeded(ctx context.Context, intentID string) error {
	userID, err := s.sessions.UserByPaymentIntent(ctx, intentID)
	if err != nil {
		return err
	}
	if userID == "" {
		s.logger.Warn("Payment intent has no checkout session", zap.String("intent_id", intentID))
		return nil
	}

	session, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.sessions.DeleteSession(ctx, userID); err != nil {
		return err
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear cart after payment", zap.String("user_id", userID), zap.Error(err))
	}

	if session.OrderID != 0 {
		if _, err := s.store.UpdateOrderStatus(ctx, session.OrderID, "processing"); err != nil {
			s.logger.Warn("Failed to mark order processing", zap.Int64("order_id", session.OrderID), zap.Error(err))
		}
	}

	s.emit(ctx, models.OrderEvent{
		Event:     "order.paid",
		UserID:    userID,
		OrderID:   session.OrderID,
		Channel:   models.ChannelWebsite,
		Timestamp: time.Now(),
	})
	return nil
}

// HandlePaymentFailed records a failed payment. The session stays at
// awaiting_payment and the order remains in whatever status the store left
// it; the user can retry from the payment step.
func (s *CheckoutService) HandlePaymentFailed(ctx context.Context, intentID string) error {
	userID, err := s.sessions.UserByPaymentIntent(ctx, intentID)
	if err != nil {
		return err
	}
	if userID == "" {
		return nil
	}
	s.logger.Warn("Payment failed", zap.String("user_id", userID), zap.String("intent_id", intentID))
	return nil
}

func (s *CheckoutService) buildOrderRequest(session *models.CheckoutSession, cart *models.Cart) *models.CreateOrderRequest {
	d := session.Delivery
	address := models.OrderAddress{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Address1:  d.Street,
		City:      d.City,
		State:     d.State,
		Postcode:  d.PostalCode,
		Country:   d.Country,
		Email:     d.Email,
		Phone:     d.Phone,
	}

	lines := make([]models.OrderLineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, models.OrderLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	req := &models.CreateOrderRequest{
		CustomerID:    session.CustomerID,
		PaymentMethod: "stripe",
		SetPaid:       false,
		Status:        "pending",
		SalesChannel:  models.ChannelWebsite,
		Billing:       address,
		Shipping:      address,
		LineItems:     lines,
		ShippingLines: []models.OrderShippingLine{{
			MethodID: session.ShippingMethod,
			Total:    session.ShippingCost,
			TotalTax: session.ShippingTax,
		}},
	}
	if session.CouponCode != "" {
		req.CouponLines = []models.OrderCouponLine{{Code: session.CouponCode}}
	}
	return req
}

// grandTotal is cart total minus discount plus shipping cost and tax,
// floored at zero.
func (s *CheckoutService) grandTotal(summary *models.CartSummary, session *models.CheckoutSession) decimal.Decimal {
	total, _ := decimal.NewFromString(summary.TotalPrice)
	if d, err := decimal.NewFromString(session.Discount); err == nil {
		total = total.Sub(d)
	}
	if c, err := decimal.NewFromString(session.ShippingCost); err == nil {
		total = total.Add(c)
	}
	if t, err := decimal.NewFromString(session.ShippingTax); err == nil {
		total = total.Add(t)
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

func (s *CheckoutService) emit(ctx context.Context, event models.OrderEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.SendOrderEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish order event", zap.String("event", event.Event), zap.Error(err))
	}
}

// toMinorUnits converts a decimal money amount to integer minor units.
func toMinorUnits(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
