package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/models"
	"github.com/toyfront/storefront-gateway/services"
)

// ---- in-memory checkout repository ----

type memCheckoutRepo struct {
	sessions map[string]*models.CheckoutSession
	intents  map[string]string
}

func newMemCheckoutRepo() *memCheckoutRepo {
	return &memCheckoutRepo{
		sessions: make(map[string]*models.CheckoutSession),
		intents:  make(map[string]string),
	}
}

func (m *memCheckoutRepo) GetSession(_ context.Context, userID string) (*models.CheckoutSession, error) {
	return m.sessions[userID], nil
}
func (m *memCheckoutRepo) SaveSession(_ context.Context, s *models.CheckoutSession) error {
	m.sessions[s.UserID] = s
	return nil
}
func (m *memCheckoutRepo) DeleteSession(_ context.Context, userID string) error {
	delete(m.sessions, userID)
	return nil
}
func (m *memCheckoutRepo) IndexPaymentIntent(_ context.Context, intentID, userID string) error {
	m.intents[intentID] = userID
	return nil
}
func (m *memCheckoutRepo) UserByPaymentIntent(_ context.Context, intentID string) (string, error) {
	return m.intents[intentID], nil
}

// ---- mock store client ----

type mockStore struct {
	guestResp      *models.GuestCheckoutResponse
	guestErr       error
	shippingResp   *models.ShippingCostResponse
	shippingErr    error
	createdOrder   *models.Order
	createOrderErr error
	coupon         *models.Coupon
	couponErr      error
	statusUpdates  []string
}

func (m *mockStore) GuestCheckout(_ context.Context, _ *models.GuestCheckoutRequest) (*models.GuestCheckoutResponse, error) {
	return m.guestResp, m.guestErr
}
func (m *mockStore) ShippingCost(_ context.Context, _ *models.ShippingCostRequest) (*models.ShippingCostResponse, error) {
	return m.shippingResp, m.shippingErr
}
func (m *mockStore) CreateOrder(_ context.Context, _ *models.CreateOrderRequest) (*models.Order, error) {
	return m.createdOrder, m.createOrderErr
}
func (m *mockStore) UpdateOrderStatus(_ context.Context, _ int64, status string) (*models.Order, error) {
	m.statusUpdates = append(m.statusUpdates, status)
	return &models.Order{}, nil
}
func (m *mockStore) GetCoupon(_ context.Context, _ string) (*models.Coupon, error) {
	return m.coupon, m.couponErr
}

// ---- mock payment gateway ----

type mockPayments struct {
	intentID string
	err      error
	amounts  []int64
}

func (m *mockPayments) CreatePaymentIntent(amount int64, _ string, _ string) (string, error) {
	m.amounts = append(m.amounts, amount)
	return m.intentID, m.err
}

// ---- mock address repository ----

type memAddressRepo struct {
	byUser map[string]*models.SavedAddress
}

func newMemAddressRepo() *memAddressRepo {
	return &memAddressRepo{byUser: make(map[string]*models.SavedAddress)}
}

func (m *memAddressRepo) FindByUserID(_ context.Context, userID string) (*models.SavedAddress, error) {
	if a, ok := m.byUser[userID]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *memAddressRepo) Save(_ context.Context, a *models.SavedAddress) error {
	m.byUser[a.UserID] = a
	return nil
}
func (m *memAddressRepo) Delete(_ context.Context, userID string) error {
	delete(m.byUser, userID)
	return nil
}

// ---- helpers ----

type checkoutFixture struct {
	svc       *services.CheckoutService
	cart      *services.CartService
	sessions  *memCheckoutRepo
	addresses *memAddressRepo
	store     *mockStore
	payments  *mockPayments
}

func newCheckoutFixture(store *mockStore, payments *mockPayments) *checkoutFixture {
	cartSvc, _ := newTestCartService()
	sessions := newMemCheckoutRepo()
	addresses := newMemAddressRepo()
	svc := services.NewCheckoutService(sessions, cartSvc, addresses, store, payments, nil, zap.NewNop())
	return &checkoutFixture{
		svc:       svc,
		cart:      cartSvc,
		sessions:  sessions,
		addresses: addresses,
		store:     store,
		payments:  payments,
	}
}

func testDelivery() *models.DeliveryDetails {
	return &models.DeliveryDetails{
		FirstName:  "Ana",
		LastName:   "Silva",
		Email:      "ana@example.com",
		Phone:      "555-0101",
		Street:     "1 Toy Lane",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	}
}

// ---- tests ----

func TestGet_NewSessionStartsAtDelivery(t *testing.T) {
	f := newCheckoutFixture(&mockStore{}, &mockPayments{})

	session, err := f.svc.Get(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, models.StateNeedsDelivery, session.State)
}

func TestSetDelivery_ObtainsCustomerAndAdvances(t *testing.T) {
	store := &mockStore{guestResp: &models.GuestCheckoutResponse{CustomerID: 42}}
	f := newCheckoutFixture(store, &mockPayments{})
	ctx := context.Background()

	session, err := f.svc.SetDelivery(ctx, "u1", testDelivery())
	assert.NoError(t, err)
	assert.Equal(t, models.StateNeedsShipping, session.State)
	assert.Equal(t, int64(42), session.CustomerID)

	// Address is cached for the next visit.
	saved, err := f.svc.SavedAddress(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "Ana", saved.FirstName)
}

func TestSetDelivery_GuestCheckoutFailureSurfaces(t *testing.T) {
	store := &mockStore{guestErr: apperrors.ErrUpstream}
	f := newCheckoutFixture(store, &mockPayments{})

	_, err := f.svc.SetDelivery(context.Background(), "u1", testDelivery())
	assert.Error(t, err)

	session, _ := f.svc.Get(context.Background(), "u1")
	assert.Equal(t, models.StateNeedsDelivery, session.State)
}

func TestSetShipping_RequiresDelivery(t *testing.T) {
	f := newCheckoutFixture(&mockStore{}, &mockPayments{})

	_, err := f.svc.SetShipping(context.Background(), "u1", "flat_rate")
	assert.ErrorIs(t, err, apperrors.ErrCheckoutIncomplete)
}

func TestSetShipping_PricesMethodAndAdvances(t *testing.T) {
	store := &mockStore{
		guestResp:    &models.GuestCheckoutResponse{CustomerID: 42},
		shippingResp: &models.ShippingCostResponse{MethodID: "flat_rate", Cost: "12.00", Tax: "1.20"},
	}
	f := newCheckoutFixture(store, &mockPayments{})
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 1, Price: "100", Quantity: 1})
	_, _ = f.svc.SetDelivery(ctx, "u1", testDelivery())

	session, err := f.svc.SetShipping(ctx, "u1", "flat_rate")
	assert.NoError(t, err)
	assert.Equal(t, models.StateReadyToOrder, session.State)
	assert.Equal(t, "flat_rate", session.ShippingMethod)
	assert.Equal(t, "12.00", session.ShippingCost)
}

func TestPlaceOrder_RefusedWithoutDeliveryAndShipping(t *testing.T) {
	store := &mockStore{guestResp: &models.GuestCheckoutResponse{CustomerID: 42}}
	f := newCheckoutFixture(store, &mockPayments{})
	ctx := context.Background()

	// No delivery, no shipping.
	_, err := f.svc.PlaceOrder(ctx, "u1")
	assert.ErrorIs(t, err, apperrors.ErrCheckoutIncomplete)

	// Delivery alone is not enough.
	_, _ = f.svc.SetDelivery(ctx, "u1", testDelivery())
	_, err = f.svc.PlaceOrder(ctx, "u1")
	assert.ErrorIs(t, err, apperrors.ErrCheckoutIncomplete)
}

func TestPlaceOrder_EmptyCartRefused(t *testing.T) {
	store := &mockStore{
		guestResp:    &models.GuestCheckoutResponse{CustomerID: 42},
		shippingResp: &models.ShippingCostResponse{MethodID: "flat_rate", Cost: "5", Tax: "0"},
	}
	f := newCheckoutFixture(store, &mockPayments{})
	ctx := context.Background()

	_, _ = f.svc.SetDelivery(ctx, "u1", testDelivery())
	_, _ = f.svc.SetShipping(ctx, "u1", "flat_rate")

	_, err := f.svc.PlaceOrder(ctx, "u1")
	assert.ErrorIs(t, err, apperrors.ErrCartNotFound)
}

func TestPlaceOrder_HappyPath(t *testing.T) {
	store := &mockStore{
		guestResp:    &models.GuestCheckoutResponse{CustomerID: 42},
		shippingResp: &models.ShippingCostResponse{MethodID: "flat_rate", Cost: "10", Tax: "2"},
		createdOrder: &models.Order{ID: 777},
	}
	pay := &mockPayments{intentID: "pi_123"}
	f := newCheckoutFixture(store, pay)
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 1, Price: "1000", Quantity: 2})
	_, _ = f.svc.SetDelivery(ctx, "u1", testDelivery())
	_, _ = f.svc.SetShipping(ctx, "u1", "flat_rate")

	resp, err := f.svc.PlaceOrder(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(777), resp.OrderID)
	assert.Equal(t, "pi_123", resp.PaymentIntentID)
	assert.Equal(t, "2012", resp.Total)
	assert.Equal(t, models.StateAwaitingPayment, resp.State)

	// 2000 cart + 10 shipping + 2 tax, in minor units.
	assert.Equal(t, []int64{201200}, pay.amounts)
}

func TestPlaceOrder_OrderCreateFailureLeavesStateUntouched(t *testing.T) {
	store := &mockStore{
		guestResp:      &models.GuestCheckoutResponse{CustomerID: 42},
		shippingResp:   &models.ShippingCostResponse{MethodID: "flat_rate", Cost: "10", Tax: "0"},
		createOrderErr: apperrors.ErrUpstream,
	}
	f := newCheckoutFixture(store, &mockPayments{})
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 1, Price: "50", Quantity: 1})
	_, _ = f.svc.SetDelivery(ctx, "u1", testDelivery())
	_, _ = f.svc.SetShipping(ctx, "u1", "flat_rate")

	_, err := f.svc.PlaceOrder(ctx, "u1")
	assert.Error(t, err)

	session, _ := f.svc.Get(ctx, "u1")
	assert.Equal(t, models.StateReadyToOrder, session.State)
	assert.Zero(t, session.OrderID)
}

func TestPlaceOrder_PaymentIntentFailureKeepsOrderID(t *testing.T) {
	store := &mockStore{
		guestResp:    &models.GuestCheckoutResponse{CustomerID: 42},
		shippingResp: &models.ShippingCostResponse{MethodID: "flat_rate", Cost: "10", Tax: "0"},
		createdOrder: &models.Order{ID: 88},
	}
	pay := &mockPayments{err: errors.New("gateway down")}
	f := newCheckoutFixture(store, pay)
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 1, Price: "50", Quantity: 1})
	_, _ = f.svc.SetDelivery(ctx, "u1", testDelivery())
	_, _ = f.svc.SetShipping(ctx, "u1", "flat_rate")

	_, err := f.svc.PlaceOrder(ctx, "u1")
	assert.Error(t, err)

	// The remote order exists; no compensating cancel is attempted.
	session, _ := f.svc.Get(ctx, "u1")
	assert.Equal(t, int64(88), session.OrderID)
	assert.Equal(t, models.StateReadyToOrder, session.State)
}

func TestHandlePaymentSucceeded_ClearsCartAndDiscardsSession(t *testing.T) {
	store := &mockStore{
		guestResp:    &models.GuestCheckoutResponse{CustomerID: 42},
		shippingResp: &models.ShippingCostResponse{MethodID: "flat_rate", Cost: "10", Tax: "0"},
		createdOrder: &models.Order{ID: 777},
	}
	pay := &mockPayments{intentID: "pi_123"}
	f := newCheckoutFixture(store, pay)
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 1, Price: "100", Quantity: 1})
	_, _ = f.svc.SetDelivery(ctx, "u1", testDelivery())
	_, _ = f.svc.SetShipping(ctx, "u1", "flat_rate")
	_, _ = f.svc.PlaceOrder(ctx, "u1")

	assert.NoError(t, f.svc.HandlePaymentSucceeded(ctx, "pi_123"))

	summary, _ := f.cart.Get(ctx, "u1")
	assert.Equal(t, 0, summary.TotalItems)

	assert.Equal(t, []string{"processing"}, store.statusUpdates)

	// The session is discarded; the next checkout starts over.
	session, _ := f.svc.Get(ctx, "u1")
	assert.Equal(t, models.StateNeedsDelivery, session.State)
	assert.Zero(t, session.OrderID)
}

func TestPlaceOrder_ReplayFromAwaitingPaymentRefused(t *testing.T) {
	store := &mockStore{
		guestResp:    &models.GuestCheckoutResponse{CustomerID: 42},
		shippingResp: &models.ShippingCostResponse{MethodID: "flat_rate", Cost: "10", Tax: "0"},
		createdOrder: &models.Order{ID: 777},
	}
	pay := &mockPayments{intentID: "pi_123"}
	f := newCheckoutFixture(store, pay)
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 1, Price: "100", Quantity: 1})
	_, _ = f.svc.SetDelivery(ctx, "u1", testDelivery())
	_, _ = f.svc.SetShipping(ctx, "u1", "flat_rate")

	_, err := f.svc.PlaceOrder(ctx, "u1")
	assert.NoError(t, err)

	_, err = f.svc.PlaceOrder(ctx, "u1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Exactly one order and one payment intent were created.
	assert.Equal(t, []int64{11000}, pay.amounts)
}

func TestPlaceOrder_RefusedAfterCompletedCheckout(t *testing.T) {
	store := &mockStore{
		guestResp:    &models.GuestCheckoutResponse{CustomerID: 42},
		shippingResp: &models.ShippingCostResponse{MethodID: "flat_rate", Cost: "9", Tax: "0"},
		createdOrder: &models.Order{ID: 777},
	}
	pay := &mockPayments{intentID: "pi_123"}
	f := newCheckoutFixture(store, pay)
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 1, Price: "100", Quantity: 1})
	_, _ = f.svc.SetDelivery(ctx, "u1", testDelivery())
	_, _ = f.svc.SetShipping(ctx, "u1", "flat_rate")
	_, _ = f.svc.PlaceOrder(ctx, "u1")
	assert.NoError(t, f.svc.HandlePaymentSucceeded(ctx, "pi_123"))

	// A new item alone must not buy an order with the old shipping quote.
	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 2, Price: "1000", Quantity: 1})

	_, err := f.svc.PlaceOrder(ctx, "u1")
	assert.ErrorIs(t, err, apperrors.ErrCheckoutIncomplete)
	assert.Equal(t, []int64{10900}, pay.amounts)
}

func TestHandlePaymentSucceeded_UnknownIntentIgnored(t *testing.T) {
	f := newCheckoutFixture(&mockStore{}, &mockPayments{})
	assert.NoError(t, f.svc.HandlePaymentSucceeded(context.Background(), "pi_unknown"))
}

func TestApplyCoupon_PercentDiscount(t *testing.T) {
	store := &mockStore{
		coupon: &models.Coupon{Code: "SAVE10", DiscountType: "percent", Amount: "10", MinimumAmount: "0"},
	}
	f := newCheckoutFixture(store, &mockPayments{})
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 1, Price: "200", Quantity: 1})

	session, err := f.svc.ApplyCoupon(ctx, "u1", "SAVE10")
	assert.NoError(t, err)
	assert.Equal(t, "SAVE10", session.CouponCode)
	assert.Equal(t, "20", session.Discount)
}

func TestApplyCoupon_BelowMinimumRefused(t *testing.T) {
	store := &mockStore{
		coupon: &models.Coupon{Code: "BIG", DiscountType: "fixed_cart", Amount: "50", MinimumAmount: "500"},
	}
	f := newCheckoutFixture(store, &mockPayments{})
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 1, Price: "100", Quantity: 1})

	_, err := f.svc.ApplyCoupon(ctx, "u1", "BIG")
	assert.Error(t, err)
}

func TestSetDelivery_ChangingAddressInvalidatesShipping(t *testing.T) {
	store := &mockStore{
		guestResp:    &models.GuestCheckoutResponse{CustomerID: 42},
		shippingResp: &models.ShippingCostResponse{MethodID: "flat_rate", Cost: "10", Tax: "0"},
	}
	f := newCheckoutFixture(store, &mockPayments{})
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, "u1", models.CartItem{ProductID: 1, Price: "100", Quantity: 1})
	_, _ = f.svc.SetDelivery(ctx, "u1", testDelivery())
	_, _ = f.svc.SetShipping(ctx, "u1", "flat_rate")

	changed := testDelivery()
	changed.Country = "CA"
	session, err := f.svc.SetDelivery(ctx, "u1", changed)
	assert.NoError(t, err)
	assert.Equal(t, models.StateNeedsShipping, session.State)
	assert.Empty(t, session.ShippingMethod)

	_, err = f.svc.PlaceOrder(ctx, "u1")
	assert.ErrorIs(t, err, apperrors.ErrCheckoutIncomplete)
}
