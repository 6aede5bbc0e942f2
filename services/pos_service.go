package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/kafka"
	"github.com/toyfront/storefront-gateway/models"
	"github.com/toyfront/storefront-gateway/permissions"
	"github.com/toyfront/storefront-gateway/repository"
)

// POSStoreClient is the slice of the store client the POS needs.
type POSStoreClient interface {
	SubmitPOSOrder(ctx context.Context, token string, req *models.CreateOrderRequest) (*models.Order, error)
}

// POSLoginResult is a successful register sign-in.
type POSLoginResult struct {
	Staff       *models.Staff `json:"staff"`
	Permissions []string      `json:"permissions"`
}

// POSService runs the point-of-sale flow: staff PIN sign-in, ringing up
// sales, and the local order journal kept next to the remote submission so
// the till can be reconciled.
type POSService struct {
	staff    repository.StaffRepository
	journal  repository.POSOrderRepository
	store    POSStoreClient
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewPOSService creates a new POSService.
func NewPOSService(
	staff repository.StaffRepository,
	journal repository.POSOrderRepository,
	store POSStoreClient,
	producer *kafka.Producer,
	logger *zap.Logger,
) *POSService {
	return &POSService{
		staff:    staff,
		journal:  journal,
		store:    store,
		producer: producer,
		logger:   logger,
	}
}

// LoginStaff verifies a staff PIN and returns the member's POS permissions.
func (s *POSService) LoginStaff(ctx context.Context, userID, pin string) (*POSLoginResult, error) {
	staff, err := s.staff.FindByUserID(ctx, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !staff.Active {
		return nil, apperrors.ErrForbidden.Wrap(fmt.Errorf("staff account is deactivated"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PINHash), []byte(pin)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &POSLoginResult{
		Staff:       staff,
		Permissions: permissions.PermissionsFor(staff.Role),
	}, nil
}

// RegisterStaff creates a staff member with a bcrypt-hashed PIN.
func (s *POSService) RegisterStaff(ctx context.Context, userID, name, role, pin string) (*models.Staff, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	staff := &models.Staff{
		UserID:  userID,
		Name:    name,
		Role:    role,
		PINHash: string(hash),
		Active:  true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, err
	}

	s.logger.Info("Staff registered", zap.String("user_id", userID), zap.String("role", role))
	return staff, nil
}

// SetStaffActive activates or deactivates a staff member. Deactivated staff
// cannot sign in at the register; their journal history is kept.
func (s *POSService) SetStaffActive(ctx context.Context, userID string, active bool) (*models.Staff, error) {
	staff, err := s.staff.FindByUserID(ctx, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	staff.Active = active
	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, err
	}

	s.logger.Info("Staff active flag changed", zap.String("user_id", userID), zap.Bool("active", active))
	return staff, nil
}

// ListStaff returns the active staff roster.
func (s *POSService) ListStaff(ctx context.Context) ([]models.Staff, error) {
	return s.staff.ListActive(ctx)
}

// CreateOrder rings up a sale: the order is journaled locally first, then
// submitted to the store tagged with the pos sales channel. The journal row
// survives a failed remote submission so the till stays reconcilable.
func (s *POSService) CreateOrder(ctx context.Context, staff *models.Staff, storeToken string, req *models.POSOrderRequest) (*models.Order, error) {
	if !permissions.HasPermission(staff.Role, permissions.UsePOS) {
		return nil, apperrors.ErrForbidden.Wrap(fmt.Errorf("role %s cannot use the POS", staff.Role))
	}

	discount := decimal.Zero
	if req.Discount != "" {
		if !permissions.HasPermission(staff.Role, permissions.ApplyDiscounts) {
			return nil, apperrors.ErrForbidden.Wrap(fmt.Errorf("role %s cannot apply discounts", staff.Role))
		}
		var err error
		discount, err = decimal.NewFromString(req.Discount)
		if err != nil || discount.IsNegative() {
			return nil, apperrors.ErrValidation.Wrap(fmt.Errorf("invalid discount amount"))
		}
	}

	cart := &models.Cart{Items: req.Items}
	total := TotalPrice(cart).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	itemsJSON, _ := json.Marshal(req.Items)
	entry := &models.POSOrder{
		StaffID:       staff.ID,
		Register:      req.Register,
		Total:         total.String(),
		Discount:      discount.String(),
		PaymentMethod: req.PaymentMethod,
		ItemsJSON:     string(itemsJSON),
	}
	if err := s.journal.Create(ctx, entry); err != nil {
		return nil, err
	}

	order, err := s.store.SubmitPOSOrder(ctx, storeToken, s.buildOrderRequest(req))
	if err != nil {
		s.logger.Error("POS order remote submission failed; journal row kept",
			zap.String("journal_id", entry.ID.String()), zap.Error(err))
		return nil, err
	}

	if err := s.journal.SetRemoteOrderID(ctx, entry.ID, order.ID); err != nil {
		s.logger.Warn("Failed to link journal row to remote order",
			zap.String("journal_id", entry.ID.String()), zap.Int64("order_id", order.ID), zap.Error(err))
	}

	if s.producer != nil {
		event := models.OrderEvent{
			Event:     "order.placed",
			UserID:    staff.UserID,
			OrderID:   order.ID,
			Channel:   models.ChannelPOS,
			Total:     total.String(),
			Items:     req.Items,
			Timestamp: time.Now(),
		}
		if err := s.producer.SendOrderEvent(ctx, event); err != nil {
			s.logger.Warn("Failed to publish POS order event", zap.Error(err))
		}
	}

	return order, nil
}

// ListJournal returns the staff member's local journal entries.
func (s *POSService) ListJournal(ctx context.Context, staff *models.Staff, page, limit int) ([]models.POSOrder, int64, error) {
	return s.journal.ListByStaff(ctx, staff.ID, page, limit)
}

// JournalEntry returns one journal row. Entries belonging to another staff
// member are reported as not found.
func (s *POSService) JournalEntry(ctx context.Context, staff *models.Staff, id uuid.UUID) (*models.POSOrder, error) {
	entry, err := s.journal.FindByID(ctx, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if entry.StaffID != staff.ID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

func (s *POSService) buildOrderRequest(req *models.POSOrderRequest) *models.CreateOrderRequest {
	lines := make([]models.OrderLineItem, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, models.OrderLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	out := &models.CreateOrderRequest{
		PaymentMethod: req.PaymentMethod,
		SetPaid:       true,
		Status:        "completed",
		SalesChannel:  models.ChannelPOS,
		LineItems:     lines,
	}
	if req.Discount != "" {
		out.CouponLines = []models.OrderCouponLine{{Code: "pos-discount", Discount: req.Discount}}
	}
	return out
}
