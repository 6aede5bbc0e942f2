package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/toyfront/storefront-gateway/models"
)

// CartRepository is the persistence boundary for carts. A nil cart from
// GetCart means the user has no cart yet.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}

// CartService owns all cart mutations. Every operation is a total function
// over the stored cart and persists on each change; at most one line per
// product id exists at any time.
type CartService struct {
	repo   CartRepository
	logger *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(repo CartRepository, logger *zap.Logger) *CartService {
	return &CartService{repo: repo, logger: logger}
}

// Get returns the user's cart with derived totals, creating an empty one in
// memory if none is stored.
func (s *CartService) Get(ctx context.Context, userID string) (*models.CartSummary, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	return s.summarize(cart), nil
}

// AddItem merges the item into the cart: an existing line for the same
// product id has its quantity incremented, otherwise the item is appended.
func (s *CartService) AddItem(ctx context.Context, userID string, item models.CartItem) (*models.CartSummary, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	found := false
	for i, existing := range cart.Items {
		if existing.ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, item)
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.summarize(cart), nil
}

// RemoveItem deletes the line for productID. Removing an absent line is a
// no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID int64) (*models.CartSummary, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
		return s.summarize(cart), nil
	}

	newItems := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			newItems = append(newItems, item)
		}
	}
	cart.Items = newItems

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.summarize(cart), nil
}

// UpdateQuantity sets the quantity for productID. A quantity of zero or
// less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) (*models.CartSummary, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	for i, item := range cart.Items {
		if item.ProductID == productID {
			cart.Items[i].Quantity = quantity
			break
		}
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.summarize(cart), nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.repo.DeleteCart(ctx, userID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// TotalPrice sums price times quantity over all lines, parsing the decimal
// price strings. Unparseable prices count as zero. The result does not
// depend on line ordering.
func TotalPrice(cart *models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalItems sums line quantities.
func TotalItems(cart *models.Cart) int {
	total := 0
	for _, item := range cart.Items {
		total += item.Quantity
	}
	return total
}

func (s *CartService) summarize(cart *models.Cart) *models.CartSummary {
	return &models.CartSummary{
		Cart:       cart,
		TotalItems: TotalItems(cart),
		TotalPrice: TotalPrice(cart).String(),
	}
}
