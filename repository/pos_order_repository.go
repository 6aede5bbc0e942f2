package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/toyfront/storefront-gateway/models"
)

// POSOrderRepository defines data access for the local POS order journal.
type POSOrderRepository interface {
	Create(ctx context.Context, order *models.POSOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.POSOrder, error)
	SetRemoteOrderID(ctx context.Context, id uuid.UUID, remoteID int64) error
	ListByStaff(ctx context.Context, staffID uuid.UUID, page, limit int) ([]models.POSOrder, int64, error)
}

// GormPOSOrderRepository implements POSOrderRepository using GORM.
type GormPOSOrderRepository struct {
	db *gorm.DB
}

// NewGormPOSOrderRepository creates a new GormPOSOrderRepository.
func NewGormPOSOrderRepository(db *gorm.DB) POSOrderRepository {
	return &GormPOSOrderRepository{db: db}
}

func (r *GormPOSOrderRepository) Create(ctx context.Context, order *models.POSOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormPOSOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.POSOrder, error) {
	var order models.POSOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormPOSOrderRepository) SetRemoteOrderID(ctx context.Context, id uuid.UUID, remoteID int64) error {
	return r.db.WithContext(ctx).Model(&models.POSOrder{}).
		Where("id = ?", id).
		Update("remote_order_id", remoteID).Error
}

func (r *GormPOSOrderRepository) ListByStaff(ctx context.Context, staffID uuid.UUID, page, limit int) ([]models.POSOrder, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	q := r.db.WithContext(ctx).Model(&models.POSOrder{}).Where("staff_id = ?", staffID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.POSOrder
	if err := q.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
