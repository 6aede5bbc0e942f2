package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/toyfront/storefront-gateway/models"
)

// AddressRepository defines data access for the per-user delivery address
// cache. Last write wins; the row is replaced wholesale on each save.
type AddressRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.SavedAddress, error)
	Save(ctx context.Context, address *models.SavedAddress) error
	Delete(ctx context.Context, userID string) error
}

// GormAddressRepository implements AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository.
func NewGormAddressRepository(db *gorm.DB) AddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) FindByUserID(ctx context.Context, userID string) (*models.SavedAddress, error) {
	var address models.SavedAddress
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *GormAddressRepository) Save(ctx context.Context, address *models.SavedAddress) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(address).Error
}

func (r *GormAddressRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.SavedAddress{}).Error
}
