package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/toyfront/storefront-gateway/models"
)

// StaffRepository defines data access for POS staff records.
type StaffRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Staff, error)
	Create(ctx context.Context, staff *models.Staff) error
	Update(ctx context.Context, staff *models.Staff) error
	ListActive(ctx context.Context) ([]models.Staff, error)
}

// GormStaffRepository implements StaffRepository using GORM.
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository.
func NewGormStaffRepository(db *gorm.DB) StaffRepository {
	return &GormStaffRepository{db: db}
}

func (r *GormStaffRepository) FindByUserID(ctx context.Context, userID string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *GormStaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *GormStaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *GormStaffRepository) ListActive(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name asc").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}
