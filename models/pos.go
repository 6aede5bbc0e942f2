package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sales channels tagged onto orders to indicate their origin.
const (
	ChannelWebsite = "website"
	ChannelPOS     = "pos"
	ChannelSocial  = "social"
)

// Staff is a back-office operator who can sign in to the POS screen with a
// short PIN. The PIN is stored bcrypt-hashed.
type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Role      string    `gorm:"type:varchar(50);not null;default:'staff'" json:"role"`
	PINHash   string    `gorm:"size:100;not null" json:"-"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// POSOrder is the local journal row for an order placed through the
// point-of-sale screen, kept alongside the remote submission so the till
// can be reconciled even if the store is unreachable later.
type POSOrder struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RemoteOrderID int64          `gorm:"index" json:"remote_order_id"`
	StaffID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"staff_id"`
	Register      string         `gorm:"size:50" json:"register"`
	Total         string         `gorm:"size:32;not null" json:"total"`
	Discount      string         `gorm:"size:32" json:"discount"`
	PaymentMethod string         `gorm:"size:50;not null" json:"payment_method"` // cash, card
	ItemsJSON     string         `gorm:"type:jsonb" json:"-"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// POSLoginRequest authenticates a staff member at the register.
type POSLoginRequest struct {
	UserID string `json:"user_id" binding:"required"`
	PIN    string `json:"pin" binding:"required,len=4,numeric"`
}

// StaffRegisterRequest enrolls a staff member for the POS.
type StaffRegisterRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=manager cashier staff"`
	PIN    string `json:"pin" binding:"required,len=4,numeric"`
}

// StaffActiveRequest toggles a staff member's active flag.
type StaffActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// POSOrderRequest is a sale rung up at the register.
type POSOrderRequest struct {
	Register      string     `json:"register"`
	Items         []CartItem `json:"items" binding:"required,min=1,dive"`
	Discount      string     `json:"discount"`
	PaymentMethod string     `json:"payment_method" binding:"required,oneof=cash card"`
}

// Migrate runs gorm auto-migration for all locally persisted tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&SavedAddress{}, &Staff{}, &POSOrder{})
}
