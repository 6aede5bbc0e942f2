package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedAddress caches the last delivery details a user entered at checkout,
// keyed by user id. Best-effort cache only; the remote customer record
// remains authoritative and the two are not reconciled (last write wins).
type SavedAddress struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"user_id"`
	FirstName  string    `gorm:"size:100" json:"first_name"`
	LastName   string    `gorm:"size:100" json:"last_name"`
	Email      string    `gorm:"size:255" json:"email"`
	Phone      string    `gorm:"size:32" json:"phone"`
	Street     string    `gorm:"size:255" json:"street"`
	City       string    `gorm:"size:100" json:"city"`
	State      string    `gorm:"size:100" json:"state"`
	PostalCode string    `gorm:"size:20" json:"postal_code"`
	Country    string    `gorm:"size:2" json:"country"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Delivery converts the cached row back into checkout delivery details.
func (a *SavedAddress) Delivery() *DeliveryDetails {
	return &DeliveryDetails{
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Email:      a.Email,
		Phone:      a.Phone,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// FromDelivery fills the cached row from checkout delivery details.
func (a *SavedAddress) FromDelivery(userID string, d *DeliveryDetails) {
	a.UserID = userID
	a.FirstName = d.FirstName
	a.LastName = d.LastName
	a.Email = d.Email
	a.Phone = d.Phone
	a.Street = d.Street
	a.City = d.City
	a.State = d.State
	a.PostalCode = d.PostalCode
	a.Country = d.Country
}
