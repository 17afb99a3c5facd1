package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a tracked retail customer. IsShopAccount marks the record the
// shop uses for itself (walk-in counter sales); such records legitimately
// carry the shop's own phone number.
type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index" json:"createdByUserId"`

	Nome          string     `gorm:"not null" json:"nome"`
	Cognome       string     `json:"cognome"`
	Phone         string     `gorm:"index" json:"phone"`
	Email         string     `json:"email"`
	Note          string     `json:"note"`
	IsShopAccount bool       `gorm:"default:false" json:"isShopAccount"`
	TotalSpent    float64    `gorm:"type:decimal(10,2);default:0.0" json:"totalSpent"`
	LastOrder     *time.Time `json:"lastOrder"`
	IsActive      bool       `gorm:"default:true" json:"isActive"`

	Orders []Order `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
