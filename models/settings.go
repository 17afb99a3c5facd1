package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopSettings is the single-row configuration record for the shop.
// SogliaSuperFan is the high-value threshold used by the customer
// categorizer; the impact thresholds feed error-ticket severity.
type ShopSettings struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	ShopName   string `gorm:"not null" json:"shopName"`
	ShopPhone  string `json:"shopPhone"`
	StaffPhone string `json:"staffPhone"`

	SogliaSuperFan     float64 `gorm:"type:decimal(10,2);default:450.0" json:"sogliaSuperFan"`
	SogliaImpattoMedio float64 `gorm:"type:decimal(10,2);default:200.0" json:"sogliaImpattoMedio"`
	SogliaImpattoAlto  float64 `gorm:"type:decimal(10,2);default:400.0" json:"sogliaImpattoAlto"`

	SMSNotifications bool `gorm:"default:false" json:"smsNotifications"`

	gorm.Model
}

func (s *ShopSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
