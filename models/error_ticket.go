package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrorTicket tracks a problem surfaced by a dissatisfied follow-up call.
// At most one is ever derived from a given call (see
// FollowUpCall.ErrorTicketCreato). Impatto is pre-populated from the order
// value; blame assignment happens in a separate workflow.
type ErrorTicket struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	FollowUpCallID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"followUpCallId"`

	Descrizione  string `gorm:"type:text;not null" json:"descrizione"`
	Impatto      string `gorm:"type:varchar(20);not null" json:"impatto"` // basso, medio, alto
	Assegnatario string `json:"assegnatario"`
	Risolto      bool   `gorm:"default:false" json:"risolto"`

	gorm.Model
}

func (e *ErrorTicket) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
