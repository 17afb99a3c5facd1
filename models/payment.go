package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TipoPagamento tags a payment plan with how the balance is settled.
type TipoPagamento string

const (
	TipoSaldoUnico      TipoPagamento = "saldo_unico"
	TipoRate            TipoPagamento = "rate"
	TipoFinanziamento   TipoPagamento = "finanziamento"
	TipoNessunPagamento TipoPagamento = "nessun_pagamento"
	// TipoNessuno means the payment representation could not be classified.
	// It is never persisted; it only appears as a resolver outcome.
	TipoNessuno TipoPagamento = "nessuno"
)

// LegacyPaymentRecord is the older one-per-order payment representation,
// still present on orders created before payment plans existed. ModalitaSaldo
// and DataSaldo are free text entered by staff and must be parsed
// defensively.
type LegacyPaymentRecord struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"orderId"`

	PrezzoFinale  float64 `gorm:"type:decimal(10,2);default:0.0" json:"prezzoFinale"`
	Acconto       float64 `gorm:"type:decimal(10,2);default:0.0" json:"acconto"`
	ModalitaSaldo string  `gorm:"type:text" json:"modalitaSaldo"`
	Note          string  `gorm:"type:text" json:"note"`
	Saldato       bool    `gorm:"default:false" json:"saldato"`
	DataSaldo     string  `gorm:"type:text" json:"dataSaldo"`

	gorm.Model
}

func (l *LegacyPaymentRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// PaymentPlan is the structured payment representation.
type PaymentPlan struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"orderId"`

	Totale     float64       `gorm:"type:decimal(10,2);not null" json:"totale"`
	Acconto    float64       `gorm:"type:decimal(10,2);default:0.0" json:"acconto"`
	Tipo       TipoPagamento `gorm:"type:varchar(30);not null" json:"tipo"`
	Completato bool          `gorm:"default:false" json:"completato"`

	Installments []Installment `gorm:"foreignKey:PaymentPlanID" json:"installments,omitempty"`

	gorm.Model
}

func (p *PaymentPlan) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// Installment ("rata") is one scheduled partial payment within a plan. Its
// paid amount counts toward completion only when Completata is set.
type Installment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PaymentPlanID uuid.UUID `gorm:"type:uuid;index;not null" json:"paymentPlanId"`

	Importo    float64 `gorm:"type:decimal(10,2);not null" json:"importo"`
	Pagato     float64 `gorm:"type:decimal(10,2);default:0.0" json:"pagato"`
	Completata bool    `gorm:"default:false" json:"completata"`

	gorm.Model
}

func (i *Installment) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
