package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatoBusta is the workflow state of an order envelope. Transitions are
// forward-only; consegnata_pagata is terminal.
type StatoBusta string

const (
	StatoNuova            StatoBusta = "nuova"
	StatoInLavorazione    StatoBusta = "in_lavorazione"
	StatoOrdinata         StatoBusta = "ordinata"
	StatoPronta           StatoBusta = "pronta"
	StatoConsegnataPagata StatoBusta = "consegnata_pagata"
)

// StatoBustaOrdinal maps each workflow state to its position in the pipeline,
// used to reject backward transitions.
var StatoBustaOrdinal = map[StatoBusta]int{
	StatoNuova:            0,
	StatoInLavorazione:    1,
	StatoOrdinata:         2,
	StatoPronta:           3,
	StatoConsegnataPagata: 4,
}

// CategoriaBusta is the product category of an order.
type CategoriaBusta string

const (
	CategoriaOcchialeCompleto CategoriaBusta = "occhiale_completo"
	CategoriaOcchialeVista    CategoriaBusta = "occhiale_vista"
	CategoriaOcchialeSole     CategoriaBusta = "occhiale_sole"
	CategoriaLentiAContatto   CategoriaBusta = "lenti_a_contatto"
	CategoriaLentiVista       CategoriaBusta = "lenti_vista"
	CategoriaAltro            CategoriaBusta = "altro"
)

// Order is a single customer job ("busta") tracked end-to-end. At decision
// time at most one of LegacyPayment and PaymentPlan is populated; both are
// always loaded and handled defensively.
type Order struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	Stato      StatoBusta     `gorm:"type:varchar(30);not null;default:'nuova'" json:"stato"`
	Categoria  CategoriaBusta `gorm:"type:varchar(30);not null" json:"categoria"`
	Totale     float64        `gorm:"type:decimal(10,2);not null" json:"totale"`
	Note       string         `gorm:"type:text" json:"note"`
	Archiviata bool           `gorm:"default:false;index" json:"archiviata"`

	Customer      Customer             `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ProductOrders []ProductOrder       `gorm:"foreignKey:OrderID" json:"productOrders,omitempty"`
	PaymentPlan   *PaymentPlan         `gorm:"foreignKey:OrderID" json:"paymentPlan,omitempty"`
	LegacyPayment *LegacyPaymentRecord `gorm:"foreignKey:OrderID" json:"legacyPayment,omitempty"`

	gorm.Model
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// ProductOrder is a sub-item of an order (a single lens, frame, etc.).
type ProductOrder struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`

	Descrizione string  `gorm:"not null" json:"descrizione"`
	Prezzo      float64 `gorm:"type:decimal(10,2);default:0.0" json:"prezzo"`
	Annullato   bool    `gorm:"default:false" json:"annullato"`

	gorm.Model
}

func (p *ProductOrder) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
